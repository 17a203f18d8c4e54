package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/battle"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestAdvantageCommand(t *testing.T) {
	out := execute(t, "advantage", "--defender", "fire", "--attack", "ice")
	assert.Contains(t, out, "x2.0")

	out = execute(t, "advantage", "--defender", "thunder", "--attack", "thunder")
	assert.Contains(t, out, "x0.5")

	out = execute(t, "advantage", "--defender", "dark", "--attack", "")
	assert.Contains(t, out, "shine")
	assert.Contains(t, out, "x2.0")
}

func TestLevelCommand(t *testing.T) {
	out := execute(t, "level", "--exp", "260", "--thresholds", "100,250,500")
	assert.Contains(t, out, "level 3 of 4")
	assert.Contains(t, out, "240 exp to level 4")

	out = execute(t, "level", "--exp", "900", "--thresholds", "100,250,500")
	assert.Contains(t, out, "max level reached")
}

func TestParseElement(t *testing.T) {
	e, err := parseElement("Thunder")
	require.NoError(t, err)
	assert.Equal(t, element.Thunder, e)

	e, err = parseElement("normal")
	require.NoError(t, err)
	assert.Equal(t, element.Normal, e)

	_, err = parseElement("plasma")
	assert.True(t, errors.IsUnsupportedElement(err))
}

func TestParseSkills(t *testing.T) {
	skills, err := parseSkills([]string{"Flare:fire:4:30", "Gale:wind:3:22"})
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "Flare", skills[0].Name)
	assert.Equal(t, element.Fire, skills[0].Element)
	assert.Equal(t, 4, skills[0].MPCost)
	assert.Equal(t, 22, skills[1].BasePower)

	_, err = parseSkills([]string{"Flare:fire:4"})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = parseSkills([]string{"Flare:fire:x:30"})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestPrintRoundOrdersByKeyThenSpeed(t *testing.T) {
	var out bytes.Buffer
	printRound(&out, []battle.TurnOrderEntry{
		{CombatantID: "a", Speed: 10, Key: 12},
		{CombatantID: "b", Speed: 14, Key: 12},
		{CombatantID: "c", Speed: 5, Key: 20},
	}, map[string]string{"c": "Cyra"})

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "Cyra")
	assert.Contains(t, string(lines[1]), "b")
	assert.Contains(t, string(lines[2]), "a")
}

func TestSimulateIsReproducible(t *testing.T) {
	t.Setenv("REDIS_ENDPOINT", "")
	t.Setenv("COMBAT_SEED", "7")

	first := execute(t, "simulate", "--rounds", "2", "--roster", "")
	second := execute(t, "simulate", "--rounds", "2", "--roster", "")
	assert.Equal(t, first, second)
	assert.Contains(t, first, "round 2")
	assert.Contains(t, first, "Aria")
}
