package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/stats/level"
)

var (
	levelExp        uint64
	levelThresholds []uint
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show the level earned by an amount of experience",
	Long: `Show the level earned by an amount of experience against the tuning's
threshold table, or against --thresholds when given.`,
	RunE: runLevel,
}

func init() {
	levelCmd.Flags().Uint64Var(&levelExp, "exp", 0, "accumulated experience")
	levelCmd.Flags().UintSliceVar(&levelThresholds, "thresholds", nil, "cumulative thresholds for levels 2..N+1")
}

func runLevel(cmd *cobra.Command, _ []string) error {
	thresholds := make([]uint64, 0, len(levelThresholds))
	for _, t := range levelThresholds {
		thresholds = append(thresholds, uint64(t))
	}
	if len(thresholds) == 0 {
		_, tuning, err := loadConfig()
		if err != nil {
			return err
		}
		thresholds = tuning.LevelThresholds
	}

	m, err := level.New(thresholds, levelExp)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "level %d of %d (exp %d)\n", m.Level(), m.MaxLevel(), m.Exp())

	need, err := m.ExpNeededForNextLevel()
	switch {
	case errors.IsAtMaxLevel(err):
		fmt.Fprintln(w, "max level reached")
	case err != nil:
		return err
	default:
		fmt.Fprintf(w, "%d exp to level %d\n", need, m.Level()+1)
	}
	return nil
}
