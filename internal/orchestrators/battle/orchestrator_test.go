package battle_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/config"
	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/combatant"
	"github.com/KirkDiggler/rpg-combat/internal/testutils"
	"github.com/KirkDiggler/rpg-combat/internal/testutils/builders"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	tuning       *config.Tuning
	repo         *combatant.InMemoryRepository
	orchestrator battle.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tuning = config.DefaultTuning()
	s.tuning.LevelThresholds = []uint64{100, 250, 500}
	s.tuning.Growth = config.Growth{HP: 10, MP: 2}
	s.tuning.Jitter = config.Jitter{Min: -3, Max: 3}
	s.repo = combatant.NewInMemory(nil)

	s.orchestrator = s.newOrchestrator(42)
}

func (s *OrchestratorTestSuite) newOrchestrator(seed int64) battle.Service {
	o, err := battle.NewOrchestrator(&battle.Config{
		CombatantRepo: s.repo,
		IDGenerator:   idgen.NewSequential("cbt"),
		Roller:        rng.NewSeeded(seed),
		Tuning:        s.tuning,
	})
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorTestSuite) create(input *battle.CreateCombatantInput) *entities.Combatant {
	out, err := s.orchestrator.CreateCombatant(s.ctx, input)
	s.Require().NoError(err)
	return out.Combatant
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidatesConfig() {
	_, err := battle.NewOrchestrator(&battle.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = battle.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	bad := config.DefaultTuning()
	bad.Jitter = config.Jitter{Min: 2, Max: 1}
	_, err = battle.NewOrchestrator(&battle.Config{
		CombatantRepo: s.repo,
		IDGenerator:   idgen.NewSequential("cbt"),
		Roller:        rng.NewSeeded(1),
		Tuning:        bad,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateCombatant() {
	s.Run("uses defaults for unset stats", func() {
		c := s.create(&battle.CreateCombatantInput{Name: "Aria", Element: element.Ice, Speed: 14})

		s.Equal("cbt_1", c.ID)
		s.Equal(s.tuning.Defaults.HP, c.HP.Max())
		s.True(c.HP.IsMax())
		s.Equal(s.tuning.Defaults.Attack, c.Attack.Value())
		s.Equal(14, c.Speed.Value())
		s.Equal(1, c.Level.Level())

		got, err := s.orchestrator.GetCombatant(s.ctx, &battle.GetCombatantInput{CombatantID: c.ID})
		s.Require().NoError(err)
		s.Equal(element.Ice, got.Combatant.Element)
		s.Equal(14, got.Combatant.Speed.Baseline())
	})

	s.Run("starting exp grants earned growth", func() {
		c := s.create(&battle.CreateCombatantInput{Name: "Veteran", MaxHP: 50, MaxMP: 5, Exp: 260})
		s.Equal(3, c.Level.Level())
		s.Equal(70, c.HP.Max())
		s.Equal(9, c.MP.Max())
	})

	s.Run("validation", func() {
		_, err := s.orchestrator.CreateCombatant(s.ctx, &battle.CreateCombatantInput{})
		s.True(errors.IsInvalidArgument(err))

		_, err = s.orchestrator.CreateCombatant(s.ctx, &battle.CreateCombatantInput{Name: "x", Speed: 999})
		s.True(errors.IsInvalidArgument(err))

		_, err = s.orchestrator.CreateCombatant(s.ctx, &battle.CreateCombatantInput{
			Name:   "x",
			Skills: []entities.Skill{{Name: "Bad", Element: element.Element(99)}},
		})
		s.True(errors.IsInvalidArgument(err))

		_, err = s.orchestrator.CreateCombatant(s.ctx, nil)
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestGetCombatantNotFound() {
	_, err := s.orchestrator.GetCombatant(s.ctx, &battle.GetCombatantInput{CombatantID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetCombatant(s.ctx, &battle.GetCombatantInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListCombatants() {
	s.create(&battle.CreateCombatantInput{Name: "One"})
	s.create(&battle.CreateCombatantInput{Name: "Two"})

	out, err := s.orchestrator.ListCombatants(s.ctx, &battle.ListCombatantsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Combatants, 2)
	s.Equal("One", out.Combatants[0].Name)
}

func (s *OrchestratorTestSuite) TestGrantExperience() {
	c := s.create(&battle.CreateCombatantInput{Name: "Aria", MaxHP: 40, MaxMP: 10})

	_, err := s.orchestrator.AdjustGauge(s.ctx, &battle.AdjustGaugeInput{
		CombatantID: c.ID, Gauge: battle.GaugeHP, Delta: -25,
	})
	s.Require().NoError(err)

	s.Run("single level restores gauges", func() {
		out, err := s.orchestrator.GrantExperience(s.ctx, &battle.GrantExperienceInput{CombatantID: c.ID, Exp: 100})
		s.Require().NoError(err)
		s.Equal(1, out.LevelsGained)
		s.Equal(2, out.Combatant.Level.Level())
		s.Equal(uint64(150), out.ExpToNextLevel)
		s.Equal(50, out.Combatant.HP.Max())
		s.True(out.Combatant.HP.IsMax())
		s.Equal(12, out.Combatant.MP.Max())
	})

	s.Run("no level", func() {
		out, err := s.orchestrator.GrantExperience(s.ctx, &battle.GrantExperienceInput{CombatantID: c.ID, Exp: 10})
		s.Require().NoError(err)
		s.Equal(0, out.LevelsGained)
		s.Equal(uint64(140), out.ExpToNextLevel)
	})

	s.Run("several levels at once reach the cap", func() {
		out, err := s.orchestrator.GrantExperience(s.ctx, &battle.GrantExperienceInput{CombatantID: c.ID, Exp: 10000})
		s.Require().NoError(err)
		s.Equal(2, out.LevelsGained)
		s.True(out.AtMaxLevel)
		s.Equal(uint64(0), out.ExpToNextLevel)
		s.Equal(70, out.Combatant.HP.Max())

		got, err := s.orchestrator.GetCombatant(s.ctx, &battle.GetCombatantInput{CombatantID: c.ID})
		s.Require().NoError(err)
		s.Equal(4, got.Combatant.Level.Level())
		s.Equal(uint64(500), got.Combatant.Level.Exp())
	})
}

func (s *OrchestratorTestSuite) TestModifyStat() {
	c := s.create(&battle.CreateCombatantInput{Name: "Aria", Attack: 250})

	s.Run("power up reports the applied amount", func() {
		out, err := s.orchestrator.ModifyStat(s.ctx, &battle.ModifyStatInput{
			CombatantID: c.ID, Stat: battle.StatAttack, Action: battle.ActionPowerUp, Amount: 10,
		})
		s.Require().NoError(err)
		s.Equal(5, out.Applied)
		s.Equal(255, out.Value)
	})

	s.Run("reset returns to baseline and persists", func() {
		out, err := s.orchestrator.ModifyStat(s.ctx, &battle.ModifyStatInput{
			CombatantID: c.ID, Stat: battle.StatAttack, Action: battle.ActionReset,
		})
		s.Require().NoError(err)
		s.Equal(5, out.Applied)
		s.Equal(250, out.Value)

		got, err := s.orchestrator.GetCombatant(s.ctx, &battle.GetCombatantInput{CombatantID: c.ID})
		s.Require().NoError(err)
		s.Equal(250, got.Combatant.Attack.Value())
	})

	s.Run("speed power down", func() {
		out, err := s.orchestrator.ModifyStat(s.ctx, &battle.ModifyStatInput{
			CombatantID: c.ID, Stat: battle.StatSpeed, Action: battle.ActionPowerDown, Amount: 4,
		})
		s.Require().NoError(err)
		s.Equal(4, out.Applied)
		s.Equal(s.tuning.Defaults.Speed-4, out.Value)
	})

	s.Run("negative amount", func() {
		_, err := s.orchestrator.ModifyStat(s.ctx, &battle.ModifyStatInput{
			CombatantID: c.ID, Stat: battle.StatDefense, Action: battle.ActionPowerUp, Amount: -1,
		})
		s.True(errors.IsInvalidDelta(err))
	})

	s.Run("unknown stat or action", func() {
		_, err := s.orchestrator.ModifyStat(s.ctx, &battle.ModifyStatInput{
			CombatantID: c.ID, Stat: "luck", Action: battle.ActionPowerUp,
		})
		s.True(errors.IsInvalidArgument(err))

		_, err = s.orchestrator.ModifyStat(s.ctx, &battle.ModifyStatInput{
			CombatantID: c.ID, Stat: battle.StatAttack, Action: "double",
		})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestAdjustGauge() {
	c := s.create(&battle.CreateCombatantInput{Name: "Aria", MaxHP: 100000, MaxMP: 10})

	out, err := s.orchestrator.AdjustGauge(s.ctx, &battle.AdjustGaugeInput{
		CombatantID: c.ID, Gauge: battle.GaugeHP, Delta: -99999,
	})
	s.Require().NoError(err)
	s.Equal(1, out.Value)
	s.Equal(0.01, out.Percent)
	s.False(out.Combatant.IsDefeated())

	out, err = s.orchestrator.AdjustGauge(s.ctx, &battle.AdjustGaugeInput{
		CombatantID: c.ID, Gauge: battle.GaugeHP, Delta: -5,
	})
	s.Require().NoError(err)
	s.Equal(0, out.Value)
	s.Equal(0.0, out.Percent)
	s.True(out.Combatant.IsDefeated())

	out, err = s.orchestrator.AdjustGauge(s.ctx, &battle.AdjustGaugeInput{
		CombatantID: c.ID, Gauge: battle.GaugeHP, FullCharge: true,
	})
	s.Require().NoError(err)
	s.Equal(100.0, out.Percent)

	out, err = s.orchestrator.AdjustGauge(s.ctx, &battle.AdjustGaugeInput{
		CombatantID: c.ID, Gauge: battle.GaugeMP, Delta: -3,
	})
	s.Require().NoError(err)
	s.Equal(7, out.Value)
	s.Equal(70.0, out.Percent)

	_, err = s.orchestrator.AdjustGauge(s.ctx, &battle.AdjustGaugeInput{CombatantID: c.ID, Gauge: "sp"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRollTurnOrderIsReproducible() {
	hero := s.create(&battle.CreateCombatantInput{Name: "Hero", Speed: 20})
	slime := s.create(&battle.CreateCombatantInput{Name: "Slime", Speed: 18})
	ids := []string{hero.ID, slime.ID}

	first, err := s.newOrchestrator(7).RollTurnOrder(s.ctx, &battle.RollTurnOrderInput{CombatantIDs: ids})
	s.Require().NoError(err)
	second, err := s.newOrchestrator(7).RollTurnOrder(s.ctx, &battle.RollTurnOrderInput{CombatantIDs: ids})
	s.Require().NoError(err)

	s.Equal(first.Entries, second.Entries)
	s.Require().Len(first.Entries, 2)
	s.Equal(hero.ID, first.Entries[0].CombatantID)
	s.Equal(slime.ID, first.Entries[1].CombatantID)
	for _, e := range first.Entries {
		s.GreaterOrEqual(e.Key, e.Speed-3)
		s.LessOrEqual(e.Key, e.Speed+3)
	}

	_, err = s.orchestrator.RollTurnOrder(s.ctx, &battle.RollTurnOrderInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.RollTurnOrder(s.ctx, &battle.RollTurnOrderInput{CombatantIDs: []string{"missing"}})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestElementalMultiplier() {
	icy := s.create(&battle.CreateCombatantInput{Name: "Icy", Element: element.Ice})
	mage := s.create(&battle.CreateCombatantInput{
		Name:    "Mage",
		Element: element.Fire,
		Skills:  []entities.Skill{{Name: "Fireball", MPCost: 4, BasePower: 30, Element: element.Fire}},
	})

	out, err := s.orchestrator.ElementalMultiplier(s.ctx, &battle.ElementalMultiplierInput{
		DefenderID: icy.ID, AttackerID: mage.ID, SkillName: "Fireball",
	})
	s.Require().NoError(err)
	s.Equal(2.0, out.Multiplier)
	s.Equal(element.Fire, out.AttackElement)

	out, err = s.orchestrator.ElementalMultiplier(s.ctx, &battle.ElementalMultiplierInput{
		DefenderID: mage.ID, AttackElement: element.Fire,
	})
	s.Require().NoError(err)
	s.Equal(0.5, out.Multiplier)

	out, err = s.orchestrator.ElementalMultiplier(s.ctx, &battle.ElementalMultiplierInput{
		DefenderID: mage.ID, AttackElement: element.Normal,
	})
	s.Require().NoError(err)
	s.Equal(1.0, out.Multiplier)

	_, err = s.orchestrator.ElementalMultiplier(s.ctx, &battle.ElementalMultiplierInput{
		DefenderID: icy.ID, AttackerID: mage.ID, SkillName: "Blizzard",
	})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.ElementalMultiplier(s.ctx, &battle.ElementalMultiplierInput{
		DefenderID: icy.ID, AttackElement: element.Element(12),
	})
	s.True(errors.IsUnsupportedElement(err))
}

func TestAuditCombatantsOnRedis(t *testing.T) {
	ctx := context.Background()
	client, mr := testutils.CreateTestRedisClient(t)
	repo, err := combatant.NewRedis(&combatant.RedisConfig{Client: client})
	require.NoError(t, err)

	tuning := config.DefaultTuning()
	o, err := battle.NewOrchestrator(&battle.Config{
		CombatantRepo: repo,
		IDGenerator:   idgen.NewSequential("cbt"),
		Roller:        rng.NewSeeded(1),
		Tuning:        tuning,
	})
	require.NoError(t, err)

	for _, name := range []string{"Aria", "Borin"} {
		_, err := o.CreateCombatant(ctx, &battle.CreateCombatantInput{Name: name})
		require.NoError(t, err)
	}

	// one record that no longer decodes and one that decodes but breaks its bounds
	require.NoError(t, mr.Set("combatant:cbt_garbled", "{not json"))
	broken := builders.NewCombatantDataBuilder().WithID("cbt_broken").Build()
	broken.HP.Min = 100
	raw, err := json.Marshal(broken)
	require.NoError(t, err)
	require.NoError(t, mr.Set("combatant:cbt_broken", string(raw)))
	_, err = mr.SAdd("combatants:index", "cbt_garbled", "cbt_broken")
	require.NoError(t, err)

	_, err = o.ListCombatants(ctx, &battle.ListCombatantsInput{})
	assert.True(t, errors.IsDataLoss(err))

	report, err := o.AuditCombatants(ctx, &battle.AuditCombatantsInput{})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Checked)
	require.Len(t, report.Invalid, 2)
	assert.Equal(t, "cbt_broken", report.Invalid[0].CombatantID)
	assert.Equal(t, "cbt_garbled", report.Invalid[1].CombatantID)
	assert.Zero(t, report.Removed)
	assert.True(t, mr.Exists("combatant:cbt_garbled"))

	report, err = o.AuditCombatants(ctx, &battle.AuditCombatantsInput{Remove: true})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Removed)
	assert.False(t, mr.Exists("combatant:cbt_garbled"))
	assert.False(t, mr.Exists("combatant:cbt_broken"))

	listed, err := o.ListCombatants(ctx, &battle.ListCombatantsInput{})
	require.NoError(t, err)
	assert.Len(t, listed.Combatants, 2)

	report, err = o.AuditCombatants(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Empty(t, report.Invalid)
}
