// Package battle implements the battle orchestrator that applies combat
// stat operations to stored combatants
package battle

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-combat/internal/config"
	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/combatant"
	"github.com/KirkDiggler/rpg-combat/internal/stats/gauge"
	"github.com/KirkDiggler/rpg-combat/internal/stats/level"
	"github.com/KirkDiggler/rpg-combat/internal/stats/progression"
	"github.com/KirkDiggler/rpg-combat/internal/stats/speed"
)

// Service defines the interface for battle operations
type Service interface {
	CreateCombatant(ctx context.Context, input *CreateCombatantInput) (*CreateCombatantOutput, error)
	GetCombatant(ctx context.Context, input *GetCombatantInput) (*GetCombatantOutput, error)
	ListCombatants(ctx context.Context, input *ListCombatantsInput) (*ListCombatantsOutput, error)
	AuditCombatants(ctx context.Context, input *AuditCombatantsInput) (*AuditCombatantsOutput, error)

	GrantExperience(ctx context.Context, input *GrantExperienceInput) (*GrantExperienceOutput, error)
	ModifyStat(ctx context.Context, input *ModifyStatInput) (*ModifyStatOutput, error)
	AdjustGauge(ctx context.Context, input *AdjustGaugeInput) (*AdjustGaugeOutput, error)

	RollTurnOrder(ctx context.Context, input *RollTurnOrderInput) (*RollTurnOrderOutput, error)
	ElementalMultiplier(ctx context.Context, input *ElementalMultiplierInput) (*ElementalMultiplierOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	CombatantRepo combatant.Repository
	IDGenerator   idgen.Generator
	// Roller is the one random stream every turn-order roll draws from
	Roller dice.Roller
	Tuning *config.Tuning
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.CombatantRepo == nil {
		vb.RequiredField("CombatantRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Tuning == nil {
		vb.RequiredField("Tuning")
	} else if err := c.Tuning.Validate(); err != nil {
		vb.InvalidField("Tuning", err.Error())
	}

	return vb.Build()
}

type orchestrator struct {
	repo   combatant.Repository
	idGen  idgen.Generator
	tuning *config.Tuning

	// rollMu keeps each RollTurnOrder call's draws contiguous on the stream
	rollMu sync.Mutex
	roller dice.Roller
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:   cfg.CombatantRepo,
		idGen:  cfg.IDGenerator,
		tuning: cfg.Tuning,
		roller: cfg.Roller,
	}, nil
}

func (o *orchestrator) CreateCombatant(
	ctx context.Context,
	input *CreateCombatantInput,
) (*CreateCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d := o.tuning.Defaults
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateMaxLength("name", input.Name, 64, vb)
	errors.ValidateRange("max_hp", input.MaxHP, 0, maxGauge, vb)
	errors.ValidateRange("max_mp", input.MaxMP, 0, maxGauge, vb)
	errors.ValidateRange("attack", input.Attack, 0, d.StatCap, vb)
	errors.ValidateRange("defense", input.Defense, 0, d.StatCap, vb)
	errors.ValidateRange("speed", input.Speed, 0, d.StatCap, vb)
	if !input.Element.Valid() {
		vb.InvalidField("element", input.Element.String())
	}
	for i, s := range input.Skills {
		if strings.TrimSpace(s.Name) == "" {
			vb.Fieldf("skills", "skill %d has no name", i)
		}
		if !s.Element.Valid() {
			vb.Fieldf("skills", "skill %q has unsupported element", s.Name)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	lvl, err := level.New(o.tuning.LevelThresholds, input.Exp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create level")
	}

	// combatants created above level 1 start with the growth they would have earned
	grown := lvl.Level() - 1
	hp, err := gauge.Full(orDefault(input.MaxHP, d.HP) + grown*o.tuning.Growth.HP)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create hp")
	}
	mp, err := gauge.Full(orDefault(input.MaxMP, d.MP) + grown*o.tuning.Growth.MP)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mp")
	}
	attack, err := progression.New(orDefault(input.Attack, d.Attack), d.StatCap, 1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create attack")
	}
	defense, err := progression.New(orDefault(input.Defense, d.Defense), d.StatCap, 1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create defense")
	}
	spd, err := speed.New(orDefault(input.Speed, d.Speed), d.StatCap, 1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create speed")
	}

	c := &entities.Combatant{
		ID:      o.idGen.Generate(),
		Name:    input.Name,
		Element: input.Element,
		HP:      hp,
		MP:      mp,
		Attack:  attack,
		Defense: defense,
		Speed:   spd,
		Level:   lvl,
		Skills:  append([]entities.Skill(nil), input.Skills...),
	}

	created, err := o.repo.Create(ctx, combatant.CreateInput{Combatant: c.ToData()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store combatant")
	}
	c.CreatedAt = created.Combatant.CreatedAt
	c.UpdatedAt = created.Combatant.UpdatedAt

	slog.InfoContext(ctx, "combatant created",
		"combatant_id", c.ID,
		"name", c.Name,
		"element", c.Element.String(),
		"level", c.Level.Level())

	return &CreateCombatantOutput{Combatant: c}, nil
}

func (o *orchestrator) GetCombatant(ctx context.Context, input *GetCombatantInput) (*GetCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CombatantID)
	if err != nil {
		return nil, err
	}
	return &GetCombatantOutput{Combatant: c}, nil
}

func (o *orchestrator) ListCombatants(
	ctx context.Context,
	_ *ListCombatantsInput,
) (*ListCombatantsOutput, error) {
	listed, err := o.repo.List(ctx, combatant.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list combatants")
	}

	out := make([]*entities.Combatant, 0, len(listed.Combatants))
	for _, data := range listed.Combatants {
		c, err := entities.CombatantFromData(data)
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "stored combatant %s is invalid", data.ID)
		}
		out = append(out, c)
	}
	return &ListCombatantsOutput{Combatants: out}, nil
}

func (o *orchestrator) AuditCombatants(
	ctx context.Context,
	input *AuditCombatantsInput,
) (*AuditCombatantsOutput, error) {
	if input == nil {
		input = &AuditCombatantsInput{}
	}

	listed, err := o.repo.ListIDs(ctx, combatant.ListIDsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list combatant IDs")
	}

	out := &AuditCombatantsOutput{Checked: len(listed.IDs)}
	for _, id := range listed.IDs {
		_, err := o.load(ctx, id)
		switch {
		case err == nil, errors.IsNotFound(err):
			continue
		case !errors.IsDataLoss(err):
			return nil, err
		}

		slog.WarnContext(ctx, "stored combatant is invalid",
			"combatant_id", id,
			"error", err.Error())
		out.Invalid = append(out.Invalid, InvalidCombatant{CombatantID: id, Reason: err.Error()})

		if !input.Remove {
			continue
		}
		if _, err := o.repo.Delete(ctx, combatant.DeleteInput{ID: id}); err != nil {
			return nil, errors.Wrapf(err, "failed to remove combatant %s", id)
		}
		out.Removed++
	}

	if len(out.Invalid) > 0 {
		slog.InfoContext(ctx, "combatant audit finished",
			"checked", out.Checked,
			"invalid", len(out.Invalid),
			"removed", out.Removed)
	}

	return out, nil
}

func (o *orchestrator) GrantExperience(
	ctx context.Context,
	input *GrantExperienceInput,
) (*GrantExperienceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CombatantID)
	if err != nil {
		return nil, err
	}

	gained := c.Level.AddExp(input.Exp)
	if gained > 0 {
		if err := c.HP.GrowMax(gained * o.tuning.Growth.HP); err != nil {
			return nil, errors.Wrap(err, "failed to grow hp")
		}
		if err := c.MP.GrowMax(gained * o.tuning.Growth.MP); err != nil {
			return nil, errors.Wrap(err, "failed to grow mp")
		}
		c.HP.FullCharge()
		c.MP.FullCharge()
	}

	if err := o.save(ctx, c); err != nil {
		return nil, err
	}

	out := &GrantExperienceOutput{Combatant: c, LevelsGained: gained}
	need, err := c.Level.ExpNeededForNextLevel()
	switch {
	case errors.IsAtMaxLevel(err):
		out.AtMaxLevel = true
	case err != nil:
		return nil, err
	default:
		out.ExpToNextLevel = need
	}

	if gained > 0 {
		slog.InfoContext(ctx, "combatant leveled up",
			"combatant_id", c.ID,
			"levels_gained", gained,
			"level", c.Level.Level(),
			"max_hp", c.HP.Max(),
			"max_mp", c.MP.Max())
	}

	return out, nil
}

// buffable is the stat surface shared by progression and speed values.
type buffable interface {
	PowerUp(delta int) (int, error)
	PowerDown(delta int) (int, error)
	Reset()
	Value() int
}

func (o *orchestrator) ModifyStat(ctx context.Context, input *ModifyStatInput) (*ModifyStatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CombatantID)
	if err != nil {
		return nil, err
	}

	var stat buffable
	switch input.Stat {
	case StatAttack:
		stat = &c.Attack
	case StatDefense:
		stat = &c.Defense
	case StatSpeed:
		stat = &c.Speed
	default:
		return nil, errors.InvalidArgumentf("unknown stat %q", input.Stat)
	}

	var applied int
	switch input.Action {
	case ActionPowerUp:
		applied, err = stat.PowerUp(input.Amount)
	case ActionPowerDown:
		applied, err = stat.PowerDown(input.Amount)
	case ActionReset:
		before := stat.Value()
		stat.Reset()
		applied = abs(stat.Value() - before)
	default:
		return nil, errors.InvalidArgumentf("unknown stat action %q", input.Action)
	}
	if err != nil {
		return nil, err
	}

	if err := o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "stat modified",
		"combatant_id", c.ID,
		"stat", input.Stat,
		"action", input.Action,
		"requested", input.Amount,
		"applied", applied,
		"value", stat.Value())

	return &ModifyStatOutput{Combatant: c, Applied: applied, Value: stat.Value()}, nil
}

func (o *orchestrator) AdjustGauge(ctx context.Context, input *AdjustGaugeInput) (*AdjustGaugeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CombatantID)
	if err != nil {
		return nil, err
	}

	var g *gauge.Gauge[int]
	switch input.Gauge {
	case GaugeHP:
		g = &c.HP
	case GaugeMP:
		g = &c.MP
	default:
		return nil, errors.InvalidArgumentf("unknown gauge %q", input.Gauge)
	}

	switch {
	case input.FullCharge:
		g.FullCharge()
	case input.Delta >= 0:
		g.Add(input.Delta)
	default:
		g.Sub(-input.Delta)
	}

	if err := o.save(ctx, c); err != nil {
		return nil, err
	}

	out := &AdjustGaugeOutput{Combatant: c, Value: g.Value(), Max: g.Max()}
	if pct, err := g.Percent(); err == nil {
		out.Percent = pct
	} else if !errors.IsDivisionByZero(err) {
		return nil, err
	}

	if input.Gauge == GaugeHP && c.IsDefeated() {
		slog.InfoContext(ctx, "combatant defeated", "combatant_id", c.ID)
	}

	return out, nil
}

func (o *orchestrator) RollTurnOrder(
	ctx context.Context,
	input *RollTurnOrderInput,
) (*RollTurnOrderOutput, error) {
	if input == nil || len(input.CombatantIDs) == 0 {
		return nil, errors.InvalidArgument("at least one combatant ID is required")
	}

	combatants := make([]*entities.Combatant, 0, len(input.CombatantIDs))
	for _, id := range input.CombatantIDs {
		c, err := o.load(ctx, id)
		if err != nil {
			return nil, err
		}
		combatants = append(combatants, c)
	}

	o.rollMu.Lock()
	defer o.rollMu.Unlock()

	entries := make([]TurnOrderEntry, 0, len(combatants))
	for _, c := range combatants {
		key, err := c.Speed.TurnOrderKey(o.roller, o.tuning.Jitter.Min, o.tuning.Jitter.Max)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll turn order for %s", c.ID)
		}
		entries = append(entries, TurnOrderEntry{CombatantID: c.ID, Speed: c.Speed.Value(), Key: key})
	}

	slog.DebugContext(ctx, "turn order rolled", "entries", len(entries))

	return &RollTurnOrderOutput{Entries: entries}, nil
}

func (o *orchestrator) ElementalMultiplier(
	ctx context.Context,
	input *ElementalMultiplierInput,
) (*ElementalMultiplierOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	defender, err := o.load(ctx, input.DefenderID)
	if err != nil {
		return nil, err
	}

	attack := input.AttackElement
	if input.SkillName != "" {
		attacker, err := o.load(ctx, input.AttackerID)
		if err != nil {
			return nil, err
		}
		skill, ok := attacker.FindSkill(input.SkillName)
		if !ok {
			return nil, errors.NotFoundf("combatant %s has no skill %q", attacker.ID, input.SkillName)
		}
		attack = skill.Element
	}

	m, err := element.Multiplier(defender.Element, attack)
	if err != nil {
		return nil, err
	}

	return &ElementalMultiplierOutput{
		Multiplier:      m,
		AttackElement:   attack,
		DefenderElement: defender.Element,
	}, nil
}

func (o *orchestrator) load(ctx context.Context, id string) (*entities.Combatant, error) {
	if id == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	got, err := o.repo.Get(ctx, combatant.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get combatant %s", id)
	}

	c, err := entities.CombatantFromData(got.Combatant)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "stored combatant %s is invalid", id)
	}
	return c, nil
}

func (o *orchestrator) save(ctx context.Context, c *entities.Combatant) error {
	updated, err := o.repo.Update(ctx, combatant.UpdateInput{Combatant: c.ToData()})
	if err != nil {
		return errors.Wrapf(err, "failed to save combatant %s", c.ID)
	}
	c.UpdatedAt = updated.Combatant.UpdatedAt
	return nil
}

const maxGauge = 1 << 20

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
