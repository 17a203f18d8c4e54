package battle

import (
	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
)

// Stat names a buffable combat stat
type Stat string

// Buffable stats
const (
	StatAttack  Stat = "attack"
	StatDefense Stat = "defense"
	StatSpeed   Stat = "speed"
)

// StatAction is what ModifyStat does to a stat
type StatAction string

// Stat actions
const (
	ActionPowerUp   StatAction = "up"
	ActionPowerDown StatAction = "down"
	ActionReset     StatAction = "reset"
)

// GaugeKind names a resource gauge
type GaugeKind string

// Resource gauges
const (
	GaugeHP GaugeKind = "hp"
	GaugeMP GaugeKind = "mp"
)

// CreateCombatantInput defines the request for creating a combatant. Zero
// stats fall back to the tuning defaults.
type CreateCombatantInput struct {
	Name    string
	Element element.Element
	MaxHP   int
	MaxMP   int
	Attack  int
	Defense int
	Speed   int
	Exp     uint64
	Skills  []entities.Skill
}

// CreateCombatantOutput defines the response for creating a combatant
type CreateCombatantOutput struct {
	Combatant *entities.Combatant
}

// GetCombatantInput defines the request for getting a combatant
type GetCombatantInput struct {
	CombatantID string
}

// GetCombatantOutput defines the response for getting a combatant
type GetCombatantOutput struct {
	Combatant *entities.Combatant
}

// ListCombatantsInput defines the request for listing combatants
type ListCombatantsInput struct{}

// ListCombatantsOutput defines the response for listing combatants
type ListCombatantsOutput struct {
	Combatants []*entities.Combatant
}

// AuditCombatantsInput defines the request for checking every stored combatant
type AuditCombatantsInput struct {
	// Remove deletes the combatants that fail to load
	Remove bool
}

// InvalidCombatant is a stored record that could not be loaded
type InvalidCombatant struct {
	CombatantID string
	Reason      string
}

// AuditCombatantsOutput defines the response for checking stored combatants
type AuditCombatantsOutput struct {
	Checked int
	Invalid []InvalidCombatant
	Removed int
}

// GrantExperienceInput defines the request for granting experience
type GrantExperienceInput struct {
	CombatantID string
	Exp         uint64
}

// GrantExperienceOutput defines the response for granting experience
type GrantExperienceOutput struct {
	Combatant    *entities.Combatant
	LevelsGained int
	// ExpToNextLevel is zero when AtMaxLevel is set
	ExpToNextLevel uint64
	AtMaxLevel     bool
}

// ModifyStatInput defines the request for buffing, debuffing or resetting a stat
type ModifyStatInput struct {
	CombatantID string
	Stat        Stat
	Action      StatAction
	// Amount is ignored for ActionReset and must not be negative otherwise
	Amount int
}

// ModifyStatOutput defines the response for modifying a stat
type ModifyStatOutput struct {
	Combatant *entities.Combatant
	// Applied is how far the stat actually moved
	Applied int
	Value   int
}

// AdjustGaugeInput defines the request for changing HP or MP
type AdjustGaugeInput struct {
	CombatantID string
	Gauge       GaugeKind
	// Delta is added to the gauge; negative values drain it
	Delta      int
	FullCharge bool
}

// AdjustGaugeOutput defines the response for changing HP or MP
type AdjustGaugeOutput struct {
	Combatant *entities.Combatant
	Value     int
	Max       int
	Percent   float64
}

// RollTurnOrderInput defines the request for rolling turn-order keys
type RollTurnOrderInput struct {
	CombatantIDs []string
}

// TurnOrderEntry is one combatant's key for the round
type TurnOrderEntry struct {
	CombatantID string
	Speed       int
	Key         int
}

// RollTurnOrderOutput holds one entry per requested combatant, in request order
type RollTurnOrderOutput struct {
	Entries []TurnOrderEntry
}

// ElementalMultiplierInput defines the request for a damage multiplier.
// When SkillName is set the attack element comes from the attacker's skill,
// otherwise AttackElement is used.
type ElementalMultiplierInput struct {
	DefenderID    string
	AttackerID    string
	SkillName     string
	AttackElement element.Element
}

// ElementalMultiplierOutput defines the response for a damage multiplier
type ElementalMultiplierOutput struct {
	Multiplier      float64
	AttackElement   element.Element
	DefenderElement element.Element
}
