package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/stats/bounded"
	"github.com/KirkDiggler/rpg-combat/internal/stats/gauge"
	"github.com/KirkDiggler/rpg-combat/internal/stats/level"
	"github.com/KirkDiggler/rpg-combat/internal/stats/progression"
	"github.com/KirkDiggler/rpg-combat/internal/stats/speed"
)

// EntityTypeCombatant is the core.Entity type of every combatant
const EntityTypeCombatant = "combatant"

var _ core.Entity = (*Combatant)(nil)

// Combatant is a participant in battle with live stat values.
type Combatant struct {
	ID        string
	Name      string
	Element   element.Element
	HP        gauge.Gauge[int]
	MP        gauge.Gauge[int]
	Attack    progression.Progression[int]
	Defense   progression.Progression[int]
	Speed     speed.Manager[int]
	Level     *level.Manager
	Skills    []Skill
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID implements core.Entity
func (c *Combatant) GetID() string { return c.ID }

// GetType implements core.Entity
func (c *Combatant) GetType() string { return EntityTypeCombatant }

// IsDefeated reports whether HP has run out
func (c *Combatant) IsDefeated() bool { return c.HP.IsMin() }

// FindSkill returns the skill with the given name
func (c *Combatant) FindSkill(name string) (Skill, bool) {
	for _, s := range c.Skills {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}

// CanUse reports whether the combatant has the MP to pay for skill
func (c *Combatant) CanUse(skill Skill) bool {
	return c.MP.Value() >= skill.MPCost
}

// CombatantData is the persisted form of a Combatant.
type CombatantData struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Element   element.Element       `json:"element"`
	HP        bounded.Data[int]     `json:"hp"`
	MP        bounded.Data[int]     `json:"mp"`
	Attack    progression.Data[int] `json:"attack"`
	Defense   progression.Data[int] `json:"defense"`
	Speed     progression.Data[int] `json:"speed"`
	Level     level.Data            `json:"level"`
	Skills    []Skill               `json:"skills,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ToData converts the combatant to its persisted form.
func (c *Combatant) ToData() *CombatantData {
	d := &CombatantData{
		ID:        c.ID,
		Name:      c.Name,
		Element:   c.Element,
		HP:        c.HP.Data(),
		MP:        c.MP.Data(),
		Attack:    c.Attack.Data(),
		Defense:   c.Defense.Data(),
		Speed:     c.Speed.Data(),
		Skills:    append([]Skill(nil), c.Skills...),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Level != nil {
		d.Level = c.Level.Data()
	}
	return d
}

// CombatantFromData rebuilds a combatant, validating every stored stat.
func CombatantFromData(d *CombatantData) (*Combatant, error) {
	if d == nil {
		return nil, errors.InvalidArgument("combatant data is required")
	}

	hp, err := gauge.FromData(d.HP)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hp")
	}
	mp, err := gauge.FromData(d.MP)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mp")
	}
	attack, err := progression.FromData(d.Attack)
	if err != nil {
		return nil, errors.Wrap(err, "invalid attack")
	}
	defense, err := progression.FromData(d.Defense)
	if err != nil {
		return nil, errors.Wrap(err, "invalid defense")
	}
	spd, err := speed.FromData(d.Speed)
	if err != nil {
		return nil, errors.Wrap(err, "invalid speed")
	}
	lvl, err := level.FromData(d.Level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid level")
	}

	return &Combatant{
		ID:        d.ID,
		Name:      d.Name,
		Element:   d.Element,
		HP:        hp,
		MP:        mp,
		Attack:    attack,
		Defense:   defense,
		Speed:     spd,
		Level:     lvl,
		Skills:    append([]Skill(nil), d.Skills...),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
