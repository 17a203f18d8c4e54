// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/stats/bounded"
	"github.com/KirkDiggler/rpg-combat/internal/stats/level"
	"github.com/KirkDiggler/rpg-combat/internal/stats/progression"
)

// CombatantDataBuilder provides a fluent interface for building test
// CombatantData instances. The defaults are a valid level 1 combatant.
type CombatantDataBuilder struct {
	data *entities.CombatantData
}

// NewCombatantDataBuilder creates a new builder with minimal defaults
func NewCombatantDataBuilder() *CombatantDataBuilder {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &CombatantDataBuilder{
		data: &entities.CombatantData{
			ID:        "cbt-test-001",
			Name:      "Test Combatant",
			Element:   element.Normal,
			HP:        bounded.Data[int]{Value: 40, Min: 0, Max: 40},
			MP:        bounded.Data[int]{Value: 10, Min: 0, Max: 10},
			Attack:    stat(12),
			Defense:   stat(8),
			Speed:     stat(10),
			Level:     level.Data{Thresholds: []uint64{100, 250, 500}},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func stat(baseline int) progression.Data[int] {
	return progression.Data[int]{
		Data:     bounded.Data[int]{Value: baseline, Min: 1, Max: 255},
		Baseline: baseline,
	}
}

// WithID sets the combatant ID
func (b *CombatantDataBuilder) WithID(id string) *CombatantDataBuilder {
	b.data.ID = id
	return b
}

// WithName sets the combatant name
func (b *CombatantDataBuilder) WithName(name string) *CombatantDataBuilder {
	b.data.Name = name
	return b
}

// WithElement sets the combatant element
func (b *CombatantDataBuilder) WithElement(e element.Element) *CombatantDataBuilder {
	b.data.Element = e
	return b
}

// WithHP sets current and max HP with a floor of zero
func (b *CombatantDataBuilder) WithHP(current, max int) *CombatantDataBuilder {
	b.data.HP = bounded.Data[int]{Value: current, Min: 0, Max: max}
	return b
}

// WithMP sets current and max MP with a floor of zero
func (b *CombatantDataBuilder) WithMP(current, max int) *CombatantDataBuilder {
	b.data.MP = bounded.Data[int]{Value: current, Min: 0, Max: max}
	return b
}

// WithSpeed sets the speed baseline and current value
func (b *CombatantDataBuilder) WithSpeed(speed int) *CombatantDataBuilder {
	b.data.Speed = stat(speed)
	return b
}

// WithAttack sets the attack baseline and current value
func (b *CombatantDataBuilder) WithAttack(attack int) *CombatantDataBuilder {
	b.data.Attack = stat(attack)
	return b
}

// WithExp sets accumulated experience
func (b *CombatantDataBuilder) WithExp(exp uint64) *CombatantDataBuilder {
	b.data.Level.Exp = exp
	return b
}

// WithSkill appends a skill
func (b *CombatantDataBuilder) WithSkill(skill entities.Skill) *CombatantDataBuilder {
	b.data.Skills = append(b.data.Skills, skill)
	return b
}

// Build returns the built combatant data
func (b *CombatantDataBuilder) Build() *entities.CombatantData {
	return b.data
}
