package testutils

import (
	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/testutils/builders"
)

// Combatant fixture IDs
const (
	HeroID    = "cbt-hero"
	MageID    = "cbt-mage"
	SlimeID   = "cbt-slime"
	WraithID  = "cbt-wraith"
	FixtureHP = 40
)

// CreateTestSkills returns one skill per advantage case against a fire defender
func CreateTestSkills() []entities.Skill {
	return []entities.Skill{
		{Name: "Frost Lance", Element: element.Ice, MPCost: 4, BasePower: 28},
		{Name: "Ember", Element: element.Fire, MPCost: 2, BasePower: 14},
		{Name: "Strike", Element: element.Normal, MPCost: 0, BasePower: 10},
	}
}

// CreateTestCombatant creates a stored-form combatant with sensible defaults
func CreateTestCombatant(id string) *entities.CombatantData {
	return builders.NewCombatantDataBuilder().
		WithID(id).
		WithName("Test "+id).
		WithHP(FixtureHP, FixtureHP).
		Build()
}

// CreateTestParty returns a mixed-element party ordered by ID
func CreateTestParty() []*entities.CombatantData {
	return []*entities.CombatantData{
		builders.NewCombatantDataBuilder().
			WithID(HeroID).
			WithName("Hero").
			WithElement(element.Fire).
			WithSpeed(14).
			WithAttack(18).
			WithExp(120).
			Build(),
		builders.NewCombatantDataBuilder().
			WithID(MageID).
			WithName("Mage").
			WithElement(element.Ice).
			WithMP(30, 30).
			WithSpeed(9).
			WithSkill(CreateTestSkills()[0]).
			WithSkill(CreateTestSkills()[1]).
			Build(),
		builders.NewCombatantDataBuilder().
			WithID(SlimeID).
			WithName("Slime").
			WithElement(element.Thunder).
			WithHP(12, 12).
			WithSpeed(5).
			Build(),
		builders.NewCombatantDataBuilder().
			WithID(WraithID).
			WithName("Wraith").
			WithElement(element.Dark).
			WithSpeed(20).
			Build(),
	}
}
