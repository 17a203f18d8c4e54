// Package entities provides the combat data structures for rpg-combat.
package entities

import "github.com/KirkDiggler/rpg-combat/internal/element"

// Skill is an action a combatant can use. The record is payload only; cost
// and power are read by the damage resolver, not interpreted here.
type Skill struct {
	Name        string          `json:"name" yaml:"name"`
	MPCost      int             `json:"mp_cost" yaml:"mp_cost"`
	BasePower   int             `json:"base_power" yaml:"base_power"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Element     element.Element `json:"element" yaml:"element"`
}
