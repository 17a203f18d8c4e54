package element

import (
	"slices"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

type affinity struct {
	weakTo      []Element
	resistantTo []Element
}

// table is read-only after package initialization. Normal has no entry and
// never takes part in advantage in either direction.
var table = map[Element]affinity{
	Fire:    {weakTo: []Element{Ice, Earth}, resistantTo: []Element{Fire, Thunder, Wind}},
	Ice:     {weakTo: []Element{Thunder, Wind}, resistantTo: []Element{Fire, Ice, Earth}},
	Thunder: {weakTo: []Element{Fire, Earth}, resistantTo: []Element{Ice, Thunder, Wind}},
	Earth:   {weakTo: []Element{Ice, Wind}, resistantTo: []Element{Fire, Thunder, Earth}},
	Wind:    {weakTo: []Element{Fire, Thunder}, resistantTo: []Element{Ice, Earth, Wind}},
	Shine:   {weakTo: []Element{Dark}, resistantTo: []Element{Shine}},
	Dark:    {weakTo: []Element{Shine}, resistantTo: []Element{Dark}},
}

// Multiplier returns the damage multiplier for an attack of element attack
// against a defender of element defender: Weak when the defender is weak to
// it, Resisted when the defender resists it and Neutral otherwise.
// Returns errors.UnsupportedElement when either element is not supported.
func Multiplier(defender, attack Element) (float64, error) {
	if !defender.Valid() {
		return 0, errors.UnsupportedElementf("unsupported defender element %d", uint8(defender))
	}
	if !attack.Valid() {
		return 0, errors.UnsupportedElementf("unsupported attack element %d", uint8(attack))
	}
	if defender == Normal || attack == Normal {
		return Neutral, nil
	}

	a := table[defender]
	switch {
	case slices.Contains(a.weakTo, attack):
		return Weak, nil
	case slices.Contains(a.resistantTo, attack):
		return Resisted, nil
	}
	return Neutral, nil
}

// WeakTo returns the elements that deal double damage to e.
func (e Element) WeakTo() []Element {
	return slices.Clone(table[e].weakTo)
}

// ResistantTo returns the elements that deal half damage to e.
func (e Element) ResistantTo() []Element {
	return slices.Clone(table[e].resistantTo)
}
