// Package element defines combat elements and the fixed advantage table
// that turns an (attack, defender) pair into a damage multiplier.
package element

import (
	"fmt"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Element is a combat element. The zero value is Normal.
type Element uint8

// Supported elements
const (
	Normal Element = iota
	Fire
	Ice
	Thunder
	Earth
	Wind
	Shine
	Dark

	count
)

// Damage multipliers returned by Multiplier
const (
	Weak     = 2.0
	Neutral  = 1.0
	Resisted = 0.5
)

var names = [count]string{
	Normal:  "normal",
	Fire:    "fire",
	Ice:     "ice",
	Thunder: "thunder",
	Earth:   "earth",
	Wind:    "wind",
	Shine:   "shine",
	Dark:    "dark",
}

// String returns the lowercase name of e, or "element(n)" when e is not a
// supported element.
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("element(%d)", uint8(e))
	}
	return names[e]
}

// Valid reports whether e is one of the supported elements
func (e Element) Valid() bool { return e < count }

// All returns every supported element in declaration order
func All() []Element {
	out := make([]Element, 0, count)
	for e := Normal; e < count; e++ {
		out = append(out, e)
	}
	return out
}

// Parse maps a case-sensitive lowercase name to its element. Unknown text
// gives Normal, which keeps data-driven content loading lenient.
func Parse(text string) Element {
	for e, name := range names {
		if name == text {
			return Element(e)
		}
	}
	return Normal
}

// MarshalText encodes e by name.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, errors.UnsupportedElementf("cannot encode unsupported element %d", uint8(e))
	}
	return []byte(names[e]), nil
}

// UnmarshalText decodes a name the same way Parse does.
func (e *Element) UnmarshalText(text []byte) error {
	*e = Parse(string(text))
	return nil
}
