// Package progression provides buffable combat stats (attack, defense, speed)
// that remember the value they started from.
package progression

import (
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/stats/bounded"
)

// Progression is a bounded value with a fixed baseline. Buffs and debuffs
// move the current value; Reset returns it to the baseline.
type Progression[T bounded.Number] struct {
	value    bounded.Value[T]
	baseline T
}

// Data is the persisted form of a progression.
type Data[T bounded.Number] struct {
	bounded.Data[T] `yaml:",inline"`
	Baseline        T `json:"baseline" yaml:"baseline"`
}

// New creates a progression at baseline within [min, max]. The baseline is
// clamped the same way the value is.
// Returns errors.InvalidBounds when min > max.
func New[T bounded.Number](baseline, max, min T) (Progression[T], error) {
	v, err := bounded.New(baseline, max, min)
	if err != nil {
		return Progression[T]{}, err
	}
	return Progression[T]{value: v, baseline: v.Value()}, nil
}

// FromData rebuilds a progression, keeping the stored current value rather
// than resetting it to the baseline.
func FromData[T bounded.Number](d Data[T]) (Progression[T], error) {
	p, err := New(d.Baseline, d.Max, d.Min)
	if err != nil {
		return Progression[T]{}, err
	}
	p.value.Set(d.Value)
	return p, nil
}

// Data returns the persisted form of the progression
func (p Progression[T]) Data() Data[T] {
	return Data[T]{Data: p.value.Data(), Baseline: p.baseline}
}

// Bounded returns a copy of the underlying bounded value
func (p Progression[T]) Bounded() bounded.Value[T] { return p.value }

// Baseline returns the value captured at construction
func (p Progression[T]) Baseline() T { return p.baseline }

// Value returns the current, possibly buffed, value
func (p Progression[T]) Value() T { return p.value.Value() }

// Min returns the lower bound
func (p Progression[T]) Min() T { return p.value.Min() }

// Max returns the upper bound
func (p Progression[T]) Max() T { return p.value.Max() }

// Reset restores the baseline, clamped into the current bounds.
func (p *Progression[T]) Reset() { p.value.Set(p.baseline) }

// PowerUp raises the value by delta and returns how much it actually rose.
// Returns errors.InvalidDelta when delta is negative.
func (p *Progression[T]) PowerUp(delta T) (T, error) {
	if !(delta >= 0) {
		return 0, errors.InvalidDeltaf("power up delta must not be negative, got %v", delta)
	}

	before := p.value.Value()
	p.value.Add(delta)
	return p.value.Value() - before, nil
}

// PowerDown lowers the value by delta and returns how much it actually fell.
// Returns errors.InvalidDelta when delta is negative.
func (p *Progression[T]) PowerDown(delta T) (T, error) {
	if !(delta >= 0) {
		return 0, errors.InvalidDeltaf("power down delta must not be negative, got %v", delta)
	}

	before := p.value.Value()
	p.value.Sub(delta)
	return before - p.value.Value(), nil
}

// SetMax replaces the upper bound, re-clamping the current value
func (p *Progression[T]) SetMax(max T) error { return p.value.SetMax(max) }

// SetMin replaces the lower bound, re-clamping the current value
func (p *Progression[T]) SetMin(min T) error { return p.value.SetMin(min) }

// GrowMax moves the upper bound by delta
func (p *Progression[T]) GrowMax(delta T) error { return p.value.GrowMax(delta) }

// GrowMin moves the lower bound by delta
func (p *Progression[T]) GrowMin(delta T) error { return p.value.GrowMin(delta) }
