// Package gauge provides HP/MP style resource pools that report how full
// they are for display.
package gauge

import (
	"math"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/stats/bounded"
)

// Gauge is a bounded value with ratio and percentage reporting.
type Gauge[T bounded.Number] struct {
	value bounded.Value[T]
}

// New creates a gauge holding current within [min, max].
// Returns errors.InvalidBounds when min > max.
func New[T bounded.Number](current, max, min T) (Gauge[T], error) {
	v, err := bounded.New(current, max, min)
	if err != nil {
		return Gauge[T]{}, err
	}
	return Gauge[T]{value: v}, nil
}

// Full creates a gauge in [0, max] that starts full.
func Full[T bounded.Number](max T) (Gauge[T], error) {
	return New(max, max, 0)
}

// FromData rebuilds a gauge from its persisted (value, min, max) triple.
func FromData[T bounded.Number](d bounded.Data[T]) (Gauge[T], error) {
	v, err := bounded.FromData(d)
	if err != nil {
		return Gauge[T]{}, err
	}
	return Gauge[T]{value: v}, nil
}

// Data returns the persisted form of the gauge
func (g Gauge[T]) Data() bounded.Data[T] { return g.value.Data() }

// Bounded returns a copy of the underlying bounded value
func (g Gauge[T]) Bounded() bounded.Value[T] { return g.value }

// Value returns the current amount
func (g Gauge[T]) Value() T { return g.value.Value() }

// Min returns the lower bound
func (g Gauge[T]) Min() T { return g.value.Min() }

// Max returns the upper bound
func (g Gauge[T]) Max() T { return g.value.Max() }

// IsMin reports whether the gauge is empty
func (g Gauge[T]) IsMin() bool { return g.value.IsMin() }

// IsMax reports whether the gauge is full
func (g Gauge[T]) IsMax() bool { return g.value.IsMax() }

// Set assigns the current amount, clamped
func (g *Gauge[T]) Set(x T) { g.value.Set(x) }

// Add raises the current amount, clamped
func (g *Gauge[T]) Add(n T) { g.value.Add(n) }

// Sub lowers the current amount, clamped
func (g *Gauge[T]) Sub(n T) { g.value.Sub(n) }

// FullCharge fills the gauge to max.
func (g *Gauge[T]) FullCharge() { g.value.Set(g.value.Max()) }

// SetMax replaces the upper bound. Returns errors.InvalidBounds when it
// would fall below min.
func (g *Gauge[T]) SetMax(max T) error { return g.value.SetMax(max) }

// SetMin replaces the lower bound. Returns errors.InvalidBounds when it
// would rise above max.
func (g *Gauge[T]) SetMin(min T) error { return g.value.SetMin(min) }

// GrowMax moves the upper bound by delta, which may be negative.
func (g *Gauge[T]) GrowMax(delta T) error { return g.value.GrowMax(delta) }

// GrowMin moves the lower bound by delta, which may be negative.
func (g *Gauge[T]) GrowMin(delta T) error { return g.value.GrowMin(delta) }

// Ratio returns (value-min)/(max-min) in [0, 1].
// Returns errors.DivisionByZero when max == min.
func (g Gauge[T]) Ratio() (float64, error) {
	lo, hi := float64(g.value.Min()), float64(g.value.Max())
	span := hi - lo
	if span == 0 {
		return 0, errors.DivisionByZero("gauge ratio is undefined when max equals min")
	}

	r := (float64(g.value.Value()) - lo) / span
	// float64 rounding on very wide integer ranges can step past the ends
	return math.Min(1, math.Max(0, r)), nil
}

// Percent returns the fill percentage rounded half-up to two decimals.
//
// A gauge that is not empty never reports 0.00, it reports 0.01 instead,
// and a gauge that is not full never reports 100.00, it reports 99.99.
func (g Gauge[T]) Percent() (float64, error) {
	r, err := g.Ratio()
	if err != nil {
		return 0, err
	}

	p := roundHalfUp(r * 100)
	switch {
	case p == 0 && !g.IsMin():
		return 0.01, nil
	case p == 100 && !g.IsMax():
		return 99.99, nil
	}
	return p, nil
}

// roundHalfUp rounds a non-negative percentage to two decimal places. The
// scaled value is first snapped to 1e-6 so halves that float64 cannot hold
// exactly, like 1.005, still round up.
func roundHalfUp(p float64) float64 {
	scaled := math.Round(p*1e8) / 1e6
	return math.Floor(scaled+0.5) / 100
}
