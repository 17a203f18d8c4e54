// Package speed provides the speed stat and the jittered key a scheduler
// uses to order combatants within a round.
package speed

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/stats/bounded"
	"github.com/KirkDiggler/rpg-combat/internal/stats/progression"
)

// Manager is a buffable speed stat.
type Manager[T bounded.Number] struct {
	stat progression.Progression[T]
}

// New creates a speed stat at baseline within [min, max].
func New[T bounded.Number](baseline, max, min T) (Manager[T], error) {
	p, err := progression.New(baseline, max, min)
	if err != nil {
		return Manager[T]{}, err
	}
	return Manager[T]{stat: p}, nil
}

// FromData rebuilds a speed stat from its persisted form.
func FromData[T bounded.Number](d progression.Data[T]) (Manager[T], error) {
	p, err := progression.FromData(d)
	if err != nil {
		return Manager[T]{}, err
	}
	return Manager[T]{stat: p}, nil
}

// Data returns the persisted form of the speed stat
func (m Manager[T]) Data() progression.Data[T] { return m.stat.Data() }

// Progression returns a copy of the underlying stat
func (m Manager[T]) Progression() progression.Progression[T] { return m.stat }

// Value returns the current, possibly buffed, speed
func (m Manager[T]) Value() T { return m.stat.Value() }

// Baseline returns the unbuffed speed
func (m Manager[T]) Baseline() T { return m.stat.Baseline() }

// Min returns the lower bound
func (m Manager[T]) Min() T { return m.stat.Min() }

// Max returns the upper bound
func (m Manager[T]) Max() T { return m.stat.Max() }

// PowerUp raises speed and returns the applied change
func (m *Manager[T]) PowerUp(delta T) (T, error) { return m.stat.PowerUp(delta) }

// PowerDown lowers speed and returns the applied change
func (m *Manager[T]) PowerDown(delta T) (T, error) { return m.stat.PowerDown(delta) }

// Reset restores the baseline speed
func (m *Manager[T]) Reset() { m.stat.Reset() }

// SetMax replaces the upper bound
func (m *Manager[T]) SetMax(max T) error { return m.stat.SetMax(max) }

// SetMin replaces the lower bound
func (m *Manager[T]) SetMin(min T) error { return m.stat.SetMin(min) }

// GrowMax moves the upper bound by delta
func (m *Manager[T]) GrowMax(delta T) error { return m.stat.GrowMax(delta) }

// GrowMin moves the lower bound by delta
func (m *Manager[T]) GrowMin(delta T) error { return m.stat.GrowMin(delta) }

// TurnOrderKey returns the current speed plus one jitter sample drawn
// uniformly from [minJitter, maxJitter].
//
// The key is not clamped to the stat's bounds, only to the limits of T. The
// roller is owned by the caller; passing the same roller for every combatant
// in a round keeps one reproducible stream.
func (m Manager[T]) TurnOrderKey(roller dice.Roller, minJitter, maxJitter int) (T, error) {
	if roller == nil {
		return 0, errors.InvalidArgument("roller is required")
	}
	if minJitter > maxJitter {
		return 0, errors.InvalidBoundsf("min jitter %d must not exceed max jitter %d", minJitter, maxJitter)
	}
	// the difference wraps in int but is exact as a uint64 once max >= min
	span := uint64(maxJitter) - uint64(minJitter)
	if span >= math.MaxInt {
		return 0, errors.InvalidBoundsf("jitter range [%d, %d] is too wide", minJitter, maxJitter)
	}

	roll, err := roller.Roll(int(span) + 1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll turn order jitter")
	}
	sample := minJitter + roll - 1

	key := bounded.Unbounded(m.stat.Value())
	shift(&key, sample)
	return key.Value(), nil
}

// shift moves key by sample, saturating at the limits of T. A sample wider
// than T is applied in T-sized steps.
func shift[T bounded.Number](key *bounded.Value[T], sample int) {
	move := key.Add
	done := func() bool { return key.IsMax() }
	mag := uint64(sample)
	if sample < 0 {
		move = key.Sub
		done = func() bool { return key.IsMin() }
		mag = uint64(-(sample + 1)) + 1
	}

	for mag > 0 && !done() {
		step := bounded.Narrow[T](mag)
		move(step)
		applied := bounded.Narrow[uint64](step)
		if applied >= mag {
			return
		}
		mag -= applied
	}
}
