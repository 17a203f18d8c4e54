// Package bounded provides a numeric value that is permanently confined to
// a closed [min, max] range.
//
// Every operation that can change the value funnels through a single clamp,
// so min <= value <= max holds after construction and after every mutation.
// Bound changes that would leave min above max fail with an InvalidBounds
// error instead of silently reordering the bounds.
package bounded

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Number is the set of native numeric kinds a bounded value can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Value is a number clamped to [min, max]. The zero Value is 0 in [0, 0].
type Value[T Number] struct {
	value T
	min   T
	max   T
}

// New creates a bounded value, clamping value into [min, max].
// Returns errors.InvalidBounds when min > max.
func New[T Number](value, max, min T) (Value[T], error) {
	if !(min <= max) {
		return Value[T]{}, errors.InvalidBoundsf("min %v must not exceed max %v", min, max)
	}

	v := Value[T]{min: min, max: max}
	v.set(value)
	return v, nil
}

// Unbounded creates a value whose bounds span the full range of T.
func Unbounded[T Number](value T) Value[T] {
	v := Value[T]{min: typeMin[T](), max: typeMax[T]()}
	v.set(value)
	return v
}

// set is the only place the current value is assigned.
func (v *Value[T]) set(x T) {
	switch {
	case !(x >= v.min):
		// NaN lands here as well
		v.value = v.min
	case x > v.max:
		v.value = v.max
	default:
		v.value = x
	}
}

// Value returns the current value
func (v Value[T]) Value() T { return v.value }

// Min returns the current lower bound
func (v Value[T]) Min() T { return v.min }

// Max returns the current upper bound
func (v Value[T]) Max() T { return v.max }

// IsMin reports whether the value sits on the lower bound
func (v Value[T]) IsMin() bool { return v.value == v.min }

// IsMax reports whether the value sits on the upper bound
func (v Value[T]) IsMax() bool { return v.value == v.max }

func (v Value[T]) String() string {
	return fmt.Sprintf("%v [%v, %v]", v.value, v.min, v.max)
}

// Set assigns x, clamped into the current bounds.
func (v *Value[T]) Set(x T) {
	v.set(x)
}

// SetMax replaces the upper bound and re-clamps the value.
// Returns errors.InvalidBounds when max would fall below min.
func (v *Value[T]) SetMax(max T) error {
	if !(max >= v.min) {
		return errors.InvalidBoundsf("max %v must not be below min %v", max, v.min)
	}
	v.max = max
	v.set(v.value)
	return nil
}

// SetMin replaces the lower bound and re-clamps the value.
// Returns errors.InvalidBounds when min would rise above max.
func (v *Value[T]) SetMin(min T) error {
	if !(min <= v.max) {
		return errors.InvalidBoundsf("min %v must not exceed max %v", min, v.max)
	}
	v.min = min
	v.set(v.value)
	return nil
}

// GrowMax moves the upper bound by delta, which may be negative.
func (v *Value[T]) GrowMax(delta T) error {
	return v.SetMax(addSat(v.max, delta))
}

// GrowMin moves the lower bound by delta, which may be negative.
func (v *Value[T]) GrowMin(delta T) error {
	return v.SetMin(addSat(v.min, delta))
}

// Add adds n in place.
func (v *Value[T]) Add(n T) { v.set(addSat(v.value, n)) }

// Sub subtracts n in place.
func (v *Value[T]) Sub(n T) { v.set(subSat(v.value, n)) }

// Mul multiplies by n in place.
func (v *Value[T]) Mul(n T) { v.set(mulSat(v.value, n)) }

// Div divides by n in place. Returns errors.DivisionByZero when n is zero.
func (v *Value[T]) Div(n T) error {
	if n == 0 {
		return errors.DivisionByZero("cannot divide a bounded value by zero")
	}
	v.set(quoSat(v.value, n))
	return nil
}

// Inc adds one in place.
func (v *Value[T]) Inc() { v.Add(1) }

// Dec subtracts one in place.
func (v *Value[T]) Dec() { v.Sub(1) }

// Apply replaces the value with f(value), clamped. It is the in-place form
// of the integer-only helpers, e.g. v.Apply(func(x int) int { return x &^ mask }).
func (v *Value[T]) Apply(f func(T) T) {
	v.set(f(v.value))
}

// Plus returns value+n as a new value with the same bounds.
func (v Value[T]) Plus(n T) Value[T] {
	v.Add(n)
	return v
}

// Minus returns value-n as a new value with the same bounds.
func (v Value[T]) Minus(n T) Value[T] {
	v.Sub(n)
	return v
}

// Times returns value*n as a new value with the same bounds.
func (v Value[T]) Times(n T) Value[T] {
	v.Mul(n)
	return v
}

// Quo returns value/n as a new value with the same bounds.
func (v Value[T]) Quo(n T) (Value[T], error) {
	if err := v.Div(n); err != nil {
		return Value[T]{}, err
	}
	return v, nil
}
