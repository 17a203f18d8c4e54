package bounded

import (
	"golang.org/x/exp/constraints"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// The operators below only exist for integer kinds. Each returns a new
// value with the bounds of v and the result clamped into them; use
// (*Value).Apply for the in-place form.

// Rem returns value%n. Returns errors.DivisionByZero when n is zero.
func Rem[T constraints.Integer](v Value[T], n T) (Value[T], error) {
	if n == 0 {
		return Value[T]{}, errors.DivisionByZero("cannot take the remainder of division by zero")
	}
	v.set(v.value % n)
	return v, nil
}

// And returns value&n.
func And[T constraints.Integer](v Value[T], n T) Value[T] {
	v.set(v.value & n)
	return v
}

// Or returns value|n.
func Or[T constraints.Integer](v Value[T], n T) Value[T] {
	v.set(v.value | n)
	return v
}

// Xor returns value^n.
func Xor[T constraints.Integer](v Value[T], n T) Value[T] {
	v.set(v.value ^ n)
	return v
}

// AndNot returns value&^n.
func AndNot[T constraints.Integer](v Value[T], n T) Value[T] {
	v.set(v.value &^ n)
	return v
}

// Shl returns value<<n.
func Shl[T constraints.Integer](v Value[T], n uint) Value[T] {
	v.set(v.value << n)
	return v
}

// Shr returns value>>n.
func Shr[T constraints.Integer](v Value[T], n uint) Value[T] {
	v.set(v.value >> n)
	return v
}
