package bounded

import "math"

// kind describes how a numeric type is represented so limits and
// overflow checks can be computed without reflection.
type kind struct {
	float  bool
	signed bool
	bits   int
}

func kindOf[T Number]() kind {
	var zero T
	one := T(1)
	if one/2 != zero {
		third := 1.0 / 3
		if float64(T(third)) != third {
			return kind{float: true, signed: true, bits: 32}
		}
		return kind{float: true, signed: true, bits: 64}
	}

	// doubling one wraps to zero after exactly bits steps
	bits := 0
	for x := one; x != zero; x *= 2 {
		bits++
	}
	return kind{signed: zero-1 < zero, bits: bits}
}

// intLimits returns the representable range of a signed integer kind.
func (k kind) intLimits() (int64, int64) {
	var lo int64 = -1 << (k.bits - 1)
	return lo, -(lo + 1)
}

// uintMax returns the largest value of an unsigned integer kind.
func (k kind) uintMax() uint64 {
	if k.bits == 64 {
		return math.MaxUint64
	}
	return 1<<k.bits - 1
}

func (k kind) floatMax() float64 {
	if k.bits == 32 {
		return math.MaxFloat32
	}
	return math.MaxFloat64
}

// typeMin returns the lowest finite value representable by T.
func typeMin[T Number]() T {
	k := kindOf[T]()
	switch {
	case k.float:
		return T(-k.floatMax())
	case k.signed:
		lo, _ := k.intLimits()
		return T(lo)
	default:
		return 0
	}
}

// typeMax returns the highest finite value representable by T.
func typeMax[T Number]() T {
	k := kindOf[T]()
	switch {
	case k.float:
		return T(k.floatMax())
	case k.signed:
		_, hi := k.intLimits()
		return T(hi)
	default:
		return T(k.uintMax())
	}
}
