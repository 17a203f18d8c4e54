package bounded

// The helpers below saturate at the representation's limits instead of
// wrapping, so an overflowing integer result still lands on the correct
// side of the bounds once it is clamped.

func addSat[T Number](a, b T) T {
	r := a + b
	if b > 0 && r < a {
		return typeMax[T]()
	}
	if b < 0 && r > a {
		return typeMin[T]()
	}
	return r
}

func subSat[T Number](a, b T) T {
	r := a - b
	if b > 0 && r > a {
		return typeMin[T]()
	}
	if b < 0 && r < a {
		return typeMax[T]()
	}
	return r
}

func mulSat[T Number](a, b T) T {
	r := a * b
	if kindOf[T]().float || a == 0 || b == 0 {
		return r
	}
	positive := (a > 0) == (b > 0)
	if r/b != a || (positive && r < 0) || (!positive && r > 0) {
		if positive {
			return typeMax[T]()
		}
		return typeMin[T]()
	}
	return r
}

// quoSat assumes b != 0.
func quoSat[T Number](a, b T) T {
	r := a / b
	// the only integer quotient that overflows is MinInt / -1
	if a < 0 && b < 0 && r < 0 {
		return typeMax[T]()
	}
	return r
}
