package bounded

// Convert changes the representation of v to U. The bounds are first
// clamped into U's representable range, taking the tighter of the two where
// they exceed it, and the value is then clamped into the new bounds.
func Convert[U, T Number](v Value[T]) Value[U] {
	out := Value[U]{
		min: Narrow[U](v.min),
		max: Narrow[U](v.max),
	}
	out.set(Narrow[U](v.value))
	return out
}

// Narrow converts x to U, saturating at U's limits. NaN becomes 0.
func Narrow[U, T Number](x T) U {
	from, to := kindOf[T](), kindOf[U]()

	switch {
	case from.float:
		return narrowFloat[U](float64(x), to)
	case to.float:
		// every integer fits in the range of both float kinds
		return U(x)
	case from.signed:
		return narrowInt[U](int64(x), to)
	default:
		return narrowUint[U](uint64(x), to)
	}
}

func narrowFloat[U Number](f float64, to kind) U {
	if f != f {
		return 0
	}
	if to.float {
		m := to.floatMax()
		switch {
		case f > m:
			return U(m)
		case f < -m:
			return U(-m)
		}
		return U(f)
	}
	if to.signed {
		lo, hi := to.intLimits()
		switch {
		case f <= float64(lo):
			return U(lo)
		case f >= float64(hi):
			return U(hi)
		}
		return U(f)
	}
	hi := to.uintMax()
	switch {
	case f <= 0:
		return 0
	case f >= float64(hi):
		return U(hi)
	}
	return U(f)
}

func narrowInt[U Number](i int64, to kind) U {
	if to.signed {
		lo, hi := to.intLimits()
		switch {
		case i < lo:
			return U(lo)
		case i > hi:
			return U(hi)
		}
		return U(i)
	}
	if i < 0 {
		return 0
	}
	return narrowUint[U](uint64(i), to)
}

func narrowUint[U Number](u uint64, to kind) U {
	if to.signed {
		_, hi := to.intLimits()
		if u > uint64(hi) {
			return U(hi)
		}
		return U(u)
	}
	if hi := to.uintMax(); u > hi {
		return U(hi)
	}
	return U(u)
}
