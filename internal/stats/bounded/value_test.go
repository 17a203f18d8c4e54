package bounded_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/stats/bounded"
)

type ValueTestSuite struct {
	suite.Suite
}

func TestValueSuite(t *testing.T) {
	suite.Run(t, new(ValueTestSuite))
}

func (s *ValueTestSuite) TestNew() {
	s.Run("clamps above max", func() {
		v, err := bounded.New(150, 100, 0)
		s.Require().NoError(err)
		s.Equal(100, v.Value())
		s.True(v.IsMax())
	})

	s.Run("clamps below min", func() {
		v, err := bounded.New(-5, 100, 0)
		s.Require().NoError(err)
		s.Equal(0, v.Value())
		s.True(v.IsMin())
	})

	s.Run("keeps value in range", func() {
		v, err := bounded.New(42.5, 100.0, -100.0)
		s.Require().NoError(err)
		s.Equal(42.5, v.Value())
		s.Equal(-100.0, v.Min())
		s.Equal(100.0, v.Max())
	})

	s.Run("min equal to max is allowed", func() {
		v, err := bounded.New(uint8(9), 3, 3)
		s.Require().NoError(err)
		s.Equal(uint8(3), v.Value())
	})

	s.Run("min above max fails", func() {
		v, err := bounded.New(5, 0, 10)
		s.Require().Error(err)
		s.True(errors.IsInvalidBounds(err))
		s.Equal(bounded.Value[int]{}, v)
	})

	s.Run("NaN bound fails", func() {
		_, err := bounded.New(1.0, math.NaN(), 0)
		s.True(errors.IsInvalidBounds(err))
	})

	s.Run("NaN value clamps to min", func() {
		v, err := bounded.New(math.NaN(), 10.0, 2.0)
		s.Require().NoError(err)
		s.Equal(2.0, v.Value())
	})
}

func (s *ValueTestSuite) TestUnbounded() {
	v := bounded.Unbounded(int8(5))
	s.Equal(int8(math.MinInt8), v.Min())
	s.Equal(int8(math.MaxInt8), v.Max())

	u := bounded.Unbounded(uint16(5))
	s.Equal(uint16(0), u.Min())
	s.Equal(uint16(math.MaxUint16), u.Max())

	f := bounded.Unbounded(float32(1.5))
	s.Equal(float32(-math.MaxFloat32), f.Min())
	s.Equal(float32(math.MaxFloat32), f.Max())
}

func (s *ValueTestSuite) TestSetMaxAndMin() {
	s.Run("shrinking max re-clamps value", func() {
		v, _ := bounded.New(80, 100, 0)
		s.Require().NoError(v.SetMax(50))
		s.Equal(50, v.Value())
		s.Equal(50, v.Max())
	})

	s.Run("max below min fails and leaves value untouched", func() {
		v, _ := bounded.New(20, 100, 10)
		err := v.SetMax(5)
		s.True(errors.IsInvalidBounds(err))
		s.Equal(20, v.Value())
		s.Equal(100, v.Max())
	})

	s.Run("raising min re-clamps value", func() {
		v, _ := bounded.New(5, 100, 0)
		s.Require().NoError(v.SetMin(30))
		s.Equal(30, v.Value())
	})

	s.Run("min above max fails", func() {
		v, _ := bounded.New(5, 100, 0)
		s.True(errors.IsInvalidBounds(v.SetMin(101)))
		s.Equal(0, v.Min())
	})
}

func (s *ValueTestSuite) TestGrowBounds() {
	s.Run("negative growth of max re-clamps", func() {
		v, _ := bounded.New(100, 100, 0)
		s.Require().NoError(v.GrowMax(-30))
		s.Equal(70, v.Max())
		s.Equal(70, v.Value())
	})

	s.Run("growth crossing min fails", func() {
		v, _ := bounded.New(10, 20, 10)
		s.True(errors.IsInvalidBounds(v.GrowMax(-11)))
		s.True(errors.IsInvalidBounds(v.GrowMin(11)))
		s.Equal(10, v.Min())
		s.Equal(20, v.Max())
	})

	s.Run("max growth saturates at the type limit", func() {
		v, _ := bounded.New(uint8(10), 250, 0)
		s.Require().NoError(v.GrowMax(10))
		s.Equal(uint8(math.MaxUint8), v.Max())
	})
}

func (s *ValueTestSuite) TestArithmetic() {
	hp, err := bounded.New(50, 100, 0)
	s.Require().NoError(err)

	hp.Add(70)
	s.Equal(100, hp.Value())

	hp.Sub(130)
	s.Equal(0, hp.Value())

	hp.Set(10)
	hp.Mul(3)
	s.Equal(30, hp.Value())

	s.Require().NoError(hp.Div(4))
	s.Equal(7, hp.Value())

	hp.Inc()
	s.Equal(8, hp.Value())
	hp.Dec()
	hp.Dec()
	s.Equal(6, hp.Value())

	hp.Apply(func(x int) int { return x * -1 })
	s.Equal(0, hp.Value())
}

func (s *ValueTestSuite) TestBinaryArithmeticKeepsReceiver() {
	v, _ := bounded.New(10, 20, 0)

	sum := v.Plus(15)
	s.Equal(20, sum.Value())
	s.Equal(0, sum.Min())
	s.Equal(20, sum.Max())

	diff := v.Minus(3)
	s.Equal(7, diff.Value())

	prod := v.Times(-1)
	s.Equal(0, prod.Value())

	quo, err := v.Quo(3)
	s.Require().NoError(err)
	s.Equal(3, quo.Value())

	s.Equal(10, v.Value())
}

func (s *ValueTestSuite) TestDivisionByZero() {
	v, _ := bounded.New(10.0, 20.0, 0.0)
	s.True(errors.IsDivisionByZero(v.Div(0)))
	s.Equal(10.0, v.Value())

	_, err := v.Quo(0)
	s.True(errors.IsDivisionByZero(err))

	i, _ := bounded.New(10, 20, 0)
	_, err = bounded.Rem(i, 0)
	s.True(errors.IsDivisionByZero(err))
}

func (s *ValueTestSuite) TestSaturation() {
	s.Run("signed add near the limit goes to max", func() {
		v := bounded.Unbounded(int8(120))
		v.Add(100)
		s.Equal(int8(math.MaxInt8), v.Value())
	})

	s.Run("unsigned subtract below zero goes to min", func() {
		v, _ := bounded.New(uint32(5), 100, 0)
		v.Sub(10)
		s.Equal(uint32(0), v.Value())
	})

	s.Run("unsigned add overflow goes to max", func() {
		v := bounded.Unbounded(uint64(math.MaxUint64 - 1))
		v.Add(5)
		s.Equal(uint64(math.MaxUint64), v.Value())
	})

	s.Run("multiply overflow keeps the sign of the true product", func() {
		v := bounded.Unbounded(int16(300))
		v.Mul(300)
		s.Equal(int16(math.MaxInt16), v.Value())

		w := bounded.Unbounded(int16(300))
		w.Mul(-300)
		s.Equal(int16(math.MinInt16), w.Value())
	})

	s.Run("min int times minus one", func() {
		v := bounded.Unbounded(int64(math.MinInt64))
		v.Mul(-1)
		s.Equal(int64(math.MaxInt64), v.Value())
	})

	s.Run("min int divided by minus one", func() {
		v := bounded.Unbounded(int32(math.MinInt32))
		s.Require().NoError(v.Div(-1))
		s.Equal(int32(math.MaxInt32), v.Value())
	})

	s.Run("float overflow clamps to max", func() {
		v := bounded.Unbounded(math.MaxFloat64)
		v.Mul(10)
		s.Equal(math.MaxFloat64, v.Value())
	})
}

func (s *ValueTestSuite) TestIntegerOperators() {
	flags, err := bounded.New(0b1010, 0b1111, 0)
	s.Require().NoError(err)

	s.Equal(0b1000, bounded.And(flags, 0b1100).Value())
	s.Equal(0b1110, bounded.Or(flags, 0b0100).Value())
	s.Equal(0b0110, bounded.Xor(flags, 0b1100).Value())
	s.Equal(0b0010, bounded.AndNot(flags, 0b1000).Value())
	s.Equal(0b1111, bounded.Shl(flags, 2).Value())
	s.Equal(0b0101, bounded.Shr(flags, 1).Value())

	rem, err := bounded.Rem(flags, 4)
	s.Require().NoError(err)
	s.Equal(2, rem.Value())

	s.Equal(0b1010, flags.Value())
}

func (s *ValueTestSuite) TestConvert() {
	s.Run("narrowing clamps bounds to the target range", func() {
		v, _ := bounded.New(300, 1000, -1000)
		n := bounded.Convert[int8](v)
		s.Equal(int8(math.MaxInt8), n.Value())
		s.Equal(int8(math.MinInt8), n.Min())
		s.Equal(int8(math.MaxInt8), n.Max())
	})

	s.Run("signed to unsigned drops negative bounds to zero", func() {
		v, _ := bounded.New(-5, 50, -50)
		u := bounded.Convert[uint](v)
		s.Equal(uint(0), u.Value())
		s.Equal(uint(0), u.Min())
		s.Equal(uint(50), u.Max())
	})

	s.Run("bounds inside the target range are kept", func() {
		v, _ := bounded.New(uint64(40), 60, 20)
		n := bounded.Convert[int16](v)
		s.Equal(int16(40), n.Value())
		s.Equal(int16(20), n.Min())
		s.Equal(int16(60), n.Max())
	})

	s.Run("unsigned above signed range saturates", func() {
		v := bounded.Unbounded(uint64(math.MaxUint64))
		n := bounded.Convert[int64](v)
		s.Equal(int64(math.MaxInt64), n.Value())
		s.Equal(int64(0), n.Min())
	})

	s.Run("float to integer truncates and saturates", func() {
		v, _ := bounded.New(12.75, 1e12, -1e12)
		n := bounded.Convert[int32](v)
		s.Equal(int32(12), n.Value())
		s.Equal(int32(math.MinInt32), n.Min())
		s.Equal(int32(math.MaxInt32), n.Max())
	})

	s.Run("float64 to float32 saturates", func() {
		v := bounded.Unbounded(1e300)
		n := bounded.Convert[float32](v)
		s.Equal(float32(math.MaxFloat32), n.Value())
	})

	s.Run("integer to float is exact for small values", func() {
		v, _ := bounded.New(7, 10, 0)
		f := bounded.Convert[float64](v)
		s.Equal(7.0, f.Value())
		s.Equal(10.0, f.Max())
	})
}

func (s *ValueTestSuite) TestDataRoundTrip() {
	v, _ := bounded.New(uint64(12345), 99999, 100)
	restored, err := bounded.FromData(v.Data())
	s.Require().NoError(err)
	s.Equal(v, restored)

	_, err = bounded.FromData(bounded.Data[int]{Value: 1, Min: 5, Max: 0})
	s.True(errors.IsInvalidBounds(err))
}

func (s *ValueTestSuite) TestString() {
	v, _ := bounded.New(3, 9, 1)
	s.Equal("3 [1, 9]", v.String())
}

func (s *ValueTestSuite) TestInvariantHoldsUnderRandomOperations() {
	rng := rand.New(rand.NewSource(7))
	v, err := bounded.New(0, 50, -50)
	s.Require().NoError(err)

	for i := 0; i < 5000; i++ {
		n := rng.Intn(200) - 100
		switch rng.Intn(9) {
		case 0:
			v.Add(n)
		case 1:
			v.Sub(n)
		case 2:
			v.Mul(n)
		case 3:
			_ = v.Div(n)
		case 4:
			_ = v.GrowMax(n)
		case 5:
			_ = v.GrowMin(n)
		case 6:
			v = bounded.Xor(v, n)
		case 7:
			_ = v.SetMax(n)
		case 8:
			v.Set(n * 3)
		}
		s.Require().LessOrEqual(v.Min(), v.Value())
		s.Require().LessOrEqual(v.Value(), v.Max())
	}
}
