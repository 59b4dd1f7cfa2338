// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExp(t *testing.T) {
	assert.InDelta(t, math.E, scl.Exp().Center(), precision)
	assert.InDelta(t, math.Exp(3.5), Constant(3.5).Exp().Center(), precision)
	assert.InDelta(t, math.Exp(-1), Constant(-1).Exp().Center(), precision)
	assert.Greater(t, Constant(-1000).Exp().Center(), 0.0, "exp is always positive")

	checkForm(t, af1.Exp(), 5.06, 0.98, 2.72, 7.39, 0.01)
	checkForm(t, lgr.Exp(), 221755, 217368, 1097, 442413, 1)
}

func TestLog(t *testing.T) {
	checkForm(t, af1.Log(), 0.3764, 0.0298, 0, 0.7528, 1e-3)
	checkForm(t, lgr.Log(), 2.28, 0.02, 1.95, 2.61, 0.01)
	assert.True(t, NewInterval(-1, 1, 1).Log().IsInfinite())
	assert.Equal(t, math.Log(2), Constant(2).Log().Center())
}

// The log of a range starting at 0 must enclose the log of every positive
// value of the range, and its bounds must be rounded outwards.
func TestLogAtZero(t *testing.T) {
	l := NewInterval(0, 4, 1).Log()
	assert.True(t, l.IsFinite())
	assert.Less(t, l.Min(), math.Log(1e-300))
	assert.Greater(t, l.Max(), math.Log(4))
}

func TestSqrt(t *testing.T) {
	checkForm(t, af1.Sqrt(), 1.23, 0.05, 1.0, 1.45, 0.01)
	checkForm(t, lgr.Sqrt(), 3.17, 0.11, 2.65, 3.69, 0.01)
	assert.Equal(t, 3.0, Constant(9).Sqrt().Center())
	s := af1.Sqrt()
	assert.LessOrEqual(t, s.Min(), 1.0+precision)
	assert.GreaterOrEqual(t, s.Max(), math.Sqrt2)
}

func TestInv(t *testing.T) {
	// around zero
	assert.True(t, NewInterval(-2, 2, 1).Inv().IsInfinite())
	assert.True(t, Constant(0).Inv().IsInfinite())
	// infinity is preserved
	assert.True(t, trapForm(Infinite).Inv().IsInfinite())

	inv := af1.Inv()
	checkForm(t, inv, 0.75, 0.125, 0.5, 1.0, precision)
	assert.InDelta(t, 0.125, inv.Radius(), precision)

	neg := af1.Negate().Inv()
	checkForm(t, neg, -0.75, 0.125, -1.0, -0.5, precision)
}

func TestDiv(t *testing.T) {
	assert.True(t, af1.Div(Constant(0)).IsTrap())
	assert.InDelta(t, 2.0, Constant(10).Div(Constant(5)).Center(), precision)
	assert.True(t, af1.Div(trapForm(Infinite)).IsInfinite())
	assert.True(t, trapForm(NaN).Div(af1).IsNaN())
}

func TestSqr(t *testing.T) {
	var sqrTests = []struct {
		name string
		a    AffineForm
	}{
		{"small", af1},
		{"large", lgr},
		{"restricted", rst},
		{"around zero", NewInterval(-1, 2, 1)},
	}
	for _, tt := range sqrTests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.a.Sqr()
			assert.GreaterOrEqual(t, s.Min(), 0.0)
			// sqr is at least as precise as mult
			m := tt.a.Mult(tt.a)
			assert.LessOrEqual(t, s.Max(), m.Max()+precision)
			// and sound
			lo, hi := mulbounds(tt.a.Min(), tt.a.Max(), tt.a.Min(), tt.a.Max())
			if tt.a.Min() < 0 && tt.a.Max() > 0 {
				lo = 0
			}
			assert.LessOrEqual(t, s.Min(), lo+precision)
			assert.GreaterOrEqual(t, s.Max(), hi-precision)
		})
	}
	assert.Equal(t, 9.0, Constant(-3).Sqr().Center())
}

func TestSinCos(t *testing.T) {
	assert.Equal(t, math.Sin(1), Constant(1).sin(0).Center())
	assert.Equal(t, math.Cos(1), Constant(1).cos(0).Center())
	s := af1.sin(7)
	assert.Equal(t, []int{7}, s.Symbols())
	assert.Equal(t, -1.0, s.Min())
	assert.Equal(t, 1.0, s.Max())
	assert.True(t, trapForm(NaN).cos(3).IsNaN())
}
