// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

//********************************************************************************************

func TestNewRange(t *testing.T) {
	inf := math.Inf(1)
	var rangeTests = []struct {
		min, max float64
		expected Trap
	}{
		{1, 2, Finite},
		{2, 2, Scalar},
		{2, 1, NaN},
		{math.NaN(), 1, NaN},
		{0, math.NaN(), NaN},
		{-inf, 0, Infinite},
		{0, inf, Infinite},
		{-inf, inf, Infinite},
	}
	for _, tt := range rangeTests {
		actual := NewRange(tt.min, tt.max).Trap()
		if actual != tt.expected {
			t.Errorf("NewRange(%g, %g): expected %s, actual %s", tt.min, tt.max, tt.expected, actual)
		}
	}
}

func TestTrapBounds(t *testing.T) {
	assert.True(t, Empty.min > Empty.max, "NaN range uses inverted bounds")
	assert.True(t, Reals.min < Reals.max)
	assert.True(t, math.IsInf(Reals.Min(), -1))
	assert.True(t, math.IsInf(Reals.Max(), 1))
	assert.True(t, Empty.IsTrap())
	assert.True(t, Reals.IsTrap())
	assert.False(t, NewRange(1, 2).IsTrap())
	assert.True(t, NewRange(1, 2).IsTrapWith(Empty))
	assert.Equal(t, Infinite, ScalarRange(math.Inf(-1)).Trap())
	assert.Equal(t, NaN, ScalarRange(math.NaN()).Trap())
	assert.Equal(t, "Trap(7)", Trap(7).String())
}

func TestHandleTrap(t *testing.T) {
	s, f := ScalarRange(1), NewRange(1, 2)
	var trapTests = []struct {
		a, b     Range
		expected Trap
	}{
		{s, s, Scalar},
		{s, f, Finite},
		{f, s, Finite},
		{f, f, Finite},
		{f, Reals, Infinite},
		{Reals, s, Infinite},
		{Reals, Empty, NaN},
		{Empty, Reals, NaN},
		{Empty, s, NaN},
	}
	for _, tt := range trapTests {
		assert.Equal(t, tt.expected, tt.a.handleTrap(tt.b), "%s op %s", tt.a, tt.b)
	}
}

func TestRangeOperations(t *testing.T) {
	a, b := NewRange(-1, 2), NewRange(2, 3)
	assert.True(t, a.Contains(0))
	assert.False(t, a.Contains(2.5))
	assert.False(t, Empty.Contains(0))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(NewRange(3, 4)))
	assert.False(t, a.Overlaps(Empty))
	assert.Equal(t, NewRange(-1, 3), a.Hull(b))
	assert.Equal(t, a, a.Hull(Empty))
	assert.Equal(t, a, Empty.Hull(a))
	assert.Equal(t, ScalarRange(2), a.Intersect(b))
	assert.Equal(t, Empty, a.Intersect(NewRange(5, 6)))
	assert.Equal(t, "[-1, 2]", a.String())
	assert.Equal(t, "2", ScalarRange(2).String())
	assert.Equal(t, "NaN", Empty.String())
	assert.Equal(t, "[-inf, +inf]", Reals.String())
}
