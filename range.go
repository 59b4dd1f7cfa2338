// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"math"
)

// Trap is the classification of a numeric range.
type Trap int8

// A range is either a single value (Scalar), a bounded interval (Finite), the
// whole real line (Infinite), or the result of an undefined operation (NaN).
const (
	Scalar Trap = iota
	Finite
	Infinite
	NaN
)

var trapnames = [4]string{
	Scalar:   "scalar",
	Finite:   "finite",
	Infinite: "infinite",
	NaN:      "NaN",
}

func (t Trap) String() string {
	if t < 0 || int(t) >= len(trapnames) {
		return fmt.Sprintf("Trap(%d)", int8(t))
	}
	return trapnames[t]
}

// Range is an interval [min, max] together with its trap classification. An
// Infinite range has bounds (-Inf, +Inf) and a NaN range has the inverted
// bounds (+Inf, -Inf), so that min <= max holds only for Scalar and Finite
// ranges.
type Range struct {
	min  float64
	max  float64
	trap Trap
}

// Reals is the Infinite range.
var Reals = Range{min: math.Inf(-1), max: math.Inf(1), trap: Infinite}

// Empty is the NaN range.
var Empty = Range{min: math.Inf(1), max: math.Inf(-1), trap: NaN}

// NewRange returns the range [min, max]. A NaN bound, or min > max, gives the
// Empty range and an infinite bound gives Reals.
func NewRange(min, max float64) Range {
	switch {
	case math.IsNaN(min) || math.IsNaN(max) || min > max:
		return Empty
	case math.IsInf(min, 0) || math.IsInf(max, 0):
		return Reals
	case min == max:
		return Range{min: min, max: max, trap: Scalar}
	}
	return Range{min: min, max: max, trap: Finite}
}

// ScalarRange returns the degenerate range [c, c].
func ScalarRange(c float64) Range {
	return NewRange(c, c)
}

func trapRange(t Trap) Range {
	if t == NaN {
		return Empty
	}
	return Reals
}

// Min returns the lower bound of r.
func (r Range) Min() float64 { return r.min }

// Max returns the upper bound of r.
func (r Range) Max() float64 { return r.max }

// Trap returns the classification of r.
func (r Range) Trap() Trap { return r.trap }

// IsTrap reports whether r is Infinite or NaN.
func (r Range) IsTrap() bool { return r.trap == Infinite || r.trap == NaN }

// IsTrapWith reports whether r or other is a trap.
func (r Range) IsTrapWith(other Range) bool { return r.IsTrap() || other.IsTrap() }

func (r Range) IsScalar() bool   { return r.trap == Scalar }
func (r Range) IsFinite() bool   { return r.trap == Finite }
func (r Range) IsInfinite() bool { return r.trap == Infinite }
func (r Range) IsNaN() bool      { return r.trap == NaN }

// handleTrap returns the classification of the result of a binary operation
// on r and other. NaN has priority over Infinite, and the result is Scalar
// only when both operands are.
func (r Range) handleTrap(other Range) Trap {
	switch {
	case r.trap == NaN || other.trap == NaN:
		return NaN
	case r.trap == Infinite || other.trap == Infinite:
		return Infinite
	case r.trap == Scalar && other.trap == Scalar:
		return Scalar
	}
	return Finite
}

// Contains reports whether x belongs to r.
func (r Range) Contains(x float64) bool {
	if r.trap == NaN {
		return false
	}
	return r.min <= x && x <= r.max
}

// Overlaps reports whether r and other have at least one common value.
func (r Range) Overlaps(other Range) bool {
	if r.trap == NaN || other.trap == NaN {
		return false
	}
	return r.min <= other.max && other.min <= r.max
}

// Hull returns the smallest range containing both r and other. A NaN operand
// is ignored.
func (r Range) Hull(other Range) Range {
	switch {
	case r.trap == NaN:
		return other
	case other.trap == NaN:
		return r
	}
	return NewRange(math.Min(r.min, other.min), math.Max(r.max, other.max))
}

// Intersect returns the common part of r and other, or Empty.
func (r Range) Intersect(other Range) Range {
	if r.trap == NaN || other.trap == NaN {
		return Empty
	}
	return NewRange(math.Max(r.min, other.min), math.Min(r.max, other.max))
}

func (r Range) String() string {
	switch r.trap {
	case NaN:
		return "NaN"
	case Infinite:
		return "[-inf, +inf]"
	case Scalar:
		return fmt.Sprintf("%g", r.min)
	}
	return fmt.Sprintf("[%g, %g]", r.min, r.max)
}
