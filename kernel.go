// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"errors"
	"math"
)

// leafIndex is the index of every leaf. It is larger than any condition index
// so that leaves always sort below internal nodes.
const leafIndex int32 = math.MaxInt32

// Fresh is the symbol id used to request the allocation of a new noise symbol
// when building a range.
const Fresh = -1

// _JOINTH is the default tolerance below which two sibling leaves of an AADD
// are merged into a single leaf (see AffineForm.IsSimilar).
const _JOINTH float64 = 0.001

// _LPCALLTH is the default radius below which we do not try to tighten the
// bounds of a leaf with the LP solver.
const _LPCALLTH float64 = 0.001

// _LPTOL is the default tolerance on the reduced costs used by the simplex.
const _LPTOL float64 = 1e-10

// _DEFAULTCACHESIZE is the default number of entries in each operation cache.
const _DEFAULTCACHESIZE int = 10000

// _EPSILON is twice the machine epsilon. We use it when comparing a bound with
// zero.
const _EPSILON float64 = 2 * 0x1p-52

// ErrBadConfig is returned when a settings file contains invalid values.
var ErrBadConfig = errors.New("invalid configuration")

// ErrUnknownSymbol is returned when looking up a noise symbol (by id or name)
// that was never allocated.
var ErrUnknownSymbol = errors.New("unknown noise symbol")

// ulp returns the distance between |x| and the next larger float64. It returns
// +Inf for infinite values and NaN for NaN.
func ulp(x float64) float64 {
	x = math.Abs(x)
	switch {
	case math.IsNaN(x), math.IsInf(x, 0):
		return x
	case x == math.MaxFloat64:
		return x - math.Nextafter(x, 0)
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

// sumulp is the rounding error bound for the result x of an addition or a
// subtraction. A sum that is exactly zero has no rounding error.
func sumulp(x float64) float64 {
	if x == 0 {
		return 0
	}
	return ulp(x)
}

// sign returns -1, 0 or 1.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
