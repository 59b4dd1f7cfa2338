// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import "math"

// The non-linear functions below compute a linear approximation of the
// function over [min, max] and apply it with Affine, adding the maximal
// approximation error as a new error term.

// Exp returns the exponential of a.
func (a AffineForm) Exp() AffineForm {
	if a.IsTrap() {
		return a
	}
	iaMin := math.Exp(a.min)
	iaMax := math.Exp(a.max)
	delta := (iaMax + iaMin*(1-a.min-a.max)) / 2
	noise := (iaMax + iaMin*(a.min-a.max-1)) / 2
	if noise < 0 || a.IsScalar() {
		return Constant(math.Max(math.Exp(a.x0), math.SmallestNonzeroFloat64))
	}
	aux := a.Affine(iaMin, delta, noise)
	if aux.IsTrap() {
		return aux
	}
	switch {
	case aux.min > iaMin:
		d := aux.min - iaMin
		return build(aux.x0-d, aux.terms, aux.r+d).WithBounds(iaMin, aux.max)
	case aux.min < 0:
		d := math.SmallestNonzeroFloat64 - aux.min
		return build(aux.x0+d, aux.terms, aux.r+d).WithBounds(math.SmallestNonzeroFloat64, aux.max)
	}
	return aux
}

// Log returns the natural logarithm of a. The result is -Inf (an Infinite
// form) when a has negative values. A range starting at zero is handled as if
// it started at the smallest positive float64.
func (a AffineForm) Log() AffineForm {
	switch {
	case a.IsTrap():
		return a
	case a.min < 0:
		return Constant(math.Inf(-1))
	case a.IsScalar():
		return Constant(math.Log(a.x0))
	}
	lo := math.Max(a.min, math.SmallestNonzeroFloat64)
	l := math.Log(lo)
	u := math.Log(a.max)
	alpha := (u - l) / (a.max - lo)
	xs := 1 / alpha
	ys := (xs-lo)*alpha + l
	logxs := math.Log(xs)
	delta := (logxs+ys)/2 - alpha*xs
	noise := math.Abs(logxs-ys) / 2
	return a.Affine(alpha, delta, noise)
}

// Sqrt returns the square root of a, computed as exp(log(a)/2).
func (a AffineForm) Sqrt() AffineForm {
	switch {
	case a.IsTrap():
		return a
	case a.IsScalar() && a.x0 >= 0:
		return Constant(math.Sqrt(a.x0))
	}
	return a.Log().Scale(0.5).Exp()
}

// Inv returns the reciprocal 1/a. The result is +Inf (an Infinite form) when
// a is zero or when its range straddles zero.
func (a AffineForm) Inv() AffineForm {
	switch {
	case a.IsTrap():
		return a
	case a.IsScalar():
		if a.x0 == 0 {
			return Constant(math.Inf(1))
		}
		return Constant(1 / a.x0)
	case a.min < 0 && a.max > 0:
		return Constant(math.Inf(1))
	}
	l := math.Min(math.Abs(a.min), math.Abs(a.max))
	u := math.Max(math.Abs(a.min), math.Abs(a.max))
	alpha := -1 / (u * u)
	auxLow := 2 / u
	auxUpp := 1/l - alpha*l
	den := 2.0
	if a.min < 0 {
		den = -2
	}
	delta := (auxUpp + auxLow) / den
	noise := (auxUpp - auxLow) / 2
	return a.Affine(alpha, delta, math.Max(0, noise))
}

// Div returns a/b, computed as a·(1/b).
func (a AffineForm) Div(b AffineForm) AffineForm {
	switch {
	case a.IsTrap():
		return a
	case b.IsInfinite():
		return b
	}
	return a.Mult(b.Inv())
}

// Sqr returns a·a. The result is never negative.
func (a AffineForm) Sqr() AffineForm {
	switch {
	case a.IsTrap():
		return a
	case a.IsScalar():
		return Constant(a.x0 * a.x0)
	}
	aux := a.Mult(a)
	if aux.IsTrap() {
		return aux
	}
	x0, r := aux.x0, aux.r
	if d := r - x0; d > 0 {
		d /= 2
		r -= d
		x0 += d
	}
	lo, hi := aux.min, aux.max
	if hi > 0 && lo < 0 {
		hi = math.Max(hi, -lo)
		lo = 0
	}
	return build(x0, aux.terms, r).WithBounds(lo, hi)
}

// sin returns the sine of a. Only scalars are computed exactly, any other form
// gives the range [-1, 1] on the (fresh) noise symbol sym.
func (a AffineForm) sin(sym int) AffineForm {
	switch {
	case a.IsTrap():
		return a
	case a.IsScalar():
		return Constant(math.Sin(a.x0))
	}
	return NewInterval(-1, 1, sym)
}

// cos is the cosine counterpart of sin.
func (a AffineForm) cos(sym int) AffineForm {
	switch {
	case a.IsTrap():
		return a
	case a.IsScalar():
		return Constant(math.Cos(a.x0))
	}
	return NewInterval(-1, 1, sym)
}
