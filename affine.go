// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// term is the partial deviation (coef) of a form on noise symbol sym.
type term struct {
	sym  int
	coef float64
}

// AffineForm is the value stored in the leaves of an AADD. It represents the
// set of reals
//
//	x0 + x1·e1 + ... + xn·en ± r
//
// where each noise symbol ei ranges over [-1, 1] and is shared by all the
// forms that mention it. The embedded Range holds the bounds of the form. They
// are equal to x0 ∓ (r + Σ|xi|) unless the form is overridden, in which case
// they are tighter bounds obtained by interval arithmetic or by the LP solver.
//
// Forms are immutable values; every operation returns a new form.
type AffineForm struct {
	Range
	x0         float64
	terms      []term // sorted by sym, no zero coefficients
	r          float64
	overridden bool
}

func trapForm(t Trap) AffineForm {
	if t == NaN {
		return AffineForm{Range: Empty, x0: math.NaN()}
	}
	return AffineForm{Range: Reals}
}

// Constant returns the scalar form c. An infinite or NaN value gives the
// corresponding trap.
func Constant(c float64) AffineForm {
	switch {
	case math.IsNaN(c):
		return trapForm(NaN)
	case math.IsInf(c, 0):
		return AffineForm{Range: Reals, x0: c}
	}
	return AffineForm{Range: ScalarRange(c), x0: c}
}

// NewInterval returns a form with bounds [min, max] that depends on the single
// noise symbol sym, which must be a valid symbol id. Use Manager.Range or
// Manager.Interval to allocate a fresh symbol.
func NewInterval(min, max float64, sym int) AffineForm {
	rg := NewRange(min, max)
	switch rg.trap {
	case Scalar:
		return Constant(min)
	case Infinite, NaN:
		return trapForm(rg.trap)
	}
	if sym < 0 {
		panic(invariantf("invalid noise symbol %d for interval [%g, %g]", sym, min, max))
	}
	x0 := (max + min) / 2
	coef := math.Max(max-x0, x0-min)
	return AffineForm{
		Range: Range{min: x0 - coef, max: x0 + coef, trap: Finite},
		x0:    x0,
		terms: []term{{sym: sym, coef: coef}},
	}
}

// NewAffineForm returns the form x0 + Σ coefs[i]·ei ± r. The error term r must
// not be negative.
func NewAffineForm(x0 float64, coefs map[int]float64, r float64) AffineForm {
	ts := make([]term, 0, len(coefs))
	for s, c := range coefs {
		ts = append(ts, term{sym: s, coef: c})
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].sym < ts[j].sym })
	return build(x0, ts, r)
}

// build makes a form from a sorted list of terms. It drops null coefficients
// and classifies the result.
func build(x0 float64, ts []term, r float64) AffineForm {
	if r < 0 {
		panic(invariantf("affine form with negative error term %g", r))
	}
	switch {
	case math.IsNaN(x0) || math.IsNaN(r):
		return trapForm(NaN)
	case math.IsInf(x0, 0) || math.IsInf(r, 0):
		return trapForm(Infinite)
	}
	radius := 0.0
	kept := ts[:0:0]
	for _, t := range ts {
		switch {
		case math.IsNaN(t.coef):
			return trapForm(NaN)
		case math.IsInf(t.coef, 0):
			return trapForm(Infinite)
		case t.coef == 0:
			continue
		}
		radius += math.Abs(t.coef)
		kept = append(kept, t)
	}
	if radius == 0 && r == 0 {
		return AffineForm{Range: ScalarRange(x0), x0: x0}
	}
	dev := r + radius
	if math.IsInf(dev, 0) {
		return trapForm(Infinite)
	}
	return AffineForm{
		Range: Range{min: x0 - dev, max: x0 + dev, trap: Finite},
		x0:    x0,
		terms: kept,
		r:     r,
	}
}

// WithBounds returns a copy of a whose bounds are intersected with [min, max].
// Bounds are only ever tightened; the result is unchanged if the intersection
// would be empty.
func (a AffineForm) WithBounds(min, max float64) AffineForm {
	if a.IsTrap() || a.IsScalar() {
		return a
	}
	lo, hi := a.min, a.max
	changed := false
	if min > lo {
		lo, changed = min, true
	}
	if max < hi {
		hi, changed = max, true
	}
	if !changed || lo > hi {
		return a
	}
	a.Range = Range{min: lo, max: hi, trap: Finite}
	a.overridden = true
	return a
}

// Center returns the central value x0.
func (a AffineForm) Center() float64 { return a.x0 }

// Err returns the error term r, accumulating rounding and non-linear effects.
func (a AffineForm) Err() float64 { return a.r }

// Overridden reports whether the bounds of a are tighter than its affine
// enclosure.
func (a AffineForm) Overridden() bool { return a.overridden }

// Coef returns the partial deviation of a on noise symbol sym.
func (a AffineForm) Coef(sym int) float64 {
	i := sort.Search(len(a.terms), func(i int) bool { return a.terms[i].sym >= sym })
	if i < len(a.terms) && a.terms[i].sym == sym {
		return a.terms[i].coef
	}
	return 0
}

// Symbols returns the noise symbols of a in increasing order.
func (a AffineForm) Symbols() []int {
	res := make([]int, len(a.terms))
	for k, t := range a.terms {
		res[k] = t.sym
	}
	return res
}

// Coefficients returns a copy of the partial deviations of a.
func (a AffineForm) Coefficients() map[int]float64 {
	res := make(map[int]float64, len(a.terms))
	for _, t := range a.terms {
		res[t.sym] = t.coef
	}
	return res
}

// Radius returns Σ|xi|. It does not take into account r or overridden bounds.
func (a AffineForm) Radius() float64 {
	switch a.trap {
	case NaN:
		return math.NaN()
	case Infinite:
		return math.Inf(1)
	}
	radius := 0.0
	for _, t := range a.terms {
		radius += math.Abs(t.coef)
	}
	return radius
}

// Equal reports whether a and b are the same form.
func (a AffineForm) Equal(b AffineForm) bool {
	if a.trap != b.trap {
		return false
	}
	switch a.trap {
	case Scalar:
		return a.x0 == b.x0
	case Finite:
	default:
		return true
	}
	if a.x0 != b.x0 || a.r != b.r || len(a.terms) != len(b.terms) {
		return false
	}
	for k := range a.terms {
		if a.terms[k] != b.terms[k] {
			return false
		}
	}
	if !a.overridden && !b.overridden {
		return true
	}
	return a.min == b.min && a.max == b.max
}

// merge calls fn on the union of the symbols of xs and ys, in increasing
// order, with the coefficients of each list (0 when missing).
func merge(xs, ys []term, fn func(sym int, x, y float64)) {
	i, j := 0, 0
	for i < len(xs) || j < len(ys) {
		switch {
		case j == len(ys) || (i < len(xs) && xs[i].sym < ys[j].sym):
			fn(xs[i].sym, xs[i].coef, 0)
			i++
		case i == len(xs) || ys[j].sym < xs[i].sym:
			fn(ys[j].sym, 0, ys[j].coef)
			j++
		default:
			fn(xs[i].sym, xs[i].coef, ys[j].coef)
			i++
			j++
		}
	}
}

// Add returns a + b.
func (a AffineForm) Add(b AffineForm) AffineForm {
	if a.IsTrapWith(b.Range) {
		return trapForm(a.handleTrap(b.Range))
	}
	zc := a.x0 + b.x0
	err := 2 * sumulp(zc)
	nts := make([]term, 0, len(a.terms)+len(b.terms))
	merge(a.terms, b.terms, func(sym int, x, y float64) {
		sum := x + y
		err += 2 * sumulp(sum)
		nts = append(nts, term{sym, sum})
	})
	nr := a.r + b.r + err
	nr += 2 * sumulp(nr)
	res := build(zc, nts, nr)
	if a.overridden || b.overridden {
		lo := a.min + b.min
		hi := a.max + b.max
		return res.WithBounds(lo-2*ulp(lo), hi+2*ulp(hi))
	}
	return res
}

// AddConst returns a + delta.
func (a AffineForm) AddConst(delta float64) AffineForm {
	d := ScalarRange(delta)
	if a.IsTrapWith(d) {
		return trapForm(a.handleTrap(d))
	}
	nc := a.x0 + delta
	if a.IsScalar() {
		return Constant(nc)
	}
	nr := a.r + 2*sumulp(nc)
	nr += sumulp(nr)
	res := build(nc, a.terms, nr)
	if a.overridden {
		lo := a.min + delta
		hi := a.max + delta
		return res.WithBounds(lo-ulp(lo), hi+ulp(hi))
	}
	return res
}

// Sub returns a - b.
func (a AffineForm) Sub(b AffineForm) AffineForm {
	if a.IsTrapWith(b.Range) {
		return trapForm(a.handleTrap(b.Range))
	}
	nc := a.x0 - b.x0
	err := 2 * sumulp(nc)
	nts := make([]term, 0, len(a.terms)+len(b.terms))
	merge(a.terms, b.terms, func(sym int, x, y float64) {
		zi := x - y
		err += 2 * sumulp(zi)
		nts = append(nts, term{sym, zi})
	})
	nr := a.r + b.r + err
	nr += 2 * sumulp(nr)
	res := build(nc, nts, nr)
	if a.overridden || b.overridden {
		lo := a.min - b.max
		hi := a.max - b.min
		return res.WithBounds(lo-2*ulp(lo), hi+2*ulp(hi))
	}
	return res
}

// Negate returns -a. Negation is exact.
func (a AffineForm) Negate() AffineForm {
	if a.IsTrap() {
		return a
	}
	nts := make([]term, len(a.terms))
	for k, t := range a.terms {
		nts[k] = term{t.sym, -t.coef}
	}
	return AffineForm{
		Range:      Range{min: -a.max, max: -a.min, trap: a.trap},
		x0:         -a.x0,
		terms:      nts,
		r:          a.r,
		overridden: a.overridden,
	}
}

// Scale returns alpha·a.
func (a AffineForm) Scale(alpha float64) AffineForm {
	s := ScalarRange(alpha)
	switch {
	case s.IsTrap():
		return trapForm(a.handleTrap(s))
	case a.IsTrap():
		return a
	case alpha == 0:
		return Constant(0)
	case a.IsScalar():
		return Constant(a.x0 * alpha)
	}
	return a.Affine(alpha, 0, 0)
}

// Mult returns a·b. The affine product follows the simple approximation of
// Stolfi and Figueiredo. Its range is intersected with the interval product of
// the bounds of a and b.
func (a AffineForm) Mult(b AffineForm) AffineForm {
	if a.IsTrapWith(b.Range) {
		return trapForm(a.handleTrap(b.Range))
	}
	if a.IsScalar() && b.IsScalar() {
		return Constant(a.x0 * b.x0)
	}
	c := a.x0 * b.x0
	noise := math.Abs(a.x0)*b.r + math.Abs(b.x0)*a.r + (a.Radius()+a.r)*(b.Radius()+b.r)
	noise += ulp(c)
	nts := make([]term, 0, len(a.terms)+len(b.terms))
	merge(a.terms, b.terms, func(sym int, x, y float64) {
		zi := x*b.x0 + y*a.x0
		noise += 2 * ulp(zi)
		nts = append(nts, term{sym, zi})
	})
	noise += ulp(noise)
	lo, hi := mulbounds(a.min, a.max, b.min, b.max)
	return build(c, nts, noise).WithBounds(lo-ulp(lo), hi+ulp(hi))
}

// mulbounds is the interval product [a, b]·[c, d].
func mulbounds(a, b, c, d float64) (float64, float64) {
	p := [4]float64{a * c, a * d, b * c, b * d}
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// LinearComb returns alpha·a + beta·b + delta, with an additional error term
// of magnitude noise.
func (a AffineForm) LinearComb(b AffineForm, alpha, beta, delta, noise float64) AffineForm {
	if a.IsTrapWith(b.Range) {
		return trapForm(a.handleTrap(b.Range))
	}
	nc := alpha*a.x0 + beta*b.x0 + delta
	nr := math.Abs(alpha)*a.r + math.Abs(beta)*b.r + noise
	nr += 2 * ulp(nc)
	nts := make([]term, 0, len(a.terms)+len(b.terms))
	merge(a.terms, b.terms, func(sym int, x, y float64) {
		zi := alpha*x + beta*y
		nr += 2 * ulp(zi)
		nts = append(nts, term{sym, zi})
	})
	nr += ulp(nr)
	res := build(nc, nts, nr)
	if a.overridden || b.overridden {
		alo, ahi := mulbounds(alpha, alpha, a.min, a.max)
		blo, bhi := mulbounds(beta, beta, b.min, b.max)
		lo := alo + blo + delta - noise
		hi := ahi + bhi + delta + noise
		return res.WithBounds(lo-ulp(lo), hi+ulp(hi))
	}
	return res
}

// Affine returns alpha·a + delta with an additional error term of magnitude
// noise. It is the kernel used to build the linear approximations of the
// non-linear functions.
func (a AffineForm) Affine(alpha, delta, noise float64) AffineForm {
	if a.IsTrap() {
		return a
	}
	nc := a.x0*alpha + delta
	nr := a.r*math.Abs(alpha) + noise
	nr += ulp(nr) + ulp(nc)
	nts := make([]term, len(a.terms))
	for k, t := range a.terms {
		nval := t.coef * alpha
		nr += ulp(nval)
		nts[k] = term{t.sym, nval}
	}
	nr += ulp(nr)
	res := build(nc, nts, nr)
	if a.overridden {
		lo, hi := mulbounds(alpha, alpha, a.min, a.max)
		lo += delta - noise
		hi += delta + noise
		return res.WithBounds(lo-ulp(lo), hi+ulp(hi))
	}
	return res
}

// IsSimilar reports whether joining a and b would add less than tol of
// uncorrelated deviation.
func (a AffineForm) IsSimilar(b AffineForm, tol float64) bool {
	if a.IsTrapWith(b.Range) {
		return false
	}
	nr := math.Abs(a.x0 - b.x0)
	nr = (nr + ulp(nr)) / 2
	merge(a.terms, b.terms, func(_ int, x, y float64) {
		if x*y > 0 {
			nr += math.Abs(x - y)
		} else {
			nr += math.Abs(x) + math.Abs(y)
		}
	})
	return nr < tol
}

// Join returns a form that contains both a and b. Noise symbols on which a and
// b agree in sign are kept, with the smallest magnitude; the remaining
// deviation is added to the error term.
func (a AffineForm) Join(b AffineForm) AffineForm {
	if a.IsTrapWith(b.Range) {
		return trapForm(a.handleTrap(b.Range))
	}
	nc := (a.x0 + b.x0) / 2
	nr := math.Abs(a.x0 - b.x0)
	nr = (nr + 2*ulp(nr)) / 2
	nr += a.r
	nr += 2 * ulp(nr)
	nr += b.r
	nr += 2 * ulp(nr)
	nts := make([]term, 0, len(a.terms)+len(b.terms))
	merge(a.terms, b.terms, func(sym int, x, y float64) {
		if x*y > 0 {
			nts = append(nts, term{sym, math.Min(math.Abs(x), math.Abs(y)) * sign(x)})
			nr += math.Abs(x - y)
			nr += 2 * ulp(nr)
			return
		}
		nr += math.Abs(x)
		nr += 2 * ulp(nr)
		nr += math.Abs(y)
		nr += 2 * ulp(nr)
	})
	res := build(nc, nts, nr)
	if a.overridden || b.overridden {
		lo := math.Min(a.min, b.min)
		hi := math.Max(a.max, b.max)
		return res.WithBounds(lo-2*ulp(lo), hi+2*ulp(hi))
	}
	return res
}

func (a AffineForm) String() string {
	if a.IsTrap() || a.IsScalar() {
		return a.Range.String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s = %g", a.Range.String(), a.x0)
	for _, t := range a.terms {
		if t.coef < 0 {
			fmt.Fprintf(&sb, " - %g·e%d", -t.coef, t.sym)
			continue
		}
		fmt.Fprintf(&sb, " + %g·e%d", t.coef, t.sym)
	}
	if a.r > 0 {
		fmt.Fprintf(&sb, " ± %g", a.r)
	}
	return sb.String()
}
