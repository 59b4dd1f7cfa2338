// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

// Leaf returns the AADD made of a single leaf with value v.
func (m *Manager) Leaf(v AffineForm) *AADD {
	return newleaf(m, v, NotSolved)
}

// Scalar returns the constant c.
func (m *Manager) Scalar(c float64) *AADD {
	return m.Leaf(Constant(c))
}

// Range returns the AADD for the interval [min, max] on noise symbol sym. We
// allocate a new symbol when sym is Fresh. The optional docs are the name, unit
// and comment of the symbol; we panic if there are more than three.
func (m *Manager) Range(min, max float64, sym int, docs ...string) *AADD {
	return m.Leaf(m.Interval(min, max, sym, docs...))
}

// Reals returns the leaf with an infinite value.
func (m *Manager) Reals() *AADD {
	return m.Leaf(trapForm(Infinite))
}

// Empty returns the leaf with a NaN value, which stands for the empty set.
func (m *Manager) Empty() *AADD {
	return m.Leaf(trapForm(NaN))
}

func (m *Manager) infeasible() *AADD {
	return newleaf(m, trapForm(NaN), Infeasible)
}

// arith2 is the Apply algorithm for the binary arithmetic operations.
func (m *Manager) arith2(a, b *AADD, op arith) *AADD {
	if a.IsLeaf() && b.IsLeaf() {
		if a.IsInfeasible() || b.IsInfeasible() {
			return m.infeasible()
		}
		return m.Leaf(op.binary()(a.value, b.value))
	}
	if res := m.aaddcache.match(a.id, b.id, int(op)); res != nil {
		return res
	}
	idx, at, af, bt, bf := cofactors(a, b)
	high := m.arith2(at, bt, op)
	low := m.arith2(af, bf, op)
	res := m.NewAADDNode(idx, high, low)
	return m.aaddcache.set(a.id, b.id, int(op), res)
}

// mapleaves returns the diagram a where each feasible leaf value is replaced
// by fn(value). The result is reduced, so similar leaves may be merged.
func (m *Manager) mapleaves(a *AADD, fn func(AffineForm) AffineForm) *AADD {
	return fold(a,
		func(l *AADD) *AADD {
			if l.IsInfeasible() {
				return l
			}
			return m.Leaf(fn(l.value))
		},
		func(n *AADD, t, f *AADD) *AADD {
			return m.NewAADDNode(n.index, t, f)
		})
}

// arith1 applies a unary arithmetic operation on the leaves of a.
func (m *Manager) arith1(a *AADD, op arith) *AADD {
	if res := m.aaddcache.match(a.id, 0, int(op)); res != nil {
		return res
	}
	return m.aaddcache.set(a.id, 0, int(op), m.mapleaves(a, op.unary()))
}

// Add returns a + b.
func (m *Manager) Add(a, b *AADD) *AADD { return m.arith2(a, b, opadd) }

// Sub returns a - b.
func (m *Manager) Sub(a, b *AADD) *AADD { return m.arith2(a, b, opsub) }

// Mult returns a·b.
func (m *Manager) Mult(a, b *AADD) *AADD { return m.arith2(a, b, opmult) }

// Div returns a/b. The value is infinite on the leaves where b may be zero.
func (m *Manager) Div(a, b *AADD) *AADD { return m.arith2(a, b, opdiv) }

// Negate returns -a.
func (m *Manager) Negate(a *AADD) *AADD { return m.arith1(a, opneg) }

// Exp returns the exponential of a.
func (m *Manager) Exp(a *AADD) *AADD { return m.arith1(a, opexp) }

// Log returns the natural logarithm of a.
func (m *Manager) Log(a *AADD) *AADD { return m.arith1(a, oplog) }

// Sqrt returns the square root of a.
func (m *Manager) Sqrt(a *AADD) *AADD { return m.arith1(a, opsqrt) }

// Inv returns 1/a.
func (m *Manager) Inv(a *AADD) *AADD { return m.arith1(a, opinv) }

// Sqr returns a·a.
func (m *Manager) Sqr(a *AADD) *AADD { return m.arith1(a, opsqr) }

// Scale returns c·a.
func (m *Manager) Scale(a *AADD, c float64) *AADD {
	return m.mapleaves(a, func(v AffineForm) AffineForm { return v.Scale(c) })
}

// Sin returns the sine of a. Only constant leaves are computed exactly; the
// other leaves become the interval [-1, 1] on a new noise symbol.
func (m *Manager) Sin(a *AADD) *AADD {
	return m.mapleaves(a, func(v AffineForm) AffineForm {
		if v.IsTrap() || v.IsScalar() {
			return v.sin(0)
		}
		return v.sin(m.FreshSymbol())
	})
}

// Cos returns the cosine of a. See Sin.
func (m *Manager) Cos(a *AADD) *AADD {
	return m.mapleaves(a, func(v AffineForm) AffineForm {
		if v.IsTrap() || v.IsScalar() {
			return v.cos(0)
		}
		return v.cos(m.FreshSymbol())
	})
}

// mask multiplies a with the Boolean diagram c: the result is a where c is
// true and 0 where c is false.
func (m *Manager) mask(a *AADD, c *BDD) *AADD {
	if c.IsLeaf() {
		switch {
		case c.IsInfeasible():
			return m.infeasible()
		case bool(c.value):
			return a
		}
		return m.Scalar(0)
	}
	if a.IsInfeasible() {
		return a
	}
	if res := m.aaddcache.match(a.id, c.id, int(opmask)); res != nil {
		return res
	}
	idx, at, af, ct, cf := cofactors(a, c)
	high := m.mask(at, ct)
	low := m.mask(af, cf)
	res := m.NewAADDNode(idx, high, low)
	return m.aaddcache.set(a.id, c.id, int(opmask), res)
}

// IteAADD returns the AADD that is t when c holds and e otherwise. The result
// is t (resp. e) when c is the constant true (resp. false), without looking
// at the other branch.
func (m *Manager) IteAADD(c *BDD, t, e *AADD) *AADD {
	if c.IsLeaf() {
		switch {
		case c.IsInfeasible():
			return m.infeasible()
		case bool(c.value):
			return t
		}
		return e
	}
	return m.Add(m.mask(t, c), m.mask(e, m.Not(c)))
}

// Intersect returns the AADD that is equal to a where a is in [lb, ub], and
// Empty elsewhere.
func (m *Manager) Intersect(a *AADD, lb, ub float64) *AADD {
	inside := m.And(m.Ge(a, m.Scalar(lb)), m.Le(a, m.Scalar(ub)))
	return m.IteAADD(inside, a, m.Empty())
}

// IntersectAADD returns the intersection of a with the bounds of other.
func (m *Manager) IntersectAADD(a, other *AADD) *AADD {
	r := m.Bounds(other)
	if r.IsNaN() {
		return m.Empty()
	}
	return m.Intersect(a, r.min, r.max)
}

// Contains reports whether x is in the range of one of the leaves of a. We do
// not call the LP solver.
func (m *Manager) Contains(a *AADD, x float64) bool {
	return m.ContainsRange(a, x, x)
}

// ContainsRange reports whether [lb, ub] overlaps the range of one of the
// leaves of a. We do not call the LP solver.
func (*Manager) ContainsRange(a *AADD, lb, ub float64) bool {
	r := NewRange(lb, ub)
	return fold(a,
		func(l *AADD) bool { return !l.IsInfeasible() && l.value.Overlaps(r) },
		func(_ *AADD, t, f bool) bool { return t || f })
}

// NumFeasibleLeaves returns the number of paths of a that lead to a leaf whose
// value is not a trap.
func (*Manager) NumFeasibleLeaves(a *AADD) int {
	return countLeaves(a, func(l *AADD) bool { return !l.IsInfeasible() && !l.value.IsTrap() })
}
