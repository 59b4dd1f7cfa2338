// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"errors"

	"gonum.org/v1/gonum/optimize/convex/lp"
)

// pathCond is a linear condition on a path: form >= 0 when ge is true, and
// form < 0 otherwise.
type pathCond struct {
	index int32
	form  AffineForm
	ge    bool
}

// pathConditions returns the linear conditions along path. Boolean variables,
// and conditions whose value is a trap, do not constrain noise symbols and are
// skipped.
func (m *Manager) pathConditions(path []step) []pathCond {
	res := make([]pathCond, 0, len(path))
	for _, s := range path {
		c := m.conds.Lookup(s.index)
		if c.Variable || c.Form.IsTrap() {
			continue
		}
		res = append(res, pathCond{index: s.index, form: c.Form, ge: s.ge})
	}
	return res
}

// tightenLeaf returns the leaf l, reached by path, with bounds tightened using
// the conditions on the path. The result is an infeasible leaf if the
// conditions cannot hold together.
func (m *Manager) tightenLeaf(path []step, l *AADD) *AADD {
	v := l.value
	if l.IsInfeasible() || v.IsScalar() || v.IsTrap() || len(path) == 0 || v.Radius() <= m.lpcallth {
		return l
	}
	conds := m.pathConditions(path)
	if len(conds) == 0 {
		return l
	}
	lo, hi, err := m.lpbounds(v, conds)
	switch {
	case err == nil:
		return newleaf(m, v.WithBounds(lo, hi), Feasible)
	case errors.Is(err, lp.ErrInfeasible):
		if _DEBUG {
			m.log.Debug("infeasible path", "leaf", v, "path", len(conds))
		}
		return m.infeasible()
	case errors.Is(err, lp.ErrUnbounded):
		e := &UnboundedError{Leaf: v}
		for _, c := range conds {
			e.Indexes = append(e.Indexes, c.index)
			e.Ge = append(e.Ge, c.ge)
		}
		m.log.Error("unbounded LP problem", "error", e)
		panic(e)
	}
	m.seterror("LP solver failed on leaf %s: %s", v, err)
	return l
}

// Tighten returns a copy of a where the bounds of each leaf have been
// tightened with the conditions on its path, using an LP solver. Leaves on
// paths that cannot be taken are removed. The result denotes the same
// function as a, but with more precise ranges.
//
// The LP problem built for a leaf should always be bounded, since noise
// symbols range over [-1, 1]. We panic with an *UnboundedError otherwise.
func (m *Manager) Tighten(a *AADD) *AADD {
	return transform(a, m.tightenLeaf, func(n *AADD, t, f *AADD) *AADD {
		return m.NewAADDNode(n.index, t, f)
	})
}

// AllBounds returns the tightened range of each leaf of a, in the order of a
// depth-first traversal visiting the true branch first. Leaves on infeasible
// paths give the Empty range.
func (m *Manager) AllBounds(a *AADD) []Range {
	var res []Range
	walk(a, func(path []step, l *AADD) {
		t := m.tightenLeaf(path, l)
		if t.IsInfeasible() {
			res = append(res, Empty)
			return
		}
		res = append(res, t.value.Range)
	})
	return res
}

// Bounds returns the smallest range containing the values of all the leaves
// of a, after tightening. NaN leaves are ignored; the result is Empty if all
// leaves are NaN or infeasible.
func (m *Manager) Bounds(a *AADD) Range {
	res := Empty
	for _, r := range m.AllBounds(a) {
		res = res.Hull(r)
	}
	return res
}

// MinMax returns the bounds of a. See Bounds.
func (m *Manager) MinMax(a *AADD) (min, max float64) {
	r := m.Bounds(a)
	return r.min, r.max
}
