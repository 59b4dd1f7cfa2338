// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import "math"

// relation is the type of comparison operators.
type relation int

const (
	relGe relation = iota
	relGt
	relLe
	relLt
)

var relnames = [4]string{
	relGe: ">=",
	relGt: ">",
	relLe: "<=",
	relLt: "<",
}

func (r relation) String() string {
	return relnames[r]
}

// Ge returns the BDD for a >= b.
func (m *Manager) Ge(a, b *AADD) *BDD { return m.compare(a, b, relGe) }

// Gt returns the BDD for a > b.
func (m *Manager) Gt(a, b *AADD) *BDD { return m.compare(a, b, relGt) }

// Le returns the BDD for a <= b.
func (m *Manager) Le(a, b *AADD) *BDD { return m.compare(a, b, relLe) }

// Lt returns the BDD for a < b.
func (m *Manager) Lt(a, b *AADD) *BDD { return m.compare(a, b, relLt) }

// compare computes the sign of a - b on each leaf, using the conditions on the
// path to the leaf to tighten its bounds. A leaf whose sign is known becomes a
// constant. Otherwise we register its value as a new condition, at the top of
// the table, and branch on it.
func (m *Manager) compare(a, b *AADD, rel relation) *BDD {
	delta := m.Tighten(m.Sub(a, b))
	return fold(delta,
		func(l *AADD) *BDD {
			return m.decide(l, rel)
		},
		func(n *AADD, t, f *BDD) *BDD {
			return m.NewBDDNode(n.index, t, f)
		})
}

// decide returns the BDD for (l rel 0). Leaves on infeasible paths, and leaves
// without a value (NaN), give the infeasible constant.
func (m *Manager) decide(l *AADD, rel relation) *BDD {
	v := l.value
	if l.IsInfeasible() || v.IsNaN() {
		return m.tinfeas
	}
	if res, ok := checkObjective(v.Range, rel); ok {
		return m.Constant(res)
	}
	idx := m.conds.RegisterTop(v)
	if rel == relGe || rel == relGt {
		return m.NewBDDNode(idx, m.ttrue, m.tfalse)
	}
	return m.NewBDDNode(idx, m.tfalse, m.ttrue)
}

// checkObjective returns the value of (r rel 0) when it is the same for all
// the values in r. Values within _EPSILON of zero are considered equal to
// zero.
func checkObjective(r Range, rel relation) (res bool, ok bool) {
	zmin := math.Abs(r.min) < _EPSILON
	zmax := math.Abs(r.max) < _EPSILON
	switch rel {
	case relGe:
		switch {
		case r.min > 0 || zmin:
			return true, true
		case r.max < 0:
			return false, true
		}
	case relGt:
		switch {
		case r.min > 0:
			return true, true
		case r.max < 0 || zmax:
			return false, true
		}
	case relLe:
		switch {
		case r.min > 0:
			return false, true
		case r.max < 0 || zmax:
			return true, true
		}
	case relLt:
		switch {
		case r.min > 0 || zmin:
			return false, true
		case r.max < 0:
			return true, true
		}
	}
	return false, false
}
