// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

// True returns the constant true.
func (m *Manager) True() *BDD { return m.ttrue }

// False returns the constant false.
func (m *Manager) False() *BDD { return m.tfalse }

// Infeasible returns the leaf used for paths that can never be taken.
func (m *Manager) Infeasible() *BDD { return m.tinfeas }

// Constant returns the BDD for the Boolean constant v.
func (m *Manager) Constant(v bool) *BDD {
	if v {
		return m.ttrue
	}
	return m.tfalse
}

// Unknown returns a BDD whose value is not known: it branches on a new,
// unnamed, Boolean variable.
func (m *Manager) Unknown() *BDD {
	return m.Variable("")
}

// Variable registers a new Boolean variable called name and returns the BDD
// that is true exactly when the variable is. Boolean variables are ignored when
// computing the bounds of an AADD. Each call creates a new variable, even when
// the name is already in use.
func (m *Manager) Variable(name string) *BDD {
	return m.NewBDDNode(m.conds.RegisterVariable(name), m.ttrue, m.tfalse)
}

// Not returns the negation of n. Infeasible leaves are left unchanged.
func (m *Manager) Not(n *BDD) *BDD {
	if n.IsLeaf() {
		if n.IsInfeasible() {
			return m.tinfeas
		}
		return m.Constant(!bool(n.value))
	}
	if res := m.bddcache.match(n.id, 0, int(op_not)); res != nil {
		return res
	}
	res := m.NewBDDNode(n.index, m.Not(n.t), m.Not(n.f))
	return m.bddcache.set(n.id, 0, int(op_not), res)
}

// And returns the logical 'and' of a sequence of BDDs.
func (m *Manager) And(n ...*BDD) *BDD {
	if len(n) == 1 {
		return n[0]
	}
	if len(n) == 0 {
		return m.ttrue
	}
	return m.Apply(n[0], m.And(n[1:]...), OPand)
}

// Or returns the logical 'or' of a sequence of BDDs.
func (m *Manager) Or(n ...*BDD) *BDD {
	if len(n) == 1 {
		return n[0]
	}
	if len(n) == 0 {
		return m.tfalse
	}
	return m.Apply(n[0], m.Or(n[1:]...), OPor)
}

// Xor returns the logical 'exclusive or' of a sequence of BDDs.
func (m *Manager) Xor(n ...*BDD) *BDD {
	if len(n) == 1 {
		return n[0]
	}
	if len(n) == 0 {
		return m.tfalse
	}
	return m.Apply(n[0], m.Xor(n[1:]...), OPxor)
}

// Nand returns the negation of the 'and' of a sequence of BDDs.
func (m *Manager) Nand(n ...*BDD) *BDD {
	if len(n) == 2 {
		return m.Apply(n[0], n[1], OPnand)
	}
	return m.Not(m.And(n...))
}

// Nor returns the negation of the 'or' of a sequence of BDDs.
func (m *Manager) Nor(n ...*BDD) *BDD {
	if len(n) == 2 {
		return m.Apply(n[0], n[1], OPnor)
	}
	return m.Not(m.Or(n...))
}

// Xnor returns the logical equivalence between two BDDs.
func (m *Manager) Xnor(n1, n2 *BDD) *BDD {
	return m.Apply(n1, n2, OPbiimp)
}

// Imp returns the logical 'implication' between two BDDs.
func (m *Manager) Imp(n1, n2 *BDD) *BDD {
	return m.Apply(n1, n2, OPimp)
}

// Apply performs all of the basic binary operations on BDDs, such as AND, OR
// etc. Left and right are the operands and op is the requested operation,
// which must be one of the following:
//
//	Identifier    Description             Truth table
//
//	OPand         logical and             [0,0,0,1]
//	OPxor         logical xor             [0,1,1,0]
//	OPor          logical or              [0,1,1,1]
//	OPnand        logical not-and         [1,1,1,0]
//	OPnor         logical not-or          [1,0,0,0]
//	OPimp         implication             [1,1,0,1]
//	OPbiimp       equivalence             [1,0,0,1]
//	OPdiff        set difference          [0,0,1,0]
//	OPless        less than               [0,1,0,0]
//	OPinvimp      reverse implication     [1,0,1,1]
//
// The result is infeasible on every path where one of the operands is.
func (m *Manager) Apply(left, right *BDD, op Operator) *BDD {
	if op < OPand || op > OPinvimp {
		panic(invariantf("unauthorized operation (%s) in apply", op))
	}
	return m.apply(left, right, op)
}

func (m *Manager) apply(left, right *BDD, op Operator) *BDD {
	if left.IsLeaf() && right.IsLeaf() {
		if left.IsInfeasible() || right.IsInfeasible() {
			return m.tinfeas
		}
		return m.Constant(bool(op.eval(left.value, right.value)))
	}
	// shortcuts that return one of the operands
	switch op {
	case OPand:
		switch {
		case left == right, right == m.ttrue:
			return left
		case left == m.ttrue:
			return right
		}
	case OPor:
		switch {
		case left == right, right == m.tfalse:
			return left
		case left == m.tfalse:
			return right
		}
	case OPxor:
		switch {
		case right == m.tfalse:
			return left
		case left == m.tfalse:
			return right
		}
	}
	if res := m.bddcache.match(left.id, right.id, int(op)); res != nil {
		return res
	}
	idx, lt, lf, rt, rf := cofactors(left, right)
	high := m.apply(lt, rt, op)
	low := m.apply(lf, rf, op)
	res := m.NewBDDNode(idx, high, low)
	return m.bddcache.set(left.id, right.id, int(op), res)
}

// Ite, short for if-then-else operator, computes the BDD for the expression
// [(c & t) | (!c & e)]. The result is t (resp. e) when c is the constant true
// (resp. false), without looking at the other branch.
func (m *Manager) Ite(c, t, e *BDD) *BDD {
	if c.IsLeaf() {
		switch {
		case c.IsInfeasible():
			return m.tinfeas
		case bool(c.value):
			return t
		}
		return e
	}
	return m.Or(m.And(c, t), m.And(m.Not(c), e))
}

// NumTrue returns the number of paths of n that lead to the constant true.
func (*Manager) NumTrue(n *BDD) int {
	return countLeaves(n, func(l *BDD) bool { return !l.IsInfeasible() && bool(l.value) })
}

// NumFalse returns the number of paths of n that lead to the constant false.
func (*Manager) NumFalse(n *BDD) int {
	return countLeaves(n, func(l *BDD) bool { return !l.IsInfeasible() && !bool(l.value) })
}
