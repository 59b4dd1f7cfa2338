// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import "fmt"

// Leaf is the constraint on the values stored in the leaves of a decision
// diagram.
type Leaf[V any] interface {
	Equal(V) bool
	String() string
}

// Status records what we know about the path condition of a leaf. Leaves are
// NotSolved until the LP solver has been called on their path.
type Status int8

const (
	NotSolved Status = iota
	Feasible
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	}
	return "not solved"
}

// DD is a node in an ordered decision diagram with leaves of type V. A node is
// either a leaf, holding a value, or an internal node that branches on the
// condition with the given index. The index of an internal node is always
// strictly smaller than the index of its children, and leaves have the
// largest possible index.
//
// Nodes are immutable. They are built by a Manager, which also owns the
// condition table used to interpret indexes, and can be shared freely between
// diagrams of the same Manager.
type DD[V Leaf[V]] struct {
	id     uint64
	index  int32
	t, f   *DD[V]
	value  V
	status Status
}

// Bool is the type of BDD leaves.
type Bool bool

// Equal reports whether b and c are the same Boolean.
func (b Bool) Equal(c Bool) bool { return b == c }

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

// BDD is a decision diagram with Boolean leaves.
type BDD = DD[Bool]

// AADD is a decision diagram whose leaves are affine forms.
type AADD = DD[AffineForm]

// IsLeaf returns true if d is a leaf.
func (d *DD[V]) IsLeaf() bool { return d.index == leafIndex }

// IsInternal returns true if d is an internal node.
func (d *DD[V]) IsInternal() bool { return d.index != leafIndex }

// Index returns the condition index of an internal node, and math.MaxInt32
// for leaves.
func (d *DD[V]) Index() int32 { return d.index }

// True returns the child of d taken when its condition holds, or nil if d is
// a leaf.
func (d *DD[V]) True() *DD[V] { return d.t }

// False returns the child of d taken when its condition does not hold, or nil
// if d is a leaf.
func (d *DD[V]) False() *DD[V] { return d.f }

// Status returns the status of the path condition of a leaf.
func (d *DD[V]) Status() Status { return d.status }

// IsInfeasible reports whether d is a leaf on an infeasible path.
func (d *DD[V]) IsInfeasible() bool { return d.status == Infeasible }

// Value returns the value of a leaf. It panics if d is an internal node.
func (d *DD[V]) Value() V {
	if d.IsInternal() {
		panic(invariantf("value of internal node %d (index %d)", d.id, d.index))
	}
	return d.value
}

// Height returns the length of the longest path from d to a leaf. The height
// of a leaf is 0.
func (d *DD[V]) Height() int {
	return fold(d,
		func(*DD[V]) int { return 0 },
		func(_ *DD[V], t, f int) int { return 1 + max(t, f) })
}

// NumLeaves returns the number of paths from d to a leaf.
func (d *DD[V]) NumLeaves() int {
	return countLeaves(d, func(*DD[V]) bool { return true })
}

// NumInfeasible returns the number of paths from d to an infeasible leaf.
func (d *DD[V]) NumInfeasible() int {
	return countLeaves(d, (*DD[V]).IsInfeasible)
}

// Leaves returns the leaves of d, in the order of a depth-first traversal
// visiting the true branch first. A leaf reachable by several paths is
// returned once per path.
func (d *DD[V]) Leaves() []*DD[V] {
	var res []*DD[V]
	walk(d, func(_ []step, leaf *DD[V]) {
		res = append(res, leaf)
	})
	return res
}

func (d *DD[V]) String() string {
	if d.IsLeaf() {
		if d.IsInfeasible() {
			return "Infeasible"
		}
		return d.value.String()
	}
	return fmt.Sprintf("ITE(x%d, %s, %s)", d.index, d.t, d.f)
}

func countLeaves[V Leaf[V]](d *DD[V], pred func(*DD[V]) bool) int {
	return fold(d,
		func(leaf *DD[V]) int {
			if pred(leaf) {
				return 1
			}
			return 0
		},
		func(_ *DD[V], t, f int) int { return t + f })
}

// fold computes a value bottom-up over the diagram d, applying leaf on the
// leaves and node on internal nodes, with the results for both children.
// Shared subdiagrams are only visited once. We use an explicit stack so that
// deep diagrams cannot overflow the goroutine stack.
func fold[V Leaf[V], R any](d *DD[V], leaf func(*DD[V]) R, node func(n *DD[V], t, f R) R) R {
	memo := make(map[*DD[V]]R)
	stack := []*DD[V]{d}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		if _, ok := memo[n]; ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if n.IsLeaf() {
			memo[n] = leaf(n)
			stack = stack[:len(stack)-1]
			continue
		}
		rt, okt := memo[n.t]
		rf, okf := memo[n.f]
		if okt && okf {
			memo[n] = node(n, rt, rf)
			stack = stack[:len(stack)-1]
			continue
		}
		if !okt {
			stack = append(stack, n.t)
		}
		if !okf {
			stack = append(stack, n.f)
		}
	}
	return memo[d]
}

// step is one decision on a path from the root to a leaf: the condition index
// and whether we followed its true branch (index >= 0).
type step struct {
	index int32
	ge    bool
}

// walk calls fn for every path from d to a leaf, with the list of decisions
// along the path. The slice passed to fn is only valid during the call.
func walk[V Leaf[V]](d *DD[V], fn func(path []step, leaf *DD[V])) {
	type frame struct {
		node  *DD[V]
		depth int
		ge    bool
	}
	var path []step
	stack := []frame{{node: d}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		path = path[:fr.depth]
		if fr.depth > 0 {
			path[fr.depth-1].ge = fr.ge
		}
		n := fr.node
		if n.IsLeaf() {
			fn(path, n)
			continue
		}
		path = append(path, step{index: n.index})
		stack = append(stack,
			frame{node: n.f, depth: fr.depth + 1, ge: false},
			frame{node: n.t, depth: fr.depth + 1, ge: true})
	}
}

// transform rebuilds the diagram d top-down, calling leaf with the list of
// decisions leading to each leaf and node to rebuild each internal node from
// its new children. Contrary to fold, a subdiagram shared by several paths is
// visited once for each path.
func transform[V Leaf[V], W Leaf[W]](d *DD[V], leaf func(path []step, l *DD[V]) *DD[W], node func(n *DD[V], t, f *DD[W]) *DD[W]) *DD[W] {
	type frame struct {
		node  *DD[V]
		state int8 // 0: enter, 1: true branch done, 2: both branches done
	}
	var path []step
	var results []*DD[W]
	stack := []frame{{node: d}}
	for len(stack) > 0 {
		top := len(stack) - 1
		n := stack[top].node
		if n.IsLeaf() {
			results = append(results, leaf(path, n))
			stack = stack[:top]
			continue
		}
		switch stack[top].state {
		case 0:
			stack[top].state = 1
			path = append(path, step{index: n.index, ge: true})
			stack = append(stack, frame{node: n.t})
		case 1:
			stack[top].state = 2
			path[len(path)-1].ge = false
			stack = append(stack, frame{node: n.f})
		default:
			path = path[:len(path)-1]
			k := len(results) - 2
			res := node(n, results[k], results[k+1])
			results = append(results[:k], res)
			stack = stack[:top]
		}
	}
	return results[0]
}

// same reports whether a and b denote the same diagram: either the same node,
// or nodes with the same index, status and (recursively) children or value.
func same[V Leaf[V]](a, b *DD[V]) bool {
	type pair struct{ a, b *DD[V] }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == p.b {
			continue
		}
		if p.a.index != p.b.index || p.a.status != p.b.status {
			return false
		}
		if p.a.IsLeaf() {
			if !p.a.value.Equal(p.b.value) {
				return false
			}
			continue
		}
		stack = append(stack, pair{p.a.t, p.b.t}, pair{p.a.f, p.b.f})
	}
	return true
}

// cofactors returns the index on which to branch when combining a and b, and
// the true and false cofactors of both diagrams for this index. An operand
// that does not branch on the index is its own cofactor.
func cofactors[V Leaf[V], W Leaf[W]](a *DD[V], b *DD[W]) (idx int32, at, af *DD[V], bt, bf *DD[W]) {
	idx = a.index
	if b.index < idx {
		idx = b.index
	}
	at, af = a, a
	if a.index == idx {
		at, af = a.t, a.f
	}
	bt, bf = b, b
	if b.index == idx {
		bt, bf = b.t, b.f
	}
	return
}
