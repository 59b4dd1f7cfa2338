// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the diagram ITE(x1, ITE(x2, 1, 2), 3), where x1 and x2 are
// the first two top conditions of m.
func sample(t *testing.T) (*Manager, *AADD) {
	t.Helper()
	m, err := New()
	require.NoError(t, err)
	i1 := m.conds.RegisterTop(af1)
	i2 := m.conds.RegisterTop(af2)
	n2 := m.NewAADDNode(i2, m.Scalar(1), m.Scalar(2))
	return m, m.NewAADDNode(i1, n2, m.Scalar(3))
}

func centers(leaves []*AADD) []float64 {
	res := make([]float64, len(leaves))
	for k, l := range leaves {
		res[k] = l.Value().Center()
	}
	return res
}

func TestNodeAccessors(t *testing.T) {
	m, d := sample(t)
	assert.True(t, d.IsInternal())
	assert.Equal(t, int32(1), d.Index())
	assert.Equal(t, int32(2), d.True().Index())
	assert.True(t, d.False().IsLeaf())
	assert.Nil(t, d.False().True())
	assert.Equal(t, leafIndex, d.False().Index())
	assert.Equal(t, NotSolved, d.False().Status())
	assert.Equal(t, 2, d.Height())
	assert.Equal(t, 3, d.NumLeaves())
	assert.Equal(t, 0, d.NumInfeasible())
	assert.Equal(t, []float64{1, 2, 3}, centers(d.Leaves()))
	assert.Equal(t, "ITE(x1, ITE(x2, 1, 2), 3)", d.String())
	assert.Equal(t, "Infeasible", m.infeasible().String())
	assert.Panics(t, func() { d.Value() })
}

func TestMakenode(t *testing.T) {
	m, d := sample(t)
	one := m.Scalar(1)
	// the index of a node must be smaller than the index of its children
	assert.Panics(t, func() { m.NewAADDNode(2, d, one) })
	assert.Panics(t, func() { m.NewAADDNode(1, d, one) })
	// and defined in the condition table
	assert.Panics(t, func() { m.NewBDDNode(5, m.True(), m.False()) })

	// same children
	assert.Same(t, one, m.NewAADDNode(1, m.Scalar(1), one))
	n2 := m.NewAADDNode(2, m.Scalar(1), m.Scalar(2))
	assert.Same(t, n2, m.NewAADDNode(1, d.True(), n2), "structurally equal children")

	// infeasible children are pruned
	assert.Same(t, m.False(), m.NewBDDNode(1, m.Infeasible(), m.False()))
	assert.Same(t, m.True(), m.NewBDDNode(1, m.True(), m.Infeasible()))

	// similar leaves are joined, NaN leaves too
	j := m.NewAADDNode(1, m.Scalar(1), m.Scalar(1.0005))
	require.True(t, j.IsLeaf())
	assert.LessOrEqual(t, j.Value().Min(), 1.0)
	assert.GreaterOrEqual(t, j.Value().Max(), 1.0005)
	assert.True(t, m.NewAADDNode(1, m.Empty(), m.Empty()).IsLeaf())
	assert.True(t, m.NewAADDNode(1, m.Scalar(1), m.Scalar(1.1)).IsInternal())
	assert.True(t, m.NewAADDNode(1, m.Reals(), m.Reals()).IsLeaf(), "equal leaves")
}

func TestNoJoin(t *testing.T) {
	m, err := New(JoinThreshold(0))
	require.NoError(t, err)
	i := m.conds.RegisterTop(af1)
	assert.True(t, m.NewAADDNode(i, m.Scalar(1), m.Scalar(1.0005)).IsInternal())
}

func TestJoinMonotone(t *testing.T) {
	leaves := func(th float64) int {
		m, err := New(JoinThreshold(th))
		require.NoError(t, err)
		a, b := m.Variable("a"), m.Variable("b")
		x := m.Range(1, 1.01, Fresh)
		d := m.IteAADD(a,
			m.IteAADD(b, m.Scalar(1), m.Scalar(1.0005)),
			m.IteAADD(b, m.Scalar(1.2), m.Add(x, m.Scalar(2))))
		return d.NumLeaves()
	}
	thresholds := []float64{0, 0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 100}
	prev := leaves(thresholds[0])
	assert.Equal(t, 4, prev)
	for _, th := range thresholds[1:] {
		n := leaves(th)
		assert.LessOrEqual(t, n, prev, "threshold %g", th)
		prev = n
	}
	assert.Equal(t, 1, prev)
}

func TestSame(t *testing.T) {
	m, d := sample(t)
	_, e := sample(t)
	assert.True(t, same(d, d))
	assert.True(t, same(d, e), "same structure in different managers")
	assert.False(t, same(d, d.True()))
	assert.False(t, same(d.False(), m.Scalar(4)))
	assert.False(t, same(m.Empty(), m.infeasible()), "status is compared")
}

func TestFold(t *testing.T) {
	_, d := sample(t)
	visited := 0
	sum := fold(d,
		func(l *AADD) float64 {
			visited++
			return l.Value().Center()
		},
		func(_ *AADD, t, f float64) float64 {
			visited++
			return t + f
		})
	assert.Equal(t, 6.0, sum)
	assert.Equal(t, 5, visited)
}

func TestWalk(t *testing.T) {
	_, d := sample(t)
	var paths [][]step
	walk(d, func(path []step, _ *AADD) {
		paths = append(paths, append([]step(nil), path...))
	})
	expected := [][]step{
		{{1, true}, {2, true}},
		{{1, true}, {2, false}},
		{{1, false}},
	}
	assert.Equal(t, expected, paths)
}

func TestTransform(t *testing.T) {
	m, d := sample(t)
	var paths [][]step
	b := transform(d,
		func(path []step, l *AADD) *BDD {
			paths = append(paths, append([]step(nil), path...))
			return m.Constant(l.Value().Center() > 1.5)
		},
		func(n *AADD, t, f *BDD) *BDD {
			return m.NewBDDNode(n.index, t, f)
		})
	assert.Equal(t, "ITE(x1, ITE(x2, False, True), True)", b.String())
	assert.Len(t, paths, 3)
	assert.Equal(t, []step{{1, false}}, paths[2])
}

func TestPrint(t *testing.T) {
	_, d := sample(t)
	var buf bytes.Buffer
	require.NoError(t, d.Print(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[len(lines)-1], "[1]")

	buf.Reset()
	require.NoError(t, d.PrintDot(&buf))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Equal(t, 2, strings.Count(dot, "[style=dotted]"))
	assert.Equal(t, 3, strings.Count(dot, "shape=box"))
}
