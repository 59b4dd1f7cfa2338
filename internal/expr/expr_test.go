// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package expr

import (
	"testing"

	"github.com/dalzilio/aadd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	sc := newScanner("var x := 1.5e1 # comment\nx >= .5; \"a b\"")
	want := []tokenKind{tVAR, tIDENT, tDEFINE, tNUMBER, tSEMI, tIDENT, tGE, tNUMBER, tSEMI, tSTRING, tEOF}
	var got []tokenKind
	var nums []float64
	for {
		tok, err := sc.next()
		require.NoError(t, err)
		got = append(got, tok.kind)
		if tok.kind == tNUMBER {
			nums = append(nums, tok.num)
		}
		if tok.kind == tEOF {
			break
		}
	}
	assert.Equal(t, want, got)
	assert.Equal(t, []float64{15, 0.5}, nums)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"var := 1", "1:5: expected identifier"},
		{"var x = 1", "1:7: unexpected character '='"},
		{"1 +", "1:4: unexpected end of input"},
		{"1 < 2 < 3", "comparisons cannot be chained"},
		{"f(1 2)", "expected ,"},
		{"(1", "expected )"},
		{"\"abc", "unterminated string"},
		{"1 2", "unexpected number"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("\n\nvar x := range(1, 2)\n;;\nx * 2 + 1\n")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
	// product binds tighter than sum
	b, ok := p.stmts[1].x.(*binary)
	require.True(t, ok)
	assert.Equal(t, tPLUS, b.op)
	assert.Equal(t, Pos{5, 7}, b.pos)
}

func TestEvalBounds(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		min, max float64
	}{
		{"affine", "var x := range(1, 2)\nx * 2 + 1", 3, 5},
		{"correlation", "var x := range(1, 2)\nx - x", 0, 0},
		{"negate", "var x := range(1, 2)\n-x", -2, -1},
		{"division", "4 / 2", 2, 2},
		{"sqrt", "sqrt(16)", 4, 4},
		{"ite", "var x := range(-1, 1)\nite(x >= 0, x, -x)", 0, 1},
		{"intersect", "intersect(range(1, 3), 1.2, 2.2)", 1.2, 2.2},
		{"sqr", "sqr(3)", 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := aadd.New()
			require.NoError(t, err)
			res, err := Eval(m, tt.src)
			require.NoError(t, err)
			require.NotEmpty(t, res)
			last := res[len(res)-1]
			require.False(t, last.Value.IsBool())
			min, max := m.MinMax(last.Value.Real)
			assert.InDelta(t, tt.min, min, 1e-3)
			assert.InDelta(t, tt.max, max, 1e-3)
		})
	}
}

func TestEvalBool(t *testing.T) {
	m, err := aadd.New()
	require.NoError(t, err)
	ev := NewEvaluator(m, nil)
	p, err := Parse(`
var x := range(1, 2, "x", "m")
var b := x > 0
var c := x > 1.5
var d := bool("door") | !bool()
b & c
`)
	require.NoError(t, err)
	res, err := ev.Run(p)
	require.NoError(t, err)
	require.Len(t, res, 5)
	assert.Equal(t, "x", res[0].Name)
	assert.Empty(t, res[4].Name)

	b, ok := ev.Lookup("b")
	require.True(t, ok)
	assert.Same(t, m.True(), b.Bool, "x > 0 always holds")
	c, _ := ev.Lookup("c")
	assert.True(t, c.Bool.IsInternal())
	assert.Equal(t, 3, m.Conditions().Len(), "x > 1.5, door and an anonymous variable")

	ns, err := m.SymbolDoc(1)
	require.NoError(t, err)
	assert.Equal(t, aadd.NoiseSymbol{ID: 1, Name: "x", Unit: "m"}, ns)
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"y + 1", "undefined: y"},
		{"var x := 1\nvar x := 2", "2:1: x redeclared"},
		{"true + 1", "needs real operands"},
		{"1 & 2", "needs bool operands"},
		{"!1", "operator ! not defined"},
		{"-true", "operator - not defined"},
		{"exp(1, 2)", "exp expects 1 argument"},
		{"exp(true)", "expected a real value"},
		{"range(range(0, 1), 2)", "expected a constant"},
		{"range(0, 1, 2)", "expected a string"},
		{"ite(1, 2, 3)", "condition of ite should be a bool"},
		{"ite(true, 2, false)", "different types"},
		{"foo(1)", "unknown function foo"},
		{"\"s\"", "unexpected string"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			m, err := aadd.New()
			require.NoError(t, err)
			_, err = Eval(m, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
