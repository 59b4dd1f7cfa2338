// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package expr

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dalzilio/aadd"
)

// Value is the result of an expression: either a real quantity, as an AADD, or
// a Boolean, as a BDD. Exactly one of the two fields is non-nil.
type Value struct {
	Real *aadd.AADD
	Bool *aadd.BDD
}

// IsBool reports whether v is a Boolean value.
func (v Value) IsBool() bool { return v.Bool != nil }

func (v Value) kind() string {
	if v.IsBool() {
		return "bool"
	}
	return "real"
}

// Binding is the value of a statement. Name is empty for expressions.
type Binding struct {
	Name  string
	Pos   Pos
	Value Value
}

// Evaluator runs programs with a given Manager. Variables declared by a
// program are kept between calls to Run, so that a script can be evaluated one
// statement at a time.
type Evaluator struct {
	m    *aadd.Manager
	vars map[string]Value
	log  *slog.Logger
}

// NewEvaluator returns an evaluator with no variables, except the constants
// true and false. Evaluation is logged on l at debug level, or discarded if l
// is nil.
func NewEvaluator(m *aadd.Manager, l *slog.Logger) *Evaluator {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Evaluator{
		m: m,
		vars: map[string]Value{
			"true":  {Bool: m.True()},
			"false": {Bool: m.False()},
		},
		log: l,
	}
}

// Lookup returns the value of variable name.
func (e *Evaluator) Lookup(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Eval parses and runs src with a new evaluator.
func Eval(m *aadd.Manager, src string) ([]Binding, error) {
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(m, nil).Run(p)
}

// Run evaluates the statements of p in order and returns their values. We stop
// at the first error. Unbounded LP problems, which make the Manager panic, are
// also returned as errors.
func (e *Evaluator) Run(p *Program) (res []Binding, err error) {
	defer func() {
		if r := recover(); r != nil {
			var ue *aadd.UnboundedError
			if rerr, ok := r.(error); ok && errors.As(rerr, &ue) {
				err = fmt.Errorf("evaluation aborted: %w", ue)
				return
			}
			panic(r)
		}
	}()
	for _, s := range p.stmts {
		if s.name != "" {
			if _, ok := e.vars[s.name]; ok {
				return res, fmt.Errorf("%s: %s redeclared", s.pos, s.name)
			}
		}
		v, err := e.eval(s.x)
		if err != nil {
			return res, err
		}
		if s.name != "" {
			e.vars[s.name] = v
		}
		e.log.Debug("statement evaluated", "pos", s.pos.String(), "name", s.name, "kind", v.kind())
		res = append(res, Binding{Name: s.name, Pos: s.pos, Value: v})
	}
	return res, nil
}

func (e *Evaluator) eval(n node) (Value, error) {
	switch n := n.(type) {
	case *numLit:
		return Value{Real: e.m.Scalar(n.val)}, nil
	case *strLit:
		return Value{}, fmt.Errorf("%s: unexpected string %q", n.pos, n.val)
	case *ident:
		v, ok := e.vars[n.name]
		if !ok {
			return Value{}, fmt.Errorf("%s: undefined: %s", n.pos, n.name)
		}
		return v, nil
	case *unary:
		x, err := e.eval(n.x)
		if err != nil {
			return Value{}, err
		}
		if n.op == tNOT {
			if !x.IsBool() {
				return Value{}, fmt.Errorf("%s: operator ! not defined on real values", n.pos)
			}
			return Value{Bool: e.m.Not(x.Bool)}, nil
		}
		if x.IsBool() {
			return Value{}, fmt.Errorf("%s: operator - not defined on bool values", n.pos)
		}
		return Value{Real: e.m.Negate(x.Real)}, nil
	case *binary:
		return e.binary(n)
	case *call:
		return e.call(n)
	}
	panic(fmt.Sprintf("unexpected node %T", n))
}

func (e *Evaluator) binary(n *binary) (Value, error) {
	x, err := e.eval(n.x)
	if err != nil {
		return Value{}, err
	}
	y, err := e.eval(n.y)
	if err != nil {
		return Value{}, err
	}
	if n.op == tAND || n.op == tOR {
		if !x.IsBool() || !y.IsBool() {
			return Value{}, fmt.Errorf("%s: operator %s needs bool operands, found %s and %s", n.pos, n.op, x.kind(), y.kind())
		}
		if n.op == tAND {
			return Value{Bool: e.m.And(x.Bool, y.Bool)}, nil
		}
		return Value{Bool: e.m.Or(x.Bool, y.Bool)}, nil
	}
	if x.IsBool() || y.IsBool() {
		return Value{}, fmt.Errorf("%s: operator %s needs real operands, found %s and %s", n.pos, n.op, x.kind(), y.kind())
	}
	a, b := x.Real, y.Real
	switch n.op {
	case tPLUS:
		return Value{Real: e.m.Add(a, b)}, nil
	case tMINUS:
		return Value{Real: e.m.Sub(a, b)}, nil
	case tSTAR:
		return Value{Real: e.m.Mult(a, b)}, nil
	case tSLASH:
		return Value{Real: e.m.Div(a, b)}, nil
	case tLT:
		return Value{Bool: e.m.Lt(a, b)}, nil
	case tLE:
		return Value{Bool: e.m.Le(a, b)}, nil
	case tGT:
		return Value{Bool: e.m.Gt(a, b)}, nil
	case tGE:
		return Value{Bool: e.m.Ge(a, b)}, nil
	}
	panic(fmt.Sprintf("unexpected operator %s", n.op))
}

var unaryFuncs = map[string]func(*aadd.Manager, *aadd.AADD) *aadd.AADD{
	"exp":  (*aadd.Manager).Exp,
	"log":  (*aadd.Manager).Log,
	"sqrt": (*aadd.Manager).Sqrt,
	"inv":  (*aadd.Manager).Inv,
	"sqr":  (*aadd.Manager).Sqr,
	"sin":  (*aadd.Manager).Sin,
	"cos":  (*aadd.Manager).Cos,
}

// call evaluates the builtin functions. Besides the unary functions above, we
// have:
//
//	range(lo, hi [, name [, unit [, comment]]])   interval on a new noise symbol
//	ite(c, x, y)                                  x if c holds, y otherwise
//	intersect(x, lo, hi)                          x restricted to [lo, hi]
//	bool([name])                                  unknown Boolean input
func (e *Evaluator) call(n *call) (Value, error) {
	if fn, ok := unaryFuncs[n.fn]; ok {
		if len(n.args) != 1 {
			return Value{}, fmt.Errorf("%s: %s expects 1 argument, found %d", n.pos, n.fn, len(n.args))
		}
		x, err := e.real(n.args[0])
		if err != nil {
			return Value{}, err
		}
		return Value{Real: fn(e.m, x)}, nil
	}
	switch n.fn {
	case "range":
		if len(n.args) < 2 || len(n.args) > 5 {
			return Value{}, fmt.Errorf("%s: range expects 2 to 5 arguments, found %d", n.pos, len(n.args))
		}
		lo, err := e.constant(n.args[0])
		if err != nil {
			return Value{}, err
		}
		hi, err := e.constant(n.args[1])
		if err != nil {
			return Value{}, err
		}
		docs, err := stringArgs(n.args[2:])
		if err != nil {
			return Value{}, err
		}
		return Value{Real: e.m.Range(lo, hi, aadd.Fresh, docs...)}, nil
	case "ite":
		if len(n.args) != 3 {
			return Value{}, fmt.Errorf("%s: ite expects 3 arguments, found %d", n.pos, len(n.args))
		}
		c, err := e.eval(n.args[0])
		if err != nil {
			return Value{}, err
		}
		if !c.IsBool() {
			return Value{}, fmt.Errorf("%s: condition of ite should be a bool", n.args[0].position())
		}
		x, err := e.eval(n.args[1])
		if err != nil {
			return Value{}, err
		}
		y, err := e.eval(n.args[2])
		if err != nil {
			return Value{}, err
		}
		switch {
		case x.IsBool() && y.IsBool():
			return Value{Bool: e.m.Ite(c.Bool, x.Bool, y.Bool)}, nil
		case !x.IsBool() && !y.IsBool():
			return Value{Real: e.m.IteAADD(c.Bool, x.Real, y.Real)}, nil
		}
		return Value{}, fmt.Errorf("%s: branches of ite have different types, %s and %s", n.pos, x.kind(), y.kind())
	case "intersect":
		if len(n.args) != 3 {
			return Value{}, fmt.Errorf("%s: intersect expects 3 arguments, found %d", n.pos, len(n.args))
		}
		x, err := e.real(n.args[0])
		if err != nil {
			return Value{}, err
		}
		lo, err := e.constant(n.args[1])
		if err != nil {
			return Value{}, err
		}
		hi, err := e.constant(n.args[2])
		if err != nil {
			return Value{}, err
		}
		return Value{Real: e.m.Intersect(x, lo, hi)}, nil
	case "bool":
		if len(n.args) > 1 {
			return Value{}, fmt.Errorf("%s: bool expects at most 1 argument, found %d", n.pos, len(n.args))
		}
		name, err := stringArgs(n.args)
		if err != nil {
			return Value{}, err
		}
		if len(name) == 0 {
			return Value{Bool: e.m.Unknown()}, nil
		}
		return Value{Bool: e.m.Variable(name[0])}, nil
	}
	return Value{}, fmt.Errorf("%s: unknown function %s", n.pos, n.fn)
}

func (e *Evaluator) real(n node) (*aadd.AADD, error) {
	v, err := e.eval(n)
	if err != nil {
		return nil, err
	}
	if v.IsBool() {
		return nil, fmt.Errorf("%s: expected a real value, found a bool", n.position())
	}
	return v.Real, nil
}

// constant evaluates n and checks that it is a scalar.
func (e *Evaluator) constant(n node) (float64, error) {
	x, err := e.real(n)
	if err != nil {
		return 0, err
	}
	if !x.IsLeaf() || !x.Value().IsScalar() {
		return 0, fmt.Errorf("%s: expected a constant", n.position())
	}
	return x.Value().Center(), nil
}

func stringArgs(ns []node) ([]string, error) {
	res := make([]string, len(ns))
	for k, n := range ns {
		s, ok := n.(*strLit)
		if !ok {
			return nil, fmt.Errorf("%s: expected a string", n.position())
		}
		res[k] = s.val
	}
	return res, nil
}
