// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package expr

import (
	"fmt"
)

// node is an expression of the abstract syntax tree.
type node interface {
	position() Pos
}

type (
	numLit struct {
		pos Pos
		val float64
	}
	strLit struct {
		pos Pos
		val string
	}
	ident struct {
		pos  Pos
		name string
	}
	unary struct {
		pos Pos
		op  tokenKind
		x   node
	}
	binary struct {
		pos  Pos
		op   tokenKind
		x, y node
	}
	call struct {
		pos  Pos
		fn   string
		args []node
	}
)

func (n *numLit) position() Pos { return n.pos }
func (n *strLit) position() Pos { return n.pos }
func (n *ident) position() Pos  { return n.pos }
func (n *unary) position() Pos  { return n.pos }
func (n *binary) position() Pos { return n.pos }
func (n *call) position() Pos   { return n.pos }

// stmt is either a declaration, var name := x, or an expression, in which
// case name is empty.
type stmt struct {
	pos  Pos
	name string
	x    node
}

// Program is the result of parsing a script.
type Program struct {
	stmts []stmt
}

// Len returns the number of statements in p.
func (p *Program) Len() int { return len(p.stmts) }

type parser struct {
	sc  *scanner
	tok token
}

// Parse parses a script. A script is a sequence of statements, separated by
// newlines or semicolons, that are either declarations, such as
//
//	var x := range(1, 2) * 3
//
// or expressions. The grammar of expressions is, by increasing precedence:
//
//	x | y       disjunction
//	x & y       conjunction
//	x < y       comparisons (<, <=, >, >=), not associative
//	x + y       sum and difference
//	x * y       product and division
//	-x, !x      negation
//	f(x, ...)   function call, number, string, variable or (x)
func Parse(src string) (*Program, error) {
	p := &parser{sc: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog := &Program{}
	for {
		for p.tok.kind == tSEMI {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.tok.kind == tEOF {
			return prog, nil
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.stmts = append(prog.stmts, s)
		if p.tok.kind != tSEMI && p.tok.kind != tEOF {
			return nil, p.unexpected()
		}
	}
}

func (p *parser) advance() error {
	t, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) unexpected() error {
	t := p.tok
	if t.text != "" {
		return fmt.Errorf("%s: unexpected %s %q", t.pos, t.kind, t.text)
	}
	return fmt.Errorf("%s: unexpected %s", t.pos, t.kind)
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.tok
	if t.kind != k {
		return t, fmt.Errorf("%s: expected %s, found %s", t.pos, k, t.kind)
	}
	return t, p.advance()
}

func (p *parser) statement() (stmt, error) {
	pos := p.tok.pos
	if p.tok.kind != tVAR {
		x, err := p.expr()
		return stmt{pos: pos, x: x}, err
	}
	if err := p.advance(); err != nil {
		return stmt{}, err
	}
	id, err := p.expect(tIDENT)
	if err != nil {
		return stmt{}, err
	}
	if _, err := p.expect(tDEFINE); err != nil {
		return stmt{}, err
	}
	x, err := p.expr()
	return stmt{pos: pos, name: id.text, x: x}, err
}

func (p *parser) expr() (node, error) {
	return p.binaryLevel(0)
}

// levels lists the binary operators by increasing precedence.
var levels = [][]tokenKind{
	{tOR},
	{tAND},
	{tLT, tLE, tGT, tGE},
	{tPLUS, tMINUS},
	{tSTAR, tSLASH},
}

func (p *parser) binaryLevel(level int) (node, error) {
	if level == len(levels) {
		return p.unaryExpr()
	}
	x, err := p.binaryLevel(level + 1)
	if err != nil {
		return nil, err
	}
	for isOneOf(p.tok.kind, levels[level]) {
		op := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.binaryLevel(level + 1)
		if err != nil {
			return nil, err
		}
		x = &binary{pos: op.pos, op: op.kind, x: x, y: y}
		if level == 2 && isOneOf(p.tok.kind, levels[level]) {
			return nil, fmt.Errorf("%s: comparisons cannot be chained", p.tok.pos)
		}
	}
	return x, nil
}

func isOneOf(k tokenKind, ks []tokenKind) bool {
	for _, kk := range ks {
		if k == kk {
			return true
		}
	}
	return false
}

func (p *parser) unaryExpr() (node, error) {
	if k := p.tok.kind; k == tMINUS || k == tNOT {
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return &unary{pos: pos, op: k, x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.tok
	switch t.kind {
	case tNUMBER:
		return &numLit{pos: t.pos, val: t.num}, p.advance()
	case tSTRING:
		return &strLit{pos: t.pos, val: t.text}, p.advance()
	case tLPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		_, err = p.expect(tRPAREN)
		return x, err
	case tIDENT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tLPAREN {
			return &ident{pos: t.pos, name: t.text}, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		c := &call{pos: t.pos, fn: t.text}
		for p.tok.kind != tRPAREN {
			if len(c.args) > 0 {
				if _, err := p.expect(tCOMMA); err != nil {
					return nil, err
				}
			}
			a, err := p.expr()
			if err != nil {
				return nil, err
			}
			c.args = append(c.args, a)
		}
		return c, p.advance()
	}
	return nil, p.unexpected()
}
