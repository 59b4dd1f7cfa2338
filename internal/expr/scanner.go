// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package expr

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tEOF tokenKind = iota
	tSEMI
	tIDENT
	tNUMBER
	tSTRING
	tVAR
	tDEFINE // :=
	tPLUS
	tMINUS
	tSTAR
	tSLASH
	tAND
	tOR
	tNOT
	tLT
	tLE
	tGT
	tGE
	tLPAREN
	tRPAREN
	tCOMMA
)

var tokennames = [...]string{
	tEOF:    "end of input",
	tSEMI:   "end of statement",
	tIDENT:  "identifier",
	tNUMBER: "number",
	tSTRING: "string",
	tVAR:    "var",
	tDEFINE: ":=",
	tPLUS:   "+",
	tMINUS:  "-",
	tSTAR:   "*",
	tSLASH:  "/",
	tAND:    "&",
	tOR:     "|",
	tNOT:    "!",
	tLT:     "<",
	tLE:     "<=",
	tGT:     ">",
	tGE:     ">=",
	tLPAREN: "(",
	tRPAREN: ")",
	tCOMMA:  ",",
}

func (k tokenKind) String() string {
	return tokennames[k]
}

// Pos is a position in the source, starting at line 1, column 1.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  Pos
}

// scanner splits the source into tokens. Newlines and semicolons both end a
// statement; comments start with '#' and run until the end of the line.
type scanner struct {
	src  []rune
	off  int
	line int
	col  int
}

func newScanner(src string) *scanner {
	return &scanner{src: []rune(src), line: 1, col: 1}
}

func (s *scanner) peekc() rune {
	if s.off < len(s.src) {
		return s.src[s.off]
	}
	return 0
}

func (s *scanner) nextc() rune {
	c := s.src[s.off]
	s.off++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) next() (token, error) {
	for s.off < len(s.src) {
		c := s.peekc()
		if c == '#' {
			for s.off < len(s.src) && s.peekc() != '\n' {
				s.nextc()
			}
			continue
		}
		if c == '\n' || !unicode.IsSpace(c) {
			break
		}
		s.nextc()
	}
	pos := Pos{s.line, s.col}
	if s.off >= len(s.src) {
		return token{kind: tEOF, pos: pos}, nil
	}
	c := s.nextc()
	switch {
	case c == '\n' || c == ';':
		return token{kind: tSEMI, pos: pos}, nil
	case unicode.IsLetter(c) || c == '_':
		start := s.off - 1
		for s.off < len(s.src) && (unicode.IsLetter(s.peekc()) || unicode.IsDigit(s.peekc()) || s.peekc() == '_') {
			s.nextc()
		}
		text := string(s.src[start:s.off])
		if text == "var" {
			return token{kind: tVAR, text: text, pos: pos}, nil
		}
		return token{kind: tIDENT, text: text, pos: pos}, nil
	case unicode.IsDigit(c) || c == '.':
		return s.number(pos)
	case c == '"':
		start := s.off
		for s.off < len(s.src) && s.peekc() != '"' && s.peekc() != '\n' {
			s.nextc()
		}
		if s.peekc() != '"' {
			return token{}, fmt.Errorf("%s: unterminated string", pos)
		}
		text := string(s.src[start:s.off])
		s.nextc()
		return token{kind: tSTRING, text: text, pos: pos}, nil
	}
	two := func(next rune, yes, no tokenKind) token {
		if s.peekc() == next {
			s.nextc()
			return token{kind: yes, pos: pos}
		}
		return token{kind: no, pos: pos}
	}
	switch c {
	case '+':
		return token{kind: tPLUS, pos: pos}, nil
	case '-':
		return token{kind: tMINUS, pos: pos}, nil
	case '*':
		return token{kind: tSTAR, pos: pos}, nil
	case '/':
		return token{kind: tSLASH, pos: pos}, nil
	case '&':
		return two('&', tAND, tAND), nil
	case '|':
		return two('|', tOR, tOR), nil
	case '!':
		return token{kind: tNOT, pos: pos}, nil
	case '(':
		return token{kind: tLPAREN, pos: pos}, nil
	case ')':
		return token{kind: tRPAREN, pos: pos}, nil
	case ',':
		return token{kind: tCOMMA, pos: pos}, nil
	case '<':
		return two('=', tLE, tLT), nil
	case '>':
		return two('=', tGE, tGT), nil
	case ':':
		if s.peekc() == '=' {
			s.nextc()
			return token{kind: tDEFINE, pos: pos}, nil
		}
	}
	return token{}, fmt.Errorf("%s: unexpected character %q", pos, c)
}

// number scans a decimal number, with an optional exponent. The first rune
// has already been consumed.
func (s *scanner) number(pos Pos) (token, error) {
	start := s.off - 1
	digits := func() {
		for s.off < len(s.src) && unicode.IsDigit(s.peekc()) {
			s.nextc()
		}
	}
	digits()
	if s.src[start] != '.' && s.peekc() == '.' {
		s.nextc()
	}
	digits()
	if c := s.peekc(); c == 'e' || c == 'E' {
		s.nextc()
		if c := s.peekc(); c == '+' || c == '-' {
			s.nextc()
		}
		digits()
	}
	text := string(s.src[start:s.off])
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, fmt.Errorf("%s: bad number %q", pos, text)
	}
	return token{kind: tNUMBER, text: text, num: f, pos: pos}, nil
}
