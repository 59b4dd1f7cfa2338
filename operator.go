// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

// Operator describe the binary operations available on BDD with Apply.
type Operator int

const (
	OPand    Operator = iota // Boolean conjunction
	OPxor                    // Exclusive or
	OPor                     // Disjunction
	OPnand                   // Negation of and
	OPnor                    // Negation of or
	OPimp                    // Implication
	OPbiimp                  // Equivalence
	OPdiff                   // Difference
	OPless                   // Set difference
	OPinvimp                 // Reverse implication
	op_not                   // Negation. Should not be used in apply, but used in caches
)

var opnames = [11]string{
	OPand:    "and",
	OPxor:    "xor",
	OPor:     "or",
	OPnand:   "nand",
	OPnor:    "nor",
	OPimp:    "imp",
	OPbiimp:  "biimp",
	OPdiff:   "diff",
	OPless:   "less",
	OPinvimp: "invimp",
	op_not:   "not",
}

func (op Operator) String() string {
	return opnames[op]
}

var opres = [10][2][2]bool{
	//                         00       01                 10       11
	OPand:    {0: [2]bool{0: false, 1: false}, 1: [2]bool{0: false, 1: true}}, // 0001
	OPxor:    {0: [2]bool{0: false, 1: true}, 1: [2]bool{0: true, 1: false}},  // 0110
	OPor:     {0: [2]bool{0: false, 1: true}, 1: [2]bool{0: true, 1: true}},   // 0111
	OPnand:   {0: [2]bool{0: true, 1: true}, 1: [2]bool{0: true, 1: false}},   // 1110
	OPnor:    {0: [2]bool{0: true, 1: false}, 1: [2]bool{0: false, 1: false}}, // 1000
	OPimp:    {0: [2]bool{0: true, 1: true}, 1: [2]bool{0: false, 1: true}},   // 1101
	OPbiimp:  {0: [2]bool{0: true, 1: false}, 1: [2]bool{0: false, 1: true}},  // 1001
	OPdiff:   {0: [2]bool{0: false, 1: false}, 1: [2]bool{0: true, 1: false}}, // 0010
	OPless:   {0: [2]bool{0: false, 1: true}, 1: [2]bool{0: false, 1: false}}, // 0100
	OPinvimp: {0: [2]bool{0: true, 1: false}, 1: [2]bool{0: true, 1: true}},   // 1011
}

func b2i(b Bool) int {
	if b {
		return 1
	}
	return 0
}

// eval returns the value of op on the Boolean constants a and b.
func (op Operator) eval(a, b Bool) Bool {
	return Bool(opres[op][b2i(a)][b2i(b)])
}

// arith is the type of the operations on AADD that we keep in the caches.
// Operations that allocate noise symbols (sin, cos) or that have a numerical
// parameter (scale) are not cached.
type arith int

const (
	opadd arith = iota
	opsub
	opmult
	opdiv
	opmask // multiplication by a BDD
	opneg
	opexp
	oplog
	opsqrt
	opinv
	opsqr
)

var arithnames = [11]string{
	opadd:  "+",
	opsub:  "-",
	opmult: "*",
	opdiv:  "/",
	opmask: "mask",
	opneg:  "neg",
	opexp:  "exp",
	oplog:  "log",
	opsqrt: "sqrt",
	opinv:  "inv",
	opsqr:  "sqr",
}

func (op arith) String() string {
	return arithnames[op]
}

// binary returns the operation on leaves matching a binary op.
func (op arith) binary() func(a, b AffineForm) AffineForm {
	switch op {
	case opadd:
		return AffineForm.Add
	case opsub:
		return AffineForm.Sub
	case opmult:
		return AffineForm.Mult
	case opdiv:
		return AffineForm.Div
	}
	panic(invariantf("%s is not a binary operation", op))
}

// unary returns the operation on leaves matching a unary op.
func (op arith) unary() func(a AffineForm) AffineForm {
	switch op {
	case opneg:
		return AffineForm.Negate
	case opexp:
		return AffineForm.Exp
	case oplog:
		return AffineForm.Log
	case opsqrt:
		return AffineForm.Sqrt
	case opinv:
		return AffineForm.Inv
	case opsqr:
		return AffineForm.Sqr
	}
	panic(invariantf("%s is not a unary operation", op))
}
