// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd_test

import (
	"fmt"
	"log"

	"github.com/dalzilio/aadd"
)

// This example shows the basic usage of the package: create a Manager, build
// some uncertain values and compute bounds for an expression.
func Example_basic() {
	m, err := aadd.New()
	if err != nil {
		log.Fatal(err)
	}
	// x and y are the intervals [1, 2] and [2, 3], each on its own noise
	// symbol. The optional strings document the symbol.
	x := m.Range(1, 2, aadd.Fresh, "x", "m")
	y := m.Range(2, 3, aadd.Fresh, "y", "m")
	// Correlations are kept: x - x is exactly 0
	d := m.Sub(x, x)
	fmt.Println(d.Value().Center(), d.Value().Radius())
	lo, hi := m.MinMax(m.Add(x, y))
	fmt.Printf("x + y in [%.2f, %.2f]\n", lo, hi)
	// Output:
	// 0 0
	// x + y in [3.00, 5.00]
}

// This example shows how comparisons and if-then-else build diagrams with
// several leaves. The bounds of each leaf take into account the conditions on
// its path.
func Example_ite() {
	m, _ := aadd.New()
	x := m.Range(-1, 1, aadd.Fresh, "x")
	// abs is x when x >= 0, and -x otherwise
	abs := m.IteAADD(m.Ge(x, m.Scalar(0)), x, m.Negate(x))
	_, hi := m.MinMax(abs)
	fmt.Printf("height %d, %d leaves, |x| <= %.2f\n", abs.Height(), abs.NumLeaves(), hi)
	// Output:
	// height 1, 2 leaves, |x| <= 1.00
}

// This example uses the constraints of an interval to restrict the values of
// an AADD.
func Example_intersect() {
	m, _ := aadd.New()
	x := m.Range(1, 3, aadd.Fresh)
	r := m.Bounds(m.Intersect(x, 1.2, 2.2))
	fmt.Printf("[%.3f, %.3f]\n", r.Min(), r.Max())
	// Output:
	// [1.200, 2.200]
}

// This example shows the BDD operations. Boolean variables are conditions
// whose value is unknown.
func Example_bdd() {
	m, _ := aadd.New()
	a, b := m.Variable("a"), m.Variable("b")
	// a implies b
	f := m.Or(m.And(a, b), m.Not(a))
	fmt.Println(f)
	fmt.Println(m.NumTrue(f), m.NumFalse(f))
	fmt.Println(m.Xnor(f, m.Imp(a, b)))
	// Output:
	// ITE(x1, ITE(x2, True, False), True)
	// 2 1
	// True
}
