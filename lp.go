// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// lpbounds returns the minimum and maximum of v when the noise symbols range
// over [-1, 1] and satisfy all the conditions in conds.
//
// The simplex works on problems in standard form (minimize c·x with Ax = b and
// x >= 0), so we substitute y = e + 1 for every noise symbol e, with y in [0,
// 2]. With n symbols and k conditions the variables are y_0..y_n-1, the slack
// variables s_0..s_n-1 of the box constraints y_i + s_i = 2, and the slack
// variables t_0..t_k-1 of the conditions. A condition x0 + Σ ci·ei ± r >= 0 is
// relaxed into Σ ci·ei >= -x0 - r, and its negation into Σ ci·ei <= -x0 + r.
func (m *Manager) lpbounds(v AffineForm, conds []pathCond) (lo, hi float64, err error) {
	start := time.Now()
	defer func() {
		m.metrics.LPSolved(lpOutcome(err), time.Since(start))
	}()
	cols := make(map[int]int)
	for _, f := range append([]AffineForm{v}, formsOf(conds)...) {
		for _, t := range f.terms {
			if _, ok := cols[t.sym]; !ok {
				cols[t.sym] = len(cols)
			}
		}
	}
	n, k := len(cols), len(conds)
	A := mat.NewDense(n+k, 2*n+k, nil)
	b := make([]float64, n+k)
	for i := 0; i < n; i++ {
		A.Set(i, i, 1)
		A.Set(i, n+i, 1)
		b[i] = 2
	}
	for j, c := range conds {
		row := n + j
		sum := 0.0
		for _, t := range c.form.terms {
			A.Set(row, cols[t.sym], t.coef)
			sum += t.coef
		}
		if c.ge {
			A.Set(row, 2*n+j, -1)
			b[row] = sum - c.form.x0 - c.form.r
		} else {
			A.Set(row, 2*n+j, 1)
			b[row] = sum - c.form.x0 + c.form.r
		}
	}
	obj := make([]float64, 2*n+k)
	sum := 0.0
	for _, t := range v.terms {
		obj[cols[t.sym]] = t.coef
		sum += t.coef
	}
	if _DEBUG {
		m.log.Debug("calling LP solver", "leaf", v, "symbols", n, "conditions", k)
	}
	optMin, _, err := lp.Simplex(obj, A, append([]float64(nil), b...), m.lptol, nil)
	if err != nil {
		return v.min, v.max, err
	}
	for i := range obj {
		obj[i] = -obj[i]
	}
	optMax, _, err := lp.Simplex(obj, A, b, m.lptol, nil)
	if err != nil {
		return v.min, v.max, err
	}
	lo = optMin - sum + v.x0 - v.r
	hi = -optMax - sum + v.x0 + v.r
	lo -= ulp(lo)
	hi += ulp(hi)
	return math.Max(lo, v.min), math.Min(hi, v.max), nil
}

func formsOf(conds []pathCond) []AffineForm {
	res := make([]AffineForm, len(conds))
	for k, c := range conds {
		res[k] = c.form
	}
	return res
}

func lpOutcome(err error) string {
	switch {
	case err == nil:
		return lpFeasible
	case errors.Is(err, lp.ErrInfeasible):
		return lpInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return lpUnbounded
	}
	return lpFailed
}
