package analysis

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// MinTrendPoints is the shortest series a quadratic is fitted to.
const MinTrendPoints = 3

// Trend is a degree-2 least-squares fit over x = 0..n-1.
type Trend struct {
	// Coefficients are c0, c1, c2 in y = c0 + c1*x + c2*x².
	Coefficients [3]float64 `json:"coefficients"`
	Fitted       []float64  `json:"fitted"`
	RSquared     float64    `json:"r_squared"`
}

// FitQuadratic fits values against their ordinal positions; calendar gaps
// between dates are ignored. It reports false for fewer than MinTrendPoints.
func FitQuadratic(values []int64) (Trend, bool) {
	n := len(values)
	if n < MinTrendPoints {
		return Trend{}, false
	}

	a := mat.NewDense(n, 3, nil)
	ys := make([]float64, n)
	for i, v := range values {
		x := float64(i)
		a.Set(i, 0, 1)
		a.Set(i, 1, x)
		a.Set(i, 2, x*x)
		ys[i] = float64(v)
	}

	var coef mat.VecDense
	if err := coef.SolveVec(a, mat.NewVecDense(n, ys)); err != nil {
		// Near-singular systems still produce a usable solution.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return Trend{}, false
		}
	}

	t := Trend{Fitted: make([]float64, n)}
	for j := range t.Coefficients {
		t.Coefficients[j] = coef.AtVec(j)
	}
	for i := range ys {
		x := float64(i)
		t.Fitted[i] = t.Coefficients[0] + t.Coefficients[1]*x + t.Coefficients[2]*x*x
	}
	t.RSquared = rSquared(ys, t.Fitted)
	return t, true
}

// rSquared is 1 - SSres/SStot, defined as 0 when every observation is equal.
func rSquared(observed, fitted []float64) float64 {
	var mean float64
	for _, y := range observed {
		mean += y
	}
	mean /= float64(len(observed))

	var ssRes, ssTot float64
	for i, y := range observed {
		r := y - fitted[i]
		ssRes += r * r
		d := y - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0
	}

	r2 := 1 - ssRes/ssTot
	switch {
	case r2 < 0:
		return 0
	case r2 > 1:
		return 1
	}
	return r2
}
