// Package fit provides the descriptive curve fits drawn on each panel: a
// piecewise polynomial trend split at the collapse threshold and a
// quantile-regression ribbon.
package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PolyFit fits a least-squares polynomial of the given degree to (xs, ys)
// and returns its coefficients [c0, c1, ...] where y = c0 + c1*x + c2*x^2 + ...
func PolyFit(xs, ys []float64, degree int) ([]float64, error) {
	weights := make([]float64, len(xs))
	for i := range weights {
		weights[i] = 1
	}
	return polyFitWeighted(xs, ys, weights, degree)
}

// polyFitWeighted solves the weighted least-squares polynomial fit by QR
// decomposition of the row-scaled Vandermonde matrix.
func polyFitWeighted(xs, ys, weights []float64, degree int) ([]float64, error) {
	n := len(xs)
	if len(ys) != n || len(weights) != n {
		return nil, fmt.Errorf("fit: length mismatch: x=%d y=%d w=%d", n, len(ys), len(weights))
	}
	if n < degree+1 {
		return nil, fmt.Errorf("fit: %d observations cannot determine a degree-%d polynomial", n, degree)
	}

	// Build the Vandermonde matrix, scaling each row by sqrt(weight).
	X := mat.NewDense(n, degree+1, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		sw := math.Sqrt(weights[i])
		for j := 0; j <= degree; j++ {
			X.Set(i, j, sw*math.Pow(xs[i], float64(j)))
		}
		b.SetVec(i, sw*ys[i])
	}

	var qr mat.QR
	qr.Factorize(X)

	coeffs := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(coeffs, false, b); err != nil {
		return nil, fmt.Errorf("fit: solving degree-%d least squares: %w", degree, err)
	}

	out := make([]float64, degree+1)
	for i := 0; i <= degree; i++ {
		out[i] = coeffs.AtVec(i)
	}
	return out, nil
}

// PolyEval evaluates a polynomial with coefficients [c0, c1, ...] at x.
func PolyEval(coeffs []float64, x float64) float64 {
	y := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}
