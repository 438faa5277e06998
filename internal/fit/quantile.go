package fit

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ecodyn/collapseviz/internal/constants"
	"github.com/ecodyn/collapseviz/internal/log"
	"github.com/ecodyn/collapseviz/internal/simulate"
)

const (
	irlsMaxIter = 50
	irlsTol     = 1e-8

	// irlsEps floors residual magnitudes when forming weights so points
	// sitting on the current fit don't blow the system up.
	irlsEps = 1e-6
)

// BandPoint is one evaluated point of the quantile ribbon.
type BandPoint struct {
	X    float64
	YMin float64
	YMax float64
}

// FitRibbon fits two independent quantile regressions of the response on a
// degree-2 polynomial of thermal variability, one per level, over the full
// dataset, and evaluates both on 300 evenly spaced points spanning the full
// x-range.
//
// Because the two fits share nothing, the band can invert (YMin > YMax) at
// some x. That is part of the displayed artifact: inversions are counted and
// logged, never corrected.
func FitRibbon(ds simulate.Dataset, qLow, qHigh float64) ([]BandPoint, error) {
	if !(0 < qLow && qLow < qHigh && qHigh < 1) {
		return nil, fmt.Errorf("fit: invalid quantile levels %v, %v", qLow, qHigh)
	}
	if len(ds) < constants.PolyDegree+1 {
		return nil, fmt.Errorf("fit: %d observations cannot determine the ribbon quantiles", len(ds))
	}

	xs := ds.Xs()
	ys := ds.Ys()

	low, err := fitQuantile(xs, ys, qLow, constants.PolyDegree)
	if err != nil {
		return nil, fmt.Errorf("fit: %v-quantile regression: %w", qLow, err)
	}
	high, err := fitQuantile(xs, ys, qHigh, constants.PolyDegree)
	if err != nil {
		return nil, fmt.Errorf("fit: %v-quantile regression: %w", qHigh, err)
	}

	grid := simulate.Linspace(xs[0], xs[len(xs)-1], constants.RibbonPoints)
	band := make([]BandPoint, len(grid))
	inverted := 0
	for i, x := range grid {
		band[i] = BandPoint{X: x, YMin: PolyEval(low, x), YMax: PolyEval(high, x)}
		if band[i].YMin > band[i].YMax {
			inverted++
		}
	}
	if inverted > 0 {
		log.Warnf("ribbon inverted at %d of %d evaluation points (q%.2f above q%.2f); band rendered as-is",
			inverted, len(grid), qLow, qHigh)
	}
	return band, nil
}

// fitQuantile estimates a polynomial conditional quantile by iteratively
// reweighted least squares on the check loss. It warm-starts from the
// least-squares fit with the intercept shifted to the empirical residual
// quantile, then reweights until the coefficients settle.
func fitQuantile(xs, ys []float64, tau float64, degree int) ([]float64, error) {
	coeffs, err := PolyFit(xs, ys, degree)
	if err != nil {
		return nil, err
	}

	// Shift the intercept so the starting residuals already straddle the
	// target quantile.
	resid := make([]float64, len(xs))
	for i := range xs {
		resid[i] = ys[i] - PolyEval(coeffs, xs[i])
	}
	sort.Float64s(resid)
	coeffs[0] += stat.Quantile(tau, stat.Empirical, resid, nil)

	weights := make([]float64, len(xs))
	for iter := 0; iter < irlsMaxIter; iter++ {
		for i := range xs {
			r := ys[i] - PolyEval(coeffs, xs[i])
			if r >= 0 {
				weights[i] = tau / math.Max(r, irlsEps)
			} else {
				weights[i] = (1 - tau) / math.Max(-r, irlsEps)
			}
		}

		next, err := polyFitWeighted(xs, ys, weights, degree)
		if err != nil {
			return nil, err
		}

		delta := 0.0
		for i := range next {
			delta = math.Max(delta, math.Abs(next[i]-coeffs[i]))
		}
		coeffs = next
		if delta < irlsTol {
			return coeffs, nil
		}
	}

	// Non-convergence is a numerical degeneracy, not an error: keep the
	// last iterate and surface the condition.
	log.Warnf("%.2f-quantile regression did not converge in %d iterations; using last iterate", tau, irlsMaxIter)
	return coeffs, nil
}
