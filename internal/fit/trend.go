package fit

import (
	"fmt"

	"github.com/ecodyn/collapseviz/internal/constants"
	"github.com/ecodyn/collapseviz/internal/simulate"
)

// Phase marks which side of the threshold a trend segment belongs to.
type Phase int

const (
	PhasePre Phase = iota
	PhasePost
)

func (p Phase) String() string {
	if p == PhasePre {
		return "Pre"
	}
	return "Post"
}

// TrendPoint is one evaluated point of the piecewise trend curve.
type TrendPoint struct {
	X     float64
	Y     float64
	Phase Phase
}

// FitTrend partitions the dataset at the threshold and fits an independent
// degree-2 least-squares polynomial to each side. Pre takes x <= threshold,
// Post takes x > threshold; note this differs from the generator's location
// rule, which drops the center already at x == threshold.
//
// Each side is evaluated on 100 evenly spaced points spanning that side's
// own observed x-range, so the two halves need not meet at the threshold.
// A partition with fewer than three observations cannot determine the
// quadratic and is rejected as a configuration error.
func FitTrend(ds simulate.Dataset, threshold float64) ([]TrendPoint, error) {
	var pre, post simulate.Dataset
	for _, o := range ds {
		if o.ThermalVariability <= threshold {
			pre = append(pre, o)
		} else {
			post = append(post, o)
		}
	}

	curve := make([]TrendPoint, 0, 2*constants.TrendPointsPerPhase)
	for _, part := range []struct {
		phase Phase
		data  simulate.Dataset
	}{
		{PhasePre, pre},
		{PhasePost, post},
	} {
		if len(part.data) < constants.PolyDegree+1 {
			return nil, fmt.Errorf("fit: %s-threshold partition has %d observations, need at least %d",
				part.phase, len(part.data), constants.PolyDegree+1)
		}

		xs := part.data.Xs()
		ys := part.data.Ys()
		coeffs, err := PolyFit(xs, ys, constants.PolyDegree)
		if err != nil {
			return nil, fmt.Errorf("fit: %s-threshold trend: %w", part.phase, err)
		}

		// Evaluation spans the partition's own observed range, not the
		// full domain.
		grid := simulate.Linspace(xs[0], xs[len(xs)-1], constants.TrendPointsPerPhase)
		for _, x := range grid {
			curve = append(curve, TrendPoint{X: x, Y: PolyEval(coeffs, x), Phase: part.phase})
		}
	}
	return curve, nil
}
