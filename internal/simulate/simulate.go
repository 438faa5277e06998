// Package simulate generates the synthetic organism-response datasets: a
// skew-normal response whose spread widens with thermal variability and
// whose center collapses past a threshold.
package simulate

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ecodyn/collapseviz/pkg/skewnorm"
)

// Params defines one stress-response scenario. One immutable instance exists
// per scenario; all fields are set at configuration time.
type Params struct {
	// Name labels the scenario in logs and panel titles.
	Name string

	// Skew is the shape parameter of the response distribution, shared by
	// every point of the scenario. Zero means symmetric noise.
	Skew float64

	// CenterShift is the response location before the threshold.
	CenterShift float64

	// Drop is added to the location at and beyond the threshold.
	Drop float64
}

// Validate checks that the scenario is usable over the given domain: the
// threshold must lie inside the domain and the scale function must be
// strictly positive across it. A violation is a configuration error and the
// whole run aborts.
func (p Params) Validate(domainMin, domainMax, threshold float64) error {
	if domainMin >= domainMax {
		return fmt.Errorf("scenario %q: empty domain [%v, %v]", p.Name, domainMin, domainMax)
	}
	if threshold <= domainMin || threshold >= domainMax {
		return fmt.Errorf("scenario %q: threshold %v outside domain (%v, %v)", p.Name, threshold, domainMin, domainMax)
	}
	// ScaleAt is increasing, so the domain minimum is the worst case.
	if ScaleAt(domainMin) <= 0 {
		return fmt.Errorf("scenario %q: non-positive scale %v at domain minimum %v", p.Name, ScaleAt(domainMin), domainMin)
	}
	return nil
}

// Observation is a single simulated measurement.
type Observation struct {
	ThermalVariability float64
	OrganismResponse   float64
}

// Dataset is an ordered sequence of observations with ascending
// ThermalVariability. It is never mutated after generation.
type Dataset []Observation

// Xs returns the thermal variability values in dataset order.
func (ds Dataset) Xs() []float64 {
	xs := make([]float64, len(ds))
	for i, o := range ds {
		xs[i] = o.ThermalVariability
	}
	return xs
}

// Ys returns the organism response values in dataset order.
func (ds Dataset) Ys() []float64 {
	ys := make([]float64, len(ds))
	for i, o := range ds {
		ys[i] = o.OrganismResponse
	}
	return ys
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = min
		return xs
	}
	step := (max - min) / float64(n-1)
	for i := range xs {
		xs[i] = min + float64(i)*step
	}
	xs[n-1] = max
	return xs
}

// ScaleAt returns the response scale at thermal variability x. Spread grows
// cubically with x, producing the funnel.
func ScaleAt(x float64) float64 {
	return 5 + x*x*x
}

// LocationAt returns the response location at thermal variability x. The
// comparison is strict: a point exactly at the threshold already carries the
// dropped location.
func (p Params) LocationAt(x, threshold float64) float64 {
	if x < threshold {
		return p.CenterShift
	}
	return p.CenterShift + p.Drop
}

// Generate draws one dataset for the scenario over the fixed x sequence.
//
// The random source is explicit: repeated calls advance it, so the caller
// owns call order. Given a freshly seeded source and a fixed sequence of
// Generate calls the output is reproducible bit for bit.
func Generate(rng *rand.Rand, p Params, xs []float64, threshold float64) (Dataset, error) {
	n := len(xs)
	xi := make([]float64, n)
	omega := make([]float64, n)
	alpha := make([]float64, n)
	for i, x := range xs {
		xi[i] = p.LocationAt(x, threshold)
		omega[i] = ScaleAt(x)
		alpha[i] = p.Skew
	}

	ys := make([]float64, n)
	if err := skewnorm.Sample(ys, xi, omega, alpha, rng); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", p.Name, err)
	}

	ds := make(Dataset, n)
	for i := range ds {
		ds[i] = Observation{ThermalVariability: xs[i], OrganismResponse: ys[i]}
	}
	return ds, nil
}
