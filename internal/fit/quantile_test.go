package fit

import (
	"math"
	"testing"

	"github.com/ecodyn/collapseviz/internal/constants"
)

func TestFitRibbonConstantData(t *testing.T) {
	ds := syntheticDataset(300, func(x float64) float64 { return 4 })

	band, err := FitRibbon(ds, 0.05, 0.95)
	if err != nil {
		t.Fatalf("FitRibbon() error = %v", err)
	}
	if len(band) != constants.RibbonPoints {
		t.Fatalf("len = %d, want %d", len(band), constants.RibbonPoints)
	}
	for _, p := range band {
		if math.Abs(p.YMin-4) > 1e-3 || math.Abs(p.YMax-4) > 1e-3 {
			t.Fatalf("band at x=%v is [%v, %v], want ~[4, 4]", p.X, p.YMin, p.YMax)
		}
	}
}

func TestFitRibbonSpansFullRange(t *testing.T) {
	// Deterministic spread around a line; the sine argument is incommensurate
	// with the grid so the residuals behave like noise.
	i := 0
	ds := syntheticDataset(300, func(x float64) float64 {
		i++
		return 1 + x + 3*math.Sin(13.7*float64(i))
	})

	band, err := FitRibbon(ds, 0.05, 0.95)
	if err != nil {
		t.Fatalf("FitRibbon() error = %v", err)
	}
	if len(band) != constants.RibbonPoints {
		t.Fatalf("len = %d, want %d", len(band), constants.RibbonPoints)
	}

	if band[0].X != 0.5 || band[len(band)-1].X != 3.0 {
		t.Errorf("band spans [%v, %v], want [0.5, 3.0]", band[0].X, band[len(band)-1].X)
	}
	for i := 1; i < len(band); i++ {
		if band[i].X <= band[i-1].X {
			t.Fatalf("band x not increasing at %d", i)
		}
	}

	var widthSum float64
	for _, p := range band {
		if p.YMin >= p.YMax {
			t.Fatalf("band inverted at x=%v: [%v, %v]", p.X, p.YMin, p.YMax)
		}
		widthSum += p.YMax - p.YMin
	}
	meanWidth := widthSum / float64(len(band))
	if meanWidth < 2 || meanWidth > 7 {
		t.Errorf("mean band width = %v, want within [2, 7] for +-3 spread", meanWidth)
	}
}

func TestFitRibbonPreThresholdRetention(t *testing.T) {
	// The caller keeps only the pre-threshold part of the band for display.
	ds := syntheticDataset(300, func(x float64) float64 { return x })

	band, err := FitRibbon(ds, 0.05, 0.95)
	if err != nil {
		t.Fatalf("FitRibbon() error = %v", err)
	}

	var retained []BandPoint
	for _, p := range band {
		if p.X <= 2.5 {
			retained = append(retained, p)
		}
	}
	// Grid step over [0.5, 3.0] with 300 points puts 240 of them at or
	// below 2.5.
	if len(retained) != 240 {
		t.Errorf("retained %d points, want 240", len(retained))
	}
	for _, p := range retained {
		if p.X > 2.5 {
			t.Fatalf("retained point at x=%v > threshold", p.X)
		}
	}
}

func TestFitRibbonInvalidLevels(t *testing.T) {
	ds := syntheticDataset(10, func(x float64) float64 { return x })

	tests := []struct {
		name  string
		qLow  float64
		qHigh float64
	}{
		{name: "reversed", qLow: 0.95, qHigh: 0.05},
		{name: "equal", qLow: 0.5, qHigh: 0.5},
		{name: "zero low", qLow: 0, qHigh: 0.95},
		{name: "high at one", qLow: 0.05, qHigh: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FitRibbon(ds, tt.qLow, tt.qHigh); err == nil {
				t.Error("FitRibbon() error = nil, want error")
			}
		})
	}
}

func TestFitQuantileOrdering(t *testing.T) {
	i := 0
	ds := syntheticDataset(300, func(x float64) float64 {
		i++
		return 5*x + 4*math.Sin(7.3*float64(i))
	})

	lo, err := fitQuantile(ds.Xs(), ds.Ys(), 0.05, constants.PolyDegree)
	if err != nil {
		t.Fatalf("fitQuantile(0.05) error = %v", err)
	}
	hi, err := fitQuantile(ds.Xs(), ds.Ys(), 0.95, constants.PolyDegree)
	if err != nil {
		t.Fatalf("fitQuantile(0.95) error = %v", err)
	}

	// Away from the edges the two conditional quantiles must straddle the
	// center line by a clear margin.
	for _, x := range []float64{1.0, 1.75, 2.5} {
		center := 5 * x
		if PolyEval(lo, x) >= center {
			t.Errorf("low quantile at x=%v is %v, want < %v", x, PolyEval(lo, x), center)
		}
		if PolyEval(hi, x) <= center {
			t.Errorf("high quantile at x=%v is %v, want > %v", x, PolyEval(hi, x), center)
		}
	}
}

func TestFitRibbonDeterministic(t *testing.T) {
	i := 0
	mk := func() []BandPoint {
		i = 0
		ds := syntheticDataset(300, func(x float64) float64 {
			i++
			return x + 2*math.Sin(11.1*float64(i))
		})
		band, err := FitRibbon(ds, 0.05, 0.95)
		if err != nil {
			t.Fatalf("FitRibbon() error = %v", err)
		}
		return band
	}

	a, b := mk(), mk()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("band point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
