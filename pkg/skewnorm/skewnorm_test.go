package skewnorm

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestMoments(t *testing.T) {
	tests := []struct {
		name     string
		dist     SkewNormal
		wantMean float64
		wantVar  float64
		epsilon  float64
	}{
		{
			name:     "zero shape is normal",
			dist:     SkewNormal{Xi: 3, Omega: 2, Alpha: 0},
			wantMean: 3,
			wantVar:  4,
			epsilon:  1e-12,
		},
		{
			name:     "right skew pulls mean up",
			dist:     SkewNormal{Xi: 0, Omega: 1, Alpha: 5},
			wantMean: (5 / math.Sqrt(26)) * math.Sqrt(2/math.Pi),
			wantVar:  1 - 2*(25.0/26.0)/math.Pi,
			epsilon:  1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dist.Mean(); math.Abs(got-tt.wantMean) > tt.epsilon {
				t.Errorf("Mean() = %v, want %v", got, tt.wantMean)
			}
			if got := tt.dist.Variance(); math.Abs(got-tt.wantVar) > tt.epsilon {
				t.Errorf("Variance() = %v, want %v", got, tt.wantVar)
			}
		})
	}
}

func TestRandSampleMoments(t *testing.T) {
	tests := []struct {
		name  string
		dist  SkewNormal
		draws int
	}{
		{name: "symmetric", dist: SkewNormal{Xi: 0, Omega: 1, Alpha: 0}, draws: 200000},
		{name: "left skew shifted", dist: SkewNormal{Xi: 10, Omega: 3, Alpha: -6}, draws: 200000},
		{name: "right skew", dist: SkewNormal{Xi: -2, Omega: 0.5, Alpha: 4}, draws: 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.dist
			d.Src = rand.NewSource(1)

			var sum, sumSq float64
			for i := 0; i < tt.draws; i++ {
				v := d.Rand()
				sum += v
				sumSq += v * v
			}
			n := float64(tt.draws)
			mean := sum / n
			variance := sumSq/n - mean*mean

			// 200k draws put the sample mean well within a few standard
			// errors of the exact moments.
			tol := 5 * d.StdDev() / math.Sqrt(n)
			if math.Abs(mean-d.Mean()) > tol {
				t.Errorf("sample mean = %v, want %v (tol %v)", mean, d.Mean(), tol)
			}
			if math.Abs(variance-d.Variance()) > d.Variance()*0.05 {
				t.Errorf("sample variance = %v, want %v", variance, d.Variance())
			}
		})
	}
}

func TestRandSkewDirection(t *testing.T) {
	const draws = 100000

	right := SkewNormal{Xi: 0, Omega: 1, Alpha: 8, Src: rand.NewSource(7)}
	left := SkewNormal{Xi: 0, Omega: 1, Alpha: -8, Src: rand.NewSource(7)}

	var sumR, sumL float64
	for i := 0; i < draws; i++ {
		sumR += right.Rand()
		sumL += left.Rand()
	}
	if sumR/draws <= 0.5 {
		t.Errorf("right-skewed sample mean = %v, want > 0.5", sumR/draws)
	}
	if sumL/draws >= -0.5 {
		t.Errorf("left-skewed sample mean = %v, want < -0.5", sumL/draws)
	}
}

func TestRandDeterministic(t *testing.T) {
	a := SkewNormal{Xi: 1, Omega: 2, Alpha: 3, Src: rand.NewSource(42)}
	b := SkewNormal{Xi: 1, Omega: 2, Alpha: 3, Src: rand.NewSource(42)}

	for i := 0; i < 100; i++ {
		va, vb := a.Rand(), b.Rand()
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
	}
}

func TestSample(t *testing.T) {
	xi := []float64{0, 1, 2}
	omega := []float64{1, 2, 3}
	alpha := []float64{0, -5, 5}

	dst := make([]float64, 3)
	if err := Sample(dst, xi, omega, alpha, rand.NewSource(9)); err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	// Same source state, same draws.
	again := make([]float64, 3)
	if err := Sample(again, xi, omega, alpha, rand.NewSource(9)); err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	for i := range dst {
		if dst[i] != again[i] {
			t.Errorf("draw %d differs: %v vs %v", i, dst[i], again[i])
		}
	}
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name  string
		dst   []float64
		xi    []float64
		omega []float64
		alpha []float64
	}{
		{
			name:  "length mismatch",
			dst:   make([]float64, 3),
			xi:    []float64{0, 0},
			omega: []float64{1, 1, 1},
			alpha: []float64{0, 0, 0},
		},
		{
			name:  "zero scale",
			dst:   make([]float64, 2),
			xi:    []float64{0, 0},
			omega: []float64{1, 0},
			alpha: []float64{0, 0},
		},
		{
			name:  "negative scale",
			dst:   make([]float64, 1),
			xi:    []float64{0},
			omega: []float64{-2},
			alpha: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Sample(tt.dst, tt.xi, tt.omega, tt.alpha, rand.NewSource(1)); err == nil {
				t.Error("Sample() error = nil, want error")
			}
		})
	}
}
