// Package skewnorm implements the skew-normal distribution, a
// location-scale-shape generalization of the normal distribution that
// allows asymmetric tails.
package skewnorm

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SkewNormal represents a skew-normal distribution with location Xi,
// scale Omega and shape Alpha. Alpha = 0 recovers Normal(Xi, Omega);
// positive Alpha skews right, negative Alpha skews left.
type SkewNormal struct {
	Xi    float64
	Omega float64
	Alpha float64

	Src rand.Source
}

// delta is the correlation parameter derived from the shape.
func (sn SkewNormal) delta() float64 {
	return sn.Alpha / math.Sqrt(1+sn.Alpha*sn.Alpha)
}

// Mean returns the mean of the distribution.
func (sn SkewNormal) Mean() float64 {
	return sn.Xi + sn.Omega*sn.delta()*math.Sqrt(2/math.Pi)
}

// Variance returns the variance of the distribution.
func (sn SkewNormal) Variance() float64 {
	d := sn.delta()
	return sn.Omega * sn.Omega * (1 - 2*d*d/math.Pi)
}

// StdDev returns the standard deviation of the distribution.
func (sn SkewNormal) StdDev() float64 {
	return math.Sqrt(sn.Variance())
}

// Rand returns a random sample drawn from the distribution.
//
// It uses the representation z = delta*|u0| + sqrt(1-delta^2)*u1 with u0, u1
// independent unit normals, so every call consumes exactly two draws from the
// underlying source.
func (sn SkewNormal) Rand() float64 {
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: sn.Src}
	d := sn.delta()
	u0 := norm.Rand()
	u1 := norm.Rand()
	z := d*math.Abs(u0) + math.Sqrt(1-d*d)*u1
	return sn.Xi + sn.Omega*z
}

// Sample fills dst with one skew-normal draw per index, using that index's
// own location, scale and shape. All slices must share dst's length and every
// scale must be strictly positive; violating either is a configuration error,
// not a recoverable condition.
func Sample(dst, xi, omega, alpha []float64, src rand.Source) error {
	n := len(dst)
	if len(xi) != n || len(omega) != n || len(alpha) != n {
		return fmt.Errorf("skewnorm: parameter length mismatch: dst=%d xi=%d omega=%d alpha=%d",
			n, len(xi), len(omega), len(alpha))
	}
	for i := 0; i < n; i++ {
		if omega[i] <= 0 {
			return fmt.Errorf("skewnorm: non-positive scale %v at index %d", omega[i], i)
		}
	}
	for i := 0; i < n; i++ {
		dst[i] = SkewNormal{Xi: xi[i], Omega: omega[i], Alpha: alpha[i], Src: src}.Rand()
	}
	return nil
}
