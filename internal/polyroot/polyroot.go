// Package polyroot provides the polynomial root finding used by the
// piecewise-polynomial curves in dsp/interp.
package polyroot

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnsupportedDegree is returned for polynomials above degree two. The
// curves in dsp/interp are cubic, so their derivatives never reach it.
var ErrUnsupportedDegree = errors.New("polyroot: degree above 2")

// RealRoots returns the sorted real roots of the polynomial coeff (descending
// power order) lying in the closed interval [lo, hi]. Leading zero
// coefficients are dropped; a polynomial that is identically zero or
// constant has no roots.
func RealRoots(coeff []float64, lo, hi float64) ([]float64, error) {
	c := trimLeadingZeros(coeff)

	var roots []float64

	switch len(c) {
	case 0, 1:
		return nil, nil
	case 2:
		roots = []float64{-c[1] / c[0]}
	case 3:
		roots = quadraticRoots(c[0], c[1], c[2])
	default:
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedDegree, len(c)-1)
	}

	out := roots[:0]
	for _, r := range roots {
		if r >= lo && r <= hi && !math.IsNaN(r) {
			out = append(out, r)
		}
	}

	sort.Float64s(out)

	return out, nil
}

// quadraticRoots solves a*t^2 + b*t + c = 0 for real t using the
// cancellation-free form of the quadratic formula.
func quadraticRoots(a, b, c float64) []float64 {
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}

	if disc == 0 {
		return []float64{-b / (2 * a)}
	}

	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	if q == 0 {
		return []float64{0}
	}

	return []float64{q / a, c / q}
}

func trimLeadingZeros(coeff []float64) []float64 {
	for i, v := range coeff {
		if v != 0 {
			return coeff[i:]
		}
	}

	return nil
}

// RealPolyEval evaluates coeff (descending power order) at x with Horner's
// method. An empty coefficient slice evaluates to 0.
func RealPolyEval(coeff []float64, x float64) float64 {
	v := 0.0
	for _, c := range coeff {
		v = v*x + c
	}

	return v
}

// Derivative returns the coefficients of the derivative of coeff
// (descending power order). The derivative of a constant is empty.
func Derivative(coeff []float64) []float64 {
	n := len(coeff) - 1
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	for i := range n {
		out[i] = coeff[i] * float64(n-i)
	}

	return out
}
