package interp

import (
	"fmt"

	"github.com/cwbudde/algo-periodicity/dsp/core"
)

// MinSamples is the smallest sample count accepted by NewCubicSpline.
const MinSamples = 4

// NewCubicSpline fits a natural cubic spline (zero second derivative at both
// ends) that passes through every (x[i], y[i]). The returned curve keeps
// the turning knots of y for Extrema.
func NewCubicSpline(x, y []float64) (*Piecewise, error) {
	if err := validateSamples(x, y); err != nil {
		return nil, err
	}

	n := len(x) - 1
	h := make([]float64, n)
	for i := range n {
		h[i] = x[i+1] - x[i]
	}

	m := solveMoments(h, y)

	coeffs := make([][]float64, n)
	for i := range n {
		slope := (y[i+1] - y[i]) / h[i]
		coeffs[i] = []float64{
			(m[i+1] - m[i]) / (6 * h[i]),
			m[i] / 2,
			slope - h[i]*(2*m[i]+m[i+1])/6,
			y[i],
		}
	}

	knots := make([]float64, len(x))
	copy(knots, x)

	return &Piecewise{knots: knots, coeffs: coeffs, turns: turningKnots(y)}, nil
}

// turningKnots marks the interior samples where the series stops rising or
// stops falling. The end samples never turn.
func turningKnots(y []float64) []bool {
	turns := make([]bool, len(y))
	for k := 1; k < len(y)-1; k++ {
		in, out := y[k]-y[k-1], y[k+1]-y[k]
		turns[k] = (in >= 0 && out <= 0) || (in <= 0 && out >= 0)
	}

	return turns
}

// solveMoments returns the second derivatives at the knots by solving the
// tridiagonal natural-spline system with the Thomas algorithm.
func solveMoments(h, y []float64) []float64 {
	n := len(h)
	m := make([]float64, n+1)
	if n < 2 {
		return m
	}

	// Unknowns m[1..n-1]; m[0] = m[n] = 0.
	size := n - 1
	diag := make([]float64, size)
	rhs := make([]float64, size)

	for k := range size {
		i := k + 1
		diag[k] = 2 * (h[i-1] + h[i])
		rhs[k] = 6 * ((y[i+1]-y[i])/h[i] - (y[i]-y[i-1])/h[i-1])
	}

	// Forward elimination; the sub-diagonal entry of row k is h[k] and the
	// super-diagonal entry is h[k+1].
	for k := 1; k < size; k++ {
		w := h[k] / diag[k-1]
		diag[k] -= w * h[k]
		rhs[k] -= w * rhs[k-1]
	}

	m[size] = rhs[size-1] / diag[size-1]
	for k := size - 2; k >= 0; k-- {
		m[k+1] = (rhs[k] - h[k+1]*m[k+2]) / diag[k]
	}

	return m
}

func validateSamples(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) < MinSamples {
		return fmt.Errorf("%w: got %d, need at least %d", ErrTooFewSamples, len(x), MinSamples)
	}

	for i := range x {
		if !core.IsFinite(x[i]) {
			return fmt.Errorf("%w: x[%d]=%v", ErrNonFinite, i, x[i])
		}

		if !core.IsFinite(y[i]) {
			return fmt.Errorf("%w: y[%d]=%v", ErrNonFinite, i, y[i])
		}

		if i > 0 && x[i] <= x[i-1] {
			return fmt.Errorf("%w: x[%d]=%v follows x[%d]=%v", ErrNonMonotoneDomain, i, x[i], i-1, x[i-1])
		}
	}

	return nil
}
