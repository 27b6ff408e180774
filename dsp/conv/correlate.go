package conv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-periodicity/dsp/core"
)

// Errors returned by the correlation functions.
var (
	ErrEmptyInput    = errors.New("conv: empty input")
	ErrNoPeriodicity = errors.New("conv: no repeating structure found")
)

// AutoCorrelate returns the biased autocorrelation of the mean-removed
// signal x for lags 0..len(x)-1, normalised so that lag 0 is 1. A signal
// with no variance yields all zeros.
func AutoCorrelate(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	fftSize := nextPowerOf2(2*n - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	mean := core.Mean(x)
	padded := make([]complex128, fftSize)
	for i, v := range x {
		padded[i] = complex(v-mean, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// |X|^2 is the transform of the linear autocorrelation once the padding
	// rules out circular wrap-around.
	re := make([]float64, fftSize)
	im := make([]float64, fftSize)
	for i, c := range freq {
		re[i], im[i] = real(c), imag(c)
	}
	power := make([]float64, fftSize)
	vecmath.Power(power, re, im)

	for i, p := range power {
		freq[i] = complex(p, 0)
	}

	lagDomain := make([]complex128, fftSize)
	if err := plan.Inverse(lagDomain, freq); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	zero := real(lagDomain[0])
	if zero <= 0 {
		return out, nil
	}

	for i := range out {
		out[i] = real(lagDomain[i]) / zero
	}

	return out, nil
}

// DominantLag returns the lag of the largest autocorrelation value after
// the first negative crossing. acf is indexed by lag, as returned by
// AutoCorrelate.
func DominantLag(acf []float64) (int, error) {
	if len(acf) == 0 {
		return 0, ErrEmptyInput
	}

	start := -1
	for i, v := range acf {
		if v < 0 {
			start = i
			break
		}
	}

	if start < 0 {
		return 0, fmt.Errorf("%w: autocorrelation never turns negative", ErrNoPeriodicity)
	}

	best := start
	for i := start + 1; i < len(acf); i++ {
		if acf[i] > acf[best] {
			best = i
		}
	}

	if acf[best] <= 0 {
		return 0, fmt.Errorf("%w: no positive peak after lag %d", ErrNoPeriodicity, start)
	}

	return best, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
