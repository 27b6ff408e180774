package testutil

import (
	"math"
	"math/rand"
)

// PeriodicSine returns amplitude*sin(2*pi*periods*i/length) for i in
// [0, length): exactly periods cycles over the sample range.
func PeriodicSine(periods, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if length == 0 {
		return out
	}
	step := 2 * math.Pi * periods / float64(length)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ramp returns slope*i for i in [0, length), a strictly monotone signal
// for any non-zero slope.
func Ramp(slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = slope * float64(i)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
