package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Linspace fills dst with len(dst) evenly spaced values from a to b inclusive.
// A single-element dst receives a.
func Linspace(dst []float64, a, b float64) {
	n := len(dst)
	if n == 0 {
		return
	}

	if n == 1 {
		dst[0] = a
		return
	}

	step := (b - a) / float64(n-1)
	for i := range dst {
		dst[i] = a + step*float64(i)
	}

	// Pin the last point to avoid accumulated rounding past b.
	dst[n-1] = b
}

// Mean returns the arithmetic mean of data, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}

	return sum / float64(len(data))
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
