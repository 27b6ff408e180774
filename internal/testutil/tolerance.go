package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-periodicity/dsp/core"
)

// MaxAbsDiff returns the largest absolute element difference between a and b
// and the index where it occurs (-1 for empty input). NaN on either side
// counts as an infinite difference.
func MaxAbsDiff(a, b []float64) (float64, int, error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst, at := 0.0, -1
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		if at < 0 || d > worst {
			worst, at = d, i
		}
	}

	return worst, at, nil
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	d, at, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatalf("got %v, want %v: %v", got, want, err)
	}
	if d > eps {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", at, got[at], want[at], d, eps)
	}
}

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()

	if d := math.Abs(got - want); !(d <= eps) {
		t.Fatalf("%s = %v, want %v (diff %v > eps %v)", name, got, want, d, eps)
	}
}

// RequireFinite fails t if any element of data is NaN or infinite.
func RequireFinite(t *testing.T, name string, data []float64) {
	t.Helper()

	for i, v := range data {
		if !core.IsFinite(v) {
			t.Fatalf("%s[%d] = %v, want finite", name, i, v)
		}
	}
}

// Sample evaluates f on n evenly spaced points of [lo, hi].
func Sample(f func(float64) float64, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	core.Linspace(out, lo, hi)
	for i, x := range out {
		out[i] = f(x)
	}

	return out
}
