package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(0, 1e-13, 0) {
		t.Fatal("expected default epsilon to accept tiny difference")
	}
}

func TestLinspace(t *testing.T) {
	tests := []struct {
		name string
		n    int
		a, b float64
		want []float64
	}{
		{name: "empty", n: 0, a: 0, b: 1, want: []float64{}},
		{name: "single", n: 1, a: 2, b: 5, want: []float64{2}},
		{name: "unit", n: 5, a: 0, b: 1, want: []float64{0, 0.25, 0.5, 0.75, 1}},
		{name: "reversed", n: 3, a: 4, b: 0, want: []float64{4, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]float64, tt.n)
			Linspace(got, tt.a, tt.b)
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-15 {
					t.Fatalf("Linspace()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{1, 2, 3, 6}); got != 3 {
		t.Fatalf("Mean() = %v, want 3", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Fatal("1.5 should be finite")
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("IsFinite(%v) = true, want false", v)
		}
	}
}
