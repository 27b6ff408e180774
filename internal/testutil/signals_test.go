package testutil

import (
	"math"
	"testing"
)

func TestPeriodicSine(t *testing.T) {
	s := PeriodicSine(4, 1, 200)
	if len(s) != 200 {
		t.Fatalf("len = %d, want 200", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// One period is 50 samples.
	for i := 0; i+50 < len(s); i++ {
		if math.Abs(s[i]-s[i+50]) > 1e-12 {
			t.Fatalf("s[%d] = %v, s[%d] = %v, want equal", i, s[i], i+50, s[i+50])
		}
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestPeriodicSineEmpty(t *testing.T) {
	if s := PeriodicSine(3, 1, 0); len(s) != 0 {
		t.Fatalf("len = %d, want 0", len(s))
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRamp(t *testing.T) {
	r := Ramp(0.5, 5)
	want := []float64{0, 0.5, 1, 1.5, 2}
	RequireSliceNearlyEqual(t, r, want, 0)
}

func TestDC(t *testing.T) {
	d := DC(0.5, 10)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}
