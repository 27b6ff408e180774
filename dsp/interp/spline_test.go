package interp

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-periodicity/internal/testutil"
)

func sampleSine(n int, lo, hi float64) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range x {
		x[i] = lo + step*float64(i)
		y[i] = math.Sin(x[i])
	}
	return x, y
}

func TestCubicSplineInterpolatesKnots(t *testing.T) {
	x := []float64{0, 0.5, 1.7, 2, 3.1, 4}
	y := []float64{1, -2, 0.5, 3, 2, -1}

	s, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("NewCubicSpline() error = %v", err)
	}

	for i := range x {
		if got := s.At(x[i]); math.Abs(got-y[i]) > 1e-12 {
			t.Fatalf("At(%v) = %v, want %v", x[i], got, y[i])
		}
	}

	if lo, hi := s.Domain(); lo != 0 || hi != 4 {
		t.Fatalf("Domain() = (%v, %v), want (0, 4)", lo, hi)
	}
	if s.Pieces() != len(x)-1 {
		t.Fatalf("Pieces() = %d, want %d", s.Pieces(), len(x)-1)
	}
}

func TestCubicSplineReproducesLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3*v - 7
	}

	s, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("NewCubicSpline() error = %v", err)
	}

	d1 := s.Derivative()
	for _, v := range []float64{0.25, 1.5, 3.75, 4.9} {
		if got := s.At(v); math.Abs(got-(3*v-7)) > 1e-12 {
			t.Fatalf("At(%v) = %v, want %v", v, got, 3*v-7)
		}
		if got := d1.At(v); math.Abs(got-3) > 1e-12 {
			t.Fatalf("Derivative().At(%v) = %v, want 3", v, got)
		}
	}

	maxima, minima, err := s.Extrema()
	if err != nil {
		t.Fatalf("Extrema() error = %v", err)
	}
	if len(maxima) != 0 || len(minima) != 0 {
		t.Fatalf("line has extrema: maxima=%v minima=%v", maxima, minima)
	}
}

func TestCubicSplineConstantHasNoExtrema(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{2, 2, 2, 2, 2}

	s, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("NewCubicSpline() error = %v", err)
	}

	roots, err := s.Derivative().Roots()
	if err != nil {
		t.Fatalf("Roots() error = %v", err)
	}
	if len(roots) != 0 {
		t.Fatalf("Roots() = %v, want none", roots)
	}

	maxima, minima, err := s.Extrema()
	if err != nil {
		t.Fatalf("Extrema() error = %v", err)
	}
	if len(maxima)+len(minima) != 0 {
		t.Fatalf("constant has extrema: maxima=%v minima=%v", maxima, minima)
	}
}

func TestCubicSplineSineExtrema(t *testing.T) {
	x, y := sampleSine(200, 0, 4*math.Pi)

	s, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("NewCubicSpline() error = %v", err)
	}

	maxima, minima, err := s.Extrema()
	if err != nil {
		t.Fatalf("Extrema() error = %v", err)
	}

	wantMax := []float64{math.Pi / 2, 5 * math.Pi / 2}
	wantMin := []float64{3 * math.Pi / 2, 7 * math.Pi / 2}

	if len(maxima) != len(wantMax) || len(minima) != len(wantMin) {
		t.Fatalf("maxima=%v minima=%v, want %v and %v", maxima, minima, wantMax, wantMin)
	}

	for i := range wantMax {
		if math.Abs(maxima[i]-wantMax[i]) > 1e-3 {
			t.Fatalf("maxima[%d] = %v, want %v", i, maxima[i], wantMax[i])
		}
		if math.Abs(minima[i]-wantMin[i]) > 1e-3 {
			t.Fatalf("minima[%d] = %v, want %v", i, minima[i], wantMin[i])
		}
	}
}

func TestCubicSplineTracksSine(t *testing.T) {
	x, y := sampleSine(200, 0, 4*math.Pi)

	s, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("NewCubicSpline() error = %v", err)
	}

	got := testutil.Sample(s.At, 0, 4*math.Pi, 1001)
	testutil.RequireFinite(t, "curve", got)

	d, at, err := testutil.MaxAbsDiff(got, testutil.Sample(math.Sin, 0, 4*math.Pi, 1001))
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d > 1e-4 {
		t.Fatalf("curve deviates from sin by %v at sample %d", d, at)
	}

	testutil.RequireFinite(t, "derivative", testutil.Sample(s.Derivative().At, 0, 4*math.Pi, 1001))
}

func TestCubicSplineMonotoneHasNoExtrema(t *testing.T) {
	logistic := make([]float64, 40)
	exp := make([]float64, 30)
	for i := range logistic {
		logistic[i] = 1 / (1 + math.Exp(-(float64(i)-20)/2))
	}
	for i := range exp {
		exp[i] = math.Exp(float64(i) / 4)
	}

	tests := []struct {
		name string
		y    []float64
	}{
		{name: "step", y: []float64{0, 1, 2, 3, 100, 101, 102, 103}},
		{name: "falling step", y: []float64{103, 102, 101, 100, 3, 2, 1, 0}},
		{name: "exp", y: exp},
		{name: "logistic", y: logistic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make([]float64, len(tt.y))
			for i := range x {
				x[i] = float64(i)
			}

			s, err := NewCubicSpline(x, tt.y)
			if err != nil {
				t.Fatalf("NewCubicSpline() error = %v", err)
			}

			maxima, minima, err := s.Extrema()
			if err != nil {
				t.Fatalf("Extrema() error = %v", err)
			}
			if len(maxima)+len(minima) != 0 {
				t.Fatalf("monotone samples have extrema: maxima=%v minima=%v", maxima, minima)
			}
		})
	}
}

func TestTurningKnots(t *testing.T) {
	got := turningKnots([]float64{0, 1, 3, 2, 2, 4, 5})
	want := []bool{false, false, true, true, true, false, false}
	if !slices.Equal(got, want) {
		t.Fatalf("turningKnots() = %v, want %v", got, want)
	}
}

func TestExtremaAlternate(t *testing.T) {
	// A derivative root on a knot followed by a flat piece has no curvature
	// and is not an extremum.
	p := &Piecewise{
		knots: []float64{0, 1, 2, 3},
		coeffs: [][]float64{
			{-2, 3, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 0, 1},
		},
	}

	maxima, minima, err := p.Extrema()
	if err != nil {
		t.Fatalf("Extrema() error = %v", err)
	}
	if len(minima) != 0 || len(maxima) != 0 {
		t.Fatalf("maxima=%v minima=%v, want none at the flat knot", maxima, minima)
	}

	// sin(x) over three periods with its middle minimum dropped by the
	// turning filter: the two maxima around it collapse into the higher one.
	x, y := sampleSine(300, 0, 6*math.Pi)
	s, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("NewCubicSpline() error = %v", err)
	}
	for k := range s.turns {
		if math.Abs(x[k]-7*math.Pi/2) < 0.2 {
			s.turns[k] = false
		}
	}

	maxima, minima, err = s.Extrema()
	if err != nil {
		t.Fatalf("Extrema() error = %v", err)
	}
	if len(maxima) != 2 || len(minima) != 2 {
		t.Fatalf("maxima=%v minima=%v, want two of each", maxima, minima)
	}
	for i := 1; i < len(maxima); i++ {
		if maxima[i] < minima[i-1] || minima[i-1] < maxima[i-1] {
			t.Fatalf("maxima=%v minima=%v do not alternate", maxima, minima)
		}
	}
}

func TestPiecewiseExtrapolates(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}

	s, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("NewCubicSpline() error = %v", err)
	}

	if got := s.At(-1); math.Abs(got+1) > 1e-12 {
		t.Fatalf("At(-1) = %v, want -1", got)
	}
	if got := s.At(4); math.Abs(got-4) > 1e-12 {
		t.Fatalf("At(4) = %v, want 4", got)
	}
}

func TestCubicSplineValidation(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want error
	}{
		{name: "length mismatch", x: []float64{0, 1, 2, 3}, y: []float64{0, 1, 2}, want: ErrLengthMismatch},
		{name: "too few", x: []float64{0, 1, 2}, y: []float64{0, 1, 2}, want: ErrTooFewSamples},
		{name: "empty", x: nil, y: nil, want: ErrTooFewSamples},
		{name: "duplicate x", x: []float64{0, 1, 1, 2}, y: []float64{0, 1, 2, 3}, want: ErrNonMonotoneDomain},
		{name: "descending x", x: []float64{3, 2, 1, 0}, y: []float64{0, 1, 2, 3}, want: ErrNonMonotoneDomain},
		{name: "nan x", x: []float64{0, math.NaN(), 2, 3}, y: []float64{0, 1, 2, 3}, want: ErrNonFinite},
		{name: "inf x", x: []float64{0, 1, 2, math.Inf(1)}, y: []float64{0, 1, 2, 3}, want: ErrNonFinite},
		{name: "inf y", x: []float64{0, 1, 2, 3}, y: []float64{0, math.Inf(1), 2, 3}, want: ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCubicSpline(tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewCubicSpline() error = %v, want %v", err, tt.want)
			}
		})
	}
}
