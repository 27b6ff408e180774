package interp

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-periodicity/dsp/core"
	"github.com/cwbudde/algo-periodicity/internal/polyroot"
)

// Piecewise is a piecewise polynomial over ascending knots. Piece i covers
// [knots[i], knots[i+1]) and is expressed in the local variable
// t = x - knots[i], coefficients in descending power order.
type Piecewise struct {
	knots  []float64
	coeffs [][]float64

	// turns[k] marks knots where the sampled data changes direction (or
	// stalls). Nil disables the extremum filter in Extrema.
	turns []bool
}

// Domain returns the first and last knot.
func (p *Piecewise) Domain() (lo, hi float64) {
	return p.knots[0], p.knots[len(p.knots)-1]
}

// Pieces returns the number of knot intervals.
func (p *Piecewise) Pieces() int {
	return len(p.coeffs)
}

// At evaluates the curve at x. Points outside the domain are extrapolated
// with the first or last piece.
func (p *Piecewise) At(x float64) float64 {
	i := p.piece(x)
	return polyroot.RealPolyEval(p.coeffs[i], x-p.knots[i])
}

// piece returns the index of the piece covering x, clamped to the valid range.
func (p *Piecewise) piece(x float64) int {
	// First knot strictly greater than x, minus one.
	i := sort.SearchFloat64s(p.knots, x)
	if i < len(p.knots) && p.knots[i] == x {
		i++
	}
	i--

	if i < 0 {
		return 0
	}

	if last := len(p.coeffs) - 1; i > last {
		return last
	}

	return i
}

// Derivative returns the exact derivative as a new piecewise polynomial.
func (p *Piecewise) Derivative() *Piecewise {
	coeffs := make([][]float64, len(p.coeffs))
	for i, c := range p.coeffs {
		coeffs[i] = polyroot.Derivative(c)
	}

	return &Piecewise{knots: p.knots, coeffs: coeffs}
}

// Roots returns the sorted real roots inside the closed domain. Pieces that
// vanish identically contribute no roots, and a root shared by two adjacent
// pieces at their common knot is reported once.
func (p *Piecewise) Roots() ([]float64, error) {
	lo, hi := p.Domain()

	var out []float64

	for i, c := range p.coeffs {
		h := p.knots[i+1] - p.knots[i]
		slack := 1e-9 * h

		local, err := polyroot.RealRoots(c, -slack, h+slack)
		if err != nil {
			return nil, err
		}

		for _, t := range local {
			x := math.Min(math.Max(p.knots[i]+t, lo), hi)
			if n := len(out); n > 0 && core.NearlyEqual(x, out[n-1], 1e-9) {
				continue
			}

			out = append(out, x)
		}
	}

	return out, nil
}

// Extrema returns the interior local maxima and minima of the curve: roots
// of the first derivative where the second derivative is strictly negative
// (maxima) or strictly positive (minima). Flat inflection points are
// excluded.
//
// For curves fitted through samples, a root only counts when its piece
// touches a knot where the samples themselves turn, so interpolation
// overshoot inside a strictly monotone run is not reported. The result
// alternates: of two neighbouring extrema of the same kind, the more
// extreme one is kept.
func (p *Piecewise) Extrema() (maxima, minima []float64, err error) {
	d1 := p.Derivative()
	d2 := d1.Derivative()

	roots, err := d1.Roots()
	if err != nil {
		return nil, nil, err
	}

	lo, hi := p.Domain()

	var found []extremum

	for _, r := range roots {
		if r <= lo || r >= hi || !p.turnsNear(r) {
			continue
		}

		var e extremum

		switch curv := d2.At(r); {
		case curv < 0:
			e = extremum{x: r, max: true}
		case curv > 0:
			e = extremum{x: r}
		default:
			continue
		}
		e.y = p.At(r)

		if n := len(found); n > 0 && found[n-1].max == e.max {
			if e.beats(found[n-1]) {
				found[n-1] = e
			}
			continue
		}

		found = append(found, e)
	}

	for _, e := range found {
		if e.max {
			maxima = append(maxima, e.x)
		} else {
			minima = append(minima, e.x)
		}
	}

	return maxima, minima, nil
}

type extremum struct {
	x, y float64
	max  bool
}

// beats reports whether e is more extreme than o of the same kind.
func (e extremum) beats(o extremum) bool {
	if e.max {
		return e.y > o.y
	}

	return e.y < o.y
}

// turnsNear reports whether the piece holding x starts or ends on a turning
// knot.
func (p *Piecewise) turnsNear(x float64) bool {
	if p.turns == nil {
		return true
	}

	i := p.piece(x)

	return p.turns[i] || p.turns[i+1]
}
