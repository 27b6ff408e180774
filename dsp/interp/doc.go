// Package interp provides the smooth curve used by the periodicity pipeline.
//
// A [Piecewise] polynomial holds one coefficient set per knot interval and
// supports evaluation, exact differentiation and real root extraction.
// [NewCubicSpline] fits a natural cubic interpolating spline through sampled
// points (no smoothing), so the first derivative is a piecewise quadratic
// whose roots are found in closed form. Extrema of a fitted spline are only
// reported next to samples where the data turns, so a strictly monotone
// series has none.
//
//	curve, err := interp.NewCubicSpline(x, y)
//	maxima, minima, err := curve.Extrema()
package interp
