// Package distance measures shape dissimilarity between two portions of a
// smooth curve.
//
// [CurveMetric] compares two segments after re-basing both to start at 0.
// The shorter portion is laid against the longer one twice, once anchored
// at the left and once at the right, with zero fill outside its own span;
// the result is the mean of the two squared-difference integrals, each
// approximated by the sample mean over evenly spaced points. Similar shapes
// score low regardless of exact placement or small length differences.
//
// The measure is non-negative, reflexive and symmetric but does not satisfy
// the triangle inequality.
package distance

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-periodicity/dsp/core"
	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

// Metric evaluates the dissimilarity of two segments.
type Metric interface {
	Distance(a, b segment.Segment) float64
}

// Curve is a continuous function of one variable.
type Curve interface {
	At(x float64) float64
}

// MetricFunc adapts a plain function to Metric.
type MetricFunc func(a, b segment.Segment) float64

// Distance calls f(a, b).
func (f MetricFunc) Distance(a, b segment.Segment) float64 { return f(a, b) }

// CurveMetric is the shift- and length-tolerant distance bound to one curve.
// It is not safe for concurrent use: scratch buffers are reused across calls.
type CurveMetric struct {
	curve  Curve
	points int

	grid, ref, left, right, scratch []float64
}

// NewCurveMetric binds the metric to curve. Only the QuadraturePoints
// option is consulted.
func NewCurveMetric(curve Curve, opts ...core.AnalysisOption) *CurveMetric {
	cfg := core.ApplyAnalysisOptions(opts...)

	return &CurveMetric{
		curve:  curve,
		points: cfg.QuadraturePoints,
	}
}

// Points returns the quadrature sample count.
func (m *CurveMetric) Points() int {
	return m.points
}

// Distance returns the mean of the left- and right-aligned squared
// difference integrals between the portions of the curve over a and b.
func (m *CurveMetric) Distance(a, b segment.Segment) float64 {
	ref, short := b, a
	if a.Len() > b.Len() {
		ref, short = a, b
	}

	lenRef, lenShort := ref.Len(), short.Len()
	offset := lenRef - lenShort

	m.grow()
	core.Linspace(m.grid, 0, lenRef)
	core.Zero(m.left)
	core.Zero(m.right)

	for i, x := range m.grid {
		m.ref[i] = m.curve.At(ref.Begin + x)

		if x <= lenShort {
			m.left[i] = m.curve.At(short.Begin + x)
		}

		if x >= offset {
			m.right[i] = m.curve.At(short.Begin + x - offset)
		}
	}

	errLeft := m.meanSquaredError(m.left)
	errRight := m.meanSquaredError(m.right)

	return (errLeft + errRight) / 2
}

// meanSquaredError returns mean((ref - cand)^2). cand is overwritten.
func (m *CurveMetric) meanSquaredError(cand []float64) float64 {
	vecmath.ScaleBlock(m.scratch, cand, -1)
	vecmath.AddBlockInPlace(m.scratch, m.ref)
	vecmath.MulBlock(cand, m.scratch, m.scratch)

	return core.Mean(cand)
}

func (m *CurveMetric) grow() {
	n := m.points
	m.grid = core.EnsureLen(m.grid, n)
	m.ref = core.EnsureLen(m.ref, n)
	m.left = core.EnsureLen(m.left, n)
	m.right = core.EnsureLen(m.right, n)
	m.scratch = core.EnsureLen(m.scratch, n)
}
