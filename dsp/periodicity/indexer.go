package periodicity

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-periodicity/dsp/cluster"
	"github.com/cwbudde/algo-periodicity/dsp/core"
	"github.com/cwbudde/algo-periodicity/dsp/distance"
	"github.com/cwbudde/algo-periodicity/dsp/interp"
	"github.com/cwbudde/algo-periodicity/dsp/neighbors"
	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

// Assignment pairs a unified segment with its cluster id.
type Assignment struct {
	segment.Segment
	Cluster int
}

// Sequence is the ordered segment to cluster mapping along the domain.
type Sequence []Assignment

// Segments returns the segments in order.
func (s Sequence) Segments() []segment.Segment {
	out := make([]segment.Segment, len(s))
	for i, a := range s {
		out[i] = a.Segment
	}
	return out
}

// Labels returns the cluster ids in order.
func (s Sequence) Labels() []int {
	out := make([]int, len(s))
	for i, a := range s {
		out[i] = a.Cluster
	}
	return out
}

// Clusters returns the number of distinct cluster ids. Ids are dense, so
// this is the largest id plus one.
func (s Sequence) Clusters() int {
	n := 0
	for _, a := range s {
		n = max(n, a.Cluster+1)
	}
	return n
}

// Sequencer produces a cluster sequence for a tolerance. *Indexer is the
// canonical implementation.
type Sequencer interface {
	Sequence(tol float64) (Sequence, error)
}

// Indexer owns the fitted curve, the per-family segment lists and radius
// indices of one sample series.
type Indexer struct {
	curve  *interp.Piecewise
	lo, hi float64

	maxima, minima   []float64
	maxSegs, minSegs []segment.Segment
	unified          []segment.Segment

	maxIndex, minIndex neighbors.Index

	logger *slog.Logger
}

// NewIndexer fits a natural cubic spline through (x, y) and indexes the
// segments between its extrema. A nil x defaults to 0, 1, ..., len(y)-1.
// LeafSize, QuadraturePoints and Logger options are honoured.
func NewIndexer(y, x []float64, opts ...core.AnalysisOption) (*Indexer, error) {
	cfg := core.ApplyAnalysisOptions(opts...)

	if x == nil {
		x = make([]float64, len(y))
		for i := range x {
			x[i] = float64(i)
		}
	}

	curve, err := interp.NewCubicSpline(x, y)
	if err != nil {
		return nil, fmt.Errorf("periodicity: fit curve: %w", err)
	}

	maxima, minima, err := curve.Extrema()
	if err != nil {
		return nil, fmt.Errorf("periodicity: extrema: %w", err)
	}

	if d := len(maxima) - len(minima); d > 1 || d < -1 {
		return nil, fmt.Errorf("%w: %d maxima, %d minima", ErrMisalignedExtrema, len(maxima), len(minima))
	}

	lo, hi := curve.Domain()
	ix := &Indexer{
		curve:   curve,
		lo:      lo,
		hi:      hi,
		maxima:  maxima,
		minima:  minima,
		maxSegs: segment.Build(maxima, lo, hi),
		minSegs: segment.Build(minima, lo, hi),
		logger:  cfg.Logger,
	}
	ix.unified = segment.Unify(ix.minSegs, ix.maxSegs)

	ix.maxIndex = neighbors.NewBallTree(ix.maxSegs, distance.NewCurveMetric(curve, opts...), cfg.LeafSize)
	ix.minIndex = neighbors.NewBallTree(ix.minSegs, distance.NewCurveMetric(curve, opts...), cfg.LeafSize)

	ix.logger.Debug("periodicity index built",
		slog.Int("samples", len(y)),
		slog.Int("maxima", len(maxima)),
		slog.Int("minima", len(minima)),
		slog.Int("segments", len(ix.unified)))

	return ix, nil
}

// Sequence clusters the maxima and minima segments at tol, merges the two
// partitions position by position and returns one dense cluster id per
// unified segment. Ids are numbered in order of first appearance along the
// domain.
func (ix *Indexer) Sequence(tol float64) (Sequence, error) {
	if tol < 0 {
		return nil, fmt.Errorf("%w: %g", ErrNegativeTolerance, tol)
	}

	maxClusters := cluster.Segments(ix.maxIndex, ix.maxSegs, tol)
	minClusters := cluster.Segments(ix.minIndex, ix.minSegs, tol)

	n := max(len(ix.maxSegs), len(ix.minSegs))
	merged := cluster.MergeGroups(n, maxClusters, minClusters)

	component := make([]int, n)
	for c, members := range merged {
		for _, i := range members {
			component[i] = c
		}
	}

	ids := make(map[int]int, len(merged))
	out := make(Sequence, len(ix.unified))

	for i, s := range ix.unified {
		id, ok := ids[component[i]]
		if !ok {
			id = len(ids)
			ids[component[i]] = id
		}
		out[i] = Assignment{Segment: s, Cluster: id}
	}

	ix.logger.Debug("segments clustered",
		slog.Float64("tolerance", tol),
		slog.Int("maxima_clusters", len(maxClusters)),
		slog.Int("minima_clusters", len(minClusters)),
		slog.Int("clusters", len(ids)))

	return out, nil
}

// Curve returns the fitted spline.
func (ix *Indexer) Curve() *interp.Piecewise { return ix.curve }

// Domain returns the first and last sample position.
func (ix *Indexer) Domain() (lo, hi float64) { return ix.lo, ix.hi }

// Maxima returns the positions of the local maxima.
func (ix *Indexer) Maxima() []float64 { return append([]float64(nil), ix.maxima...) }

// Minima returns the positions of the local minima.
func (ix *Indexer) Minima() []float64 { return append([]float64(nil), ix.minima...) }

// MaximaSegments returns the segments bounded by the maxima.
func (ix *Indexer) MaximaSegments() []segment.Segment {
	return append([]segment.Segment(nil), ix.maxSegs...)
}

// MinimaSegments returns the segments bounded by the minima.
func (ix *Indexer) MinimaSegments() []segment.Segment {
	return append([]segment.Segment(nil), ix.minSegs...)
}

// Segments returns the unified segments. They tile the domain.
func (ix *Indexer) Segments() []segment.Segment {
	return append([]segment.Segment(nil), ix.unified...)
}
