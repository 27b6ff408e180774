// Package neighbors answers radius queries over a fixed segment collection
// under an arbitrary [distance.Metric].
//
// [BallTree] partitions the collection around pivot items and skips any
// subtree whose covering ball cannot reach the query. The pruning bound
// relies on the triangle inequality; with measures that only approximate it
// (such as [distance.CurveMetric]) results are exact for the clustered,
// well-separated shapes the tree is built for. [Brute] scans everything and
// is always exact.
package neighbors

import (
	"sort"

	"github.com/cwbudde/algo-periodicity/dsp/distance"
	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

// Index returns the indices of stored items within a radius of a query.
type Index interface {
	// QueryRadius returns, in ascending order, the indices of all items i
	// with Distance(q, item[i]) <= r.
	QueryRadius(q segment.Segment, r float64) []int
	// Len returns the number of indexed items.
	Len() int
}

// Brute is an exhaustive Index.
type Brute struct {
	items  []segment.Segment
	metric distance.Metric
}

// NewBrute indexes items under metric.
func NewBrute(items []segment.Segment, metric distance.Metric) *Brute {
	return &Brute{items: append([]segment.Segment(nil), items...), metric: metric}
}

// Len returns the number of indexed items.
func (b *Brute) Len() int { return len(b.items) }

// QueryRadius implements Index.
func (b *Brute) QueryRadius(q segment.Segment, r float64) []int {
	var out []int
	for i, s := range b.items {
		if b.metric.Distance(q, s) <= r {
			out = append(out, i)
		}
	}
	return out
}

type node struct {
	pivot  int     // item index at the centre of the ball
	radius float64 // max distance from pivot to any item below
	items  []int   // leaf payload
	left   *node
	right  *node
}

// BallTree is a pivot-based metric tree.
type BallTree struct {
	items    []segment.Segment
	metric   distance.Metric
	leafSize int
	root     *node
}

// NewBallTree builds a tree whose leaves hold at most leafSize items.
// A leafSize below 1 is treated as 1.
func NewBallTree(items []segment.Segment, metric distance.Metric, leafSize int) *BallTree {
	if leafSize < 1 {
		leafSize = 1
	}

	t := &BallTree{
		items:    append([]segment.Segment(nil), items...),
		metric:   metric,
		leafSize: leafSize,
	}

	if len(items) > 0 {
		idx := make([]int, len(items))
		for i := range idx {
			idx[i] = i
		}
		t.root = t.build(idx)
	}

	return t
}

// Len returns the number of indexed items.
func (t *BallTree) Len() int { return len(t.items) }

// LeafSize returns the configured leaf capacity.
func (t *BallTree) LeafSize() int { return t.leafSize }

func (t *BallTree) dist(i, j int) float64 {
	return t.metric.Distance(t.items[i], t.items[j])
}

func (t *BallTree) build(idx []int) *node {
	n := &node{pivot: idx[0]}
	for _, i := range idx {
		if d := t.dist(n.pivot, i); d > n.radius {
			n.radius = d
		}
	}

	if len(idx) <= t.leafSize {
		n.items = idx
		return n
	}

	// Two far-apart seeds split the ball; each item joins the nearer seed.
	seedA := t.farthest(idx[0], idx)
	seedB := t.farthest(seedA, idx)

	var left, right []int
	for _, i := range idx {
		if t.dist(seedA, i) <= t.dist(seedB, i) {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		// All items coincide under the metric; split by position.
		half := len(idx) / 2
		left, right = idx[:half], idx[half:]
	}

	n.left = t.build(left)
	n.right = t.build(right)

	return n
}

func (t *BallTree) farthest(from int, idx []int) int {
	best, bestDist := idx[0], -1.0
	for _, i := range idx {
		if d := t.dist(from, i); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// QueryRadius implements Index.
func (t *BallTree) QueryRadius(q segment.Segment, r float64) []int {
	if t.root == nil {
		return nil
	}

	var out []int
	t.query(t.root, q, r, &out)
	sort.Ints(out)

	return out
}

func (t *BallTree) query(n *node, q segment.Segment, r float64, out *[]int) {
	if t.metric.Distance(q, t.items[n.pivot])-n.radius > r {
		return
	}

	if n.items != nil {
		for _, i := range n.items {
			if t.metric.Distance(q, t.items[i]) <= r {
				*out = append(*out, i)
			}
		}
		return
	}

	t.query(n.left, q, r, out)
	t.query(n.right, q, r, out)
}
