package cluster

import (
	"math"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-periodicity/dsp/distance"
	"github.com/cwbudde/algo-periodicity/dsp/neighbors"
	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

var beginMetric = distance.MetricFunc(func(a, b segment.Segment) float64 {
	return math.Abs(a.Begin - b.Begin)
})

func points(begins ...float64) []segment.Segment {
	out := make([]segment.Segment, len(begins))
	for i, b := range begins {
		out[i] = segment.Segment{Begin: b, End: b + 1}
	}
	return out
}

// requirePartition checks that clusters are pairwise disjoint and cover [0, n).
func requirePartition(t *testing.T, clusters [][]int, n int) {
	t.Helper()

	seen := make([]bool, n)
	for _, c := range clusters {
		if len(c) == 0 {
			t.Fatalf("empty cluster in %v", clusters)
		}
		for _, i := range c {
			if seen[i] {
				t.Fatalf("index %d appears twice in %v", i, clusters)
			}
			seen[i] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("index %d missing from %v", i, clusters)
		}
	}
}

func TestDisjointSet(t *testing.T) {
	ds := NewDisjointSet(6)
	if ds.Len() != 6 || ds.Sets() != 6 {
		t.Fatalf("Len(), Sets() = %d, %d, want 6, 6", ds.Len(), ds.Sets())
	}

	unions := []struct {
		a, b int
		want bool
	}{
		{0, 3, true},
		{3, 5, true},
		{5, 0, false},
		{1, 2, true},
	}
	for _, u := range unions {
		if got := ds.Union(u.a, u.b); got != u.want {
			t.Fatalf("Union(%d, %d) = %v, want %v", u.a, u.b, got, u.want)
		}
	}

	if ds.Sets() != 3 {
		t.Fatalf("Sets() = %d, want 3", ds.Sets())
	}
	if ds.Find(0) != ds.Find(5) {
		t.Fatalf("Find(0) = %d, Find(5) = %d, want equal", ds.Find(0), ds.Find(5))
	}
	if ds.Find(0) == ds.Find(1) {
		t.Fatalf("Find(0) == Find(1) = %d, want distinct", ds.Find(0))
	}
	if got, want := ds.Components(), [][]int{{0, 3, 5}, {1, 2}, {4}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
}

func TestMergeGroups(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		groups [][][]int
		want   [][]int
	}{
		{
			name: "no groups",
			n:    3,
			want: [][]int{{0}, {1}, {2}},
		},
		{
			name:   "singletons and empties",
			n:      3,
			groups: [][][]int{{{0}, {}, {2}}},
			want:   [][]int{{0}, {1}, {2}},
		},
		{
			name:   "overlapping groups join",
			n:      6,
			groups: [][][]int{{{0, 2}, {2, 4}, {1, 5}}},
			want:   [][]int{{0, 2, 4}, {1, 5}, {3}},
		},
		{
			name:   "two partitions merge",
			n:      5,
			groups: [][][]int{{{0, 1}, {2}, {3, 4}}, {{0}, {1, 2}, {3}, {4}}},
			want:   [][]int{{0, 1, 2}, {3, 4}},
		},
		{
			name:   "out of range ignored",
			n:      2,
			groups: [][][]int{{{0, 7, 1}, {-1}}},
			want:   [][]int{{0, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeGroups(tt.n, tt.groups...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("MergeGroups() = %v, want %v", got, tt.want)
			}
			requirePartition(t, got, tt.n)
		})
	}
}

func TestSegmentsPartition(t *testing.T) {
	segs := points(0, 0.4, 5, 5.3, 5.6, 9, 20, 20.2)
	idx := neighbors.NewBallTree(segs, beginMetric, 1)

	for _, tol := range []float64{0, 0.25, 0.5, 1, 5, 100} {
		got := Segments(idx, segs, tol)
		requirePartition(t, got, len(segs))
	}

	if got, want := Segments(idx, segs, 0.5), [][]int{{0, 1}, {2, 3, 4}, {5}, {6, 7}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Segments(0.5) = %v, want %v", got, want)
	}
	if got := len(Segments(idx, segs, 0)); got != len(segs) {
		t.Fatalf("len(Segments(0)) = %d, want %d", got, len(segs))
	}
	if got := len(Segments(idx, segs, 100)); got != 1 {
		t.Fatalf("len(Segments(100)) = %d, want 1", got)
	}
}

func TestSegmentsChainsThroughOverlap(t *testing.T) {
	// 0 claims {0,1}; 2 is still unclaimed and claims {1,2}: the shared
	// member 1 links both raw groups into one cluster.
	segs := points(0, 1, 2)
	idx := neighbors.NewBrute(segs, beginMetric)

	if got, want := Segments(idx, segs, 1), [][]int{{0, 1, 2}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Segments(1) = %v, want %v", got, want)
	}
}

func TestSegmentsMonotoneInTolerance(t *testing.T) {
	segs := points(0, 0.3, 1.1, 2.5, 2.6, 4, 7, 7.2, 9.5, 13)
	idx := neighbors.NewBallTree(segs, beginMetric, 2)

	prev := math.MaxInt
	for _, tol := range []float64{0, 0.1, 0.2, 0.5, 1, 2, 3, 5, 20} {
		n := len(Segments(idx, segs, tol))
		if n > prev {
			t.Fatalf("tol=%v: %d clusters, more than %d at a smaller tolerance", tol, n, prev)
		}
		prev = n
	}
}

func TestSegmentsSingleAndEmpty(t *testing.T) {
	one := points(3)
	if got, want := Segments(neighbors.NewBallTree(one, beginMetric, 1), one, 0), [][]int{{0}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Segments(one) = %v, want %v", got, want)
	}

	if got := Segments(neighbors.NewBrute(nil, beginMetric), nil, 1); len(got) != 0 {
		t.Fatalf("Segments(empty) = %v, want none", got)
	}
}
