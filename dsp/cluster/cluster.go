package cluster

import (
	"github.com/cwbudde/algo-periodicity/dsp/neighbors"
	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

// MergeGroups joins overlapping index groups over [0, n) into connected
// components. Consecutive members of each group are linked (a ring, which
// connects the group just like a clique would); empty and single-member
// groups add no links but every index still lands in exactly one component.
// Indices outside [0, n) are ignored.
func MergeGroups(n int, groups ...[][]int) [][]int {
	ds := NewDisjointSet(n)

	for _, family := range groups {
		for _, g := range family {
			prev := -1
			for _, i := range g {
				if i < 0 || i >= n {
					continue
				}
				if prev >= 0 {
					ds.Union(prev, i)
				}
				prev = i
			}
		}
	}

	return ds.Components()
}

// Segments clusters segs with radius queries against index at the given
// tolerance and returns disjoint index sets covering every position of segs.
// index must have been built over segs.
func Segments(index neighbors.Index, segs []segment.Segment, tol float64) [][]int {
	claimed := make([]bool, len(segs))
	var raw [][]int

	for i, s := range segs {
		if claimed[i] {
			continue
		}

		group := index.QueryRadius(s, tol)
		if !contains(group, i) {
			group = append(group, i)
		}

		for _, j := range group {
			if j >= 0 && j < len(claimed) {
				claimed[j] = true
			}
		}

		raw = append(raw, group)
	}

	return MergeGroups(len(segs), raw)
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
