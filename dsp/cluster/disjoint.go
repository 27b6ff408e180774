package cluster

// DisjointSet is a union-find structure over the integers [0, n).
type DisjointSet struct {
	parent []int
	rank   []uint8
	sets   int
}

// NewDisjointSet returns n singleton sets.
func NewDisjointSet(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]uint8, n),
		sets:   n,
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

// Len returns the number of elements.
func (ds *DisjointSet) Len() int { return len(ds.parent) }

// Sets returns the current number of disjoint sets.
func (ds *DisjointSet) Sets() int { return ds.sets }

// Find returns the representative of x's set.
func (ds *DisjointSet) Find(x int) int {
	root := x
	for ds.parent[root] != root {
		root = ds.parent[root]
	}

	// Path compression.
	for ds.parent[x] != root {
		ds.parent[x], x = root, ds.parent[x]
	}

	return root
}

// Union merges the sets of a and b and reports whether they were distinct.
func (ds *DisjointSet) Union(a, b int) bool {
	ra, rb := ds.Find(a), ds.Find(b)
	if ra == rb {
		return false
	}

	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ra, rb = rb, ra
	case ds.rank[ra] == ds.rank[rb]:
		ds.rank[ra]++
	}

	ds.parent[rb] = ra
	ds.sets--

	return true
}

// Components returns the sets as index lists. Components are ordered by
// their smallest member and each list is ascending.
func (ds *DisjointSet) Components() [][]int {
	slot := make(map[int]int, ds.sets)
	out := make([][]int, 0, ds.sets)

	for i := range ds.parent {
		r := ds.Find(i)
		k, ok := slot[r]
		if !ok {
			k = len(out)
			slot[r] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], i)
	}

	return out
}
