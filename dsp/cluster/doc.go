// Package cluster groups segments into fuzzy clusters.
//
// [Segments] walks a segment list in order, issues one radius query per
// segment not yet claimed by an earlier query, and records each result as a
// raw group. Raw groups may overlap; [MergeGroups] resolves overlaps by
// taking connected components over the groups, implemented with a
// [DisjointSet]. The final clusters partition the index range.
package cluster
