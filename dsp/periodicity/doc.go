// Package periodicity detects approximate periodic structure in a sampled
// signal.
//
// An [Indexer] fits a smooth curve through the samples, splits the domain at
// the local maxima and, independently, at the local minima, and builds one
// radius-query index per extremum family. [Indexer.Sequence] clusters both
// families at a tolerance, merges the two partitions and returns one cluster
// id per unified segment in domain order. The indexer holds no per-call
// state, so a tolerance sweep reuses the fitted curve and the indices.
//
// [AnalyzePeriod] trains a discrete hidden Markov model on the resulting
// label sequence, picks the state with the largest total posterior mass as
// the separator and rebuilds the domain tiling at the segments the most
// likely state path assigns to it:
//
//	ix, err := periodicity.NewIndexer(y, nil)
//	if err != nil {
//		return err
//	}
//	period, err := periodicity.FindPrincipalPeriod(ix, 0.3)
package periodicity
