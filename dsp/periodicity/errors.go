package periodicity

import "errors"

var (
	// ErrMisalignedExtrema indicates that the maxima and minima segment
	// lists differ in length by more than one.
	ErrMisalignedExtrema = errors.New("periodicity: maxima and minima segments are not index-aligned")
	// ErrNegativeTolerance indicates a clustering tolerance below zero.
	ErrNegativeTolerance = errors.New("periodicity: tolerance must be non-negative")
	// ErrInsufficientClusters indicates fewer than two distinct clusters,
	// which leaves no recurring structure to model.
	ErrInsufficientClusters = errors.New("periodicity: at least two distinct clusters are required")
)
