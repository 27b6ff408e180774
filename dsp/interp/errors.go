package interp

import "errors"

var (
	// ErrTooFewSamples indicates fewer samples than the spline order requires.
	ErrTooFewSamples = errors.New("interp: too few samples for cubic spline")
	// ErrNonMonotoneDomain indicates x is not strictly increasing.
	ErrNonMonotoneDomain = errors.New("interp: x must be strictly increasing")
	// ErrLengthMismatch indicates x and y have different lengths.
	ErrLengthMismatch = errors.New("interp: x and y must have the same length")
	// ErrNonFinite indicates a NaN or infinite sample value.
	ErrNonFinite = errors.New("interp: samples must be finite")
)
