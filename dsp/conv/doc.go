// Package conv provides FFT-based autocorrelation and a period estimate
// derived from it.
//
// [AutoCorrelate] removes the mean, zero-pads to a power of two at least
// 2N-1 long and computes the linear autocorrelation as the inverse FFT of
// the power spectrum. [DominantLag] picks the strongest repetition lag,
// which serves as an independent cross-check of a principal period:
//
//	acf, err := conv.AutoCorrelate(y)
//	lag, err := conv.DominantLag(acf)
package conv
