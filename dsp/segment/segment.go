// Package segment builds the half-open domain intervals that bound the
// monotone runs of a curve.
package segment

import (
	"errors"
	"fmt"
)

// ErrBadTiling is returned by Validate when segments do not tile a domain.
var ErrBadTiling = errors.New("segment: segments do not tile the domain")

// Segment is the half-open interval [Begin, End).
type Segment struct {
	Begin float64
	End   float64
}

// Len returns End - Begin.
func (s Segment) Len() float64 {
	return s.End - s.Begin
}

// String formats the segment as [begin, end).
func (s Segment) String() string {
	return fmt.Sprintf("[%g, %g)", s.Begin, s.End)
}

// Build turns ascending interior boundary points into len(points)+1
// consecutive segments covering [lo, hi]:
// [lo, p0), [p0, p1), ..., [p(n-1), hi). With no points the result is the
// single segment [lo, hi). The caller guarantees points are sorted.
func Build(points []float64, lo, hi float64) []Segment {
	out := make([]Segment, 0, len(points)+1)

	begin := lo
	for _, p := range points {
		out = append(out, Segment{Begin: begin, End: p})
		begin = p
	}

	return append(out, Segment{Begin: begin, End: hi})
}

// Interior returns the interior boundary points of a segment list, the
// inverse of Build.
func Interior(segs []Segment) []float64 {
	if len(segs) < 2 {
		return nil
	}

	out := make([]float64, len(segs)-1)
	for i := range out {
		out[i] = segs[i].End
	}

	return out
}

// Unify merges two index-aligned segment lists into one by taking, per
// position, the later begin and the later end. Lists of different length
// are merged over the shorter one.
func Unify(a, b []Segment) []Segment {
	n := min(len(a), len(b))

	out := make([]Segment, n)
	for i := range n {
		out[i] = Segment{
			Begin: max(a[i].Begin, b[i].Begin),
			End:   max(a[i].End, b[i].End),
		}
	}

	return out
}

// Validate reports whether segs tile [lo, hi] exactly: the first segment
// starts at lo, the last ends at hi, each begins where its predecessor ends
// and every segment has Begin < End.
func Validate(segs []Segment, lo, hi float64) error {
	if len(segs) == 0 {
		return fmt.Errorf("%w: empty segment list", ErrBadTiling)
	}

	if segs[0].Begin != lo {
		return fmt.Errorf("%w: first begin %v != %v", ErrBadTiling, segs[0].Begin, lo)
	}

	if last := segs[len(segs)-1]; last.End != hi {
		return fmt.Errorf("%w: last end %v != %v", ErrBadTiling, last.End, hi)
	}

	for i, s := range segs {
		if !(s.Begin < s.End) {
			return fmt.Errorf("%w: segment %d %v is empty", ErrBadTiling, i, s)
		}

		if i > 0 && segs[i-1].End != s.Begin {
			return fmt.Errorf("%w: gap or overlap between %d and %d", ErrBadTiling, i-1, i)
		}
	}

	return nil
}
