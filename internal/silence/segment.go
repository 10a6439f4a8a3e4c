// Package silence models detected silence intervals and turns raw
// silencedetect-style probe text into an ordered sequence of them.
package silence

// Segment is one detected silence interval, in whole milliseconds. Its
// exact transition point is unknown within [StartMS, EndMS].
type Segment struct {
	StartMS    int64
	EndMS      int64
	DurationMS int64
}

// Center returns the integer midpoint of the segment, used by the chainer
// as a coarse estimate of the segment's true boundary.
func (s Segment) Center() int64 {
	return (s.StartMS + s.EndMS) / 2
}

// Range is a closed integer interval [Start, End] on the time axis.
type Range struct {
	Start int64
	End   int64
}

// NewRange builds a Range from a segment's raw endpoints.
func NewRange(start, end int64) Range {
	return Range{Start: start, End: end}
}

func (r Range) Center() int64 {
	return (r.Start + r.End) / 2
}

// Intersect returns the overlapping range, or false if the ranges don't
// overlap.
func (r Range) Intersect(other Range) (Range, bool) {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start > end {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// Offset shifts both endpoints by delta.
func (r Range) Offset(delta int64) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}
