package silence

const (
	// StartOffsetMinMS and StartOffsetMaxMS bound the window in which the
	// first silence center is reported as the informational start offset.
	StartOffsetMinMS int64 = 2000
	StartOffsetMaxMS int64 = 8000
)

// DetectStartOffset returns the center of the first segment whose center
// falls within [StartOffsetMinMS, StartOffsetMaxMS], or false if none does.
// This value is purely informational; downstream detection stages never
// read it.
func DetectStartOffset(segments []Segment) (int64, bool) {
	return DetectStartOffsetWithBounds(segments, StartOffsetMinMS, StartOffsetMaxMS)
}

// DetectStartOffsetWithBounds is DetectStartOffset with caller-supplied
// bounds, for use with a resolved config.Tolerances instead of the
// package defaults.
func DetectStartOffsetWithBounds(segments []Segment, minMS, maxMS int64) (int64, bool) {
	for _, s := range segments {
		c := s.Center()
		if c >= minMS && c <= maxMS {
			return c, true
		}
	}
	return 0, false
}
