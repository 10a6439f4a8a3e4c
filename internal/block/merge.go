package block

import (
	"math"

	"github.com/kyori19/cmdetect/internal/config"
	"github.com/kyori19/cmdetect/internal/silence"
)

// MergeShortUnits runs stage D: adjacent blocks separated by a gap that
// itself looks like one or more short units (5s/10s, within tolerance)
// are merged into a single block, with the gap recorded as a synthetic
// hop. Blocks are otherwise passed through unchanged.
func MergeShortUnits(blocks []CmBlock, segments []silence.Segment, tol config.Tolerances) []CmBlock {
	if len(blocks) < 2 {
		return append([]CmBlock(nil), blocks...)
	}

	merged := make([]CmBlock, 0, len(blocks))
	current := blocks[0]

	for i := 1; i < len(blocks); i++ {
		next := blocks[i]
		gapStart, gapEnd := current.EndMS, next.StartMS

		if !gapHoldsShortUnits(segments, gapStart, gapEnd, tol) {
			merged = append(merged, current)
			current = next
			continue
		}

		gapDurationSec := float64(gapEnd-gapStart) / 1000.0
		segs := make([]CmCandidate, 0, len(current.Segments)+1+len(next.Segments))
		segs = append(segs, current.Segments...)
		segs = append(segs, CmCandidate{
			StartMS:     gapStart,
			EndMS:       gapEnd,
			DurationSec: gapDurationSec,
			kind:        hopSynthetic,
		})
		segs = append(segs, next.Segments...)

		current = CmBlock{
			StartMS:     current.StartMS,
			EndMS:       next.EndMS,
			DurationSec: float64(next.EndMS-current.StartMS) / 1000.0,
			Segments:    segs,
			traceID:     current.traceID,
		}
	}
	merged = append(merged, current)
	return merged
}

// gapHoldsShortUnits reports whether the inter-block gap [gapStart,gapEnd]
// is itself consistent with a run of short units. When no silence lies
// entirely inside the gap, the gap duration must be within tolerance of a
// single short unit. When at least one does, the gap duration must be
// within n*tolerance of n short units of one size, for some n in 1..6.
func gapHoldsShortUnits(segments []silence.Segment, gapStart, gapEnd int64, tol config.Tolerances) bool {
	hasInner := false
	for _, s := range segments {
		if s.StartMS >= gapStart && s.EndMS <= gapEnd {
			hasInner = true
			break
		}
	}

	gapSec := float64(gapEnd-gapStart) / 1000.0
	if !hasInner {
		return isShortUnit(gapSec, tol)
	}

	const maxUnitsConsidered = 6
	for n := 1; n <= maxUnitsConsidered; n++ {
		for _, unit := range tol.ShortUnitsSec {
			expected := unit * float64(n)
			allowed := (float64(tol.ToleranceMS) / 1000.0) * float64(n)
			if math.Abs(gapSec-expected) <= allowed {
				return true
			}
		}
	}
	return false
}
