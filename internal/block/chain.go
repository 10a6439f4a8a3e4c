package block

import (
	"math"

	"github.com/google/uuid"
	"github.com/kyori19/cmdetect/internal/config"
	"github.com/kyori19/cmdetect/internal/silence"
)

// hop is one link of a chain under construction: the indices of the two
// silences it spans in the original segment slice, and the kind it was
// admitted under.
type hop struct {
	from, to int
	kind     hopKind
}

// Chain runs the range-based chainer (stage C): it walks consecutive
// silences, and greedily extends a chain as long as each new silence
// falls inside the feasible-successor range projected forward from the
// previous hop. Each maximal chain that satisfies the block duration
// bounds becomes one CmBlock.
func Chain(segments []silence.Segment, tol config.Tolerances) []CmBlock {
	if len(segments) < 2 {
		return nil
	}

	var blocks []CmBlock
	var chain []hop
	prevRange := silence.NewRange(segments[0].StartMS, segments[0].EndMS)

	for i := 1; i < len(segments); i++ {
		curr := segments[i]
		currRange := silence.NewRange(curr.StartMS, curr.EndMS)

		prevCenter := prevRange.Center()
		currCenter := currRange.Center()
		gapMS := currCenter - prevCenter
		gapSec := float64(gapMS) / 1000.0

		expectedMS, ok := expectedIntervalMS(gapMS, tol)
		if !ok {
			if b, ok := tryMakeBlock(chain, segments, tol); ok {
				blocks = append(blocks, b)
			}
			chain = nil
			prevRange = currRange
			continue
		}

		standardTarget := projectedRange(prevRange, expectedMS, tol.ToleranceMS)
		matchRange, matched := currRange.Intersect(standardTarget)
		kind := hopStandard

		if !matched && isShortUnit(gapSec, tol) {
			shortExpectedMS := int64(math.Round(gapSec * 1000.0))
			shortTarget := projectedRange(prevRange, shortExpectedMS, tol.ToleranceMS)
			if mr, ok := currRange.Intersect(shortTarget); ok {
				matchRange, matched = mr, true
				kind = hopShort
			}
		}

		if matched {
			chain = append(chain, hop{from: i - 1, to: i, kind: kind})
			prevRange = matchRange
			continue
		}

		if b, ok := tryMakeBlock(chain, segments, tol); ok {
			blocks = append(blocks, b)
		}
		chain = nil
		prevRange = currRange
	}

	if b, ok := tryMakeBlock(chain, segments, tol); ok {
		blocks = append(blocks, b)
	}
	return blocks
}

// projectedRange computes the feasible-successor range: prevRange offset
// by expectedMS, expanded by toleranceMS on both the near and far edge.
// It is built from the independently-offset low and high edges rather
// than a single uniform offset, so that tolerance is applied once per
// hop rather than accumulating across the chain.
func projectedRange(prevRange silence.Range, expectedMS, toleranceMS int64) silence.Range {
	low := prevRange.Offset(expectedMS - toleranceMS)
	high := prevRange.Offset(expectedMS + toleranceMS)
	return silence.Range{Start: low.Start, End: high.End}
}

// expectedIntervalMS snaps gapMS onto the nearest whole multiple of the
// standard unit, rejecting gaps that would require more than
// tol.MaxStandardUnits units to bridge.
func expectedIntervalMS(gapMS int64, tol config.Tolerances) (int64, bool) {
	gapSec := float64(gapMS) / 1000.0
	units := int64(math.Round(gapSec / tol.StandardUnitSec))
	if units < 1 {
		units = 1
	}
	if units > tol.MaxStandardUnits {
		return 0, false
	}
	return int64(float64(units) * tol.StandardUnitSec * 1000.0), true
}

// isShortUnit reports whether gapSec is within tolerance of one of the
// configured short units (5s or 10s) directly — unlike the standard-unit
// path, this is not snapped to a multiple.
func isShortUnit(gapSec float64, tol config.Tolerances) bool {
	toleranceSec := float64(tol.ToleranceMS) / 1000.0
	for _, unit := range tol.ShortUnitsSec {
		if math.Abs(gapSec-unit) <= toleranceSec {
			return true
		}
	}
	return false
}

// tryMakeBlock converts a completed chain of hops into a CmBlock, applying
// the block-duration bound and the contiguity-overwrite rule: the block's
// reported start/end are the center points of its bounding silences, and
// the first hop's start and the last hop's end are overwritten to match, so
// the hop list begins at StartMS and ends at EndMS. Every other hop edge is
// a raw silence edge (the earlier silence's end, the later silence's
// start). Each hop's duration is computed from the raw inter-silence gap
// before that overwrite and is not recomputed afterward.
func tryMakeBlock(chain []hop, segments []silence.Segment, tol config.Tolerances) (CmBlock, bool) {
	if len(chain) == 0 {
		return CmBlock{}, false
	}

	first := chain[0]
	last := chain[len(chain)-1]
	startMS := segments[first.from].Center()
	endMS := segments[last.to].Center()

	durationSec := float64(endMS-startMS) / 1000.0
	if durationSec <= 0 || durationSec > tol.MaxBlockSec {
		return CmBlock{}, false
	}

	segs := make([]CmCandidate, len(chain))
	for i, h := range chain {
		segStart := segments[h.from].EndMS
		segEnd := segments[h.to].StartMS
		segs[i] = CmCandidate{
			StartMS:     segStart,
			EndMS:       segEnd,
			DurationSec: float64(segEnd-segStart) / 1000.0,
			kind:        h.kind,
		}
	}
	segs[0].StartMS = startMS
	segs[len(segs)-1].EndMS = endMS

	return CmBlock{
		StartMS:     startMS,
		EndMS:       endMS,
		DurationSec: durationSec,
		Segments:    segs,
		traceID:     uuid.New(),
	}, true
}
