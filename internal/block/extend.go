package block

import (
	"github.com/kyori19/cmdetect/internal/config"
	"github.com/kyori19/cmdetect/internal/silence"
)

// ExtendBoundaries runs stage E: for each block, if the silence at its
// start or end edge is itself linked to a neighboring silence by a gap
// that reads as a short unit, that neighbor is folded into the block as
// a synthetic leading or trailing hop. Extension walks outward one
// silence at a time and stops at the first gap that fails the test.
func ExtendBoundaries(blocks []CmBlock, segments []silence.Segment, tol config.Tolerances) []CmBlock {
	if len(blocks) == 0 || len(segments) == 0 {
		return append([]CmBlock(nil), blocks...)
	}

	result := make([]CmBlock, len(blocks))
	for i, b := range blocks {
		result[i] = extendSingleBlock(b, segments, tol)
	}
	return result
}

func extendSingleBlock(b CmBlock, segments []silence.Segment, tol config.Tolerances) CmBlock {
	newStart, newEnd := b.StartMS, b.EndMS
	var leading, trailing []CmCandidate

	if idx, ok := indexOfCenter(segments, b.StartMS); ok {
		for idx > 0 {
			prev, curr := segments[idx-1], segments[idx]
			gapSec := float64(curr.StartMS-prev.EndMS) / 1000.0
			if !isShortUnit(gapSec, tol) {
				break
			}
			segStart, segEnd := prev.Center(), curr.Center()
			leading = append([]CmCandidate{{
				StartMS:     segStart,
				EndMS:       segEnd,
				DurationSec: float64(segEnd-segStart) / 1000.0,
				kind:        hopSynthetic,
			}}, leading...)
			newStart = segStart
			idx--
		}
	}

	if idx, ok := indexOfCenter(segments, b.EndMS); ok {
		for idx+1 < len(segments) {
			curr, next := segments[idx], segments[idx+1]
			gapSec := float64(next.StartMS-curr.EndMS) / 1000.0
			if !isShortUnit(gapSec, tol) {
				break
			}
			segStart, segEnd := curr.Center(), next.Center()
			trailing = append(trailing, CmCandidate{
				StartMS:     segStart,
				EndMS:       segEnd,
				DurationSec: float64(segEnd-segStart) / 1000.0,
				kind:        hopSynthetic,
			})
			newEnd = segEnd
			idx++
		}
	}

	if len(leading) == 0 && len(trailing) == 0 {
		return b
	}

	segs := make([]CmCandidate, 0, len(leading)+len(b.Segments)+len(trailing))
	segs = append(segs, leading...)
	segs = append(segs, b.Segments...)
	segs = append(segs, trailing...)

	return CmBlock{
		StartMS:     newStart,
		EndMS:       newEnd,
		DurationSec: float64(newEnd-newStart) / 1000.0,
		Segments:    segs,
		traceID:     b.traceID,
	}
}

func indexOfCenter(segments []silence.Segment, targetMS int64) (int, bool) {
	for i, s := range segments {
		if s.Center() == targetMS {
			return i, true
		}
	}
	return 0, false
}
