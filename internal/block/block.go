// Package block implements the CM-block detection pipeline: the
// range-based chainer, the short-unit merger, the boundary extender, and
// the final filter (spec stages C through F).
package block

import "github.com/google/uuid"

// hopKind is the tagged classification of one hop in a chain, per the
// specification's "tagged variants instead of boolean flags" design note.
type hopKind int

const (
	hopStandard  hopKind = iota // admitted by the 15s-grid test
	hopShort                    // admitted only by the 5s/10s short-unit test
	hopSynthetic                // inserted by the merge or extend passes
)

// CmCandidate is one hop between two consecutive silences inside a chain.
type CmCandidate struct {
	StartMS     int64
	EndMS       int64
	DurationSec float64
	kind        hopKind
}

// IsStandard reports whether this hop counts toward the final filter's
// strict-standard-unit threshold. It is derived from the hop's tag rather
// than stored as an independent boolean, and is the only place the legacy
// is_standard concept is materialized.
func (c CmCandidate) IsStandard() bool {
	return c.kind == hopStandard
}

// CmBlock is one detected contiguous CM block.
type CmBlock struct {
	StartMS     int64
	EndMS       int64
	DurationSec float64
	Segments    []CmCandidate

	traceID uuid.UUID // log correlation only; never serialized
}

// TraceID returns the block's log-correlation identifier.
func (b CmBlock) TraceID() uuid.UUID {
	return b.traceID
}

// CountStandardUnits returns the number of hops admitted via the strict
// 15s-grid test.
func (b CmBlock) CountStandardUnits() int {
	n := 0
	for _, seg := range b.Segments {
		if seg.IsStandard() {
			n++
		}
	}
	return n
}
