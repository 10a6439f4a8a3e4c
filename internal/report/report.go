// Package report builds and serializes the detector's output record.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kyori19/cmdetect/internal/block"
	"github.com/kyori19/cmdetect/internal/silence"
	"github.com/lestrrat-go/strftime"
)

// segmentRecord is one hop inside a cmBlockRecord. is_standard is
// deliberately absent: it is internal-only and must never be serialized.
type segmentRecord struct {
	StartMS     int64   `json:"start_ms"`
	EndMS       int64   `json:"end_ms"`
	DurationSec float64 `json:"duration_sec"`
}

type cmBlockRecord struct {
	StartMS     int64           `json:"start_ms"`
	EndMS       int64           `json:"end_ms"`
	DurationSec float64         `json:"duration_sec"`
	Segments    []segmentRecord `json:"segments"`
}

type silenceRecord struct {
	StartMS    int64 `json:"start_ms"`
	EndMS      int64 `json:"end_ms"`
	DurationMS int64 `json:"duration_ms"`
}

// Record is the top-level output object. Field order matches the
// declaration order below, which is the serialized key order.
type Record struct {
	InputFile       string          `json:"input_file"`
	StartOffsetMS   *int64          `json:"start_offset_ms"`
	CmBlocks        []cmBlockRecord `json:"cm_blocks"`
	SilenceSegments []silenceRecord `json:"silence_segments"`
}

// Build assembles the output record from the pipeline's final state. Blocks
// are expected already in time order (stage C only ever appends forward)
// and the silence list is echoed back unchanged.
func Build(inputFile string, startOffsetMS int64, haveOffset bool, blocks []block.CmBlock, segments []silence.Segment) Record {
	var offset *int64
	if haveOffset {
		offset = &startOffsetMS
	}

	cmBlocks := make([]cmBlockRecord, len(blocks))
	for i, b := range blocks {
		segs := make([]segmentRecord, len(b.Segments))
		for j, s := range b.Segments {
			segs[j] = segmentRecord{StartMS: s.StartMS, EndMS: s.EndMS, DurationSec: s.DurationSec}
		}
		cmBlocks[i] = cmBlockRecord{
			StartMS:     b.StartMS,
			EndMS:       b.EndMS,
			DurationSec: b.DurationSec,
			Segments:    segs,
		}
	}

	silenceRecords := make([]silenceRecord, len(segments))
	for i, s := range segments {
		silenceRecords[i] = silenceRecord{StartMS: s.StartMS, EndMS: s.EndMS, DurationMS: s.DurationMS}
	}

	return Record{
		InputFile:       inputFile,
		StartOffsetMS:   offset,
		CmBlocks:        cmBlocks,
		SilenceSegments: silenceRecords,
	}
}

// Write pretty-prints rec to w, matching the contract's exact key order
// (guaranteed by Go's struct-field encoding order, not map iteration).
func Write(w io.Writer, rec Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("report: encoding: %w", err)
	}
	return nil
}

// ArchivalPath formats pattern (a strftime pattern) against runStart, for
// an optional secondary copy of the report under a timestamped filename.
func ArchivalPath(pattern string, runStart time.Time) (string, error) {
	formatted, err := strftime.Format(pattern, runStart)
	if err != nil {
		return "", fmt.Errorf("report: invalid archival pattern %q: %w", pattern, err)
	}
	return formatted, nil
}
