package block

import "github.com/kyori19/cmdetect/internal/config"

// Filter runs stage F: a block survives only if its total duration is at
// least MinBlockSec and it contains at least MinStandardUnits hops
// admitted via the strict 15s-grid test. Extended or merged synthetic
// hops, and short-unit hops, never count toward that threshold.
func Filter(blocks []CmBlock, tol config.Tolerances) []CmBlock {
	var out []CmBlock
	for _, b := range blocks {
		if b.DurationSec >= tol.MinBlockSec && b.CountStandardUnits() >= tol.MinStandardUnits {
			out = append(out, b)
		}
	}
	return out
}
