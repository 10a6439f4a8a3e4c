package block

import (
	"testing"

	"github.com/kyori19/cmdetect/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestFilterRequiresDurationAndStandardUnits(t *testing.T) {
	tol := config.Defaults()

	tooShort := CmBlock{
		DurationSec: 30.0,
		Segments: []CmCandidate{
			{kind: hopStandard}, {kind: hopStandard},
		},
	}
	tooFewStandard := CmBlock{
		DurationSec: 90.0,
		Segments: []CmCandidate{
			{kind: hopStandard}, {kind: hopShort},
		},
	}
	passes := CmBlock{
		DurationSec: 90.0,
		Segments: []CmCandidate{
			{kind: hopStandard}, {kind: hopStandard}, {kind: hopShort},
		},
	}

	got := Filter([]CmBlock{tooShort, tooFewStandard, passes}, tol)
	require := assert.New(t)
	require.Len(got, 1)
	require.Equal(passes.DurationSec, got[0].DurationSec)
}
