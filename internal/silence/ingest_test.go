package silence

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	input := `[silencedetect @ 0x7f8b] silence_start: 0.5
[silencedetect @ 0x7f8b] silence_end: 1.0 | silence_duration: 0.5
[silencedetect @ 0x7f8b] silence_start: 14.5
[silencedetect @ 0x7f8b] silence_end: 15.5 | silence_duration: 1.0
`
	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := []Segment{
		{StartMS: 500, EndMS: 1000, DurationMS: 500},
		{StartMS: 14500, EndMS: 15500, DurationMS: 1000},
	}
	if diff := cmp.Diff(want, result.Segments); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, result.SkippedLines)
}

func TestParseSkipsNonASCIILines(t *testing.T) {
	input := "silence_start: 0.0\n" +
		"日本語のコメント行\n" +
		"silence_end: 1.0\n"
	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, int64(0), result.Segments[0].StartMS)
	assert.Equal(t, int64(1000), result.Segments[0].EndMS)
	assert.Equal(t, 1, result.SkippedLines)
}

func TestParseDropsDanglingStart(t *testing.T) {
	input := "silence_start: 0.0\n" +
		"silence_start: 5.0\n" +
		"silence_end: 6.0\n"
	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, int64(5000), result.Segments[0].StartMS)
	assert.Equal(t, int64(6000), result.Segments[0].EndMS)
}

func TestParseEmptyInput(t *testing.T) {
	result, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Segments)
	assert.Equal(t, 0, result.SkippedLines)
}

func TestRangeIntersect(t *testing.T) {
	r1 := NewRange(100, 200)
	r2 := NewRange(150, 250)
	got, ok := r1.Intersect(r2)
	require.True(t, ok)
	assert.Equal(t, Range{Start: 150, End: 200}, got)

	r3 := NewRange(300, 400)
	_, ok = r1.Intersect(r3)
	assert.False(t, ok)
}

func TestRangeOffset(t *testing.T) {
	r := NewRange(100, 200)
	got := r.Offset(15000)
	assert.Equal(t, Range{Start: 15100, End: 15200}, got)
}
