package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/kyori19/cmdetect/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProducesJSONReport(t *testing.T) {
	input := "[silencedetect] silence_start: 0.0\n" +
		"[silencedetect] silence_end: 1.0 | silence_duration: 1.0\n" +
		"[silencedetect] silence_start: 14.5\n" +
		"[silencedetect] silence_end: 15.5 | silence_duration: 1.0\n" +
		"[silencedetect] silence_start: 29.5\n" +
		"[silencedetect] silence_end: 30.5 | silence_duration: 1.0\n" +
		"[silencedetect] silence_start: 44.5\n" +
		"[silencedetect] silence_end: 45.5 | silence_duration: 1.0\n" +
		"[silencedetect] silence_start: 59.5\n" +
		"[silencedetect] silence_end: 60.5 | silence_duration: 1.0\n" +
		"[silencedetect] silence_start: 74.5\n" +
		"[silencedetect] silence_end: 75.5 | silence_duration: 1.0\n"

	var out bytes.Buffer
	logger := log.New(io.Discard)

	err := run(strings.NewReader(input), &out, config.Defaults(), "", logger)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, `"input_file": "stdin"`)
	assert.Contains(t, got, `"cm_blocks"`)
	assert.NotContains(t, got, "is_standard")
}

func TestRunEmptyInputProducesEmptyReport(t *testing.T) {
	var out bytes.Buffer
	logger := log.New(io.Discard)

	err := run(strings.NewReader(""), &out, config.Defaults(), "", logger)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"cm_blocks": []`)
}
