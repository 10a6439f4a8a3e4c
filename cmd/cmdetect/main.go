// Command cmdetect reads ffmpeg silencedetect output on stdin and reports
// the CM (commercial-message) blocks it finds as a JSON document on
// stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kyori19/cmdetect/internal/block"
	"github.com/kyori19/cmdetect/internal/config"
	"github.com/kyori19/cmdetect/internal/report"
	"github.com/kyori19/cmdetect/internal/silence"
	"github.com/spf13/pflag"
)

func main() {
	var (
		configPath       = pflag.StringP("config", "c", "", "YAML file of tolerance overrides.")
		toleranceMS      = pflag.Int64("tolerance-ms", -1, "Per-hop tolerance override, in milliseconds.")
		minBlockSec      = pflag.Float64("min-block-sec", -1, "Final-filter minimum block duration override, in seconds.")
		maxBlockSec      = pflag.Float64("max-block-sec", -1, "Chain sanity-guard maximum block duration override, in seconds.")
		minStandardUnits = pflag.Int("min-standard-units", -1, "Final-filter minimum strict-standard hop count override.")
		archivePattern   = pflag.String("archive", "", "strftime pattern for a secondary timestamped copy of the report.")
		quiet            = pflag.BoolP("quiet", "q", false, "Suppress all but warning and error diagnostics.")
		verbose          = pflag.BoolP("verbose", "v", false, "Emit per-block debug diagnostics before the final filter.")
		help             = pflag.BoolP("help", "h", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cmdetect - detect CM blocks in ffmpeg silencedetect output.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: cmdetect [options] < silencedetect.log\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	runID := uuid.New()
	logger := log.New(os.Stderr).With("run", runID.String())
	if *quiet {
		logger.SetLevel(log.WarnLevel)
	} else if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	tol, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	if *toleranceMS >= 0 {
		tol.ToleranceMS = *toleranceMS
	}
	if *minBlockSec >= 0 {
		tol.MinBlockSec = *minBlockSec
	}
	if *maxBlockSec >= 0 {
		tol.MaxBlockSec = *maxBlockSec
	}
	if *minStandardUnits >= 0 {
		tol.MinStandardUnits = *minStandardUnits
	}

	if err := run(os.Stdin, os.Stdout, tol, *archivePattern, logger); err != nil {
		logger.Fatal("run failed", "err", err)
	}
}

func run(in io.Reader, out io.Writer, tol config.Tolerances, archivePattern string, logger *log.Logger) error {
	parsed, err := silence.Parse(in)
	if err != nil {
		return fmt.Errorf("parsing silence stream: %w", err)
	}
	logger.Info("parsed silence stream", "segments", len(parsed.Segments), "skipped_lines", parsed.SkippedLines)

	startOffsetMS, haveOffset := silence.DetectStartOffsetWithBounds(parsed.Segments, tol.StartOffsetMinMS, tol.StartOffsetMaxMS)

	chained := block.Chain(parsed.Segments, tol)
	logger.Info("chained blocks", "count", len(chained))

	merged := block.MergeShortUnits(chained, parsed.Segments, tol)
	logger.Info("merged blocks", "count", len(merged))

	extended := block.ExtendBoundaries(merged, parsed.Segments, tol)
	logger.Info("extended blocks", "count", len(extended))

	if logger.GetLevel() <= log.DebugLevel {
		for _, b := range extended {
			logger.Debug("pre-filter block",
				"trace", b.TraceID().String(),
				"duration_sec", b.DurationSec,
				"standard_units", b.CountStandardUnits(),
				"passes_filter", b.DurationSec >= tol.MinBlockSec && b.CountStandardUnits() >= tol.MinStandardUnits,
			)
		}
	}

	filtered := block.Filter(extended, tol)
	logger.Info("filtered blocks", "count", len(filtered))

	rec := report.Build("stdin", startOffsetMS, haveOffset, filtered, parsed.Segments)

	if err := report.Write(out, rec); err != nil {
		return err
	}

	if archivePattern != "" {
		path, err := report.ArchivalPath(archivePattern, time.Now())
		if err != nil {
			return fmt.Errorf("computing archival path: %w", err)
		}
		f, err := os.Create(path) //nolint:gosec
		if err != nil {
			return fmt.Errorf("creating archival copy %s: %w", path, err)
		}
		defer f.Close()
		if err := report.Write(f, rec); err != nil {
			return fmt.Errorf("writing archival copy %s: %w", path, err)
		}
		logger.Info("wrote archival copy", "path", path)
	}

	return nil
}
