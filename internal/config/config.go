// Package config resolves the detector's tolerance constants from built-in
// defaults, an optional YAML file, and (in cmd/cmdetect) CLI flags, in that
// increasing order of precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tolerances holds the normative constants of the detection algorithm.
// Values are expressed the way the algorithm consumes them: milliseconds
// for time tolerances, seconds for durations.
type Tolerances struct {
	ToleranceMS        int64     `yaml:"tolerance_ms"`
	StandardUnitSec    float64   `yaml:"standard_unit_sec"`
	MaxStandardUnits   int64     `yaml:"max_standard_units"`
	ShortUnitsSec      []float64 `yaml:"short_units_sec"`
	MinBlockSec        float64   `yaml:"min_block_sec"`
	MaxBlockSec        float64   `yaml:"max_block_sec"`
	MinStandardUnits   int       `yaml:"min_standard_units"`
	StartOffsetMinMS   int64     `yaml:"start_offset_min_ms"`
	StartOffsetMaxMS   int64     `yaml:"start_offset_max_ms"`
}

// Defaults returns the normative constants from the specification.
func Defaults() Tolerances {
	return Tolerances{
		ToleranceMS:      500,
		StandardUnitSec:  15.0,
		MaxStandardUnits: 5,
		ShortUnitsSec:    []float64{5.0, 10.0},
		MinBlockSec:      60.0,
		MaxBlockSec:      360.0,
		MinStandardUnits: 2,
		StartOffsetMinMS: 2000,
		StartOffsetMaxMS: 8000,
	}
}

// Load returns Defaults() overlaid with path's YAML contents, if path is
// non-empty. Only fields present in the file override the default; an
// empty path is not an error and simply returns the defaults.
func Load(path string) (Tolerances, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return t, nil
}
