// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. The conversion-relevant subset is frozen into a planner.Options
// value before any worker starts.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/backmassage/jxlmigrate/internal/planner"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it. Nothing mutates it once the pipeline has started.
type Config struct {
	// Paths (set from the positional arg).
	RootDir string

	// Conversion policy.
	DeleteOriginals bool // --delete: remove sources once their .jxl is confirmed.
	LossyJPEG       bool // --lossyjpg: encode JPEG sources at distance 1.
	LossyWebP       bool // --lossywebp: re-encode lossless WebP sources at distance 1.

	// Execution.
	Jobs   int  // Default: runtime.NumCPU().
	DryRun bool // Classify and total sizes only; no tool is invoked.

	// External tools (not user-configurable).
	ProbeTool   string // Fixed: "webpinfo".
	EncoderTool string // Fixed: "cjxl".
	DecoderTool string // Fixed: "dwebp".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with every default applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		DeleteOriginals: false,
		LossyJPEG:       false,
		LossyWebP:       false,
		Jobs:            runtime.NumCPU(),
		DryRun:          false,
		ProbeTool:       "webpinfo",
		EncoderTool:     "cjxl",
		DecoderTool:     "dwebp",
		Verbose:         false,
		ColorMode:       ColorAuto,
		CheckOnly:       false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and numeric fields. When not in CheckOnly mode it also
// requires the root directory.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}

	if c.CheckOnly {
		return nil
	}
	if c.RootDir == "" {
		return errors.New("need exactly one root_dir")
	}
	return nil
}

// ConversionOptions returns the immutable per-run conversion policy handed to
// every pipeline invocation.
func (c *Config) ConversionOptions() planner.Options {
	return planner.Options{
		DeleteOriginals: c.DeleteOriginals,
		LossyJPEG:       c.LossyJPEG,
		LossyWebP:       c.LossyWebP,
	}
}
