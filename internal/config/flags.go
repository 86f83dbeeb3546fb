package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into conversion, execution, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// ErrUsage is returned when the command line is malformed. The usage text has
// already been written by the time the caller sees it.
var ErrUsage = errors.New("invalid usage")

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional arg).
func ParseFlags(cfg *Config, version string) error {
	return parseArgs(cfg, version, os.Args[1:], os.Stderr)
}

// parseArgs is the testable core of ParseFlags. Usage is written to w.
func parseArgs(cfg *Config, version string, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("jxlmigrate", flag.ContinueOnError)
	// Parse errors are reported below, once, together with the usage text.
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var negated negatedFlags

	defineConversionFlags(fs, cfg)
	defineExecutionFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		fmt.Fprintf(w, "jxlmigrate: %v\n\n", err)
		printUsage(w, version)
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(w, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "jxlmigrate v"+version)
		os.Exit(0)
	}

	if err := parsePositionalArgs(positional, cfg); err != nil {
		printUsage(w, version)
		return err
	}
	return nil
}

// parseInterspersed parses flags wherever they appear, so that
// "jxlmigrate photos --delete" works. flag.Parse stops at the first
// non-flag; each stop moves that argument to the positional list and parsing
// resumes after it. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineConversionFlags registers --delete, --lossyjpg, --lossywebp.
func defineConversionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DeleteOriginals, "delete", false, "Remove originals after successful conversion")
	fs.BoolVar(&cfg.LossyJPEG, "lossyjpg", false, "Encode JPEG sources lossily")
	fs.BoolVar(&cfg.LossyWebP, "lossywebp", false, "Re-encode lossless WebP sources lossily")
}

// defineExecutionFlags registers -j/--jobs and -d/--dry-run.
func defineExecutionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Number of parallel workers")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "Same as --jobs")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Classify only; do not convert")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run tool diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets RootDir from the single positional arg when not in CheckOnly mode.
func parsePositionalArgs(args []string, cfg *Config) error {
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: need exactly one root_dir", ErrUsage)
	}
	cfg.RootDir = NormalizeDirArg(args[0])
	return nil
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 24 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "jxlmigrate v" + version + " - convert an image tree to JPEG XL"},
		{"", ""},
		{"  jxlmigrate [OPTIONS] <root_dir> [OPTIONS]", ""},
		{"", ""},
		{"", "Options may come before or after root_dir; use -- before a root_dir starting with '-'."},
		{"", ""},
		{"Conversion", ""},
		{"  --delete", "Remove originals after successful conversion"},
		{"  --lossyjpg", "Encode JPEG sources lossily (default: lossless)"},
		{"  --lossywebp", "Re-encode lossless WebP lossily (lossy WebP is always lossy)"},
		{"", ""},
		{"Execution", ""},
		{"  -j, --jobs <n>", "Parallel workers (default: CPU count)"},
		{"  -d, --dry-run", "Classify and total sizes only; do not convert"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Tool diagnostics (cjxl, dwebp, webpinfo)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
