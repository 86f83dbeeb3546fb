// Command jxlmigrate converts every supported image under a directory tree to
// JPEG XL.
//
// It parses flags, validates configuration and the root path, and either runs
// tool diagnostics (--check) or the conversion pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/jxlmigrate/internal/check"
	"github.com/backmassage/jxlmigrate/internal/config"
	"github.com/backmassage/jxlmigrate/internal/display"
	"github.com/backmassage/jxlmigrate/internal/logging"
	"github.com/backmassage/jxlmigrate/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		// Usage has already been printed.
		if !errors.Is(err, config.ErrUsage) {
			fmt.Fprintf(os.Stderr, "jxlmigrate: %v\n", err)
		}
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "jxlmigrate: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jxlmigrate: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if check.RunCheck(&cfg, log) > 0 {
			return 1
		}
		return 0
	}

	root, err := resolveRoot(cfg.RootDir)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	cfg.RootDir = root

	log.Info("=== jxlmigrate v%s (%s) ===", version, commit)
	log.Info("Root: %s", cfg.RootDir)
	log.Debug(cfg.Verbose, "Run ID: %s", log.RunID())
	if cfg.DryRun {
		log.Warn("DRY RUN: no tool will run and no file will be written")
	}

	// Phase 3: Signal handling. Cancelling stops new files from starting;
	// tools already running finish so no half-written image is left behind.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing files in progress…")
		cancel()
	}()

	// Phase 4: Run pipeline (discover → tool check → claim → convert → summarize).
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		return 1
	}
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// resolveRoot returns the absolute, link-free path of dir and checks that it
// is an existing directory. Per-file log lines are relative to this path.
func resolveRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root not found: %s", dir)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root is not a directory: %s", dir)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", dir, err)
	}
	return resolved, nil
}
