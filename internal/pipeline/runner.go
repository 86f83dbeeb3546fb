package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/backmassage/jxlmigrate/internal/check"
	"github.com/backmassage/jxlmigrate/internal/codec"
	"github.com/backmassage/jxlmigrate/internal/config"
	"github.com/backmassage/jxlmigrate/internal/display"
	"github.com/backmassage/jxlmigrate/internal/logging"
	"github.com/backmassage/jxlmigrate/internal/planner"
	"github.com/backmassage/jxlmigrate/internal/term"
)

// Run is the top-level batch entry point. It discovers files under
// cfg.RootDir, checks that the tools those files need are installed,
// converts them on cfg.Jobs workers, logs the summary, and returns the
// aggregate stats. An error means the walk of the root failed or a tool is
// missing; per-file problems are reported in RunStats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	fsys := afero.NewOsFs()
	gw := codec.NewGateway(fsys, codec.ExecRunner{}, codec.Tools{
		Probe:   cfg.ProbeTool,
		Encoder: cfg.EncoderTool,
		Decoder: cfg.DecoderTool,
	}).WithTrace(func(format string, args ...interface{}) {
		log.Debug(cfg.Verbose, format, args...)
	})
	deps := func(needWebP bool) error { return check.CheckDeps(cfg, needWebP) }
	return runWith(ctx, cfg, log, fsys, gw, deps)
}

// runWith is Run with the filesystem, tool gateway and tool check injected.
// A nil deps skips the tool check.
func runWith(ctx context.Context, cfg *config.Config, log *logging.Logger, fsys afero.Fs, gw Gateway,
	deps func(needWebP bool) error) (RunStats, error) {
	files, err := Discover(fsys, cfg.RootDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return RunStats{}, err
	}

	// A dry run never calls the tools.
	if deps != nil && !cfg.DryRun {
		if err := deps(needsWebPTools(files)); err != nil {
			log.Error("%v", err)
			log.Error("Run with --check for details")
			return RunStats{}, err
		}
	}

	opts := cfg.ConversionOptions()
	logBatchHeader(cfg, log, files, opts)

	conflicts := claimOutputs(files, opts)
	conv := NewConverter(fsys, gw, opts, cfg.DryRun, cfg.Verbose, log)

	task := func(ctx context.Context, src SourceFile) (Outcome, error) {
		if o, ok := conflicts[src.Path]; ok {
			return o, nil
		}
		return conv.Convert(ctx, src)
	}

	done := 0
	outcomes := RunPool(ctx, files, cfg.Jobs, task, func(o Outcome) {
		done++
		logOutcome(cfg, log, o, done, len(files))
	})

	stats := Aggregate(outcomes)
	logSummary(cfg, log, &stats)
	return stats, nil
}

// needsWebPTools reports whether any file takes the decode path, which is
// the only one that runs the WebP decoder and inspector.
func needsWebPTools(files []SourceFile) bool {
	for _, f := range files {
		if planner.Classify(f.Path, planner.Options{}).Action == planner.ActionTwoStage {
			return true
		}
	}
	return false
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, files []SourceFile, opts planner.Options) {
	supported := 0
	for _, f := range files {
		if planner.IsSupported(f.Ext) {
			supported++
		}
	}
	log.Info("Found %d files (%d convertible)", len(files), supported)
	log.Info("Workers: %d", cfg.Jobs)

	jpegMode := "lossless"
	if opts.LossyJPEG {
		jpegMode = "lossy (distance 1)"
	}
	webpMode := "lossless sources stay lossless"
	if opts.LossyWebP {
		webpMode = "always lossy (distance 1)"
	}
	log.Info("JPEG: %s", jpegMode)
	log.Info("WebP: %s", webpMode)
	if opts.DeleteOriginals {
		log.Info("Originals: removed after successful conversion")
	} else {
		log.Info("Originals: kept")
	}
	fmt.Fprintln(os.Stdout)
}

// logOutcome reports one finished file. Called from the collector only.
func logOutcome(cfg *config.Config, log *logging.Logger, o Outcome, done, total int) {
	name := relPath(cfg.RootDir, o.Source.Path)
	switch o.Status {
	case StatusSuccess:
		ratio := int64(100)
		if o.Source.Size > 0 {
			ratio = o.OutputSize * 100 / o.Source.Size
		}
		log.Success("[%d/%d] Converted: %s -> %s (%d%% of original)",
			done, total, name, filepath.Base(o.OutputPath), ratio)
	case StatusFailed:
		log.Error("[%d/%d] Failed (%s): %s", done, total, o.Reason, name)
		if o.Err != nil {
			log.Error("  %v", o.Err)
		}
	case StatusSkipped:
		switch o.Reason {
		case ReasonDryRun:
			log.Info("[%d/%d] [DRY] Would convert (%s): %s", done, total, o.Action, name)
		case ReasonInterrupted:
			log.Warn("[%d/%d] Not started (interrupted): %s", done, total, name)
		case planner.ReasonUnsupported:
			log.Warn("[%d/%d] Not supported: %s", done, total, name)
		default:
			log.Debug(cfg.Verbose, "[%d/%d] Skip (%s): %s", done, total, o.Reason, name)
		}
	}
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d skipped, %d unsupported, %d failed",
		stats.Converted, stats.Skipped, stats.Unsupported, stats.Failed)

	rows := summaryRows(cfg, stats)
	plain := display.RenderSummary("Summary report", rows, false)
	styled := ""
	if term.Styled() {
		styled = display.RenderSummary("Summary report", rows, true)
	}
	log.Block(styled, plain)

	for _, f := range stats.Failures {
		log.Error("  failed: %s (%s)", f.Source.Path, f.Reason)
	}
}

func summaryRows(cfg *config.Config, stats *RunStats) []display.SummaryRow {
	failedTone := display.ToneNormal
	if stats.Failed > 0 {
		failedTone = display.ToneBad
	}

	rows := []display.SummaryRow{
		{Label: "Files found", Value: fmt.Sprint(stats.Total)},
		{Label: "Converted", Value: fmt.Sprint(stats.Converted), Tone: display.ToneGood},
		{Label: "Skipped", Value: fmt.Sprint(stats.Skipped)},
		{Label: "Unsupported", Value: fmt.Sprint(stats.Unsupported)},
		{Label: "Failed", Value: fmt.Sprint(stats.Failed), Tone: failedTone},
		{Label: "Size before", Value: display.FormatBytes(stats.TotalBefore)},
	}

	if cfg.DryRun {
		return append(rows, display.SummaryRow{Label: "Reduction", Value: "n/a (dry run)"})
	}

	pct, ok := stats.Reduction()
	savedTone := display.ToneGood
	if stats.SpaceSaved() < 0 {
		savedTone = display.ToneBad
	}
	return append(rows,
		display.SummaryRow{Label: "Size after", Value: display.FormatBytes(stats.TotalAfter)},
		display.SummaryRow{Label: "Size change", Value: display.FormatBytesWithSign(-stats.SpaceSaved()), Tone: savedTone},
		display.SummaryRow{Label: "Reduction", Value: display.FormatPercent(pct, ok), Tone: savedTone},
	)
}
