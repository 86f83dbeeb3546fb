package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/backmassage/jxlmigrate/internal/logging"
	"github.com/backmassage/jxlmigrate/internal/naming"
	"github.com/backmassage/jxlmigrate/internal/planner"
)

// Gateway is the subset of codec.Gateway the converter drives. Encode and
// Decode return the written path, or an error when the tool failed or its
// output is missing.
type Gateway interface {
	ProbeIsLossless(ctx context.Context, path string) (bool, error)
	Encode(ctx context.Context, path string, lossless bool) (string, error)
	Decode(ctx context.Context, path string) (string, error)
}

// Converter runs the per-file state machine. It holds no per-file state and
// is safe for concurrent use by every worker.
type Converter struct {
	fs      afero.Fs
	gw      Gateway
	opts    planner.Options
	dryRun  bool
	verbose bool
	log     *logging.Logger
}

// NewConverter returns a converter that touches files through fsys and runs
// tools through gw. opts is copied and never changes afterwards.
func NewConverter(fsys afero.Fs, gw Gateway, opts planner.Options, dryRun, verbose bool, log *logging.Logger) *Converter {
	return &Converter{fs: fsys, gw: gw, opts: opts, dryRun: dryRun, verbose: verbose, log: log}
}

// Convert classifies src and, for supported sources, produces its .jxl.
//
//	Direct:    encode → [delete source] → Success
//	TwoStage:  probe → decode → encode(intermediate) → remove intermediate → [delete source] → Success
//
// A source is only deleted after its replacement is confirmed on disk. A
// probe failure is returned as a *StageError with no file touched; every
// other failure is reported through the Outcome.
func (c *Converter) Convert(ctx context.Context, src SourceFile) (Outcome, error) {
	plan := planner.Classify(src.Path, c.opts)

	if !plan.Action.Converts() {
		return skipped(src, plan.Action, plan.SkipReason), nil
	}
	if c.dryRun {
		return skipped(src, plan.Action, ReasonDryRun), nil
	}

	if plan.Action == planner.ActionTwoStage {
		return c.convertTwoStage(ctx, src)
	}
	return c.convertDirect(ctx, src, plan.Lossless), nil
}

func (c *Converter) convertDirect(ctx context.Context, src SourceFile, lossless bool) Outcome {
	c.log.Debug(c.verbose, "Encoding (%s): %s", losslessLabel(lossless), src.Path)

	target := naming.TargetPath(src.Path)
	preexisting := c.exists(target)

	out, err := c.gw.Encode(ctx, src.Path, lossless)
	if err != nil {
		c.discardPartial(target, preexisting)
		return failed(src, planner.ActionDirect, ReasonEncodeFailed, err)
	}
	return c.finish(src, planner.ActionDirect, out, ReasonEncodeFailed)
}

func (c *Converter) convertTwoStage(ctx context.Context, src SourceFile) (Outcome, error) {
	sourceLossless, err := c.gw.ProbeIsLossless(ctx, src.Path)
	if err != nil {
		return Outcome{}, &StageError{Stage: StageProbe, Path: src.Path, Err: err}
	}

	// The decoder would overwrite whatever sits at the intermediate path,
	// and the intermediate is deleted afterwards.
	intermediate := naming.DecodedPath(src.Path)
	if c.exists(intermediate) {
		return failed(src, planner.ActionTwoStage, ReasonIntermediateOccupied, nil), nil
	}

	c.log.Debug(c.verbose, "Decoding: %s", src.Path)
	decoded, err := c.gw.Decode(ctx, src.Path)
	if err != nil {
		c.remove(intermediate)
		return failed(src, planner.ActionTwoStage, ReasonDecodeFailed, err), nil
	}

	lossless := planner.ReencodeLossless(sourceLossless, c.opts)
	c.log.Debug(c.verbose, "Re-encoding (%s, source %s): %s",
		losslessLabel(lossless), losslessLabel(sourceLossless), src.Path)

	target := naming.TargetPath(src.Path)
	preexisting := c.exists(target)

	out, err := c.gw.Encode(ctx, decoded, lossless)
	c.remove(decoded)
	if err != nil {
		c.discardPartial(target, preexisting)
		return failed(src, planner.ActionTwoStage, ReasonReencodeFailed, err), nil
	}
	return c.finish(src, planner.ActionTwoStage, out, ReasonReencodeFailed), nil
}

// finish records the confirmed output and, if requested, removes the source.
// A missing output fails with the reason of the stage that should have
// written it.
func (c *Converter) finish(src SourceFile, action planner.Action, out, reason string) Outcome {
	info, err := c.fs.Stat(out)
	if err != nil {
		return failed(src, action, reason, err)
	}

	if c.opts.DeleteOriginals {
		if err := c.fs.Remove(src.Path); err != nil {
			c.log.Warn("Converted but could not remove original %s: %v", filepath.Base(src.Path), err)
		}
	}
	return success(src, action, out, info.Size())
}

func (c *Converter) exists(path string) bool {
	ok, err := afero.Exists(c.fs, path)
	return ok || err != nil
}

// discardPartial removes a target left behind by a failed encoder, unless a
// file already sat at that path before the attempt.
func (c *Converter) discardPartial(target string, preexisting bool) {
	if !preexisting {
		c.remove(target)
	}
}

func (c *Converter) remove(path string) {
	if err := c.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		c.log.Warn("Could not remove %s: %v", path, err)
	}
}

func losslessLabel(lossless bool) string {
	if lossless {
		return "lossless"
	}
	return "lossy"
}
