package codec

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/backmassage/jxlmigrate/internal/naming"
	"github.com/backmassage/jxlmigrate/internal/probe"
)

// Tools names the three external programs.
type Tools struct {
	Probe   string // webpinfo
	Encoder string // cjxl
	Decoder string // dwebp
}

// Gateway is the synchronous wrapper around the external tools. It is safe
// for concurrent use as long as its Runner and Fs are.
type Gateway struct {
	fs    afero.Fs
	run   Runner
	tools Tools
	trace func(format string, args ...interface{})
}

// NewGateway returns a gateway that launches tools through run and inspects
// outputs through fs.
func NewGateway(fs afero.Fs, run Runner, tools Tools) *Gateway {
	return &Gateway{fs: fs, run: run, tools: tools}
}

// WithTrace sets a printf-style hook that receives every tool command line
// and probe report. Intended for verbose logging; nil disables tracing.
func (g *Gateway) WithTrace(fn func(format string, args ...interface{})) *Gateway {
	g.trace = fn
	return g
}

func (g *Gateway) tracef(format string, args ...interface{}) {
	if g.trace != nil {
		g.trace(format, args...)
	}
}

// ProbeIsLossless reports whether the WebP at path is losslessly encoded.
// A tool that cannot be launched or exits abnormally yields an error wrapping
// probe.ErrProbeFailed; it is never read as "lossy".
func (g *Gateway) ProbeIsLossless(ctx context.Context, path string) (bool, error) {
	r, err := g.Probe(ctx, path)
	if err != nil {
		return false, err
	}
	g.tracef("Probe %s: %s, %s, animated=%v", path, r.Kind(), r.Resolution(), r.Animated)
	return r.Lossless, nil
}

// Probe returns the full parsed webpinfo report for path.
func (g *Gateway) Probe(ctx context.Context, path string) (*probe.Report, error) {
	return probe.Probe(ctx, g.output, g.tools.Probe, path)
}

// output adapts the Runner to probe.OutputFunc.
func (g *Gateway) output(ctx context.Context, name string, args ...string) ([]byte, error) {
	res := g.run.Run(ctx, name, args...)
	if res.Err != nil {
		if s := StderrSummary(res.Stderr); s != "" {
			return res.Stdout, fmt.Errorf("%v: %s", res.Err, s)
		}
		return res.Stdout, res.Err
	}
	return res.Stdout, nil
}

// Encode converts path to JPEG XL next to it (extension replaced by .jxl) at
// distance 0 when lossless, 1 otherwise. It returns the output path, or an
// error wrapping ErrNonZeroExit, ErrMissingOutput, ErrTimestamp or ErrInput.
// On success the output's mtime equals the input's mtime from before the call.
func (g *Gateway) Encode(ctx context.Context, path string, lossless bool) (string, error) {
	out := naming.TargetPath(path)
	return out, g.produce(ctx, path, out, g.tools.Encoder, EncodeArgs(path, out, lossless))
}

// Decode converts a WebP at path to a PNG next to it (extension replaced by
// .png) with the same failure contract and timestamp propagation as Encode.
func (g *Gateway) Decode(ctx context.Context, path string) (string, error) {
	out := naming.DecodedPath(path)
	return out, g.produce(ctx, path, out, g.tools.Decoder, DecodeArgs(path, out))
}

// produce runs tool and verifies that out exists, then copies in's original
// modification time onto it.
func (g *Gateway) produce(ctx context.Context, in, out, tool string, args []string) error {
	info, err := g.fs.Stat(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInput, err)
	}
	mtime := info.ModTime()

	g.tracef("Running: %s %s", tool, strings.Join(args, " "))
	res := g.run.Run(ctx, tool, args...)
	if res.Err != nil {
		return fmt.Errorf("%w: %s %q: %v %s", ErrNonZeroExit, tool, in, res.Err, StderrSummary(res.Stderr))
	}

	if _, err := g.fs.Stat(out); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingOutput, out)
		}
		return fmt.Errorf("%w: %s: %v", ErrMissingOutput, out, err)
	}

	if err := g.fs.Chtimes(out, time.Now(), mtime); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTimestamp, out, err)
	}
	return nil
}
