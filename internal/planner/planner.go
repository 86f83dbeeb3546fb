package planner

import (
	"path/filepath"
	"strings"
)

// TargetExt is the target codec's extension, without dot.
const TargetExt = "jxl"

// Skip reasons reported for files that are never handed to a tool.
const (
	ReasonAlreadyConverted = "already converted"
	ReasonUnsupported      = "unsupported extension"
)

// sourceActions maps every supported source extension (lowercase, no dot) to
// its conversion path.
var sourceActions = map[string]Action{
	"jpg":  ActionDirect,
	"jpeg": ActionDirect,
	"png":  ActionDirect,
	"apng": ActionDirect,
	"gif":  ActionDirect,
	"webp": ActionTwoStage,
}

// Ext returns the lowercase text after the final "." of name's base, or ""
// when there is none.
func Ext(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// IsSupported reports whether ext (any case, no dot) is a convertible source.
func IsSupported(ext string) bool {
	_, ok := sourceActions[strings.ToLower(ext)]
	return ok
}

// IsJPEG reports whether ext (any case, no dot) is a JPEG extension.
func IsJPEG(ext string) bool {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return true
	}
	return false
}

// Classify maps a filename to its conversion plan. It has no side effects.
//
//	jpg, jpeg      → Direct, lossless unless opts.LossyJPEG
//	png, apng, gif → Direct, always lossless
//	webp           → TwoStage
//	jxl            → AlreadyTarget
//	anything else  → Unsupported
func Classify(name string, opts Options) Plan {
	ext := Ext(name)

	if ext == TargetExt {
		return Plan{Action: ActionAlreadyTarget, SkipReason: ReasonAlreadyConverted}
	}

	action, ok := sourceActions[ext]
	if !ok {
		return Plan{Action: ActionUnsupported, SkipReason: ReasonUnsupported}
	}

	plan := Plan{Action: action}
	if action == ActionDirect {
		plan.Lossless = !(IsJPEG(ext) && opts.LossyJPEG)
	}
	return plan
}

// ReencodeLossless decides the encoder mode for the second stage of a WebP
// conversion. A lossy source is always re-encoded lossily; a lossless source
// stays lossless unless opts.LossyWebP is set.
func ReencodeLossless(sourceLossless bool, opts Options) bool {
	return sourceLossless && !opts.LossyWebP
}
