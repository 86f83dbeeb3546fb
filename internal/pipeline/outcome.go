package pipeline

import (
	"fmt"
	"time"

	"github.com/backmassage/jxlmigrate/internal/planner"
)

// SourceFile is the discovery-time snapshot of one file. It is never mutated.
type SourceFile struct {
	Path    string
	Ext     string // lowercase, without dot; "" when the name has none
	Size    int64
	ModTime time.Time
}

// Status is the terminal state of one file.
type Status int

const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Failure and skip reasons. Skips for already-converted and unsupported files
// use the planner's reasons.
const (
	ReasonEncodeFailed         = "encode failed"
	ReasonDecodeFailed         = "decode failed"
	ReasonReencodeFailed       = "reencode failed"
	ReasonProbeError           = "probe error"
	ReasonInternalError        = "internal error"
	ReasonIntermediateOccupied = "intermediate path occupied"
	ReasonDryRun               = "dry run"
	ReasonInterrupted          = "interrupted"
)

// Outcome is the result of processing one SourceFile. Exactly one is produced
// per discovered file.
type Outcome struct {
	Source SourceFile
	Action planner.Action
	Status Status
	Reason string // empty on success

	// Set on success only.
	OutputPath string
	OutputSize int64

	// Err is the underlying cause of a failure, kept for logging.
	Err error
}

func success(src SourceFile, action planner.Action, out string, size int64) Outcome {
	return Outcome{Source: src, Action: action, Status: StatusSuccess, OutputPath: out, OutputSize: size}
}

func skipped(src SourceFile, action planner.Action, reason string) Outcome {
	return Outcome{Source: src, Action: action, Status: StatusSkipped, Reason: reason}
}

func failed(src SourceFile, action planner.Action, reason string, err error) Outcome {
	return Outcome{Source: src, Action: action, Status: StatusFailed, Reason: reason, Err: err}
}

// Stage identifies the step of the per-file state machine that raised an error.
type Stage int

const (
	StageProbe Stage = iota
	StageDecode
	StageEncode
)

func (s Stage) String() string {
	switch s {
	case StageProbe:
		return "probe"
	case StageDecode:
		return "decode"
	default:
		return "encode"
	}
}

// StageError is returned by Converter.Convert for errors that escape the
// state machine rather than mapping to a Failed outcome. The pool turns it
// into a failure at the task boundary.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
