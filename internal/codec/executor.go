package codec

import (
	"bytes"
	"context"
	"os/exec"
)

// ExecResult holds the outcome of a single tool invocation.
type ExecResult struct {
	Stdout []byte
	Stderr string
	Err    error
}

// Runner executes an external program to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ExecResult
}

// ExecRunner runs real processes via os/exec, capturing stdout and stderr.
//
// A started tool always runs to completion: ctx is only checked before launch,
// so an interrupt never leaves a half-written image behind. There is no
// timeout; a hung tool blocks its worker.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ExecResult {
	if err := ctx.Err(); err != nil {
		return ExecResult{Err: err}
	}

	cmd := exec.Command(name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return ExecResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
