package codec

import (
	"errors"
	"strings"
)

// Failure kinds returned (wrapped) by Encode and Decode. Check with errors.Is.
var (
	ErrNonZeroExit   = errors.New("tool exited abnormally")
	ErrMissingOutput = errors.New("tool reported success but output is missing")
	ErrTimestamp     = errors.New("cannot copy modification time to output")
	ErrInput         = errors.New("cannot stat input")
)

// StderrSummary returns the last non-empty line of a tool's stderr, which is
// where cjxl and dwebp put the actual error, or "" when there is none.
func StderrSummary(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
