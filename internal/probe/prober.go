package probe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrProbeFailed is wrapped by every error from [Probe]: the tool could not be
// started or exited abnormally. Callers must not treat it as "lossy".
var ErrProbeFailed = errors.New("webp probe failed")

// OutputFunc runs name with args and returns its standard output. A non-nil
// error means the process could not be started or exited non-zero.
type OutputFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Probe runs tool (webpinfo) against path and parses its report.
func Probe(ctx context.Context, run OutputFunc, tool, path string) (*Report, error) {
	out, err := run(ctx, tool, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrProbeFailed, tool, path, err)
	}
	return ParseReport(string(out)), nil
}

// ParseReport converts raw webpinfo text into a Report.
// Exported for testing without a real webpinfo binary.
func ParseReport(text string) *Report {
	r := &Report{Lossless: strings.Contains(text, LosslessMarker)}

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Format":
			if r.Format == "" {
				r.Format = value
			}
		case "Width":
			if r.Width == 0 {
				r.Width = parseInt(value)
			}
		case "Height":
			if r.Height == 0 {
				r.Height = parseInt(value)
			}
		case "Animation":
			if value == "1" {
				r.Animated = true
			}
		}
	}
	return r
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
