// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for cjxl, dwebp, and webpinfo.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/jxlmigrate/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrCjxlNotFound     = errors.New("cjxl not found on PATH")
	ErrDwebpNotFound    = errors.New("dwebp not found on PATH")
	ErrWebpinfoNotFound = errors.New("webpinfo not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// lookPath and versionOutput are swapped out in tests.
var (
	lookPath      = exec.LookPath
	versionOutput = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).CombinedOutput()
	}
)

// tool describes one external dependency and how to ask it for a version.
type tool struct {
	name        string
	versionArgs []string
	missing     error
	purpose     string
	webpOnly    bool // only needed to convert .webp sources
}

func tools(cfg *config.Config) []tool {
	return []tool{
		{cfg.EncoderTool, []string{"--version"}, ErrCjxlNotFound, "JPEG XL encoder", false},
		{cfg.DecoderTool, []string{"-version"}, ErrDwebpNotFound, "WebP decoder", true},
		{cfg.ProbeTool, []string{"-version"}, ErrWebpinfoNotFound, "WebP inspector", true},
	}
}

// RunCheck runs the interactive --check flow: prints availability and the
// version line of each tool. Informational only; it does not stop on failure.
// It returns the number of tools that were not found.
func RunCheck(cfg *config.Config, log Logger) int {
	log.Info("=== System Check ===")

	missing := 0
	for _, t := range tools(cfg) {
		if !checkTool(t, log) {
			missing++
		}
	}
	if missing == 0 {
		log.Success("All tools available")
	}
	return missing
}

// checkTool verifies t is on PATH and logs its version string.
func checkTool(t tool, log Logger) bool {
	path, err := lookPath(t.name)
	if err != nil {
		log.Error("%s not found (%s)", t.name, t.purpose)
		return false
	}
	log.Debug(true, "%s: %s", t.name, path)

	out, err := versionOutput(t.name, t.versionArgs...)
	if err != nil && len(out) == 0 {
		log.Warn("%s found but version query failed: %v", t.name, err)
		return true
	}
	log.Success("%s: %s", t.name, firstLine(string(out)))
	return true
}

// CheckDeps is the pre-conversion validation: the encoder must be on PATH,
// and the WebP decoder and inspector too when needWebP is set. Returns a
// sentinel error for the first missing tool.
func CheckDeps(cfg *config.Config, needWebP bool) error {
	for _, t := range tools(cfg) {
		if t.webpOnly && !needWebP {
			continue
		}
		if _, err := lookPath(t.name); err != nil {
			return t.missing
		}
	}
	return nil
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return "(no version output)"
}
