// Package term holds the console presentation state shared by the logger and
// the summary renderer: the ANSI colour codes and whether boxed, styled
// output may be drawn.
//
// Configure runs once at startup. With colour off every code is the empty
// string, so callers concatenate them unconditionally.
package term

import (
	"os"
	"strings"

	xterm "golang.org/x/term"

	"github.com/backmassage/jxlmigrate/internal/config"
)

// ANSI colour codes used in log prefixes. Empty when colour is off.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = "" // reset
)

// palette pairs each colour variable with its bold bright SGR sequence.
var palette = []struct {
	dst  *string
	code string
}{
	{&Red, "\033[1;91m"},
	{&Green, "\033[1;92m"},
	{&Yellow, "\033[1;93m"},
	{&Blue, "\033[1;94m"},
	{&Cyan, "\033[1;96m"},
	{&Magenta, "\033[1;95m"},
	{&NC, "\033[0m"},
}

// styled is set when the summary may be drawn as a lipgloss box. --color
// forces colour codes into piped output, but a box drawn into a file or a
// pipe is only noise, so boxes also need a real terminal.
var styled bool

// env is the process environment seen by resolve; replaced in tests.
type env struct {
	stdoutTTY bool
	noColor   bool
	termName  string
}

func processEnv() env {
	return env{
		stdoutTTY: IsTerminal(os.Stdout),
		noColor:   os.Getenv("NO_COLOR") != "",
		termName:  os.Getenv("TERM"),
	}
}

// Configure applies mode to the colour codes and the styled-output switch.
func Configure(mode config.ColorMode) {
	apply(mode, processEnv())
}

func apply(mode config.ColorMode, e env) {
	on := resolve(mode, e)
	for _, p := range palette {
		if on {
			*p.dst = p.code
		} else {
			*p.dst = ""
		}
	}
	styled = on && e.stdoutTTY
}

// Enabled reports whether colour codes are active.
func Enabled() bool { return NC != "" }

// Styled reports whether the run summary should be drawn as a styled box
// rather than plain aligned text.
func Styled() bool { return styled }

// resolve decides colour for mode. Auto honours NO_COLOR
// (https://no-color.org) and TERM=dumb, and needs stdout to be a terminal.
func resolve(mode config.ColorMode, e env) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return e.stdoutTTY && !e.noColor && !strings.EqualFold(e.termName, "dumb")
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}
