package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/jxlmigrate/internal/config"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	if !Enabled() || Red == "" || NC == "" {
		t.Fatal("ColorAlways should enable ANSI codes")
	}

	Configure(config.ColorNever)
	if Enabled() || Red != "" || Green != "" {
		t.Fatal("ColorNever should clear ANSI codes")
	}
}

func TestResolve(t *testing.T) {
	tty := env{stdoutTTY: true, termName: "xterm-256color"}
	tests := []struct {
		name string
		mode config.ColorMode
		env  env
		want bool
	}{
		{"always on a pipe", config.ColorAlways, env{}, true},
		{"never on a tty", config.ColorNever, tty, false},
		{"auto on a tty", config.ColorAuto, tty, true},
		{"auto on a pipe", config.ColorAuto, env{termName: "xterm"}, false},
		{"auto with NO_COLOR", config.ColorAuto, env{stdoutTTY: true, noColor: true}, false},
		{"auto on a dumb terminal", config.ColorAuto, env{stdoutTTY: true, termName: "DUMB"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.mode, tt.env); got != tt.want {
				t.Errorf("resolve(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestStyled_NeedsColorAndTerminal(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	apply(config.ColorAlways, env{})
	if !Enabled() || Styled() {
		t.Error("forced colour into a pipe: want codes but no styled box")
	}

	apply(config.ColorAuto, env{stdoutTTY: true})
	if !Enabled() || !Styled() {
		t.Error("auto on a terminal: want codes and a styled box")
	}

	apply(config.ColorNever, env{stdoutTTY: true})
	if Enabled() || Styled() {
		t.Error("colour off: want neither codes nor a styled box")
	}
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil is not a terminal")
	}
}
