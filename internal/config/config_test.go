package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/photos/library", "/photos/library"},
		{"single trailing slash", "/photos/library/", "/photos/library"},
		{"multiple trailing slashes", "/photos/library///", "/photos/library"},
		{"root path", "/", "/"},
		{"relative path", "photos", "photos"},
		{"relative with slash", "photos/", "photos"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "sometimes", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Jobs(t *testing.T) {
	tests := []struct {
		name    string
		jobs    int
		wantErr bool
	}{
		{"one worker", 1, false},
		{"many workers", 64, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.Jobs = tt.jobs
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootDir = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when root is empty and CheckOnly is false")
	}

	cfg.RootDir = "/photos"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_CheckOnlySkipsRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.RootDir = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass with empty root when CheckOnly is true, got: %v", err)
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DeleteOriginals {
		t.Error("default DeleteOriginals should be false")
	}
	if cfg.LossyJPEG || cfg.LossyWebP {
		t.Error("default lossy flags should be false")
	}
	if cfg.Jobs < 1 {
		t.Errorf("default Jobs = %d, want >= 1", cfg.Jobs)
	}
	if cfg.EncoderTool != "cjxl" || cfg.DecoderTool != "dwebp" || cfg.ProbeTool != "webpinfo" {
		t.Errorf("unexpected tools: %q %q %q", cfg.EncoderTool, cfg.DecoderTool, cfg.ProbeTool)
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
}

func TestConversionOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeleteOriginals = true
	cfg.LossyWebP = true

	opts := cfg.ConversionOptions()
	if !opts.DeleteOriginals || opts.LossyJPEG || !opts.LossyWebP {
		t.Errorf("ConversionOptions() = %+v", opts)
	}

	// The options are a snapshot; later config mutation must not leak in.
	cfg.LossyJPEG = true
	if opts.LossyJPEG {
		t.Error("ConversionOptions() must return a copy")
	}
}

func TestParseArgs_ConversionFlags(t *testing.T) {
	cfg := DefaultConfig()
	var usage bytes.Buffer
	err := parseArgs(&cfg, "test", []string{"--delete", "--lossyjpg", "--lossywebp", "-j", "3", "/photos/"}, &usage)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !cfg.DeleteOriginals || !cfg.LossyJPEG || !cfg.LossyWebP {
		t.Errorf("conversion flags not applied: %+v", cfg)
	}
	if cfg.Jobs != 3 {
		t.Errorf("Jobs = %d, want 3", cfg.Jobs)
	}
	if cfg.RootDir != "/photos" {
		t.Errorf("RootDir = %q, want /photos", cfg.RootDir)
	}
	if usage.Len() != 0 {
		t.Errorf("unexpected usage output: %s", usage.String())
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseArgs(&cfg, "test", []string{"photos"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.DeleteOriginals || cfg.LossyJPEG || cfg.LossyWebP {
		t.Errorf("flags should default off: %+v", cfg)
	}
}

func TestParseArgs_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing root", []string{"--delete"}},
		{"no args", nil},
		{"two roots", []string{"a", "b"}},
		{"unknown flag", []string{"--lossypng", "photos"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			var usage bytes.Buffer
			err := parseArgs(&cfg, "test", tt.args, &usage)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("err = %v, want ErrUsage", err)
			}
			if !strings.Contains(usage.String(), "jxlmigrate [OPTIONS] <root_dir>") {
				t.Errorf("usage not printed, got: %q", usage.String())
			}
		})
	}
}

func TestParseArgs_CheckWithoutRoot(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseArgs(&cfg, "test", []string{"--check"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !cfg.CheckOnly {
		t.Error("CheckOnly should be set")
	}
}

func TestParseArgs_ColorPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseArgs(&cfg, "test", []string{"--color", "--no-color", "x"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q (--no-color wins)", cfg.ColorMode, ColorNever)
	}
}

func TestParseArgs_FlagsAfterRoot(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRoot string
		wantDel  bool
		wantJobs int
	}{
		{"trailing flag", []string{"photos", "--delete"}, "photos", true, 0},
		{"flags on both sides", []string{"-j", "2", "photos/", "--delete", "-j", "5"}, "photos", true, 5},
		{"double dash", []string{"--delete", "--", "-odd"}, "-odd", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			defaultJobs := cfg.Jobs
			if err := parseArgs(&cfg, "test", tt.args, &bytes.Buffer{}); err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if cfg.RootDir != tt.wantRoot || cfg.DeleteOriginals != tt.wantDel {
				t.Errorf("RootDir=%q Delete=%v, want %q/%v", cfg.RootDir, cfg.DeleteOriginals, tt.wantRoot, tt.wantDel)
			}
			wantJobs := tt.wantJobs
			if wantJobs == 0 {
				wantJobs = defaultJobs
			}
			if cfg.Jobs != wantJobs {
				t.Errorf("Jobs = %d, want %d", cfg.Jobs, wantJobs)
			}
		})
	}
}

func TestParseArgs_UnknownFlagAfterRoot(t *testing.T) {
	cfg := DefaultConfig()
	err := parseArgs(&cfg, "test", []string{"photos", "--lossypng"}, &bytes.Buffer{})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("err = %v, want ErrUsage", err)
	}
}
