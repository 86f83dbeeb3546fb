package display

import (
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical photo 4.2 MiB", 4404019, "4.2 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatBytesWithSign(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"positive", 1024 * 1024, "+ 1.0 MiB"},
		{"negative", -1024 * 1024, "- 1.0 MiB"},
		{"zero", 0, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytesWithSign(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytesWithSign(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		ok   bool
		want string
	}{
		{"reduction", 40, true, "40.00%"},
		{"growth", -12.5, true, "-12.50%"},
		{"no data", 0, false, "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPercent(tt.pct, tt.ok)
			if got != tt.want {
				t.Errorf("FormatPercent(%v, %v) = %q, want %q", tt.pct, tt.ok, got, tt.want)
			}
		})
	}
}

func TestRenderSummary_Plain(t *testing.T) {
	out := RenderSummary("Summary", []SummaryRow{
		{Label: "Before", Value: "4.9 KiB"},
		{Label: "Reduction", Value: "40.00%", Tone: ToneGood},
	}, false)

	want := "Summary\n  Before     4.9 KiB\n  Reduction  40.00%"
	if out != want {
		t.Errorf("RenderSummary plain =\n%q\nwant\n%q", out, want)
	}
}

func TestRenderSummary_StyledKeepsContent(t *testing.T) {
	out := RenderSummary("Summary", []SummaryRow{
		{Label: "Failed", Value: "2", Tone: ToneBad},
	}, true)
	if !strings.Contains(out, "Summary") || !strings.Contains(out, "Failed") || !strings.Contains(out, "2") {
		t.Errorf("styled summary lost content: %q", out)
	}
}
