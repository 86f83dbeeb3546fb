package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "63", Dark: "63"}).
			Padding(0, 2)

	summaryTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	summaryLabel = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	summaryGood = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "10"}).
			Bold(true)

	summaryBad = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
			Bold(true)
)

// Tone selects the emphasis of a summary value.
type Tone int

const (
	ToneNormal Tone = iota
	ToneGood
	ToneBad
)

// SummaryRow is one label/value line of the end-of-run report.
type SummaryRow struct {
	Label string
	Value string
	Tone  Tone
}

// RenderSummary lays rows out as aligned "label  value" lines. With styled
// set the block is framed and colored via lipgloss; otherwise it is plain text
// suitable for logs and pipes.
func RenderSummary(title string, rows []SummaryRow, styled bool) string {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}

	var b strings.Builder
	if styled {
		b.WriteString(summaryTitle.Render(title))
	} else {
		b.WriteString(title)
	}
	for _, r := range rows {
		b.WriteString("\n")
		label := fmt.Sprintf("%-*s", width, r.Label)
		if !styled {
			b.WriteString("  " + label + "  " + r.Value)
			continue
		}
		value := r.Value
		switch r.Tone {
		case ToneGood:
			value = summaryGood.Render(value)
		case ToneBad:
			value = summaryBad.Render(value)
		}
		b.WriteString(summaryLabel.Render(label) + "  " + value)
	}

	if !styled {
		return b.String()
	}
	return summaryBox.Render(b.String())
}
