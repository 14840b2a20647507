// Package pretty provides Lipgloss-based styled output for run reports.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the styles used for per-file outcome lines and summaries.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Outcome line parts: "input → output (details)".
	FilePath lipgloss.Style
	Arrow    lipgloss.Style
	Output   lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	paint := func(color string, bold bool) lipgloss.Style {
		style := lipgloss.NewStyle()
		if !colorEnabled {
			return style
		}
		if color != "" {
			style = style.Foreground(lipgloss.Color(color))
		}
		return style.Bold(bold)
	}

	return &Styles{
		Error:        paint("9", true),
		Warning:      paint("11", true),
		FilePath:     paint("", true),
		Arrow:        paint("8", false),
		Output:       paint("14", false),
		SummaryTitle: paint("", true),
		SummaryValue: paint("", false),
		Success:      paint("10", true),
		Failure:      paint("9", true),
		Dim:          paint("8", false),
	}
}

// IsColorEnabled resolves a color mode ("auto", "always" or "never") for
// writer. Auto enables color only for terminals and honors NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
