package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for command output
type Styles struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
}

// NewStyles returns coloured styles, or plain ones when color is false
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Heading: plain, Label: plain, Value: plain, Muted: plain, Success: plain}
	}
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		Muted:   lipgloss.NewStyle().Faint(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
	}
}

// field renders an aligned "Label:  value" line
func (s Styles) field(label, value string) string {
	return "  " + s.Label.Render(padRight(label+":", 15)) + s.Value.Render(value)
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s + " "
}

