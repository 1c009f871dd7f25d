package render

import "github.com/charmbracelet/lipgloss"

// Styles colours the parts of the display
type Styles struct {
	Filled    lipgloss.Style
	Empty     lipgloss.Style
	Caption   lipgloss.Style
	Milestone lipgloss.Style
}

// NewStyles returns the coloured styles, or no-op styles when color is false
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Filled: plain, Empty: plain, Caption: plain, Milestone: plain}
	}
	return Styles{
		Filled:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Caption:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F7DC6F")),
		Milestone: lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
	}
}
