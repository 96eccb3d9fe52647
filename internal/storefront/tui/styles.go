package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lk2023060901/smartshop/internal/storefront"
)

var (
	Primary     = lipgloss.Color("#101F38") // Dark Blue
	Accent      = lipgloss.Color("#8BC34A") // Lime Green
	Muted       = lipgloss.Color("#8a93a3")
	Destructive = lipgloss.Color("#e53935") // Red
	Info        = lipgloss.Color("#2196F3") // Blue
)

// Styles groups every style the storefront renders with
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Muted    lipgloss.Style
	Card     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Price    lipgloss.Style
	Footer   lipgloss.Style
	Table    lipgloss.Style
	Cell     lipgloss.Style

	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Label:    lipgloss.NewStyle().Foreground(Muted).Width(12),
		Focused:  lipgloss.NewStyle().Foreground(Accent).Bold(true).Width(12),
		Muted:    lipgloss.NewStyle().Foreground(Muted),
		Card:     lipgloss.NewStyle().PaddingLeft(2),
		Cursor:   lipgloss.NewStyle().Foreground(Accent).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(Accent),
		Price:    lipgloss.NewStyle().Bold(true),
		Footer:   lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
		Table: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().Width(28).PaddingRight(2),

		Info:    lipgloss.NewStyle().Foreground(Info),
		Success: lipgloss.NewStyle().Foreground(Accent),
		Error:   lipgloss.NewStyle().Foreground(Destructive).Bold(true),
	}
}

// Status picks the style for a status kind
func (s Styles) Status(kind storefront.StatusKind) lipgloss.Style {
	switch kind {
	case storefront.StatusSuccess:
		return s.Success
	case storefront.StatusError:
		return s.Error
	default:
		return s.Info
	}
}
