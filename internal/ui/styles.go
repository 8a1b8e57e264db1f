// Package ui holds the terminal surfaces of SuiteDeploy: the notifier and
// status line used by the CLI, the verify report renderer and the
// interactive browser.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Primary     = lipgloss.Color("#101F38")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#8a8a8a")
	Border      = lipgloss.Color("#2a3850")
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Styles holds all the styled components.
type Styles struct {
	Title     lipgloss.Style
	Pane      lipgloss.Style
	PaneFocus lipgloss.Style
	PaneTitle lipgloss.Style
	Type      lipgloss.Style
	Item      lipgloss.Style
	Deployed  lipgloss.Style
	Selected  lipgloss.Style
	Status    lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Spinner   lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		PaneFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1),
		PaneTitle: lipgloss.NewStyle().Bold(true),
		Type:      lipgloss.NewStyle().Foreground(Info),
		Item:      lipgloss.NewStyle(),
		Deployed:  lipgloss.NewStyle().Foreground(Success),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Status:    lipgloss.NewStyle().Bold(true),
		Notice:    lipgloss.NewStyle().Foreground(Info),
		Error:     lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(Muted),
		Spinner:   lipgloss.NewStyle().Foreground(Warning),
	}
}

// PlainStyles renders without any decoration; used when NO_COLOR is set.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Title: s, Pane: s, PaneFocus: s, PaneTitle: s, Type: s, Item: s,
		Deployed: s, Selected: s.Reverse(true), Status: s, Notice: s,
		Error: s, Muted: s, Spinner: s,
	}
}

// DetectStyles honours NO_COLOR.
func DetectStyles() Styles {
	if os.Getenv("NO_COLOR") != "" {
		return PlainStyles()
	}
	return DefaultStyles()
}
