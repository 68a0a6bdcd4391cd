package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors and styles for everything ksecret draws on the
// terminal: the error line and the interactive key picker
type Theme struct {
	// Core colors
	Primary lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// Component styles
	ErrorPrefix lipgloss.Style
	Title       lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Help        lipgloss.Style
}

// NewTheme returns the default theme rendered for w. Styles degrade to
// plain text when w is not a color terminal.
func NewTheme(w io.Writer) *Theme {
	r := lipgloss.NewRenderer(w)
	t := &Theme{}

	t.Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"}
	t.Muted = lipgloss.AdaptiveColor{Light: "243", Dark: "243"}
	t.Error = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}

	t.ErrorPrefix = r.NewStyle().
		Foreground(t.Error).
		Bold(true)

	t.Title = r.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Item = r.NewStyle().
		PaddingLeft(2)

	t.Selected = r.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.Help = r.NewStyle().
		Foreground(t.Muted)

	return t
}
