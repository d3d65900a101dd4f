package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/maximeborges/bunyan-view/pkg/record"
)

// Theme defines the colors used when rendering to a terminal. Styles wrap
// complete spans only; with no theme the output bytes are identical.
type Theme struct {
	Trace lipgloss.Style
	Debug lipgloss.Style
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Fatal lipgloss.Style
	Other lipgloss.Style

	Time    lipgloss.Style
	Name    lipgloss.Style
	Source  lipgloss.Style
	Divider lipgloss.Style
}

// DefaultTheme returns the default bunyan color scheme.
func DefaultTheme() Theme {
	white := lipgloss.Color("#F9FAFB")
	cyan := lipgloss.Color("#06B6D4")
	yellow := lipgloss.Color("#EAB308")
	red := lipgloss.Color("#EF4444")
	magenta := lipgloss.Color("#D946EF")
	muted := lipgloss.Color("#6B7280")

	return Theme{
		Trace: lipgloss.NewStyle().Foreground(muted),
		Debug: lipgloss.NewStyle().Foreground(white),
		Info:  lipgloss.NewStyle().Foreground(cyan),
		Warn:  lipgloss.NewStyle().Foreground(yellow),
		Error: lipgloss.NewStyle().Foreground(red),
		Fatal: lipgloss.NewStyle().Foreground(magenta).Bold(true),
		Other: lipgloss.NewStyle().Foreground(muted),

		Time:    lipgloss.NewStyle().Foreground(muted),
		Name:    lipgloss.NewStyle().Foreground(cyan),
		Source:  lipgloss.NewStyle().Foreground(muted),
		Divider: lipgloss.NewStyle().Foreground(muted),
	}
}

// Level picks the style for a severity; unknown codes share the muted style.
func (t Theme) Level(l record.Level) lipgloss.Style {
	switch l {
	case record.Trace:
		return t.Trace
	case record.Debug:
		return t.Debug
	case record.Info:
		return t.Info
	case record.Warn:
		return t.Warn
	case record.Error:
		return t.Error
	case record.Fatal:
		return t.Fatal
	default:
		return t.Other
	}
}
