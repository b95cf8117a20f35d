// Package styles holds the lipgloss palette shared by the report TUI views.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette. Success also frames answers and Error marks
// failed questions, so the two must stay distinguishable.
type Theme struct {
	Primary   lipgloss.Color // titles, spinner, focused input
	Secondary lipgloss.Color // field labels and subtitles
	Text      lipgloss.Color
	Muted     lipgloss.Color // hints, sources, timestamps
	Success   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color // unfocused inputs and panels
	Bar       lipgloss.Color // status bar background
}

// DefaultTheme is a dark palette with a teal accent.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#14B8A6"),
		Secondary: lipgloss.Color("#60A5FA"),
		Text:      lipgloss.Color("#CDD6F4"),
		Muted:     lipgloss.Color("#6C7086"),
		Success:   lipgloss.Color("#A6E3A1"),
		Error:     lipgloss.Color("#F38BA8"),
		Border:    lipgloss.Color("#45475A"),
		Bar:       lipgloss.Color("#181825"),
	}
}

// Styles are built once per program from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style // current row in the history list
	Error    lipgloss.Style
	Success  lipgloss.Style

	// InputField and Focused share a rounded border; only its colour
	// shows which input holds the keyboard.
	InputField lipgloss.Style
	Focused    lipgloss.Style

	Border    lipgloss.Style
	StatusBar lipgloss.Style
	// Answer draws a single rule down the left of the model's reply.
	Answer lipgloss.Style
}

// NewStyles falls back to DefaultTheme when theme is nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	input := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Background(theme.Primary),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),

		InputField: input.BorderForeground(theme.Border),
		Focused:    input.BorderForeground(theme.Primary),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
		Answer: lipgloss.NewStyle().
			Foreground(theme.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Success).
			PaddingLeft(1),
	}
}

func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
