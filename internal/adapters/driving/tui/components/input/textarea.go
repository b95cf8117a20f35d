package input

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/styles"
)

// ContextArea is a multi-line field for pasted report text.
// An empty area means the question is answered from the default report.
type ContextArea struct {
	textarea textarea.Model
	styles   *styles.Styles
	width    int
	height   int
}

// NewContextArea creates an unfocused context area.
func NewContextArea(s *styles.Styles) *ContextArea {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste report text here, or leave empty to use the default report."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(6)
	ta.Blur()

	return &ContextArea{
		textarea: ta,
		styles:   s,
		width:    60,
		height:   6,
	}
}

// Update handles input messages.
func (c *ContextArea) Update(msg tea.Msg) (*ContextArea, tea.Cmd) {
	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return c, cmd
}

// View renders the label and the bordered area.
func (c *ContextArea) View() string {
	frame := c.styles.InputField
	if c.textarea.Focused() {
		frame = c.styles.Focused
	}
	label := c.styles.Label.Render("Report context (optional)")
	return lipgloss.JoinVertical(lipgloss.Left, label, frame.Render(c.textarea.View()))
}

// Value returns the current text.
func (c *ContextArea) Value() string {
	return c.textarea.Value()
}

// SetValue replaces the text.
func (c *ContextArea) SetValue(value string) {
	c.textarea.SetValue(value)
}

// Focus sets focus on the area.
func (c *ContextArea) Focus() tea.Cmd {
	return c.textarea.Focus()
}

// Blur removes focus from the area.
func (c *ContextArea) Blur() {
	c.textarea.Blur()
}

// Focused returns whether the area is focused.
func (c *ContextArea) Focused() bool {
	return c.textarea.Focused()
}

// SetSize sets the outer width and the number of visible lines.
func (c *ContextArea) SetSize(width, height int) {
	c.width = width
	c.height = height
	innerWidth := width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}
	if height < 2 {
		height = 2
	}
	c.textarea.SetWidth(innerWidth)
	c.textarea.SetHeight(height)
}

// Width returns the current width.
func (c *ContextArea) Width() int {
	return c.width
}

// Height returns the number of visible lines.
func (c *ContextArea) Height() int {
	return c.height
}

// Reset clears the area.
func (c *ContextArea) Reset() {
	c.textarea.Reset()
}
