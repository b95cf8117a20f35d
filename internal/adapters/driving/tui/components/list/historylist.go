// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// HistoryList displays answer records in a navigable list.
type HistoryList struct {
	records  []domain.AnswerRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHistoryList creates a new history list component.
func NewHistoryList(s *styles.Styles) *HistoryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HistoryList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (h *HistoryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (h *HistoryList) Update(msg tea.Msg) (*HistoryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			h.MoveUp()
		case "down", "j":
			h.MoveDown()
		}
	}
	return h, nil
}

// View renders the list.
func (h *HistoryList) View() string {
	if len(h.records) == 0 {
		return h.styles.Muted.Render("No answers recorded yet")
	}

	lines := make([]string, 0, len(h.records)*2+2)
	lines = append(lines, h.styles.Subtitle.Render(fmt.Sprintf("Recent answers (%d)", len(h.records))), "")

	// Each record takes two lines
	visibleCount := (h.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if h.selected >= visibleCount {
		start = h.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(h.records))

	for i := start; i < end; i++ {
		lines = append(lines, h.renderRecord(i, &h.records[i]))
	}

	return strings.Join(lines, "\n")
}

func (h *HistoryList) renderRecord(index int, rec *domain.AnswerRecord) string {
	indicator := "  "
	if index == h.selected {
		indicator = "> "
	}

	stamp := rec.CreatedAt.Local().Format("2006-01-02 15:04")
	question := truncate(rec.Question, h.width-len(stamp)-6)

	var titleLine string
	if index == h.selected {
		titleLine = h.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, stamp, question))
	} else {
		titleLine = h.styles.Muted.Render(indicator+stamp+"  ") + h.styles.Normal.Render(question)
	}

	var detail string
	if rec.Error != "" {
		detail = h.styles.Error.Render("    " + truncate(fmt.Sprintf("[%s] %s", rec.Kind, rec.Error), h.width-6))
	} else {
		detail = h.styles.Muted.Render("    " + truncate(fmt.Sprintf("[%s] %s", rec.Corpus, rec.Answer), h.width-6))
	}

	return titleLine + "\n" + detail
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n < 10 {
		n = 10
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetRecords replaces the list content and resets the selection.
func (h *HistoryList) SetRecords(records []domain.AnswerRecord) {
	h.records = records
	h.selected = 0
}

// Records returns the current records.
func (h *HistoryList) Records() []domain.AnswerRecord {
	return h.records
}

// Selected returns the index of the selected record.
func (h *HistoryList) Selected() int {
	return h.selected
}

// SelectedRecord returns the currently selected record, or nil if none.
func (h *HistoryList) SelectedRecord() *domain.AnswerRecord {
	if h.selected < 0 || h.selected >= len(h.records) {
		return nil
	}
	return &h.records[h.selected]
}

// MoveUp moves selection up.
func (h *HistoryList) MoveUp() {
	if h.selected > 0 {
		h.selected--
	}
}

// MoveDown moves selection down.
func (h *HistoryList) MoveDown() {
	if h.selected < len(h.records)-1 {
		h.selected++
	}
}

// SetDimensions sets the component dimensions.
func (h *HistoryList) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Count returns the number of records.
func (h *HistoryList) Count() int {
	return len(h.records)
}

// IsEmpty returns whether the list is empty.
func (h *HistoryList) IsEmpty() bool {
	return len(h.records) == 0
}
