// Package history provides the recent answers view for the TUI.
package history

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
)

// DefaultLimit is the number of records fetched when the view opens.
const DefaultLimit = 50

// View lists recent answers from the history service.
type View struct {
	styles    *styles.Styles
	list      *list.HistoryList
	statusbar *status.Bar

	history driving.HistoryService
	ctx     context.Context
	limit   int

	width  int
	height int
	err    error
}

// NewView creates a history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateHistory)

	return &View{
		styles:    s,
		list:      list.NewHistoryList(s),
		statusbar: bar,
		history:   history,
		ctx:       context.Background(),
		limit:     DefaultLimit,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for history queries.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the most recent records.
func (v *View) Init() tea.Cmd {
	history := v.history
	ctx := v.ctx
	limit := v.limit
	return func() tea.Msg {
		if history == nil {
			return messages.HistoryLoaded{}
		}
		records, err := history.Recent(ctx, limit)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.err = msg.Err
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			v.list.SetRecords(nil)
			return v, nil
		}
		v.statusbar.Clear()
		v.statusbar.SetState(status.StateHistory)
		v.list.SetRecords(msg.Records)
		return v, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("reportqa")+" "+v.styles.Muted.Render("history"),
		"",
		v.list.View(),
	)

	if gap := v.height - lipgloss.Height(content) - 1; gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + "\n" + v.statusbar.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-4)
	v.statusbar.SetWidth(width)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Count returns the number of loaded records.
func (v *View) Count() int {
	return v.list.Count()
}
