package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/views/history"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	askView *ask.View

	// historyView is nil when no history service is configured.
	historyView *history.View

	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		askView:     ask.NewView(s, km, ports.Answer),
		currentView: messages.ViewAsk,
	}
	if ports.History != nil {
		app.historyView = history.NewView(s, km, ports.History)
	}
	return app, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	if a.historyView != nil {
		a.historyView.WithContext(ctx)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("reportqa"),
		a.askView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.askView.SetDimensions(msg.Width, msg.Height)
		if a.historyView != nil {
			a.historyView.SetDimensions(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.AnswerCompleted, spinner.TickMsg:
		// The pipeline keeps running while history is shown
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded:
		if a.historyView != nil {
			a.historyView, cmd = a.historyView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHistory && a.historyView != nil {
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd
	}
	a.askView, cmd = a.askView.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	if keymap.Matches(keyStr, a.keymap.History) {
		if a.currentView == messages.ViewHistory {
			return a, a.switchTo(messages.ViewAsk)
		}
		return a, a.switchTo(messages.ViewHistory)
	}

	if a.currentView == messages.ViewHistory {
		// Esc from history goes back to asking
		if msg.Type == tea.KeyEsc {
			return a, a.switchTo(messages.ViewAsk)
		}
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd
	}

	if keymap.Matches(keyStr, a.keymap.Quit) {
		return a, tea.Quit
	}

	a.askView, cmd = a.askView.Update(msg)
	return a, cmd
}

// switchTo changes the active view. Switching to history reloads it and
// is a no-op without a history service.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	switch view {
	case messages.ViewHistory:
		if a.historyView == nil {
			return nil
		}
		a.currentView = messages.ViewHistory
		return a.historyView.Init()
	case messages.ViewAsk:
		a.currentView = messages.ViewAsk
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewHistory && a.historyView != nil {
		return a.historyView.View()
	}
	return a.askView.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// AskView returns the question and answer view.
func (a *App) AskView() *ask.View {
	return a.askView
}

// HasHistory reports whether the history view is available.
func (a *App) HasHistory() bool {
	return a.historyView != nil
}

// SetDimensions sets the terminal dimensions without a resize event.
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
