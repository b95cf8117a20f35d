// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
)

// Field identifies which input receives key presses.
type Field int

const (
	// FieldQuestion is the single-line question input.
	FieldQuestion Field = iota
	// FieldContext is the optional report context area.
	FieldContext
)

// View holds the question input, context area, spinner and answer pane.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	question  *input.QuestionInput
	report    *input.ContextArea
	spinner   spinner.Model
	answer    viewport.Model
	statusbar *status.Bar

	answers driving.AnswerService
	ctx     context.Context

	width  int
	height int
	focus  Field
	busy   bool
	asked  string
	result *domain.AnswerResult
}

// NewView creates an ask view backed by answers.
func NewView(s *styles.Styles, km *keymap.KeyMap, answers driving.AnswerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(s.Theme().Primary)),
	)

	v := &View{
		styles:    s,
		keymap:    km,
		question:  input.NewQuestionInput(s),
		report:    input.NewContextArea(s),
		spinner:   sp,
		answer:    viewport.New(76, 8),
		statusbar: status.NewBar(s, km),
		answers:   answers,
		ctx:       context.Background(),
		focus:     FieldQuestion,
	}
	v.SetDimensions(80, 24)
	return v
}

// WithContext sets the context passed to the answering pipeline.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.question.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.busy {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AnswerCompleted:
		v.handleAnswerCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.SwitchFocus):
		return v, v.toggleFocus()

	case keymap.Matches(keyStr, v.keymap.Clear):
		v.Reset()
		return v, v.question.Focus()

	case keymap.Matches(keyStr, v.keymap.Submit) && v.focus == FieldQuestion:
		return v, v.submit()

	case keyStr == "pgup" || keyStr == "pgdown":
		var cmd tea.Cmd
		v.answer, cmd = v.answer.Update(msg)
		return v, cmd
	}

	if v.focus == FieldContext {
		var cmd tea.Cmd
		v.report, cmd = v.report.Update(msg)
		return v, cmd
	}

	// Up and down have no meaning in a single-line input
	if keyStr == "up" || keyStr == "down" {
		var cmd tea.Cmd
		v.answer, cmd = v.answer.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.question, cmd = v.question.Update(msg)
	return v, cmd
}

func (v *View) toggleFocus() tea.Cmd {
	if v.focus == FieldQuestion {
		v.focus = FieldContext
		v.question.Blur()
		return v.report.Focus()
	}
	v.focus = FieldQuestion
	v.report.Blur()
	return v.question.Focus()
}

// submit starts the pipeline unless an answer is already in flight.
func (v *View) submit() tea.Cmd {
	if v.busy || v.answers == nil {
		return nil
	}

	question := v.question.Value()
	reportContext := v.report.Value()
	v.busy = true
	v.asked = question
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateAnswering)

	return tea.Batch(v.spinner.Tick, v.answerCmd(question, reportContext))
}

func (v *View) answerCmd(question, reportContext string) tea.Cmd {
	answers := v.answers
	ctx := v.ctx
	return func() tea.Msg {
		return messages.AnswerCompleted{
			Question: question,
			Result:   answers.AnswerQuestion(ctx, question, reportContext),
		}
	}
}

func (v *View) handleAnswerCompleted(msg messages.AnswerCompleted) {
	v.busy = false
	result := msg.Result
	v.result = &result

	if result.OK() {
		v.statusbar.SetState(status.StateAnswered)
		v.statusbar.SetCorpus(result.Corpus)
	} else {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(string(result.Kind))
	}

	v.answer.SetContent(v.renderResult(msg.Question, result))
	v.answer.GotoTop()
}

func (v *View) renderResult(question string, result domain.AnswerResult) string {
	width := v.answer.Width - 2
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(v.styles.Label.Render("Q: "))
	b.WriteString(v.styles.Normal.Render(question))
	b.WriteString("\n\n")

	if result.OK() {
		b.WriteString(v.styles.Answer.Width(width).Render(strings.TrimSpace(result.Answer)))
		return b.String()
	}

	label := "Error"
	if result.Kind != domain.ErrorKindNone {
		label = fmt.Sprintf("Error (%s)", result.Kind)
	}
	b.WriteString(v.styles.Error.Width(width).Render(label + ": " + result.Error))
	return b.String()
}

// View renders the ask view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("reportqa") + " " + v.styles.Muted.Render("ask about a lab report"),
		"",
		v.question.View(),
		"",
		v.report.View(),
		"",
	}

	switch {
	case v.busy:
		sections = append(sections, v.spinner.View()+" "+v.styles.Muted.Render("Thinking about "+quote(v.asked)))
	case v.result != nil:
		sections = append(sections, v.styles.Border.Render(v.answer.View()))
	default:
		sections = append(sections, v.styles.Muted.Render("Ask a question and press enter."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Pin the status bar to the bottom line
	contentHeight := lipgloss.Height(content)
	if gap := v.height - contentHeight - 1; gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + "\n" + v.statusbar.View()
}

func quote(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "an empty question"
	}
	if r := []rune(s); len(r) > 40 {
		s = string(r[:37]) + "..."
	}
	return fmt.Sprintf("%q", s)
}

// SetDimensions sizes the inputs and the answer pane for a terminal of width by height.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	v.question.SetWidth(width)
	v.statusbar.SetWidth(width)

	contextLines := max(3, height/5)
	v.report.SetSize(width, contextLines)

	// Title, question, context label and the spacers take the rest
	answerHeight := height - contextLines - 14
	if answerHeight < 3 {
		answerHeight = 3
	}
	v.answer.Width = max(20, width-2)
	v.answer.Height = answerHeight
}

// Reset clears both inputs, the answer and the status bar.
func (v *View) Reset() {
	v.question.Reset()
	v.report.Reset()
	v.report.Blur()
	v.focus = FieldQuestion
	v.result = nil
	v.asked = ""
	v.answer.SetContent("")
	v.statusbar.Clear()
}

// Focus returns the field that currently receives keys.
func (v *View) Focus() Field {
	return v.focus
}

// Busy reports whether an answer is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Result returns the last pipeline result, or nil before the first answer.
func (v *View) Result() *domain.AnswerResult {
	return v.result
}

// Question returns the current question text.
func (v *View) Question() string {
	return v.question.Value()
}

// SetQuestion replaces the question text.
func (v *View) SetQuestion(q string) {
	v.question.SetValue(q)
}

// SetReportContext replaces the context text.
func (v *View) SetReportContext(text string) {
	v.report.SetValue(text)
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}
