// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// AnswerRequested is a command to run the answering pipeline.
type AnswerRequested struct {
	Question string
	Context  string
}

// AnswerCompleted carries the pipeline result back to the model.
type AnswerCompleted struct {
	Question string
	Result   domain.AnswerResult
}

// HistoryLoaded carries recent answer records.
type HistoryLoaded struct {
	Records []domain.AnswerRecord
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAsk is the question and answer view.
	ViewAsk ViewType = iota
	// ViewHistory lists recent answers.
	ViewHistory
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAsk:
		return "ask"
	case ViewHistory:
		return "history"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
