package httpapi

import (
	"context"
	"sync"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

// mockAnswerService returns a fixed result and records its inputs.
type mockAnswerService struct {
	mu       sync.Mutex
	result   domain.AnswerResult
	calls    int
	question string
	context  string
	panicMsg string
}

func (m *mockAnswerService) AnswerQuestion(_ context.Context, question, reportContext string) domain.AnswerResult {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.question = question
	m.context = reportContext
	return m.result
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	available bool
	text      string
	err       error
	image     []byte
}

func (m *mockReportService) ExtractText(_ context.Context, image []byte) (string, error) {
	m.image = image
	return m.text, m.err
}

func (m *mockReportService) Available() bool { return m.available }

// echoLLM answers with the prompt it was given, so tests can see which
// chunks reached the model.
type echoLLM struct{}

func (echoLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	return prompt, nil
}
func (echoLLM) ModelName() string            { return "echo" }
func (echoLLM) Ping(_ context.Context) error { return nil }
func (echoLLM) Close() error                 { return nil }
