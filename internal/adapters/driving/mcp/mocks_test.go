package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	mu       sync.Mutex
	result   domain.AnswerResult
	question string
	context  string
}

func (m *mockAnswerService) AnswerQuestion(_ context.Context, question, reportContext string) domain.AnswerResult {
	m.mu.Lock()
	defer m.mu.Unlock()
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

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.AnswerRecord
	err     error
	limit   int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.AnswerRecord, error) {
	m.limit = limit
	return m.records, m.err
}
