package tui

import (
	"context"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// mockAnswerService implements driving.AnswerService for testing.
type mockAnswerService struct {
	result domain.AnswerResult
}

func (m *mockAnswerService) AnswerQuestion(_ context.Context, _, _ string) domain.AnswerResult {
	return m.result
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	records []domain.AnswerRecord
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.AnswerRecord, error) {
	return m.records, nil
}
