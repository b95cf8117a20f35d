package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is used when a caller asks for a non-positive limit.
const DefaultHistoryLimit = 20

// HistoryService reads the answer log.
type HistoryService struct {
	log driven.AnswerLog
}

// NewHistoryService creates a history service. log may be nil when
// history is disabled.
func NewHistoryService(log driven.AnswerLog) *HistoryService {
	return &HistoryService{log: log}
}

// Recent returns up to limit records, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.AnswerRecord, error) {
	if s.log == nil {
		return nil, fmt.Errorf("answer history is disabled: %w", domain.ErrNotFound)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	recs, err := s.log.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return recs, nil
}
