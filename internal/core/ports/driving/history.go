package driving

import (
	"context"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// HistoryService exposes the answer log.
type HistoryService interface {
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.AnswerRecord, error)
}
