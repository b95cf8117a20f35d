package driven

import (
	"context"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// AnswerLog records answered questions for later review.
type AnswerLog interface {
	// Record stores one entry.
	Record(ctx context.Context, rec domain.AnswerRecord) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.AnswerRecord, error)

	// Close releases resources.
	Close() error
}
