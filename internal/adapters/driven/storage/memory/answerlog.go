package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

// Ensure AnswerLog implements the interface.
var _ driven.AnswerLog = (*AnswerLog)(nil)

// AnswerLog is an in-memory implementation of driven.AnswerLog for testing.
type AnswerLog struct {
	mu      sync.RWMutex
	records []domain.AnswerRecord
}

// NewAnswerLog creates an empty in-memory answer log.
func NewAnswerLog() *AnswerLog {
	return &AnswerLog{}
}

// Record appends an entry.
func (l *AnswerLog) Record(_ context.Context, rec domain.AnswerRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *AnswerLog) Recent(_ context.Context, limit int) ([]domain.AnswerRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > len(l.records) {
		limit = len(l.records)
	}
	out := make([]domain.AnswerRecord, 0, limit)
	for i := len(l.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.records[i])
	}
	return out, nil
}

// Len returns the number of stored entries.
func (l *AnswerLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Close is a no-op.
func (l *AnswerLog) Close() error {
	return nil
}
