package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

var _ driven.AnswerLog = (*answerLog)(nil)

// answerLog implements driven.AnswerLog.
type answerLog struct {
	store *Store
}

// answerRow is the table layout. Times are stored as Unix nanoseconds.
type answerRow struct {
	ID              string `db:"id"`
	Question        string `db:"question"`
	Answer          string `db:"answer"`
	Error           string `db:"error"`
	Kind            string `db:"kind"`
	Corpus          string `db:"corpus"`
	TemplateVersion string `db:"template_version"`
	Model           string `db:"model"`
	DurationNS      int64  `db:"duration_ns"`
	CreatedAt       int64  `db:"created_at"`
}

func toRow(rec domain.AnswerRecord) answerRow {
	return answerRow{
		ID:              rec.ID,
		Question:        rec.Question,
		Answer:          rec.Answer,
		Error:           rec.Error,
		Kind:            string(rec.Kind),
		Corpus:          string(rec.Corpus),
		TemplateVersion: rec.TemplateVersion,
		Model:           rec.Model,
		DurationNS:      int64(rec.Duration),
		CreatedAt:       rec.CreatedAt.UnixNano(),
	}
}

func (r answerRow) record() domain.AnswerRecord {
	return domain.AnswerRecord{
		ID:              r.ID,
		Question:        r.Question,
		Answer:          r.Answer,
		Error:           r.Error,
		Kind:            domain.ErrorKind(r.Kind),
		Corpus:          domain.Corpus(r.Corpus),
		TemplateVersion: r.TemplateVersion,
		Model:           r.Model,
		Duration:        time.Duration(r.DurationNS),
		CreatedAt:       time.Unix(0, r.CreatedAt).UTC(),
	}
}

// Record stores one entry. Recording the same ID twice is an error.
func (l *answerLog) Record(ctx context.Context, rec domain.AnswerRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: answer record without id", domain.ErrInvalidInput)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := l.store.db.NamedExecContext(ctx, `
		INSERT INTO answer_log
			(id, question, answer, error, kind, corpus, template_version, model, duration_ns, created_at)
		VALUES
			(:id, :question, :answer, :error, :kind, :corpus, :template_version, :model, :duration_ns, :created_at)
	`, toRow(rec))
	if err != nil {
		return fmt.Errorf("insert answer record: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (l *answerLog) Recent(ctx context.Context, limit int) ([]domain.AnswerRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	var rows []answerRow
	err := l.store.db.SelectContext(ctx, &rows, `
		SELECT id, question, answer, error, kind, corpus, template_version, model, duration_ns, created_at
		FROM answer_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query answer records: %w", err)
	}

	records := make([]domain.AnswerRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

// Close closes the underlying store.
func (l *answerLog) Close() error {
	return l.store.Close()
}
