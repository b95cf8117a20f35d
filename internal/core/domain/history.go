package domain

import "time"

// AnswerRecord is an audit entry for one answered (or failed) question.
// It never holds the caller's context text.
type AnswerRecord struct {
	ID              string        `db:"id" json:"id"`
	Question        string        `db:"question" json:"question"`
	Answer          string        `db:"answer" json:"answer"`
	Error           string        `db:"error" json:"error,omitempty"`
	Kind            ErrorKind     `db:"kind" json:"kind,omitempty"`
	Corpus          Corpus        `db:"corpus" json:"corpus"`
	TemplateVersion string        `db:"template_version" json:"template_version"`
	Model           string        `db:"model" json:"model"`
	Duration        time.Duration `db:"duration_ns" json:"duration_ns"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}
