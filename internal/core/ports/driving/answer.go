package driving

import (
	"context"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// AnswerService answers questions about lab reports.
type AnswerService interface {
	// AnswerQuestion answers question from reportContext when it is non-empty,
	// otherwise from the built-in default report. It never returns an error:
	// failures are carried in the result.
	AnswerQuestion(ctx context.Context, question, reportContext string) domain.AnswerResult
}
