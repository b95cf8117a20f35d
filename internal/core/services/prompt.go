package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// Template placeholders.
const (
	PlaceholderContext  = "{{context}}"
	PlaceholderQuestion = "{{question}}"
)

// AnswerTemplateVersion identifies AnswerTemplateV1.
const AnswerTemplateVersion = "medical-rag/v1"

// AnswerTemplateV1 is the built-in grounded answer template: a generic
// retrieval QA frame whose context slot carries the medical assistant
// instructions and the retrieved report excerpts.
const AnswerTemplateV1 = `You are an assistant for question-answering tasks. Use the following pieces of retrieved context to answer the question. If you don't know the answer, just say that you don't know. Use three sentences maximum and keep the answer concise.
Question: {{question}}
Context: You are a helpful medical assistant. Here is the patient's blood test report:

{{context}}

Answer the user's question based on this report. Explain any medical terms simply, in the language a normal person would use.
If the user asks about something outside the report but related to it, use general medical knowledge to answer it.
Answer:`

// Template is a versioned prompt template.
type Template struct {
	Version string
	Text    string
}

// DefaultTemplate returns the built-in answer template.
func DefaultTemplate() Template {
	return Template{Version: AnswerTemplateVersion, Text: AnswerTemplateV1}
}

// CustomTemplate wraps an operator supplied template. Its version is
// derived from the content so answer logs can tell revisions apart.
func CustomTemplate(text string) Template {
	sum := sha256.Sum256([]byte(text))
	return Template{
		Version: "custom-" + hex.EncodeToString(sum[:])[:12],
		Text:    text,
	}
}

// Validate checks that both placeholders are present.
func (t Template) Validate() error {
	var missing []string
	if !strings.Contains(t.Text, PlaceholderContext) {
		missing = append(missing, PlaceholderContext)
	}
	if !strings.Contains(t.Text, PlaceholderQuestion) {
		missing = append(missing, PlaceholderQuestion)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: template %s is missing %s",
			domain.ErrInvalidInput, t.Version, strings.Join(missing, ", "))
	}
	return nil
}

// Render fills t with the chunk contents, joined by newlines in rank
// order, and the question. Substitution is a single pass, so placeholder
// text inside the question or the report is left as is.
func (t Template) Render(chunks []domain.ScoredChunk, question string) domain.Prompt {
	joined := strings.Join(domain.ChunkContents(chunks), "\n")
	r := strings.NewReplacer(PlaceholderContext, joined, PlaceholderQuestion, question)
	return domain.Prompt{
		Text:            r.Replace(t.Text),
		TemplateVersion: t.Version,
	}
}

// PromptAssembler builds model prompts from retrieved chunks.
type PromptAssembler struct {
	store driven.PromptStore
}

// NewPromptAssembler creates an assembler. A nil store always uses
// the built-in template.
func NewPromptAssembler(store driven.PromptStore) *PromptAssembler {
	return &PromptAssembler{store: store}
}

// Template returns the template currently in effect. An override that is
// missing placeholders is ignored with a warning.
func (a *PromptAssembler) Template() Template {
	if a == nil || a.store == nil {
		return DefaultTemplate()
	}

	text, err := a.store.Load(driven.PromptAnswer)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("prompt: load override: %v", err)
		}
		return DefaultTemplate()
	}

	t := CustomTemplate(text)
	if err := t.Validate(); err != nil {
		logger.Warn("prompt: %v, using %s", err, AnswerTemplateVersion)
		return DefaultTemplate()
	}
	return t
}

// Assemble renders the current template.
func (a *PromptAssembler) Assemble(chunks []domain.ScoredChunk, question string) domain.Prompt {
	return a.Template().Render(chunks, question)
}
