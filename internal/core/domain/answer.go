package domain

import (
	"errors"
	"strings"
)

// PipelineState is a step of the answering pipeline.
type PipelineState string

// Pipeline states in the order a successful request visits them.
const (
	StateReceived      PipelineState = "RECEIVED"
	StateIndexSelected PipelineState = "INDEX_SELECTED"
	StateRetrieved     PipelineState = "RETRIEVED"
	StatePrompted      PipelineState = "PROMPTED"
	StateAnswered      PipelineState = "ANSWERED"
	StateFailed        PipelineState = "FAILED"
)

// String returns the string representation.
func (s PipelineState) String() string {
	return string(s)
}

// ErrorKind classifies a failed answer.
type ErrorKind string

// Error kinds, one per sentinel in the pipeline taxonomy.
const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindEmbedding     ErrorKind = "embedding"
	ErrorKindModel         ErrorKind = "model"
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindInternal      ErrorKind = "internal"
)

// ClassifyError maps an error onto the pipeline taxonomy.
// Configuration is checked first because a ConfigurationError may also be
// wrapped as a model failure by an adapter.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrConfiguration):
		return ErrorKindConfiguration
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInput):
		return ErrorKindValidation
	case errors.Is(err, ErrEmbedding), errors.Is(err, ErrEmbeddingUnavailable):
		return ErrorKindEmbedding
	case errors.Is(err, ErrModel), errors.Is(err, ErrLLMUnavailable):
		return ErrorKindModel
	default:
		return ErrorKindInternal
	}
}

// Corpus identifies which index served a request.
type Corpus string

// Corpus kinds.
const (
	// CorpusDefault is the built-in report indexed at startup.
	CorpusDefault Corpus = "default"

	// CorpusAdHoc is a request-scoped index built from caller context.
	CorpusAdHoc Corpus = "adhoc"
)

// AnswerRequest is the input to the answering pipeline.
type AnswerRequest struct {
	// Question is the user's natural-language question.
	Question string `json:"question"`

	// Context is optional raw report text. When non-empty it replaces
	// the default corpus for this request.
	Context string `json:"context,omitempty"`
}

// HasContext reports whether the request carries usable context text.
func (r AnswerRequest) HasContext() bool {
	return strings.TrimSpace(r.Context) != ""
}

// AnswerResult is the only value the answering pipeline returns.
// Exactly one of Answer and Error is non-empty.
type AnswerResult struct {
	// Answer is the verbatim model output.
	Answer string `json:"answer"`

	// Error is the failure message, surfaced unredacted.
	Error string `json:"error,omitempty"`

	// Kind classifies Error. Empty on success.
	Kind ErrorKind `json:"kind,omitempty"`

	// Corpus is the index that served the request, if one was selected.
	Corpus Corpus `json:"corpus,omitempty"`

	// State is the state the pipeline finished in.
	State PipelineState `json:"-"`

	// TemplateVersion is the prompt template used, if a prompt was built.
	TemplateVersion string `json:"-"`
}

// OK reports whether the result carries an answer.
func (r AnswerResult) OK() bool {
	return r.Error == ""
}

// NewAnswerResult builds a successful result.
func NewAnswerResult(answer string, corpus Corpus) AnswerResult {
	return AnswerResult{
		Answer: answer,
		Corpus: corpus,
		State:  StateAnswered,
	}
}

// NewFailedResult builds a failed result from err.
// A nil or empty error still yields a non-empty message so the result
// never has both fields empty.
func NewFailedResult(err error, corpus Corpus) AnswerResult {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	kind := ClassifyError(err)
	if kind == ErrorKindNone {
		kind = ErrorKindInternal
	}
	return AnswerResult{
		Error:  msg,
		Kind:   kind,
		Corpus: corpus,
		State:  StateFailed,
	}
}

// Prompt is an assembled model input.
type Prompt struct {
	// Text is the full prompt sent to the model.
	Text string

	// TemplateVersion identifies the template that produced Text.
	TemplateVersion string
}
