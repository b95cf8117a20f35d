package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or processor type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Answering pipeline errors. Every failure surfaced by the pipeline
	// wraps exactly one of these.

	// ErrValidation indicates the request itself is unusable,
	// for example an empty question.
	ErrValidation = errors.New("validation error")

	// ErrEmbedding indicates the embedding backend failed or rejected input.
	ErrEmbedding = errors.New("embedding error")

	// ErrModel indicates the language model call failed.
	ErrModel = errors.New("model error")

	// ErrConfiguration indicates a required setting or credential is absent.
	ErrConfiguration = errors.New("configuration error")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// OCR Errors.

	// ErrOCR indicates text extraction from an image failed.
	ErrOCR = errors.New("OCR failed")

	// ErrOCRUnavailable indicates no OCR engine is installed.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")
)

// ConfigurationError reports a credential that was absent when a backend
// needed it. It matches ErrConfiguration with errors.Is.
type ConfigurationError struct {
	// Key is the environment variable or config key the operator must set.
	Key string

	// Provider is the backend that needed the credential.
	Provider AIProvider
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing credential, set %s and restart", e.Key)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
