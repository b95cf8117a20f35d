package ai

import (
	"context"

	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

// Ensure UnconfiguredLLM implements the interface.
var _ driven.LLMService = (*UnconfiguredLLM)(nil)

// UnconfiguredLLM stands in for a language model whose credential is
// missing. Every call fails with the configuration error it was built with.
type UnconfiguredLLM struct {
	model string
	err   error
}

// NewUnconfiguredLLM creates a placeholder that always returns err.
func NewUnconfiguredLLM(model string, err error) *UnconfiguredLLM {
	return &UnconfiguredLLM{model: model, err: err}
}

// Err returns the configuration error.
func (u *UnconfiguredLLM) Err() error {
	return u.err
}

// Generate always fails.
func (u *UnconfiguredLLM) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return "", u.err
}

// ModelName returns the configured model name.
func (u *UnconfiguredLLM) ModelName() string {
	return u.model
}

// Ping always fails.
func (u *UnconfiguredLLM) Ping(context.Context) error {
	return u.err
}

// Close releases resources.
func (u *UnconfiguredLLM) Close() error {
	return nil
}
