// Package gemini answers prompts with Gemini models through the Google
// Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	geminiembed "github.com/custodia-labs/reportqa/internal/adapters/driven/embedding/gemini"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is the answering model.
const DefaultModel = "models/gemini-2.5-pro"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Google API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Model is the model to use (default: models/gemini-2.5-pro).
	Model string
}

// LLMService generates answers with Gemini models.
type LLMService struct {
	models *genai.Models
	model  string
}

// NewLLMService creates a Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := geminiembed.NewClient(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return &LLMService{
		models: client.Models,
		model:  geminiembed.ModelPath(cfg.Model),
	}, nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate. Temperature is left to the model default.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var config *genai.GenerateContentConfig
	if opts.MaxTokens > 0 || len(opts.StopWords) > 0 {
		config = &genai.GenerateContentConfig{
			MaxOutputTokens: int32(opts.MaxTokens), //nolint:gosec // bounded by settings
			StopSequences:   opts.StopWords,
		}
	}

	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini: no candidates returned")
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("gemini: empty candidate (finish reason %s)", cand.FinishReason)
	}
	return resp.Text(), nil
}

// ModelName returns the model in use.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping checks the key by fetching the model metadata.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close is a no-op; the SDK client holds no resources.
func (s *LLMService) Close() error {
	return nil
}
