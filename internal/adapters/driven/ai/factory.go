// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/reportqa/internal/adapters/driven/embedding/gemini"
	localembed "github.com/custodia-labs/reportqa/internal/adapters/driven/embedding/local"
	ollamaembed "github.com/custodia-labs/reportqa/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/reportqa/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/reportqa/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/reportqa/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/reportqa/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/reportqa/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the AI services built at startup.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Warnings         []string // Non-fatal issues, such as a missing LLM key.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init builds the embedding and LLM services for settings. A missing
// embedding backend is fatal because the default index cannot be built
// without it. A missing LLM credential is not: the LLM is replaced by an
// UnconfiguredLLM so every answer reports the configuration error.
func Init(ctx context.Context, settings domain.AppSettings) (*InitResult, error) {
	result := &InitResult{}

	emb, err := CreateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	result.EmbeddingService = emb

	llm, err := CreateLLMOrUnconfigured(ctx, &settings.LLM)
	if err != nil {
		result.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	if u, ok := llm.(*UnconfiguredLLM); ok {
		result.Warnings = append(result.Warnings, u.Err().Error())
	}
	result.LLMService = llm

	logger.Debug("ai: embedding=%s llm=%s", emb.ModelName(), llm.ModelName())
	return result, nil
}

// missingKey returns a ConfigurationError when provider needs a key and
// apiKey is empty.
func missingKey(provider domain.AIProvider, apiKey string) error {
	if provider.RequiresAPIKey() && apiKey == "" {
		return &domain.ConfigurationError{Key: provider.APIKeyEnv(), Provider: provider}
	}
	return nil
}

// CreateEmbeddingService creates the embedding service named by settings.
// An empty provider selects the built-in local embedder.
func CreateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || settings.Provider == "" {
		return localembed.New(), nil
	}
	if err := missingKey(settings.Provider, settings.APIKey); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case domain.AIProviderLocal:
		return createLocalEmbedding(settings), nil

	case domain.AIProviderGemini:
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: domain.EmbeddingDimensions()[settings.Model],
		})

	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: domain.EmbeddingDimensions()[settings.Model],
		})

	case domain.AIProviderAnthropic:
		return nil, errors.New("anthropic does not support embeddings, use local, gemini, openai or ollama")

	default:
		return nil, fmt.Errorf("%w: embedding provider %s", domain.ErrUnsupportedType, settings.Provider)
	}
}

// CreateLLMService creates the LLM service named by settings.
// A missing API key yields a *domain.ConfigurationError.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, errors.New("no LLM settings")
	}
	if err := missingKey(settings.Provider, settings.APIKey); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderLocal:
		return nil, errors.New("the local provider only supports embeddings")

	default:
		return nil, fmt.Errorf("%w: LLM provider %s", domain.ErrUnsupportedType, settings.Provider)
	}
}

// CreateLLMOrUnconfigured is CreateLLMService, except that a missing
// credential returns an UnconfiguredLLM instead of an error, so the
// process can start and report the problem on each request.
func CreateLLMOrUnconfigured(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(ctx, settings)
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		logger.Warn("llm: %v", cfgErr)
		return NewUnconfiguredLLM(settings.Model, cfgErr), nil
	}
	return svc, err
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
func CreateAndValidateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'reportqa doctor' for details",
			domain.ErrEmbeddingUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'reportqa doctor' for details",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// createLocalEmbedding creates the hashing embedder, honouring a
// "hashing-N" model name for the dimension.
func createLocalEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dims := domain.EmbeddingDimensions()[settings.Model]
	if dims == 0 {
		var n int
		if _, err := fmt.Sscanf(settings.Model, "hashing-%d", &n); err == nil && n > 0 {
			dims = n
		}
	}
	return localembed.NewEmbeddingService(localembed.Config{Dimensions: dims, Bigrams: true})
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}
