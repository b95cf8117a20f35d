package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAIProvider_IsValid tests all valid and invalid providers
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"gemini is valid", AIProviderGemini, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"ollama is valid", AIProviderOllama, true},
		{"local is valid", AIProviderLocal, true},
		{"empty is invalid", AIProvider(""), false},
		{"unknown is invalid", AIProvider("cohere"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

// TestAIProvider_APIKeyEnv tests the credential variable per provider
func TestAIProvider_APIKeyEnv(t *testing.T) {
	assert.Equal(t, "GOOGLE_API_KEY", AIProviderGemini.APIKeyEnv())
	assert.Equal(t, "OPENAI_API_KEY", AIProviderOpenAI.APIKeyEnv())
	assert.Equal(t, "ANTHROPIC_API_KEY", AIProviderAnthropic.APIKeyEnv())
	assert.Empty(t, AIProviderOllama.APIKeyEnv())
	assert.Empty(t, AIProviderLocal.APIKeyEnv())

	for _, p := range AllLLMProviders() {
		assert.Equal(t, p.RequiresAPIKey(), p.APIKeyEnv() != "", p.String())
	}
}

// TestAIProvider_Description tests descriptions are never empty
func TestAIProvider_Description(t *testing.T) {
	for _, p := range append(AllLLMProviders(), AIProviderLocal) {
		assert.NotEqual(t, unknownDescription, p.Description(), p.String())
	}
	assert.Equal(t, unknownDescription, AIProvider("nope").Description())
}

// TestEmbeddingSettings_IsConfigured tests embedding configuration checks
func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		expected bool
	}{
		{"local needs nothing", EmbeddingSettings{Provider: AIProviderLocal}, true},
		{"ollama needs no key", EmbeddingSettings{Provider: AIProviderOllama}, true},
		{"gemini without key", EmbeddingSettings{Provider: AIProviderGemini}, false},
		{"gemini with key", EmbeddingSettings{Provider: AIProviderGemini, APIKey: "k"}, true},
		{"anthropic has no embeddings", EmbeddingSettings{Provider: AIProviderAnthropic, APIKey: "k"}, false},
		{"empty provider", EmbeddingSettings{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

// TestLLMSettings_IsConfigured tests LLM configuration checks
func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"gemini without key", LLMSettings{Provider: AIProviderGemini}, false},
		{"gemini with key", LLMSettings{Provider: AIProviderGemini, APIKey: "k"}, true},
		{"ollama needs no key", LLMSettings{Provider: AIProviderOllama}, true},
		{"local is not an llm", LLMSettings{Provider: AIProviderLocal}, false},
		{"empty provider", LLMSettings{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

// TestDefaultAppSettings tests the out-of-the-box configuration
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, AIProviderGemini, s.LLM.Provider)
	assert.Equal(t, "models/gemini-2.5-pro", s.LLM.Model)
	assert.Empty(t, s.LLM.APIKey)
	assert.Equal(t, AIProviderLocal, s.Embedding.Provider)
	assert.True(t, s.Embedding.IsConfigured())
	assert.Equal(t, 4, s.Retrieval.TopK)
	assert.Equal(t, 1000, s.Segmenter.ChunkSize)
	assert.Equal(t, 200, s.Segmenter.ChunkOverlap)
	assert.Equal(t, ":8000", s.Server.Addr)
	assert.Equal(t, []string{"*"}, s.Server.CORSOrigins)
	assert.Equal(t, "tesseract", s.OCR.Binary)
	assert.False(t, s.History.Enabled)
}

// TestDefaultModels_CoverProviders tests every provider has a default model
func TestDefaultModels_CoverProviders(t *testing.T) {
	llmModels := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, llmModels[p], p.String())
	}

	embedModels := DefaultEmbeddingModels()
	dims := EmbeddingDimensions()
	for _, p := range AllEmbeddingProviders() {
		model := embedModels[p]
		require.NotEmpty(t, model, p.String())
		assert.Positive(t, dims[model], model)
	}
}

// TestPipelineConfigFor tests segmenter settings reach the chunker config
func TestPipelineConfigFor(t *testing.T) {
	cfg := PipelineConfigFor(SegmenterSettings{ChunkSize: 500, ChunkOverlap: 50})

	assert.Equal(t, []string{"normalise", "chunker"}, cfg.Processors)
	chunker := cfg.GetProcessorConfig("chunker")
	require.NotNil(t, chunker)
	assert.Equal(t, 500, chunker["chunk_size"])
	assert.Equal(t, 50, chunker["overlap"])
	assert.Nil(t, cfg.GetProcessorConfig("missing"))

	var empty PipelineConfig
	assert.Nil(t, empty.GetProcessorConfig("chunker"))
}
