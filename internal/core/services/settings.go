package services

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMTemperature    = "llm.temperature"
	keyLLMMaxTokens      = "llm.max_tokens"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyTopK              = "retrieval.top_k"
	keyMinSimilarity     = "retrieval.min_similarity"
	keyChunkSize         = "segmenter.chunk_size"
	keyChunkOverlap      = "segmenter.chunk_overlap"
	keyServerAddr        = "server.addr"
	keyServerCORSOrigins = "server.cors_origins"
	keyServerRPS         = "server.requests_per_second"
	keyServerBurst       = "server.burst"
	keyServerMaxUpload   = "server.max_upload_bytes"
	keyOCRBinary         = "ocr.binary"
	keyOCRLanguage       = "ocr.language"
	keyHistoryEnabled    = "history.enabled"
	keyHistoryPath       = "history.path"
)

// Environment overrides. Provider API keys use AIProvider.APIKeyEnv.
const (
	EnvLLMProvider       = "REPORTQA_LLM_PROVIDER"
	EnvLLMModel          = "REPORTQA_LLM_MODEL"
	EnvEmbeddingProvider = "REPORTQA_EMBEDDING_PROVIDER"
	EnvEmbeddingModel    = "REPORTQA_EMBEDDING_MODEL"
	EnvOllamaBaseURL     = "OLLAMA_BASE_URL"
	EnvServerAddr        = "REPORTQA_ADDR"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindStrings
)

// settingKeys lists every key Set accepts and how string input is parsed.
var settingKeys = map[string]valueKind{
	keyLLMProvider:       kindString,
	keyLLMModel:          kindString,
	keyLLMBaseURL:        kindString,
	keyLLMAPIKey:         kindString,
	keyLLMTemperature:    kindFloat,
	keyLLMMaxTokens:      kindInt,
	keyEmbedProvider:     kindString,
	keyEmbedModel:        kindString,
	keyEmbedBaseURL:      kindString,
	keyEmbedAPIKey:       kindString,
	keyTopK:              kindInt,
	keyMinSimilarity:     kindFloat,
	keyChunkSize:         kindInt,
	keyChunkOverlap:      kindInt,
	keyServerAddr:        kindString,
	keyServerCORSOrigins: kindStrings,
	keyServerRPS:         kindFloat,
	keyServerBurst:       kindInt,
	keyServerMaxUpload:   kindInt,
	keyOCRBinary:         kindString,
	keyOCRLanguage:       kindString,
	keyHistoryEnabled:    kindBool,
	keyHistoryPath:       kindString,
}

// SettingKeys returns the keys accepted by Set, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithEnv replaces the environment lookup, which defaults to os.Getenv.
func WithEnv(getenv func(string) string) SettingsOption {
	return func(s *SettingsService) {
		s.getenv = getenv
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSettings resolves settings from store and the process environment.
func LoadSettings(store driven.ConfigStore) domain.AppSettings {
	return NewSettingsService(store, nil).Get()
}

// Get resolves settings: defaults, then the config store, then the environment.
func (s *SettingsService) Get() domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	settings := domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:    s.getProvider(keyLLMProvider, EnvLLMProvider, defaults.LLM.Provider),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL),
			APIKey:      s.configStore.GetString(keyLLMAPIKey),
			Temperature: s.configStore.GetFloat(keyLLMTemperature),
			MaxTokens:   s.configStore.GetInt(keyLLMMaxTokens),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, EnvEmbeddingProvider, defaults.Embedding.Provider),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL),
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:          s.getInt(keyTopK, defaults.Retrieval.TopK),
			MinSimilarity: s.configStore.GetFloat(keyMinSimilarity),
		},
		Segmenter: domain.SegmenterSettings{
			ChunkSize:    s.getInt(keyChunkSize, defaults.Segmenter.ChunkSize),
			ChunkOverlap: s.getIntAllowZero(keyChunkOverlap, defaults.Segmenter.ChunkOverlap),
		},
		Server: domain.ServerSettings{
			Addr:              s.getString(keyServerAddr, defaults.Server.Addr),
			CORSOrigins:       s.getStrings(keyServerCORSOrigins, defaults.Server.CORSOrigins),
			RequestsPerSecond: s.getFloatAllowZero(keyServerRPS, defaults.Server.RequestsPerSecond),
			Burst:             s.getInt(keyServerBurst, defaults.Server.Burst),
			MaxUploadBytes:    int64(s.getInt(keyServerMaxUpload, int(defaults.Server.MaxUploadBytes))),
		},
		OCR: domain.OCRSettings{
			Binary:   s.getString(keyOCRBinary, defaults.OCR.Binary),
			Language: s.getString(keyOCRLanguage, defaults.OCR.Language),
		},
		History: domain.HistorySettings{
			Enabled: s.configStore.GetBool(keyHistoryEnabled),
			Path:    s.configStore.GetString(keyHistoryPath),
		},
	}

	settings.LLM.Model = s.getModel(keyLLMModel, EnvLLMModel, domain.DefaultLLMModels()[settings.LLM.Provider])
	settings.Embedding.Model = s.getModel(keyEmbedModel, EnvEmbeddingModel,
		domain.DefaultEmbeddingModels()[settings.Embedding.Provider])

	// Provider keys from the environment win over the file.
	if env := settings.LLM.Provider.APIKeyEnv(); env != "" {
		if v := s.getenv(env); v != "" {
			settings.LLM.APIKey = v
		}
	}
	if env := settings.Embedding.Provider.APIKeyEnv(); env != "" {
		if v := s.getenv(env); v != "" {
			settings.Embedding.APIKey = v
		}
	}
	if v := s.getenv(EnvOllamaBaseURL); v != "" {
		if settings.LLM.Provider == domain.AIProviderOllama {
			settings.LLM.BaseURL = v
		}
		if settings.Embedding.Provider == domain.AIProviderOllama {
			settings.Embedding.BaseURL = v
		}
	}
	if v := s.getenv(EnvServerAddr); v != "" {
		settings.Server.Addr = v
	}

	return settings
}

// Set parses value for key and persists it. String values from the
// command line are converted to the key's type.
func (s *SettingsService) Set(key string, value any) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	v, err := convertSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	if key == keyLLMProvider || key == keyEmbedProvider {
		p := domain.AIProvider(fmt.Sprint(v))
		if !p.IsValid() {
			return fmt.Errorf("%w: invalid provider: %s", domain.ErrInvalidInput, p)
		}
	}

	if err := s.configStore.Set(key, v); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func convertSetting(kind valueKind, value any) (any, error) {
	str, isString := value.(string)
	if !isString {
		return value, nil
	}
	switch kind {
	case kindInt:
		return strconv.Atoi(strings.TrimSpace(str))
	case kindFloat:
		return strconv.ParseFloat(strings.TrimSpace(str), 64)
	case kindBool:
		return strconv.ParseBool(strings.TrimSpace(str))
	case kindStrings:
		var out []string
		for _, part := range strings.Split(str, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return str, nil
	}
}

// Validate checks the resolved settings for inconsistencies.
func (s *SettingsService) Validate() error {
	settings := s.Get()

	if !slices.Contains(domain.AllLLMProviders(), settings.LLM.Provider) {
		return fmt.Errorf("provider %s does not support answering", settings.LLM.Provider)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), settings.Embedding.Provider) {
		return fmt.Errorf("provider %s does not support embeddings", settings.Embedding.Provider)
	}
	if settings.Retrieval.TopK <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyTopK, settings.Retrieval.TopK)
	}
	if settings.Segmenter.ChunkSize <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyChunkSize, settings.Segmenter.ChunkSize)
	}
	if settings.Segmenter.ChunkOverlap < 0 || settings.Segmenter.ChunkOverlap >= settings.Segmenter.ChunkSize {
		return fmt.Errorf("%s must be in [0, %d), got %d",
			keyChunkOverlap, settings.Segmenter.ChunkSize, settings.Segmenter.ChunkOverlap)
	}
	if settings.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("%s must be positive", keyServerMaxUpload)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings := s.Get()
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings := s.Get()
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getIntAllowZero(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloatAllowZero(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getModel(key, env, defaultVal string) string {
	if v := s.getenv(env); v != "" {
		return v
	}
	return s.getString(key, defaultVal)
}

func (s *SettingsService) getProvider(key, env string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.getenv(env)
	if val == "" {
		val = s.configStore.GetString(key)
	}
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
