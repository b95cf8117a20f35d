package driving

import "github.com/custodia-labs/reportqa/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the settings resolved from file and environment.
	Get() domain.AppSettings

	// Set persists a single dot-notation key to the config file.
	Set(key string, value any) error

	// Validate checks the resolved settings for inconsistencies.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig validates the embedding configuration by pinging the provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig validates the LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
