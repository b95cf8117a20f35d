package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// PromptWatcher reloads the prompt template when it changes on disk.
type PromptWatcher interface {
	Watch(ctx context.Context, onChange func(name string)) error
}

// Services holds the driving ports used by commands that run the pipeline.
type Services struct {
	Answer  driving.AnswerService
	Report  driving.ReportService
	History driving.HistoryService // nil when the answer log is disabled

	// Prompts is watched by long-running commands. Optional.
	Prompts PromptWatcher

	// HTTP configures `reportqa serve`.
	HTTP httpapi.Config

	// Close releases backends and stores. Optional.
	Close func() error
}

// Bootstrap builds Services. It runs at most once per process, on the
// first command that needs the pipeline.
type Bootstrap func(ctx context.Context) (*Services, error)

var (
	bootstrap       Bootstrap
	loaded          *Services
	settingsService driving.SettingsService
)

// errNotConfigured is returned when a command runs without wiring.
var errNotConfigured = errors.New("reportqa is not configured")

// SetBootstrap registers the function that builds the pipeline services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects ready-made services, bypassing the bootstrap.
func SetServices(s *Services) {
	loaded = s
}

// SetSettingsService sets the settings service used by settings and doctor.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// loadServices returns the injected services, building them on first use.
func loadServices(ctx context.Context) (*Services, error) {
	if loaded != nil {
		return loaded, nil
	}
	if bootstrap == nil {
		return nil, errNotConfigured
	}
	s, err := bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting reportqa: %w", err)
	}
	if s.Answer == nil {
		return nil, errors.New("starting reportqa: answer service missing")
	}
	loaded = s
	return loaded, nil
}

// Close releases services built by the bootstrap.
func Close() error {
	if loaded == nil || loaded.Close == nil {
		return nil
	}
	err := loaded.Close()
	loaded = nil
	return err
}

// watchPrompts reloads the prompt template in the background until ctx ends.
func watchPrompts(ctx context.Context, s *Services, onChange func(name string)) {
	if s.Prompts == nil {
		return
	}
	go func() {
		if err := s.Prompts.Watch(ctx, onChange); err != nil {
			logger.Warn("prompt reload disabled: %v", err)
		}
	}()
}
