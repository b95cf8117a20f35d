package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/reportqa/internal/adapters/driven/ai"
	"github.com/custodia-labs/reportqa/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reportqa/internal/adapters/driven/ocr/tesseract"
	"github.com/custodia-labs/reportqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reportqa/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/cli"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/core/services"
	"github.com/custodia-labs/reportqa/internal/logger"
	"github.com/custodia-labs/reportqa/internal/postprocessors"
)

// newBootstrap returns the function that builds the answering pipeline on
// the first command that needs it.
func newBootstrap(settingsService *services.SettingsService) cli.Bootstrap {
	return func(ctx context.Context) (*cli.Services, error) {
		if err := settingsService.Validate(); err != nil {
			return nil, fmt.Errorf("invalid settings: %w", err)
		}
		settings := settingsService.Get()

		backends, err := ai.Init(ctx, settings)
		if err != nil {
			return nil, err
		}
		for _, w := range backends.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}

		// Everything opened from here on is released by closers.
		closers := []func() error{func() error { backends.Close(); return nil }}
		cleanup := func() error {
			var errs []error
			for i := len(closers) - 1; i >= 0; i-- {
				errs = append(errs, closers[i]())
			}
			return errors.Join(errs...)
		}
		fail := func(err error) (*cli.Services, error) {
			_ = cleanup()
			return nil, err
		}

		pipeline, err := postprocessors.NewDefaultPipeline(settings.Segmenter)
		if err != nil {
			return fail(err)
		}
		builder := services.NewIndexBuilder(pipeline, backends.EmbeddingService, memory.NewVectorIndexFactory())

		defaultIndex, err := services.BuildDefaultIndex(ctx, builder)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, defaultIndex.Close)

		promptStore, err := file.NewPromptStore("")
		if err != nil {
			return fail(err)
		}

		opts := []services.AnswerOption{
			services.WithGenerateOptions(driven.GenerateOptions{
				MaxTokens:   settings.LLM.MaxTokens,
				Temperature: settings.LLM.Temperature,
			}),
		}

		var history *services.HistoryService
		if settings.History.Enabled {
			store, err := sqlite.NewStore(settings.History.Path)
			if err != nil {
				return fail(fmt.Errorf("opening answer history: %w", err))
			}
			closers = append(closers, store.Close)
			opts = append(opts, services.WithAnswerLog(store.AnswerLog()))
			history = services.NewHistoryService(store.AnswerLog())
		}

		answers := services.NewAnswerService(
			defaultIndex,
			builder,
			services.NewRetriever(settings.Retrieval.TopK, services.WithMinSimilarity(settings.Retrieval.MinSimilarity)),
			services.NewPromptAssembler(promptStore),
			backends.LLMService,
			opts...,
		)

		reports := services.NewReportService(tesseract.NewExtractor(tesseract.Config{
			Binary:   settings.OCR.Binary,
			Language: settings.OCR.Language,
		}))

		logger.Debug("bootstrap: pipeline ready")

		s := &cli.Services{
			Answer:  answers,
			Report:  reports,
			Prompts: promptStore,
			HTTP:    httpapi.ConfigFromSettings(settings.Server),
			Close:   cleanup,
		}
		if history != nil {
			s.History = history
		}
		return s, nil
	}
}

// doctorChecks covers the parts doctor cannot reach through settings.
func doctorChecks(settingsService *services.SettingsService) []cli.Check {
	return []cli.Check{
		{
			Name:     "tesseract",
			Optional: true,
			Run: func(context.Context) error {
				ocr := settingsService.Get().OCR
				ext := tesseract.NewExtractor(tesseract.Config{Binary: ocr.Binary, Language: ocr.Language})
				if !ext.Available() {
					return fmt.Errorf("%s not found in PATH, /upload_report and ocr are disabled", ocr.Binary)
				}
				return nil
			},
		},
		{
			Name: "prompt directory",
			Run: func(context.Context) error {
				store, err := file.NewPromptStore("")
				if err != nil {
					return err
				}
				return store.Init()
			},
		},
		{
			Name:     "answer history",
			Optional: true,
			Run: func(context.Context) error {
				h := settingsService.Get().History
				if !h.Enabled {
					return errors.New("disabled")
				}
				store, err := sqlite.NewStore(h.Path)
				if err != nil {
					return err
				}
				return store.Close()
			},
		},
	}
}
