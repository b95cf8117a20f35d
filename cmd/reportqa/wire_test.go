package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reportqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reportqa/internal/core/services"
)

func checkByName(t *testing.T, s *services.SettingsService, name string) func(context.Context) error {
	t.Helper()
	for _, c := range doctorChecks(s) {
		if c.Name == name {
			return c.Run
		}
	}
	t.Fatalf("no doctor check named %q", name)
	return nil
}

func TestDoctorChecks_MissingTesseract(t *testing.T) {
	s := services.NewSettingsService(memory.NewConfigStore(), nil)
	require.NoError(t, s.Set("ocr.binary", "reportqa-no-such-ocr-binary"))

	err := checkByName(t, s, "tesseract")(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDoctorChecks_HistoryDisabled(t *testing.T) {
	s := services.NewSettingsService(memory.NewConfigStore(), nil)

	err := checkByName(t, s, "answer history")(context.Background())

	assert.EqualError(t, err, "disabled")
}

func TestDoctorChecks_HistoryOpens(t *testing.T) {
	s := services.NewSettingsService(memory.NewConfigStore(), nil)
	require.NoError(t, s.Set("history.enabled", "true"))
	require.NoError(t, s.Set("history.path", filepath.Join(t.TempDir(), "data")))

	err := checkByName(t, s, "answer history")(context.Background())

	assert.NoError(t, err)
}

func TestDoctorChecks_OptionalFlags(t *testing.T) {
	s := services.NewSettingsService(memory.NewConfigStore(), nil)

	optional := map[string]bool{}
	for _, c := range doctorChecks(s) {
		optional[c.Name] = c.Optional
	}

	assert.True(t, optional["tesseract"])
	assert.True(t, optional["answer history"])
	assert.False(t, optional["prompt directory"])
}
