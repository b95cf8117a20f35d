package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDoctorChecks(t *testing.T, checks ...Check) {
	t.Helper()
	prev := doctorChecks
	t.Cleanup(func() { doctorChecks = prev })
	SetDoctorChecks(checks...)
}

func TestDoctorCmd_AllPass(t *testing.T) {
	newTestSettings(t)
	useDoctorChecks(t, Check{Name: "tesseract", Run: func(context.Context) error { return nil }})

	out, err := executeCommand(t, "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "ok    settings")
	assert.Contains(t, out, "ok    embedding backend")
	assert.Contains(t, out, "ok    llm backend")
	assert.Contains(t, out, "ok    tesseract")
	assert.Contains(t, out, "All required checks passed.")
}

func TestDoctorCmd_OptionalFailureWarns(t *testing.T) {
	newTestSettings(t)
	useDoctorChecks(t, Check{
		Name:     "tesseract",
		Optional: true,
		Run:      func(context.Context) error { return errors.New("not found in PATH") },
	})

	out, err := executeCommand(t, "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "warn  tesseract: not found in PATH")
}

func TestDoctorCmd_RequiredFailure(t *testing.T) {
	newTestSettings(t)
	useDoctorChecks(t, Check{
		Name: "prompts",
		Run:  func(context.Context) error { return errors.New("permission denied") },
	})

	out, err := executeCommand(t, "doctor")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 check(s) failed")
	assert.Contains(t, out, "FAIL  prompts: permission denied")
}

func TestDoctorCmd_NoSettings(t *testing.T) {
	useSettings(t, nil)

	_, err := executeCommand(t, "doctor")

	require.Error(t, err)
}
