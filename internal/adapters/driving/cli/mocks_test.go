package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
)

type mockAnswerService struct {
	result   domain.AnswerResult
	question string
	context  string
	calls    int
}

func (m *mockAnswerService) AnswerQuestion(_ context.Context, question, reportContext string) domain.AnswerResult {
	m.calls++
	m.question = question
	m.context = reportContext
	return m.result
}

type mockReportService struct {
	text      string
	err       error
	available bool
	got       []byte
}

func (m *mockReportService) ExtractText(_ context.Context, image []byte) (string, error) {
	m.got = image
	return m.text, m.err
}

func (m *mockReportService) Available() bool {
	return m.available
}

type mockHistoryService struct {
	records []domain.AnswerRecord
	err     error
	limit   int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.AnswerRecord, error) {
	m.limit = limit
	return m.records, m.err
}

// useServices injects s for the duration of the test.
func useServices(t *testing.T, s *Services) {
	t.Helper()
	prevServices, prevBootstrap := loaded, bootstrap
	t.Cleanup(func() { loaded, bootstrap = prevServices, prevBootstrap })
	loaded, bootstrap = s, nil
}

// useSettings injects a settings service for the duration of the test.
func useSettings(t *testing.T, s driving.SettingsService) {
	t.Helper()
	prev := settingsService
	t.Cleanup(func() { settingsService = prev })
	settingsService = s
}

// useStdin replaces stdin with r for the duration of the test.
func useStdin(t *testing.T, r io.Reader, terminal bool) {
	t.Helper()
	prevStdin, prevTerminal := stdin, stdinIsTerminal
	t.Cleanup(func() { stdin, stdinIsTerminal = prevStdin, prevTerminal })
	stdin = r
	stdinIsTerminal = func() bool { return terminal }
}

// executeCommand runs rootCmd with args and returns everything it printed.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so values and the
// mutually-exclusive bookkeeping do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
