package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the answer", func(t *testing.T) {
		answers := &mockAnswerService{result: domain.NewAnswerResult("Your hemoglobin is 14 g/dl.", domain.CorpusDefault)}
		server := newTestServer(t, &Ports{Answer: answers})

		_, output, err := server.handleAnswer(ctx, nil, AnswerInput{Question: "What is my hemoglobin?"})

		require.NoError(t, err)
		assert.Equal(t, "Your hemoglobin is 14 g/dl.", output.Answer)
		assert.Empty(t, output.Error)
		assert.Equal(t, "default", output.Corpus)
		assert.Equal(t, "What is my hemoglobin?", answers.question)
		assert.Empty(t, answers.context)
	})

	t.Run("passes context through", func(t *testing.T) {
		answers := &mockAnswerService{result: domain.NewAnswerResult("250 mg/dl.", domain.CorpusAdHoc)}
		server := newTestServer(t, &Ports{Answer: answers})

		_, output, err := server.handleAnswer(ctx, nil, AnswerInput{
			Question: "What is my glucose?",
			Context:  "Patient B. Glucose 250 mg/dl.",
		})

		require.NoError(t, err)
		assert.Equal(t, "adhoc", output.Corpus)
		assert.Equal(t, "Patient B. Glucose 250 mg/dl.", answers.context)
	})

	t.Run("pipeline failure is output, not tool error", func(t *testing.T) {
		failed := domain.NewFailedResult(
			&domain.ConfigurationError{Key: "GOOGLE_API_KEY", Provider: domain.AIProviderGemini}, domain.CorpusDefault)
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{result: failed}})

		_, output, err := server.handleAnswer(ctx, nil, AnswerInput{Question: "q"})

		require.NoError(t, err)
		assert.Empty(t, output.Answer)
		assert.Contains(t, output.Error, "GOOGLE_API_KEY")
		assert.Equal(t, "configuration", output.Kind)
	})
}

func TestServer_handleExtract(t *testing.T) {
	ctx := context.Background()
	png := []byte{0x89, 'P', 'N', 'G'}

	t.Run("extracts text", func(t *testing.T) {
		report := &mockReportService{available: true, text: "Hemoglobin 14 g/dl"}
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, Report: report})

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{
			ImageBase64: base64.StdEncoding.EncodeToString(png),
		})

		require.NoError(t, err)
		assert.Equal(t, "Hemoglobin 14 g/dl", output.Text)
		assert.Equal(t, png, report.image)
	})

	t.Run("accepts data URLs", func(t *testing.T) {
		report := &mockReportService{available: true, text: "ok"}
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, Report: report})

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{
			ImageBase64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		})

		require.NoError(t, err)
		assert.Equal(t, png, report.image)
	})

	t.Run("no report service", func(t *testing.T) {
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{ImageBase64: "aGk="})
		assert.ErrorIs(t, err, ErrOCRUnavailable)
	})

	t.Run("ocr unavailable", func(t *testing.T) {
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, Report: &mockReportService{}})

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{ImageBase64: "aGk="})
		assert.ErrorIs(t, err, ErrOCRUnavailable)
	})

	t.Run("invalid base64", func(t *testing.T) {
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, Report: &mockReportService{available: true}})

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{ImageBase64: "!!not base64!!"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = server.handleExtract(ctx, nil, ExtractInput{ImageBase64: "  "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("extraction failure", func(t *testing.T) {
		report := &mockReportService{available: true, err: errors.New("OCR failed: bad image")}
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, Report: report})

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{ImageBase64: "aGk="})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad image")
	})
}

func TestServer_handleHistory(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("lists records with default limit", func(t *testing.T) {
		history := &mockHistoryService{records: []domain.AnswerRecord{
			{Question: "q1", Answer: "a1", Corpus: domain.CorpusDefault, CreatedAt: at},
		}}
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, History: history})

		_, output, err := server.handleHistory(ctx, nil, HistoryInput{})

		require.NoError(t, err)
		assert.Equal(t, defaultHistoryLimit, history.limit)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "q1", output.Answers[0].Question)
		assert.Equal(t, "2026-03-01T09:30:00Z", output.Answers[0].CreatedAt)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		history := &mockHistoryService{err: domain.ErrNotFound}
		server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, History: history})

		_, _, err := server.handleHistory(ctx, nil, HistoryInput{Limit: 3})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 3, history.limit)
	})
}

func TestDecodeImage(t *testing.T) {
	raw := []byte("report-bytes?")

	for name, encoded := range map[string]string{
		"std":     base64.StdEncoding.EncodeToString(raw),
		"raw std": base64.RawStdEncoding.EncodeToString(raw),
		"url":     base64.URLEncoding.EncodeToString(raw),
		"padded":  "  " + base64.StdEncoding.EncodeToString(raw) + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := decodeImage(encoded)
			require.NoError(t, err)
			assert.Equal(t, raw, got)
		})
	}
}
