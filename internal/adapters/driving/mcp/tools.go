package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// defaultHistoryLimit is used when recent_answers is called without a limit.
const defaultHistoryLimit = 10

// AnswerInput is the input schema for the answer_question tool.
type AnswerInput struct {
	Question string `json:"question" jsonschema:"the question about the patient's report"`
	Context  string `json:"context,omitempty" jsonschema:"report text to answer from; omit to use the built-in sample report"`
}

// AnswerOutput is the output schema for the answer_question tool.
// Exactly one of Answer and Error is non-empty.
type AnswerOutput struct {
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Corpus string `json:"corpus,omitempty"`
}

// ExtractInput is the input schema for the extract_report_text tool.
type ExtractInput struct {
	ImageBase64 string `json:"image_base64" jsonschema:"the report image, base64 encoded"`
}

// ExtractOutput is the output schema for the extract_report_text tool.
type ExtractOutput struct {
	Text string `json:"text"`
}

// HistoryInput is the input schema for the recent_answers tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of answers to return (default 10)"`
}

// HistoryOutput is the output schema for the recent_answers tool.
type HistoryOutput struct {
	Answers []HistoryEntry `json:"answers"`
	Count   int            `json:"count"`
}

// HistoryEntry is one logged answer.
type HistoryEntry struct {
	Question  string `json:"question"`
	Answer    string `json:"answer,omitempty"`
	Error     string `json:"error,omitempty"`
	Corpus    string `json:"corpus"`
	CreatedAt string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "answer_question",
		Description: "Answer a question about a blood test report in at most three sentences",
	}, s.handleAnswer)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_report_text",
		Description: "Extract the text of a report image with OCR",
	}, s.handleExtract)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "recent_answers",
			Description: "List recently answered questions",
		}, s.handleHistory)
	}
}

// handleAnswer handles the answer_question tool invocation. Pipeline
// failures are reported in the output, never as a tool error.
func (s *Server) handleAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnswerInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	result := s.ports.Answer.AnswerQuestion(ctx, input.Question, input.Context)
	return nil, AnswerOutput{
		Answer: result.Answer,
		Error:  result.Error,
		Kind:   string(result.Kind),
		Corpus: string(result.Corpus),
	}, nil
}

// handleExtract handles the extract_report_text tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	if s.ports.Report == nil || !s.ports.Report.Available() {
		return nil, ExtractOutput{}, ErrOCRUnavailable
	}

	image, err := decodeImage(input.ImageBase64)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	text, err := s.ports.Report.ExtractText(ctx, image)
	if err != nil {
		return nil, ExtractOutput{}, err
	}
	return nil, ExtractOutput{Text: text}, nil
}

// handleHistory handles the recent_answers tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.ports.History.Recent(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Answers: make([]HistoryEntry, len(records)),
		Count:   len(records),
	}
	for i, rec := range records {
		output.Answers[i] = HistoryEntry{
			Question:  rec.Question,
			Answer:    rec.Answer,
			Error:     rec.Error,
			Corpus:    string(rec.Corpus),
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

// decodeImage accepts standard or URL-safe base64, with or without a
// data: URL prefix.
func decodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}
	if encoded == "" {
		return nil, fmt.Errorf("%w: image_base64 is required", domain.ErrInvalidInput)
	}

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(encoded); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: image_base64 is not valid base64", domain.ErrInvalidInput)
}
