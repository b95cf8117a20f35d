// Package ollama answers report questions with a model served by a local
// Ollama daemon.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL  = "http://localhost:11434"
	DefaultLLMModel = "llama3.2"
	// DefaultLLMTimeout is generous because CPU-only hosts take minutes
	// to write a full answer.
	DefaultLLMTimeout = 300 * time.Second
)

// LLMConfig selects the daemon and model. Zero fields take the defaults above.
type LLMConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService calls /api/generate with streaming disabled.
type LLMService struct {
	client  *http.Client
	baseURL string
	model   string
}

type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

type options struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature float64  `json:"temperature,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// NewLLMService never fails; an unreachable daemon surfaces on the first call or Ping.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
}

// Generate returns the whole completion for prompt. Sampling options are
// only sent when at least one is set, so the model's own defaults apply otherwise.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	body := generateRequest{Model: s.model, Prompt: prompt}
	if opts.MaxTokens > 0 || opts.Temperature > 0 || len(opts.StopWords) > 0 {
		body.Options = &options{
			NumPredict:  opts.MaxTokens,
			Temperature: opts.Temperature,
			Stop:        opts.StopWords,
		}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("ollama: encode generate request: %w", err)
	}

	status, raw, err := s.do(ctx, http.MethodPost, "/api/generate", payload)
	if err != nil {
		return "", err
	}

	var out generateResponse
	if jsonErr := json.Unmarshal(raw, &out); jsonErr != nil {
		if status != http.StatusOK {
			return "", statusError(status, string(raw))
		}
		return "", fmt.Errorf("ollama: decode generate response: %w", jsonErr)
	}
	switch {
	case out.Error != "":
		// Daemon errors such as a model that was never pulled arrive as JSON.
		return "", statusError(status, out.Error)
	case status != http.StatusOK:
		return "", statusError(status, string(raw))
	}
	return out.Response, nil
}

func (s *LLMService) ModelName() string {
	return s.model
}

// Ping lists local models, which needs no inference.
func (s *LLMService) Ping(ctx context.Context) error {
	status, raw, err := s.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return statusError(status, string(raw))
	}
	return nil
}

func (s *LLMService) Close() error {
	return nil
}

// do sends one request and returns the status with the full body.
func (s *LLMService) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("ollama: build %s request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("ollama: daemon at %s unreachable: %w", s.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("ollama: read %s response: %w", path, err)
	}
	return resp.StatusCode, raw, nil
}

func statusError(status int, detail string) error {
	return fmt.Errorf("ollama: HTTP %d: %s", status, strings.TrimSpace(detail))
}
