package services

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

// --- Mock implementations ---

const mockDims = 64

// mockEmbeddingService implements driven.EmbeddingService with a
// deterministic bag-of-words hash so related texts score higher.
type mockEmbeddingService struct {
	embedErr error
	batchErr error
	short    bool

	embedCalls atomic.Int32
	batchCalls atomic.Int32
}

var _ driven.EmbeddingService = (*mockEmbeddingService)(nil)

func bagOfWords(text string) []float32 {
	vec := make([]float32, mockDims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%mockDims]++
	}
	return vec
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls.Add(1)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return bagOfWords(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls.Add(1)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = bagOfWords(t)
	}
	if m.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return mockDims }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Ping(context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error { return nil }

func (m *mockEmbeddingService) calls() int {
	return int(m.embedCalls.Load() + m.batchCalls.Load())
}

// mockLLMService implements driven.LLMService and records prompts.
type mockLLMService struct {
	answer  string
	err     error
	echo    bool
	panicOn bool

	mu      sync.Mutex
	prompts []string
	opts    []driven.GenerateOptions
}

var _ driven.LLMService = (*mockLLMService)(nil)

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	m.mu.Unlock()

	if m.panicOn {
		panic("boom")
	}
	if m.err != nil {
		return "", m.err
	}
	if m.echo {
		return prompt, nil
	}
	return m.answer, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }
func (m *mockLLMService) Ping(context.Context) error { return nil }
func (m *mockLLMService) Close() error { return nil }

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockLLMService) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// mockPromptStore implements driven.PromptStore.
type mockPromptStore struct {
	text string
	err  error
}

var _ driven.PromptStore = (*mockPromptStore)(nil)

func (m *mockPromptStore) Load(_ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.text == "" {
		return "", domain.ErrNotFound
	}
	return m.text, nil
}

func (m *mockPromptStore) Reload() {}

// failingAnswerLog implements driven.AnswerLog and always fails.
type failingAnswerLog struct {
	err error
}

func (f *failingAnswerLog) Record(context.Context, domain.AnswerRecord) error { return f.err }
func (f *failingAnswerLog) Recent(context.Context, int) ([]domain.AnswerRecord, error) {
	return nil, f.err
}
func (f *failingAnswerLog) Close() error { return nil }

// mockTextExtractor implements driven.TextExtractor.
type mockTextExtractor struct {
	available bool
	text      string
	err       error
	calls     int
}

func (m *mockTextExtractor) Available() bool { return m.available }

func (m *mockTextExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	m.calls++
	return m.text, m.err
}

func chunk(id, content string) domain.Chunk {
	return domain.Chunk{ID: id, DocumentID: "doc", Content: content}
}
