package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService runs the answering pipeline:
// RECEIVED -> INDEX_SELECTED -> RETRIEVED -> PROMPTED -> ANSWERED,
// with any failure ending in FAILED. Each stage runs at most once per
// request and nothing is retried.
type AnswerService struct {
	defaultIndex Searcher
	builder      *IndexBuilder
	retriever    *Retriever
	prompts      *PromptAssembler
	llm          driven.LLMService
	genOpts      driven.GenerateOptions
	history      driven.AnswerLog
	now          func() time.Time
}

// AnswerOption configures an AnswerService.
type AnswerOption func(*AnswerService)

// WithAnswerLog records every completed request to log.
func WithAnswerLog(log driven.AnswerLog) AnswerOption {
	return func(s *AnswerService) {
		s.history = log
	}
}

// WithGenerateOptions sets the options passed to the language model.
func WithGenerateOptions(opts driven.GenerateOptions) AnswerOption {
	return func(s *AnswerService) {
		s.genOpts = opts
	}
}

// WithClock overrides the time source used for durations and records.
func WithClock(now func() time.Time) AnswerOption {
	return func(s *AnswerService) {
		s.now = now
	}
}

// NewAnswerService creates the answering pipeline.
// defaultIndex serves requests without context; builder creates the
// request-scoped index for requests with context.
func NewAnswerService(
	defaultIndex Searcher,
	builder *IndexBuilder,
	retriever *Retriever,
	prompts *PromptAssembler,
	llm driven.LLMService,
	opts ...AnswerOption,
) *AnswerService {
	if retriever == nil {
		retriever = NewRetriever(domain.DefaultTopK)
	}
	if prompts == nil {
		prompts = NewPromptAssembler(nil)
	}
	s := &AnswerService{
		defaultIndex: defaultIndex,
		builder:      builder,
		retriever:    retriever,
		prompts:      prompts,
		llm:          llm,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// run carries per-request pipeline state.
type run struct {
	state    domain.PipelineState
	corpus   domain.Corpus
	template string
}

func (r *run) advance(next domain.PipelineState) {
	logger.Debug("answer: %s -> %s", r.state, next)
	r.state = next
}

// AnswerQuestion implements driving.AnswerService.
func (s *AnswerService) AnswerQuestion(ctx context.Context, question, reportContext string) (result domain.AnswerResult) {
	start := s.now()
	r := &run{state: domain.StateReceived}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("answer: panic in %s: %v\n%s", r.state, p, debug.Stack())
			result = s.fail(r, fmt.Errorf("internal error: %v", p))
		}
		s.record(ctx, question, result, start)
	}()

	req := domain.AnswerRequest{Question: strings.TrimSpace(question), Context: reportContext}
	if req.Question == "" {
		return s.fail(r, fmt.Errorf("%w: question must not be empty", domain.ErrValidation))
	}

	index, release, err := s.selectIndex(ctx, req, r)
	if err != nil {
		return s.fail(r, err)
	}
	defer release()
	r.advance(domain.StateIndexSelected)

	hits, err := s.retriever.Retrieve(ctx, index, req.Question)
	if err != nil {
		return s.fail(r, err)
	}
	r.advance(domain.StateRetrieved)

	prompt := s.prompts.Assemble(hits, req.Question)
	r.template = prompt.TemplateVersion
	r.advance(domain.StatePrompted)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return s.fail(r, err)
	}
	r.advance(domain.StateAnswered)

	result = domain.NewAnswerResult(answer, r.corpus)
	result.TemplateVersion = r.template
	return result
}

// selectIndex returns the index for req. A request with context always
// gets a fresh index over that context alone; the default index is used
// only when no context is supplied.
func (s *AnswerService) selectIndex(ctx context.Context, req domain.AnswerRequest, r *run) (Searcher, func(), error) {
	noop := func() {}

	if !req.HasContext() {
		r.corpus = domain.CorpusDefault
		if s.defaultIndex == nil {
			return nil, noop, errors.New("default index is not loaded")
		}
		return s.defaultIndex, noop, nil
	}

	r.corpus = domain.CorpusAdHoc
	if s.builder == nil {
		return nil, noop, errors.New("no index builder configured for report context")
	}
	idx, err := s.builder.Build(ctx, domain.Document{
		ID:        uuid.NewString(),
		Content:   req.Context,
		Metadata:  map[string]any{"source": "request"},
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, noop, err
	}
	return idx, func() {
		if err := idx.Close(); err != nil {
			logger.Warn("answer: close ad-hoc index: %v", err)
		}
	}, nil
}

func (s *AnswerService) generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("%w: no language model configured", domain.ErrLLMUnavailable)
	}

	answer, err := s.llm.Generate(ctx, prompt.Text, s.genOpts)
	if err != nil {
		if errors.Is(err, domain.ErrModel) || errors.Is(err, domain.ErrConfiguration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrModel, err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w: model returned an empty answer", domain.ErrModel)
	}
	return answer, nil
}

func (s *AnswerService) fail(r *run, err error) domain.AnswerResult {
	logger.Debug("answer: %s -> %s: %v", r.state, domain.StateFailed, err)
	r.state = domain.StateFailed
	result := domain.NewFailedResult(err, r.corpus)
	result.TemplateVersion = r.template
	return result
}

// record writes result to the answer log. Failures are logged and
// never change the result.
func (s *AnswerService) record(ctx context.Context, question string, result domain.AnswerResult, start time.Time) {
	if s.history == nil {
		return
	}

	model := ""
	if s.llm != nil {
		model = s.llm.ModelName()
	}
	rec := domain.AnswerRecord{
		ID:              uuid.NewString(),
		Question:        question,
		Answer:          result.Answer,
		Error:           result.Error,
		Kind:            result.Kind,
		Corpus:          result.Corpus,
		TemplateVersion: result.TemplateVersion,
		Model:           model,
		Duration:        s.now().Sub(start),
		CreatedAt:       start,
	}
	if err := s.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("answer: record history: %v", err)
	}
}
