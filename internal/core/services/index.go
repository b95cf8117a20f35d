package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// Searcher finds the chunks most similar to a query.
type Searcher interface {
	// Search returns up to k chunks ranked by descending similarity.
	Search(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error)
}

// Ensure EmbeddingIndex implements Searcher.
var _ Searcher = (*EmbeddingIndex)(nil)

// EmbeddingIndex pairs an embedding function with a vector index over a
// fixed set of chunks. It is not modified after BuildIndex returns, so
// concurrent searches are safe.
type EmbeddingIndex struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorIndex
	chunks   map[string]domain.Chunk
	order    []string
}

// BuildIndex embeds every chunk once and stores the vectors in vectors,
// which must be empty. Embedding failures wrap domain.ErrEmbedding.
func BuildIndex(ctx context.Context, embedder driven.EmbeddingService, vectors driven.VectorIndex, chunks []domain.Chunk) (*EmbeddingIndex, error) {
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if vectors == nil {
		return nil, errors.New("build index: vector index is nil")
	}

	idx := &EmbeddingIndex{
		embedder: embedder,
		vectors:  vectors,
		chunks:   make(map[string]domain.Chunk, len(chunks)),
		order:    make([]string, 0, len(chunks)),
	}
	if len(chunks) == 0 {
		return idx, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	embeddings, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, embeddingError("embed chunks", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: embed chunks: got %d vectors for %d chunks",
			domain.ErrEmbedding, len(embeddings), len(chunks))
	}

	for i, c := range chunks {
		if _, dup := idx.chunks[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate chunk id %s", domain.ErrInvalidInput, c.ID)
		}
		if err := vectors.Add(ctx, c.ID, embeddings[i]); err != nil {
			return nil, vectorError("store vector", err)
		}
		idx.chunks[c.ID] = c
		idx.order = append(idx.order, c.ID)
	}

	logger.Debug("index: built %d chunks with %s", len(chunks), embedder.ModelName())
	return idx, nil
}

// Search embeds query with the index's embedding function and returns the
// k nearest chunks. Ties keep insertion order.
func (idx *EmbeddingIndex) Search(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 || len(idx.order) == 0 {
		return nil, nil
	}

	vec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, embeddingError("embed query", err)
	}

	hits, err := idx.vectors.Search(ctx, vec, k)
	if err != nil {
		return nil, vectorError("vector search", err)
	}

	results := make([]domain.ScoredChunk, 0, len(hits))
	for _, h := range hits {
		chunk, ok := idx.chunks[h.ChunkID]
		if !ok {
			logger.Warn("index: vector hit %s has no chunk", h.ChunkID)
			continue
		}
		results = append(results, domain.ScoredChunk{Chunk: chunk, Similarity: h.Similarity})
	}
	return results, nil
}

// Len returns the number of indexed chunks.
func (idx *EmbeddingIndex) Len() int {
	return len(idx.order)
}

// Chunks returns the indexed chunks in insertion order.
func (idx *EmbeddingIndex) Chunks() []domain.Chunk {
	out := make([]domain.Chunk, len(idx.order))
	for i, id := range idx.order {
		out[i] = idx.chunks[id]
	}
	return out
}

// Close releases the underlying vector index.
func (idx *EmbeddingIndex) Close() error {
	return idx.vectors.Close()
}

// embeddingError tags err with domain.ErrEmbedding unless it already
// belongs to the pipeline taxonomy or is a context error.
func embeddingError(op string, err error) error {
	if errors.Is(err, domain.ErrEmbedding) || errors.Is(err, domain.ErrConfiguration) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrEmbedding, op, err)
}

// vectorError reports a vector index rejection, usually a dimension
// mismatch, as an embedding failure. The cause is flattened so it does
// not also match domain.ErrInvalidInput.
func vectorError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrEmbedding, op, err)
}

// IndexBuilder turns report documents into EmbeddingIndex values.
// Every Build uses a fresh vector index, so indices never share state.
type IndexBuilder struct {
	pipeline   driven.PostProcessorPipeline
	embedder   driven.EmbeddingService
	newVectors driven.VectorIndexFactory
}

// NewIndexBuilder creates an index builder.
func NewIndexBuilder(pipeline driven.PostProcessorPipeline, embedder driven.EmbeddingService, newVectors driven.VectorIndexFactory) *IndexBuilder {
	return &IndexBuilder{
		pipeline:   pipeline,
		embedder:   embedder,
		newVectors: newVectors,
	}
}

// Build segments docs and indexes the resulting chunks.
// Documents that yield no chunks are rejected with domain.ErrValidation.
func (b *IndexBuilder) Build(ctx context.Context, docs ...domain.Document) (*EmbeddingIndex, error) {
	if b.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	var chunks []domain.Chunk
	for i := range docs {
		c, err := b.pipeline.Process(ctx, &docs[i])
		if err != nil {
			return nil, fmt.Errorf("segment document %s: %w", docs[i].ID, err)
		}
		chunks = append(chunks, c...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: report contains no indexable text", domain.ErrValidation)
	}

	return BuildIndex(ctx, b.embedder, b.newVectors(b.embedder.Dimensions()), chunks)
}

// BuildDefaultIndex indexes the built-in sample report.
func BuildDefaultIndex(ctx context.Context, b *IndexBuilder) (*EmbeddingIndex, error) {
	logger.Section("Default Index")
	idx, err := b.Build(ctx, domain.DefaultCorpusDocument())
	if err != nil {
		return nil, fmt.Errorf("build default index: %w", err)
	}
	logger.Info("default index ready: %d chunks", idx.Len())
	return idx, nil
}
