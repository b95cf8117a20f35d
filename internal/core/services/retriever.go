package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// Retriever fetches the top-K chunks for a question. It is the seam where
// retrieval strategy can change without touching index construction.
type Retriever struct {
	k             int
	minSimilarity float64
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithMinSimilarity drops hits scoring below threshold.
func WithMinSimilarity(threshold float64) RetrieverOption {
	return func(r *Retriever) {
		r.minSimilarity = threshold
	}
}

// NewRetriever creates a retriever returning at most k chunks.
// A non-positive k falls back to domain.DefaultTopK.
func NewRetriever(k int, opts ...RetrieverOption) *Retriever {
	if k <= 0 {
		k = domain.DefaultTopK
	}
	r := &Retriever{k: k}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// K returns the number of chunks requested per question.
func (r *Retriever) K() int {
	return r.k
}

// Retrieve returns the chunks of index most similar to question, best first.
func (r *Retriever) Retrieve(ctx context.Context, index Searcher, question string) ([]domain.ScoredChunk, error) {
	if index == nil {
		return nil, errors.New("retrieve: no index selected")
	}

	hits, err := index.Search(ctx, question, r.k)
	if err != nil {
		return nil, err
	}

	if r.minSimilarity > 0 {
		kept := hits[:0]
		for _, h := range hits {
			if h.Similarity >= r.minSimilarity {
				kept = append(kept, h)
			}
		}
		hits = kept
	}

	logger.Debug("retrieve: %d chunks (k=%d)", len(hits), r.k)
	return hits, nil
}
