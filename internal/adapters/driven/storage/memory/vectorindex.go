package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a brute-force in-memory vector index using cosine
// similarity. Vectors are kept in insertion order, which is also the
// tie-break order for equal similarities.
type VectorIndex struct {
	mu         sync.RWMutex
	dimensions int
	ids        []string
	vectors    [][]float32
	norms      []float64
	positions  map[string]int
}

// NewVectorIndex creates an empty index for vectors of the given size.
// A non-positive dimension is fixed by the first Add.
func NewVectorIndex(dimensions int) *VectorIndex {
	return &VectorIndex{
		dimensions: dimensions,
		positions:  make(map[string]int),
	}
}

// NewVectorIndexFactory returns a factory producing independent indices.
func NewVectorIndexFactory() driven.VectorIndexFactory {
	return func(dimensions int) driven.VectorIndex {
		return NewVectorIndex(dimensions)
	}
}

// Add inserts a vector for the given chunk ID. Re-adding an ID replaces
// its vector but keeps its original position.
func (idx *VectorIndex) Add(_ context.Context, chunkID string, embedding []float32) error {
	if chunkID == "" {
		return fmt.Errorf("%w: empty chunk id", domain.ErrInvalidInput)
	}
	if len(embedding) == 0 {
		return fmt.Errorf("%w: empty embedding for chunk %s", domain.ErrInvalidInput, chunkID)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dimensions <= 0 {
		idx.dimensions = len(embedding)
	}
	if len(embedding) != idx.dimensions {
		return fmt.Errorf("%w: embedding has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(embedding), idx.dimensions)
	}

	vec := slices.Clone(embedding)
	norm := l2norm(vec)
	if pos, ok := idx.positions[chunkID]; ok {
		idx.vectors[pos] = vec
		idx.norms[pos] = norm
		return nil
	}
	idx.positions[chunkID] = len(idx.ids)
	idx.ids = append(idx.ids, chunkID)
	idx.vectors = append(idx.vectors, vec)
	idx.norms = append(idx.norms, norm)
	return nil
}

// Search returns the k vectors most similar to query, highest first.
func (idx *VectorIndex) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.ids) == 0 {
		return nil, nil
	}
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(query), idx.dimensions)
	}

	qnorm := l2norm(query)
	hits := make([]driven.VectorHit, len(idx.ids))
	for i, vec := range idx.vectors {
		hits[i] = driven.VectorHit{
			ChunkID:    idx.ids[i],
			Similarity: cosine(query, vec, qnorm, idx.norms[i]),
		}
	}

	// Stable so equal scores stay in insertion order.
	slices.SortStableFunc(hits, func(a, b driven.VectorHit) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		default:
			return 0
		}
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (idx *VectorIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// Dimensions returns the vector size the index accepts.
func (idx *VectorIndex) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimensions
}

// Close releases all stored vectors.
func (idx *VectorIndex) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.ids = nil
	idx.vectors = nil
	idx.norms = nil
	idx.positions = make(map[string]int)
	return nil
}

func l2norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns 0 when either vector has zero length.
func cosine(a, b []float32, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (na * nb)
}
