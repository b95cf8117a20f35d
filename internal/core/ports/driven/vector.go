package driven

import "context"

// VectorIndex stores embedding vectors and answers nearest-neighbour queries
// under cosine similarity.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Search finds the k nearest neighbours to the query vector.
	// Hits are ordered by descending similarity; equal similarities keep
	// insertion order.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorIndexFactory creates an empty VectorIndex of the given dimension.
// Each call returns an independent index.
type VectorIndexFactory func(dimensions int) VectorIndex

// VectorHit represents a vector search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score (0-1 for normalised vectors).
	Similarity float64
}
