package domain

// ScoredChunk is a single hit returned by similarity search.
type ScoredChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity to the query, in [-1, 1].
	Similarity float64
}

// ChunkContents returns the content of each hit in rank order.
func ChunkContents(hits []ScoredChunk) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Chunk.Content
	}
	return out
}
