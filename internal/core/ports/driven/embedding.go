package driven

import "context"

// EmbeddingService generates vector embeddings for text.
// The same service must embed both the indexed chunks and the query,
// otherwise similarities are meaningless.
//
// Implementations include:
//   - local: offline feature hashing (default)
//   - Gemini (text-embedding-004)
//   - OpenAI (text-embedding-3-small)
//   - Ollama (all-minilm, nomic-embed-text)
type EmbeddingService interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// The result has one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
