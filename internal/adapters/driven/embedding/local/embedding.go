// Package local provides an offline embedding service based on feature
// hashing. It needs no network access or model files, so the default
// report can be indexed on any machine.
package local

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultDimensions = domain.DefaultLocalEmbedDims
	DefaultModel      = "hashing-384"
)

// tokenPattern keeps decimal values such as 109.8 and 12,000 intact.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:[.,']\p{N}+)*`)

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "for", "to", "of", "in", "on", "at",
		"by", "with", "as", "is", "are", "was", "were", "be", "been", "it", "this", "that", "from",
		"what", "which", "my", "me", "i", "do", "does", "how", "about", "can", "you", "your", "tell",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// Config holds configuration for the local embedding service.
type Config struct {
	// Dimensions is the embedding vector size (default: 384).
	Dimensions int

	// Bigrams adds adjacent token pairs as features (default: true via New).
	Bigrams bool
}

// EmbeddingService hashes unigram and bigram features into a fixed-size
// vector with sublinear term frequency and L2 normalisation.
type EmbeddingService struct {
	dimensions int
	bigrams    bool
}

// NewEmbeddingService creates a hashing embedder.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{
		dimensions: cfg.Dimensions,
		bigrams:    cfg.Bigrams,
	}
}

// New creates a hashing embedder with default dimensions and bigrams on.
func New() *EmbeddingService {
	return NewEmbeddingService(Config{Dimensions: DefaultDimensions, Bigrams: true})
}

// Embed generates a vector embedding for the given text.
// Text without any tokens embeds to the zero vector.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.vector(text), nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = s.vector(text)
	}
	return out, nil
}

func (s *EmbeddingService) vector(text string) []float32 {
	tokens := Tokenize(text)
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if s.bigrams && i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}

	acc := make([]float64, s.dimensions)
	for feature, n := range counts {
		bucket, sign := s.hash(feature)
		acc[bucket] += sign * (1 + math.Log(float64(n)))
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, s.dimensions)
	if norm == 0 {
		return vec
	}
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

// hash maps a feature to a bucket and a sign. The sign halves the bias
// that collisions add to dot products.
func (s *EmbeddingService) hash(feature string) (int, float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	sign := 1.0
	if sum>>63 == 1 {
		sign = -1.0
	}
	return int(sum % uint64(s.dimensions)), sign
}

// Tokenize lowercases text and splits it into word and number tokens,
// dropping common English stopwords.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return fmt.Sprintf("hashing-%d", s.dimensions)
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
