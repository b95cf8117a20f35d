// Package chunker provides a recursive character text splitter.
//
// Text is split at the coarsest separator it contains (paragraph break,
// then line break, sentence end, whitespace and finally single characters).
// Pieces that are still too long are split again with the next separator.
// Small pieces are merged back up to the chunk size, and each new chunk
// starts with up to overlap characters carried over from the previous one.
// All lengths are in characters (runes), not bytes.
package chunker

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// DefaultSeparators are tried in order from coarsest to finest.
// The empty separator splits into single characters.
var DefaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", " ", ""}

// Processor splits document content into overlapping chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize  int
	overlap    int
	separators []string
	err        error
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
			return
		}
		p.fail(fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, size))
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
			return
		}
		p.fail(fmt.Errorf("%w: chunk overlap must not be negative, got %d", domain.ErrInvalidInput, overlap))
	}
}

// WithSeparators replaces the separator list. Without a trailing ""
// a piece with no separator left may exceed the chunk size.
func WithSeparators(separators ...string) Option {
	return func(p *Processor) {
		if len(separators) > 0 {
			p.separators = append([]string(nil), separators...)
		}
	}
}

func (p *Processor) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// New creates a new chunker processor with the given options.
// Invalid values are ignored and an overlap that is not smaller than the
// chunk size is reduced to a quarter of it.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}
	p.err = nil

	return p
}

// NewChecked is like New but rejects invalid options with an error
// wrapping domain.ErrInvalidInput.
func NewChecked(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, p.overlap, p.chunkSize)
	}
	return p, nil
}

// Segment splits every document with the given size and overlap and
// returns the chunks in document order.
func Segment(ctx context.Context, docs []domain.Document, chunkSize, chunkOverlap int) ([]domain.Chunk, error) {
	p, err := NewChecked(WithChunkSize(chunkSize), WithOverlap(chunkOverlap))
	if err != nil {
		return nil, err
	}
	return p.Segment(ctx, docs)
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Segment splits every document and returns the chunks in document order.
func (p *Processor) Segment(ctx context.Context, docs []domain.Document) ([]domain.Chunk, error) {
	var out []domain.Chunk
	for i := range docs {
		chunks, err := p.Process(ctx, &docs[i], nil)
		if err != nil {
			return nil, err
		}
		out = append(out, chunks...)
	}
	return out, nil
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Content) == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	texts := p.SplitText(doc.Content)
	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		metadata := make(map[string]any, len(doc.Metadata))
		maps.Copy(metadata, doc.Metadata)

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    text,
			Position:   i,
			Metadata:   metadata,
		})
	}

	return chunks, nil
}

// SplitText splits text into chunk strings without building domain chunks.
// Leading and trailing whitespace is trimmed from each chunk and chunks
// that are only whitespace are dropped.
func (p *Processor) SplitText(text string) []string {
	return p.split(text, p.separators)
}

func (p *Processor) split(text string, separators []string) []string {
	// Pick the first separator present in the text.
	separator := separators[len(separators)-1]
	var finer []string
	for i, sep := range separators {
		if sep == "" {
			separator = ""
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			finer = separators[i+1:]
			break
		}
	}

	var (
		final []string
		good  []string
	)
	for _, piece := range splitKeepSeparator(text, separator) {
		if runeLen(strings.TrimSpace(piece)) <= p.chunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, p.merge(good)...)
			good = nil
		}
		if len(finer) == 0 {
			// Nothing finer to split with; the piece stands alone.
			if s := strings.TrimSpace(piece); s != "" {
				final = append(final, s)
			}
			continue
		}
		final = append(final, p.split(piece, finer)...)
	}
	if len(good) > 0 {
		final = append(final, p.merge(good)...)
	}
	return final
}

// merge joins consecutive pieces into chunks of at most chunkSize
// characters. When a chunk is emitted the window keeps its trailing
// pieces, up to overlap characters, as the head of the next chunk.
// Lengths are measured on the trimmed text, as chunks are emitted trimmed.
func (p *Processor) merge(pieces []string) []string {
	var (
		out     []string
		current []string
		total   int
	)
	for _, piece := range pieces {
		n := runeLen(piece)
		if len(current) > 0 && trimmedLen(current, piece, total+n) > p.chunkSize {
			if s := strings.TrimSpace(strings.Join(current, "")); s != "" {
				out = append(out, s)
			}
			for len(current) > 0 &&
				(trimmedLen(current, "", total) > p.overlap || trimmedLen(current, piece, total+n) > p.chunkSize) {
				total -= runeLen(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
	}
	if s := strings.TrimSpace(strings.Join(current, "")); s != "" {
		out = append(out, s)
	}
	return out
}

// trimmedLen returns the rune length of pieces followed by next, whose
// raw length is total, without leading and trailing whitespace.
func trimmedLen(pieces []string, next string, total int) int {
	count := len(pieces)
	if next != "" {
		count++
	}
	at := func(i int) string {
		if i == len(pieces) {
			return next
		}
		return pieces[i]
	}

	lead := 0
	for i := 0; i < count; i++ {
		s := at(i)
		rest := strings.TrimLeftFunc(s, unicode.IsSpace)
		lead += runeLen(s) - runeLen(rest)
		if rest != "" {
			break
		}
	}
	if lead >= total {
		return 0
	}

	trail := 0
	for i := count - 1; i >= 0; i-- {
		s := at(i)
		rest := strings.TrimRightFunc(s, unicode.IsSpace)
		trail += runeLen(s) - runeLen(rest)
		if rest != "" {
			break
		}
	}
	return total - lead - trail
}

// splitKeepSeparator splits text on sep, keeping sep at the end of every
// piece but the last so that joining the pieces restores text exactly.
// The empty separator yields one piece per character.
func splitKeepSeparator(text, sep string) []string {
	if sep == "" {
		pieces := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}
	parts := strings.SplitAfter(text, sep)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
