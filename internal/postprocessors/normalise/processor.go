// Package normalise cleans report text before segmentation.
// OCR output and text pasted from PDFs often carry Windows-1252 mojibake,
// CRLF line endings, control characters and long runs of blank lines.
package normalise

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

// mojibake maps UTF-8 text that was decoded as Windows-1252 back to the
// intended characters. Longer sequences come first so they win.
var mojibake = strings.NewReplacer(
	"â€˜", "‘",
	"â€™", "’",
	"â€œ", "“",
	"â€\u009d", "”",
	"â€“", "–",
	"â€”", "—",
	"â€¢", "•",
	"â€¦", "…",
	"Â°", "°",
	"Âµ", "µ",
	"Â±", "±",
	"Â\u00a0", " ",
	"\u00a0", " ",
)

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// strayQuotes are OCR artefacts that appear at the start of a line.
const strayQuotes = "‘`"

// Processor rewrites document text in place.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a normalise processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "normalise"
}

// Process normalises doc.Content when it runs before chunking (chunks is
// nil) and the content of each chunk when it runs after.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if chunks == nil {
		doc.Content = Text(doc.Content)
		return nil, nil
	}
	out := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		c.Content = Text(c.Content)
		if c.Content != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

// Text returns s with mojibake repaired, line endings unified, control
// characters removed and blank-line runs collapsed. Surrounding whitespace
// is trimmed.
func Text(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = mojibake.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, strayQuotes)
	}
	s = strings.Join(lines, "\n")

	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
