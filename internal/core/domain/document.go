package domain

import "time"

// Document represents a unit of source text, either a whole report or
// the input to segmentation. Documents are not modified once created.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the full text content.
	Content string

	// Metadata contains arbitrary key-value pairs of primitive values.
	Metadata map[string]any

	// CreatedAt is when the document was created.
	CreatedAt time.Time
}

// Chunk represents a retrievable unit within a document.
// Documents are split into overlapping chunks by the segmenter.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// Len returns the chunk length in characters.
func (c Chunk) Len() int {
	return len([]rune(c.Content))
}
