package driven

import "context"

// TextExtractor turns a report image into plain text.
type TextExtractor interface {
	// Available reports whether the OCR engine can be used.
	Available() bool

	// Extract returns the text recognised in image.
	Extract(ctx context.Context, image []byte) (string, error)
}
