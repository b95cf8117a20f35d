package driving

import "context"

// ReportService extracts text from uploaded report images.
type ReportService interface {
	// ExtractText returns the text recognised in image.
	ExtractText(ctx context.Context, image []byte) (string, error)

	// Available reports whether text extraction is possible at all.
	Available() bool
}
