package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
	"github.com/custodia-labs/reportqa/internal/logger"
	"github.com/custodia-labs/reportqa/internal/postprocessors/normalise"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService extracts report text from uploaded images.
type ReportService struct {
	extractor driven.TextExtractor
}

// NewReportService creates a report service. A nil extractor makes
// every extraction fail with domain.ErrOCRUnavailable.
func NewReportService(extractor driven.TextExtractor) *ReportService {
	return &ReportService{extractor: extractor}
}

// Available reports whether an OCR engine is installed.
func (s *ReportService) Available() bool {
	return s.extractor != nil && s.extractor.Available()
}

// ExtractText returns normalised text recognised in image.
func (s *ReportService) ExtractText(ctx context.Context, image []byte) (string, error) {
	if !s.Available() {
		return "", domain.ErrOCRUnavailable
	}
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty upload", domain.ErrInvalidInput)
	}

	text, err := s.extractor.Extract(ctx, image)
	if err != nil {
		if errors.Is(err, domain.ErrOCRUnavailable) || errors.Is(err, domain.ErrOCR) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrOCR, err)
	}

	logger.Debug("report: extracted %d bytes of text", len(text))
	return normalise.Text(text), nil
}
