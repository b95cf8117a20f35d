// Package tesseract extracts report text by running the tesseract binary.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/core/ports/driven"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Default settings.
const (
	DefaultBinary   = "tesseract"
	DefaultLanguage = "eng"
	DefaultTimeout  = 2 * time.Minute
)

// Config holds extractor configuration.
type Config struct {
	// Binary is the executable name or path (default: tesseract).
	Binary string

	// Language is the tesseract language pack (default: eng).
	Language string

	// Timeout bounds a single extraction (default: 2m).
	Timeout time.Duration
}

// Extractor pipes an image through tesseract and reads the text from stdout.
type Extractor struct {
	path     string
	language string
	timeout  time.Duration
}

// NewExtractor resolves the tesseract binary. A missing binary is not an
// error: the extractor reports itself unavailable instead.
func NewExtractor(cfg Config) *Extractor {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	path, err := exec.LookPath(cfg.Binary)
	if err != nil {
		logger.Warn("ocr: %s not found: %v", cfg.Binary, err)
		path = ""
	}

	return &Extractor{
		path:     path,
		language: cfg.Language,
		timeout:  cfg.Timeout,
	}
}

// Available reports whether the binary was found.
func (e *Extractor) Available() bool {
	return e.path != ""
}

// Path returns the resolved binary path, or empty when unavailable.
func (e *Extractor) Path() string {
	return e.path
}

// Extract runs tesseract on image and returns its raw output.
func (e *Extractor) Extract(ctx context.Context, image []byte) (string, error) {
	if !e.Available() {
		return "", domain.ErrOCRUnavailable
	}
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path, "stdin", "stdout", "-l", e.language)
	cmd.Stdin = bytes.NewReader(image)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("tesseract: %w", ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}

	logger.Debug("ocr: extracted %d bytes from %d byte image", stdout.Len(), len(image))
	return stdout.String(), nil
}
