// Package mcp provides an MCP (Model Context Protocol) server adapter for reportqa.
// It lets AI assistants ask questions about lab reports and extract report text.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")

// ErrOCRUnavailable is the tool error returned when no OCR engine is installed.
var ErrOCRUnavailable = errors.New("tesseract OCR is not installed on the server")
