package mcp

import (
	"github.com/custodia-labs/reportqa/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions. Required.
	Answer driving.AnswerService

	// Report extracts text from report images. Optional.
	Report driving.ReportService

	// History lists recent answers. Optional; the tool is not registered
	// without it.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	return nil
}
