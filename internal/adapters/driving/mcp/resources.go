package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for reportqa resources.
	uriScheme = "report://"

	// defaultReportURI serves the built-in sample report.
	defaultReportURI = uriScheme + "default"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         defaultReportURI,
		Name:        "default-report",
		Description: "The built-in sample blood test report used when no context is given",
		MIMEType:    "text/plain",
	}, s.handleDefaultReport)
}

// handleDefaultReport returns the built-in report text.
func (s *Server) handleDefaultReport(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if req.Params.URI != defaultReportURI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     domain.DefaultCorpus,
		}},
	}, nil
}
