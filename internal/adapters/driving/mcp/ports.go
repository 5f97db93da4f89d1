package mcp

import (
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides provision search.
	Search driving.SearchService

	// Document reads statutes, provisions and definitions.
	Document driving.DocumentService

	// Resolver maps free-form references to document ids.
	Resolver driving.ResolverService

	// Citation validates and formats citations.
	Citation driving.CitationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	// Resolver and Citation are optional; their tools are skipped when nil
	return nil
}
