package driven

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// Extractor converts raw HTML from one legal zone into a ParsedDocument.
type Extractor interface {
	// Zone returns the legal zone this extractor handles.
	Zone() domain.LegalZone

	// Extract parses the raw document. Extraction misses are reported as
	// warnings, not errors.
	Extract(ctx context.Context, raw *domain.RawDocument) (*ExtractResult, error)
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	Document domain.ParsedDocument

	// Warnings are non-fatal diagnostics such as "no provisions found".
	Warnings []string
}

// ExtractorRegistry selects the extractor for a raw document's zone.
type ExtractorRegistry interface {
	// Extract dispatches to the extractor registered for raw.Source.Zone.
	Extract(ctx context.Context, raw *domain.RawDocument) (*ExtractResult, error)

	// Register adds an extractor, replacing any previous one for its zone.
	Register(extractor Extractor)

	// Zones returns the zones with a registered extractor.
	Zones() []domain.LegalZone
}
