package driven

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// DocumentExporter writes a parsed document in the structured interchange
// shape, e.g. one JSON file per statute.
type DocumentExporter interface {
	Export(ctx context.Context, doc *domain.ParsedDocument) error
}
