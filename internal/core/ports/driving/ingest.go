package driving

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// IngestService fetches, extracts and persists statutes.
type IngestService interface {
	// IngestAll ingests every catalogue source. Per-document failures are
	// recorded in the report and do not abort the batch.
	IngestAll(ctx context.Context) (*domain.IngestReport, error)

	// Ingest ingests the named sources only.
	Ingest(ctx context.Context, sourceIDs []string) (*domain.IngestReport, error)
}
