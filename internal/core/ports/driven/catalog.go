package driven

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// SourceCatalog lists the statutes to ingest in declared order.
type SourceCatalog interface {
	// List returns every source in declared order.
	List(ctx context.Context) ([]domain.Source, error)

	// Get returns a single source by id.
	Get(ctx context.Context, id string) (*domain.Source, error)
}
