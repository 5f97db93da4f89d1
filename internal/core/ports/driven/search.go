package driven

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// SearchEngine runs an already sanitised full-text query over provisions.
// Backed by SQLite FTS5 with BM25 ranking.
type SearchEngine interface {
	// Search executes query exactly as given. Callers must sanitise it.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
