package driving

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// SearchService provides provision search to external actors.
type SearchService interface {
	// Search sanitises query, runs the primary variant and falls back to
	// looser variants when it returns nothing.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
}
