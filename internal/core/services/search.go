package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
	"github.com/custodia-labs/tashri/internal/logger"
	"github.com/custodia-labs/tashri/internal/searchquery"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchService runs provision searches with query fallback.
type SearchService struct {
	engine driven.SearchEngine
}

// NewSearchService creates a new search service.
func NewSearchService(engine driven.SearchEngine) *SearchService {
	return &SearchService{engine: engine}
}

// Search sanitises query and runs its variants in order until one returns
// rows. The response records which variant produced the results.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	resp := &domain.SearchResponse{Query: query, Results: []domain.SearchResult{}}

	if opts.Zone != "" && !opts.Zone.IsValid() {
		return nil, fmt.Errorf("%w: unknown legal zone %q", domain.ErrInvalidInput, opts.Zone)
	}
	switch {
	case opts.Limit <= 0:
		opts.Limit = defaultSearchLimit
	case opts.Limit > maxSearchLimit:
		opts.Limit = maxSearchLimit
	}

	variants := searchquery.Build(query)
	if variants.IsEmpty() {
		logger.Debug("Nothing searchable in query, returning no results")
		return resp, nil
	}
	if s.engine == nil {
		return nil, domain.ErrSearchUnavailable
	}

	for i, variant := range variants.All() {
		logger.Debug("Trying variant %d: %s", i, variant)
		results, err := s.engine.Search(ctx, variant, opts)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", variant, err)
		}
		resp.Variant = variant
		resp.UsedFallback = i > 0 || variants.Primary == ""
		if len(results) > 0 {
			resp.Results = results
			logger.Debug("Variant %d returned %d results", i, len(results))
			return resp, nil
		}
	}
	return resp, nil
}
