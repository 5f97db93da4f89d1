package extractors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps legal zones to their extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.LegalZone]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.LegalZone]driven.Extractor),
	}
}

// NewDefaultRegistry creates a registry with the federal, DIFC and ADGM
// extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewFederal())
	r.Register(NewDIFC())
	r.Register(NewADGM())
	return r
}

// Register adds an extractor, replacing any previous one for its zone.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[extractor.Zone()] = extractor
}

// Extract dispatches raw to the extractor for its source's zone.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil raw document", domain.ErrInvalidInput)
	}

	r.mu.RLock()
	extractor, ok := r.extractors[raw.Source.Zone]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedZone, raw.Source.Zone)
	}
	return extractor.Extract(ctx, raw)
}

// Zones returns the registered zones in a stable order.
func (r *Registry) Zones() []domain.LegalZone {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zones := make([]domain.LegalZone, 0, len(r.extractors))
	for zone := range r.extractors {
		zones = append(zones, zone)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })
	return zones
}
