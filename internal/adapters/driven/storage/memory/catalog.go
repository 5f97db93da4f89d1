package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
)

// Ensure SourceCatalog implements the interface.
var _ driven.SourceCatalog = (*SourceCatalog)(nil)

// SourceCatalog is an in-memory implementation of driven.SourceCatalog.
type SourceCatalog struct {
	mu      sync.RWMutex
	sources []domain.Source
}

// NewSourceCatalog creates a catalogue holding sources in the given order.
func NewSourceCatalog(sources ...domain.Source) *SourceCatalog {
	return &SourceCatalog{sources: append([]domain.Source(nil), sources...)}
}

// Add appends a source, replacing an existing entry with the same id in place.
func (c *SourceCatalog) Add(source domain.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.sources {
		if c.sources[i].ID == source.ID {
			c.sources[i] = source
			return
		}
	}
	c.sources = append(c.sources, source)
}

// List returns every source in declared order.
func (c *SourceCatalog) List(_ context.Context) ([]domain.Source, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Source(nil), c.sources...), nil
}

// Get retrieves a source by id.
func (c *SourceCatalog) Get(_ context.Context, id string) (*domain.Source, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, source := range c.sources {
		if source.ID == id {
			return &source, nil
		}
	}
	return nil, domain.ErrNotFound
}
