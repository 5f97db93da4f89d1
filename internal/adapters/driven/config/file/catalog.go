package file

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
)

// Ensure SourceCatalog implements the interface.
var _ driven.SourceCatalog = (*SourceCatalog)(nil)

//go:embed catalog.toml
var defaultCatalog []byte

// DefaultCatalog returns the embedded catalogue source.
func DefaultCatalog() []byte {
	return bytes.Clone(defaultCatalog)
}

// catalogFile is the on-disk shape: a list of [[source]] tables.
type catalogFile struct {
	Sources []domain.Source `toml:"source"`
}

// SourceCatalog is a TOML-backed source catalogue. Sources keep the order
// they are declared in.
type SourceCatalog struct {
	mu      sync.RWMutex
	path    string
	sources []domain.Source
}

// LoadCatalog reads the catalogue at path, or the embedded default when
// path is empty. Relative local urls resolve against the catalogue's
// directory.
func LoadCatalog(path string) (*SourceCatalog, error) {
	c := &SourceCatalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the catalogue file. On error the previous sources are kept.
func (c *SourceCatalog) Reload() error {
	data := defaultCatalog
	if c.path != "" {
		var err error
		if data, err = os.ReadFile(c.path); err != nil {
			return fmt.Errorf("reading catalogue: %w", err)
		}
	}

	sources, err := ParseCatalog(data)
	if err != nil {
		if c.path != "" {
			return fmt.Errorf("%s: %w", c.path, err)
		}
		return err
	}
	if c.path != "" {
		dir := filepath.Dir(c.path)
		for i := range sources {
			sources[i].URL = resolveLocal(dir, sources[i].URL)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = sources
	return nil
}

// ParseCatalog decodes and validates catalogue TOML. Every invalid entry
// and duplicate id is reported.
func ParseCatalog(data []byte) ([]domain.Source, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing catalogue: %w", domain.ErrInvalidInput, err)
	}

	var errs []error
	seen := make(map[string]bool, len(f.Sources))
	for _, src := range f.Sources {
		if err := src.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[src.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate source id %q", domain.ErrInvalidInput, src.ID))
		}
		seen[src.ID] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if f.Sources == nil {
		f.Sources = []domain.Source{}
	}
	return f.Sources, nil
}

// resolveLocal joins relative local paths to dir. URLs with a scheme and
// absolute paths are returned unchanged.
func resolveLocal(dir, url string) string {
	if url == "" || strings.Contains(url, "://") || filepath.IsAbs(url) {
		return url
	}
	return filepath.Join(dir, url)
}

// Path returns the catalogue file path, empty for the embedded default.
func (c *SourceCatalog) Path() string {
	return c.path
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

// LocalPaths returns the local files referenced by source urls, used to
// watch offline sources for changes.
func (c *SourceCatalog) LocalPaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var paths []string
	for _, src := range c.sources {
		if path, ok := localPath(src.URL); ok {
			paths = append(paths, path)
		}
	}
	return paths
}

// SourceIDsFor returns, in declared order, the ids of sources whose local
// file is one of paths.
func (c *SourceCatalog) SourceIDsFor(paths []string) []string {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[absPath(p)] = true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var ids []string
	for _, src := range c.sources {
		if path, ok := localPath(src.URL); ok && want[absPath(path)] {
			ids = append(ids, src.ID)
		}
	}
	return ids
}

func localPath(url string) (string, bool) {
	switch {
	case strings.HasPrefix(url, "file://"):
		return strings.TrimPrefix(url, "file://"), true
	case !strings.Contains(url, "://"):
		return url, true
	}
	return "", false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
