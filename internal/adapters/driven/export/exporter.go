// Package export writes extracted documents in the JSON interchange shape.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
)

// Ensure JSONExporter implements the interface.
var _ driven.DocumentExporter = (*JSONExporter)(nil)

// JSONExporter writes one <id>.json file per document into a directory.
type JSONExporter struct {
	dir string
}

// NewJSONExporter creates the output directory if needed.
func NewJSONExporter(dir string) (*JSONExporter, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: export directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &JSONExporter{dir: dir}, nil
}

// Dir returns the output directory.
func (e *JSONExporter) Dir() string {
	return e.dir
}

// Path returns the file a document id is written to.
func (e *JSONExporter) Path(id string) string {
	return filepath.Join(e.dir, id+".json")
}

// Export writes doc, replacing any previous file atomically.
func (e *JSONExporter) Export(ctx context.Context, doc *domain.ParsedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil || doc.ID == "" || filepath.Base(doc.ID) != doc.ID {
		return fmt.Errorf("%w: document id is not a valid file name", domain.ErrInvalidInput)
	}

	out := *doc
	if out.Provisions == nil {
		out.Provisions = []domain.ParsedProvision{}
	}
	if out.Definitions == nil {
		out.Definitions = []domain.ParsedDefinition{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", doc.ID, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(e.dir, "."+doc.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", doc.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", doc.ID, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", doc.ID, err)
	}
	return os.Rename(tmp.Name(), e.Path(doc.ID))
}

// ReadDocument loads an exported document back from path.
func ReadDocument(path string) (*domain.ParsedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc domain.ParsedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &doc, nil
}
