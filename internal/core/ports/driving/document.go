package driving

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// ProvisionLookup is the outcome of looking up a provision by free-form
// document and provision references.
type ProvisionLookup struct {
	Resolution domain.Resolution        `json:"resolution"`
	Document   *domain.ParsedDocument   `json:"document,omitempty"`
	Provision  *domain.ParsedProvision  `json:"provision,omitempty"`
	Reference  *domain.ResolvedReference `json:"reference,omitempty"`

	// Reason explains a miss.
	Reason string `json:"reason,omitempty"`
}

// Found reports whether the provision was located.
func (l *ProvisionLookup) Found() bool {
	return l.Provision != nil
}

// DocumentService reads stored statutes.
type DocumentService interface {
	// List returns metadata for every stored document.
	List(ctx context.Context) ([]domain.ParsedDocument, error)

	// Get resolves docRef and returns the document with its provisions.
	Get(ctx context.Context, docRef string) (*domain.ParsedDocument, domain.Resolution, error)

	// GetProvision resolves docRef and looks up provisionRef.
	GetProvision(ctx context.Context, docRef, provisionRef string) (*ProvisionLookup, error)

	// Definitions resolves docRef and returns its definitions, optionally
	// filtered to terms containing term (case-insensitive).
	Definitions(ctx context.Context, docRef, term string) ([]domain.ParsedDefinition, domain.Resolution, error)
}
