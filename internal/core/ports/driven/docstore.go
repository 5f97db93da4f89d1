package driven

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// DocumentStore persists statutes with their provisions and definitions.
type DocumentStore interface {
	// SaveDocument stores a document, replacing any previous provisions
	// and definitions for the same id wholesale.
	SaveDocument(ctx context.Context, doc *domain.ParsedDocument) error

	// GetDocument retrieves document metadata by id. Provisions and
	// definitions are not populated.
	GetDocument(ctx context.Context, id string) (*domain.ParsedDocument, error)

	// ListDocuments returns metadata for every document in insertion order.
	ListDocuments(ctx context.Context) ([]domain.ParsedDocument, error)

	// DocumentExists reports whether a document id is stored.
	DocumentExists(ctx context.Context, id string) (bool, error)

	// ListProvisions returns the provisions of a document in source order.
	ListProvisions(ctx context.Context, documentID string) ([]domain.ParsedProvision, error)

	// GetProvision retrieves a provision by exact provision_ref.
	GetProvision(ctx context.Context, documentID, provisionRef string) (*domain.ParsedProvision, error)

	// GetProvisionBySection retrieves the first provision whose raw
	// section numeral equals section.
	GetProvisionBySection(ctx context.Context, documentID, section string) (*domain.ParsedProvision, error)

	// ListDefinitions returns the definitions of a document.
	ListDefinitions(ctx context.Context, documentID string) ([]domain.ParsedDefinition, error)

	// DeleteDocument removes a document with its provisions and definitions.
	DeleteDocument(ctx context.Context, id string) error
}
