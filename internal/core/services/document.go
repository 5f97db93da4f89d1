package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService reads stored statutes by free-form reference.
type DocumentService struct {
	store driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(store driven.DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

// List returns metadata for every stored document in insertion order.
func (s *DocumentService) List(ctx context.Context) ([]domain.ParsedDocument, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListDocuments(ctx)
}

// Get resolves docRef and returns the document with provisions and
// definitions populated. A miss returns a nil document and the resolution.
func (s *DocumentService) Get(ctx context.Context, docRef string) (*domain.ParsedDocument, domain.Resolution, error) {
	doc, res, err := s.resolve(ctx, docRef)
	if err != nil || doc == nil {
		return nil, res, err
	}

	if doc.Provisions, err = s.store.ListProvisions(ctx, doc.ID); err != nil {
		return nil, res, fmt.Errorf("list provisions: %w", err)
	}
	if doc.Definitions, err = s.store.ListDefinitions(ctx, doc.ID); err != nil {
		return nil, res, fmt.Errorf("list definitions: %w", err)
	}
	return doc, res, nil
}

// GetProvision resolves docRef and looks up provisionRef.
// "Article 5", "Art. 5", "s. 5", "5a" and "art5A" are all accepted.
func (s *DocumentService) GetProvision(ctx context.Context, docRef, provisionRef string) (*driving.ProvisionLookup, error) {
	doc, res, err := s.resolve(ctx, docRef)
	if err != nil {
		return nil, err
	}
	lookup := &driving.ProvisionLookup{Resolution: res, Document: doc}
	if doc == nil {
		lookup.Reason = res.Reason
		return lookup, nil
	}

	p, err := lookupProvision(ctx, s.store, doc.ID, provisionRef)
	if err != nil {
		return nil, fmt.Errorf("lookup provision: %w", err)
	}
	if p == nil {
		lookup.Reason = fmt.Sprintf("Provision not found: %s in %s", strings.TrimSpace(provisionRef), doc.ID)
		return lookup, nil
	}

	lookup.Provision = p
	lookup.Reference = &domain.ResolvedReference{
		DocumentID:   doc.ID,
		ProvisionRef: p.ProvisionRef,
		Label:        doc.LegalZone.NumberingLabel(),
	}
	return lookup, nil
}

// Definitions resolves docRef and returns its definitions. A non-empty term
// keeps only definitions whose term contains it, ignoring case.
func (s *DocumentService) Definitions(
	ctx context.Context, docRef, term string,
) ([]domain.ParsedDefinition, domain.Resolution, error) {
	doc, res, err := s.resolve(ctx, docRef)
	if err != nil || doc == nil {
		return nil, res, err
	}

	defs, err := s.store.ListDefinitions(ctx, doc.ID)
	if err != nil {
		return nil, res, fmt.Errorf("list definitions: %w", err)
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return defs, res, nil
	}

	fold := cases.Fold()
	want := fold.String(term)
	filtered := make([]domain.ParsedDefinition, 0, len(defs))
	for _, d := range defs {
		if strings.Contains(fold.String(d.Term), want) {
			filtered = append(filtered, d)
		}
	}
	return filtered, res, nil
}

func (s *DocumentService) resolve(ctx context.Context, docRef string) (*domain.ParsedDocument, domain.Resolution, error) {
	if s.store == nil {
		return nil, domain.Resolution{Input: docRef}, domain.ErrNotImplemented
	}
	res, err := ResolveDocumentID(ctx, s.store, docRef)
	if err != nil || !res.Found {
		return nil, res, err
	}
	doc, err := s.store.GetDocument(ctx, res.DocumentID)
	if err != nil {
		return nil, res, fmt.Errorf("get document %s: %w", res.DocumentID, err)
	}
	return doc, res, nil
}
