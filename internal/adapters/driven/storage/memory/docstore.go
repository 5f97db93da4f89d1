package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu          sync.RWMutex
	order       []string
	documents   map[string]domain.ParsedDocument
	provisions  map[string][]domain.ParsedProvision
	definitions map[string][]domain.ParsedDefinition
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents:   make(map[string]domain.ParsedDocument),
		provisions:  make(map[string][]domain.ParsedProvision),
		definitions: make(map[string][]domain.ParsedDefinition),
	}
}

// SaveDocument stores a document, replacing its provisions and definitions.
// A re-saved document keeps its original insertion position.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.ParsedDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[doc.ID]; !ok {
		s.order = append(s.order, doc.ID)
	}

	meta := *doc
	meta.Provisions = nil
	meta.Definitions = nil
	s.documents[doc.ID] = meta
	s.provisions[doc.ID] = append([]domain.ParsedProvision(nil), doc.Provisions...)
	s.definitions[doc.ID] = append([]domain.ParsedDefinition(nil), doc.Definitions...)
	return nil
}

// GetDocument retrieves document metadata by id.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.ParsedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns document metadata in insertion order.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.ParsedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ParsedDocument, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.documents[id])
	}
	return result, nil
}

// DocumentExists reports whether id is stored.
func (s *DocumentStore) DocumentExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[id]
	return ok, nil
}

// ListProvisions returns a document's provisions in source order.
func (s *DocumentStore) ListProvisions(_ context.Context, documentID string) ([]domain.ParsedProvision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ParsedProvision(nil), s.provisions[documentID]...), nil
}

// GetProvision retrieves a provision by exact provision_ref.
func (s *DocumentStore) GetProvision(_ context.Context, documentID, provisionRef string) (*domain.ParsedProvision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.provisions[documentID] {
		if p.ProvisionRef == provisionRef {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetProvisionBySection retrieves the first provision with the given raw
// section numeral.
func (s *DocumentStore) GetProvisionBySection(_ context.Context, documentID, section string) (*domain.ParsedProvision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.provisions[documentID] {
		if p.Section == section {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListDefinitions returns a document's definitions.
func (s *DocumentStore) ListDefinitions(_ context.Context, documentID string) ([]domain.ParsedDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ParsedDefinition(nil), s.definitions[documentID]...), nil
}

// DeleteDocument removes a document with its provisions and definitions.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return nil
	}
	delete(s.documents, id)
	delete(s.provisions, id)
	delete(s.definitions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
