package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/tashri/internal/citation"
	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
	"github.com/custodia-labs/tashri/internal/logger"
)

// Ensure CitationService implements the interface.
var _ driving.CitationService = (*CitationService)(nil)

// CitationService validates citations against stored statutes and
// re-renders them per zone convention.
type CitationService struct {
	store driven.DocumentStore
}

// NewCitationService creates a new citation service.
func NewCitationService(store driven.DocumentStore) *CitationService {
	return &CitationService{store: store}
}

// Validate parses a citation, resolves its document and provision, and
// reports every problem as a warning. Misses are never errors.
func (s *CitationService) Validate(ctx context.Context, text string) (*domain.CitationValidation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	result := &domain.CitationValidation{Citation: text}

	c, err := citation.Parse(text)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not parse citation: %q", text))
		return result, nil
	}
	result.Parsed = &c

	// 1. Resolve the document
	res, err := ResolveDocumentID(ctx, s.store, c.DocumentRef)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		result.Warnings = append(result.Warnings, res.Reason)
		return result, nil
	}

	doc, err := s.store.GetDocument(ctx, res.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", res.DocumentID, err)
	}
	result.DocumentID = doc.ID
	result.DocumentTitle = doc.Label()
	result.Status = doc.Status

	// 2. Statute force is reported, not enforced
	switch doc.Status {
	case domain.StatusRepealed:
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s has been repealed", doc.Label()))
	case domain.StatusAmended:
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s has been amended; check the current text", doc.Label()))
	}

	if !c.HasArticle() {
		result.Valid = true
		result.Normalized = doc.Label()
		return result, nil
	}

	// 3. Look up the provision
	p, err := lookupProvision(ctx, s.store, doc.ID, c.ArticleRef)
	if err != nil {
		return nil, fmt.Errorf("lookup provision: %w", err)
	}
	if p == nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Provision not found: %s %s in %s", doc.LegalZone.NumberingLabel(), c.ArticleRef, doc.ID))
		return result, nil
	}

	result.Valid = true
	result.Reference = &domain.ResolvedReference{
		DocumentID:   doc.ID,
		ProvisionRef: p.ProvisionRef,
		Label:        doc.LegalZone.NumberingLabel(),
	}
	result.Normalized = citation.Normalized(doc.LegalZone, c.ArticleRef, doc.Label())
	logger.Debug("Citation %q validated as %s/%s", text, doc.ID, p.ProvisionRef)
	return result, nil
}

// Format re-renders a citation in style. The numbering label comes from
// "DIFC"/"ADGM" tokens in the citation's own law text, so formatting never
// consults the store and may disagree with a stored document's zone.
func (s *CitationService) Format(_ context.Context, text string, style domain.CitationStyle) (string, error) {
	if !style.IsValid() {
		return "", fmt.Errorf("%w: unknown citation style %q", domain.ErrInvalidInput, style)
	}

	c, err := citation.Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	out, err := citation.Format(c, style)
	if errors.Is(err, citation.ErrNoProvision) {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return out, err
}
