package mcp

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{Query: query, Results: []domain.SearchResult{}}, nil
	}
	return m.response, nil
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents   []domain.ParsedDocument
	document    *domain.ParsedDocument
	resolution  domain.Resolution
	lookup      *driving.ProvisionLookup
	definitions []domain.ParsedDefinition
	err         error

	lastTerm string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.ParsedDocument, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.ParsedDocument, domain.Resolution, error) {
	return m.document, m.resolution, m.err
}

func (m *mockDocumentService) GetProvision(_ context.Context, _, _ string) (*driving.ProvisionLookup, error) {
	return m.lookup, m.err
}

func (m *mockDocumentService) Definitions(
	_ context.Context,
	_, term string,
) ([]domain.ParsedDefinition, domain.Resolution, error) {
	m.lastTerm = term
	return m.definitions, m.resolution, m.err
}

// mockResolverService is a mock implementation of driving.ResolverService.
type mockResolverService struct {
	resolution domain.Resolution
	err        error
}

func (m *mockResolverService) Resolve(_ context.Context, input string) (domain.Resolution, error) {
	res := m.resolution
	res.Input = input
	return res, m.err
}

// mockCitationService is a mock implementation of driving.CitationService.
type mockCitationService struct {
	validation *domain.CitationValidation
	formatted  string
	err        error

	lastStyle domain.CitationStyle
}

func (m *mockCitationService) Validate(_ context.Context, _ string) (*domain.CitationValidation, error) {
	return m.validation, m.err
}

func (m *mockCitationService) Format(_ context.Context, _ string, style domain.CitationStyle) (string, error) {
	m.lastStyle = style
	return m.formatted, m.err
}

func newTestPorts() *Ports {
	return &Ports{
		Search:   &mockSearchService{},
		Document: &mockDocumentService{},
	}
}

func pdplDocument() domain.ParsedDocument {
	return domain.ParsedDocument{
		ID:        "fdl-45-2021",
		Type:      domain.DocumentTypeStatute,
		Title:     "Federal Decree-Law No. 45 of 2021 on the Protection of Personal Data",
		ShortName: "PDPL",
		Status:    domain.StatusInForce,
		LegalZone: domain.ZoneFederal,
		Language:  domain.LanguageEnglish,
	}
}

func difcDocument() domain.ParsedDocument {
	return domain.ParsedDocument{
		ID:        "difc-law-5-2020",
		Type:      domain.DocumentTypeStatute,
		Title:     "Data Protection Law DIFC Law No. 5 of 2020",
		ShortName: "DIFC DPL",
		Status:    domain.StatusAmended,
		LegalZone: domain.ZoneDIFC,
		Language:  domain.LanguageEnglish,
	}
}
