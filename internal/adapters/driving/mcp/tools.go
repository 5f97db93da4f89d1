package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

const defaultSearchLimit = 10

// SearchInput is the input schema for the search_legislation tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"keywords, quoted phrases, AND/OR/NOT and trailing * prefixes"`
	Zone     string `json:"zone,omitempty" jsonschema:"restrict to one legal zone: federal, difc or adgm"`
	Document string `json:"document,omitempty" jsonschema:"restrict to one document id"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_legislation tool.
type SearchOutput struct {
	Query        string               `json:"query"`
	Variant      string               `json:"variant"`
	UsedFallback bool                 `json:"used_fallback"`
	Results      []SearchResultOutput `json:"results"`
	Count        int                  `json:"count"`
}

// SearchResultOutput represents a single matching provision.
type SearchResultOutput struct {
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Zone          string  `json:"legal_zone"`
	ProvisionRef  string  `json:"provision_ref"`
	Title         string  `json:"title,omitempty"`
	Chapter       string  `json:"chapter,omitempty"`
	Snippet       string  `json:"snippet"`
	Score         float64 `json:"score"`
}

// ProvisionInput is the input schema for the get_provision tool.
type ProvisionInput struct {
	Document  string `json:"document" jsonschema:"document id, title or short name, e.g. PDPL"`
	Provision string `json:"provision" jsonschema:"provision reference, e.g. Article 5, s. 12 or art5"`
}

// ProvisionOutput is the output schema for the get_provision tool.
type ProvisionOutput struct {
	Found         bool   `json:"found"`
	DocumentID    string `json:"document_id,omitempty"`
	DocumentTitle string `json:"document_title,omitempty"`
	ProvisionRef  string `json:"provision_ref,omitempty"`
	Label         string `json:"label,omitempty"`
	Chapter       string `json:"chapter,omitempty"`
	Title         string `json:"title,omitempty"`
	Content       string `json:"content,omitempty"`
	Language      string `json:"language,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// ResolveInput is the input schema for the resolve_document tool.
type ResolveInput struct {
	Reference string `json:"reference" jsonschema:"free-form reference: id, short name, law number or title"`
}

// ResolveOutput is the output schema for the resolve_document tool.
type ResolveOutput struct {
	Found      bool   `json:"found"`
	DocumentID string `json:"document_id,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// CitationInput is the input schema for the validate_citation tool.
type CitationInput struct {
	Citation string `json:"citation" jsonschema:"citation text, e.g. Article 2, Federal Decree-Law No. 45 of 2021"`
}

// ValidationOutput is the output schema for the validate_citation tool.
type ValidationOutput struct {
	Valid         bool     `json:"valid"`
	DocumentID    string   `json:"document_id,omitempty"`
	DocumentTitle string   `json:"document_title,omitempty"`
	Status        string   `json:"status,omitempty"`
	ProvisionRef  string   `json:"provision_ref,omitempty"`
	Normalized    string   `json:"normalized,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// FormatInput is the input schema for the format_citation tool.
type FormatInput struct {
	Citation string `json:"citation" jsonschema:"citation text to re-render"`
	Style    string `json:"style,omitempty" jsonschema:"full, short or pinpoint (default full)"`
}

// FormatOutput is the output schema for the format_citation tool.
type FormatOutput struct {
	Formatted string `json:"formatted"`
	Style     string `json:"style"`
}

// DefinitionsInput is the input schema for the get_definitions tool.
type DefinitionsInput struct {
	Document string `json:"document" jsonschema:"document id, title or short name"`
	Term     string `json:"term,omitempty" jsonschema:"only return terms containing this text (case-insensitive)"`
}

// DefinitionsOutput is the output schema for the get_definitions tool.
type DefinitionsOutput struct {
	Found       bool               `json:"found"`
	DocumentID  string             `json:"document_id,omitempty"`
	Definitions []DefinitionOutput `json:"definitions"`
	Count       int                `json:"count"`
	Reason      string             `json:"reason,omitempty"`
}

// DefinitionOutput is one defined term.
type DefinitionOutput struct {
	Term            string `json:"term"`
	Definition      string `json:"definition"`
	SourceProvision string `json:"source_provision,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Zone string `json:"zone,omitempty" jsonschema:"restrict to one legal zone: federal, difc or adgm"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput is the metadata of one stored statute.
type DocumentOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ShortName string `json:"short_name,omitempty"`
	Zone      string `json:"legal_zone"`
	Status    string `json:"status"`
	Language  string `json:"language"`
}

// registerTools registers the tool handlers the configured ports support.
func (s *Server) registerTools() {
	addTool(s, "search_legislation",
		"Full-text search over UAE federal, DIFC and ADGM provisions", s.handleSearch)
	addTool(s, "get_provision",
		"Fetch the text of one article or section of a statute", s.handleGetProvision)
	addTool(s, "get_definitions",
		"List the defined terms of a statute", s.handleGetDefinitions)
	addTool(s, "list_documents",
		"List the statutes available locally", s.handleListDocuments)

	if s.ports.Resolver != nil {
		addTool(s, "resolve_document",
			"Resolve a title, abbreviation or law number to a document id", s.handleResolve)
	}
	if s.ports.Citation != nil {
		addTool(s, "validate_citation",
			"Check that a citation names a stored statute and provision", s.handleValidateCitation)
		addTool(s, "format_citation",
			"Re-render a citation in full, short or pinpoint style", s.handleFormatCitation)
	}
}

// handleSearch handles the search_legislation tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	opts := domain.SearchOptions{
		Limit:      limit,
		Zone:       domain.LegalZone(input.Zone),
		DocumentID: input.Document,
	}
	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Query:        resp.Query,
		Variant:      resp.Variant,
		UsedFallback: resp.UsedFallback,
		Results:      make([]SearchResultOutput, len(resp.Results)),
		Count:        len(resp.Results),
	}

	for i, r := range resp.Results {
		output.Results[i] = SearchResultOutput{
			DocumentID:    r.DocumentID,
			DocumentTitle: r.DocumentTitle,
			Zone:          string(r.Zone),
			ProvisionRef:  r.ProvisionRef,
			Title:         r.Title,
			Chapter:       r.Chapter,
			Snippet:       r.Snippet,
			Score:         r.Score,
		}
	}

	return nil, output, nil
}

// handleGetProvision handles the get_provision tool invocation.
// Misses are reported in the output, not as tool errors.
func (s *Server) handleGetProvision(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProvisionInput,
) (*mcp.CallToolResult, ProvisionOutput, error) {
	lookup, err := s.ports.Document.GetProvision(ctx, input.Document, input.Provision)
	if err != nil {
		return nil, ProvisionOutput{}, err
	}

	output := ProvisionOutput{Found: lookup.Found(), Reason: lookup.Reason}
	if lookup.Document != nil {
		output.DocumentID = lookup.Document.ID
		output.DocumentTitle = lookup.Document.Label()
	}
	if p := lookup.Provision; p != nil {
		output.ProvisionRef = p.ProvisionRef
		output.Chapter = p.Chapter
		output.Title = p.Title
		output.Content = p.Content
		output.Language = p.Language
	}
	if lookup.Reference != nil {
		output.Label = lookup.Reference.Label
	}

	return nil, output, nil
}

// handleResolve handles the resolve_document tool invocation.
func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	res, err := s.ports.Resolver.Resolve(ctx, input.Reference)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	return nil, ResolveOutput{
		Found:      res.Found,
		DocumentID: res.DocumentID,
		Strategy:   res.Strategy,
		Reason:     res.Reason,
	}, nil
}

// handleValidateCitation handles the validate_citation tool invocation.
func (s *Server) handleValidateCitation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CitationInput,
) (*mcp.CallToolResult, ValidationOutput, error) {
	v, err := s.ports.Citation.Validate(ctx, input.Citation)
	if err != nil {
		return nil, ValidationOutput{}, err
	}

	output := ValidationOutput{
		Valid:         v.Valid,
		DocumentID:    v.DocumentID,
		DocumentTitle: v.DocumentTitle,
		Status:        string(v.Status),
		Normalized:    v.Normalized,
		Warnings:      v.Warnings,
	}
	if v.Reference != nil {
		output.ProvisionRef = v.Reference.ProvisionRef
	}

	return nil, output, nil
}

// handleFormatCitation handles the format_citation tool invocation.
func (s *Server) handleFormatCitation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormatInput,
) (*mcp.CallToolResult, FormatOutput, error) {
	style := domain.CitationStyle(input.Style)
	if style == "" {
		style = domain.StyleFull
	}

	formatted, err := s.ports.Citation.Format(ctx, input.Citation, style)
	if err != nil {
		return nil, FormatOutput{}, err
	}

	return nil, FormatOutput{Formatted: formatted, Style: string(style)}, nil
}

// handleGetDefinitions handles the get_definitions tool invocation.
func (s *Server) handleGetDefinitions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DefinitionsInput,
) (*mcp.CallToolResult, DefinitionsOutput, error) {
	defs, res, err := s.ports.Document.Definitions(ctx, input.Document, input.Term)
	if err != nil {
		return nil, DefinitionsOutput{}, err
	}

	output := DefinitionsOutput{
		Found:       res.Found,
		DocumentID:  res.DocumentID,
		Definitions: make([]DefinitionOutput, len(defs)),
		Count:       len(defs),
		Reason:      res.Reason,
	}
	for i, d := range defs {
		output.Definitions[i] = DefinitionOutput{
			Term:            d.Term,
			Definition:      d.Definition,
			SourceProvision: d.SourceProvision,
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	zone := domain.LegalZone(input.Zone)
	if zone != "" && !zone.IsValid() {
		return nil, ListDocumentsOutput{}, fmt.Errorf("%w: unknown legal zone %q", domain.ErrInvalidInput, input.Zone)
	}

	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{Documents: []DocumentOutput{}}
	for i := range docs {
		if zone != "" && docs[i].LegalZone != zone {
			continue
		}
		output.Documents = append(output.Documents, documentOutput(&docs[i]))
	}
	output.Count = len(output.Documents)

	return nil, output, nil
}

func documentOutput(doc *domain.ParsedDocument) DocumentOutput {
	return DocumentOutput{
		ID:        doc.ID,
		Title:     doc.Label(),
		ShortName: doc.ShortName,
		Zone:      string(doc.LegalZone),
		Status:    string(doc.Status),
		Language:  doc.Language,
	}
}
