package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
)

func pdpl() domain.ParsedDocument {
	return domain.ParsedDocument{
		ID:        "fdl-45-2021",
		Title:     "Federal Decree-Law No. 45 of 2021 on the Protection of Personal Data",
		ShortName: "PDPL",
		Status:    domain.StatusInForce,
		LegalZone: domain.ZoneFederal,
		Language:  domain.LanguageEnglish,
	}
}

func TestResolveCmd(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		resolverService = &mockResolverService{resolution: domain.Resolution{
			Found: true, DocumentID: "fdl-45-2021", Strategy: "short_name",
		}}

		out, err := execute(t, "resolve", "PDPL")

		require.NoError(t, err)
		assert.Contains(t, out, "fdl-45-2021 (short_name)")
	})

	t.Run("not found", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		resolverService = &mockResolverService{resolution: domain.Resolution{
			Reason: "Document not found: Tax Law",
		}}

		_, err := execute(t, "resolve", "Tax Law")

		require.Error(t, err)
		assert.Equal(t, "Document not found: Tax Law", err.Error())
	})

	t.Run("json reports misses without error", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		resolverService = &mockResolverService{resolution: domain.Resolution{Reason: "Document not found: x"}}

		out, err := execute(t, "resolve", "--json", "x")

		require.NoError(t, err)
		var res domain.Resolution
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.False(t, res.Found)
		assert.Equal(t, "x", res.Input)
	})
}

func TestProvisionCmd(t *testing.T) {
	t.Run("prints provision", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		doc := pdpl()
		documentService = &mockDocumentService{lookup: &driving.ProvisionLookup{
			Document: &doc,
			Provision: &domain.ParsedProvision{
				ProvisionRef: "art2",
				Section:      "2",
				Chapter:      "Chapter One",
				Title:        "Scope of Application",
				Content:      "The provisions of this Decree-Law apply to...",
			},
			Reference: &domain.ResolvedReference{DocumentID: "fdl-45-2021", ProvisionRef: "art2", Label: "Article"},
		}}

		out, err := execute(t, "provision", "PDPL", "Article 2")

		require.NoError(t, err)
		assert.Contains(t, out, "Article 2 - Scope of Application")
		assert.Contains(t, out, doc.Title)
		assert.Contains(t, out, "Chapter One")
		assert.Contains(t, out, "The provisions of this Decree-Law apply to...")
	})

	t.Run("miss returns reason", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		documentService = &mockDocumentService{lookup: &driving.ProvisionLookup{
			Reason: "Provision not found: Article 99 in fdl-45-2021",
		}}

		_, err := execute(t, "provision", "PDPL", "Article 99")

		require.Error(t, err)
		assert.Equal(t, "Provision not found: Article 99 in fdl-45-2021", err.Error())
	})

	t.Run("requires two args", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		_, err := execute(t, "provision", "PDPL")

		assert.Error(t, err)
	})
}

func TestDefinitionsCmd(t *testing.T) {
	t.Run("lists definitions", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		documentService = &mockDocumentService{
			resolution: domain.Resolution{Found: true, DocumentID: "fdl-45-2021"},
			definitions: []domain.ParsedDefinition{
				{Term: "Personal Data", Definition: `"Personal Data" means any data...`, SourceProvision: "art1"},
			},
		}

		out, err := execute(t, "definitions", "PDPL", "--term", "personal")

		require.NoError(t, err)
		assert.Contains(t, out, "Personal Data")
		assert.Contains(t, out, `"Personal Data" means any data...`)
		assert.Contains(t, out, "(art1)")
	})

	t.Run("none", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		documentService = &mockDocumentService{
			resolution: domain.Resolution{Found: true, DocumentID: "fdl-45-2021"},
		}

		out, err := execute(t, "definitions", "PDPL")

		require.NoError(t, err)
		assert.Contains(t, out, "No definitions found.")
	})

	t.Run("unknown document", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		documentService = &mockDocumentService{
			resolution: domain.Resolution{Reason: "Document not found: Tax Law"},
		}

		_, err := execute(t, "definitions", "Tax Law")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Document not found: Tax Law")
	})

	t.Run("term flag", func(t *testing.T) {
		flag := definitionsCmd.Flags().Lookup("term")
		require.NotNil(t, flag)
		assert.Equal(t, "t", flag.Shorthand)
	})
}

func TestDocumentsCmd(t *testing.T) {
	t.Run("lists documents", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		repealed := domain.ParsedDocument{
			ID: "cd-3-2020", Title: "Cabinet Decision No. 3 of 2020",
			Status: domain.StatusRepealed, LegalZone: domain.ZoneFederal,
		}
		documentService = &mockDocumentService{documents: []domain.ParsedDocument{pdpl(), repealed}}

		out, err := execute(t, "documents")

		require.NoError(t, err)
		assert.Contains(t, out, "fdl-45-2021")
		assert.Contains(t, out, "PDPL")
		assert.Contains(t, out, "cd-3-2020")
		assert.Contains(t, out, "repealed")
		assert.NotContains(t, out, "in_force")
	})

	t.Run("empty", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "documents")

		require.NoError(t, err)
		assert.Contains(t, out, "No documents ingested.")
	})

	t.Run("json", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		documentService = &mockDocumentService{documents: []domain.ParsedDocument{pdpl()}}

		out, err := execute(t, "documents", "--json")

		require.NoError(t, err)
		var docs []domain.ParsedDocument
		require.NoError(t, json.Unmarshal([]byte(out), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "PDPL", docs[0].ShortName)
	})
}
