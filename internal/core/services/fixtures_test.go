package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tashri/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tashri/internal/core/domain"
)

const pdplTitle = "Federal Decree-Law No. 45 of 2021 on the Protection of Personal Data"

// fixtureDocuments is stored in this order. The cabinet decision comes
// first and its title contains the PDPL id, so substring matching alone
// would pick the wrong document.
func fixtureDocuments() []*domain.ParsedDocument {
	return []*domain.ParsedDocument{
		{
			ID:        "cd-3-2020",
			Title:     "Cabinet Decision No. 3 of 2020 implementing fdl-45-2021",
			Status:    domain.StatusRepealed,
			LegalZone: domain.ZoneFederal,
			Provisions: []domain.ParsedProvision{
				{ProvisionRef: "art1", Section: "1", Content: "Implementation rules."},
			},
		},
		{
			ID:        "fdl-45-2021",
			Title:     pdplTitle,
			TitleEn:   "Personal Data Protection Law",
			ShortName: "PDPL",
			Status:    domain.StatusInForce,
			LegalZone: domain.ZoneFederal,
			Language:  domain.LanguageEnglish,
			Provisions: []domain.ParsedProvision{
				{ProvisionRef: "art1", Section: "1", Title: "Definitions", Content: "Definitions text."},
				{ProvisionRef: "art2", Section: "2", Title: "Scope", Content: "This Law applies."},
			},
			Definitions: []domain.ParsedDefinition{
				{Term: "Controller", Definition: `"Controller" means the person`, SourceProvision: "art1"},
				{Term: "Personal Data", Definition: `"Personal Data" means any data`, SourceProvision: "art1"},
			},
		},
		{
			ID:        "difc-law-5-2020",
			Title:     "Data Protection Law DIFC Law No. 5 of 2020",
			ShortName: "DIFC DPL",
			Status:    domain.StatusAmended,
			LegalZone: domain.ZoneDIFC,
			Provisions: []domain.ParsedProvision{
				{ProvisionRef: "art3", Section: "3", Content: "Article three text."},
				{ProvisionRef: "s5", Section: "5", Content: "Section five text."},
			},
		},
		{
			ID:        "adgm-dpr-2021",
			Title:     "Data Protection Regulations 2021",
			ShortName: "DPR",
			Status:    domain.StatusInForce,
			LegalZone: domain.ZoneADGM,
			Provisions: []domain.ParsedProvision{
				{ProvisionRef: "s14", Section: "14", Content: "Section fourteen text."},
				{ProvisionRef: "s20A", Section: "20-A", Content: "Inserted section."},
			},
		},
	}
}

func newFixtureStore(t *testing.T) *memory.DocumentStore {
	t.Helper()
	store := memory.NewDocumentStore()
	for _, doc := range fixtureDocuments() {
		require.NoError(t, store.SaveDocument(context.Background(), doc))
	}
	return store
}
