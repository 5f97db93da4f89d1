package extractors

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/normalisers/html"
)

// Ensure ZoneExtractor implements the interface.
var _ driven.Extractor = (*ZoneExtractor)(nil)

// arabicArticleWord marks a federal document as published in Arabic.
const arabicArticleWord = "المادة"

// ZoneExtractor extracts statutes for a single legal zone.
type ZoneExtractor struct {
	zone    domain.LegalZone
	markers []Marker
}

// NewZoneExtractor creates an extractor using the zone's marker vocabulary.
func NewZoneExtractor(zone domain.LegalZone) (*ZoneExtractor, error) {
	markers := ZoneMarkers(zone)
	if len(markers) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedZone, zone)
	}
	return &ZoneExtractor{zone: zone, markers: markers}, nil
}

// NewFederal returns the federal extractor.
func NewFederal() *ZoneExtractor {
	return &ZoneExtractor{zone: domain.ZoneFederal, markers: ZoneMarkers(domain.ZoneFederal)}
}

// NewDIFC returns the DIFC extractor.
func NewDIFC() *ZoneExtractor {
	return &ZoneExtractor{zone: domain.ZoneDIFC, markers: ZoneMarkers(domain.ZoneDIFC)}
}

// NewADGM returns the ADGM extractor.
func NewADGM() *ZoneExtractor {
	return &ZoneExtractor{zone: domain.ZoneADGM, markers: ZoneMarkers(domain.ZoneADGM)}
}

// Zone returns the legal zone this extractor handles.
func (e *ZoneExtractor) Zone() domain.LegalZone {
	return e.zone
}

// Extract builds a ParsedDocument from raw HTML and its catalogue entry.
func (e *ZoneExtractor) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: nil raw document", domain.ErrInvalidInput)
	}
	if raw.Source.Zone != e.zone {
		return nil, fmt.Errorf("%w: %s extractor given %s document %q",
			domain.ErrInvalidInput, e.zone, raw.Source.Zone, raw.Source.ID)
	}

	content := string(raw.Content)
	src := raw.Source

	provisions := ExtractProvisions(content, e.markers)
	definitions := ExtractDefinitions(provisions)

	doc := domain.ParsedDocument{
		ID:          src.ID,
		Type:        domain.DocumentTypeStatute,
		Title:       documentTitle(src, raw.Content),
		TitleEn:     src.TitleEn,
		ShortName:   src.ShortName,
		Status:      src.Status,
		IssuedDate:  src.IssuedDate,
		InForceDate: src.InForceDate,
		URL:         src.URL,
		LegalZone:   e.zone,
		Language:    e.detectLanguage(content),
		ContentHash: raw.ContentHash(),
		Provisions:  provisions,
		Definitions: definitions,
	}
	if doc.Status == "" {
		doc.Status = domain.StatusInForce
	}

	var warnings []string
	if len(provisions) == 0 {
		warnings = append(warnings, fmt.Sprintf("no provisions found in %s", src.ID))
	}

	return &driven.ExtractResult{Document: doc, Warnings: warnings}, nil
}

// detectLanguage returns "ar" for federal documents carrying the Arabic
// article marker. Free zone legislation is published in English only.
func (e *ZoneExtractor) detectLanguage(content string) string {
	if e.zone == domain.ZoneFederal && strings.Contains(content, arabicArticleWord) {
		return domain.LanguageArabic
	}
	return domain.LanguageEnglish
}

func documentTitle(src domain.Source, content []byte) string {
	if src.Title != "" {
		return src.Title
	}
	if title := html.PageTitle(content); title != "" {
		return title
	}
	return src.ID
}
