package extractors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

const federalEnglish = `<html><head><title>Federal Decree-Law No. 45 of 2021</title></head><body>
<h2>Chapter One: General Provisions</h2>
<p><b>Article 1</b></p><p><strong>Definitions</strong></p><p>"Controller" means the person who determines the purposes of processing;</p><p>"Data" includes any information relating to a person.</p>
<p><b>Article 2</b></p><p><strong>Scope</strong></p><p>This Law applies to processing of Personal Data.</p>
<h2>Chapter Two: Processing</h2>
<p><b>Article 3</b></p><p>Processing must be lawful, fair and transparent.</p>
</body></html>`

func refs(provisions []domain.ParsedProvision) []string {
	out := make([]string, len(provisions))
	for i, p := range provisions {
		out[i] = p.ProvisionRef
	}
	return out
}

func TestExtractProvisions_Federal(t *testing.T) {
	provisions := ExtractProvisions(federalEnglish, ZoneMarkers(domain.ZoneFederal))
	require.Equal(t, []string{"art1", "art2", "art3"}, refs(provisions))

	art1 := provisions[0]
	assert.Equal(t, "1", art1.Section)
	assert.Equal(t, "Definitions", art1.Title)
	assert.Equal(t, "Chapter One: General Provisions", art1.Chapter)
	assert.Equal(t, domain.LanguageEnglish, art1.Language)
	assert.True(t, strings.HasPrefix(art1.Content, "Definitions\n\"Controller\" means"))

	art2 := provisions[1]
	assert.Equal(t, "Scope", art2.Title)
	assert.Equal(t, "Chapter One: General Provisions", art2.Chapter)
	assert.Contains(t, art2.Content, "This Law applies to processing of Personal Data.")

	art3 := provisions[2]
	assert.Equal(t, "Chapter Two: Processing", art3.Chapter)
	assert.Empty(t, art3.Title)
	assert.Equal(t, "Processing must be lawful, fair and transparent.", art3.Content)
}

func TestExtractProvisions_NoMarkers(t *testing.T) {
	provisions := ExtractProvisions("<p>Nothing to see here.</p>", ZoneMarkers(domain.ZoneDIFC))
	assert.NotNil(t, provisions)
	assert.Empty(t, provisions)
}

func TestExtractProvisions_OverlappingMatchKeepsLongest(t *testing.T) {
	raw := `<p>Article 2 The first twenty chars.</p>` +
		`<p>Article 2 (cont'd)</p>` +
		`<p>Article 3 Third article body here.</p>`

	provisions := ExtractProvisions(raw, ZoneMarkers(domain.ZoneFederal))
	require.Equal(t, []string{"art2", "art3"}, refs(provisions))
	assert.Equal(t, "The first twenty chars.", provisions[0].Content)
	assert.Equal(t, "Third article body here.", provisions[1].Content)
}

func TestExtractProvisions_SeveralMarkersOnOneLine(t *testing.T) {
	raw := `<p>Article 1 First body text here. Article 2 Second body text here.</p>`

	provisions := ExtractProvisions(raw, ZoneMarkers(domain.ZoneFederal))
	require.Equal(t, []string{"art1", "art2"}, refs(provisions))
	assert.Equal(t, "First body text here.", provisions[0].Content)
	assert.Equal(t, "Second body text here.", provisions[1].Content)
}

func TestExtractProvisions_ArabicInline(t *testing.T) {
	raw := `<p>المادة 1 يسري هذا المرسوم بقانون. المادة 2 تطبق أحكام هذا القانون.</p>`

	provisions := ExtractProvisions(raw, ZoneMarkers(domain.ZoneFederal))
	assert.Equal(t, []string{"art1", "art2"}, refs(provisions))
}

func TestExtractProvisions_ShortBodiesDiscarded(t *testing.T) {
	raw := `<p>Article 1 tiny</p><p>Article 2 Long enough body.</p>`

	provisions := ExtractProvisions(raw, ZoneMarkers(domain.ZoneFederal))
	assert.Equal(t, []string{"art2"}, refs(provisions))
}

func TestExtractProvisions_ContentCapped(t *testing.T) {
	raw := "<p>Article 1</p><p>" + strings.Repeat("ب", MaxProvisionContent+500) + "</p>"

	provisions := ExtractProvisions(raw, ZoneMarkers(domain.ZoneFederal))
	require.Len(t, provisions, 1)
	assert.Equal(t, MaxProvisionContent, len([]rune(provisions[0].Content)))
}

func TestExtractProvisions_Arabic(t *testing.T) {
	raw := `<h2>الباب الأول</h2>` +
		`<p>المادة (1)</p><p>تعريفات</p><p>الدولة: الإمارات العربية المتحدة.</p>` +
		`<p>المادة ٢</p><p>يسري هذا المرسوم بقانون على البيانات.</p>`

	provisions := ExtractProvisions(raw, ZoneMarkers(domain.ZoneFederal))
	require.Equal(t, []string{"art1", "art2"}, refs(provisions))

	assert.Equal(t, domain.LanguageArabic, provisions[0].Language)
	assert.Equal(t, "الباب الأول", provisions[0].Chapter)
	assert.Equal(t, "تعريفات\nالدولة: الإمارات العربية المتحدة.", provisions[0].Content)

	assert.Equal(t, "2", provisions[1].Section)
	assert.Equal(t, "يسري هذا المرسوم بقانون على البيانات.", provisions[1].Content)
}

func TestExtractProvisions_ZoneVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		zone     domain.LegalZone
		raw      string
		expected []string
	}{
		{
			name: "difc articles and sections with suffix",
			zone: domain.ZoneDIFC,
			raw: `<p>Article 5A</p><p>Text of article five A here.</p>` +
				`<p>Section 7</p><p>Section seven text body.</p>`,
			expected: []string{"art5A", "s7"},
		},
		{
			name: "adgm sections rules and regulations",
			zone: domain.ZoneADGM,
			raw: `<p>Section 1</p><p>Section one text body.</p>` +
				`<p>Rule 3</p><p>Rule three text body.</p>` +
				`<p>Regulation 4</p><p>Regulation four text body.</p>`,
			expected: []string{"s1", "s3", "s4"},
		},
		{
			name: "adgm ignores articles",
			zone: domain.ZoneADGM,
			raw: `<p>Section 1</p><p>Section one text body.</p>` +
				`<p>Article 2</p><p>Not an adgm marker.</p>`,
			expected: []string{"s1"},
		},
		{
			name: "inline markers open provisions",
			zone: domain.ZoneADGM,
			raw: `<p>Section 1</p><p>Subject to Section 12 of these Regulations, this applies.</p>` +
				`<p>Section 2</p><p>Second section body.</p>`,
			expected: []string{"s1", "s12", "s2"},
		},
		{
			name:     "marker inside a word is ignored",
			zone:     domain.ZoneADGM,
			raw:      `<p>Section 1</p><p>Subsection 4 applies to this body.</p>`,
			expected: []string{"s1"},
		},
		{
			name:     "marker after line break",
			zone:     domain.ZoneDIFC,
			raw:      "Article 1\nFirst article body.\nArticle 2\nSecond article body.",
			expected: []string{"art1", "art2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provisions := ExtractProvisions(tt.raw, ZoneMarkers(tt.zone))
			assert.Equal(t, tt.expected, refs(provisions))
		})
	}
}

func TestProvisionTitle(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "first tagged element only",
			body:     `</p><p><b>Scope</b> of <strong>Application</strong></p>`,
			expected: "Scope",
		},
		{
			name:     "heading element",
			body:     `</p><h4>Data Subject Rights</h4><p>text</p>`,
			expected: "Data Subject Rights",
		},
		{
			name:     "separator on marker line",
			body:     ` - Definitions</p><p>In this Law...</p>`,
			expected: "Definitions",
		},
		{
			name:     "short caption on marker line",
			body:     ` Scope</h3><p>This Law applies.</p>`,
			expected: "Scope",
		},
		{
			name:     "provision text is not a title",
			body:     ` This Law applies.</p>`,
			expected: "",
		},
		{
			name:     "no title",
			body:     `</p><p>plain text</p>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, provisionTitle(tt.body))
		})
	}
}

func TestChapterAt(t *testing.T) {
	headings := []heading{{pos: 10, text: "Part 1"}, {pos: 50, text: "Part 2"}}

	assert.Equal(t, "", chapterAt(headings, 5))
	assert.Equal(t, "", chapterAt(headings, 10))
	assert.Equal(t, "Part 1", chapterAt(headings, 11))
	assert.Equal(t, "Part 1", chapterAt(headings, 50))
	assert.Equal(t, "Part 2", chapterAt(headings, 51))
	assert.Equal(t, "", chapterAt(nil, 100))
}

func TestDedupeProvisions(t *testing.T) {
	in := []domain.ParsedProvision{
		{ProvisionRef: "art2", Content: "twenty characters!!!"},
		{ProvisionRef: "art3", Content: "third"},
		{ProvisionRef: "art2", Content: "short"},
		{ProvisionRef: "art3", Content: "third but longer"},
		{ProvisionRef: "art4", Content: "same"},
		{ProvisionRef: "art4", Content: "tied"},
	}

	out := DedupeProvisions(in)
	require.Equal(t, []string{"art2", "art3", "art4"}, refs(out))
	assert.Equal(t, "twenty characters!!!", out[0].Content)
	assert.Equal(t, "third but longer", out[1].Content)
	assert.Equal(t, "same", out[2].Content)
}

func TestAsciiDigits(t *testing.T) {
	assert.Equal(t, "123", asciiDigits("١٢٣"))
	assert.Equal(t, "45", asciiDigits("۴۵"))
	assert.Equal(t, "7", asciiDigits("7"))
}
