package domain

// LegalZone identifies one of the three legislative bodies covered.
type LegalZone string

const (
	// ZoneFederal is UAE federal legislation, authoritative in Arabic.
	ZoneFederal LegalZone = "federal"

	// ZoneDIFC is the Dubai International Financial Centre.
	ZoneDIFC LegalZone = "difc"

	// ZoneADGM is the Abu Dhabi Global Market.
	ZoneADGM LegalZone = "adgm"
)

// AllZones returns every supported legal zone.
func AllZones() []LegalZone {
	return []LegalZone{ZoneFederal, ZoneDIFC, ZoneADGM}
}

// IsValid reports whether the zone is one of the known zones.
func (z LegalZone) IsValid() bool {
	switch z {
	case ZoneFederal, ZoneDIFC, ZoneADGM:
		return true
	}
	return false
}

// NumberingLabel returns the word used to cite provisions in this zone.
func (z LegalZone) NumberingLabel() string {
	if z == ZoneDIFC || z == ZoneADGM {
		return "Section"
	}
	return "Article"
}

// NumberingAbbrev returns the short form of NumberingLabel.
func (z LegalZone) NumberingAbbrev() string {
	if z == ZoneDIFC || z == ZoneADGM {
		return "s"
	}
	return "Art."
}

// Provision reference prefixes. Articles (federal, difc) use art, sections,
// rules and regulations (difc, adgm) use s.
const (
	RefPrefixArticle = "art"
	RefPrefixSection = "s"
)

// Status is the current force of a statute.
type Status string

const (
	StatusInForce       Status = "in_force"
	StatusAmended       Status = "amended"
	StatusRepealed      Status = "repealed"
	StatusNotYetInForce Status = "not_yet_in_force"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusInForce, StatusAmended, StatusRepealed, StatusNotYetInForce:
		return true
	}
	return false
}

// DocumentTypeStatute is the only document type produced by ingestion.
const DocumentTypeStatute = "statute"

// Language codes assigned to documents and provisions.
const (
	LanguageArabic  = "ar"
	LanguageEnglish = "en"
)

// ParsedDocument is a statute after extraction.
// Its JSON form is the interchange shape consumed by the storage layer.
type ParsedDocument struct {
	// ID is zone-specific (fdl-45-2021, difc-law-5-2020, adgm-dpr-2021)
	// and never changes once assigned.
	ID string `json:"id"`

	// Type is always DocumentTypeStatute.
	Type string `json:"type"`

	// Title is the full title in the authoritative language.
	Title string `json:"title"`

	// TitleEn is the English title, when one is published.
	TitleEn string `json:"title_en,omitempty"`

	// ShortName is the abbreviation users cite (e.g. "PDPL").
	ShortName string `json:"short_name,omitempty"`

	Status      Status    `json:"status"`
	IssuedDate  string    `json:"issued_date,omitempty"`
	InForceDate string    `json:"in_force_date,omitempty"`
	URL         string    `json:"url,omitempty"`
	LegalZone   LegalZone `json:"legal_zone"`

	// Language is detected from content for federal documents and is
	// always "en" for difc and adgm.
	Language string `json:"language"`

	// ContentHash is the sha256 of the raw source HTML, used to spot drift.
	ContentHash string `json:"content_hash,omitempty"`

	Provisions  []ParsedProvision  `json:"provisions"`
	Definitions []ParsedDefinition `json:"definitions"`
}

// Label returns the best human-readable title for the document.
func (d *ParsedDocument) Label() string {
	if d.Title != "" {
		return d.Title
	}
	if d.TitleEn != "" {
		return d.TitleEn
	}
	return d.ID
}

// ParsedProvision is an individually addressable article or section.
type ParsedProvision struct {
	// ProvisionRef is the canonical key: art{N} or s{N}, optionally
	// followed by an upper-case letter suffix.
	ProvisionRef string `json:"provision_ref"`

	// Chapter is the nearest preceding chapter or part heading.
	Chapter string `json:"chapter,omitempty"`

	// Section is the raw numeral extracted from the source.
	Section string `json:"section"`

	Title    string `json:"title,omitempty"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// ParsedDefinition is a defined term mined from a definitions provision.
type ParsedDefinition struct {
	Term string `json:"term"`

	// Definition is re-prefixed with the quoted term.
	Definition string `json:"definition"`

	SourceProvision string `json:"source_provision,omitempty"`
}
