package extractors

import (
	"regexp"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// Provision reference prefixes.
const (
	PrefixArticle = domain.RefPrefixArticle
	PrefixSection = domain.RefPrefixSection
)

// Marker is one provision heading word together with the reference prefix
// and language its provisions receive.
type Marker struct {
	Name     string
	Prefix   string
	Language string
	pattern  *regexp.Regexp
}

// Provision markers are matched anywhere in the text, left to right, so an
// inline "Article 2" also opens a provision. Chapter headings only count at
// the start of a line or directly after a tag.
const (
	headLead  = `(?:^|>)(?:\s|&nbsp;|&#160;|\x{00a0})*`
	headGap   = `(?:\s|&nbsp;|&#160;|\x{00a0})*`
	headSpace = `(?:\s|&nbsp;|&#160;|\x{00a0})+`
	headDigit = `([0-9\x{0660}-\x{0669}\x{06F0}-\x{06F9}]+)`
)

func englishMarker(word, prefix string) Marker {
	return Marker{
		Name:     word,
		Prefix:   prefix,
		Language: domain.LanguageEnglish,
		pattern: regexp.MustCompile(`(?i)\b(` + word + `)` + headSpace +
			`\(?` + headDigit + `([A-Za-z]*)\)?`),
	}
}

func arabicMarker() Marker {
	return Marker{
		Name:     "المادة",
		Prefix:   PrefixArticle,
		Language: domain.LanguageArabic,
		pattern: regexp.MustCompile(`(المادة)` + headGap +
			`(?:رقم` + headGap + `)?\(?` + headGap + headDigit + `()` + headGap + `\)?`),
	}
}

var (
	markerArabicArticle = arabicMarker()
	markerArticle       = englishMarker("Article", PrefixArticle)
	markerSection       = englishMarker("Section", PrefixSection)
	markerRule          = englishMarker("Rule", PrefixSection)
	markerRegulation    = englishMarker("Regulation", PrefixSection)
)

// ZoneMarkers returns the marker vocabulary for a legal zone.
func ZoneMarkers(zone domain.LegalZone) []Marker {
	switch zone {
	case domain.ZoneFederal:
		return []Marker{markerArabicArticle, markerArticle}
	case domain.ZoneDIFC:
		return []Marker{markerArticle, markerSection}
	case domain.ZoneADGM:
		return []Marker{markerSection, markerRule, markerRegulation}
	}
	return nil
}

// Chapter and part headings, English and Arabic.
var chapterHeadings = []*regexp.Regexp{
	regexp.MustCompile(`(?im)` + headLead + `((?:Chapter|Part)` + headSpace +
		`(?:[0-9]+[A-Za-z]?|[IVXLCDM]+|One|Two|Three|Four|Five|Six|Seven|Eight|Nine|Ten|Eleven|Twelve)\b[^<\n]*)`),
	regexp.MustCompile(`(?m)` + headLead + `((?:الباب|الفصل)` + headSpace + `[^<\n]*)`),
}

// asciiDigits maps Arabic-Indic and Extended Arabic-Indic digits to ASCII.
func asciiDigits(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 0x0660 && r <= 0x0669:
			out[i] = '0' + (r - 0x0660)
		case r >= 0x06F0 && r <= 0x06F9:
			out[i] = '0' + (r - 0x06F0)
		}
	}
	return string(out)
}
