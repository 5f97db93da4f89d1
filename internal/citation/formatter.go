package citation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// ErrNoProvision is returned when a pinpoint citation is requested for a
// reference that names no provision.
var ErrNoProvision = errors.New("citation names no provision")

// InferZone guesses the numbering zone of a free-text law reference from
// the tokens "DIFC" and "ADGM". Everything else numbers by article.
func InferZone(law string) domain.LegalZone {
	upper := strings.ToUpper(law)
	switch {
	case strings.Contains(upper, "DIFC"):
		return domain.ZoneDIFC
	case strings.Contains(upper, "ADGM"):
		return domain.ZoneADGM
	}
	return domain.ZoneFederal
}

// Format renders a parsed citation in style, inferring the numbering label
// from the law text.
func Format(c domain.Citation, style domain.CitationStyle) (string, error) {
	return FormatFor(InferZone(c.DocumentRef), c.ArticleRef, c.DocumentRef, style)
}

// FormatFor renders a citation with the numbering convention of zone:
//
//	full      Article 2, Federal Decree-Law No. 45 of 2021
//	short     Art. 2, Federal Decree-Law No. 45 of 2021
//	pinpoint  Art. 2
//
// Short style cuts the law at its first parenthesis. Without a number,
// full and short render the law alone.
func FormatFor(zone domain.LegalZone, number, law string, style domain.CitationStyle) (string, error) {
	number = NormalizeNumber(number)
	law = strings.TrimSpace(law)

	switch style {
	case domain.StyleFull:
		if number == "" {
			return law, nil
		}
		return fmt.Sprintf("%s %s, %s", zone.NumberingLabel(), number, law), nil

	case domain.StyleShort:
		short := shortTitle(law)
		if number == "" {
			return short, nil
		}
		return fmt.Sprintf("%s %s, %s", zone.NumberingAbbrev(), number, short), nil

	case domain.StylePinpoint:
		if number == "" {
			return "", ErrNoProvision
		}
		return fmt.Sprintf("%s %s", zone.NumberingAbbrev(), number), nil
	}

	return "", fmt.Errorf("%w: unknown citation style %q", domain.ErrInvalidInput, style)
}

func shortTitle(law string) string {
	if i := strings.IndexByte(law, '('); i > 0 {
		return strings.TrimSpace(law[:i])
	}
	return law
}

// Normalized renders the canonical "{Label} {N}, {Title}" form used when a
// citation has been validated against a stored document.
func Normalized(zone domain.LegalZone, number, title string) string {
	s, _ := FormatFor(zone, number, title, domain.StyleFull)
	return s
}
