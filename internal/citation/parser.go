package citation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// ErrUnparseable is returned for input with nothing to parse.
var ErrUnparseable = errors.New("could not parse citation")

const (
	number     = `([0-9\x{0660}-\x{0669}]+[A-Za-z]?)`
	documentID = `(?:fdl|fl|cd)-\d+-\d{4}|difc-law-\d+-\d{4}|adgm-[a-z0-9]+(?:-[a-z0-9]+)*-\d{4}`
)

var bareDocumentID = regexp.MustCompile(`(?i)^(?:` + documentID + `)$`)

type shape struct {
	format domain.CitationFormat
	re     *regexp.Regexp
	doc    int // submatch index of the law reference
	ref    int // submatch index of the provision number

	// notID rejects a match whose law reference is a bare document id.
	notID bool
}

// Prefix shapes are tried before suffix shapes: a law title containing a
// comma would otherwise be split by the suffix patterns. Suffix labels are
// case-sensitive, and suffix shapes leave bare ids such as
// "difc-law-5-2020, s. 3" to the id-based shape.
var shapes = []shape{
	{
		format: domain.CitationArabic,
		re:     regexp.MustCompile(`^المادة\s*(?:رقم\s*)?\(?\s*` + number + `\s*\)?\s+من\s+(.+)$`),
		doc:    2, ref: 1,
	},
	{
		format: domain.CitationArticlePrefix,
		re:     regexp.MustCompile(`(?i)^(?:Article|Art\.?)\s*` + number + `(?:\s*,\s*|\s+of\s+(?:the\s+)?)(.+)$`),
		doc:    2, ref: 1,
	},
	{
		format: domain.CitationSectionPrefix,
		re:     regexp.MustCompile(`(?i)^(?:Section|s\.?)\s*` + number + `(?:\s*,\s*|\s+of\s+(?:the\s+)?)(.+)$`),
		doc:    2, ref: 1,
	},
	{
		format: domain.CitationArticleSuffix,
		re:     regexp.MustCompile(`^(.+?)\s*,\s*(?:Article|Art\.?)\s*` + number + `$`),
		doc:    1, ref: 2,
		notID:  true,
	},
	{
		format: domain.CitationSectionSuffix,
		re:     regexp.MustCompile(`^(.+?)\s*,\s*(?:Section|s\.?)\s*` + number + `$`),
		doc:    1, ref: 2,
		notID:  true,
	},
	{
		format: domain.CitationIDBased,
		re: regexp.MustCompile(`(?i)^(` + documentID + `)` +
			`\s*,?\s*(?:art\.?|article|s\.?|section)\s*` + number + `$`),
		doc: 1, ref: 2,
	},
}

// Parse splits a citation into its document reference and provision number.
// Only the first matching shape is used. Input matching no shape is a bare
// document reference; only blank input is an error.
func Parse(input string) (domain.Citation, error) {
	raw := strings.Join(strings.Fields(input), " ")
	if raw == "" {
		return domain.Citation{}, ErrUnparseable
	}

	for _, s := range shapes {
		m := s.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		doc := strings.TrimSpace(m[s.doc])
		if doc == "" || (s.notID && bareDocumentID.MatchString(doc)) {
			continue
		}
		return domain.Citation{
			Raw:         raw,
			DocumentRef: doc,
			ArticleRef:  NormalizeNumber(m[s.ref]),
			Format:      s.format,
		}, nil
	}

	return domain.Citation{Raw: raw, DocumentRef: raw, Format: domain.CitationBare}, nil
}

// NormalizeNumber converts Arabic-Indic digits to ASCII and upper-cases a
// letter suffix: "٥a" becomes "5A".
func NormalizeNumber(n string) string {
	var sb strings.Builder
	sb.Grow(len(n))
	for _, r := range strings.TrimSpace(n) {
		switch {
		case r >= 0x0660 && r <= 0x0669:
			sb.WriteRune('0' + (r - 0x0660))
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r - 'a' + 'A')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
