package extractors

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/normalisers/html"
)

const (
	// MaxProvisionContent is the hard cap on stored provision content, in
	// characters. Longer content is cut without an ellipsis.
	MaxProvisionContent = 12000

	// minProvisionContent is the length at or below which a normalised
	// body is treated as a noise match and dropped.
	minProvisionContent = 5

	maxTitleLength   = 300
	maxInlineTitle   = 80
	maxChapterLength = 300
)

var (
	titleElement = regexp.MustCompile(`(?is)<(?:b|strong|h[1-6])\b[^>]*>(.*?)</(?:b|strong|h[1-6])\s*>`)
	lineBreak    = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|li|tr|td|th|section|article)\s*>|<br\s*/?>|\n`)
	titleTrim    = "-–—:.)( \t"

	titleSeparators = "-–—:.)"
)

// head is one provision marker occurrence in the raw HTML.
type head struct {
	start  int // offset of the marker word
	end    int // offset just after the number and suffix
	marker Marker
	number string
}

// heading is a chapter or part heading and its offset.
type heading struct {
	pos  int
	text string
}

// ExtractProvisions segments raw HTML into provisions using the given
// marker vocabulary.
//
// Each marker occurrence opens a provision whose body runs until the next
// marker of any kind, or the end of the input. The result is deduplicated
// by provision_ref, keeping the longest content, and is ordered by first
// appearance. An input with no markers yields an empty slice.
func ExtractProvisions(raw string, markers []Marker) []domain.ParsedProvision {
	heads := findHeads(raw, markers)
	if len(heads) == 0 {
		return []domain.ParsedProvision{}
	}
	chapters := indexHeadings(raw)

	provisions := make([]domain.ParsedProvision, 0, len(heads))
	for i, h := range heads {
		bodyEnd := len(raw)
		if i+1 < len(heads) {
			bodyEnd = heads[i+1].start
		}
		body := raw[h.end:bodyEnd]

		content := html.StripHTML(body)
		if utf8.RuneCountInString(content) <= minProvisionContent {
			continue
		}

		provisions = append(provisions, domain.ParsedProvision{
			ProvisionRef: h.marker.Prefix + h.number,
			Chapter:      chapterAt(chapters, h.start),
			Section:      h.number,
			Title:        provisionTitle(body),
			Content:      truncateRunes(content, MaxProvisionContent),
			Language:     h.marker.Language,
		})
	}

	return DedupeProvisions(provisions)
}

// findHeads collects marker occurrences for every marker, sorted by offset.
func findHeads(raw string, markers []Marker) []head {
	var heads []head
	for _, m := range markers {
		for _, loc := range m.pattern.FindAllStringSubmatchIndex(raw, -1) {
			// loc: full, word, digits, suffix
			number := asciiDigits(raw[loc[4]:loc[5]])
			end := loc[1]
			switch suffix := raw[loc[6]:loc[7]]; {
			case len(suffix) == 1:
				number += strings.ToUpper(suffix)
			case len(suffix) > 1:
				// "Article 5bis" or a word glued to the number; keep it in the body.
				end = loc[5]
			}
			heads = append(heads, head{
				start:  loc[2],
				end:    end,
				marker: m,
				number: number,
			})
		}
	}

	sort.SliceStable(heads, func(i, j int) bool {
		return heads[i].start < heads[j].start
	})
	return heads
}

// indexHeadings records every chapter/part heading once, sorted by offset.
func indexHeadings(raw string) []heading {
	var out []heading
	for _, re := range chapterHeadings {
		for _, loc := range re.FindAllStringSubmatchIndex(raw, -1) {
			text := html.StripHTML(raw[loc[2]:loc[3]])
			if text == "" {
				continue
			}
			out = append(out, heading{pos: loc[2], text: truncateRunes(text, maxChapterLength)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].pos < out[j].pos
	})
	return out
}

// chapterAt returns the last heading that starts before offset.
func chapterAt(headings []heading, offset int) string {
	i := sort.Search(len(headings), func(i int) bool {
		return headings[i].pos >= offset
	})
	if i == 0 {
		return ""
	}
	return headings[i-1].text
}

// provisionTitle takes the first bold, strong or heading element in the
// body. Without one, the text left on the marker's own line
// ("Article 2 - Definitions") is used.
func provisionTitle(body string) string {
	if m := titleElement.FindStringSubmatch(body); m != nil {
		if title := strings.Trim(html.StripHTML(m[1]), titleTrim); title != "" {
			return truncateRunes(title, maxTitleLength)
		}
	}

	loc := lineBreak.FindStringIndex(body)
	if loc == nil {
		return ""
	}
	line := strings.TrimSpace(html.StripHTML(body[:loc[0]]))
	title := strings.Trim(line, titleTrim)
	if title == "" {
		return ""
	}
	if strings.IndexAny(line, titleSeparators) == 0 {
		return truncateRunes(title, maxTitleLength)
	}
	// An unseparated remainder is only a title when text follows it and it
	// is short enough to be a caption rather than the provision itself.
	if utf8.RuneCountInString(title) > maxInlineTitle || html.StripHTML(body[loc[1]:]) == "" {
		return ""
	}
	return title
}

// DedupeProvisions keeps one provision per provision_ref: the one with the
// longest content, or the first seen when lengths tie. Order follows first
// appearance.
func DedupeProvisions(provisions []domain.ParsedProvision) []domain.ParsedProvision {
	index := make(map[string]int, len(provisions))
	out := make([]domain.ParsedProvision, 0, len(provisions))

	for _, p := range provisions {
		i, seen := index[p.ProvisionRef]
		if !seen {
			index[p.ProvisionRef] = len(out)
			out = append(out, p)
			continue
		}
		if utf8.RuneCountInString(p.Content) > utf8.RuneCountInString(out[i].Content) {
			out[i] = p
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
