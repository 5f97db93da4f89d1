package extractors

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

const (
	// MaxDefinitionLength caps the rendered definition, term included.
	MaxDefinitionLength = 4000

	minDefinitionBody = 3

	// definitionsProbe is how far into a provision the definitions
	// heading is looked for when the title does not carry it.
	definitionsProbe = 200
)

var (
	definitionsHeading = regexp.MustCompile(`(?i)\bdefinitions\b|تعريفات|تعاريف`)

	// "Controller" means ...; "Data" includes ...; "Court" has the meaning ...
	englishDefinition = regexp.MustCompile(
		`["“«]([^"“”«»\n]{1,200})["”»]\s*(means|includes|has the (?:same )?meaning)\b`)

	// Arabic entries sit on their own line: term, colon, then a sentence.
	arabicDefinition = regexp.MustCompile(
		`(?m)^[ \t]*[«"“]?(\p{Arabic}[\p{Arabic}\p{Mn} \t]{0,120}?)[»"”]?[ \t]*:[ \t]*([^\n.؛]+)`)

	definitionTail = regexp.MustCompile(`(?i)(?:[;,]\s*(?:and|or)\s*)?[;,\s]*$`)
)

// IsDefinitionsProvision reports whether a provision is a definitions
// article, judged by its title or the opening of its content.
func IsDefinitionsProvision(p domain.ParsedProvision) bool {
	if definitionsHeading.MatchString(p.Title) {
		return true
	}
	return definitionsHeading.MatchString(truncateRunes(p.Content, definitionsProbe))
}

// ExtractDefinitions mines defined terms from the definitions provisions
// among the given provisions. Terms are unique; the longest definition of
// a repeated term is kept.
func ExtractDefinitions(provisions []domain.ParsedProvision) []domain.ParsedDefinition {
	var found []domain.ParsedDefinition
	for _, p := range provisions {
		if !IsDefinitionsProvision(p) {
			continue
		}
		found = append(found, englishDefinitions(p)...)
		found = append(found, arabicDefinitions(p)...)
	}
	return DedupeDefinitions(found)
}

// englishDefinitions takes each quoted term followed by a defining verb.
// The definition runs to the next such term or the end of the body.
func englishDefinitions(p domain.ParsedProvision) []domain.ParsedDefinition {
	text := p.Content
	locs := englishDefinition.FindAllStringSubmatchIndex(text, -1)

	out := make([]domain.ParsedDefinition, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		term := text[loc[2]:loc[3]]
		verb := text[loc[4]:loc[5]]
		if def, ok := newDefinition(term, verb, text[loc[1]:end], p.ProvisionRef); ok {
			out = append(out, def)
		}
	}
	return out
}

func arabicDefinitions(p domain.ParsedProvision) []domain.ParsedDefinition {
	var out []domain.ParsedDefinition
	for _, m := range arabicDefinition.FindAllStringSubmatch(p.Content, -1) {
		if def, ok := newDefinition(m[1], "", m[2], p.ProvisionRef); ok {
			out = append(out, def)
		}
	}
	return out
}

// newDefinition renders `"term" verb body`. The body is the explanatory
// clause alone and must be longer than minDefinitionBody.
func newDefinition(term, verb, body, source string) (domain.ParsedDefinition, bool) {
	term = strings.TrimSpace(term)
	body = strings.Join(strings.Fields(body), " ")
	body = definitionTail.ReplaceAllString(body, "")

	if term == "" || utf8.RuneCountInString(body) <= minDefinitionBody {
		return domain.ParsedDefinition{}, false
	}

	rendered := `"` + term + `" `
	if verb != "" {
		rendered += verb + " "
	}
	return domain.ParsedDefinition{
		Term:            term,
		Definition:      truncateRunes(rendered+body, MaxDefinitionLength),
		SourceProvision: source,
	}, true
}

// DedupeDefinitions keeps one definition per term, preferring the longest
// and keeping first-appearance order.
func DedupeDefinitions(defs []domain.ParsedDefinition) []domain.ParsedDefinition {
	index := make(map[string]int, len(defs))
	out := make([]domain.ParsedDefinition, 0, len(defs))

	for _, d := range defs {
		i, seen := index[d.Term]
		if !seen {
			index[d.Term] = len(out)
			out = append(out, d)
			continue
		}
		if utf8.RuneCountInString(d.Definition) > utf8.RuneCountInString(out[i].Definition) {
			out[i] = d
		}
	}
	return out
}
