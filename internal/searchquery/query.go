// Package searchquery turns raw user input into FTS5 MATCH expressions.
//
// The primary variant keeps intentional syntax: balanced quoted phrases,
// AND/OR/NOT between two operands, and a trailing prefix wildcard (term*).
// Every other character with meaning to the FTS5 grammar is neutralised.
// Fallback variants drop all syntax so a caller can retry when the primary
// finds nothing. Nothing here runs a query.
package searchquery

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minPrefixLetters is the shortest stem a trailing wildcard is kept for.
const minPrefixLetters = 2

// Variants is the ordered set of MATCH expressions for one user query.
type Variants struct {
	// Primary is the phrase-preserving, operator-aware expression.
	Primary string

	// Fallbacks are tried in order when Primary returns no rows.
	Fallbacks []string
}

// All returns the non-empty variants in the order they should be tried.
func (v Variants) All() []string {
	out := make([]string, 0, 1+len(v.Fallbacks))
	if v.Primary != "" {
		out = append(out, v.Primary)
	}
	return append(out, v.Fallbacks...)
}

// IsEmpty reports whether the query had no searchable terms.
func (v Variants) IsEmpty() bool {
	return v.Primary == "" && len(v.Fallbacks) == 0
}

type kind int

const (
	kindTerm kind = iota
	kindPrefix
	kindPhrase
	kindOperator
)

type item struct {
	kind kind
	text string
}

// Build sanitises query and derives its fallback variants.
func Build(query string) Variants {
	items := tokenize(query)
	primary := render(items)

	var bag []string
	seen := make(map[string]bool)
	for _, it := range items {
		if it.kind == kindOperator {
			continue
		}
		for _, term := range strings.Fields(it.text) {
			if !seen[term] {
				seen[term] = true
				bag = append(bag, term)
			}
		}
	}

	v := Variants{Primary: primary}
	for _, candidate := range []string{strings.Join(bag, " "), strings.Join(bag, " OR ")} {
		if candidate == "" || candidate == primary || contains(v.Fallbacks, candidate) {
			continue
		}
		v.Fallbacks = append(v.Fallbacks, candidate)
	}
	return v
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// tokenize splits the query into phrases, operators and cleaned terms.
func tokenize(query string) []item {
	var items []item
	rest := query
	for rest != "" {
		open := strings.IndexByte(rest, '"')
		if open < 0 {
			items = append(items, words(rest)...)
			break
		}
		closing := strings.IndexByte(rest[open+1:], '"')
		if closing < 0 {
			// An unbalanced quote is just noise.
			items = append(items, words(rest[:open]+" "+rest[open+1:])...)
			break
		}
		items = append(items, words(rest[:open])...)
		if phrase := clean(rest[open+1 : open+1+closing]); phrase != "" {
			items = append(items, item{kind: kindPhrase, text: phrase})
		}
		rest = rest[open+1+closing+1:]
	}
	return items
}

func words(s string) []item {
	var items []item
	for _, w := range strings.Fields(s) {
		switch w {
		case "AND", "OR", "NOT":
			items = append(items, item{kind: kindOperator, text: w})
			continue
		}

		prefix := strings.HasSuffix(w, "*")
		terms := strings.Fields(clean(w))
		if len(terms) == 0 {
			continue
		}
		for i, term := range terms {
			k := kindTerm
			if prefix && i == len(terms)-1 && letterCount(term) >= minPrefixLetters {
				k = kindPrefix
			}
			items = append(items, item{kind: k, text: term})
		}
	}
	return items
}

// clean lower-cases s and replaces everything but letters, digits, marks
// and underscores with spaces.
func clean(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '_':
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func letterCount(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if unicode.IsLetter(r) {
			n++
		}
		s = s[size:]
	}
	return n
}

// render joins items, keeping an operator only when an operand sits on
// both sides of it. Consecutive operators collapse to the last.
func render(items []item) string {
	parts := make([]string, 0, len(items))
	lastOperand := false
	for i, it := range items {
		switch it.kind {
		case kindOperator:
			if !lastOperand || !operandFollows(items[i+1:]) {
				continue
			}
			parts = append(parts, it.text)
			lastOperand = false
		case kindPhrase:
			parts = append(parts, `"`+it.text+`"`)
			lastOperand = true
		case kindPrefix:
			parts = append(parts, it.text+"*")
			lastOperand = true
		default:
			parts = append(parts, it.text)
			lastOperand = true
		}
	}
	return strings.Join(parts, " ")
}

func operandFollows(items []item) bool {
	return len(items) > 0 && items[0].kind != kindOperator
}
