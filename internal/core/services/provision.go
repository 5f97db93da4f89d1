package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/custodia-labs/tashri/internal/citation"
	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
)

// provisionInput accepts "Article 5", "Art. 5", "s. 5", "Section (5a)",
// "Rule 3" and "المادة ٥".
var provisionInput = regexp.MustCompile(
	`(?i)^(article|art\.?|section|sec\.?|s\.?|rule|regulation|reg\.?|المادة)\s*\(?\s*([0-9\x{0660}-\x{0669}]+[a-z]?)\s*\)?$`)

// provisionCandidates lists the provision_refs to try for a user-supplied
// provision reference, in order, plus the bare number for the section
// column fallback.
func provisionCandidates(input string) (refs []string, number string) {
	input = strings.TrimSpace(input)
	seen := make(map[string]bool)
	add := func(ref string) {
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	// Stored refs first: "art5A" and "s12" are already canonical.
	add(input)

	if m := provisionInput.FindStringSubmatch(input); m != nil {
		number = citation.NormalizeNumber(m[2])
		label := strings.ToLower(strings.TrimSuffix(m[1], "."))
		if label == "article" || label == "art" || label == "المادة" {
			add(domain.RefPrefixArticle + number)
			add(domain.RefPrefixSection + number)
		} else {
			add(domain.RefPrefixSection + number)
			add(domain.RefPrefixArticle + number)
		}
		return refs, number
	}

	number = citation.NormalizeNumber(input)
	add(number)
	add(domain.RefPrefixArticle + number)
	add(domain.RefPrefixSection + number)
	return refs, number
}

// lookupProvision finds a provision by trying each candidate provision_ref
// and then the raw section column. The first hit wins; a miss returns nil.
func lookupProvision(ctx context.Context, store driven.DocumentStore, documentID, input string) (*domain.ParsedProvision, error) {
	refs, number := provisionCandidates(input)

	for _, ref := range refs {
		p, err := store.GetProvision(ctx, documentID, ref)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if number == "" {
		return nil, nil
	}
	p, err := store.GetProvisionBySection(ctx, documentID, number)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return p, err
}
