package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
	"github.com/custodia-labs/tashri/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.ResolverService = (*ResolverService)(nil)

// Strategy names reported in domain.Resolution.
const (
	StrategyExactID         = "exact_id"
	StrategyShortName       = "short_name"
	StrategyStructural      = "structural"
	StrategySubstring       = "substring"
	StrategyFoldedSubstring = "folded_substring"
)

// federalIDPrefixes are probed in this order by the structural strategy.
var federalIDPrefixes = []string{"fdl", "fl", "cd"}

// lawNumber finds "45/2021", "No. 45/2021" and "No. 45 of 2021".
var lawNumber = regexp.MustCompile(`(?i)(?:No\.?\s*)?(\d+)\s*(?:/|\s+of\s+)\s*(\d{4})\b`)

// resolveRequest is the state shared by the strategies of one resolution.
type resolveRequest struct {
	store driven.DocumentStore
	input string
	fold  cases.Caser
	docs  []domain.ParsedDocument
}

// strategy is one stage of the document reference cascade. It returns the
// matched id, or an empty string to pass to the next stage.
type strategy struct {
	Name    string
	Resolve func(ctx context.Context, r *resolveRequest) (string, error)
}

// strategies is the cascade in evaluation order. The first stage that
// matches wins; there is no ranking across stages.
var strategies = []strategy{
	{Name: StrategyExactID, Resolve: matchExactID},
	{Name: StrategyShortName, Resolve: matchShortName},
	{Name: StrategyStructural, Resolve: matchStructural},
	{Name: StrategySubstring, Resolve: matchSubstring},
	{Name: StrategyFoldedSubstring, Resolve: matchFoldedSubstring},
}

// ResolveDocumentID maps a free-form reference to a stored document id.
// A miss is a Resolution with Found false and a reason naming the input.
func ResolveDocumentID(ctx context.Context, store driven.DocumentStore, input string) (domain.Resolution, error) {
	input = strings.TrimSpace(input)
	res := domain.Resolution{Input: input}
	if input == "" {
		res.Reason = "Empty document reference"
		return res, nil
	}

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return res, fmt.Errorf("list documents: %w", err)
	}

	r := &resolveRequest{store: store, input: input, fold: cases.Fold(), docs: docs}
	for _, s := range strategies {
		id, err := s.Resolve(ctx, r)
		if err != nil {
			return res, fmt.Errorf("%s: %w", s.Name, err)
		}
		if id != "" {
			logger.Debug("Resolved %q to %s via %s", input, id, s.Name)
			res.Found = true
			res.DocumentID = id
			res.Strategy = s.Name
			return res, nil
		}
	}

	res.Reason = "Document not found: " + input
	return res, nil
}

func matchExactID(ctx context.Context, r *resolveRequest) (string, error) {
	ok, err := r.store.DocumentExists(ctx, r.input)
	if err != nil || !ok {
		return "", err
	}
	return r.input, nil
}

func matchShortName(_ context.Context, r *resolveRequest) (string, error) {
	want := r.fold.String(r.input)
	for _, doc := range r.docs {
		if doc.ShortName != "" && r.fold.String(doc.ShortName) == want {
			return doc.ID, nil
		}
	}
	return "", nil
}

func matchStructural(ctx context.Context, r *resolveRequest) (string, error) {
	m := lawNumber.FindStringSubmatch(r.input)
	if m == nil {
		return "", nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", nil
	}

	for _, prefix := range federalIDPrefixes {
		id := fmt.Sprintf("%s-%d-%s", prefix, n, m[2])
		ok, err := r.store.DocumentExists(ctx, id)
		if err != nil {
			return "", err
		}
		if ok {
			return id, nil
		}
	}
	return "", nil
}

func matchSubstring(_ context.Context, r *resolveRequest) (string, error) {
	return shortestContaining(r.docs, r.input, func(s string) string { return s }), nil
}

func matchFoldedSubstring(_ context.Context, r *resolveRequest) (string, error) {
	return shortestContaining(r.docs, r.fold.String(r.input), r.fold.String), nil
}

// shortestContaining returns the document whose title, short name or
// English title contains needle, preferring the shortest such field so an
// abbreviation does not land on an unrelated longer title. Ties keep
// insertion order.
func shortestContaining(docs []domain.ParsedDocument, needle string, norm func(string) string) string {
	best, bestLen := "", 0
	for _, doc := range docs {
		for _, field := range []string{doc.Title, doc.ShortName, doc.TitleEn} {
			if field == "" {
				continue
			}
			f := norm(field)
			if !strings.Contains(f, needle) {
				continue
			}
			if best == "" || len(f) < bestLen {
				best, bestLen = doc.ID, len(f)
			}
		}
	}
	return best
}

// ResolverService exposes the cascade over a DocumentStore.
type ResolverService struct {
	store driven.DocumentStore
}

// NewResolverService creates a new resolver service.
func NewResolverService(store driven.DocumentStore) *ResolverService {
	return &ResolverService{store: store}
}

// Resolve runs the resolution cascade.
func (s *ResolverService) Resolve(ctx context.Context, input string) (domain.Resolution, error) {
	if s.store == nil {
		return domain.Resolution{Input: input}, domain.ErrNotImplemented
	}
	return ResolveDocumentID(ctx, s.store, input)
}
