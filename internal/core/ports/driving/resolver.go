package driving

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// ResolverService maps free-form document references to canonical ids.
type ResolverService interface {
	// Resolve runs the resolution cascade. A miss is returned as a
	// Resolution with Found false, not as an error.
	Resolve(ctx context.Context, input string) (domain.Resolution, error)
}

// CitationService validates and formats citation strings.
type CitationService interface {
	// Validate parses and resolves a citation, reporting warnings for
	// missing documents or provisions and for repealed/amended statutes.
	Validate(ctx context.Context, citation string) (*domain.CitationValidation, error)

	// Format re-renders a citation string in the given style.
	Format(ctx context.Context, citation string, style domain.CitationStyle) (string, error)
}
