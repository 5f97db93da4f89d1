package driven

import (
	"context"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// Fetcher retrieves the raw HTML published for a source.
// Implementations enforce the process-wide request interval and retry
// transient failures before returning an error.
type Fetcher interface {
	Fetch(ctx context.Context, source domain.Source) (*domain.RawDocument, error)
}
