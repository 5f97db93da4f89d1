package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

// HTTPError is a non-2xx response from a publisher.
type HTTPError struct {
	StatusCode int
	URL        string

	// RetryAfter is parsed from the Retry-After header, when present.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s (URL: %s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Is maps status codes onto domain sentinels so callers can use errors.Is.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case domain.ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
	}
	return false
}

// IsRateLimited reports whether err is an HTTP 429.
func IsRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited)
}

// IsNotFound reports whether err is an HTTP 404 or 410, or a missing local file.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsServerError reports whether err is an HTTP 5xx.
func IsServerError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return false
}

// isRetryable reports whether a failed attempt warrants another one:
// 429, 5xx and transport errors. Context cancellation never retries.
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return true
}

// parseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
