package domain

import "errors"

// Sentinel errors shared by the services and adapters. Adapters wrap them
// with %w so callers can branch with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented is returned by services whose store is not wired.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedZone indicates a legal zone without a registered extractor.
	ErrUnsupportedZone = errors.New("unsupported legal zone")

	// ErrSearchUnavailable indicates the search engine is not configured.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrRateLimited indicates the publisher rejected a request with HTTP 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrFetchFailed indicates a document could not be fetched after all retries.
	ErrFetchFailed = errors.New("fetch failed")
)
