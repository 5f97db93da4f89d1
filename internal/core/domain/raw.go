package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RawDocument represents the bytes fetched for a Source.
// It is the fetcher's output before extraction.
type RawDocument struct {
	// Source is the catalogue entry the bytes belong to.
	Source Source

	// URI is the location the bytes were read from.
	URI string

	// MIMEType is the response content type, when known.
	MIMEType string

	// Content is the raw HTML.
	Content []byte

	// FetchedAt is when the content was retrieved.
	FetchedAt time.Time
}

// ContentHash returns the hex sha256 of the raw content.
func (r *RawDocument) ContentHash() string {
	sum := sha256.Sum256(r.Content)
	return hex.EncodeToString(sum[:])
}
