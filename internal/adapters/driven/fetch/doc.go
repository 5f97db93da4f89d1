// Package fetch retrieves the raw HTML published for catalogue sources.
//
// HTTP sources share one process-wide RateLimiter, so any number of ingest
// workers still send at most one request per interval. Transient failures
// (HTTP 429, 5xx and transport errors) are retried with exponential backoff.
// file:// URLs and local paths are read directly, without rate limiting.
package fetch
