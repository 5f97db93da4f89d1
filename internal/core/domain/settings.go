package domain

import (
	"fmt"
	"time"
)

// Settings is the application configuration.
type Settings struct {
	Fetch   FetchSettings   `toml:"fetch"`
	Ingest  IngestSettings  `toml:"ingest"`
	Storage StorageSettings `toml:"storage"`
}

// FetchSettings configures outbound requests to publishers.
type FetchSettings struct {
	// MinDelayMs is the minimum gap between any two requests, process-wide.
	MinDelayMs int `toml:"min_delay_ms"`

	// MaxAttempts bounds retries on HTTP 429, 5xx and transport errors.
	MaxAttempts int `toml:"max_attempts"`

	// BaseBackoffMs is the first retry delay; it doubles per attempt.
	BaseBackoffMs int `toml:"base_backoff_ms"`

	TimeoutSeconds int    `toml:"timeout_s"`
	UserAgent      string `toml:"user_agent"`
}

// IngestSettings configures the ingestion driver.
type IngestSettings struct {
	// Workers is the number of documents processed concurrently.
	// One keeps the declared catalogue order strictly sequential.
	Workers int `toml:"workers"`

	// Catalog is an optional path to a TOML source catalogue.
	Catalog string `toml:"catalog"`
}

// StorageSettings configures persistence.
type StorageSettings struct {
	DataDir string `toml:"data_dir"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Fetch: FetchSettings{
			MinDelayMs:     1000,
			MaxAttempts:    3,
			BaseBackoffMs:  2000,
			TimeoutSeconds: 30,
			UserAgent:      "tashri/0.1 (+legislation research)",
		},
		Ingest: IngestSettings{
			Workers: 1,
		},
	}
}

// MinDelay returns MinDelayMs as a duration.
func (f FetchSettings) MinDelay() time.Duration {
	return time.Duration(f.MinDelayMs) * time.Millisecond
}

// BaseBackoff returns BaseBackoffMs as a duration.
func (f FetchSettings) BaseBackoff() time.Duration {
	return time.Duration(f.BaseBackoffMs) * time.Millisecond
}

// Timeout returns TimeoutSeconds as a duration.
func (f FetchSettings) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Validate rejects settings ingestion cannot run with.
func (s Settings) Validate() error {
	if s.Fetch.MinDelayMs < 0 {
		return fmt.Errorf("%w: fetch.min_delay_ms must not be negative", ErrInvalidInput)
	}
	if s.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("%w: fetch.max_attempts must be at least 1", ErrInvalidInput)
	}
	if s.Fetch.BaseBackoffMs < 0 {
		return fmt.Errorf("%w: fetch.base_backoff_ms must not be negative", ErrInvalidInput)
	}
	if s.Ingest.Workers < 1 {
		return fmt.Errorf("%w: ingest.workers must be at least 1", ErrInvalidInput)
	}
	return nil
}
