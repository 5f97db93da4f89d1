package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// MaxBodyBytes caps the size of a fetched page.
const MaxBodyBytes = 32 << 20

// Config controls request pacing and retries.
type Config struct {
	// MinDelay is the minimum gap between any two HTTP requests.
	MinDelay time.Duration

	// MaxAttempts bounds the number of tries per document.
	MaxAttempts int

	// BaseBackoff is the delay before the second attempt; it doubles after
	// each further failure.
	BaseBackoff time.Duration

	Timeout   time.Duration
	UserAgent string
}

// ConfigFromSettings converts persisted fetch settings.
func ConfigFromSettings(s domain.FetchSettings) Config {
	return Config{
		MinDelay:    s.MinDelay(),
		MaxAttempts: s.MaxAttempts,
		BaseBackoff: s.BaseBackoff(),
		Timeout:     s.Timeout(),
		UserAgent:   s.UserAgent,
	}
}

// Fetcher retrieves source pages over HTTP or from the local filesystem.
type Fetcher struct {
	client  *http.Client
	limiter *RateLimiter
	clock   Clock
	cfg     Config
}

// NewFetcher creates a fetcher. Pass the same limiter to every fetcher in
// the process to keep the request interval global.
func NewFetcher(cfg Config, limiter *RateLimiter) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if limiter == nil {
		limiter = NewRateLimiter(cfg.MinDelay, SystemClock)
	}
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		clock:   limiter.clock,
		cfg:     cfg,
	}
}

// Fetch returns the raw content for src. HTTP failures are retried per
// Config; a local file is read once.
func (f *Fetcher) Fetch(ctx context.Context, src domain.Source) (*domain.RawDocument, error) {
	if path, ok := localPath(src.URL); ok {
		return f.readFile(src, path)
	}

	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := f.cfg.BaseBackoff << (attempt - 2)
			logger.Debug("Retrying %s in %s (attempt %d/%d): %v", src.ID, delay, attempt, f.cfg.MaxAttempts, lastErr)
			if err := f.clock.Sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		raw, err := f.get(ctx, src)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
			f.limiter.RecordRateLimit(httpErr.RetryAfter)
		}
		if !isRetryable(err) {
			return nil, err
		}
		logger.Warn("Fetch %s attempt %d/%d failed: %v", src.ID, attempt, f.cfg.MaxAttempts, err)
	}

	return nil, fmt.Errorf("%w: %s after %d attempts: %w", domain.ErrFetchFailed, src.ID, f.cfg.MaxAttempts, lastErr)
}

func (f *Fetcher) get(ctx context.Context, src domain.Source) (*domain.RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        src.URL,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), f.clock.Now()),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return &domain.RawDocument{
		Source:    src,
		URI:       resp.Request.URL.String(),
		MIMEType:  resp.Header.Get("Content-Type"),
		Content:   body,
		FetchedAt: f.clock.Now(),
	}, nil
}

func (f *Fetcher) readFile(src domain.Source, path string) (*domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrNotFound, path, err)
		}
		return nil, err
	}
	return &domain.RawDocument{
		Source:    src,
		URI:       "file://" + path,
		MIMEType:  "text/html",
		Content:   content,
		FetchedAt: f.clock.Now(),
	}, nil
}

// localPath reports whether raw names a local file: a file:// URL or a
// path without a scheme.
func localPath(raw string) (string, bool) {
	if strings.HasPrefix(raw, "file://") {
		u, err := url.Parse(raw)
		if err != nil || u.Path == "" {
			return strings.TrimPrefix(raw, "file://"), true
		}
		return u.Path, true
	}
	if !strings.Contains(raw, "://") {
		return raw, true
	}
	return "", false
}
