package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Clock abstracts time for the limiter and the retry loop.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// RateLimiter spaces requests at least interval apart across every caller.
// It uses a token bucket with a burst of one, plus a shared pause set when a
// publisher answers 429.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	clock   Clock
	retryAt time.Time
}

// NewRateLimiter creates a limiter allowing one request per interval.
// A zero interval disables spacing.
func NewRateLimiter(interval time.Duration, clock Clock) *RateLimiter {
	if clock == nil {
		clock = SystemClock
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, 1),
		clock:   clock,
	}
}

// Wait blocks until a request may be sent. It honours any pause recorded
// by RecordRateLimit before taking a token.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// First, check for a pause from a previous 429
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if pause := retryAt.Sub(r.clock.Now()); pause > 0 {
		if err := r.clock.Sleep(ctx, pause); err != nil {
			return err
		}
	}

	// Then wait for the token bucket
	now := r.clock.Now()
	res := r.limiter.ReserveN(now, 1)
	if !res.OK() {
		return context.DeadlineExceeded
	}
	if err := r.clock.Sleep(ctx, res.DelayFrom(now)); err != nil {
		res.CancelAt(r.clock.Now())
		return err
	}
	return nil
}

// RecordRateLimit pauses every caller for retryAfter. Shorter pauses never
// replace a longer one already in effect.
func (r *RateLimiter) RecordRateLimit(retryAfter time.Duration) {
	if retryAfter <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if at := r.clock.Now().Add(retryAfter); at.After(r.retryAt) {
		r.retryAt = at
	}
}
