package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// GitHubRateLimit is the authenticated GraphQL point budget (5000/hour).
	GitHubRateLimit = 5000

	// MinBuffer is the minimum remaining budget before waiting for reset.
	MinBuffer = 100

	// ResetGrace is added to the reported reset time before resuming.
	ResetGrace = 5 * time.Second

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// sleepFunc pauses for d or until ctx is done.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
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

// RateLimiter implements dual-strategy rate limiting for the GitHub API:
// a token bucket throttles every request, and the remaining budget reported
// by the API blocks requests until reset once it drops below MinBuffer.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer int

	now   func() time.Time
	sleep sleepFunc
}

// NewRateLimiter creates a rate limiter allowing rps requests per second.
// rps <= 0 disables proactive throttling.
func NewRateLimiter(rps float64) *RateLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &RateLimiter{
		remaining: GitHubRateLimit,
		limit:     GitHubRateLimit,
		bucket:    rate.NewLimiter(limit, 1),
		minBuffer: MinBuffer,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Wait takes a token from the bucket, then sleeps out the window if the
// budget is exhausted.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}
	if r.Exhausted() {
		return r.WaitForReset(ctx)
	}
	return nil
}

// Exhausted reports whether the remaining budget is below the buffer and the
// reset time has not passed yet.
func (r *RateLimiter) Exhausted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining < r.minBuffer && r.now().Before(r.resetTime)
}

// Observe records budget state reported by a rateLimit query.
func (r *RateLimiter) Observe(remaining int, resetAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = remaining
	r.resetTime = resetAt
}

// UpdateFromResponse copies the X-RateLimit-* headers of resp into the
// limiter. Missing or malformed headers leave the previous value.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := headerInt(resp.Header, HeaderRateRemaining); ok {
		r.remaining = int(v)
	}
	if v, ok := headerInt(resp.Header, HeaderRateLimit); ok {
		r.limit = int(v)
	}
	if v, ok := headerInt(resp.Header, HeaderRateReset); ok {
		r.resetTime = time.Unix(v, 0)
	}
}

func headerInt(h http.Header, key string) (int64, bool) {
	raw := h.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	return v, err == nil
}

// Remaining returns the last known remaining budget.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the budget per window.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns when the current window ends.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}

// WaitForReset waits until the rate limit resets, then assumes a full budget.
func (r *RateLimiter) WaitForReset(ctx context.Context) error {
	r.mu.Lock()
	resetTime := r.resetTime
	now := r.now()
	r.mu.Unlock()

	if !now.Before(resetTime) {
		return nil
	}
	if err := r.sleep(ctx, resetTime.Sub(now)); err != nil {
		return err
	}

	r.mu.Lock()
	r.remaining = r.limit
	r.mu.Unlock()
	return nil
}
