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
	// AuthenticatedLimit is the hourly quota with a token.
	AuthenticatedLimit = 5000

	// AnonymousLimit is the hourly quota without a token.
	AnonymousLimit = 60

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// quota describes the proactive throttle for one access mode.
type quota struct {
	perHour int
	burst   int
	buffer  int
}

var (
	authenticatedQuota = quota{perHour: AuthenticatedLimit, burst: 50, buffer: 100}
	anonymousQuota     = quota{perHour: AnonymousLimit, burst: 30, buffer: 5}
)

// RateLimiter combines a token bucket with the quota GitHub reports.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer int
}

// NewRateLimiter creates a limiter sized for authenticated or anonymous access.
func NewRateLimiter(authenticated bool) *RateLimiter {
	q := anonymousQuota
	if authenticated {
		q = authenticatedQuota
	}
	return &RateLimiter{
		remaining: q.perHour,
		limit:     q.perHour,
		bucket:    rate.NewLimiter(rate.Limit(float64(q.perHour)/3600), q.burst),
		minBuffer: q.buffer,
	}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining, resetTime := r.remaining, r.resetTime
	r.mu.Unlock()

	if remaining >= r.minBuffer || !time.Now().Before(resetTime) {
		return nil
	}
	timer := time.NewTimer(time.Until(resetTime))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateRemaining)); err == nil {
		r.remaining = v
	}
	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateLimit)); err == nil {
		r.limit = v
	}
	if v, err := strconv.ParseInt(resp.Header.Get(HeaderRateReset), 10, 64); err == nil {
		r.resetTime = time.Unix(v, 0)
	}
}

// RateState is the quota GitHub last reported.
type RateState struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// State returns the last reported quota.
func (r *RateLimiter) State() RateState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RateState{Remaining: r.remaining, Limit: r.limit, ResetAt: r.resetTime}
}
