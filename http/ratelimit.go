package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
	"scrapetask"
)

// HostLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter with a burst of 1, so requests to
// different hosts proceed independently while requests within one host
// are spaced out.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a new HostLimiter with the specified requests per
// second limit.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure RateLimitedFetcher implements scrapetask.Fetcher at compile time.
var _ scrapetask.Fetcher = (*RateLimitedFetcher)(nil)

// RateLimitedFetcher wraps a Fetcher with per-host rate limiting.
type RateLimitedFetcher struct {
	next    scrapetask.Fetcher
	limiter *HostLimiter
}

// NewRateLimitedFetcher creates a RateLimitedFetcher around next.
func NewRateLimitedFetcher(next scrapetask.Fetcher, limiter *HostLimiter) *RateLimitedFetcher {
	return &RateLimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the target host's rate limit, then delegates to the
// wrapped fetcher.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", scrapetask.Errorf(scrapetask.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return "", scrapetask.Errorf(scrapetask.EUNAVAILABLE, "rate limit wait for %s: %v", u.Host, err)
	}
	return f.next.Fetch(ctx, rawURL)
}
