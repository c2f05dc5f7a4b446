package ai

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval spaces outgoing AI calls at most one per second.
const DefaultMinInterval = time.Second

// RateLimiter enforces a minimum interval between calls. It is a shared,
// synchronized resource: concurrent callers each reserve the next available
// slot under the lock, then sleep outside it, so waiting callers do not
// serialize each other beyond the interval itself. Timekeeping uses the
// monotonic clock carried by time.Time.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// NewRateLimiter creates a limiter allowing one call per interval.
// Non-positive intervals disable limiting.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Wait blocks until the caller's reserved slot arrives or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.interval <= 0 {
		return ctx.Err()
	}

	r.mu.Lock()
	now := time.Now()
	slot := r.next
	if slot.Before(now) {
		slot = now
	}
	r.next = slot.Add(r.interval)
	r.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// limitedClient throttles an inner client through a shared limiter.
type limitedClient struct {
	inner   Client
	limiter *RateLimiter
}

// WithRateLimit wraps client so every Extract call waits on limiter first.
func WithRateLimit(client Client, limiter *RateLimiter) Client {
	return &limitedClient{inner: client, limiter: limiter}
}

func (c *limitedClient) Extract(ctx context.Context, req Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.inner.Extract(ctx, req)
}

func (c *limitedClient) Name() string {
	return c.inner.Name()
}
