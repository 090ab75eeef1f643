package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider wraps a Provider with a per-minute token bucket.
type RateLimitedProvider struct {
	provider Provider
	rpm      int

	mu       sync.Mutex
	tokens   int
	lastFill time.Time
}

// NewRateLimitedProvider allows at most rpm requests per minute through
// to provider. A non-positive rpm disables limiting.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	if rpm <= 0 {
		return provider
	}
	return &RateLimitedProvider{
		provider: provider,
		rpm:      rpm,
		tokens:   rpm,
		lastFill: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	for !r.take() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return r.provider.Complete(ctx, req)
}

// take refills the bucket for the elapsed time and consumes one token.
func (r *RateLimitedProvider) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if refill := int(now.Sub(r.lastFill).Seconds() * float64(r.rpm) / 60); refill > 0 {
		r.tokens = min(r.rpm, r.tokens+refill)
		r.lastFill = now
	}
	if r.tokens == 0 {
		return false
	}
	r.tokens--
	return true
}
