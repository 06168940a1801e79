package embedding

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited throttles calls to a remote Embedder. Each Embed call consumes
// one token regardless of batch size, matching per-request provider quotas.
type RateLimited struct {
	next    Embedder
	limiter *rate.Limiter
}

// NewRateLimited allows requestsPerMinute calls with a burst of one.
// A non-positive rate disables limiting.
func NewRateLimited(next Embedder, requestsPerMinute int) *RateLimited {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, 1)}
}

func (r *RateLimited) Name() string {
	return r.next.Name()
}

func (r *RateLimited) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limit: %w", err)
	}
	return r.next.Embed(ctx, texts)
}

// Unwrap returns the decorated Embedder.
func (r *RateLimited) Unwrap() Embedder {
	return r.next
}
