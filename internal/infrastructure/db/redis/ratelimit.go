package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter backed by Redis.
// Key format: ratelimit:<scope>:<client_key>
type Limiter struct {
	client *redis.Client
	scope  string
	max    int64
	window time.Duration
}

// NewLimiter creates a Limiter allowing max requests per window for each key
// within the given scope.
func NewLimiter(client *redis.Client, scope string, max int64, window time.Duration) *Limiter {
	return &Limiter{client: client, scope: scope, max: max, window: window}
}

// Allow increments the counter for key and reports whether the request is
// within budget. INCR and EXPIRE ride one pipeline, so a counter can never
// be left behind without a TTL. ExpireNX only arms the TTL when none is set,
// anchoring the window to the first request rather than sliding it.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("ratelimit:%s:%s", l.scope, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}

	return incr.Val() <= l.max, nil
}

// Window returns the configured window length, for Retry-After hints.
func (l *Limiter) Window() time.Duration {
	return l.window
}
