package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyLimiter counts requests per client in fixed one-minute windows shared
// by every replica pointing at the same Valkey instance.
type ValkeyLimiter struct {
	client valkey.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewValkeyLimiter constructs a shared limiter. Burst is added on top of the
// per-minute budget so short spikes behave like the in-memory bucket.
func NewValkeyLimiter(client valkey.Client, prefix string, opts Options) *ValkeyLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &ValkeyLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(opts.RequestsPerMinute + opts.Burst),
		window: time.Minute,
		now:    time.Now,
	}
}

func (l *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.windowKey(key, l.now())
	count, err := l.client.Do(ctx, l.client.B().Incr().Key(windowKey).Build()).ToInt64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", windowKey, err)
	}
	if count == 1 {
		ttl := int64(l.window / time.Second)
		if err := l.client.Do(ctx, l.client.B().Expire().Key(windowKey).Seconds(ttl).Build()).Error(); err != nil {
			return false, fmt.Errorf("expire %s: %w", windowKey, err)
		}
	}
	return count <= l.limit, nil
}

func (l *ValkeyLimiter) windowKey(key string, now time.Time) string {
	bucket := now.Unix() / int64(l.window/time.Second)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)
}
