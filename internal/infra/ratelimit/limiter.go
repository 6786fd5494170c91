package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether a client identified by key may issue another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Options configure the per-client budget.
type Options struct {
	RequestsPerMinute int
	Burst             int
}

// MemoryLimiter keeps one token bucket per client in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter builds an in-process limiter. Idle buckets are dropped after five minutes.
func NewMemoryLimiter(opts Options) *MemoryLimiter {
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(opts.RequestsPerMinute) / 60),
		burst:    burst,
		ttl:      5 * time.Minute,
		now:      time.Now,
	}
}

// Allow never returns an error; the signature matches the shared limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.cleanupLocked(now)
	return v.limiter.AllowN(now, 1), nil
}

func (l *MemoryLimiter) cleanupLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
