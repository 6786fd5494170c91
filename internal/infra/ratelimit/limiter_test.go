package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_BurstThenRefill(t *testing.T) {
	t.Parallel()
	l := NewMemoryLimiter(Options{RequestsPerMinute: 60, Burst: 2})
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	require.False(t, ok)

	other, _ := l.Allow(ctx, "10.0.0.2")
	require.True(t, other, "buckets are per client")

	clock = clock.Add(time.Second)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	require.True(t, ok, "one token refills per second at 60 rpm")
}

func TestMemoryLimiter_DropsIdleVisitors(t *testing.T) {
	t.Parallel()
	l := NewMemoryLimiter(Options{RequestsPerMinute: 60, Burst: 1})
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	_, _ = l.Allow(context.Background(), "a")
	_, _ = l.Allow(context.Background(), "b")
	require.Equal(t, 2, l.size())

	clock = clock.Add(10 * time.Minute)
	_, _ = l.Allow(context.Background(), "c")
	require.Equal(t, 1, l.size())
}

func TestValkeyLimiter_WindowKey(t *testing.T) {
	t.Parallel()
	l := NewValkeyLimiter(nil, "", Options{RequestsPerMinute: 10, Burst: 5})
	require.Equal(t, int64(15), l.limit)

	at := time.Unix(120, 0)
	require.Equal(t, "ratelimit:1.2.3.4:2", l.windowKey("1.2.3.4", at))
	require.Equal(t, "ratelimit:1.2.3.4:2", l.windowKey("1.2.3.4", at.Add(59*time.Second)))
	require.Equal(t, "ratelimit:1.2.3.4:3", l.windowKey("1.2.3.4", at.Add(60*time.Second)))
}
