package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/vat-directory/internal/infra/config"
	"github.com/yanqian/vat-directory/internal/infra/ratelimit"
)

// provideLimiter returns nil when rate limiting is off. A shared Valkey limiter
// is used when configured and reachable, otherwise buckets live in memory.
func provideLimiter(cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, func()) {
	rl := cfg.HTTP.RateLimit
	if !rl.Enabled {
		return nil, func() {}
	}
	opts := ratelimit.Options{RequestsPerMinute: rl.RequestsPerMinute, Burst: rl.Burst}
	if rl.Valkey.Enabled {
		opt, err := buildValkeyOptions(rl.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory limiter", "error", err)
			return ratelimit.NewMemoryLimiter(opts), func() {}
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory limiter", "error", err)
			return ratelimit.NewMemoryLimiter(opts), func() {}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory limiter", "error", err)
			client.Close()
		} else {
			logger.Info("valkey rate limiter enabled", "addr", rl.Valkey.Addr)
			return ratelimit.NewValkeyLimiter(client, rl.Valkey.Prefix, opts), client.Close
		}
	}
	return ratelimit.NewMemoryLimiter(opts), func() {}
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
