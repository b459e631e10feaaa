package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/config"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 3 * time.Second

// NewRedisClient returns a client for cfg.RedisURL once it answers a ping.
// The caller treats a failure as "run without cache".
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = redisPingTimeout
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", opt.Addr, err)
	}

	return client, nil
}
