package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyPrefix = "notevault:login:"

	redisTimeout = 250 * time.Millisecond
)

// RedisLimiter shares counters between server instances through Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter connects to addr and checks the connection.
func NewRedisLimiter(ctx context.Context, addr, password string, db, limit int, window time.Duration) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisLimiterWithClient(client, limit, window), nil
}

// NewRedisLimiterWithClient uses an existing client. Close closes it.
func NewRedisLimiterWithClient(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, limit: limit, window: window, prefix: KeyPrefix}
}

// Allow increments the counter for key. A counter without a TTL gets one,
// which starts its window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	redisKey := l.prefix + key
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.TTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("redis incr: %w", err)
	}

	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, fmt.Errorf("redis expire: %w", err)
		}
	}

	return incr.Val() <= int64(l.limit), nil
}

// Ping checks that Redis is reachable.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
