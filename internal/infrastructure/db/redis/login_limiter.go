package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LimiterConfig bounds failed logins per client key.
type LimiterConfig struct {
	MaxAttempts  int
	Window       time.Duration
	LockDuration time.Duration
}

// LoginLimiter counts failed logins in Redis and locks a key once it runs out
// of attempts.
// Keys: login:fail:<key> (counter, expires after Window) and login:lock:<key>.
type LoginLimiter struct {
	client *redis.Client
	cfg    LimiterConfig
}

func NewLoginLimiter(client *redis.Client, cfg LimiterConfig) *LoginLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.LockDuration <= 0 {
		cfg.LockDuration = 10 * time.Minute
	}
	return &LoginLimiter{client: client, cfg: cfg}
}

func (l *LoginLimiter) Locked(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := l.client.PTTL(ctx, lockKey(key)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("login lock check: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (l *LoginLimiter) Fail(ctx context.Context, key string) (int, error) {
	count, err := l.client.Incr(ctx, failKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("login fail count: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, failKey(key), l.cfg.Window).Err(); err != nil {
			return 0, fmt.Errorf("login fail window: %w", err)
		}
	}

	left := l.cfg.MaxAttempts - int(count)
	if left > 0 {
		return left, nil
	}

	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, lockKey(key), "1", l.cfg.LockDuration)
		pipe.Del(ctx, failKey(key))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("login lock: %w", err)
	}
	return 0, nil
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, failKey(key)).Err()
}

func failKey(key string) string { return fmt.Sprintf("login:fail:%s", key) }
func lockKey(key string) string { return fmt.Sprintf("login:lock:%s", key) }
