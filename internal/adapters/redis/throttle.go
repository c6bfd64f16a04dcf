package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per key (email plus source IP)
// in Redis. The counter key expires after the configured window, so a quiet
// caller is forgiven automatically.
type LoginThrottle struct {
	client      redis.UniversalClient
	prefix      string
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a Redis-backed login throttle.
func NewLoginThrottle(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &LoginThrottle{
		client:      client,
		prefix:      "portal:login_attempts:",
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow reports whether another attempt is permitted for the key.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	count, err := t.client.Get(ctx, t.prefix+key).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("throttle get: %w", err)
	}
	return count < t.maxAttempts, nil
}

// RecordFailure counts a failed attempt against the key. The window TTL is
// refreshed on every failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, t.prefix+key)
	pipe.Expire(ctx, t.prefix+key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, t.prefix+key).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}
