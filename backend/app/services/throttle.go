package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed log-in attempts per username.
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

type noopThrottle struct{}

func (noopThrottle) Blocked(context.Context, string) (bool, error) { return false, nil }
func (noopThrottle) Fail(context.Context, string) error            { return nil }
func (noopThrottle) Reset(context.Context, string) error           { return nil }

// NoThrottle never blocks.
var NoThrottle LoginThrottle = noopThrottle{}

// RedisThrottle blocks a username after MaxFailures failed attempts within
// Window. The window starts at the first failure.
type RedisThrottle struct {
	Client      *redis.Client
	MaxFailures int64
	Window      time.Duration
}

func NewRedisThrottle(client *redis.Client, maxFailures int, window time.Duration) *RedisThrottle {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RedisThrottle{Client: client, MaxFailures: int64(maxFailures), Window: window}
}

func throttleKey(username string) string {
	return "inkpost:login:fail:" + strings.ToLower(username)
}

func (t *RedisThrottle) Blocked(ctx context.Context, username string) (bool, error) {
	n, err := t.Client.Get(ctx, throttleKey(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login failures: %w", err)
	}
	return n >= t.MaxFailures, nil
}

func (t *RedisThrottle) Fail(ctx context.Context, username string) error {
	key := throttleKey(username)
	n, err := t.Client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if n == 1 {
		if err := t.Client.Expire(ctx, key, t.Window).Err(); err != nil {
			return fmt.Errorf("expire login failures: %w", err)
		}
	}
	return nil
}

func (t *RedisThrottle) Reset(ctx context.Context, username string) error {
	if err := t.Client.Del(ctx, throttleKey(username)).Err(); err != nil {
		return fmt.Errorf("reset login failures: %w", err)
	}
	return nil
}
