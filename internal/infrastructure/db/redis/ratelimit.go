package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimiterPrefix  = "bistro:chat:ratelimit"
	defaultLimiterTimeout = 2 * time.Second
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// MessageLimiter caps how many chat messages one identity may send in a fixed
// window. Counters live in Redis so the cap holds across instances.
// Key format: <prefix>:<identity>:<window slot>
type MessageLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewMessageLimiter creates a limiter allowing limit messages per window.
func NewMessageLimiter(client *redis.Client, prefix string, limit int, window time.Duration) (*MessageLimiter, error) {
	if client == nil {
		return nil, errors.New("message limiter requires a redis client")
	}
	if limit <= 0 || window <= 0 {
		return nil, errors.New("message limiter requires positive limit and window")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultLimiterPrefix
	}
	return &MessageLimiter{client: client, prefix: prefix, limit: limit, window: window, now: time.Now}, nil
}

// Allow counts one message for key and reports whether it is within quota.
// Redis failures are returned to the caller, which decides how to degrade.
func (l *MessageLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}

	windowMs := l.window.Milliseconds()
	if windowMs <= 0 {
		return true, nil
	}
	slot := l.now().UTC().UnixMilli() / windowMs

	ctx, cancel := context.WithTimeout(ctx, defaultLimiterTimeout)
	defer cancel()

	n, err := fixedWindowScript.Run(ctx, l.client, []string{l.key(key, slot)}, windowMs).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return n <= int64(l.limit), nil
}

func (l *MessageLimiter) key(identity string, slot int64) string {
	return fmt.Sprintf("%s:%s:%d", l.prefix, identity, slot)
}
