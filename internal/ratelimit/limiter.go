// Package ratelimit enforces a fixed-window request cap per client. The
// Redis-backed limiter is atomic across processes; the in-memory fallback
// covers single-instance deployments without Redis.
package ratelimit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter answers whether one more request from a client fits in the
// current window.
type Limiter interface {
	// Allow records a request for the client and reports whether it is
	// within the limit. retryAfter is how long the client should wait when
	// denied.
	Allow(ctx context.Context, client string) (allowed bool, retryAfter time.Duration, err error)
}

// Lua script for atomic check-and-increment. Avoids the race in the
// GET → check → INCR pattern.
const windowLuaScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local current = tonumber(redis.call("GET", key) or "0")

if current + 1 > limit then
    local remaining = redis.call("TTL", key)
    return {0, remaining}
end

local newVal = redis.call("INCR", key)
if newVal == 1 then
    redis.call("EXPIRE", key, ttl)
end

return {1, 0}
`

// RedisLimiter enforces the window with a pre-compiled Lua script.
type RedisLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	script *redis.Script
}

// NewRedisLimiter creates a limiter allowing limit requests per window per
// client.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:  client,
		limit:  limit,
		window: window,
		script: redis.NewScript(windowLuaScript),
	}
}

// NewRedisLimiterFromURL creates a limiter by connecting to Redis.
func NewRedisLimiterFromURL(redisURL string, limit int, window time.Duration) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Printf("[RateLimit] Connected to Redis")

	return NewRedisLimiter(client, limit, window), nil
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, client string) (bool, time.Duration, error) {
	key := fmt.Sprintf("ratelimit:client:%s", client)
	ttl := int(l.window / time.Second)

	result, err := l.script.Run(ctx, l.redis, []string{key}, l.limit, ttl).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit check failed: %w", err)
	}

	if result[0].(int64) == 1 {
		return true, 0, nil
	}

	retryAfter := l.window
	if remaining := result[1].(int64); remaining > 0 {
		retryAfter = time.Duration(remaining) * time.Second
	}
	return false, retryAfter, nil
}

// Close closes the Redis connection.
func (l *RedisLimiter) Close() error {
	return l.redis.Close()
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the process-local fallback used when Redis is not
// configured. Not shared across instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*clientWindow
	now     func() time.Time
}

// NewMemoryLimiter creates an in-process limiter allowing limit requests
// per window per client.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientWindow),
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, client string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// Expired windows are dropped opportunistically so the map does not
	// grow with one entry per stale client forever.
	for id, w := range l.clients {
		if now.After(w.resetAt) {
			delete(l.clients, id)
		}
	}

	w, ok := l.clients[client]
	if !ok {
		l.clients[client] = &clientWindow{count: 1, resetAt: now.Add(l.window)}
		return true, 0, nil
	}

	if w.count >= l.limit {
		return false, w.resetAt.Sub(now), nil
	}
	w.count++
	return true, 0, nil
}
