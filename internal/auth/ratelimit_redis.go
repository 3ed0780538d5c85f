package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const defaultRedisPrefix = "siteadmin:auth:fail:"

// RedisOptions configures the shared rate-limit backend.
type RedisOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// RedisRateLimiter shares fixed-window counters between instances through Redis.
// Key expiry plays the role of resetAt. Redis errors fail open and are logged.
type RedisRateLimiter struct {
	client      *redis.Client
	prefix      string
	maxAttempts int
	window      time.Duration
}

// NewRedisRateLimiter connects to Redis and verifies the connection with a ping.
func NewRedisRateLimiter(ctx context.Context, opts RedisOptions, maxAttempts int, window time.Duration) (*RedisRateLimiter, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultAttemptWindow
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisRateLimiter{client: client, prefix: prefix, maxAttempts: maxAttempts, window: window}, nil
}

func (l *RedisRateLimiter) key(ip string) string {
	return l.prefix + ip
}

// Check reads the counter and its remaining TTL without modifying either.
func (l *RedisRateLimiter) Check(ctx context.Context, ip string) RateLimitStatus {
	count, err := l.client.Get(ctx, l.key(ip)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("rate limit: redis check failed, allowing attempt")
		}
		return RateLimitStatus{Allowed: true}
	}
	if count < l.maxAttempts {
		return RateLimitStatus{Allowed: true}
	}
	ttl, err := l.client.PTTL(ctx, l.key(ip)).Result()
	if err != nil {
		log.WithError(err).Warn("rate limit: redis ttl lookup failed, allowing attempt")
		return RateLimitStatus{Allowed: true}
	}
	return l.deniedFor(ctx, ip, ttl)
}

// PTTL sentinels as returned by go-redis.
const (
	ttlKeyMissing = time.Duration(-2)
	ttlNoExpiry   = time.Duration(-1)
)

// deniedFor turns the PTTL of an exhausted counter into a status.
func (l *RedisRateLimiter) deniedFor(ctx context.Context, ip string, ttl time.Duration) RateLimitStatus {
	switch {
	case ttl == ttlKeyMissing:
		// Expired between GET and PTTL.
		return RateLimitStatus{Allowed: true}
	case ttl == ttlNoExpiry:
		// A key without expiry would block forever; restart its window.
		if err := l.client.PExpire(ctx, l.key(ip), l.window).Err(); err != nil {
			log.WithError(err).Warn("rate limit: redis expire failed")
		}
		return RateLimitStatus{Allowed: false, RetryAfter: l.window}
	case ttl <= 0:
		return RateLimitStatus{Allowed: true}
	}
	return RateLimitStatus{Allowed: false, RetryAfter: ttl}
}

// RecordFailure increments the counter, starting the window on the first failure.
func (l *RedisRateLimiter) RecordFailure(ctx context.Context, ip string) {
	count, err := l.client.Incr(ctx, l.key(ip)).Result()
	if err != nil {
		log.WithError(err).Warn("rate limit: redis incr failed")
		return
	}
	if count == 1 {
		if errExpire := l.client.PExpire(ctx, l.key(ip), l.window).Err(); errExpire != nil {
			log.WithError(errExpire).Warn("rate limit: redis expire failed")
		}
	}
}

// Clear deletes the counter for ip.
func (l *RedisRateLimiter) Clear(ctx context.Context, ip string) {
	if err := l.client.Del(ctx, l.key(ip)).Err(); err != nil {
		log.WithError(err).Warn("rate limit: redis clear failed")
	}
}

// Close releases the Redis connection pool.
func (l *RedisRateLimiter) Close() error {
	return l.client.Close()
}
