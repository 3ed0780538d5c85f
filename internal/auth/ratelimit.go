package auth

import (
	"context"
	"sync"
	"time"
)

// Fixed-window limits applied per client IP.
const (
	DefaultMaxAttempts   = 5
	DefaultAttemptWindow = 15 * time.Minute
)

// RateLimitStatus is the outcome of a limiter check.
type RateLimitStatus struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds.
func (s RateLimitStatus) RetryAfterSeconds() int {
	return ceilUnits(s.RetryAfter, time.Second)
}

// RateLimiter throttles failed authentication attempts per client IP.
// Check never consumes an attempt; only RecordFailure counts.
type RateLimiter interface {
	Check(ctx context.Context, ip string) RateLimitStatus
	RecordFailure(ctx context.Context, ip string)
	Clear(ctx context.Context, ip string)
}

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter keeps fixed-window counters in process memory.
// Counters are lost on restart and not shared between instances.
type MemoryRateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxAttempts int
	window      time.Duration
	now         Clock
}

// NewMemoryRateLimiter builds an in-memory limiter. Non-positive limits fall back to the defaults.
func NewMemoryRateLimiter(maxAttempts int, window time.Duration, now Clock) *MemoryRateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultAttemptWindow
	}
	return &MemoryRateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         orDefaultClock(now),
	}
}

// Check reports whether ip may attempt authentication. Expired entries are dropped.
func (l *MemoryRateLimiter) Check(_ context.Context, ip string) RateLimitStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[ip]
	if !ok {
		return RateLimitStatus{Allowed: true}
	}
	if now.After(entry.resetAt) {
		delete(l.entries, ip)
		return RateLimitStatus{Allowed: true}
	}
	if entry.count >= l.maxAttempts {
		return RateLimitStatus{Allowed: false, RetryAfter: entry.resetAt.Sub(now)}
	}
	return RateLimitStatus{Allowed: true}
}

// RecordFailure counts a failed attempt. The window starts at the first failure and is not extended.
func (l *MemoryRateLimiter) RecordFailure(_ context.Context, ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[ip]
	if !ok || now.After(entry.resetAt) {
		l.entries[ip] = &rateLimitEntry{count: 1, resetAt: now.Add(l.window)}
		return
	}
	entry.count++
}

// Clear forgets ip after a successful authentication.
func (l *MemoryRateLimiter) Clear(_ context.Context, ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, ip)
}

// Len returns the number of tracked IPs, including expired entries not yet collected.
func (l *MemoryRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
