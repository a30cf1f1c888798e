package http

import (
	"math"
	"sync"
	"time"
)

const unknownClientKey = "unknown"

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter implements a fixed-window counter keyed by client identifier.
// Single-process only: the map lives in memory and is never shared across
// instances.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter constructs a limiter allowing limit requests per window.
// A background sweep removes expired entries every two windows.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		entries: make(map[string]*rateLimitEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}

	if window > 0 {
		ticker := time.NewTicker(2 * window)
		go func() {
			for range ticker.C {
				rl.sweep()
			}
		}()
	}

	return rl
}

// Allow records a request for the key and reports whether it may proceed.
// When rejected, retryAfter carries the time left until the window resets;
// rejected requests do not consume from the counter.
func (rl *RateLimiter) Allow(key string) (allowed bool, retryAfter time.Duration) {
	if key == "" {
		key = unknownClientKey
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		rl.entries[key] = &rateLimitEntry{count: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}

	if entry.count >= rl.limit {
		return false, entry.resetAt.Sub(now)
	}

	entry.count++
	return true, 0
}

func (rl *RateLimiter) sweep() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, entry := range rl.entries {
		if !now.Before(entry.resetAt) {
			delete(rl.entries, key)
		}
	}
}

// retryAfterSeconds renders a Retry-After header value, rounding up so a
// client that waits the stated time always lands in a fresh window.
func retryAfterSeconds(remaining time.Duration) int {
	seconds := int(math.Ceil(remaining.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
