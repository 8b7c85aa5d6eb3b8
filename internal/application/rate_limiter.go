package application

import (
	"fmt"
	"sync"
	"time"
)

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// RateLimiter is a fixed-window per-identifier limiter, used to keep the
// public contact form from being spammed.
type RateLimiter struct {
	limits map[string]*rateLimitEntry
	mu     sync.Mutex
	window time.Duration
	limit  int
}

func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		limits: make(map[string]*rateLimitEntry),
		window: window,
		limit:  limit,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow reports whether another request from identifier fits in the window.
func (rl *RateLimiter) Allow(identifier string) (bool, error) {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.limits[identifier]

	if !exists || now.After(entry.resetTime) {
		rl.limits[identifier] = &rateLimitEntry{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true, nil
	}

	if entry.count >= rl.limit {
		timeUntilReset := entry.resetTime.Sub(now)
		return false, fmt.Errorf("too many requests, try again in %v", timeUntilReset.Round(time.Second))
	}

	entry.count++
	return true, nil
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for id, entry := range rl.limits {
		if now.After(entry.resetTime) {
			delete(rl.limits, id)
		}
	}
}
