// Package ratelimit implements a sliding-window submission limiter keyed by
// client identity.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Default limiter configuration constants.
const (
	defaultWindow        = 15 * time.Minute
	defaultMaxPerWindow  = 5
	defaultSweepInterval = time.Minute
)

// Limiter decides whether a submission from a client is allowed.
type Limiter interface {
	// Allow atomically counts a submission for key and reports whether it is
	// within the window's ceiling. The check is increment-then-compare under
	// a single lock: the first submission past the ceiling is rejected even
	// when requests race on the same key.
	Allow(ctx context.Context, key string) bool

	// Size returns the number of tracked windows.
	Size() int
}

// window tracks one client's submissions within the current interval.
// A window starts at the client's first submission and resets once it elapses.
type window struct {
	start time.Time
	count int
}

// inMemoryLimiter implements Limiter with a mutex-guarded keyed map.
type inMemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window

	windowSize    time.Duration
	maxPerWindow  int
	sweepInterval time.Duration
	now           func() time.Time

	lastSweep time.Time
}

// NewInMemoryLimiter creates a limiter with configuration options.
func NewInMemoryLimiter(opts ...Option) Limiter {
	l := &inMemoryLimiter{
		windows:       make(map[string]*window),
		windowSize:    defaultWindow,
		maxPerWindow:  defaultMaxPerWindow,
		sweepInterval: defaultSweepInterval,
		now:           time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(l)
	}

	l.lastSweep = l.now()
	return l
}

// Allow counts a submission for key and reports whether it stays within the
// ceiling.
func (l *inMemoryLimiter) Allow(ctx context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.maybeSweep(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.windowSize {
		// First submission from this key, or the previous window elapsed.
		l.windows[key] = &window{start: now, count: 1}
		return l.maxPerWindow >= 1
	}

	w.count++
	return w.count <= l.maxPerWindow
}

// Size returns the number of tracked windows, expired entries included until
// the next sweep.
func (l *inMemoryLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// maybeSweep drops expired windows. Must be called with l.mu held.
func (l *inMemoryLimiter) maybeSweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.sweepInterval {
		return
	}
	l.lastSweep = now
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.windowSize {
			delete(l.windows, key)
		}
	}
}
