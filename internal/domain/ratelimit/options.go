// Package ratelimit implements a sliding-window submission limiter.
package ratelimit

import "time"

// Option applies a configuration option to the in-memory limiter.
type Option func(*inMemoryLimiter)

// WithWindow sets the window duration.
func WithWindow(d time.Duration) Option {
	return func(l *inMemoryLimiter) {
		if d > 0 {
			l.windowSize = d
		}
	}
}

// WithMaxPerWindow sets the submission ceiling per window.
func WithMaxPerWindow(max int) Option {
	return func(l *inMemoryLimiter) {
		if max > 0 {
			l.maxPerWindow = max
		}
	}
}

// WithSweepInterval sets how often expired windows are dropped.
func WithSweepInterval(d time.Duration) Option {
	return func(l *inMemoryLimiter) {
		if d > 0 {
			l.sweepInterval = d
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *inMemoryLimiter) {
		if now != nil {
			l.now = now
		}
	}
}
