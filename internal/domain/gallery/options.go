// Package gallery computes per-frame visibility for the 3D project gallery.
package gallery

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMargin sets the depth margin that keeps cards near the obstacle's depth
// from flickering between occluded and visible.
func WithMargin(margin float64) Option {
	return func(e *Engine) {
		if margin >= 0 {
			e.margin = margin
		}
	}
}

// WithMaxOccluded sets how many candidates are marked occluded per frame.
func WithMaxOccluded(count int) Option {
	return func(e *Engine) {
		if count >= 0 {
			e.maxOccluded = count
		}
	}
}

// WithMaxDistance sets the reference distance mapped to the minimum priority.
func WithMaxDistance(distance float64) Option {
	return func(e *Engine) {
		if distance > 0 {
			e.maxDistance = distance
		}
	}
}

// WithPriorityRange sets the bounds of the render priority scale.
func WithPriorityRange(minPriority, maxPriority int) Option {
	return func(e *Engine) {
		if maxPriority > minPriority {
			e.priorityMin = minPriority
			e.priorityMax = maxPriority
		}
	}
}
