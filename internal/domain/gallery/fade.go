package gallery

import "time"

// Fade configuration constants: a sub-second fade between full and dimmed
// opacity.
const (
	defaultFadeDuration    = 300 * time.Millisecond
	defaultVisibleOpacity  = 1.0
	defaultOccludedOpacity = 0.25
)

// Fader interpolates per-card overlay opacity toward the target implied by
// the occlusion flags, so flag flips read as a bounded-duration fade instead
// of an instant toggle.
type Fader struct {
	opacity  []float64
	visible  float64
	occluded float64
	duration time.Duration
}

// FaderOption applies a configuration option to the Fader.
type FaderOption func(*Fader)

// WithFadeDuration sets how long a full fade between the two opacity levels takes.
func WithFadeDuration(d time.Duration) FaderOption {
	return func(f *Fader) {
		if d > 0 {
			f.duration = d
		}
	}
}

// WithOpacityLevels sets the visible and occluded opacity targets.
func WithOpacityLevels(visible, occluded float64) FaderOption {
	return func(f *Fader) {
		if visible > occluded && occluded >= 0 {
			f.visible = visible
			f.occluded = occluded
		}
	}
}

// NewFader creates a fader for count cards, all starting fully visible.
func NewFader(count int, opts ...FaderOption) *Fader {
	f := &Fader{
		opacity:  make([]float64, count),
		visible:  defaultVisibleOpacity,
		occluded: defaultOccludedOpacity,
		duration: defaultFadeDuration,
	}

	// Apply all options
	for _, opt := range opts {
		opt(f)
	}

	for i := range f.opacity {
		f.opacity[i] = f.visible
	}
	return f
}

// Advance moves every card's opacity toward the target implied by frame,
// covering the full visible-to-occluded span in the configured duration.
// Card counts must match the fader; extra frame entries are ignored.
func (f *Fader) Advance(frame Frame, dt time.Duration) {
	if dt <= 0 {
		return
	}

	step := (f.visible - f.occluded) * float64(dt) / float64(f.duration)
	for i := range f.opacity {
		if i >= len(frame.Occluded) {
			break
		}
		target := f.visible
		if frame.Occluded[i] {
			target = f.occluded
		}

		switch {
		case f.opacity[i] < target:
			f.opacity[i] += step
			if f.opacity[i] > target {
				f.opacity[i] = target
			}
		case f.opacity[i] > target:
			f.opacity[i] -= step
			if f.opacity[i] < target {
				f.opacity[i] = target
			}
		}
	}
}

// Opacity returns the current opacity for a card index.
func (f *Fader) Opacity(index int) float64 {
	if index < 0 || index >= len(f.opacity) {
		return 0
	}
	return f.opacity[index]
}

// Opacities returns a copy of all current card opacities.
func (f *Fader) Opacities() []float64 {
	out := make([]float64, len(f.opacity))
	copy(out, f.opacity)
	return out
}

// Target returns the opacity a card settles at under the given flag.
func (f *Fader) Target(occluded bool) float64 {
	if occluded {
		return f.occluded
	}
	return f.visible
}
