// Package gallery computes per-frame visibility for the 3D project gallery:
// which cards are hidden behind the obstacle from the camera's viewpoint, and
// how card overlays stack relative to each other.
package gallery

import (
	"math"
	"sort"

	"github.com/okian/vitrine/internal/domain/geom"
)

// Default engine configuration constants.
const (
	// defaultMargin keeps cards at nearly the obstacle's depth from
	// flickering in and out of the occluded set.
	defaultMargin      = 0.2
	defaultMaxOccluded = 2
	// defaultMaxDistance is the reference distance mapped to the minimum
	// render priority.
	defaultMaxDistance = 15.0
	defaultPriorityMin = 1000
	defaultPriorityMax = 2000

	// degenerateEpsilon bounds the sight-line length below which the camera
	// is treated as sitting on the obstacle.
	degenerateEpsilon = 1e-9
)

// Scene dimensions: six project cards on a ring around the centerpiece
// model.
const (
	DefaultCardCount  = 6
	DefaultRingRadius = 6.5
	DefaultCardHeight = 2.2
)

// DefaultObstaclePosition is where the laptop model sits in the scene.
var DefaultObstaclePosition = geom.Vec3{X: 0, Y: 1.7, Z: -0.7}

// Card is one project tile at a fixed position in the scene.
type Card struct {
	Index    int
	Position geom.Vec3
}

// Frame is the per-tick output of the engine: one occlusion flag and one
// render priority per card index.
type Frame struct {
	Occluded []bool `json:"occluded"`
	Priority []int  `json:"priority"`
}

// clone returns an independent copy of the frame.
func (f Frame) clone() Frame {
	out := Frame{
		Occluded: make([]bool, len(f.Occluded)),
		Priority: make([]int, len(f.Priority)),
	}
	copy(out.Occluded, f.Occluded)
	copy(out.Priority, f.Priority)
	return out
}

// Ring evenly distributes count card positions around a circle of the given
// radius at a fixed height.
func Ring(count int, radius, height float64) []geom.Vec3 {
	positions := make([]geom.Vec3, count)
	for i := range positions {
		angle := float64(i) / float64(count) * 2 * math.Pi
		positions[i] = geom.Vec3{
			X: math.Cos(angle) * radius,
			Y: height,
			Z: math.Sin(angle) * radius,
		}
	}
	return positions
}

// Engine computes card occlusion and render priority from the camera position.
// Card and obstacle positions are fixed at construction; only the previous
// frame is retained, for the degenerate-camera case.
type Engine struct {
	cards    []Card
	obstacle geom.Vec3

	margin      float64
	maxOccluded int
	maxDistance float64
	priorityMin int
	priorityMax int

	last Frame
}

// New creates an engine for the given card positions and obstacle.
func New(positions []geom.Vec3, obstacle geom.Vec3, opts ...Option) *Engine {
	e := &Engine{
		cards:       make([]Card, len(positions)),
		obstacle:    obstacle,
		margin:      defaultMargin,
		maxOccluded: defaultMaxOccluded,
		maxDistance: defaultMaxDistance,
		priorityMin: defaultPriorityMin,
		priorityMax: defaultPriorityMax,
	}
	for i, pos := range positions {
		e.cards[i] = Card{Index: i, Position: pos}
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	e.last = Frame{
		Occluded: make([]bool, len(positions)),
		Priority: make([]int, len(positions)),
	}
	for i := range e.last.Priority {
		e.last.Priority[i] = e.priorityMax
	}

	return e
}

// Cards returns the fixed card set.
func (e *Engine) Cards() []Card {
	out := make([]Card, len(e.cards))
	copy(out, e.cards)
	return out
}

// candidate is a card far enough behind the obstacle to be hidden by it.
type candidate struct {
	index     int
	alignment float64
}

// Update recomputes occlusion flags and render priorities for the current
// camera position. A camera sitting on the obstacle produces a zero-length
// sight line; that frame is skipped and the previous result returned
// unchanged rather than dividing by zero.
func (e *Engine) Update(camera geom.Vec3) Frame {
	sight := e.obstacle.Sub(camera)
	if sight.Length() < degenerateEpsilon {
		return e.last.clone()
	}

	sightDir := sight.Normalize()
	obstacleDepth := sight.Dot(sightDir)

	frame := Frame{
		Occluded: make([]bool, len(e.cards)),
		Priority: make([]int, len(e.cards)),
	}

	candidates := make([]candidate, 0, len(e.cards))
	for _, card := range e.cards {
		toCard := card.Position.Sub(camera)

		// Only cards farther along the sight line than the obstacle can be
		// hidden behind it.
		if toCard.Dot(sightDir) > obstacleDepth+e.margin {
			candidates = append(candidates, candidate{
				index:     card.Index,
				alignment: sightDir.Dot(toCard.Normalize()),
			})
		}

		frame.Priority[card.Index] = e.priorityFor(geom.Distance(camera, card.Position))
	}

	// Most directly behind the obstacle first. The sort must be stable so
	// exact alignment ties keep insertion order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].alignment > candidates[j].alignment
	})

	for i := 0; i < len(candidates) && i < e.maxOccluded; i++ {
		frame.Occluded[candidates[i].index] = true
	}

	e.last = frame.clone()
	return frame
}

// priorityFor maps a camera distance onto the priority range: distance zero
// gives the maximum, the reference maximum distance gives the minimum, and
// values outside the range clamp.
func (e *Engine) priorityFor(distance float64) int {
	span := float64(e.priorityMax - e.priorityMin)
	p := int(math.Round(float64(e.priorityMax) - distance/e.maxDistance*span))
	if p < e.priorityMin {
		return e.priorityMin
	}
	if p > e.priorityMax {
		return e.priorityMax
	}
	return p
}
