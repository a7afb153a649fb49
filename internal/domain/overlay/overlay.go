// Package overlay projects 3D card anchors into 2D screen space so billboarded
// HTML content stays pinned to its anchor, and gates overlay interactivity on
// the occlusion state.
package overlay

import (
	"math"

	"github.com/okian/vitrine/internal/domain/geom"
)

// Default camera lens parameters for the gallery scene.
const (
	DefaultFOVDegrees = 45.0
	defaultNear       = 0.1
	defaultFar        = 1000.0
)

// Camera describes the perspective camera used for overlay projection.
type Camera struct {
	Position geom.Vec3
	Target   geom.Vec3
	Up       geom.Vec3
	FOV      float64 // vertical field of view, radians
	Aspect   float64
	Near     float64
	Far      float64
}

// NewCamera creates a camera at position looking at target with the scene's
// default lens parameters.
func NewCamera(position, target geom.Vec3, aspect float64) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       geom.Vec3{Y: 1},
		FOV:      DefaultFOVDegrees * math.Pi / 180,
		Aspect:   aspect,
		Near:     defaultNear,
		Far:      defaultFar,
	}
}

// ViewProjection returns the combined view-projection matrix for the camera.
func (c Camera) ViewProjection() geom.Mat4 {
	proj := geom.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
	view := geom.LookAt(c.Position, c.Target, c.Up)
	return proj.Mul(view)
}

// Size is a viewport size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a projected screen coordinate. InFront reports whether the anchor
// lies in front of the camera plane; anchors behind it have no meaningful
// screen position.
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	InFront bool    `json:"in_front"`
}

// Anchor projects a world-space point onto the viewport using standard
// perspective projection: world -> clip -> NDC -> screen.
func Anchor(world geom.Vec3, cam Camera, viewport Size) Point {
	clip, w := cam.ViewProjection().TransformPoint(world)
	if w <= 0 {
		return Point{InFront: false}
	}

	ndcX := clip.X / w
	ndcY := clip.Y / w
	return Point{
		X:       (ndcX*0.5 + 0.5) * viewport.Width,
		Y:       (-ndcY*0.5 + 0.5) * viewport.Height,
		InFront: true,
	}
}

// State is the full per-card overlay state the rendering layer consumes:
// where to draw, how opaque, how to stack, and whether to accept input.
type State struct {
	Anchor      Point   `json:"anchor"`
	Opacity     float64 `json:"opacity"`
	Priority    int     `json:"priority"`
	Interactive bool    `json:"interactive"`
}

// Gate reports whether an overlay should accept pointer/touch events.
// Occluded overlays let events pass through to the scene beneath them.
func Gate(occluded bool) bool {
	return !occluded
}

// Snapshot is one frame of gallery overlay state across all cards, indexed by
// card. Anchors are present only when a viewport was supplied.
type Snapshot struct {
	Occluded    []bool    `json:"occluded"`
	Priority    []int     `json:"priority"`
	Opacity     []float64 `json:"opacity"`
	Interactive []bool    `json:"interactive"`
	Anchors     []Point   `json:"anchors,omitempty"`
}
