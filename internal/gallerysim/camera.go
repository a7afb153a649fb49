package gallerysim

import (
	"math"

	"github.com/okian/vitrine/internal/domain/geom"
)

// orbitCamera returns the camera position for sample i of n on a horizontal
// circle of the given radius at the given height.
func orbitCamera(i, n int, radius, height float64) geom.Vec3 {
	angle := float64(i) / float64(n) * 2 * math.Pi
	return geom.Vec3{
		X: math.Cos(angle) * radius,
		Y: height,
		Z: math.Sin(angle) * radius,
	}
}
