package geom

import "math"

// Mat4 is a 4x4 matrix in column-major order, matching the layout used by
// GPU-facing math libraries. Element (row, col) lives at index col*4+row.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Mul returns the matrix product m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Perspective builds a perspective projection matrix from a vertical field of
// view in radians, an aspect ratio, and near/far clip distances.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// LookAt builds a view matrix for a camera at eye looking at target.
func LookAt(eye, target, up Vec3) Mat4 {
	z := eye.Sub(target).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	var m Mat4
	m[0], m[4], m[8], m[12] = x.X, x.Y, x.Z, -x.Dot(eye)
	m[1], m[5], m[9], m[13] = y.X, y.Y, y.Z, -y.Dot(eye)
	m[2], m[6], m[10], m[14] = z.X, z.Y, z.Z, -z.Dot(eye)
	m[15] = 1
	return m
}

// TransformPoint applies the matrix to the point (v, 1) and returns the
// transformed coordinates along with the resulting w component. Callers
// perform the perspective divide themselves so they can detect points at or
// behind the camera plane (w <= 0).
func (m Mat4) TransformPoint(v Vec3) (Vec3, float64) {
	out := Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	return out, w
}
