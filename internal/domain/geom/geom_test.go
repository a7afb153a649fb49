package geom

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestVec3(t *testing.T) {
	Convey("Given 3D vectors", t, func() {
		a := Vec3{X: 1, Y: 2, Z: 3}
		b := Vec3{X: 4, Y: 5, Z: 6}

		Convey("When performing arithmetic", func() {
			So(a.Add(b), ShouldResemble, Vec3{X: 5, Y: 7, Z: 9})
			So(b.Sub(a), ShouldResemble, Vec3{X: 3, Y: 3, Z: 3})
			So(a.Scale(2), ShouldResemble, Vec3{X: 2, Y: 4, Z: 6})
			So(a.Dot(b), ShouldEqual, 32)
		})

		Convey("When computing the cross product", func() {
			x := Vec3{X: 1}
			y := Vec3{Y: 1}

			So(x.Cross(y), ShouldResemble, Vec3{Z: 1})
			So(y.Cross(x), ShouldResemble, Vec3{Z: -1})
		})

		Convey("When normalizing", func() {
			v := Vec3{X: 3, Y: 4}.Normalize()

			So(v.Length(), ShouldAlmostEqual, 1, 1e-12)
			So(v.X, ShouldAlmostEqual, 0.6, 1e-12)
			So(v.Y, ShouldAlmostEqual, 0.8, 1e-12)

			Convey("Then the zero vector should normalize to itself", func() {
				So(Vec3{}.Normalize(), ShouldResemble, Vec3{})
			})
		})

		Convey("When measuring distance", func() {
			So(Distance(Vec3{}, Vec3{X: 3, Y: 4}), ShouldAlmostEqual, 5, 1e-12)
		})

		Convey("When interpolating", func() {
			mid := Lerp(a, b, 0.5)

			So(mid, ShouldResemble, Vec3{X: 2.5, Y: 3.5, Z: 4.5})
			So(Lerp(a, b, 0), ShouldResemble, a)
			So(Lerp(a, b, 1), ShouldResemble, b)
		})
	})
}

func TestMat4(t *testing.T) {
	Convey("Given 4x4 matrices", t, func() {
		Convey("When multiplying by identity", func() {
			m := Perspective(math.Pi/4, 16.0/9.0, 0.1, 100)

			So(m.Mul(Identity()), ShouldResemble, m)
			So(Identity().Mul(m), ShouldResemble, m)
		})

		Convey("When transforming with a look-at view matrix", func() {
			// Camera on +Z axis looking at the origin
			view := LookAt(Vec3{Z: 10}, Vec3{}, Vec3{Y: 1})

			Convey("Then the target should land on the -Z view axis", func() {
				p, w := view.TransformPoint(Vec3{})
				So(w, ShouldAlmostEqual, 1, 1e-12)
				So(p.X, ShouldAlmostEqual, 0, 1e-12)
				So(p.Y, ShouldAlmostEqual, 0, 1e-12)
				So(p.Z, ShouldAlmostEqual, -10, 1e-12)
			})

			Convey("Then the eye should map to the view-space origin", func() {
				p, _ := view.TransformPoint(Vec3{Z: 10})
				So(p.X, ShouldAlmostEqual, 0, 1e-12)
				So(p.Y, ShouldAlmostEqual, 0, 1e-12)
				So(p.Z, ShouldAlmostEqual, 0, 1e-12)
			})
		})

		Convey("When projecting through a perspective matrix", func() {
			proj := Perspective(math.Pi/2, 1, 1, 100)
			view := LookAt(Vec3{Z: 10}, Vec3{}, Vec3{Y: 1})
			vp := proj.Mul(view)

			Convey("Then a point in front of the camera should have positive w", func() {
				_, w := vp.TransformPoint(Vec3{})
				So(w, ShouldBeGreaterThan, 0)
			})

			Convey("Then a centered point should project to NDC center", func() {
				clip, w := vp.TransformPoint(Vec3{})
				So(clip.X/w, ShouldAlmostEqual, 0, 1e-12)
				So(clip.Y/w, ShouldAlmostEqual, 0, 1e-12)
			})

			Convey("Then a point behind the camera should have negative w", func() {
				_, w := vp.TransformPoint(Vec3{Z: 20})
				So(w, ShouldBeLessThan, 0)
			})
		})
	})
}
