package gallery_test

import (
	"math"
	"testing"
	"time"

	"github.com/okian/vitrine/internal/domain/gallery"
	"github.com/okian/vitrine/internal/domain/geom"
	. "github.com/smartystreets/goconvey/convey"
)

// rotateY rotates a point around the Y axis by angle radians.
func rotateY(v geom.Vec3, angle float64) geom.Vec3 {
	sin, cos := math.Sin(angle), math.Cos(angle)
	return geom.Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

func countOccluded(frame gallery.Frame) int {
	n := 0
	for _, hidden := range frame.Occluded {
		if hidden {
			n++
		}
	}
	return n
}

func TestRing(t *testing.T) {
	Convey("Given a card ring", t, func() {
		positions := gallery.Ring(6, 6.5, 2.2)

		Convey("Then it should place every card on the circle at the fixed height", func() {
			So(positions, ShouldHaveLength, 6)
			for _, pos := range positions {
				radial := math.Sqrt(pos.X*pos.X + pos.Z*pos.Z)
				So(radial, ShouldAlmostEqual, 6.5, 1e-9)
				So(pos.Y, ShouldAlmostEqual, 2.2, 1e-9)
			}
		})

		Convey("Then cards should be evenly distributed", func() {
			for i := 1; i < len(positions); i++ {
				gap := geom.Distance(positions[i-1], positions[i])
				want := 2 * 6.5 * math.Sin(math.Pi/6)
				So(gap, ShouldAlmostEqual, want, 1e-9)
			}
		})
	})
}

func TestEngineOcclusion(t *testing.T) {
	Convey("Given an engine over the default scene", t, func() {
		positions := gallery.Ring(6, 6.5, 2.2)
		engine := gallery.New(positions, gallery.DefaultObstaclePosition)

		Convey("When the camera orbits outside the ring", func() {
			Convey("Then exactly min(K, candidates) cards are occluded", func() {
				for angle := 0.0; angle < 2*math.Pi; angle += math.Pi / 12 {
					camera := geom.Vec3{
						X: math.Cos(angle) * 12,
						Y: 7,
						Z: math.Sin(angle) * 12,
					}
					frame := engine.Update(camera)

					// From outside the ring there are always cards beyond the
					// obstacle, so the cap is what binds.
					So(countOccluded(frame), ShouldEqual, 2)
				}
			})
		})

		Convey("When the camera sits between the obstacle and the far cards", func() {
			frame := engine.Update(geom.Vec3{X: 0, Y: 7, Z: 12})

			Convey("Then the occluded cards are on the far side of the obstacle", func() {
				for i, hidden := range frame.Occluded {
					if hidden {
						// Camera is at +Z; far side is -Z.
						So(positions[i].Z, ShouldBeLessThan, 0)
					}
				}
			})
		})

		Convey("When K exceeds the candidate count", func() {
			greedy := gallery.New(positions, gallery.DefaultObstaclePosition,
				gallery.WithMaxOccluded(100))
			frame := greedy.Update(geom.Vec3{X: 0, Y: 7, Z: 12})

			Convey("Then only actual candidates are occluded", func() {
				So(countOccluded(frame), ShouldBeLessThan, len(positions))
				So(countOccluded(frame), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When K is zero", func() {
			off := gallery.New(positions, gallery.DefaultObstaclePosition,
				gallery.WithMaxOccluded(0))
			frame := off.Update(geom.Vec3{X: 0, Y: 7, Z: 12})

			Convey("Then nothing is occluded", func() {
				So(countOccluded(frame), ShouldEqual, 0)
			})
		})
	})
}

func TestEngineDegenerateCamera(t *testing.T) {
	Convey("Given an engine with a prior frame", t, func() {
		positions := gallery.Ring(6, 6.5, 2.2)
		engine := gallery.New(positions, gallery.DefaultObstaclePosition)
		prior := engine.Update(geom.Vec3{X: 0, Y: 7, Z: 12})

		Convey("When the camera sits exactly on the obstacle", func() {
			var frame gallery.Frame
			So(func() {
				frame = engine.Update(gallery.DefaultObstaclePosition)
			}, ShouldNotPanic)

			Convey("Then the previous frame is returned unchanged", func() {
				So(frame.Occluded, ShouldResemble, prior.Occluded)
				So(frame.Priority, ShouldResemble, prior.Priority)
			})
		})

		Convey("When the engine has never produced a frame", func() {
			fresh := gallery.New(positions, gallery.DefaultObstaclePosition)
			var frame gallery.Frame
			So(func() {
				frame = fresh.Update(gallery.DefaultObstaclePosition)
			}, ShouldNotPanic)

			Convey("Then no card is occluded", func() {
				So(countOccluded(frame), ShouldEqual, 0)
			})
		})
	})
}

func TestEnginePriority(t *testing.T) {
	Convey("Given an engine over the default scene", t, func() {
		positions := gallery.Ring(6, 6.5, 2.2)
		engine := gallery.New(positions, gallery.DefaultObstaclePosition)

		Convey("When computing a frame from any camera", func() {
			for angle := 0.0; angle < 2*math.Pi; angle += math.Pi / 8 {
				camera := geom.Vec3{
					X: math.Cos(angle) * 12,
					Y: 7,
					Z: math.Sin(angle) * 12,
				}
				frame := engine.Update(camera)

				Convey("Then priority never increases with distance (camera angle "+
					formatAngle(angle)+")", func() {
					type cardDist struct {
						dist     float64
						priority int
					}
					cards := make([]cardDist, len(positions))
					for i, pos := range positions {
						cards[i] = cardDist{
							dist:     geom.Distance(camera, pos),
							priority: frame.Priority[i],
						}
					}
					for i := range cards {
						for j := range cards {
							if cards[i].dist < cards[j].dist {
								So(cards[i].priority, ShouldBeGreaterThanOrEqualTo, cards[j].priority)
							}
						}
					}
				})
			}
		})

		Convey("When a card is at the camera", func() {
			engine := gallery.New([]geom.Vec3{{X: 5, Y: 7, Z: 12}}, gallery.DefaultObstaclePosition)
			frame := engine.Update(geom.Vec3{X: 5, Y: 7, Z: 12})

			Convey("Then it gets the maximum priority", func() {
				So(frame.Priority[0], ShouldEqual, 2000)
			})
		})

		Convey("When a card is beyond the reference distance", func() {
			engine := gallery.New([]geom.Vec3{{X: 1000}}, gallery.DefaultObstaclePosition)
			frame := engine.Update(geom.Vec3{X: 0, Y: 7, Z: 12})

			Convey("Then its priority clamps to the minimum", func() {
				So(frame.Priority[0], ShouldEqual, 1000)
			})
		})
	})
}

func TestEngineRotationSymmetry(t *testing.T) {
	Convey("Given a scene and the same scene rotated about the Y axis", t, func() {
		positions := gallery.Ring(6, 6.5, 2.2)
		camera := geom.Vec3{X: 3, Y: 7, Z: 12}

		for _, angle := range []float64{math.Pi / 7, math.Pi / 3, 1.2, 2.9} {
			rotated := make([]geom.Vec3, len(positions))
			for i, pos := range positions {
				rotated[i] = rotateY(pos, angle)
			}

			base := gallery.New(positions, gallery.DefaultObstaclePosition)
			turned := gallery.New(rotated, rotateY(gallery.DefaultObstaclePosition, angle))

			Convey("Then the occluded sets match (angle "+formatAngle(angle)+")", func() {
				want := base.Update(camera)
				got := turned.Update(rotateY(camera, angle))

				So(got.Occluded, ShouldResemble, want.Occluded)
			})
		}
	})
}

func TestFader(t *testing.T) {
	Convey("Given a fader over three cards", t, func() {
		fader := gallery.NewFader(3)

		Convey("Then every card starts fully visible", func() {
			So(fader.Opacities(), ShouldResemble, []float64{1, 1, 1})
		})

		Convey("When a card becomes occluded", func() {
			frame := gallery.Frame{Occluded: []bool{false, true, false}}

			Convey("Then opacity moves smoothly, not instantly", func() {
				fader.Advance(frame, 100*time.Millisecond)

				So(fader.Opacity(1), ShouldBeLessThan, 1)
				So(fader.Opacity(1), ShouldBeGreaterThan, 0.25)
				So(fader.Opacity(0), ShouldEqual, 1)
				So(fader.Opacity(2), ShouldEqual, 1)
			})

			Convey("Then the fade settles at the occluded level within the duration", func() {
				fader.Advance(frame, 300*time.Millisecond)

				So(fader.Opacity(1), ShouldAlmostEqual, 0.25, 1e-9)
			})

			Convey("Then overshoot clamps to the target", func() {
				fader.Advance(frame, 10*time.Second)

				So(fader.Opacity(1), ShouldEqual, 0.25)
			})
		})

		Convey("When an occluded card becomes visible again", func() {
			hidden := gallery.Frame{Occluded: []bool{false, true, false}}
			fader.Advance(hidden, time.Second)
			So(fader.Opacity(1), ShouldEqual, 0.25)

			visible := gallery.Frame{Occluded: []bool{false, false, false}}
			fader.Advance(visible, 150*time.Millisecond)

			Convey("Then opacity climbs back toward full", func() {
				So(fader.Opacity(1), ShouldBeGreaterThan, 0.25)
				So(fader.Opacity(1), ShouldBeLessThan, 1)
			})
		})

		Convey("When advancing with a non-positive delta", func() {
			before := fader.Opacities()
			fader.Advance(gallery.Frame{Occluded: []bool{true, true, true}}, 0)

			Convey("Then nothing changes", func() {
				So(fader.Opacities(), ShouldResemble, before)
			})
		})

		Convey("When asking for targets", func() {
			So(fader.Target(true), ShouldEqual, 0.25)
			So(fader.Target(false), ShouldEqual, 1)
		})

		Convey("When reading out of range", func() {
			So(fader.Opacity(-1), ShouldEqual, 0)
			So(fader.Opacity(99), ShouldEqual, 0)
		})
	})
}

func formatAngle(angle float64) string {
	return time.Duration(angle * float64(time.Second)).String()
}
