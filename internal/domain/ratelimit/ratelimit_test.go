package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/vitrine/internal/domain/ratelimit"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeClock is a settable time source for limiter tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter(t *testing.T) {
	Convey("Given a limiter with the default 5-per-15-minutes policy", t, func() {
		clock := newFakeClock()
		limiter := ratelimit.NewInMemoryLimiter(ratelimit.WithClock(clock.Now))
		ctx := context.Background()

		Convey("When a client submits up to the ceiling", func() {
			for i := 0; i < 5; i++ {
				So(limiter.Allow(ctx, "1.2.3.4"), ShouldBeTrue)
			}

			Convey("Then the sixth submission is rejected", func() {
				So(limiter.Allow(ctx, "1.2.3.4"), ShouldBeFalse)
			})

			Convey("Then other clients are unaffected", func() {
				So(limiter.Allow(ctx, "5.6.7.8"), ShouldBeTrue)
			})
		})

		Convey("When the window elapses", func() {
			for i := 0; i < 6; i++ {
				limiter.Allow(ctx, "1.2.3.4")
			}
			So(limiter.Allow(ctx, "1.2.3.4"), ShouldBeFalse)

			clock.Advance(15 * time.Minute)

			Convey("Then the client may submit again", func() {
				So(limiter.Allow(ctx, "1.2.3.4"), ShouldBeTrue)
			})
		})

		Convey("When the window has not yet elapsed", func() {
			for i := 0; i < 5; i++ {
				limiter.Allow(ctx, "1.2.3.4")
			}
			clock.Advance(14 * time.Minute)

			Convey("Then the client remains limited", func() {
				So(limiter.Allow(ctx, "1.2.3.4"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a limiter with custom options", t, func() {
		clock := newFakeClock()
		limiter := ratelimit.NewInMemoryLimiter(
			ratelimit.WithClock(clock.Now),
			ratelimit.WithWindow(time.Minute),
			ratelimit.WithMaxPerWindow(2),
		)
		ctx := context.Background()

		Convey("Then the custom ceiling applies", func() {
			So(limiter.Allow(ctx, "k"), ShouldBeTrue)
			So(limiter.Allow(ctx, "k"), ShouldBeTrue)
			So(limiter.Allow(ctx, "k"), ShouldBeFalse)
		})

		Convey("Then the custom window applies", func() {
			limiter.Allow(ctx, "k")
			limiter.Allow(ctx, "k")
			clock.Advance(time.Minute)

			So(limiter.Allow(ctx, "k"), ShouldBeTrue)
		})
	})
}

func TestLimiterSweep(t *testing.T) {
	Convey("Given a limiter tracking several clients", t, func() {
		clock := newFakeClock()
		limiter := ratelimit.NewInMemoryLimiter(
			ratelimit.WithClock(clock.Now),
			ratelimit.WithWindow(time.Minute),
			ratelimit.WithSweepInterval(time.Minute),
		)
		ctx := context.Background()

		for i := 0; i < 10; i++ {
			limiter.Allow(ctx, fmt.Sprintf("client-%d", i))
		}
		So(limiter.Size(), ShouldEqual, 10)

		Convey("When the windows expire and the sweep interval passes", func() {
			clock.Advance(2 * time.Minute)
			limiter.Allow(ctx, "fresh")

			Convey("Then expired windows are dropped", func() {
				So(limiter.Size(), ShouldEqual, 1)
			})
		})
	})
}

func TestLimiterConcurrency(t *testing.T) {
	Convey("Given concurrent submissions from one client at the ceiling", t, func() {
		limiter := ratelimit.NewInMemoryLimiter(
			ratelimit.WithMaxPerWindow(5),
		)
		ctx := context.Background()

		var allowed atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow(ctx, "same-client") {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly the ceiling is admitted, with no lost updates", func() {
			So(allowed.Load(), ShouldEqual, 5)
		})
	})

	Convey("Given concurrent submissions from distinct clients", t, func() {
		limiter := ratelimit.NewInMemoryLimiter()
		ctx := context.Background()

		var rejected atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 40; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				if !limiter.Allow(ctx, fmt.Sprintf("client-%d", id)) {
					rejected.Add(1)
				}
			}(i)
		}
		wg.Wait()

		Convey("Then no client is limited by another's submissions", func() {
			So(rejected.Load(), ShouldEqual, 0)
		})
	})
}
