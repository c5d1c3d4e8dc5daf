package timeline

import (
	"testing"
	"time"

	"github.com/nowbar-cli/nowbar/session"
	. "github.com/smartystreets/goconvey/convey"
)

// newStill returns an interpolator whose real timers fire far in the future,
// so tests drive ticks manually through tick().
func newStill() *Interpolator {
	return New(time.Hour)
}

func TestInterpolator(t *testing.T) {
	Convey("Given an interpolator", t, func() {
		itp := newStill()
		defer itp.StopAll()

		snapshot := session.TimelineModel{
			Position: 0,
			End:      100 * TicksPerSecond,
		}

		Convey("Resume starts a tick and converts provider units", func() {
			itp.Resume("X", snapshot)

			p, ok := itp.Position("X")
			So(ok, ShouldBeTrue)
			So(p.LengthSeconds, ShouldEqual, 100)
			So(p.PositionMs, ShouldEqual, 0)
			So(p.Playing, ShouldBeTrue)
			So(itp.Ticking("X"), ShouldBeTrue)
		})

		Convey("Three manual ticks at 250ms advance the position by exactly 750ms", func() {
			itp250 := New(250 * time.Millisecond)
			itp250.mu.Lock()
			itp250.entries["X"] = &entry{lengthSeconds: 100, stop: make(chan struct{})}
			itp250.mu.Unlock()

			itp250.tick("X")
			itp250.tick("X")
			itp250.tick("X")

			p, _ := itp250.Position("X")
			So(p.PositionMs, ShouldEqual, 750)

			itp250.StopAll()
		})

		Convey("Ticking clamps the position at the track length", func() {
			short := New(400 * time.Millisecond)
			short.mu.Lock()
			short.entries["X"] = &entry{lengthSeconds: 1, stop: make(chan struct{})}
			short.mu.Unlock()

			for i := 0; i < 5; i++ {
				short.tick("X")
			}

			p, _ := short.Position("X")
			So(p.PositionMs, ShouldEqual, 1000)

			short.StopAll()
		})

		Convey("Pause freezes the position without a tick", func() {
			itp.Pause("X", session.TimelineModel{
				Position: 42 * TicksPerSecond,
				End:      100 * TicksPerSecond,
			})

			p, ok := itp.Position("X")
			So(ok, ShouldBeTrue)
			So(p.PositionMs, ShouldEqual, 42_000)
			So(p.Playing, ShouldBeFalse)
			So(itp.Ticking("X"), ShouldBeFalse)
		})

		Convey("Pause on an unknown source creates frozen state", func() {
			itp.Pause("fresh", snapshot)

			_, ok := itp.Position("fresh")
			So(ok, ShouldBeTrue)
			So(itp.Ticking("fresh"), ShouldBeFalse)
		})

		Convey("A resumed source paused mid-flight retains the authoritative position", func() {
			itp.Resume("X", snapshot)
			itp.Pause("X", session.TimelineModel{
				Position: 10 * TicksPerSecond,
				End:      100 * TicksPerSecond,
			})

			p, _ := itp.Position("X")
			So(p.PositionMs, ShouldEqual, 10_000)
			So(itp.Ticking("X"), ShouldBeFalse)
		})

		Convey("An authoritative snapshot resets locally accumulated drift", func() {
			itp.Resume("X", snapshot)
			itp.mu.Lock()
			itp.entries["X"].positionMs = 5_000 // simulated local ticking
			itp.mu.Unlock()

			itp.Resume("X", snapshot)
			p, _ := itp.Position("X")
			So(p.PositionMs, ShouldEqual, 0)
		})

		Convey("Repeated Resume never leaves more than one live tick", func() {
			for i := 0; i < 10; i++ {
				itp.Resume("X", snapshot)
			}
			So(itp.Ticking("X"), ShouldBeTrue)

			itp.Stop("X")
			So(itp.Ticking("X"), ShouldBeFalse)
		})

		Convey("Freeze retains the last known frozen position", func() {
			itp.Resume("X", session.TimelineModel{
				Position: 30 * TicksPerSecond,
				End:      100 * TicksPerSecond,
			})
			itp.Freeze("X")

			p, ok := itp.Position("X")
			So(ok, ShouldBeTrue)
			So(p.PositionMs, ShouldEqual, 30_000)
			So(p.Playing, ShouldBeFalse)
		})

		Convey("A tick firing after cancellation does not mutate state", func() {
			itp.Pause("X", snapshot)
			itp.tick("X")

			p, _ := itp.Position("X")
			So(p.PositionMs, ShouldEqual, 0)
		})

		Convey("Stop discards interpolation state", func() {
			itp.Resume("X", snapshot)
			itp.Stop("X")

			_, ok := itp.Position("X")
			So(ok, ShouldBeFalse)
		})

		Convey("A negative snapshot position clamps to zero", func() {
			itp.Pause("X", session.TimelineModel{
				Position: -5 * TicksPerSecond,
				End:      100 * TicksPerSecond,
			})

			p, _ := itp.Position("X")
			So(p.PositionMs, ShouldEqual, 0)
		})

		Convey("StopAll clears every source", func() {
			itp.Resume("A", snapshot)
			itp.Resume("B", snapshot)
			itp.StopAll()

			So(itp.Ticking("A"), ShouldBeFalse)
			So(itp.Ticking("B"), ShouldBeFalse)
			_, ok := itp.Position("A")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Clock formatting", t, func() {
		So(Clock(0), ShouldEqual, "0:00")
		So(Clock(750), ShouldEqual, "0:00")
		So(Clock(61_000), ShouldEqual, "1:01")
		So(Clock(9_000), ShouldEqual, "0:09")
		So(Clock(600_000), ShouldEqual, "10:00")
	})

	Convey("LengthClock formatting", t, func() {
		So(LengthClock(60), ShouldEqual, "1:00")
		So(LengthClock(61.5), ShouldEqual, "1:01")
		So(LengthClock(9), ShouldEqual, "0:09")
	})

	Convey("Percent", t, func() {
		So(Percent(Position{PositionMs: 30_000, LengthSeconds: 60}), ShouldEqual, 0.5)
		So(Percent(Position{PositionMs: 90_000, LengthSeconds: 60}), ShouldEqual, 1)
		So(Percent(Position{LengthSeconds: 0}), ShouldEqual, 0)
	})
}
