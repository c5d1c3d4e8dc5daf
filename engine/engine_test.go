package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/store"
	"github.com/nowbar-cli/nowbar/timeline"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeProvider is a scriptable session.Provider for ingestion tests.
type fakeProvider struct {
	snapshots []session.Snapshot
	events    chan session.Event
	controls  chan string
	closed    sync.Once
}

func newFakeProvider(snapshots ...session.Snapshot) *fakeProvider {
	return &fakeProvider{
		snapshots: snapshots,
		events:    make(chan session.Event, 16),
		controls:  make(chan string, 16),
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) CurrentSessions() ([]session.Snapshot, error) {
	return f.snapshots, nil
}

func (f *fakeProvider) Control(source string, control session.ControlKind) error {
	f.controls <- source + ":" + string(control)
	return nil
}

func (f *fakeProvider) Events() <-chan session.Event { return f.events }

func (f *fakeProvider) Close() error {
	f.closed.Do(func() {
		close(f.events)
	})
	return nil
}

func model(source string, status session.Status, endTicks, positionTicks int64) session.Model {
	return session.Model{
		Source:   source,
		Playback: mo.Some(session.PlaybackModel{Status: status, Rate: 1}),
		Timeline: mo.Some(session.TimelineModel{End: endTicks, Position: positionTicks}),
		Media:    mo.Some(session.MediaModel{Title: "Track", Artist: "Artist"}),
	}
}

func newEngine(provider session.Provider) *Engine {
	itp := timeline.New(timeline.DefaultTickInterval)
	return New(provider, store.New(nil, itp), itp, nil)
}

func TestEngine(t *testing.T) {
	Convey("Given an engine over a fake provider", t, func() {
		provider := newFakeProvider()
		e := newEngine(provider)
		defer e.Close()

		Convey("Bootstrap seeds the store and primes interpolation", func() {
			provider.snapshots = []session.Snapshot{
				{Source: "A", SessionID: 1, Session: model("A", session.StatusPlaying, 600_000_000, 0)},
				{Source: "B", SessionID: 2, Session: model("B", session.StatusPaused, 1_200_000_000, 300_000_000)},
			}

			So(e.Bootstrap(), ShouldBeNil)

			records := e.Records()
			So(len(records), ShouldEqual, 2)
			So(records[0].Source, ShouldEqual, "A")

			pos, ok := e.Position("A")
			So(ok, ShouldBeTrue)
			So(pos.LengthSeconds, ShouldEqual, 60)
			So(pos.Playing, ShouldBeTrue)

			pos, ok = e.Position("B")
			So(ok, ShouldBeTrue)
			So(pos.PositionMs, ShouldEqual, 30_000)
			So(pos.Playing, ShouldBeFalse)
		})

		Convey("A create then playing update yields a ticking session", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})
			e.Apply(session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusPlaying, 600_000_000, 150_000_000),
			})

			record, ok := e.store.Get("A")
			So(ok, ShouldBeTrue)
			So(record.Status(), ShouldEqual, session.StatusPlaying)

			pos, _ := e.Position("A")
			So(pos.LengthSeconds, ShouldEqual, 60)
			So(pos.PositionMs, ShouldEqual, 15_000)
			So(pos.Playing, ShouldBeTrue)
		})

		Convey("A pause update freezes interpolation at the reported position", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})
			e.Apply(session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusPlaying, 600_000_000, 0),
			})
			e.Apply(session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusPaused, 600_000_000, 420_000_000),
			})

			pos, _ := e.Position("A")
			So(pos.Playing, ShouldBeFalse)
			So(pos.PositionMs, ShouldEqual, 42_000)
		})

		Convey("Statuses without interpolation behavior freeze the display", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})
			e.Apply(session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusPlaying, 600_000_000, 100_000_000),
			})
			e.Apply(session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusChanging, 600_000_000, 0),
			})

			pos, ok := e.Position("A")
			So(ok, ShouldBeTrue)
			So(pos.Playing, ShouldBeFalse)
			So(pos.PositionMs, ShouldEqual, 10_000)
		})

		Convey("An update without a session record is dropped entirely", func() {
			e.Apply(session.SessionUpdate{
				Source: "ghost", SessionID: 9,
				Model: model("ghost", session.StatusPlaying, 600_000_000, 0),
			})

			So(len(e.Records()), ShouldEqual, 0)
		})

		Convey("Remove discards the record and its interpolation state", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})
			e.Apply(session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusPlaying, 600_000_000, 0),
			})
			e.Apply(session.SessionRemove{SessionID: 1})

			So(len(e.Records()), ShouldEqual, 0)
			_, ok := e.Position("A")
			So(ok, ShouldBeFalse)
		})

		Convey("Active session change is advisory only", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})
			e.Apply(session.ActiveSessionChange{SessionID: 1})

			So(len(e.Records()), ShouldEqual, 1)
			id, ok := e.Active().Get()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, 1)
		})

		Convey("Removing the active session clears the advisory id", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})
			e.Apply(session.ActiveSessionChange{SessionID: 1})
			e.Apply(session.SessionRemove{SessionID: 1})

			So(e.Active().IsAbsent(), ShouldBeTrue)
		})

		Convey("Active session remove clears everything", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})
			e.Apply(session.SessionCreate{Source: "B", SessionID: 2})
			e.Apply(session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusPlaying, 600_000_000, 0),
			})
			e.Apply(session.ActiveSessionRemove{})

			So(len(e.Records()), ShouldEqual, 0)
			_, ok := e.Position("A")
			So(ok, ShouldBeFalse)
		})

		Convey("Dispatch forwards the control to the provider", func() {
			e.Dispatch("A", session.ControlTogglePlayPause)

			select {
			case dispatched := <-provider.controls:
				So(dispatched, ShouldEqual, "A:TogglePlayPause")
			case <-time.After(time.Second):
				So("timeout", ShouldBeEmpty)
			}
		})

		Convey("Run drains the event stream until the provider closes", func() {
			provider.events <- session.SessionCreate{Source: "A", SessionID: 1}
			provider.events <- session.SessionUpdate{
				Source: "A", SessionID: 1,
				Model: model("A", session.StatusPaused, 600_000_000, 0),
			}
			provider.Close()

			e.Run()

			record, ok := e.store.Get("A")
			So(ok, ShouldBeTrue)
			So(record.Status(), ShouldEqual, session.StatusPaused)
		})

		Convey("Applied events signal the updates channel", func() {
			e.Apply(session.SessionCreate{Source: "A", SessionID: 1})

			select {
			case <-e.Updates():
			case <-time.After(time.Second):
				So("timeout", ShouldBeEmpty)
			}
		})
	})
}
