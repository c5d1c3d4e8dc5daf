package inline

import (
	"strings"
	"testing"

	"github.com/nowbar-cli/nowbar/engine"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/store"
	"github.com/nowbar-cli/nowbar/timeline"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type stubProvider struct {
	snapshots []session.Snapshot
	events    chan session.Event
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) CurrentSessions() ([]session.Snapshot, error) {
	return s.snapshots, nil
}

func (s *stubProvider) Control(string, session.ControlKind) error { return nil }

func (s *stubProvider) Events() <-chan session.Event { return s.events }

func (s *stubProvider) Close() error { return nil }

func testEngine(snapshots ...session.Snapshot) *engine.Engine {
	itp := timeline.New(timeline.DefaultTickInterval)
	e := engine.New(
		&stubProvider{snapshots: snapshots, events: make(chan session.Event)},
		store.New(nil, itp),
		itp,
		nil,
	)
	_ = e.Bootstrap()
	return e
}

func snapshot(source, title, artist string, status session.Status) session.Snapshot {
	return session.Snapshot{
		Source:    source,
		SessionID: 1,
		Session: session.Model{
			Source:   source,
			Playback: mo.Some(session.PlaybackModel{Status: status, Rate: 1}),
			Media:    mo.Some(session.MediaModel{Title: title, Artist: artist}),
			Timeline: mo.Some(session.TimelineModel{End: 600_000_000, Position: 150_000_000}),
		},
	}
}

func TestParsePicker(t *testing.T) {
	Convey("ParsePicker", t, func() {
		records := []session.Record{
			{Source: "a"},
			{Source: "b"},
			{Source: "c"},
		}

		Convey("first and last pick the edges", func() {
			first, err := ParsePicker("first", "")
			So(err, ShouldBeNil)
			So(first(records).Source, ShouldEqual, "a")

			last, err := ParsePicker("last", "")
			So(err, ShouldBeNil)
			So(last(records).Source, ShouldEqual, "c")
		})

		Convey("exact picks by source and may miss", func() {
			exact, err := ParsePicker("exact", "b")
			So(err, ShouldBeNil)
			So(exact(records).Source, ShouldEqual, "b")

			missing, _ := ParsePicker("exact", "zz")
			So(missing(records), ShouldBeNil)
		})

		Convey("index clamps to the last record", func() {
			picker, err := ParsePicker("index", "99")
			So(err, ShouldBeNil)
			So(picker(records).Source, ShouldEqual, "c")
		})

		Convey("unknown kinds and bad indices fail", func() {
			_, err := ParsePicker("median", "")
			So(err, ShouldNotBeNil)

			_, err = ParsePicker("index", "NaN")
			So(err, ShouldNotBeNil)
		})

		Convey("pickers on no records return nil", func() {
			first, _ := ParsePicker("first", "")
			So(first(nil), ShouldBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given an engine with two sessions", t, func() {
		e := testEngine(
			snapshot("Spotify.exe", "Holocene", "Bon Iver", session.StatusPlaying),
			snapshot("chrome.exe", "Some Stream", "Someone", session.StatusPaused),
		)
		defer e.Close()

		Convey("Text mode prints one line per session", func() {
			var out strings.Builder
			err := Run(&Options{Out: &out, Engine: e})
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			So(lines, ShouldHaveLength, 2)
			So(lines[0], ShouldContainSubstring, "Spotify.exe")
			So(lines[0], ShouldContainSubstring, "Holocene")
			So(lines[0], ShouldContainSubstring, "[Playing]")
			So(lines[0], ShouldContainSubstring, "0:15/1:00")
		})

		Convey("A fuzzy query narrows the output", func() {
			var out strings.Builder
			err := Run(&Options{Out: &out, Engine: e, Query: "holo"})
			So(err, ShouldBeNil)

			So(out.String(), ShouldContainSubstring, "Holocene")
			So(out.String(), ShouldNotContainSubstring, "chrome.exe")
		})

		Convey("A picker narrows the output to one session", func() {
			picker, _ := ParsePicker("exact", "chrome.exe")

			var out strings.Builder
			err := Run(&Options{Out: &out, Engine: e, Picker: mo.Some(picker)})
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			So(lines, ShouldHaveLength, 1)
			So(lines[0], ShouldContainSubstring, "chrome.exe")
		})

		Convey("JSON mode emits the enriched structure", func() {
			var out strings.Builder
			err := Run(&Options{Out: &out, Engine: e, Json: true})
			So(err, ShouldBeNil)

			So(out.String(), ShouldContainSubstring, `"sessions"`)
			So(out.String(), ShouldContainSubstring, `"lengthSeconds":60`)
			So(out.String(), ShouldContainSubstring, `"positionMs":15000`)
		})
	})
}
