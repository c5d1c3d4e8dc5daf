package session

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseControl(t *testing.T) {
	Convey("ParseControl", t, func() {
		Convey("Should resolve exact names", func() {
			kind, ok := ParseControl("TogglePlayPause")
			So(ok, ShouldBeTrue)
			So(kind, ShouldEqual, ControlTogglePlayPause)
		})

		Convey("Should resolve names case-insensitively", func() {
			kind, ok := ParseControl("skipnext")
			So(ok, ShouldBeTrue)
			So(kind, ShouldEqual, ControlSkipNext)
		})

		Convey("Should reject unknown names", func() {
			_, ok := ParseControl("Eject")
			So(ok, ShouldBeFalse)
		})

		Convey("Controls covers every parseable kind", func() {
			for _, kind := range Controls() {
				parsed, ok := ParseControl(string(kind))
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, kind)
			}
		})
	})
}

func TestRecord(t *testing.T) {
	Convey("Record accessors", t, func() {
		Convey("Should read through present models", func() {
			record := Record{
				Source: "Spotify.exe",
				Session: Model{
					Playback: mo.Some(PlaybackModel{Status: StatusPlaying}),
					Media:    mo.Some(MediaModel{Title: "Holocene", Artist: "Bon Iver"}),
				},
			}

			So(record.Title(), ShouldEqual, "Holocene")
			So(record.Artist(), ShouldEqual, "Bon Iver")
			So(record.Status(), ShouldEqual, StatusPlaying)
		})

		Convey("Should degrade gracefully on absent models", func() {
			record := Record{Source: "chrome.exe"}

			So(record.Title(), ShouldEqual, "")
			So(record.Artist(), ShouldEqual, "")
			So(record.Status(), ShouldEqual, StatusClosed)
		})
	})

	Convey("SortRecords", t, func() {
		records := []Record{
			{Source: "zulu"},
			{Source: "alpha"},
			{Source: "mike"},
		}

		SortRecords(records)

		So(records[0].Source, ShouldEqual, "alpha")
		So(records[1].Source, ShouldEqual, "mike")
		So(records[2].Source, ShouldEqual, "zulu")
	})
}
