package history

import (
	"testing"

	"github.com/nowbar-cli/nowbar/filesystem"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func trackRecord(source, title, artist string) session.Record {
	return session.Record{
		Source:    source,
		SessionID: 1,
		Session: session.Model{
			Source: source,
			Media:  mo.Some(session.MediaModel{Title: title, Artist: artist, Album: "Album"}),
		},
	}
}

func TestHistory(t *testing.T) {
	Convey("Given an empty listening log", t, func() {
		So(Clear(), ShouldBeNil)
		lastMu.Lock()
		lastKeys = map[string]string{}
		lastMu.Unlock()

		Convey("Saving a record adds a track with one play", func() {
			So(Save(trackRecord("Spotify.exe", "Holocene", "Bon Iver")), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)
			So(saved, ShouldHaveLength, 1)

			track := saved["Holocene (Bon Iver)"]
			So(track, ShouldNotBeNil)
			So(track.PlayCount, ShouldEqual, 1)
			So(track.Source, ShouldEqual, "Spotify.exe")
		})

		Convey("Repeated updates for the same track count one play", func() {
			record := trackRecord("Spotify.exe", "Holocene", "Bon Iver")
			So(Save(record), ShouldBeNil)
			So(Save(record), ShouldBeNil)
			So(Save(record), ShouldBeNil)

			saved, _ := Get()
			So(saved["Holocene (Bon Iver)"].PlayCount, ShouldEqual, 1)
		})

		Convey("Returning to a track after another one is a new play", func() {
			So(Save(trackRecord("Spotify.exe", "Holocene", "Bon Iver")), ShouldBeNil)
			So(Save(trackRecord("Spotify.exe", "Perth", "Bon Iver")), ShouldBeNil)
			So(Save(trackRecord("Spotify.exe", "Holocene", "Bon Iver")), ShouldBeNil)

			saved, _ := Get()
			So(saved["Holocene (Bon Iver)"].PlayCount, ShouldEqual, 2)
			So(saved["Perth (Bon Iver)"].PlayCount, ShouldEqual, 1)
		})

		Convey("Records without media metadata are ignored", func() {
			So(Save(session.Record{Source: "chrome.exe"}), ShouldBeNil)

			saved, _ := Get()
			So(saved, ShouldBeEmpty)
		})

		Convey("Remove deletes exactly the named track", func() {
			So(Save(trackRecord("Spotify.exe", "Holocene", "Bon Iver")), ShouldBeNil)
			So(Save(trackRecord("Spotify.exe", "Perth", "Bon Iver")), ShouldBeNil)

			saved, _ := Get()
			So(Remove(saved["Perth (Bon Iver)"]), ShouldBeNil)

			saved, _ = Get()
			So(saved, ShouldHaveLength, 1)
			So(saved["Holocene (Bon Iver)"], ShouldNotBeNil)
		})
	})
}
