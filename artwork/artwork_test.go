package artwork

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/nowbar-cli/nowbar/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestManager(t *testing.T) {
	raw := pngBytes(t)

	Convey("Given an artwork manager", t, func() {
		m := NewManager("/artwork")

		Convey("Set registers a live handle and materializes the file", func() {
			h, err := m.Set("Spotify.exe", raw)
			So(err, ShouldBeNil)
			So(h.Width, ShouldEqual, 2)
			So(h.Format, ShouldEqual, "png")
			So(m.LiveCount(), ShouldEqual, 1)

			exists, _ := filesystem.API().Exists(h.Path)
			So(exists, ShouldBeTrue)
		})

		Convey("Replacing artwork releases exactly the superseded handle", func() {
			first, err := m.Set("Spotify.exe", raw)
			So(err, ShouldBeNil)
			second, err := m.Set("Spotify.exe", raw)
			So(err, ShouldBeNil)
			So(second.Path, ShouldNotEqual, first.Path)
			So(m.LiveCount(), ShouldEqual, 1)

			gone, _ := filesystem.API().Exists(first.Path)
			So(gone, ShouldBeFalse)
			kept, _ := filesystem.API().Exists(second.Path)
			So(kept, ShouldBeTrue)
		})

		Convey("Malformed bytes leave the previous handle untouched", func() {
			h, err := m.Set("Spotify.exe", raw)
			So(err, ShouldBeNil)

			_, err = m.Set("Spotify.exe", []byte("not an image"))
			So(err, ShouldNotBeNil)

			live, ok := m.Live("Spotify.exe")
			So(ok, ShouldBeTrue)
			So(live.Path, ShouldEqual, h.Path)
		})

		Convey("ReleaseFor removes the handle and its file", func() {
			h, err := m.Set("Spotify.exe", raw)
			So(err, ShouldBeNil)

			m.ReleaseFor("Spotify.exe")
			So(m.LiveCount(), ShouldEqual, 0)

			exists, _ := filesystem.API().Exists(h.Path)
			So(exists, ShouldBeFalse)
		})

		Convey("ReleaseAll clears every live handle", func() {
			_, err := m.Set("Spotify.exe", raw)
			So(err, ShouldBeNil)
			_, err = m.Set("chrome.exe", raw)
			So(err, ShouldBeNil)
			So(m.LiveCount(), ShouldEqual, 2)

			m.ReleaseAll()
			So(m.LiveCount(), ShouldEqual, 0)
		})
	})
}
