package store

import (
	"fmt"
	"testing"

	"github.com/nowbar-cli/nowbar/artwork"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeArtwork records handle lifecycle calls without touching the filesystem.
type fakeArtwork struct {
	live     map[string]*artwork.Handle
	released []string
	seq      int
	fail     bool
}

func newFakeArtwork() *fakeArtwork {
	return &fakeArtwork{live: make(map[string]*artwork.Handle)}
}

func (f *fakeArtwork) Set(source string, raw []byte) (*artwork.Handle, error) {
	if f.fail {
		return nil, fmt.Errorf("malformed artwork for %s", source)
	}
	f.seq++
	handle := &artwork.Handle{Source: source, Path: fmt.Sprintf("%s-%d", source, f.seq)}
	if previous, ok := f.live[source]; ok {
		f.released = append(f.released, previous.Path)
	}
	f.live[source] = handle
	return handle, nil
}

func (f *fakeArtwork) ReleaseFor(source string) {
	if handle, ok := f.live[source]; ok {
		f.released = append(f.released, handle.Path)
		delete(f.live, source)
	}
}

func (f *fakeArtwork) ReleaseAll() {
	for source := range f.live {
		f.ReleaseFor(source)
	}
}

// fakeStopper records cancelled sources.
type fakeStopper struct {
	stopped []string
}

func (f *fakeStopper) Stop(source string) { f.stopped = append(f.stopped, source) }
func (f *fakeStopper) StopAll()           {}

func playingModel(source string) session.Model {
	return session.Model{
		Source:   source,
		Playback: mo.Some(session.PlaybackModel{Status: session.StatusPlaying, Rate: 1}),
		Media:    mo.Some(session.MediaModel{Title: "Track", Artist: "Artist"}),
		Timeline: mo.Some(session.TimelineModel{End: 600_000_000}),
	}
}

func TestStore(t *testing.T) {
	Convey("Given a store", t, func() {
		art := newFakeArtwork()
		stopper := &fakeStopper{}
		s := New(art, stopper)

		Convey("ApplySnapshot replaces contents sorted by source", func() {
			s.ApplySnapshot([]session.Snapshot{
				{Source: "B", SessionID: 2},
				{Source: "A", SessionID: 1},
			})

			records := s.Snapshot()
			So(len(records), ShouldEqual, 2)
			So(records[0].Source, ShouldEqual, "A")
			So(records[1].Source, ShouldEqual, "B")
		})

		Convey("A second snapshot tears down the first", func() {
			s.ApplySnapshot([]session.Snapshot{{Source: "A", SessionID: 1, Image: []byte{1}}})
			s.ApplySnapshot([]session.Snapshot{{Source: "C", SessionID: 3}})

			So(s.Len(), ShouldEqual, 1)
			So(art.released, ShouldContain, "A-1")
			So(stopper.stopped, ShouldContain, "A")
		})

		Convey("ApplyCreate inserts a bare record once", func() {
			s.ApplyCreate("X", 1)
			s.ApplyCreate("X", 9)

			record, ok := s.Get("X")
			So(ok, ShouldBeTrue)
			So(record.SessionID, ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 1)
		})

		Convey("Create for an existing source keeps its accumulated state", func() {
			s.ApplyCreate("X", 1)
			s.ApplyUpdate("X", 1, playingModel("X"), nil)
			s.ApplyCreate("X", 1)

			record, _ := s.Get("X")
			So(record.Session.Media.IsPresent(), ShouldBeTrue)
			So(record.Title(), ShouldEqual, "Track")
		})

		Convey("ApplyUpdate for an unknown source is dropped", func() {
			s.ApplyUpdate("ghost", 1, playingModel("ghost"), nil)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("ApplyUpdate replaces the session model wholesale", func() {
			s.ApplyCreate("X", 1)
			s.ApplyUpdate("X", 7, playingModel("X"), nil)

			record, _ := s.Get("X")
			So(record.SessionID, ShouldEqual, 7)
			So(record.Status(), ShouldEqual, session.StatusPlaying)
		})

		Convey("Sparse artwork leaves the previous handle untouched", func() {
			s.ApplyCreate("X", 1)
			s.ApplyUpdate("X", 1, playingModel("X"), []byte{0xFF})
			first, _ := s.Get("X")

			s.ApplyUpdate("X", 1, playingModel("X"), nil)
			second, _ := s.Get("X")

			So(second.Artwork, ShouldNotBeNil)
			So(second.Artwork.Path, ShouldEqual, first.Artwork.Path)
			So(len(art.released), ShouldEqual, 0)
		})

		Convey("New artwork releases exactly one superseded handle", func() {
			s.ApplyCreate("X", 1)
			s.ApplyUpdate("X", 1, playingModel("X"), []byte{0x01})
			s.ApplyUpdate("X", 1, playingModel("X"), []byte{0x02})

			record, _ := s.Get("X")
			So(record.Artwork.Path, ShouldEqual, "X-2")
			So(art.released, ShouldResemble, []string{"X-1"})
		})

		Convey("Rejected artwork keeps the previous handle", func() {
			s.ApplyCreate("X", 1)
			s.ApplyUpdate("X", 1, playingModel("X"), []byte{0x01})

			art.fail = true
			s.ApplyUpdate("X", 1, playingModel("X"), []byte{0x02})

			record, _ := s.Get("X")
			So(record.Artwork, ShouldNotBeNil)
			So(record.Artwork.Path, ShouldEqual, "X-1")
		})

		Convey("ApplyRemove matches by session id and tears down resources", func() {
			s.ApplyCreate("X", 1)
			s.ApplyUpdate("X", 1, playingModel("X"), []byte{0x01})
			s.ApplyRemove(1)

			So(s.Len(), ShouldEqual, 0)
			So(art.released, ShouldContain, "X-1")
			So(stopper.stopped, ShouldContain, "X")
		})

		Convey("ApplyRemove with no match is a no-op", func() {
			s.ApplyCreate("X", 1)
			s.ApplyRemove(99)
			So(s.Len(), ShouldEqual, 1)
		})

		Convey("ApplyRemove removes every duplicate match", func() {
			s.ApplyCreate("X", 1)
			s.ApplyCreate("Y", 1)
			s.ApplyRemove(1)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("ApplyRemoveAll clears the store and all resources", func() {
			s.ApplyCreate("X", 1)
			s.ApplyCreate("Y", 2)
			s.ApplyUpdate("X", 1, playingModel("X"), []byte{0x01})
			s.ApplyRemoveAll()

			So(s.Len(), ShouldEqual, 0)
			So(art.released, ShouldContain, "X-1")
			So(stopper.stopped, ShouldContain, "X")
			So(stopper.stopped, ShouldContain, "Y")
		})

		Convey("Snapshot stays sorted after any sequence of transitions", func() {
			s.ApplyCreate("zulu", 1)
			s.ApplyCreate("alpha", 2)
			s.ApplyCreate("mike", 3)
			s.ApplyUpdate("mike", 3, playingModel("mike"), nil)
			s.ApplyRemove(2)

			records := s.Snapshot()
			So(len(records), ShouldEqual, 2)
			So(records[0].Source, ShouldEqual, "mike")
			So(records[1].Source, ShouldEqual, "zulu")
		})

		Convey("Mutating a snapshot copy does not leak into the store", func() {
			s.ApplyCreate("X", 1)
			records := s.Snapshot()
			records[0].SessionID = 42

			record, _ := s.Get("X")
			So(record.SessionID, ShouldEqual, 1)
		})
	})
}
