package session

import (
	"github.com/nowbar-cli/nowbar/artwork"
	"golang.org/x/exp/slices"
)

// Record is the canonical state this application holds for one session source.
//
// Source is the stable store key, assigned by the provider. SessionID is an
// opaque correlation value used only to match removal events; it is not unique
// across the lifetime of a source and must never be used as a key.
type Record struct {
	Source    string `json:"source"`
	SessionID uint64 `json:"sessionId"`
	Session   Model  `json:"session"`

	// Image holds the raw artwork bytes from the most recent update that
	// carried any. Artwork is sparse: most updates leave it untouched.
	Image []byte `json:"-"`

	// Artwork is the locally-owned materialized resource for Image.
	// At most one live handle exists per source; ownership stays with the
	// artwork manager and is transferred only via explicit release.
	Artwork *artwork.Handle `json:"artwork,omitempty"`
}

// Title returns the current track title, or an empty string when no media is known.
func (r *Record) Title() string {
	if media, ok := r.Session.Media.Get(); ok {
		return media.Title
	}
	return ""
}

// Artist returns the current track artist, or an empty string when no media is known.
func (r *Record) Artist() string {
	if media, ok := r.Session.Media.Get(); ok {
		return media.Artist
	}
	return ""
}

// Status returns the last known playback status, defaulting to Closed when no
// playback model has arrived yet.
func (r *Record) Status() Status {
	if playback, ok := r.Session.Playback.Get(); ok {
		return playback.Status
	}
	return StatusClosed
}

// SortRecords orders records ascending by source, the only ordering guarantee
// the store exposes.
func SortRecords(records []Record) {
	slices.SortFunc(records, func(a, b Record) int {
		switch {
		case a.Source < b.Source:
			return -1
		case a.Source > b.Source:
			return 1
		default:
			return 0
		}
	})
}
