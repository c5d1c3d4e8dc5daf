package history

import (
	"fmt"

	"github.com/nowbar-cli/nowbar/session"
)

// SavedTrack represents one media item preserved in the listening log.
type SavedTrack struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	PlayCount   int    `json:"play_count"`
	FirstSeenAt int64  `json:"first_seen_at"`
	LastSeenAt  int64  `json:"last_seen_at"`
}

func (s *SavedTrack) encode() string {
	return fmt.Sprintf("%s (%s)", s.Title, s.Artist)
}

func (s *SavedTrack) String() string {
	return fmt.Sprintf("%s : %s, played %d", s.Artist, s.Title, s.PlayCount)
}

func newSavedTrack(record session.Record, now int64) *SavedTrack {
	media, _ := record.Session.Media.Get()
	return &SavedTrack{
		Source:      record.Source,
		Title:       media.Title,
		Artist:      media.Artist,
		Album:       media.Album,
		PlayCount:   1,
		FirstSeenAt: now,
		LastSeenAt:  now,
	}
}
