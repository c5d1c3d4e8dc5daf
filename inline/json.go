package inline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nowbar-cli/nowbar/session"
)

// Session is the JSON view of one record, enriched with the interpolated
// timeline so scripts never need to convert ticks themselves.
type Session struct {
	Source    string         `json:"source"`
	SessionID uint64         `json:"sessionId"`
	Status    session.Status `json:"status"`
	Title     string         `json:"title,omitempty"`
	Artist    string         `json:"artist,omitempty"`
	Album     string         `json:"album,omitempty"`

	PositionMs    int64   `json:"positionMs"`
	LengthSeconds float64 `json:"lengthSeconds"`
	Playing       bool    `json:"playing"`

	Active      bool   `json:"active"`
	ArtworkPath string `json:"artworkPath,omitempty"`
}

type Output struct {
	Sessions []*Session `json:"sessions"`
}

func writeJson(out io.Writer, records []session.Record, options *Options) error {
	activeID, hasActive := options.Engine.Active().Get()

	sessions := make([]*Session, len(records))
	for i, record := range records {
		s := &Session{
			Source:    record.Source,
			SessionID: record.SessionID,
			Status:    record.Status(),
			Active:    hasActive && record.SessionID == activeID,
		}

		if media, ok := record.Session.Media.Get(); ok {
			s.Title = media.Title
			s.Artist = media.Artist
			s.Album = media.Album
		}

		if pos, ok := options.Engine.Position(record.Source); ok {
			s.PositionMs = pos.PositionMs
			s.LengthSeconds = pos.LengthSeconds
			s.Playing = pos.Playing
		}

		if record.Artwork != nil {
			s.ArtworkPath = record.Artwork.Path
		}

		sessions[i] = s
	}

	marshalled, err := json.Marshal(&Output{Sessions: sessions})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(marshalled))
	return err
}
