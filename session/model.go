// Package session defines the canonical data model for media sessions mirrored from the native provider.
package session

import (
	"strings"

	"github.com/samber/mo"
)

// Status enumerates the playback states reported by the native session provider.
type Status string

const (
	StatusClosed   Status = "Closed"
	StatusOpened   Status = "Opened"
	StatusChanging Status = "Changing"
	StatusStopped  Status = "Stopped"
	StatusPlaying  Status = "Playing"
	StatusPaused   Status = "Paused"
)

// RepeatMode enumerates the track repetition modes reported by the provider.
type RepeatMode string

const (
	RepeatNone  RepeatMode = "None"
	RepeatTrack RepeatMode = "Track"
	RepeatList  RepeatMode = "List"
)

// MediaModel carries the descriptive metadata of the currently loaded media item.
// It is replaced wholesale on every update; fields are never merged individually.
type MediaModel struct {
	Title  string   `json:"title"`
	Artist string   `json:"artist"`
	Album  string   `json:"album"`
	Genres []string `json:"genres,omitempty"`
}

// PlaybackModel carries the transport state of a session.
type PlaybackModel struct {
	Status  Status     `json:"status"`
	Rate    float64    `json:"rate"`
	Shuffle bool       `json:"shuffle"`
	Repeat  RepeatMode `json:"autoRepeat"`
}

// TimelineModel is an authoritative timeline snapshot in provider time units
// (ticks, 100ns resolution; see the timeline package for display conversion).
type TimelineModel struct {
	Start         int64 `json:"start"`
	End           int64 `json:"end"`
	Position      int64 `json:"position"`
	LastUpdatedAt int64 `json:"lastUpdatedAt"`
}

// Model aggregates everything the provider knows about one session at a point in time.
// Playback, timeline and media are optional: the provider may push partial models.
type Model struct {
	Playback mo.Option[PlaybackModel] `json:"playback"`
	Timeline mo.Option[TimelineModel] `json:"timeline"`
	Media    mo.Option[MediaModel]    `json:"media"`
	Source   string                   `json:"source"`
}

// Snapshot is one element of the provider's full-state enumeration, used at startup.
type Snapshot struct {
	Source    string `json:"source"`
	SessionID uint64 `json:"sessionId"`
	Session   Model  `json:"session"`
	Image     []byte `json:"image,omitempty"`
}

// ControlKind enumerates the transport commands a session accepts.
type ControlKind string

const (
	ControlPlay            ControlKind = "Play"
	ControlPause           ControlKind = "Pause"
	ControlTogglePlayPause ControlKind = "TogglePlayPause"
	ControlFastForward     ControlKind = "FastForward"
	ControlRewind          ControlKind = "Rewind"
	ControlSkipNext        ControlKind = "SkipNext"
	ControlSkipPrevious    ControlKind = "SkipPrevious"
)

// Controls returns all supported transport command kinds.
func Controls() []ControlKind {
	return []ControlKind{
		ControlPlay,
		ControlPause,
		ControlTogglePlayPause,
		ControlFastForward,
		ControlRewind,
		ControlSkipNext,
		ControlSkipPrevious,
	}
}

// ParseControl resolves a case-insensitive name into a ControlKind.
func ParseControl(name string) (ControlKind, bool) {
	for _, kind := range Controls() {
		if strings.EqualFold(string(kind), name) {
			return kind, true
		}
	}
	return "", false
}
