package custom

import (
	"fmt"
	"strings"

	"github.com/nowbar-cli/nowbar/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

// Helper to get string from table with default
func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// Helper to get an integer from table with default
func getInt(table *lua.LTable, key string) int64 {
	val := table.RawGetString(key)
	if val.Type() == lua.LTNumber {
		return int64(val.(lua.LNumber))
	}
	return 0
}

func getFloat(table *lua.LTable, key string) float64 {
	val := table.RawGetString(key)
	if val.Type() == lua.LTNumber {
		return float64(val.(lua.LNumber))
	}
	return 0
}

func getBool(table *lua.LTable, key string) bool {
	val := table.RawGetString(key)
	return val == lua.LTrue
}

// Helper to get string list from table (comma-separated or table)
func getStringList(table *lua.LTable, key string) []string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return lo.Map(strings.Split(val.String(), ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
	}
	if val.Type() == lua.LTTable {
		var list []string
		val.(*lua.LTable).ForEach(func(_, v lua.LValue) {
			if v.Type() == lua.LTString {
				list = append(list, v.String())
			}
		})
		return list
	}
	return nil
}

func getTable(table *lua.LTable, key string) (*lua.LTable, bool) {
	val := table.RawGetString(key)
	if val.Type() == lua.LTTable {
		return val.(*lua.LTable), true
	}
	return nil, false
}

func statusFromString(s string) session.Status {
	statuses := []session.Status{
		session.StatusClosed,
		session.StatusOpened,
		session.StatusChanging,
		session.StatusStopped,
		session.StatusPlaying,
		session.StatusPaused,
	}
	for _, status := range statuses {
		if strings.EqualFold(string(status), s) {
			return status
		}
	}
	return session.StatusStopped
}

func repeatFromString(s string) session.RepeatMode {
	modes := []session.RepeatMode{
		session.RepeatNone,
		session.RepeatTrack,
		session.RepeatList,
	}
	for _, mode := range modes {
		if strings.EqualFold(string(mode), s) {
			return mode
		}
	}
	return session.RepeatNone
}

// modelFromTable converts a script session table into the canonical model.
// The playback, timeline and media subtables are each optional.
func modelFromTable(table *lua.LTable, source string) session.Model {
	model := session.Model{Source: source}

	if playback, ok := getTable(table, "playback"); ok {
		model.Playback = mo.Some(session.PlaybackModel{
			Status:  statusFromString(getString(playback, "status")),
			Rate:    getFloat(playback, "rate"),
			Shuffle: getBool(playback, "shuffle"),
			Repeat:  repeatFromString(getString(playback, "repeat")),
		})
	}

	if tl, ok := getTable(table, "timeline"); ok {
		model.Timeline = mo.Some(session.TimelineModel{
			Start:         getInt(tl, "start"),
			End:           getInt(tl, "end"),
			Position:      getInt(tl, "position"),
			LastUpdatedAt: getInt(tl, "lastUpdatedAt"),
		})
	}

	if media, ok := getTable(table, "media"); ok {
		model.Media = mo.Some(session.MediaModel{
			Title:  getString(media, "title"),
			Artist: getString(media, "artist"),
			Album:  getString(media, "album"),
			Genres: getStringList(media, "genres"),
		})
	}

	return model
}

// snapshotFromTable converts one Sessions() entry. Image bytes ride along as a
// Lua string, the conventional byte carrier.
func snapshotFromTable(table *lua.LTable) (session.Snapshot, error) {
	source := getString(table, "source")
	if source == "" {
		return session.Snapshot{}, fmt.Errorf("session must have a source")
	}

	snapshot := session.Snapshot{
		Source:    source,
		SessionID: uint64(getInt(table, "sessionId")),
	}

	if sess, ok := getTable(table, "session"); ok {
		snapshot.Session = modelFromTable(sess, source)
	} else {
		snapshot.Session = session.Model{Source: source}
	}

	if image := getString(table, "image"); image != "" {
		snapshot.Image = []byte(image)
	}

	return snapshot, nil
}

// eventFromTable converts one Poll() entry into a typed event.
func eventFromTable(table *lua.LTable) (session.Event, error) {
	kind := getString(table, "kind")

	switch strings.ToLower(kind) {
	case "create":
		source := getString(table, "source")
		if source == "" {
			return nil, fmt.Errorf("create event must have a source")
		}
		return session.SessionCreate{
			Source:    source,
			SessionID: uint64(getInt(table, "sessionId")),
		}, nil

	case "update":
		source := getString(table, "source")
		if source == "" {
			return nil, fmt.Errorf("update event must have a source")
		}
		ev := session.SessionUpdate{
			Source:    source,
			SessionID: uint64(getInt(table, "sessionId")),
		}
		if sess, ok := getTable(table, "session"); ok {
			ev.Model = modelFromTable(sess, source)
		} else {
			ev.Model = session.Model{Source: source}
		}
		if image := getString(table, "image"); image != "" {
			ev.Image = []byte(image)
		}
		return ev, nil

	case "remove":
		return session.SessionRemove{
			SessionID: uint64(getInt(table, "sessionId")),
		}, nil

	case "activechange":
		return session.ActiveSessionChange{
			SessionID: uint64(getInt(table, "sessionId")),
		}, nil

	case "activeremove":
		return session.ActiveSessionRemove{}, nil

	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
}
