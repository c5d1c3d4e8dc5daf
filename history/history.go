// Package history persists a listening log of the tracks that have flowed
// through the session store.
package history

import (
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/nowbar-cli/nowbar/filesystem"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/where"
)

// cacher provides an abstracted, disk-backed registry for listening records.
var cacher = gache.New[map[string]*SavedTrack](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// lastKeys remembers the most recent track key per source, so a stream of
// updates for the same track counts as a single play.
var (
	lastMu   sync.Mutex
	lastKeys = map[string]string{}
)

// Get returns the complete listening log from the persistent store.
func Get() (map[string]*SavedTrack, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedTrack), nil
	}
	return cached, nil
}

// Save folds a session record into the listening log. Records without media
// metadata are ignored. Repeated updates for the same track on the same
// source touch the timestamp without inflating the play count.
func Save(record session.Record) error {
	media, ok := record.Session.Media.Get()
	if !ok || media.Title == "" {
		return nil
	}

	now := time.Now().UnixMilli()
	track := newSavedTrack(record, now)
	key := track.encode()

	lastMu.Lock()
	samePlay := lastKeys[record.Source] == key
	lastKeys[record.Source] = key
	lastMu.Unlock()

	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, exists := saved[key]; exists {
		existing.LastSeenAt = now
		if !samePlay {
			existing.PlayCount++
		}
		saved[key] = existing
	} else {
		saved[key] = track
	}

	return cacher.Set(saved)
}

// Remove permanently deletes a specific record from the listening log.
func Remove(track *SavedTrack) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, track.encode())
	return cacher.Set(saved)
}

// Clear wipes the whole listening log.
func Clear() error {
	return cacher.Set(make(map[string]*SavedTrack))
}

// Saver adapts the package-level log to the engine's recorder hook.
type Saver struct{}

// RecordUpdate implements engine.Recorder.
func (Saver) RecordUpdate(record session.Record) {
	_ = Save(record)
}
