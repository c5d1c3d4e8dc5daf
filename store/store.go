// Package store implements the canonical mapping from session source
// identifiers to session records.
//
// All mutation goes through the transition methods; each transition is atomic
// with respect to concurrent readers and leaves the externally visible record
// collection sorted ascending by source. Derived resources (artwork handles,
// interpolation tickers) are torn down through the injected collaborators as
// part of the owning transition, covering both single removal and store-wide
// clears.
package store

import (
	"sync"

	"github.com/nowbar-cli/nowbar/artwork"
	"github.com/nowbar-cli/nowbar/log"
	"github.com/nowbar-cli/nowbar/session"
)

// Artwork manages the materialized image resource derived from a record's raw
// artwork bytes. Implemented by artwork.Manager.
type Artwork interface {
	Set(source string, raw []byte) (*artwork.Handle, error)
	ReleaseFor(source string)
	ReleaseAll()
}

// TickStopper cancels locally running playback interpolation for removed
// sources. Implemented by timeline.Interpolator.
type TickStopper interface {
	Stop(source string)
	StopAll()
}

// Store holds one record per session source.
type Store struct {
	mu      sync.RWMutex
	records map[string]*session.Record

	art     Artwork
	stopper TickStopper
}

// New returns an empty store wired to the given resource collaborators.
// Either collaborator may be nil, in which case its concern is skipped.
func New(art Artwork, stopper TickStopper) *Store {
	return &Store{
		records: make(map[string]*session.Record),
		art:     art,
		stopper: stopper,
	}
}

// ApplySnapshot replaces the entire store contents with the provider's full
// enumeration. Pre-existing records are torn down first.
func (s *Store) ApplySnapshot(snapshots []session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()

	for _, snap := range snapshots {
		record := &session.Record{
			Source:    snap.Source,
			SessionID: snap.SessionID,
			Session:   snap.Session,
		}
		if len(snap.Image) > 0 {
			record.Image = snap.Image
			record.Artwork = s.swapArtwork(snap.Source, snap.Image)
		}
		s.records[snap.Source] = record
	}
}

// ApplyCreate inserts a new bare record for source. Idempotent: a create for
// an already known source must not clobber its accumulated state.
func (s *Store) ApplyCreate(source string, sessionID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[source]; exists {
		log.Debugf("create for known source %s ignored", source)
		return
	}

	s.records[source] = &session.Record{
		Source:    source,
		SessionID: sessionID,
	}
}

// ApplyUpdate merges an update event into the record for source. The session
// model and id are replaced wholesale; artwork is swapped only when the event
// carries image bytes. Updates for unknown sources are dropped: the provider
// guarantees create-before-update, and the store defends against violations
// by ignoring rather than inventing records.
func (s *Store) ApplyUpdate(source string, sessionID uint64, model session.Model, image []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[source]
	if !exists {
		log.Debugf("update for unknown source %s dropped", source)
		return
	}

	record.SessionID = sessionID
	record.Session = model
	if len(image) > 0 {
		record.Image = image
		if handle := s.swapArtwork(source, image); handle != nil {
			record.Artwork = handle
		}
	}
}

// ApplyRemove removes every record whose session id matches. Matching is by
// value rather than store key, so zero matches are a no-op and duplicates are
// all removed.
func (s *Store) ApplyRemove(sessionID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for source, record := range s.records {
		if record.SessionID != sessionID {
			continue
		}
		s.teardown(source)
		delete(s.records, source)
	}
}

// ApplyRemoveAll clears every record, releasing all artwork handles and
// cancelling all interpolation tickers first.
func (s *Store) ApplyRemoveAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
}

// Snapshot returns a copy of the current records, sorted ascending by source.
// Mutating the returned slice does not affect the store.
func (s *Store) Snapshot() []session.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]session.Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, *record)
	}
	session.SortRecords(records)
	return records
}

// Get returns a copy of the record for source.
func (s *Store) Get(source string) (session.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[source]
	if !ok {
		return session.Record{}, false
	}
	return *record, true
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// clear tears down and drops every record. Callers hold s.mu.
func (s *Store) clear() {
	for source := range s.records {
		s.teardown(source)
		delete(s.records, source)
	}
}

// teardown releases the derived resources owned by one source. Callers hold s.mu.
func (s *Store) teardown(source string) {
	if s.art != nil {
		s.art.ReleaseFor(source)
	}
	if s.stopper != nil {
		s.stopper.Stop(source)
	}
}

// swapArtwork materializes new artwork for source, falling back to no handle
// on malformed bytes. Callers hold s.mu.
func (s *Store) swapArtwork(source string, raw []byte) *artwork.Handle {
	if s.art == nil {
		return nil
	}
	handle, err := s.art.Set(source, raw)
	if err != nil {
		log.Warnf("artwork rejected for %s: %v", source, err)
		return nil
	}
	return handle
}
