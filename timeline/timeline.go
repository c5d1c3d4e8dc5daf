// Package timeline simulates continuous playback position advancement between
// sparse authoritative timeline snapshots pushed by the native provider.
//
// The provider reports time in ticks (100ns resolution). Display units are
// seconds for track length and milliseconds for position. While a session is
// playing, a recurring local tick advances the displayed position; every
// authoritative snapshot discards the locally advanced value in favor of the
// fresh one, bounding drift to at most one tick interval.
package timeline

import (
	"sync"
	"time"

	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/util"
)

// Provider tick divisors.
const (
	TicksPerSecond = 10_000_000
	TicksPerMilli  = 10_000
)

// DefaultTickInterval is the reference cadence for local position advancement.
const DefaultTickInterval = 250 * time.Millisecond

// Position is the render-ready view of one session's interpolated timeline.
type Position struct {
	PositionMs    int64
	LengthSeconds float64
	Playing       bool
}

type entry struct {
	lengthSeconds float64
	positionMs    int64

	// stop is non-nil iff a recurring tick is running for this source.
	// Closing it cancels the ticker goroutine exactly once.
	stop chan struct{}
}

// Interpolator owns the per-source interpolation state and its tick timers.
// All methods are safe for concurrent use.
type Interpolator struct {
	mu       sync.Mutex
	interval time.Duration
	entries  map[string]*entry
}

// New returns an Interpolator ticking at the given interval.
// A non-positive interval falls back to DefaultTickInterval.
func New(interval time.Duration) *Interpolator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Interpolator{
		interval: interval,
		entries:  make(map[string]*entry),
	}
}

// Resume applies an authoritative snapshot and starts (or restarts) the
// recurring tick for source. Any previously running tick for the source is
// cancelled before the new one starts; two live tickers for one source can
// never coexist.
func (i *Interpolator) Resume(source string, snapshot session.TimelineModel) {
	i.mu.Lock()
	defer i.mu.Unlock()

	e := i.obtain(source)
	i.cancel(e)
	e.apply(snapshot)

	stop := make(chan struct{})
	e.stop = stop
	go i.run(source, stop)
}

// Pause applies an authoritative snapshot without ticking. An existing tick
// for the source is cancelled; missing interpolation state is created frozen.
func (i *Interpolator) Pause(source string, snapshot session.TimelineModel) {
	i.mu.Lock()
	defer i.mu.Unlock()

	e := i.obtain(source)
	i.cancel(e)
	e.apply(snapshot)
}

// Freeze cancels any running tick for source while retaining the last known
// position and length. Used for statuses with no defined interpolation
// behavior (Closed, Opened, Changing, Stopped).
func (i *Interpolator) Freeze(source string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if e, ok := i.entries[source]; ok {
		i.cancel(e)
	}
}

// Stop cancels any running tick for source and discards its interpolation
// state entirely. Used on session removal.
func (i *Interpolator) Stop(source string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if e, ok := i.entries[source]; ok {
		i.cancel(e)
		delete(i.entries, source)
	}
}

// StopAll cancels every running tick and discards all interpolation state.
func (i *Interpolator) StopAll() {
	i.mu.Lock()
	defer i.mu.Unlock()

	for source, e := range i.entries {
		i.cancel(e)
		delete(i.entries, source)
	}
}

// Position returns the current interpolated view for source.
func (i *Interpolator) Position(source string) (Position, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	e, ok := i.entries[source]
	if !ok {
		return Position{}, false
	}
	return Position{
		PositionMs:    e.positionMs,
		LengthSeconds: e.lengthSeconds,
		Playing:       e.stop != nil,
	}, true
}

// Ticking reports whether a recurring tick is currently live for source.
func (i *Interpolator) Ticking(source string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	e, ok := i.entries[source]
	return ok && e.stop != nil
}

// run drives the recurring tick for one source until its stop channel closes.
// Each firing resolves the entry by source key; it never operates on state
// captured at timer-creation time.
func (i *Interpolator) run(source string, stop chan struct{}) {
	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			i.tick(source)
		}
	}
}

// tick advances the displayed position of source by one interval, clamped to
// the track length. Idempotent with respect to the next authoritative
// snapshot, which overwrites whatever ticking accumulated.
func (i *Interpolator) tick(source string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	e, ok := i.entries[source]
	if !ok || e.stop == nil {
		return
	}

	limit := int64(e.lengthSeconds * 1000)
	e.positionMs = util.Clamp(e.positionMs+i.interval.Milliseconds(), 0, limit)
}

// obtain returns the entry for source, creating it when absent.
func (i *Interpolator) obtain(source string) *entry {
	e, ok := i.entries[source]
	if !ok {
		e = &entry{}
		i.entries[source] = e
	}
	return e
}

// cancel stops the entry's ticker, if one is running. Callers hold i.mu.
func (i *Interpolator) cancel(e *entry) {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}

// apply overwrites the entry's display values from an authoritative snapshot,
// discarding any locally accumulated drift.
func (e *entry) apply(snapshot session.TimelineModel) {
	e.lengthSeconds = float64(snapshot.End) / TicksPerSecond
	limit := int64(e.lengthSeconds * 1000)
	e.positionMs = util.Clamp(snapshot.Position/TicksPerMilli, 0, limit)
}
