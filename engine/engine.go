// Package engine connects a session provider to the canonical store and the
// timeline interpolator: it ingests the provider's event stream, applies each
// event as one store transition, and dispatches transport controls back.
package engine

import (
	"sync"

	"github.com/nowbar-cli/nowbar/key"
	"github.com/nowbar-cli/nowbar/log"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/store"
	"github.com/nowbar-cli/nowbar/timeline"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Recorder observes applied session updates. Implemented by history.Saver.
type Recorder interface {
	RecordUpdate(record session.Record)
}

// Engine owns the ingestion loop for one provider.
type Engine struct {
	provider session.Provider
	store    *store.Store
	timeline *timeline.Interpolator
	recorder Recorder

	mu     sync.Mutex
	active mo.Option[uint64]

	updates chan struct{}
}

// New wires an engine to its collaborators. The recorder may be nil.
func New(provider session.Provider, s *store.Store, itp *timeline.Interpolator, recorder Recorder) *Engine {
	return &Engine{
		provider: provider,
		store:    s,
		timeline: itp,
		recorder: recorder,
		updates:  make(chan struct{}, 1),
	}
}

// Bootstrap seeds the store from the provider's full enumeration and primes
// interpolation for every session it reported.
func (e *Engine) Bootstrap() error {
	snapshots, err := e.provider.CurrentSessions()
	if err != nil {
		return err
	}

	e.store.ApplySnapshot(snapshots)
	for _, snap := range snapshots {
		e.syncTimeline(snap.Source, snap.Session)
	}

	e.notify()
	return nil
}

// Run consumes the provider's event stream until it closes. Call Close to
// shut the provider down and unblock Run.
func (e *Engine) Run() {
	for ev := range e.provider.Events() {
		e.Apply(ev)
	}
}

// Apply folds one provider event into the store and the interpolator.
func (e *Engine) Apply(ev session.Event) {
	switch ev := ev.(type) {
	case session.SessionCreate:
		e.store.ApplyCreate(ev.Source, ev.SessionID)

	case session.SessionUpdate:
		e.store.ApplyUpdate(ev.Source, ev.SessionID, ev.Model, ev.Image)
		e.syncTimeline(ev.Source, ev.Model)
		e.record(ev.Source)

	case session.SessionRemove:
		e.store.ApplyRemove(ev.SessionID)
		e.dropActive(ev.SessionID)

	case session.ActiveSessionChange:
		e.mu.Lock()
		e.active = mo.Some(ev.SessionID)
		e.mu.Unlock()

	case session.ActiveSessionRemove:
		e.store.ApplyRemoveAll()
		e.mu.Lock()
		e.active = mo.None[uint64]()
		e.mu.Unlock()

	default:
		log.Warnf("unhandled event %T", ev)
	}

	e.notify()
}

// Control dispatches a transport control synchronously and reports the
// provider's verdict. The resulting state change still arrives through the
// event stream.
func (e *Engine) Control(source string, control session.ControlKind) error {
	return e.provider.Control(source, control)
}

// Dispatch forwards a transport control to the provider without blocking the
// caller. Outcomes surface through the event stream; failures are only logged.
func (e *Engine) Dispatch(source string, control session.ControlKind) {
	go func() {
		if err := e.Control(source, control); err != nil {
			log.Warnf("control %s for %s failed: %v", control, source, err)
		}
	}()
}

// Close shuts the provider down, which in turn ends Run, and discards all
// interpolation state.
func (e *Engine) Close() error {
	err := e.provider.Close()
	e.timeline.StopAll()
	return err
}

// Records returns the current session records, sorted ascending by source.
func (e *Engine) Records() []session.Record {
	return e.store.Snapshot()
}

// Position returns the interpolated timeline view for source.
func (e *Engine) Position(source string) (timeline.Position, bool) {
	return e.timeline.Position(source)
}

// Active returns the provider-reported active session id, when known.
func (e *Engine) Active() mo.Option[uint64] {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active
}

// Updates signals coalesced state changes; consumers re-render on receive.
func (e *Engine) Updates() <-chan struct{} {
	return e.updates
}

// syncTimeline reconciles interpolation with a fresh authoritative model.
// Playing ticks, Paused holds at the reported position, everything else
// freezes whatever was last displayed.
func (e *Engine) syncTimeline(source string, model session.Model) {
	tl, hasTimeline := model.Timeline.Get()

	status := session.StatusStopped
	if playback, ok := model.Playback.Get(); ok {
		status = playback.Status
	}

	switch {
	case status == session.StatusPlaying && hasTimeline:
		e.timeline.Resume(source, tl)
	case status == session.StatusPaused && hasTimeline:
		e.timeline.Pause(source, tl)
	default:
		e.timeline.Freeze(source)
	}
}

// record feeds the updated session to the listening history, when enabled.
func (e *Engine) record(source string) {
	if e.recorder == nil || !viper.GetBool(key.HistorySaveOnUpdate) {
		return
	}
	if record, ok := e.store.Get(source); ok {
		e.recorder.RecordUpdate(record)
	}
}

// dropActive clears the advisory active id if it pointed at a removed session.
func (e *Engine) dropActive(sessionID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id, ok := e.active.Get(); ok && id == sessionID {
		e.active = mo.None[uint64]()
	}
}

func (e *Engine) notify() {
	select {
	case e.updates <- struct{}{}:
	default:
	}
}
