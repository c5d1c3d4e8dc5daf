// Package demo implements a deterministic, self-contained media session
// provider. It simulates a couple of desktop media apps so the widget can run
// and be exercised without any native OS session backend.
package demo

import (
	"bytes"
	"fmt"
	"image"
	imagecolor "image/color"
	"image/png"
	"sync"
	"time"

	"github.com/nowbar-cli/nowbar/log"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/timeline"
	"github.com/samber/mo"
)

// ID is the registry name of this provider.
const ID = "demo"

// updateInterval is the cadence of authoritative updates the simulation emits.
const updateInterval = 2 * time.Second

type track struct {
	title  string
	artist string
	album  string
	length time.Duration
}

type simSession struct {
	source   string
	id       uint64
	playlist []track
	index    int
	status   session.Status
	position time.Duration

	// artDirty marks that the next emitted update must carry artwork bytes.
	// Artwork is sparse: it is re-sent only on track changes.
	artDirty bool
}

// Demo is a session.Provider backed by an in-process simulation.
type Demo struct {
	mu       sync.Mutex
	sessions map[string]*simSession
	events   chan session.Event
	stop     chan struct{}
	once     sync.Once
}

// New returns a running demo provider with two simulated media apps.
func New() *Demo {
	d := &Demo{
		sessions: make(map[string]*simSession),
		events:   make(chan session.Event, 16),
		stop:     make(chan struct{}),
	}

	d.sessions["Spotify.exe"] = &simSession{
		source: "Spotify.exe",
		id:     1,
		status: session.StatusPlaying,
		playlist: []track{
			{"Midnight City", "M83", "Hurry Up, We're Dreaming", 4*time.Minute + 3*time.Second},
			{"Nightcall", "Kavinsky", "OutRun", 4*time.Minute + 18*time.Second},
			{"Genesis", "Justice", "Cross", 3*time.Minute + 54*time.Second},
		},
		artDirty: true,
	}
	d.sessions["chrome.exe"] = &simSession{
		source: "chrome.exe",
		id:     2,
		status: session.StatusPaused,
		playlist: []track{
			{"Lo-fi Beats to Focus", "ChilledCow", "Live", 90 * time.Minute},
		},
		artDirty: true,
		position: 12 * time.Minute,
	}

	go d.run()
	return d
}

// Name implements session.Provider.
func (d *Demo) Name() string { return ID }

// CurrentSessions implements session.Provider.
func (d *Demo) CurrentSessions() ([]session.Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var snapshots []session.Snapshot
	for _, sim := range d.sessions {
		snapshots = append(snapshots, session.Snapshot{
			Source:    sim.source,
			SessionID: sim.id,
			Session:   sim.model(),
			Image:     sim.artwork(),
		})
	}
	return snapshots, nil
}

// Control implements session.Provider. State changes surface through the
// event stream rather than the return value: the resulting update event is
// the single source of truth, exactly like a native backend.
func (d *Demo) Control(source string, control session.ControlKind) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sim, ok := d.sessions[source]
	if !ok {
		return fmt.Errorf("unknown session source %q", source)
	}

	switch control {
	case session.ControlPlay:
		sim.status = session.StatusPlaying
	case session.ControlPause:
		sim.status = session.StatusPaused
	case session.ControlTogglePlayPause:
		if sim.status == session.StatusPlaying {
			sim.status = session.StatusPaused
		} else {
			sim.status = session.StatusPlaying
		}
	case session.ControlFastForward:
		sim.seek(10 * time.Second)
	case session.ControlRewind:
		sim.seek(-10 * time.Second)
	case session.ControlSkipNext:
		sim.skip(1)
	case session.ControlSkipPrevious:
		sim.skip(-1)
	default:
		return fmt.Errorf("unsupported control %q", control)
	}

	d.emit(sim.update())
	return nil
}

// Events implements session.Provider.
func (d *Demo) Events() <-chan session.Event {
	return d.events
}

// Close implements session.Provider.
func (d *Demo) Close() error {
	d.once.Do(func() {
		close(d.stop)
	})
	return nil
}

// run drives the simulation, emitting authoritative updates on a fixed cadence.
func (d *Demo) run() {
	ticker := time.NewTicker(updateInterval)
	defer ticker.Stop()
	defer close(d.events)

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.advance()
		}
	}
}

// advance moves every playing session forward and emits its update event.
func (d *Demo) advance() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, sim := range d.sessions {
		if sim.status == session.StatusPlaying {
			sim.position += updateInterval
			if sim.position >= sim.current().length {
				sim.skip(1)
			}
		}
		d.emit(sim.update())
	}
}

// emit delivers an event without ever blocking the simulation. Callers hold d.mu.
func (d *Demo) emit(ev session.Event) {
	select {
	case d.events <- ev:
	case <-d.stop:
	default:
		log.Debug("demo provider dropped an event: consumer too slow")
	}
}

func (s *simSession) current() track {
	return s.playlist[s.index]
}

// skip moves by delta through the playlist, wrapping around, and marks the
// artwork as changed.
func (s *simSession) skip(delta int) {
	n := len(s.playlist)
	s.index = ((s.index+delta)%n + n) % n
	s.position = 0
	s.artDirty = true
}

func (s *simSession) seek(delta time.Duration) {
	s.position += delta
	if s.position < 0 {
		s.position = 0
	}
	if max := s.current().length; s.position > max {
		s.position = max
	}
}

// model renders the authoritative session model in provider time units.
func (s *simSession) model() session.Model {
	t := s.current()
	return session.Model{
		Source: s.source,
		Playback: mo.Some(session.PlaybackModel{
			Status: s.status,
			Rate:   1,
			Repeat: session.RepeatList,
		}),
		Timeline: mo.Some(session.TimelineModel{
			Start:         0,
			End:           int64(t.length/time.Second) * timeline.TicksPerSecond,
			Position:      int64(s.position/time.Millisecond) * timeline.TicksPerMilli,
			LastUpdatedAt: time.Now().UnixMilli(),
		}),
		Media: mo.Some(session.MediaModel{
			Title:  t.title,
			Artist: t.artist,
			Album:  t.album,
		}),
	}
}

// update builds the session_update event, attaching artwork only when the
// track changed since the last emission.
func (s *simSession) update() session.SessionUpdate {
	ev := session.SessionUpdate{
		Source:    s.source,
		SessionID: s.id,
		Model:     s.model(),
	}
	if s.artDirty {
		ev.Image = s.artwork()
		s.artDirty = false
	}
	return ev
}

// artwork synthesizes a small PNG cover tinted per track.
func (s *simSession) artwork() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	tint := imagecolor.RGBA{
		R: uint8(60 * (s.index + 1)),
		G: uint8(40 * (s.index + 2)),
		B: 0xB0,
		A: 0xFF,
	}
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, tint)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
