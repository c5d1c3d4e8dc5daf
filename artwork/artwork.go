// Package artwork manages the lifecycle of display-ready image resources derived from raw session artwork.
//
// Each session source owns at most one live handle at any time. Replacing a
// handle materializes the new resource before the superseded one is released,
// so a renderer never observes a gap between two artwork payloads.
package artwork

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nowbar-cli/nowbar/filesystem"
	"github.com/nowbar-cli/nowbar/log"
)

// Handle is an exclusively-owned reference to a materialized artwork resource.
// It is created by Manager.Set and invalidated by exactly one release.
type Handle struct {
	Source string
	Path   string
	Format string
	Width  int
	Height int
}

// Manager converts raw image buffers into materialized artwork files under a
// dedicated directory and tracks the single live handle per session source.
type Manager struct {
	mu   sync.Mutex
	dir  string
	live map[string]*Handle
	seq  uint64
}

// NewManager returns a Manager materializing artwork under dir.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:  dir,
		live: make(map[string]*Handle),
	}
}

// Set validates raw as an image, materializes it, and registers the resulting
// handle as the live artwork for source. A previously live handle for the same
// source is released after the new resource is in place. Malformed bytes leave
// the previous handle untouched and return an error.
func (m *Manager) Set(source string, raw []byte) (*Handle, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode artwork for %s: %w", source, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	path := filepath.Join(m.dir, fmt.Sprintf("%s-%d.%s", sanitizeSource(source), m.seq, format))
	if err := filesystem.API().WriteFile(path, raw, 0644); err != nil {
		return nil, fmt.Errorf("materialize artwork for %s: %w", source, err)
	}

	handle := &Handle{
		Source: source,
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	previous := m.live[source]
	m.live[source] = handle
	if previous != nil {
		m.release(previous)
	}

	return handle, nil
}

// Live returns the currently registered handle for source, if any.
func (m *Manager) Live(source string) (*Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.live[source]
	return h, ok
}

// ReleaseFor releases the live handle for source, if any.
func (m *Manager) ReleaseFor(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.live[source]; ok {
		delete(m.live, source)
		m.release(h)
	}
}

// ReleaseAll releases every live handle. Used on store-wide teardown.
func (m *Manager) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for source, h := range m.live {
		delete(m.live, source)
		m.release(h)
	}
}

// LiveCount returns the number of currently registered handles.
func (m *Manager) LiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.live)
}

func (m *Manager) release(h *Handle) {
	if err := filesystem.API().Remove(h.Path); err != nil {
		log.Warnf("failed to release artwork %s: %v", h.Path, err)
	}
}

// sanitizeSource normalizes a provider source identifier into a filename-safe stem.
func sanitizeSource(source string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return replacer.Replace(source)
}
