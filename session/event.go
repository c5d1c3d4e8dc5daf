package session

// Event is the closed set of notifications a provider emits. Consumers switch
// over the concrete types exhaustively; a new event kind fails loudly at the
// switch rather than being silently ignored.
type Event interface {
	event()
}

// SessionCreate announces a newly enumerated session source.
type SessionCreate struct {
	Source    string `json:"source"`
	SessionID uint64 `json:"sessionId"`
}

// SessionUpdate carries a fresh authoritative session model, optionally with
// new artwork bytes. Artwork is sparse: absent bytes mean "unchanged".
type SessionUpdate struct {
	Source    string `json:"source"`
	SessionID uint64 `json:"sessionId"`
	Model     Model  `json:"sessionModel"`
	Image     []byte `json:"image,omitempty"`
}

// SessionRemove announces that the session with the given id disappeared.
type SessionRemove struct {
	SessionID uint64 `json:"sessionId"`
}

// ActiveSessionChange marks the provider-reported active session. Advisory:
// it mutates no session state.
type ActiveSessionChange struct {
	SessionID uint64 `json:"sessionId"`
}

// ActiveSessionRemove announces that no sessions remain.
type ActiveSessionRemove struct{}

func (SessionCreate) event()       {}
func (SessionUpdate) event()       {}
func (SessionRemove) event()       {}
func (ActiveSessionChange) event() {}
func (ActiveSessionRemove) event() {}
