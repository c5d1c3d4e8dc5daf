package session

// Provider is the consumed boundary to one native media session backend.
type Provider interface {
	// Name identifies the backend.
	Name() string

	// CurrentSessions enumerates the full current state. Used once at
	// startup and on re-sync; events carry everything afterwards.
	CurrentSessions() ([]Snapshot, error)

	// Control dispatches a transport command for one session source.
	Control(source string, control ControlKind) error

	// Events returns the provider's notification stream. The channel closes
	// when the provider shuts down.
	Events() <-chan Event

	// Close releases the backend.
	Close() error
}
