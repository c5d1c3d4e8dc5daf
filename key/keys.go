// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 15

// Provider Selection - these keys manage the registration and selection of media session providers.
const (
	ProvidersDefault = "providers.default"
)

// Timeline Interpolation - these keys govern the locally simulated playback position advancement.
const (
	TimelineTickInterval = "timeline.tick_interval"
)

// Artwork Handling - these keys control the materialization of session artwork resources.
const (
	ArtworkEnabled = "artwork.enabled"
)

// Listening History - these keys configure the persistence of the per-source listening log.
const (
	HistorySaveOnUpdate = "history.save_on_update"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the widget's styling and behavior.
const (
	TUIShowSource    = "tui.show_source"
	TUIShowArtwork   = "tui.show_artwork"
	TUIProgressWidth = "tui.progress_width"
	TUIMarkActive    = "tui.mark_active"
)

// Minimalist (Mini) Mode - these keys configure the specialized single-line display.
const (
	MiniRefreshInterval = "mini.refresh_interval"
)

// Logging - these keys configure the diagnostic log subsystem.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Command-Line Interface - these keys define global CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
