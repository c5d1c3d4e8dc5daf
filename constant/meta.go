// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Nowbar is the canonical application identifier used for filesystem paths and CLI branding.
	Nowbar = "nowbar"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Build metadata, injected at link time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is rendered above the root command help output.
const AsciiArtLogo = `
                         __
   ____  ____ _      __ / /_   ____ _ _____
  / __ \/ __ \ | /| / // __ \ / __ ` + "`" + `// ___/
 / / / / /_/ / |/ |/ // /_/ // /_/ // /
/_/ /_/\____/|__/|__//_.___/ \__,_//_/
`
