// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nowbar-cli/nowbar/engine"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Engine *engine.Engine
}

// Run initializes and executes the primary Bubble Tea application loop. The
// engine's ingestion loop runs alongside the program and stops with it.
func Run(options *Options) error {
	go options.Engine.Run()
	defer options.Engine.Close()

	bubble := newBubble(options)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
