// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nowbar-cli/nowbar/internal/ui"
	"github.com/nowbar-cli/nowbar/key"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/spf13/viper"
)

type (
	// bootstrappedMsg signals that the provider enumeration finished.
	bootstrappedMsg struct{}

	// refreshMsg redraws interpolated positions on the local tick cadence.
	refreshMsg struct{}

	// engineUpdateMsg signals that an ingested event changed the session set.
	engineUpdateMsg struct{}
)

// Init kicks off provider bootstrap alongside the spinner.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, textinput.Blink, b.bootstrap())
}

func (b *statefulBubble) bootstrap() tea.Cmd {
	return func() tea.Msg {
		if err := b.options.Engine.Bootstrap(); err != nil {
			return err
		}
		return bootstrappedMsg{}
	}
}

// tick schedules the next interpolation redraw.
func (b *statefulBubble) tick() tea.Cmd {
	interval := time.Duration(viper.GetInt(key.TimelineTickInterval)) * time.Millisecond
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// waitForUpdate blocks on the engine's coalesced change signal.
func (b *statefulBubble) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-b.options.Engine.Updates()
		return engineUpdateMsg{}
	}
}

// dispatch forwards a control for the selected session and raises a
// transient notification naming what was sent where.
func (b *statefulBubble) dispatch(control session.ControlKind) tea.Cmd {
	record, ok := b.selected()
	if !ok {
		return nil
	}

	b.options.Engine.Dispatch(record.Source, control)
	return ui.Notify(fmt.Sprintf("%s sent to %s", control, record.Source))
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Ephemeral notifications capture `string` and `ui.ClearNotificationMsg`.
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case bootstrappedMsg:
		b.refresh()
		b.newState(sessionsState)
		return b, tea.Batch(cmd, b.tick(), b.waitForUpdate())
	case refreshMsg:
		b.refresh()
		return b, tea.Batch(cmd, b.tick())
	case engineUpdateMsg:
		b.refresh()
		return b, tea.Batch(cmd, b.waitForUpdate())
	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, spinnerCmd)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		}

		return b.handleKey(msg, cmd)
	}

	return b, cmd
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch b.state {
	case sessionsState:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.up):
			if b.cursor > 0 {
				b.cursor--
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if b.cursor < len(b.records)-1 {
				b.cursor++
			}
		case bubblesKey.Matches(msg, b.keymap.playPause):
			return b, tea.Batch(cmd, b.dispatch(session.ControlTogglePlayPause))
		case bubblesKey.Matches(msg, b.keymap.next):
			return b, tea.Batch(cmd, b.dispatch(session.ControlSkipNext))
		case bubblesKey.Matches(msg, b.keymap.prev):
			return b, tea.Batch(cmd, b.dispatch(session.ControlSkipPrevious))
		case bubblesKey.Matches(msg, b.keymap.forward):
			return b, tea.Batch(cmd, b.dispatch(session.ControlFastForward))
		case bubblesKey.Matches(msg, b.keymap.rewind):
			return b, tea.Batch(cmd, b.dispatch(session.ControlRewind))
		case bubblesKey.Matches(msg, b.keymap.filter):
			b.inputC.SetValue(b.query)
			b.inputC.Focus()
			b.newState(filterState)
		case bubblesKey.Matches(msg, b.keymap.back):
			b.query = ""
			b.refresh()
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		}

	case filterState:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.query = b.inputC.Value()
			b.inputC.Blur()
			b.refresh()
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
		default:
			var inputCmd tea.Cmd
			b.inputC, inputCmd = b.inputC.Update(msg)
			return b, tea.Batch(cmd, inputCmd)
		}

	case errorState:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
		}
	}

	return b, cmd
}
