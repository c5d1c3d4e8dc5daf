// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/nowbar-cli/nowbar/color"
	"github.com/nowbar-cli/nowbar/icon"
	"github.com/nowbar-cli/nowbar/key"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/style"
	"github.com/nowbar-cli/nowbar/timeline"
	"github.com/spf13/viper"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case sessionsState:
		output = b.viewSessions()
	case filterState:
		output = b.viewFilter()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Now Playing"),
			"",
			b.spinnerC.View() + " Enumerating media sessions",
		},
	)
}

func (b *statefulBubble) viewSessions() string {
	lines := []string{
		style.Title("Now Playing"),
		"",
	}

	if b.query != "" {
		lines = append(lines, style.Faint(fmt.Sprintf("filter: %s", b.query)), "")
	}

	if len(b.records) == 0 {
		lines = append(lines, style.Faint("No media sessions"))
		return b.renderLines(true, lines)
	}

	for i, record := range b.records {
		lines = append(lines, b.renderSession(record, i == b.cursor)...)
	}

	return b.renderLines(true, lines)
}

// renderSession renders one session as a small block of lines.
func (b *statefulBubble) renderSession(record session.Record, cursor bool) []string {
	truncate := style.Truncate(b.width - 6)

	marker := "  "
	if cursor {
		marker = style.Fg(color.Orange)("> ")
	}

	header := statusIcon(record.Status())
	if viper.GetBool(key.TUIShowSource) {
		header += " " + style.Faint(record.Source)
	}
	if viper.GetBool(key.TUIMarkActive) && b.isActive(record) {
		header += " " + icon.Get(icon.Active)
	}

	title := record.Title()
	if title == "" {
		title = style.Faint("(no media)")
	} else {
		title = style.Fg(color.Purple)(title)
		if artist := record.Artist(); artist != "" {
			title += " - " + artist
		}
	}

	lines := []string{
		marker + truncate(header),
		"  " + truncate(icon.Get(icon.Note)+" "+title),
	}

	if pos, ok := b.options.Engine.Position(record.Source); ok && pos.LengthSeconds > 0 {
		bar := b.progressC.ViewAs(timeline.Percent(pos))
		clock := fmt.Sprintf("%s/%s", timeline.Clock(pos.PositionMs), timeline.LengthClock(pos.LengthSeconds))
		lines = append(lines, "  "+truncate(bar+" "+style.Faint(clock)))
	}

	if viper.GetBool(key.TUIShowArtwork) && record.Artwork != nil {
		lines = append(lines, "  "+truncate(style.Faint(record.Artwork.Path)))
	}

	lines = append(lines, "")
	return lines
}

func (b *statefulBubble) isActive(record session.Record) bool {
	id, ok := b.options.Engine.Active().Get()
	return ok && record.SessionID == id
}

func statusIcon(status session.Status) string {
	switch status {
	case session.StatusPlaying:
		return icon.Get(icon.Play)
	case session.StatusPaused:
		return icon.Get(icon.Pause)
	default:
		return icon.Get(icon.Progress)
	}
}

func (b *statefulBubble) viewFilter() string {
	lines := []string{
		style.Title("Filter Sessions"),
		"",
		b.inputC.View(),
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(color.Red).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)

	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
