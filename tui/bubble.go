// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nowbar-cli/nowbar/internal/ui"
	"github.com/nowbar-cli/nowbar/key"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/util"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the dashboard state and its component models.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	progressC progress.Model
	helpC     help.Model

	records []session.Record
	cursor  int
	query   string

	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

func newBubble(options *Options) *statefulBubble {
	input := textinput.New()
	input.Placeholder = "source, title or artist"

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = viper.GetInt(key.TUIProgressWidth)

	b := &statefulBubble{
		keymap:    newStatefulKeymap(),
		spinnerC:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		inputC:    input,
		progressC: bar,
		helpC:     help.New(),
		notifier:  &ui.Model{},
		options:   options,
	}

	b.setState(loadingState)
	return b
}

// raiseError dispatches a terminal error and transitions to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the workflow and its keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, recording the previous state in the
// navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to the child components.
func (b *statefulBubble) resize(width, height int) {
	b.width = width
	b.height = height
	b.helpC.Width = width

	if configured := viper.GetInt(key.TUIProgressWidth); configured <= 0 || configured > width-10 {
		b.progressC.Width = util.Max(10, width-10)
	}
}

// refresh re-reads the engine state, applying the active fuzzy filter and
// keeping the cursor on a valid row.
func (b *statefulBubble) refresh() {
	records := b.options.Engine.Records()

	if b.query != "" {
		var matched []session.Record
		for _, record := range records {
			haystack := strings.Join([]string{
				record.Source,
				record.Title(),
				record.Artist(),
			}, " ")

			if fuzzy.MatchFold(b.query, haystack) {
				matched = append(matched, record)
			}
		}
		records = matched
	}

	b.records = records

	if len(b.records) == 0 {
		b.cursor = 0
		return
	}
	b.cursor = util.Clamp(b.cursor, 0, len(b.records)-1)
}

// selected returns the record under the cursor.
func (b *statefulBubble) selected() (session.Record, bool) {
	if len(b.records) == 0 {
		return session.Record{}, false
	}
	return b.records[b.cursor], true
}
