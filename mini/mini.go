// Package mini implements a lightweight single-line now playing display,
// re-rendered in place on a fixed cadence.
package mini

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nowbar-cli/nowbar/engine"
	"github.com/nowbar-cli/nowbar/key"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/timeline"
	"github.com/nowbar-cli/nowbar/util"
	"github.com/spf13/viper"
)

var truncateAt = 100

type Options struct {
	Engine *engine.Engine
}

func Run(options *Options) error {
	go options.Engine.Run()
	defer options.Engine.Close()

	if err := options.Engine.Bootstrap(); err != nil {
		return err
	}

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	interval := time.Duration(viper.GetInt(key.MiniRefreshInterval)) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	erase := func() {}
	for {
		erase()
		erase = util.PrintErasable(render(options.Engine))

		select {
		case <-interrupt:
			erase()
			fmt.Println()
			return nil
		case <-ticker.C:
		}
	}
}

// render builds the single display line for the most relevant session.
func render(e *engine.Engine) string {
	record, ok := pick(e)
	if !ok {
		return "No media sessions"
	}

	line := statusGlyph(record.Status())

	if title := record.Title(); title != "" {
		line += " " + title
		if artist := record.Artist(); artist != "" {
			line += " - " + artist
		}
	} else {
		line += " (no media)"
	}

	if pos, ok := e.Position(record.Source); ok && pos.LengthSeconds > 0 {
		line += fmt.Sprintf(" [%s/%s]", timeline.Clock(pos.PositionMs), timeline.LengthClock(pos.LengthSeconds))
	}

	line += fmt.Sprintf(" (%s)", record.Source)

	if len(line) > truncateAt {
		line = line[:truncateAt]
	}
	return line
}

// pick chooses the session to display: the provider-reported active one when
// known, otherwise the first playing one, otherwise the first.
func pick(e *engine.Engine) (session.Record, bool) {
	records := e.Records()
	if len(records) == 0 {
		return session.Record{}, false
	}

	if activeID, ok := e.Active().Get(); ok {
		for _, record := range records {
			if record.SessionID == activeID {
				return record, true
			}
		}
	}

	for _, record := range records {
		if record.Status() == session.StatusPlaying {
			return record, true
		}
	}

	return records[0], true
}

func statusGlyph(status session.Status) string {
	switch status {
	case session.StatusPlaying:
		return ">"
	case session.StatusPaused:
		return "||"
	default:
		return "--"
	}
}
