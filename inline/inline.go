// Package inline provides the application's non-interactive, scriptable
// execution mode: it prints the current sessions once and exits.
package inline

import (
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/timeline"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	records := options.Engine.Records()

	if options.Query != "" {
		records = filter(records, options.Query)
	}

	if options.Picker.IsPresent() {
		picker := options.Picker.MustGet()
		if choice := picker(records); choice != nil {
			records = []session.Record{*choice}
		} else {
			records = nil
		}
	}

	if options.Json {
		return writeJson(options.Out, records, options)
	}

	for _, record := range records {
		fmt.Fprintln(options.Out, line(record, options))
	}

	return nil
}

// filter keeps the records whose source or media metadata fuzzy-matches query.
func filter(records []session.Record, query string) []session.Record {
	var matched []session.Record
	for _, record := range records {
		haystack := strings.Join([]string{
			record.Source,
			record.Title(),
			record.Artist(),
		}, " ")

		if fuzzy.MatchFold(query, haystack) {
			matched = append(matched, record)
		}
	}
	return matched
}

// line renders one record as a single text row.
func line(record session.Record, options *Options) string {
	var b strings.Builder

	b.WriteString(record.Source)

	if title := record.Title(); title != "" {
		b.WriteString(": ")
		b.WriteString(title)
		if artist := record.Artist(); artist != "" {
			b.WriteString(" - ")
			b.WriteString(artist)
		}
	}

	b.WriteString(" [")
	b.WriteString(string(record.Status()))
	b.WriteString("]")

	if pos, ok := options.Engine.Position(record.Source); ok && pos.LengthSeconds > 0 {
		fmt.Fprintf(&b, " %s/%s", timeline.Clock(pos.PositionMs), timeline.LengthClock(pos.LengthSeconds))
	}

	return b.String()
}
