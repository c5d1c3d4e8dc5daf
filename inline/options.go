// Package inline provides the application's non-interactive, scriptable
// execution mode: it prints the current sessions once and exits.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nowbar-cli/nowbar/engine"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/util"
	"github.com/samber/mo"
)

// SessionPicker narrows the listed records down to a single one.
type SessionPicker func([]session.Record) *session.Record

type Options struct {
	Out    io.Writer
	Engine *engine.Engine
	Json   bool

	// Query fuzzy-filters sessions by source and media metadata.
	Query string

	Picker mo.Option[SessionPicker]
}

// ParsePicker builds a SessionPicker from its CLI description.
func ParsePicker(kind, value string) (SessionPicker, error) {
	switch kind {
	case "first":
		return func(records []session.Record) *session.Record {
			if len(records) == 0 {
				return nil
			}
			return &records[0]
		}, nil
	case "last":
		return func(records []session.Record) *session.Record {
			if len(records) == 0 {
				return nil
			}
			return &records[len(records)-1]
		}, nil
	case "exact":
		return func(records []session.Record) *session.Record {
			for i, record := range records {
				if record.Source == value {
					return &records[i]
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(records []session.Record) *session.Record {
			if len(records) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(records)-1))
			return &records[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}
