// Package alerts prints one-line status notifications for sync runs.
package alerts

import (
	"fmt"
	"io"

	"github.com/agentstation/stocksync/internal/cmd/emoji"
	"github.com/agentstation/stocksync/pkg/sync"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure.
	LevelError Level = iota
	// LevelWarning indicates a partial outcome.
	LevelWarning
	// LevelInfo indicates a pass that changed nothing.
	LevelInfo
	// LevelSuccess indicates successful completion.
	LevelSuccess
)

// Icon returns the symbol for the level.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return emoji.Error
	case LevelWarning:
		return emoji.Warning
	case LevelInfo:
		return emoji.DryRun
	default:
		return emoji.Success
	}
}

// Alert is a single status line.
type Alert struct {
	Level   Level
	Message string
	Err     error
}

// String returns the alert with its icon.
func (a Alert) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s %s: %v", a.Level.Icon(), a.Message, a.Err)
	}
	return fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
}

// ForResult builds one alert per synced target plus a final alert when the
// run failed. Targets after the failing one never ran and are not listed.
func ForResult(result *sync.Result, err error) []Alert {
	var out []Alert
	if result != nil {
		for _, t := range result.Targets {
			if t == nil {
				continue
			}
			level := LevelSuccess
			if t.DryRun {
				level = LevelInfo
			}
			out = append(out, Alert{Level: level, Message: t.Summary()})
		}
	}
	if err != nil {
		level := LevelError
		if len(out) > 0 {
			level = LevelWarning
		}
		out = append(out, Alert{Level: level, Message: "sync stopped", Err: err})
	}
	return out
}

// Write prints alerts one per line.
func Write(w io.Writer, alerts []Alert) error {
	for _, a := range alerts {
		if _, err := fmt.Fprintln(w, a.String()); err != nil {
			return err
		}
	}
	return nil
}
