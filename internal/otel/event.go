// Package otel records what hnbar does as a JSONL event journal.
//
// Events are written asynchronously by a drain goroutine. A RingBuffer can be
// attached to keep the most recent events in memory for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level is an event severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind is "<subsystem>.<action>".
type EventKind string

const (
	KindActionDispatch EventKind = "action.dispatch"

	KindFetchTop   EventKind = "fetch.top"
	KindFetchItem  EventKind = "fetch.item"
	KindFetchError EventKind = "fetch.error"

	KindStoreError EventKind = "store.error"

	KindShellOpen  EventKind = "shell.open"
	KindShellError EventKind = "shell.error"

	KindThresholdNotice EventKind = "notice.threshold"
	KindRefreshTick     EventKind = "coord.refresh"

	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"
)

// Event is one journal line. Only Kind is required.
type Event struct {
	Time      time.Time     `json:"t"`
	Level     Level         `json:"level,omitempty"`
	Kind      EventKind     `json:"kind"`
	Comp      string        `json:"comp,omitempty"` // "controller", "ui", "coord", "main"
	SessionID string        `json:"session_id,omitempty"`
	Action    string        `json:"action,omitempty"`
	StoryID   int           `json:"story_id,omitempty"`
	URL       string        `json:"url,omitempty"`
	Count     int           `json:"count,omitempty"`
	Dur       time.Duration `json:"-"`
	DurMs     float64       `json:"dur_ms,omitempty"`
	Err       string        `json:"err,omitempty"`
	Msg       string        `json:"msg,omitempty"`
}

// MarshalJSON writes Dur as dur_ms.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	p := plain(e)
	if e.Dur > 0 {
		p.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(p)
}

// Summary is a one-line rendering used by the debug overlay.
func (e Event) Summary() string {
	s := e.Time.Format("15:04:05") + " " + string(e.Kind)
	switch {
	case e.Action != "":
		s += " " + e.Action
	case e.URL != "":
		s += " " + e.URL
	}
	if e.Err != "" {
		s += " err=" + e.Err
	} else if e.Msg != "" {
		s += " " + e.Msg
	}
	return s
}
