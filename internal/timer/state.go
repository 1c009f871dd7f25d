// Package timer runs an interactive focus session: a live clock that can be paused,
// then saved, discarded or resumed from a prompt.
package timer

import (
	"context"
	"time"

	"focus-tracker/internal/services"
)

// State is where the session state machine currently is
type State int

const (
	Running State = iota
	Paused
	Saved
	Discarded
	Interrupted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Saved:
		return "saved"
	case Discarded:
		return "discarded"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended
func (s State) Terminal() bool {
	return s == Saved || s == Discarded || s == Interrupted
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// Input reads keyboard input, waiting at most timeout.
// ok is false when nothing arrived in time.
type Input interface {
	ReadKey(timeout time.Duration) (key byte, ok bool, err error)
	ReadLine(timeout time.Duration) (line string, ok bool, err error)
}

// InputMode switches the terminal between single-key and line input
type InputMode interface {
	Enter() error
	Restore() error
}

// SessionSaver persists a finished session
type SessionSaver interface {
	Record(ctx context.Context, title string, start, end time.Time, durationSeconds int) (*services.SaveResult, error)
}

// Result is the outcome of a session
type Result struct {
	State          State                `json:"state"`
	ElapsedSeconds int                  `json:"elapsed_seconds"`
	Saved          *services.SaveResult `json:"saved,omitempty"`
}
