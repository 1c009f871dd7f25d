package domain

import (
	"strings"
	"time"

	"focus-tracker/internal/duration"
)

// UnnamedTitle is the bucket label for sessions recorded without a title.
const UnnamedTitle = "(unnamed)"

// Session is one completed block of focused work.
// DurationSeconds is authoritative; Start and End are informational.
type Session struct {
	Title           string
	Start           time.Time
	End             time.Time
	DurationSeconds int
}

// NewSession creates a Session, clamping a negative duration to zero.
func NewSession(title string, start, end time.Time, durationSeconds int) Session {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return Session{
		Title:           title,
		Start:           start,
		End:             end,
		DurationSeconds: durationSeconds,
	}
}

// Key returns the trimmed title used to match sessions against goals.
func (s Session) Key() string {
	return strings.TrimSpace(s.Title)
}

// IsUnnamed reports whether the session has a blank title.
func (s Session) IsUnnamed() bool {
	return s.Key() == ""
}

// DurationFormatted returns the compact form persisted alongside the duration.
func (s Session) DurationFormatted() string {
	return duration.FormatCompact(s.DurationSeconds)
}

// DisplayTitle returns the title or the unnamed bucket label.
func (s Session) DisplayTitle() string {
	if s.IsUnnamed() {
		return UnnamedTitle
	}
	return s.Key()
}

// SessionTitles returns the distinct non-blank titles in first-seen order.
func SessionTitles(sessions []Session) []string {
	seen := make(map[string]bool)
	var titles []string
	for _, s := range sessions {
		key := s.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		titles = append(titles, key)
	}
	return titles
}
