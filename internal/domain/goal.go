package domain

import (
	"strings"
	"time"

	"focus-tracker/internal/duration"
)

// Goal is a named target tracked against the sessions sharing its title.
// TimeWorked*, EstimateFormatted and StartBy are derived and recomputed on
// every ledger load.
type Goal struct {
	Title               string
	EstimateSeconds     int
	EstimateFormatted   string
	EstimateTimestamp   *time.Time
	Deadline            *time.Time
	TimeWorkedSeconds   int
	TimeWorkedFormatted string
	StartBy             *time.Time
}

// NewGoal creates a blank goal for title.
func NewGoal(title string) Goal {
	return Goal{
		Title:               strings.TrimSpace(title),
		TimeWorkedFormatted: duration.FormatCompact(0),
	}
}

// HasEstimate reports whether an estimate is currently set.
func (g Goal) HasEstimate() bool {
	return g.EstimateSeconds > 0
}

// InWindow reports whether a session counts toward this goal's time worked.
func (g Goal) InWindow(s Session) bool {
	if s.Key() != g.Title {
		return false
	}
	if g.EstimateTimestamp == nil {
		return true
	}
	return !s.Start.Before(*g.EstimateTimestamp)
}

// RemainingSeconds returns estimate minus time worked, never below zero.
func (g Goal) RemainingSeconds() int {
	remaining := g.EstimateSeconds - g.TimeWorkedSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetEstimate assigns an estimate and restarts the estimate window at now.
func (g *Goal) SetEstimate(seconds int, now time.Time) {
	g.EstimateSeconds = seconds
	g.EstimateFormatted = duration.FormatCompact(seconds)
	// persisted with second precision
	stamp := now.Truncate(time.Second)
	g.EstimateTimestamp = &stamp
}

// SetDeadline assigns a deadline date. The estimate window is unchanged.
func (g *Goal) SetDeadline(date time.Time) {
	d := Date(date)
	g.Deadline = &d
}

// Finish clears planning fields and keeps the time worked figures.
func (g *Goal) Finish() {
	g.EstimateSeconds = 0
	g.EstimateFormatted = ""
	g.EstimateTimestamp = nil
	g.Deadline = nil
	g.StartBy = nil
}

// Equal compares every persisted field.
func (g Goal) Equal(other Goal) bool {
	return g.Title == other.Title &&
		g.EstimateSeconds == other.EstimateSeconds &&
		g.EstimateFormatted == other.EstimateFormatted &&
		equalTime(g.EstimateTimestamp, other.EstimateTimestamp) &&
		equalTime(g.Deadline, other.Deadline) &&
		g.TimeWorkedSeconds == other.TimeWorkedSeconds &&
		g.TimeWorkedFormatted == other.TimeWorkedFormatted &&
		equalTime(g.StartBy, other.StartBy)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// FindGoal returns the index of the goal with the given title, or -1.
func FindGoal(goals []Goal, title string) int {
	title = strings.TrimSpace(title)
	for i, g := range goals {
		if g.Title == title {
			return i
		}
	}
	return -1
}
