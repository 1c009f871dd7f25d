package sqlite

import "time"

// SessionRecord is one row of the sessions table
type SessionRecord struct {
	ID                int64
	Title             string
	StartTime         time.Time
	EndTime           time.Time
	DurationSeconds   int64
	DurationFormatted string
}

// GoalRecord is one row of the goals table.
// Position keeps ledger order stable across full rewrites.
type GoalRecord struct {
	Position            int64
	Title               string
	EstimateSeconds     int64
	EstimateFormatted   string
	EstimateTimestamp   *time.Time // nil when no estimate has been set
	Deadline            *time.Time
	TimeWorkedSeconds   int64
	TimeWorkedFormatted string
	StartBy             *time.Time
}
