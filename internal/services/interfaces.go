package services

import (
	"context"
	"time"

	"focus-tracker/internal/domain"
)

// SaveResult reports a persisted session and where it was written
type SaveResult struct {
	Session  domain.Session `json:"session"`
	Location string         `json:"location"`
}

// BackfillRequest describes a past session entered by hand.
// Missing bounds are inferred from the duration.
type BackfillRequest struct {
	Title           string     `json:"title"`
	DurationSeconds int        `json:"duration_seconds"`
	Start           *time.Time `json:"start,omitempty"`
	End             *time.Time `json:"end,omitempty"`
}

// GoalSummary is a goal together with figures derived for display
type GoalSummary struct {
	Goal               domain.Goal `json:"goal"`
	TotalWorkedSeconds int         `json:"total_worked_seconds"` // lifetime, ignoring the estimate window
	RemainingSeconds   int         `json:"remaining_seconds"`
}

// StatsFilter restricts the sessions a statistics query looks at.
// Since and Until compare calendar dates of session starts, both inclusive.
type StatsFilter struct {
	Title string     `json:"title,omitempty"`
	Since *time.Time `json:"since,omitempty"`
	Until *time.Time `json:"until,omitempty"`
}

// Statistics is the windowed rollup over a set of sessions
type Statistics struct {
	Count          int `json:"count"`
	TotalSeconds   int `json:"total_seconds"`
	AverageSeconds int `json:"average_seconds"`

	TodaySeconds  int `json:"today_seconds"`
	Last7Seconds  int `json:"last7_seconds"`
	Last30Seconds int `json:"last30_seconds"`

	// Per-day averages over the calendar days each window spans
	TodayPerDay   int `json:"today_per_day"`
	Last7PerDay   int `json:"last7_per_day"`
	Last30PerDay  int `json:"last30_per_day"`
	AllTimePerDay int `json:"all_time_per_day"`
	AllTimeDays   int `json:"all_time_days"`
}

// TitleStatistics is one group of the per-title rollup
type TitleStatistics struct {
	Title        string `json:"title"`
	Unnamed      bool   `json:"unnamed"`
	Count        int    `json:"count"`
	TotalSeconds int    `json:"total_seconds"`
}

// SessionService records completed sessions
type SessionService interface {
	// Record persists a session produced by the timer
	Record(ctx context.Context, title string, start, end time.Time, durationSeconds int) (*SaveResult, error)

	// Backfill validates and persists a manually entered past session
	Backfill(ctx context.Context, req BackfillRequest) (*SaveResult, error)

	// List returns every readable session in ledger order
	List(ctx context.Context) ([]domain.Session, error)
}

// GoalService keeps the goal ledger reconciled with the session ledger
type GoalService interface {
	// LoadAll reconciles the goal ledger and persists it only when something changed
	LoadAll(ctx context.Context) ([]domain.Goal, error)

	// SaveAll rewrites the whole goal ledger
	SaveAll(ctx context.Context, goals []domain.Goal) error

	// Planning edits
	SetEstimate(ctx context.Context, title string, estimateSeconds int) (*GoalSummary, error)
	SetDeadline(ctx context.Context, title string, deadline time.Time) (*GoalSummary, error)
	Plan(ctx context.Context, title string, estimateSeconds *int, deadline *time.Time) (*GoalSummary, error)
	Finish(ctx context.Context, title string) (*GoalSummary, error)

	// Queries
	Get(ctx context.Context, title string) (*GoalSummary, error)
	Summaries(ctx context.Context, all bool) ([]*GoalSummary, error)
}

// ReportingService aggregates session history. It is pure over its inputs.
type ReportingService interface {
	Summarize(sessions []domain.Session, filter StatsFilter, now time.Time) *Statistics
	ByTitle(sessions []domain.Session, filter StatsFilter) []*TitleStatistics
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	SessionService   SessionService
	GoalService      GoalService
	ReportingService ReportingService
}
