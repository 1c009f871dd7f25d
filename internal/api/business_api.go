// Package api is the business facade used by the command line: it accepts raw
// user input, parses it and drives the services.
package api

import (
	"context"
	"strings"
	"time"

	"focus-tracker/internal/config"
	"focus-tracker/internal/domain"
	"focus-tracker/internal/duration"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
	"focus-tracker/internal/repository"
	"focus-tracker/internal/services"
	"focus-tracker/internal/validation"
)

// SessionPlan is what the live timer needs to know about a title before starting
type SessionPlan struct {
	Title           string `json:"title"`
	EstimateSeconds int    `json:"estimate_seconds"`
	WorkedSeconds   int    `json:"worked_seconds"` // toward the current estimate
}

// StatsQuery holds the raw statistics filters as typed by the user
type StatsQuery struct {
	Title string
	Since string // YYYY-MM-DD
	Until string // YYYY-MM-DD
}

// StatsReport combines the windowed rollup with the per-title breakdown
type StatsReport struct {
	Statistics *services.Statistics        `json:"statistics"`
	ByTitle    []*services.TitleStatistics `json:"by_title,omitempty"`
}

// BusinessAPI defines the operations behind every command
type BusinessAPI interface {
	// ========== Sessions ==========

	// Record persists a session finished by the live timer
	Record(ctx context.Context, title string, start, end time.Time, durationSeconds int) (*services.SaveResult, error)

	// AddSession backfills a past session. start and end accept an ISO timestamp or HH:MM (today) and may be empty.
	AddSession(ctx context.Context, title, durationText, start, end string) (*services.SaveResult, error)

	// PrepareSession looks up the goal estimate for a session about to start
	PrepareSession(ctx context.Context, title string) (*SessionPlan, error)

	// ========== Goals ==========

	// UpdateGoal sets an estimate (duration text) and/or a deadline (YYYY-MM-DD); empty values are left alone
	UpdateGoal(ctx context.Context, title, estimate, deadline string) (*services.GoalSummary, error)

	// GetGoal returns one goal with derived figures
	GetGoal(ctx context.Context, title string) (*services.GoalSummary, error)

	// ListGoals returns goals with estimates, or every goal when all is set
	ListGoals(ctx context.Context, all bool) ([]*services.GoalSummary, error)

	// FinishGoal clears the estimate and deadline, keeping the time worked
	FinishGoal(ctx context.Context, title string) (*services.GoalSummary, error)

	// ========== Statistics ==========

	// GetStatistics returns the rollup for the filtered sessions, with the per-title breakdown when byTitle is set
	GetStatistics(ctx context.Context, query StatsQuery, byTitle bool) (*StatsReport, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	now      func() time.Time
}

// NewBusinessAPI wires the services over store using cfg for validation and planning limits
func NewBusinessAPI(store *repository.Store, cfg *config.Config) BusinessAPI {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	validator := validation.NewValidatorWithConfig(cfg)

	container := &services.ServiceContainer{
		SessionService: services.NewSessionService(store.Sessions, validation.NewSessionValidator(validator), nil),
		GoalService: services.NewGoalService(store.Sessions, store.Goals, cfg.WorkPerDaySeconds(),
			validation.NewGoalValidator(validator), nil),
		ReportingService: services.NewReportingService(),
	}
	return NewBusinessAPIWithServices(container, nil)
}

// NewBusinessAPIWithServices creates the facade over existing services. A nil now uses time.Now.
func NewBusinessAPIWithServices(container *services.ServiceContainer, now func() time.Time) BusinessAPI {
	if now == nil {
		now = time.Now
	}
	return &businessAPIImpl{services: container, now: now}
}

// ========== Sessions ==========

func (b *businessAPIImpl) Record(ctx context.Context, title string, start, end time.Time, durationSeconds int) (*services.SaveResult, error) {
	result, err := b.services.SessionService.Record(ctx, title, start, end, durationSeconds)
	if err != nil {
		return nil, err
	}
	b.syncGoals(ctx)
	return result, nil
}

func (b *businessAPIImpl) AddSession(ctx context.Context, title, durationText, start, end string) (*services.SaveResult, error) {
	seconds, err := duration.Parse(durationText)
	if err != nil {
		return nil, err
	}

	now := b.now()
	req := services.BackfillRequest{Title: title, DurationSeconds: seconds}
	if req.Start, err = parseMoment("start", start, now); err != nil {
		return nil, err
	}
	if req.End, err = parseMoment("end", end, now); err != nil {
		return nil, err
	}

	result, err := b.services.SessionService.Backfill(ctx, req)
	if err != nil {
		return nil, err
	}
	b.syncGoals(ctx)
	return result, nil
}

func (b *businessAPIImpl) PrepareSession(ctx context.Context, title string) (*SessionPlan, error) {
	plan := &SessionPlan{Title: strings.TrimSpace(title)}
	if plan.Title == "" {
		return plan, nil
	}

	summary, err := b.services.GoalService.Get(ctx, plan.Title)
	if errors.IsErrorType(err, errors.ErrorTypeGoalNotFound) {
		return plan, nil
	}
	if err != nil {
		return nil, err
	}

	plan.EstimateSeconds = summary.Goal.EstimateSeconds
	plan.WorkedSeconds = summary.Goal.TimeWorkedSeconds
	return plan, nil
}

// syncGoals reconciles the goal ledger after a new session. The session is already saved,
// so a failure here is only logged and repaired by the next load.
func (b *businessAPIImpl) syncGoals(ctx context.Context) {
	if _, err := b.services.GoalService.LoadAll(ctx); err != nil {
		logging.Debugf("reconcile goals after save: %v\n", err)
	}
}

// ========== Goals ==========

func (b *businessAPIImpl) UpdateGoal(ctx context.Context, title, estimate, deadline string) (*services.GoalSummary, error) {
	var estimateSeconds *int
	if strings.TrimSpace(estimate) != "" {
		seconds, err := duration.Parse(estimate)
		if err != nil {
			return nil, err
		}
		estimateSeconds = &seconds
	}

	deadlineDate, err := parseDate("deadline", deadline)
	if err != nil {
		return nil, err
	}

	if estimateSeconds == nil && deadlineDate == nil {
		return b.services.GoalService.Get(ctx, title)
	}
	return b.services.GoalService.Plan(ctx, title, estimateSeconds, deadlineDate)
}

func (b *businessAPIImpl) GetGoal(ctx context.Context, title string) (*services.GoalSummary, error) {
	return b.services.GoalService.Get(ctx, title)
}

func (b *businessAPIImpl) ListGoals(ctx context.Context, all bool) ([]*services.GoalSummary, error) {
	return b.services.GoalService.Summaries(ctx, all)
}

func (b *businessAPIImpl) FinishGoal(ctx context.Context, title string) (*services.GoalSummary, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.NewInvalidInputError("title", title, "a goal title is required")
	}
	return b.services.GoalService.Finish(ctx, title)
}

// ========== Statistics ==========

func (b *businessAPIImpl) GetStatistics(ctx context.Context, query StatsQuery, byTitle bool) (*StatsReport, error) {
	filter := services.StatsFilter{Title: query.Title}

	var err error
	if filter.Since, err = parseDate("since", query.Since); err != nil {
		return nil, err
	}
	if filter.Until, err = parseDate("until", query.Until); err != nil {
		return nil, err
	}
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		return nil, errors.NewInvalidInputError("until", query.Until, "must not be before since")
	}

	sessions, err := b.services.SessionService.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &StatsReport{
		Statistics: b.services.ReportingService.Summarize(sessions, filter, b.now()),
	}
	if byTitle {
		report.ByTitle = b.services.ReportingService.ByTitle(sessions, filter)
	}
	return report, nil
}

func parseMoment(field, text string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	t, err := domain.ParseMoment(text, now)
	if err != nil {
		return nil, errors.NewInvalidDateError(field, text, err)
	}
	return &t, nil
}

func parseDate(field, text string) (*time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(text)
	if err != nil {
		return nil, errors.NewInvalidDateError(field, text, err)
	}
	return &d, nil
}
