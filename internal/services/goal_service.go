package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/duration"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
	"focus-tracker/internal/repository"
	"focus-tracker/internal/validation"
)

// goalServiceImpl implements the GoalService interface
type goalServiceImpl struct {
	sessions  repository.SessionRepository
	goals     repository.GoalRepository
	perDay    int
	validator *validation.GoalValidator
	now       func() time.Time
}

// NewGoalService creates a new GoalService instance.
// perDay is the planning throughput in seconds; a nil now uses time.Now.
func NewGoalService(sessions repository.SessionRepository, goals repository.GoalRepository, perDay int, validator *validation.GoalValidator, now func() time.Time) GoalService {
	if perDay <= 0 {
		perDay = DefaultWorkPerDay
	}
	if validator == nil {
		validator = validation.NewGoalValidator(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &goalServiceImpl{
		sessions:  sessions,
		goals:     goals,
		perDay:    perDay,
		validator: validator,
		now:       now,
	}
}

// LoadAll reconciles the goal ledger with the session ledger:
// every session title gets a goal, derived fields are recomputed and the
// ledger is rewritten only if any of that changed it.
func (g *goalServiceImpl) LoadAll(ctx context.Context) ([]domain.Goal, error) {
	goals, _, err := g.load(ctx)
	return goals, err
}

// SaveAll rewrites the whole goal ledger
func (g *goalServiceImpl) SaveAll(ctx context.Context, goals []domain.Goal) error {
	return g.goals.SaveAll(ctx, goals)
}

// SetEstimate assigns an estimate and restarts the estimate window
func (g *goalServiceImpl) SetEstimate(ctx context.Context, title string, estimateSeconds int) (*GoalSummary, error) {
	return g.Plan(ctx, title, &estimateSeconds, nil)
}

// SetDeadline assigns a deadline to an existing goal
func (g *goalServiceImpl) SetDeadline(ctx context.Context, title string, deadline time.Time) (*GoalSummary, error) {
	return g.Plan(ctx, title, nil, &deadline)
}

// Plan applies an estimate and/or deadline in one ledger write.
// A goal with no record can only be created with an estimate.
func (g *goalServiceImpl) Plan(ctx context.Context, title string, estimateSeconds *int, deadline *time.Time) (*GoalSummary, error) {
	now := g.now()
	if err := g.validator.ValidatePlan(title, estimateSeconds, deadline, now); err != nil {
		return nil, errors.NewValidationError("invalid goal", err)
	}
	title = strings.TrimSpace(title)

	goals, sessions, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindGoal(goals, title)
	if idx < 0 {
		if estimateSeconds == nil {
			return nil, errors.NewGoalNotFoundError(title)
		}
		goals = append(goals, domain.NewGoal(title))
		idx = len(goals) - 1
	}

	goal := &goals[idx]
	if estimateSeconds != nil {
		goal.SetEstimate(*estimateSeconds, now)
	}
	if deadline != nil {
		goal.SetDeadline(*deadline)
	}
	g.refresh(goal, sessions, domain.Date(now))

	if err := g.goals.SaveAll(ctx, goals); err != nil {
		return nil, err
	}
	logging.Debugf("planned goal %q: estimate=%ds deadline=%v\n", title, goal.EstimateSeconds, goal.Deadline)

	return g.summarize(*goal, sessions), nil
}

// Finish clears a goal's planning fields and keeps its time worked figures
func (g *goalServiceImpl) Finish(ctx context.Context, title string) (*GoalSummary, error) {
	if err := g.validator.ValidateTitle(title); err != nil {
		return nil, errors.NewValidationError("invalid goal", err)
	}
	title = strings.TrimSpace(title)

	goals, sessions, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindGoal(goals, title)
	if idx < 0 {
		return nil, errors.NewGoalNotFoundError(title)
	}

	goals[idx].Finish()
	if err := g.goals.SaveAll(ctx, goals); err != nil {
		return nil, err
	}

	return g.summarize(goals[idx], sessions), nil
}

// Get returns one reconciled goal
func (g *goalServiceImpl) Get(ctx context.Context, title string) (*GoalSummary, error) {
	title = strings.TrimSpace(title)

	goals, sessions, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindGoal(goals, title)
	if idx < 0 {
		return nil, errors.NewGoalNotFoundError(title)
	}
	return g.summarize(goals[idx], sessions), nil
}

// Summaries lists goals by start-by date, then deadline, then title; unset dates sort last.
// Unless all is set only goals with a current estimate are listed.
func (g *goalServiceImpl) Summaries(ctx context.Context, all bool) ([]*GoalSummary, error) {
	goals, sessions, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*GoalSummary, 0, len(goals))
	for _, goal := range goals {
		if !all && !goal.HasEstimate() {
			continue
		}
		summaries = append(summaries, g.summarize(goal, sessions))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].Goal, summaries[j].Goal
		if c := compareDates(a.StartBy, b.StartBy); c != 0 {
			return c < 0
		}
		if c := compareDates(a.Deadline, b.Deadline); c != 0 {
			return c < 0
		}
		return a.Title < b.Title
	})

	return summaries, nil
}

// load reads both ledgers and reconciles the goals, persisting them on change
func (g *goalServiceImpl) load(ctx context.Context) ([]domain.Goal, []domain.Session, error) {
	stored, err := g.goals.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	sessions, err := g.sessions.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	goals, changed := g.reconcile(stored, sessions)
	if changed {
		logging.Debugf("goal ledger changed during reconciliation, rewriting %d goals\n", len(goals))
		if err := g.goals.SaveAll(ctx, goals); err != nil {
			return nil, nil, err
		}
	}
	return goals, sessions, nil
}

func (g *goalServiceImpl) reconcile(stored []domain.Goal, sessions []domain.Session) ([]domain.Goal, bool) {
	goals := make([]domain.Goal, len(stored), len(stored)+4)
	copy(goals, stored)
	changed := false

	for _, title := range domain.SessionTitles(sessions) {
		if domain.FindGoal(goals, title) < 0 {
			goals = append(goals, domain.NewGoal(title))
			changed = true
		}
	}

	today := domain.Date(g.now())
	for i := range goals {
		before := goals[i]
		g.refresh(&goals[i], sessions, today)
		if !before.Equal(goals[i]) {
			changed = true
		}
	}

	return goals, changed
}

// refresh recomputes every derived field of goal
func (g *goalServiceImpl) refresh(goal *domain.Goal, sessions []domain.Session, today time.Time) {
	worked := 0
	for _, s := range sessions {
		if goal.InWindow(s) {
			worked += s.DurationSeconds
		}
	}
	goal.TimeWorkedSeconds = worked
	goal.TimeWorkedFormatted = duration.FormatCompact(worked)

	if !goal.HasEstimate() {
		goal.EstimateSeconds = 0
		goal.EstimateFormatted = ""
		goal.StartBy = nil
		return
	}

	goal.EstimateFormatted = duration.FormatCompact(goal.EstimateSeconds)
	if goal.Deadline == nil {
		goal.StartBy = nil
		return
	}
	startBy := StartBy(goal.EstimateSeconds, *goal.Deadline, worked, g.perDay, today)
	goal.StartBy = &startBy
}

func (g *goalServiceImpl) summarize(goal domain.Goal, sessions []domain.Session) *GoalSummary {
	total := 0
	for _, s := range sessions {
		if s.Key() == goal.Title {
			total += s.DurationSeconds
		}
	}
	return &GoalSummary{
		Goal:               goal,
		TotalWorkedSeconds: total,
		RemainingSeconds:   goal.RemainingSeconds(),
	}
}

func compareDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	default:
		return 0
	}
}
