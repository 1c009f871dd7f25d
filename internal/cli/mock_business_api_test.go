package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"focus-tracker/internal/api"
	"focus-tracker/internal/config"
	"focus-tracker/internal/domain"
	"focus-tracker/internal/duration"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/services"
)

// mockBusinessAPI implements the BusinessAPI interface for testing.
// Sessions are kept in memory and goals are a plain title map.
type mockBusinessAPI struct {
	sessions []domain.Session
	goals    map[string]*services.GoalSummary
	order    []string
	err      error // returned by every call when set

	lastStats  api.StatsQuery
	lastAdd    []string
	lastUpdate []string
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{goals: make(map[string]*services.GoalSummary)}
}

func (m *mockBusinessAPI) Record(ctx context.Context, title string, start, end time.Time, seconds int) (*services.SaveResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	session := domain.NewSession(title, start, end, seconds)
	m.sessions = append(m.sessions, session)
	return &services.SaveResult{Session: session, Location: "/data/sessions.csv"}, nil
}

func (m *mockBusinessAPI) AddSession(ctx context.Context, title, durationText, start, end string) (*services.SaveResult, error) {
	m.lastAdd = []string{title, durationText, start, end}
	if m.err != nil {
		return nil, m.err
	}
	seconds, err := duration.Parse(durationText)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	return m.Record(ctx, title, now.Add(-time.Duration(seconds)*time.Second), now, seconds)
}

func (m *mockBusinessAPI) PrepareSession(ctx context.Context, title string) (*api.SessionPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	plan := &api.SessionPlan{Title: strings.TrimSpace(title)}
	if g, ok := m.goals[plan.Title]; ok {
		plan.EstimateSeconds = g.Goal.EstimateSeconds
		plan.WorkedSeconds = g.Goal.TimeWorkedSeconds
	}
	return plan, nil
}

func (m *mockBusinessAPI) UpdateGoal(ctx context.Context, title, estimate, deadline string) (*services.GoalSummary, error) {
	m.lastUpdate = []string{title, estimate, deadline}
	if m.err != nil {
		return nil, m.err
	}
	g, ok := m.goals[title]
	if !ok {
		if estimate == "" {
			return nil, errors.NewGoalNotFoundError(title)
		}
		g = &services.GoalSummary{Goal: domain.NewGoal(title)}
		m.putGoal(g)
	}
	if estimate != "" {
		seconds, err := duration.Parse(estimate)
		if err != nil {
			return nil, err
		}
		g.Goal.EstimateSeconds = seconds
		g.RemainingSeconds = g.Goal.RemainingSeconds()
	}
	if deadline != "" {
		d, err := domain.ParseDate(deadline)
		if err != nil {
			return nil, errors.NewInvalidDateError("deadline", deadline, err)
		}
		g.Goal.Deadline = &d
	}
	return g, nil
}

func (m *mockBusinessAPI) GetGoal(ctx context.Context, title string) (*services.GoalSummary, error) {
	if g, ok := m.goals[title]; ok {
		return g, nil
	}
	return nil, errors.NewGoalNotFoundError(title)
}

func (m *mockBusinessAPI) ListGoals(ctx context.Context, all bool) ([]*services.GoalSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*services.GoalSummary
	for _, title := range m.order {
		g := m.goals[title]
		if all || g.Goal.HasEstimate() {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockBusinessAPI) FinishGoal(ctx context.Context, title string) (*services.GoalSummary, error) {
	g, ok := m.goals[title]
	if !ok {
		return nil, errors.NewGoalNotFoundError(title)
	}
	g.Goal.Finish()
	return g, nil
}

func (m *mockBusinessAPI) GetStatistics(ctx context.Context, query api.StatsQuery, byTitle bool) (*api.StatsReport, error) {
	m.lastStats = query
	if m.err != nil {
		return nil, m.err
	}
	reporting := services.NewReportingService()
	report := &api.StatsReport{
		Statistics: reporting.Summarize(m.sessions, services.StatsFilter{Title: query.Title}, timeNow()),
	}
	if byTitle {
		report.ByTitle = reporting.ByTitle(m.sessions, services.StatsFilter{Title: query.Title})
	}
	return report, nil
}

func (m *mockBusinessAPI) putGoal(g *services.GoalSummary) {
	if _, ok := m.goals[g.Goal.Title]; !ok {
		m.order = append(m.order, g.Goal.Title)
	}
	m.goals[g.Goal.Title] = g
}

// setupTestAppWithMockBusinessAPI creates an app over the mock with plain output captured in a buffer
func setupTestAppWithMockBusinessAPI(t *testing.T) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	mockAPI := newMockBusinessAPI()
	cfg := config.NewConfig()
	cfg.Timer.Color = false

	out := &bytes.Buffer{}
	app := NewAppWithConfig(mockAPI, cfg).WithOutput(out)
	return app, mockAPI, out
}

// freezeTime pins timeNow for the duration of a test
func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}
