package services

import (
	"context"
	"testing"
	"time"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/repository"

	"github.com/stretchr/testify/require"
)

// countingGoals wraps a GoalRepository and counts full-ledger writes
type countingGoals struct {
	repository.GoalRepository
	saves int
}

func (c *countingGoals) SaveAll(ctx context.Context, goals []domain.Goal) error {
	c.saves++
	return c.GoalRepository.SaveAll(ctx, goals)
}

// fakeClock is a settable time source
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type goalFixture struct {
	store   *repository.Store
	goals   *countingGoals
	clock   *fakeClock
	service GoalService
}

func newGoalFixture(t *testing.T, now time.Time) *goalFixture {
	t.Helper()
	store := repository.OpenCSV(t.TempDir())
	goals := &countingGoals{GoalRepository: store.Goals}
	clock := &fakeClock{now: now}
	return &goalFixture{
		store:   store,
		goals:   goals,
		clock:   clock,
		service: NewGoalService(store.Sessions, goals, 8*3600, nil, clock.Now),
	}
}

func (f *goalFixture) addSession(t *testing.T, title string, start time.Time, seconds int) {
	t.Helper()
	end := start.Add(time.Duration(seconds) * time.Second)
	_, err := f.store.Sessions.Append(context.Background(), domain.NewSession(title, start, end, seconds))
	require.NoError(t, err)
}

func intPtr(i int) *int { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
