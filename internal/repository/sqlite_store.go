package repository

import (
	"context"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/repository/sqlite"
)

// SQLiteSessions adapts the sqlite repository to SessionRepository
type SQLiteSessions struct {
	repo   sqlite.Repository
	mapper *domain.SessionMapper
}

// NewSQLiteSessions creates a session ledger over repo
func NewSQLiteSessions(repo sqlite.Repository) *SQLiteSessions {
	return &SQLiteSessions{repo: repo, mapper: domain.NewSessionMapper()}
}

// Append inserts one session row
func (s *SQLiteSessions) Append(ctx context.Context, session domain.Session) (string, error) {
	record := s.mapper.ToDatabase(session)
	if err := s.repo.AppendSession(ctx, &record); err != nil {
		return "", err
	}
	return s.repo.Path(), nil
}

// LoadAll returns sessions in insertion order
func (s *SQLiteSessions) LoadAll(ctx context.Context) ([]domain.Session, error) {
	records, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(records), nil
}

// SQLiteGoals adapts the sqlite repository to GoalRepository
type SQLiteGoals struct {
	repo   sqlite.Repository
	mapper *domain.GoalMapper
}

// NewSQLiteGoals creates a goal ledger over repo
func NewSQLiteGoals(repo sqlite.Repository) *SQLiteGoals {
	return &SQLiteGoals{repo: repo, mapper: domain.NewGoalMapper()}
}

// LoadAll returns goals in ledger order, dropping blank titles
func (g *SQLiteGoals) LoadAll(ctx context.Context) ([]domain.Goal, error) {
	records, err := g.repo.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	goals := make([]domain.Goal, 0, len(records))
	for _, goal := range g.mapper.FromDatabaseSlice(records) {
		if goal.Title == "" {
			continue
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

// SaveAll replaces the goal table in one transaction
func (g *SQLiteGoals) SaveAll(ctx context.Context, goals []domain.Goal) error {
	return g.repo.ReplaceGoals(ctx, g.mapper.ToDatabaseSlice(goals))
}
