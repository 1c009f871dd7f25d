package repository

import (
	"context"

	"focus-tracker/internal/domain"
)

// SessionRepository is the append-only session ledger
type SessionRepository interface {
	// Append persists one session and returns the ledger location
	Append(ctx context.Context, session domain.Session) (string, error)
	// LoadAll returns every decodable session; corrupt records are skipped
	LoadAll(ctx context.Context) ([]domain.Session, error)
}

// GoalRepository is the goal ledger, persisted only as a whole
type GoalRepository interface {
	LoadAll(ctx context.Context) ([]domain.Goal, error)
	SaveAll(ctx context.Context, goals []domain.Goal) error
}

// Store bundles both ledgers of one backend
type Store struct {
	Sessions *CachedSessions
	Goals    GoalRepository
	Location string
	close    func() error
}

// Close releases backend resources
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
