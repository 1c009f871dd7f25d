package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"focus-tracker/internal/errors"
	"focus-tracker/internal/repository/csvstore"
	"focus-tracker/internal/repository/sqlite"
)

// Backend names a storage implementation
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

// File names inside the data directory
const (
	SessionsFile = "sessions.csv"
	GoalsFile    = "goals.csv"
	DatabaseFile = "focus.db"
)

// ParseBackend validates a backend name
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case BackendCSV, BackendSQLite:
		return Backend(name), nil
	default:
		return "", errors.NewInvalidInputError("storage.backend", name, "must be csv or sqlite")
	}
}

// Open creates the ledgers for backend inside dir
func Open(backend Backend, dir string) (*Store, error) {
	switch backend {
	case BackendCSV:
		return OpenCSV(dir), nil
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewStorageError("create data directory", err)
		}
		return OpenSQLite(filepath.Join(dir, DatabaseFile))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// OpenCSV creates CSV ledgers in dir. Files are created on first write.
func OpenCSV(dir string) *Store {
	sessions := csvstore.NewSessionStore(filepath.Join(dir, SessionsFile))
	return &Store{
		Sessions: NewCachedSessions(sessions),
		Goals:    csvstore.NewGoalStore(filepath.Join(dir, GoalsFile)),
		Location: dir,
	}
}

// OpenSQLite opens (and migrates) the database at dbPath
func OpenSQLite(dbPath string) (*Store, error) {
	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{
		Sessions: NewCachedSessions(NewSQLiteSessions(repo)),
		Goals:    NewSQLiteGoals(repo),
		Location: dbPath,
		close:    repo.Close,
	}, nil
}
