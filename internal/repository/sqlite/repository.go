package sqlite

import (
	"context"
	"database/sql"

	"focus-tracker/internal/errors"
	"focus-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Sessions are append-only
	AppendSession(ctx context.Context, record *SessionRecord) error
	ListSessions(ctx context.Context) ([]*SessionRecord, error)

	// Goals are always rewritten as a whole ledger
	ListGoals(ctx context.Context) ([]*GoalRecord, error)
	ReplaceGoals(ctx context.Context, records []*GoalRecord) error

	// Utility
	Path() string
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// single writer; also keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

// Path returns the database location
func (r *SQLiteRepository) Path() string {
	return r.path
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// AppendSession inserts one session row
func (r *SQLiteRepository) AppendSession(ctx context.Context, record *SessionRecord) error {
	query := `
	INSERT INTO sessions (title, start_time, end_time, duration, duration_formatted)
	VALUES (?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		record.Title,
		FormatTimeForDB(record.StartTime),
		FormatTimeForDB(record.EndTime),
		record.DurationSeconds,
		record.DurationFormatted,
	)
	if err != nil {
		return err
	}

	record.ID = id
	return nil
}

// ListSessions retrieves all sessions in insertion order
func (r *SQLiteRepository) ListSessions(ctx context.Context) ([]*SessionRecord, error) {
	query := `
	SELECT id, title, start_time, end_time, duration, duration_formatted
	FROM sessions
	ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanSessions, "sessions")
}

// ListGoals retrieves the goal ledger in stored order
func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]*GoalRecord, error) {
	query := `
	SELECT position, title, estimate_seconds, estimate_formatted, estimate_timestamp,
	       deadline, time_worked_seconds, time_worked_formatted, start_by
	FROM goals
	ORDER BY position ASC`

	return QueryMultiple(ctx, r.db, query, ScanGoals, "goals")
}

// ReplaceGoals rewrites the goal ledger in a single transaction
func (r *SQLiteRepository) ReplaceGoals(ctx context.Context, records []*GoalRecord) error {
	return WithTransaction(ctx, r.db, "replace goals", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO goals (position, title, estimate_seconds, estimate_formatted, estimate_timestamp,
		                   deadline, time_worked_seconds, time_worked_formatted, start_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, record := range records {
			record.Position = int64(i + 1)
			_, err := stmt.ExecContext(ctx,
				record.Position,
				record.Title,
				record.EstimateSeconds,
				record.EstimateFormatted,
				FormatTimePtrForDB(record.EstimateTimestamp),
				FormatDatePtrForDB(record.Deadline),
				record.TimeWorkedSeconds,
				record.TimeWorkedFormatted,
				FormatDatePtrForDB(record.StartBy),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
