package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	apperrors "focus-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDatabaseError(t *testing.T) {
	originalErr := errors.New("database is locked")
	result := HandleDatabaseError("append session", originalErr)

	require.Error(t, result)
	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeStorageIO))
	assert.Contains(t, result.Error(), "append session")
	assert.Contains(t, result.Error(), "database is locked")
	assert.ErrorIs(t, result, originalErr)
}

func TestWithTransaction(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	t.Run("should commit on success", func(t *testing.T) {
		err := WithTransaction(ctx, repo.db, "insert goal", func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO goals (position, title) VALUES (1, 'committed')`)
			return err
		})
		require.NoError(t, err)

		goals, err := repo.ListGoals(ctx)
		require.NoError(t, err)
		assert.Len(t, goals, 1)
	})

	t.Run("should roll back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := WithTransaction(ctx, repo.db, "insert goal", func(tx *sql.Tx) error {
			if _, err := tx.Exec(`INSERT INTO goals (position, title) VALUES (2, 'rolled back')`); err != nil {
				return err
			}
			return boom
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)

		goals, err := repo.ListGoals(ctx)
		require.NoError(t, err)
		assert.Len(t, goals, 1)
	})
}
