package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"focus-tracker/internal/errors"
	"focus-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Record(t *testing.T) {
	dir := t.TempDir()
	store := repository.OpenCSV(dir)
	service := NewSessionService(store.Sessions, nil, nil)
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)

	t.Run("should append a trimmed session and report the ledger", func(t *testing.T) {
		result, err := service.Record(ctx, "  writing ", start, start.Add(25*time.Minute), 1500)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, repository.SessionsFile), result.Location)
		assert.Equal(t, "writing", result.Session.Title)

		sessions, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, 1500, sessions[0].DurationSeconds)
	})

	t.Run("should reject a title with control characters", func(t *testing.T) {
		_, err := service.Record(ctx, "a\nb", start, start, 60)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

		sessions, err := service.List(ctx)
		require.NoError(t, err)
		assert.Len(t, sessions, 1, "nothing is written on validation failure")
	})
}

func TestSessionService_Backfill(t *testing.T) {
	now := time.Date(2025, 3, 14, 16, 30, 0, 0, time.Local)
	nine := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name          string
		req           BackfillRequest
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "should end now without bounds",
			req:           BackfillRequest{DurationSeconds: 1800},
			expectedStart: now.Add(-30 * time.Minute),
			expectedEnd:   now,
		},
		{
			name:          "should infer end from start",
			req:           BackfillRequest{DurationSeconds: 1800, Start: timePtr(nine)},
			expectedStart: nine,
			expectedEnd:   nine.Add(30 * time.Minute),
		},
		{
			name:          "should infer start from end",
			req:           BackfillRequest{DurationSeconds: 1800, End: timePtr(nine)},
			expectedStart: nine.Add(-30 * time.Minute),
			expectedEnd:   nine,
		},
		{
			name:          "should keep both bounds and the stated duration",
			req:           BackfillRequest{Title: "reading", DurationSeconds: 600, Start: timePtr(nine), End: timePtr(nine.Add(time.Hour))},
			expectedStart: nine,
			expectedEnd:   nine.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.OpenCSV(t.TempDir())
			service := NewSessionService(store.Sessions, nil, func() time.Time { return now })

			result, err := service.Backfill(context.Background(), tt.req)
			require.NoError(t, err)

			assert.True(t, tt.expectedStart.Equal(result.Session.Start), "start = %v", result.Session.Start)
			assert.True(t, tt.expectedEnd.Equal(result.Session.End), "end = %v", result.Session.End)
			assert.Equal(t, tt.req.DurationSeconds, result.Session.DurationSeconds)

			sessions, err := store.Sessions.LoadAll(context.Background())
			require.NoError(t, err)
			require.Len(t, sessions, 1)
			assert.True(t, tt.expectedStart.Equal(sessions[0].Start))
		})
	}

	t.Run("should reject an end before the start", func(t *testing.T) {
		store := repository.OpenCSV(t.TempDir())
		service := NewSessionService(store.Sessions, nil, func() time.Time { return now })

		_, err := service.Backfill(context.Background(), BackfillRequest{
			DurationSeconds: 600,
			Start:           timePtr(nine),
			End:             timePtr(nine.Add(-time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

		sessions, err := store.Sessions.LoadAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}
