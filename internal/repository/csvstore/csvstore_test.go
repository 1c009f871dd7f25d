package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sessions.csv")
	store := NewSessionStore(path)
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	location, err := store.Append(ctx, domain.NewSession("writing", start, start.Add(25*time.Minute), 1500))
	require.NoError(t, err)
	assert.Equal(t, path, location)

	_, err = store.Append(ctx, domain.NewSession("a, \"quoted\" title", start, start.Add(time.Hour), 3600))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3, "header written exactly once")
	assert.Equal(t, "title,start,end,duration,duration_formatted", lines[0])
	assert.Equal(t, "writing,2025-03-01T09:00:00Z,2025-03-01T09:25:00Z,1500,25m00s", lines[1])

	sessions, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "a, \"quoted\" title", sessions[1].Title)
	assert.Equal(t, 3600, sessions[1].DurationSeconds)
}

func TestSessionStore_LoadAll_MissingFile(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "sessions.csv"))

	sessions, err := store.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionStore_LoadAll_SkipsCorruptRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.csv")
	content := strings.Join([]string{
		"title,start,end,duration,duration_formatted",
		"good,2025-03-01T09:00:00,2025-03-01T09:10:00,600,10m00s",
		"bad-start,yesterday,2025-03-01T09:10:00,600,10m00s",
		"bad-duration,2025-03-01T09:00:00,2025-03-01T09:10:00,ten,10m00s",
		"too,few,columns",
		"bad \"quote,2025-03-01T09:00:00,2025-03-01T09:10:00,600,10m00s",
		",2025-03-02T10:00:00+01:00,2025-03-02T10:05:00+01:00,300,05m00s",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	sessions, err := NewSessionStore(path).LoadAll(context.Background())

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "good", sessions[0].Title)
	assert.Equal(t, 600, sessions[0].DurationSeconds)
	assert.True(t, sessions[1].IsUnnamed())
	assert.Equal(t, 300, sessions[1].DurationSeconds)
}

func TestSessionStore_Append_UnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := NewSessionStore(filepath.Join(blocker, "sessions.csv")).Append(context.Background(), domain.Session{})

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorageIO))
}

func TestGoalStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.csv")
	store := NewGoalStore(path)
	ctx := context.Background()

	stamp := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 12, 9, 0, 0, 0, 0, time.Local)
	startBy := time.Date(2025, 12, 6, 0, 0, 0, 0, time.Local)
	goals := []domain.Goal{
		{
			Title:               "thesis",
			EstimateSeconds:     72000,
			EstimateFormatted:   "20h00m00s",
			EstimateTimestamp:   &stamp,
			Deadline:            &deadline,
			TimeWorkedSeconds:   0,
			TimeWorkedFormatted: "00m00s",
			StartBy:             &startBy,
		},
		{Title: "reading", TimeWorkedSeconds: 600, TimeWorkedFormatted: "10m00s"},
	}

	require.NoError(t, store.SaveAll(ctx, goals))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(GoalHeader, ","), lines[0])
	assert.Equal(t, "thesis,72000,20h00m00s,2025-03-01T09:00:00Z,2025-12-09,,00m00s,2025-12-06", lines[1])
	assert.Equal(t, "reading,,,,,600,10m00s,", lines[2])

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.True(t, goals[0].Equal(loaded[0]))
	assert.True(t, goals[1].Equal(loaded[1]))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is renamed into place")
}

func TestGoalStore_LoadAll_Lenient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.csv")
	content := strings.Join([]string{
		strings.Join(GoalHeader, ","),
		"thesis,lots,,not-a-time,someday,-3,,2025-02-30",
		",3600,01h00m00s,,,,,",
		"thesis,60,,,,,,",
		"reading,60,01m00s,,2025-12-09,,,",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	goals, err := NewGoalStore(path).LoadAll(context.Background())

	require.NoError(t, err)
	require.Len(t, goals, 2, "blank and duplicate titles are dropped")
	assert.Equal(t, "thesis", goals[0].Title)
	assert.Equal(t, 0, goals[0].EstimateSeconds)
	assert.Nil(t, goals[0].EstimateTimestamp)
	assert.Nil(t, goals[0].Deadline)
	assert.Equal(t, 0, goals[0].TimeWorkedSeconds)
	assert.Nil(t, goals[0].StartBy)
	assert.Equal(t, "reading", goals[1].Title)
	require.NotNil(t, goals[1].Deadline)
	assert.Equal(t, "2025-12-09", domain.FormatDate(*goals[1].Deadline))
}

func TestGoalStore_LoadAll_MissingFile(t *testing.T) {
	goals, err := NewGoalStore(filepath.Join(t.TempDir(), "goals.csv")).LoadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestStores_RespectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()

	_, err := NewSessionStore(filepath.Join(dir, "s.csv")).Append(ctx, domain.Session{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, NewGoalStore(filepath.Join(dir, "g.csv")).SaveAll(ctx, nil), context.Canceled)
}
