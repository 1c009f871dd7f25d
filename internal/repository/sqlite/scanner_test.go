package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRows feeds canned column values to the scan functions
type mockRows struct {
	rows    [][]interface{}
	current int
	err     error
}

func (m *mockRows) Next() bool {
	m.current++
	return m.current <= len(m.rows)
}

func (m *mockRows) Scan(dest ...interface{}) error {
	row := m.rows[m.current-1]
	if len(row) != len(dest) {
		return errors.New("column count mismatch")
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *int64:
			n, ok := v.(int64)
			if !ok {
				return errors.New("not an integer")
			}
			*d = n
		case *string:
			*d = v.(string)
		case *sql.NullString:
			if v == nil {
				*d = sql.NullString{}
			} else {
				*d = sql.NullString{String: v.(string), Valid: true}
			}
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func (m *mockRows) Err() error {
	return m.err
}

func TestScanSessions(t *testing.T) {
	rows := &mockRows{rows: [][]interface{}{
		{int64(1), "writing", "2025-03-01T09:00:00Z", "2025-03-01T09:25:00Z", int64(1500), "25m00s"},
		{int64(2), "broken", "never", "2025-03-01T09:25:00Z", int64(1500), "25m00s"},
		{int64(3), "", "2025-03-01T10:00:00Z", "2025-03-01T10:01:00Z", int64(-4), "00m00s"},
	}}

	records, err := ScanSessions(rows)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(3), records[1].ID)
	assert.Equal(t, int64(0), records[1].DurationSeconds, "negative durations are clamped")
}

func TestScanSessions_PropagatesIterationError(t *testing.T) {
	rows := &mockRows{err: errors.New("disk I/O error")}

	_, err := ScanSessions(rows)

	assert.EqualError(t, err, "disk I/O error")
}

func TestScanGoals_LenientOptionalFields(t *testing.T) {
	rows := &mockRows{rows: [][]interface{}{
		{int64(1), "thesis", int64(3600), "01h00m00s", "2025-03-01T09:00:00Z", "2025-12-09", int64(0), "00m00s", "2025-12-08"},
		{int64(2), "reading", int64(0), "", "garbage", "12/09", int64(60), "01m00s", nil},
	}}

	records, err := ScanGoals(rows)

	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].EstimateTimestamp)
	require.NotNil(t, records[0].Deadline)
	require.NotNil(t, records[0].StartBy)
	assert.Nil(t, records[1].EstimateTimestamp)
	assert.Nil(t, records[1].Deadline)
	assert.Nil(t, records[1].StartBy)
	assert.Equal(t, int64(60), records[1].TimeWorkedSeconds)
}
