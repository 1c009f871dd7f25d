package migrations

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"focus-tracker/internal/logging"
)

func init() {
	RegisterGoMigration(3, Up_000003_normalize_session_timestamps, Down_000003_normalize_session_timestamps)
}

var rfc3339Pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z)$`)

// Up_000003_normalize_session_timestamps rewrites session and estimate
// timestamps to RFC3339. Rows imported from older ledgers may carry naive
// ISO timestamps (no offset, optional microseconds) or Go's default
// time.String() output; naive values are taken as local time.
func Up_000003_normalize_session_timestamps(tx *sql.Tx) error {
	sessionUpdates, err := normalizeColumns(tx, "sessions", "id", "start_time", "end_time")
	if err != nil {
		return err
	}
	goalUpdates, err := normalizeColumns(tx, "goals", "position", "estimate_timestamp")
	if err != nil {
		return err
	}

	logging.Debugf("normalized %d session and %d goal timestamps\n", sessionUpdates, goalUpdates)
	return nil
}

// Down_000003_normalize_session_timestamps converts RFC3339 values back to
// the naive "YYYY-MM-DDTHH:MM:SS" form.
func Down_000003_normalize_session_timestamps(tx *sql.Tx) error {
	statements := []string{
		`UPDATE sessions SET start_time = substr(start_time, 1, 19) WHERE start_time GLOB '????-??-??T??:??:??*'`,
		`UPDATE sessions SET end_time = substr(end_time, 1, 19) WHERE end_time GLOB '????-??-??T??:??:??*'`,
		`UPDATE goals SET estimate_timestamp = substr(estimate_timestamp, 1, 19)
		 WHERE estimate_timestamp IS NOT NULL AND estimate_timestamp GLOB '????-??-??T??:??:??*'`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to revert timestamps: %w", err)
		}
	}
	return nil
}

type timestampCell struct {
	key    int64
	column string
	value  string
}

func normalizeColumns(tx *sql.Tx, table, keyColumn string, columns ...string) (int, error) {
	// Read everything first to avoid updating while iterating
	var cells []timestampCell
	query := fmt.Sprintf("SELECT %s, %s FROM %s", keyColumn, strings.Join(columns, ", "), table)
	rows, err := tx.Query(query)
	if err != nil {
		return 0, fmt.Errorf("failed to query %s: %w", table, err)
	}
	for rows.Next() {
		var key int64
		values := make([]sql.NullString, len(columns))
		dest := []interface{}{&key}
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		for i, v := range values {
			if v.Valid && v.String != "" && !isRFC3339(v.String) {
				cells = append(cells, timestampCell{key: key, column: columns[i], value: v.String})
			}
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error iterating %s: %w", table, err)
	}
	rows.Close()

	updates := 0
	for _, cell := range cells {
		normalized, err := toRFC3339(cell.value)
		if err != nil {
			// unreadable rows are left for the loader to skip
			logging.Debugf("could not parse %s.%s for %d: %v\n", table, cell.column, cell.key, err)
			continue
		}
		stmt := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", table, cell.column, keyColumn)
		if _, err := tx.Exec(stmt, normalized, cell.key); err != nil {
			return updates, fmt.Errorf("failed to update %s.%s for %d: %w", table, cell.column, cell.key, err)
		}
		updates++
	}
	return updates, nil
}

// toRFC3339 parses the timestamp shapes seen in older ledgers
func toRFC3339(value string) (string, error) {
	value = stripMonotonicSuffix(strings.TrimSpace(value))

	zoned := []string{
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02T15:04:05.999999999-07:00",
	}
	for _, layout := range zoned {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(time.RFC3339), nil
		}
	}

	naive := []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.Format(time.RFC3339), nil
		}
	}

	return "", fmt.Errorf("could not parse time format: %s", value)
}

func stripMonotonicSuffix(value string) string {
	if idx := strings.Index(value, " m="); idx != -1 {
		return value[:idx]
	}
	return value
}

func isRFC3339(value string) bool {
	return rfc3339Pattern.MatchString(value)
}
