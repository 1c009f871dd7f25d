package sqlite

import (
	"database/sql"

	"focus-tracker/internal/logging"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSession scans a single session row
func ScanSession(scanner Scanner) (*SessionRecord, error) {
	record := &SessionRecord{}
	var start, end string

	err := scanner.Scan(
		&record.ID,
		&record.Title,
		&start,
		&end,
		&record.DurationSeconds,
		&record.DurationFormatted,
	)
	if err != nil {
		return nil, err
	}

	if record.StartTime, err = ParseTimeFromDB(start); err != nil {
		return nil, err
	}
	if record.EndTime, err = ParseTimeFromDB(end); err != nil {
		return nil, err
	}
	if record.DurationSeconds < 0 {
		record.DurationSeconds = 0
	}
	return record, nil
}

// ScanSessions scans session rows, skipping rows that cannot be decoded
func ScanSessions(rows Rows) ([]*SessionRecord, error) {
	var records []*SessionRecord
	skipped := 0
	for rows.Next() {
		record, err := ScanSession(rows)
		if err != nil {
			skipped++
			logging.Debugf("skipping corrupt session row: %v\n", err)
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		logging.Debugf("skipped %d corrupt session rows\n", skipped)
	}

	return records, nil
}

// ScanGoal scans a single goal row. Undecodable optional fields are left unset.
func ScanGoal(scanner Scanner) (*GoalRecord, error) {
	record := &GoalRecord{}
	var estimateTimestamp, deadline, startBy sql.NullString

	err := scanner.Scan(
		&record.Position,
		&record.Title,
		&record.EstimateSeconds,
		&record.EstimateFormatted,
		&estimateTimestamp,
		&deadline,
		&record.TimeWorkedSeconds,
		&record.TimeWorkedFormatted,
		&startBy,
	)
	if err != nil {
		return nil, err
	}

	if estimateTimestamp.Valid && estimateTimestamp.String != "" {
		if t, err := ParseTimeFromDB(estimateTimestamp.String); err == nil {
			record.EstimateTimestamp = &t
		}
	}
	if deadline.Valid && deadline.String != "" {
		if d, err := ParseDateFromDB(deadline.String); err == nil {
			record.Deadline = &d
		}
	}
	if startBy.Valid && startBy.String != "" {
		if d, err := ParseDateFromDB(startBy.String); err == nil {
			record.StartBy = &d
		}
	}
	return record, nil
}

// ScanGoals scans goal rows, skipping rows that cannot be decoded
func ScanGoals(rows Rows) ([]*GoalRecord, error) {
	var records []*GoalRecord
	for rows.Next() {
		record, err := ScanGoal(rows)
		if err != nil {
			logging.Debugf("skipping corrupt goal row: %v\n", err)
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
