package sqlite

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// legacyLayouts are accepted when reading rows written before timestamps
// were normalized to RFC3339
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 string, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a timestamp from the database, preferring RFC3339
func ParseTimeFromDB(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatDatePtrForDB formats a calendar date as YYYY-MM-DD, returning nil if unset
func FormatDatePtrForDB(d *time.Time) interface{} {
	if d == nil {
		return nil
	}
	return d.Format(dateLayout)
}

// ParseDateFromDB parses a YYYY-MM-DD date in local time
func ParseDateFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}
