package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for deadlines and start-by dates.
const DateLayout = "2006-01-02"

// timestampLayouts are tried in order when reading a persisted timestamp.
// Layouts without an offset are interpreted in local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// FormatTimestamp renders t as RFC3339 with second precision.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimestamp reads an ISO-8601 timestamp, with or without offset.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Date truncates t to local midnight of its calendar day.
func Date(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// AddDays moves a date by n calendar days, staying on local midnight across DST changes.
func AddDays(date time.Time, n int) time.Time {
	d := Date(date)
	return time.Date(d.Year(), d.Month(), d.Day()+n, 0, 0, 0, 0, time.Local)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	da, db := Date(a), Date(b)
	ua := time.Date(da.Year(), da.Month(), da.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate reads a YYYY-MM-DD calendar date in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// ParseMoment reads a full timestamp or a bare HH:MM, which means that time today.
func ParseMoment(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := ParseTimestamp(s); err == nil {
		return t, nil
	}
	if clock, err := time.Parse("15:04", s); err == nil {
		day := Date(now)
		return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("expected an ISO timestamp or HH:MM, got %q", s)
}
