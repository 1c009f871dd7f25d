package services

import (
	"time"

	"focus-tracker/internal/domain"
)

// DefaultWorkPerDay is the daily throughput budget when none is configured
const DefaultWorkPerDay = 8 * 60 * 60

// StartBy returns the latest date work must begin to finish estimate seconds
// before deadline at perDay seconds of work per day. The deadline day itself
// is not workable. When nothing remains the answer is today.
func StartBy(estimate int, deadline time.Time, worked int, perDay int, today time.Time) time.Time {
	remaining := estimate - worked
	if remaining <= 0 {
		return domain.Date(today)
	}
	if perDay <= 0 {
		perDay = DefaultWorkPerDay
	}

	daysNeeded := (remaining + perDay - 1) / perDay
	lastWorkable := domain.AddDays(deadline, -1)
	return domain.AddDays(lastWorkable, -(daysNeeded - 1))
}
