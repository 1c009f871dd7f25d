package services

import (
	"sort"
	"strings"
	"time"

	"focus-tracker/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// Summarize computes totals and windowed sums over the filtered sessions.
// Windows are anchored at local midnight of now: today, the last 7 days and
// the last 30 days, each including today.
func (r *reportingServiceImpl) Summarize(sessions []domain.Session, filter StatsFilter, now time.Time) *Statistics {
	stats := &Statistics{}

	today := domain.Date(now)
	last7 := domain.AddDays(today, -6)
	last30 := domain.AddDays(today, -29)

	var earliest time.Time
	for _, s := range filterSessions(sessions, filter) {
		stats.Count++
		stats.TotalSeconds += s.DurationSeconds

		if !s.Start.Before(today) {
			stats.TodaySeconds += s.DurationSeconds
		}
		if !s.Start.Before(last7) {
			stats.Last7Seconds += s.DurationSeconds
		}
		if !s.Start.Before(last30) {
			stats.Last30Seconds += s.DurationSeconds
		}
		if earliest.IsZero() || s.Start.Before(earliest) {
			earliest = s.Start
		}
	}

	if stats.Count == 0 {
		return stats
	}

	stats.AverageSeconds = stats.TotalSeconds / stats.Count
	stats.TodayPerDay = stats.TodaySeconds
	stats.Last7PerDay = stats.Last7Seconds / 7
	stats.Last30PerDay = stats.Last30Seconds / 30

	// sessions dated after today still count as one day
	stats.AllTimeDays = max(domain.DaysBetween(earliest, today)+1, 1)
	stats.AllTimePerDay = stats.TotalSeconds / stats.AllTimeDays

	return stats
}

// ByTitle groups the filtered sessions by trimmed title, largest total first
func (r *reportingServiceImpl) ByTitle(sessions []domain.Session, filter StatsFilter) []*TitleStatistics {
	groups := make(map[string]*TitleStatistics)
	var ordered []*TitleStatistics

	for _, s := range filterSessions(sessions, filter) {
		key := s.Key()
		group, ok := groups[key]
		if !ok {
			group = &TitleStatistics{Title: s.DisplayTitle(), Unnamed: s.IsUnnamed()}
			groups[key] = group
			ordered = append(ordered, group)
		}
		group.Count++
		group.TotalSeconds += s.DurationSeconds
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TotalSeconds != ordered[j].TotalSeconds {
			return ordered[i].TotalSeconds > ordered[j].TotalSeconds
		}
		return ordered[i].Title < ordered[j].Title
	})

	return ordered
}

// filterSessions applies the title and inclusive start-date range of filter
func filterSessions(sessions []domain.Session, filter StatsFilter) []domain.Session {
	var since, until time.Time
	if filter.Since != nil {
		since = domain.Date(*filter.Since)
	}
	if filter.Until != nil {
		until = domain.AddDays(*filter.Until, 1)
	}

	title := strings.TrimSpace(filter.Title)

	filtered := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if title != "" && s.Key() != title {
			continue
		}
		if filter.Since != nil && s.Start.Before(since) {
			continue
		}
		if filter.Until != nil && !s.Start.Before(until) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}
