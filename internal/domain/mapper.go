package domain

import (
	"focus-tracker/internal/repository/sqlite"
)

// SessionMapper handles conversion between domain and database Session models.
type SessionMapper struct{}

// NewSessionMapper creates a new SessionMapper instance.
func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// ToDatabase converts a domain Session to a database SessionRecord.
func (m *SessionMapper) ToDatabase(s Session) sqlite.SessionRecord {
	return sqlite.SessionRecord{
		Title:             s.Title,
		StartTime:         s.Start,
		EndTime:           s.End,
		DurationSeconds:   int64(s.DurationSeconds),
		DurationFormatted: s.DurationFormatted(),
	}
}

// FromDatabase converts a database SessionRecord to a domain Session.
func (m *SessionMapper) FromDatabase(r sqlite.SessionRecord) Session {
	return NewSession(r.Title, r.StartTime, r.EndTime, int(r.DurationSeconds))
}

// FromDatabaseSlice converts database SessionRecords to domain Sessions.
func (m *SessionMapper) FromDatabaseSlice(records []*sqlite.SessionRecord) []Session {
	sessions := make([]Session, 0, len(records))
	for _, r := range records {
		sessions = append(sessions, m.FromDatabase(*r))
	}
	return sessions
}

// GoalMapper handles conversion between domain and database Goal models.
type GoalMapper struct{}

// NewGoalMapper creates a new GoalMapper instance.
func NewGoalMapper() *GoalMapper {
	return &GoalMapper{}
}

// ToDatabase converts a domain Goal to a database GoalRecord.
func (m *GoalMapper) ToDatabase(g Goal) sqlite.GoalRecord {
	return sqlite.GoalRecord{
		Title:               g.Title,
		EstimateSeconds:     int64(g.EstimateSeconds),
		EstimateFormatted:   g.EstimateFormatted,
		EstimateTimestamp:   g.EstimateTimestamp,
		Deadline:            g.Deadline,
		TimeWorkedSeconds:   int64(g.TimeWorkedSeconds),
		TimeWorkedFormatted: g.TimeWorkedFormatted,
		StartBy:             g.StartBy,
	}
}

// FromDatabase converts a database GoalRecord to a domain Goal.
func (m *GoalMapper) FromDatabase(r sqlite.GoalRecord) Goal {
	g := Goal{
		Title:               r.Title,
		EstimateSeconds:     int(r.EstimateSeconds),
		EstimateFormatted:   r.EstimateFormatted,
		EstimateTimestamp:   r.EstimateTimestamp,
		Deadline:            r.Deadline,
		TimeWorkedSeconds:   int(r.TimeWorkedSeconds),
		TimeWorkedFormatted: r.TimeWorkedFormatted,
		StartBy:             r.StartBy,
	}
	if g.EstimateSeconds < 0 {
		g.EstimateSeconds = 0
	}
	return g
}

// ToDatabaseSlice converts domain Goals to database GoalRecords.
func (m *GoalMapper) ToDatabaseSlice(goals []Goal) []*sqlite.GoalRecord {
	records := make([]*sqlite.GoalRecord, len(goals))
	for i, g := range goals {
		r := m.ToDatabase(g)
		records[i] = &r
	}
	return records
}

// FromDatabaseSlice converts database GoalRecords to domain Goals.
func (m *GoalMapper) FromDatabaseSlice(records []*sqlite.GoalRecord) []Goal {
	goals := make([]Goal, 0, len(records))
	for _, r := range records {
		goals = append(goals, m.FromDatabase(*r))
	}
	return goals
}
