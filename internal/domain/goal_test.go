package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoal(t *testing.T) {
	goal := NewGoal("  thesis ")

	assert.Equal(t, "thesis", goal.Title)
	assert.Equal(t, 0, goal.EstimateSeconds)
	assert.Equal(t, "00m00s", goal.TimeWorkedFormatted)
	assert.Nil(t, goal.EstimateTimestamp)
	assert.False(t, goal.HasEstimate())
}

func TestGoal_InWindow(t *testing.T) {
	stamp := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	before := NewSession("thesis", stamp.Add(-time.Hour), stamp, 3600)
	atStamp := NewSession("thesis", stamp, stamp.Add(time.Hour), 3600)
	after := NewSession(" thesis ", stamp.Add(time.Hour), stamp.Add(2*time.Hour), 3600)
	other := NewSession("reading", stamp.Add(time.Hour), stamp.Add(2*time.Hour), 3600)

	tests := []struct {
		name     string
		goal     Goal
		session  Session
		expected bool
	}{
		{name: "should count any matching session without estimate", goal: Goal{Title: "thesis"}, session: before, expected: true},
		{name: "should exclude sessions before the estimate", goal: Goal{Title: "thesis", EstimateTimestamp: &stamp}, session: before, expected: false},
		{name: "should include a session starting at the estimate", goal: Goal{Title: "thesis", EstimateTimestamp: &stamp}, session: atStamp, expected: true},
		{name: "should match trimmed titles", goal: Goal{Title: "thesis", EstimateTimestamp: &stamp}, session: after, expected: true},
		{name: "should exclude other titles", goal: Goal{Title: "thesis"}, session: other, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.goal.InWindow(tt.session))
		})
	}
}

func TestGoal_SetEstimate(t *testing.T) {
	goal := NewGoal("thesis")
	now := time.Date(2025, 3, 10, 12, 0, 0, 987654321, time.UTC)

	goal.SetEstimate(72000, now)

	assert.Equal(t, 72000, goal.EstimateSeconds)
	assert.Equal(t, "20h00m00s", goal.EstimateFormatted)
	require.NotNil(t, goal.EstimateTimestamp)
	assert.Equal(t, now.Truncate(time.Second), *goal.EstimateTimestamp)
}

func TestGoal_SetDeadline(t *testing.T) {
	goal := NewGoal("thesis")
	stamp := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	goal.EstimateTimestamp = &stamp

	goal.SetDeadline(time.Date(2025, 12, 9, 15, 30, 0, 0, time.Local))

	require.NotNil(t, goal.Deadline)
	assert.Equal(t, "2025-12-09", FormatDate(*goal.Deadline))
	assert.Equal(t, 0, goal.Deadline.Hour())
	assert.Equal(t, &stamp, goal.EstimateTimestamp, "deadline does not touch the estimate window")
}

func TestGoal_Finish(t *testing.T) {
	stamp := time.Now()
	deadline := Date(stamp).AddDate(0, 0, 10)
	startBy := Date(stamp)
	goal := Goal{
		Title:               "thesis",
		EstimateSeconds:     3600,
		EstimateFormatted:   "01h00m00s",
		EstimateTimestamp:   &stamp,
		Deadline:            &deadline,
		TimeWorkedSeconds:   1800,
		TimeWorkedFormatted: "30m00s",
		StartBy:             &startBy,
	}

	goal.Finish()

	assert.Equal(t, 0, goal.EstimateSeconds)
	assert.Empty(t, goal.EstimateFormatted)
	assert.Nil(t, goal.EstimateTimestamp)
	assert.Nil(t, goal.Deadline)
	assert.Nil(t, goal.StartBy)
	assert.Equal(t, 1800, goal.TimeWorkedSeconds)
	assert.Equal(t, "30m00s", goal.TimeWorkedFormatted)
}

func TestGoal_RemainingSeconds(t *testing.T) {
	assert.Equal(t, 600, Goal{EstimateSeconds: 3600, TimeWorkedSeconds: 3000}.RemainingSeconds())
	assert.Equal(t, 0, Goal{EstimateSeconds: 3600, TimeWorkedSeconds: 4000}.RemainingSeconds())
}

func TestGoal_Equal(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.In(time.FixedZone("X", 3600))

	assert.True(t, Goal{Title: "x", EstimateTimestamp: &a}.Equal(Goal{Title: "x", EstimateTimestamp: &b}))
	assert.False(t, Goal{Title: "x", EstimateTimestamp: &a}.Equal(Goal{Title: "x"}))
	assert.False(t, Goal{Title: "x", TimeWorkedSeconds: 1}.Equal(Goal{Title: "x"}))
}

func TestFindGoal(t *testing.T) {
	goals := []Goal{{Title: "a"}, {Title: "b"}}

	assert.Equal(t, 1, FindGoal(goals, " b "))
	assert.Equal(t, -1, FindGoal(goals, "c"))
}
