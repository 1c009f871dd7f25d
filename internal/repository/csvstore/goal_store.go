package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
)

// GoalHeader is the fixed column order of the goals ledger
var GoalHeader = []string{
	"title",
	"estimate_seconds",
	"estimate_formatted",
	"estimate_timestamp",
	"deadline",
	"time_worked_seconds",
	"time_worked_formatted",
	"start_by",
}

// GoalStore is the goals.csv ledger, always rewritten as a whole
type GoalStore struct {
	path string
}

// NewGoalStore creates a goal store backed by the file at path
func NewGoalStore(path string) *GoalStore {
	return &GoalStore{path: path}
}

// LoadAll reads the goal ledger. Unparseable numbers read as zero and
// unparseable dates as unset; rows without a title are dropped.
func (g *GoalStore) LoadAll(ctx context.Context) ([]domain.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Goal{}, nil
		}
		return nil, errors.NewStorageError("open goals ledger", err)
	}
	defer f.Close()

	goals := []domain.Goal{}
	seen := make(map[string]bool)
	err = readTable(f, func(line int, row map[string]string) {
		goal := parseGoalRow(row)
		if goal.Title == "" || seen[goal.Title] {
			logging.Debugf("dropping goal row at %s:%d\n", g.path, line)
			return
		}
		seen[goal.Title] = true
		goals = append(goals, goal)
	}, func(line int, err error) {
		logging.Debugf("dropping goal row at %s:%d: %v\n", g.path, line, err)
	})
	if err != nil {
		return nil, errors.NewStorageError("read goals ledger", err)
	}
	return goals, nil
}

// SaveAll rewrites the ledger through a temporary file renamed into place
func (g *GoalStore) SaveAll(ctx context.Context, goals []domain.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(GoalHeader)
	for _, goal := range goals {
		w.Write(goalRow(goal))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewStorageError("encode goals", err)
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".goals-*.csv")
	if err != nil {
		return errors.NewStorageError("create temporary goals file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.NewStorageError("write goals", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.NewStorageError("sync goals", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError("close goals", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return errors.NewStorageError("chmod goals", err)
	}
	if err := os.Rename(tmpPath, g.path); err != nil {
		return errors.NewStorageError("replace goals ledger", err)
	}
	return nil
}

func goalRow(goal domain.Goal) []string {
	return []string{
		goal.Title,
		intOrEmpty(goal.EstimateSeconds),
		goal.EstimateFormatted,
		timestampOrEmpty(goal.EstimateTimestamp),
		dateOrEmpty(goal.Deadline),
		intOrEmpty(goal.TimeWorkedSeconds),
		goal.TimeWorkedFormatted,
		dateOrEmpty(goal.StartBy),
	}
}

func parseGoalRow(row map[string]string) domain.Goal {
	goal := domain.Goal{
		Title:               strings.TrimSpace(row["title"]),
		EstimateSeconds:     lenientInt(row["estimate_seconds"]),
		EstimateFormatted:   strings.TrimSpace(row["estimate_formatted"]),
		TimeWorkedSeconds:   lenientInt(row["time_worked_seconds"]),
		TimeWorkedFormatted: strings.TrimSpace(row["time_worked_formatted"]),
	}
	if t, err := domain.ParseTimestamp(row["estimate_timestamp"]); err == nil {
		goal.EstimateTimestamp = &t
	}
	if d, err := domain.ParseDate(row["deadline"]); err == nil {
		goal.Deadline = &d
	}
	if d, err := domain.ParseDate(row["start_by"]); err == nil {
		goal.StartBy = &d
	}
	return goal
}

func lenientInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func intOrEmpty(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func timestampOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return domain.FormatTimestamp(*t)
}

func dateOrEmpty(d *time.Time) string {
	if d == nil {
		return ""
	}
	return domain.FormatDate(*d)
}
