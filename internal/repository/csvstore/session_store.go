// Package csvstore keeps the session and goal ledgers as CSV files with a
// header row, the default on-disk format.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
)

// SessionHeader is the fixed column order of the sessions ledger
var SessionHeader = []string{"title", "start", "end", "duration", "duration_formatted"}

// SessionStore is the append-only sessions.csv ledger
type SessionStore struct {
	path string
}

// NewSessionStore creates a session store backed by the file at path
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Append writes one session row, creating the file and header if needed.
// The row is encoded in memory first and written with a single call.
func (s *SessionStore) Append(ctx context.Context, session domain.Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return "", errors.NewStorageError("create data directory", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", errors.NewStorageError("open sessions ledger", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", errors.NewStorageError("stat sessions ledger", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		w.Write(SessionHeader)
	}
	w.Write([]string{
		session.Title,
		domain.FormatTimestamp(session.Start),
		domain.FormatTimestamp(session.End),
		strconv.Itoa(session.DurationSeconds),
		session.DurationFormatted(),
	})
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.NewStorageError("encode session", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return "", errors.NewStorageError("append session", err)
	}
	if err := f.Close(); err != nil {
		return "", errors.NewStorageError("close sessions ledger", err)
	}
	return s.path, nil
}

// LoadAll reads every decodable session. Corrupt rows are skipped and logged.
func (s *SessionStore) LoadAll(ctx context.Context) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Session{}, nil
		}
		return nil, errors.NewStorageError("open sessions ledger", err)
	}
	defer f.Close()

	sessions := []domain.Session{}
	skipped := 0
	err = readTable(f, func(line int, row map[string]string) {
		session, err := parseSessionRow(row)
		if err != nil {
			skipped++
			logging.Debugln(errors.NewSessionRecordCorruptError(s.path, line, err).Error())
			return
		}
		sessions = append(sessions, session)
	}, func(line int, err error) {
		skipped++
		logging.Debugln(errors.NewSessionRecordCorruptError(s.path, line, err).Error())
	})
	if err != nil {
		return nil, errors.NewStorageError("read sessions ledger", err)
	}

	if skipped > 0 {
		logging.Debugf("skipped %d corrupt rows in %s\n", skipped, s.path)
	}
	return sessions, nil
}

func parseSessionRow(row map[string]string) (domain.Session, error) {
	start, err := domain.ParseTimestamp(row["start"])
	if err != nil {
		return domain.Session{}, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseTimestamp(row["end"])
	if err != nil {
		return domain.Session{}, fmt.Errorf("end: %w", err)
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(row["duration"]))
	if err != nil {
		return domain.Session{}, fmt.Errorf("duration: %w", err)
	}
	return domain.NewSession(row["title"], start, end, seconds), nil
}

// readTable reads a headed CSV stream, calling onRow with each record keyed
// by column name and onBad for records the reader rejects. Only I/O errors
// abort the read.
func readTable(r io.Reader, onRow func(line int, row map[string]string), onBad func(line int, err error)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		var parseErr *csv.ParseError
		if !stderrors.As(err, &parseErr) {
			return err
		}
		return nil
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				onBad(parseErr.Line, err)
				continue
			}
			return err
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(header) {
			onBad(line, fmt.Errorf("expected %d fields, got %d", len(header), len(record)))
			continue
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = record[i]
		}
		onRow(line, row)
	}
}
