package services

import (
	"context"
	"strings"
	"time"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
	"focus-tracker/internal/repository"
	"focus-tracker/internal/validation"
)

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	sessions  repository.SessionRepository
	validator *validation.SessionValidator
	now       func() time.Time
}

// NewSessionService creates a new SessionService instance.
// A nil now uses time.Now.
func NewSessionService(sessions repository.SessionRepository, validator *validation.SessionValidator, now func() time.Time) SessionService {
	if validator == nil {
		validator = validation.NewSessionValidator(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &sessionServiceImpl{
		sessions:  sessions,
		validator: validator,
		now:       now,
	}
}

// Record persists a timed session
func (s *sessionServiceImpl) Record(ctx context.Context, title string, start, end time.Time, durationSeconds int) (*SaveResult, error) {
	if err := s.validator.ValidateTitle(title); err != nil {
		return nil, errors.NewValidationError("invalid session title", err)
	}
	return s.append(ctx, domain.NewSession(strings.TrimSpace(title), start, end, durationSeconds))
}

// Backfill fills in the missing bounds of a manual entry and persists it.
// Without bounds the session ends now; with one bound the other is inferred.
func (s *sessionServiceImpl) Backfill(ctx context.Context, req BackfillRequest) (*SaveResult, error) {
	span := time.Duration(req.DurationSeconds) * time.Second

	var start, end time.Time
	switch {
	case req.Start != nil && req.End != nil:
		start, end = *req.Start, *req.End
	case req.Start != nil:
		start = *req.Start
		end = start.Add(span)
	case req.End != nil:
		end = *req.End
		start = end.Add(-span)
	default:
		end = s.now()
		start = end.Add(-span)
	}

	if err := s.validator.ValidateBackfill(req.Title, start, end, req.DurationSeconds, s.now()); err != nil {
		return nil, errors.NewValidationError("invalid session", err)
	}

	return s.append(ctx, domain.NewSession(strings.TrimSpace(req.Title), start, end, req.DurationSeconds))
}

// List returns every readable session
func (s *sessionServiceImpl) List(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.LoadAll(ctx)
}

func (s *sessionServiceImpl) append(ctx context.Context, session domain.Session) (*SaveResult, error) {
	location, err := s.sessions.Append(ctx, session)
	if err != nil {
		return nil, err
	}
	logging.Debugf("appended session %q (%ds) to %s\n", session.Title, session.DurationSeconds, location)
	return &SaveResult{Session: session, Location: location}, nil
}
