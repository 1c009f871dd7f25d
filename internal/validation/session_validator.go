package validation

import (
	"time"
)

// SessionValidator validates session titles and manual entries
type SessionValidator struct {
	validator *Validator
}

// NewSessionValidator creates a session validator over v
func NewSessionValidator(v *Validator) *SessionValidator {
	if v == nil {
		v = NewValidator()
	}
	return &SessionValidator{validator: v}
}

// ValidateTitle checks a session title. Blank titles are allowed and mean "unnamed".
func (sv *SessionValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	sv.checkTitle(validationError, "title", title)
	return validationError.Err()
}

// ValidateBackfill checks a manually entered session
func (sv *SessionValidator) ValidateBackfill(title string, start, end time.Time, seconds int, now time.Time) error {
	validationError := NewValidationError()

	sv.checkTitle(validationError, "title", title)

	if !sv.validator.IsValidSessionLength(seconds) {
		validationError.AddInvalidValueError("duration", seconds,
			"must be positive and at most "+(time.Duration(sv.validator.maxBackfillSeconds()) * time.Second).String())
	}
	if !sv.validator.IsReasonableDate(start, now) {
		validationError.AddInvalidValueError("start", start, "must be within ten years ago and one year ahead")
	}
	if !sv.validator.IsValidTimeRange(start, end) {
		validationError.AddInvalidRangeError("end", end, "must not be before start")
	}

	return validationError.Err()
}

func (sv *SessionValidator) checkTitle(ve *ValidationError, field, title string) {
	if sv.validator.HasControlCharacters(title) {
		ve.AddInvalidCharacterError(field, title)
	}
	if !sv.validator.IsValidTitleLength(title) {
		ve.AddInvalidLengthError(field, title, sv.validator.titleMaxLength())
	}
}
