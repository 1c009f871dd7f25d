package validation

import (
	"time"
)

// GoalValidator validates goal edits
type GoalValidator struct {
	validator *Validator
	session   *SessionValidator
}

// NewGoalValidator creates a goal validator over v
func NewGoalValidator(v *Validator) *GoalValidator {
	if v == nil {
		v = NewValidator()
	}
	return &GoalValidator{validator: v, session: NewSessionValidator(v)}
}

// ValidateTitle checks a goal title, which unlike a session title is required
func (gv *GoalValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	if !gv.validator.IsNonEmptyString(title) {
		validationError.AddRequiredError("title")
		return validationError
	}
	gv.session.checkTitle(validationError, "title", title)
	return validationError.Err()
}

// ValidatePlan checks an estimate and deadline edit. Nil values are not being changed.
func (gv *GoalValidator) ValidatePlan(title string, estimate *int, deadline *time.Time, now time.Time) error {
	validationError := NewValidationError()

	if err := gv.ValidateTitle(title); err != nil {
		validationError.Errors = append(validationError.Errors, err.(*ValidationError).Errors...)
	}
	if estimate != nil && *estimate <= 0 {
		validationError.AddInvalidValueError("estimate", *estimate, "must be positive")
	}
	if deadline != nil && !gv.validator.IsReasonableDeadline(*deadline, now) {
		validationError.AddInvalidValueError("deadline", *deadline, "must be within ten years of today")
	}

	return validationError.Err()
}
