package cli

import (
	stderrors "errors"
	"fmt"

	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
	"focus-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides a one-line user-facing message prefixed with the failed operation.
// Failures that are not the user's input are also logged in full at debug level.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if errors.ShouldLogError(err) {
		logging.Debugf("%s failed [%s]: %v\n", operation, errors.GetErrorCode(err), err)
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		if appErr, ok := errors.AsAppError(err); ok {
			return appErr.Message + ": " + validationErr.GetUserFriendlyMessage()
		}
		return validationErr.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}

// IsNotFoundError checks if an error reports a missing goal
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeGoalNotFound)
}
