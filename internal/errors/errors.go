package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewInvalidDurationError reports a duration string that could not be parsed.
// fragment is the offending part of the input.
func NewInvalidDurationError(input string, fragment string, reason string) *AppError {
	message := fmt.Sprintf("invalid duration %q: %s", input, reason)
	if fragment != "" {
		message = fmt.Sprintf("invalid duration %q: %s at %q", input, reason, fragment)
	}
	return &AppError{
		Type:    ErrorTypeInvalidDuration,
		Message: message,
		Code:    "INVALID_DURATION",
		Context: map[string]interface{}{
			"input":    input,
			"fragment": fragment,
			"reason":   reason,
		},
	}
}

// NewInvalidDateError reports a date or timestamp that could not be parsed
func NewInvalidDateError(field string, value string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidDate,
		Message: fmt.Sprintf("invalid date for %s: %q", field, value),
		Code:    "INVALID_DATE",
		Cause:   cause,
		Context: map[string]interface{}{
			"field": field,
			"value": value,
		},
	}
}

// NewGoalNotFoundError creates an error for an edit on an unknown goal
func NewGoalNotFoundError(title string) *AppError {
	return &AppError{
		Type:    ErrorTypeGoalNotFound,
		Message: fmt.Sprintf("goal not found: %s", title),
		Code:    "GOAL_NOT_FOUND",
		Context: map[string]interface{}{
			"title": title,
		},
	}
}

// NewSessionRecordCorruptError describes a ledger row that was skipped on load
func NewSessionRecordCorruptError(location string, line int, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeSessionRecordCorrupt,
		Message: fmt.Sprintf("corrupt session record at %s:%d", location, line),
		Code:    "SESSION_RECORD_CORRUPT",
		Cause:   cause,
		Context: map[string]interface{}{
			"location": location,
			"line":     line,
		},
	}
}

// NewStorageError creates a new storage I/O error
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorageIO,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_IO_FAILURE",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewTerminalModeError creates an error for a failed terminal mode switch, read or redraw
func NewTerminalModeError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTerminalMode,
		Message: fmt.Sprintf("terminal operation failed: %s", operation),
		Code:    "TERMINAL_MODE_FAILURE",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeInvalidInput,
			ErrorTypeInvalidDuration, ErrorTypeInvalidDate, ErrorTypeGoalNotFound:
			return appErr.Message
		case ErrorTypeStorageIO, ErrorTypeTerminalMode:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeSessionRecordCorrupt:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeInvalidInput,
			ErrorTypeInvalidDuration, ErrorTypeInvalidDate, ErrorTypeGoalNotFound:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
