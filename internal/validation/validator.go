package validation

import (
	"strings"
	"time"
	"unicode"

	"focus-tracker/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a validator using configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTitleLength checks a trimmed title against the configured maximum
func (v *Validator) IsValidTitleLength(title string) bool {
	return len([]rune(strings.TrimSpace(title))) <= v.titleMaxLength()
}

// HasControlCharacters reports newlines, tabs and other control runes.
// Titles end up in CSV cells and single terminal lines.
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidTimeRange checks that end is not before start
func (v *Validator) IsValidTimeRange(start, end time.Time) bool {
	return !end.Before(start)
}

// IsValidSessionLength checks a session duration against the configured maximum
func (v *Validator) IsValidSessionLength(seconds int) bool {
	return seconds > 0 && seconds <= v.maxBackfillSeconds()
}

// IsReasonableDate checks that t lies between ten years ago and one year ahead
func (v *Validator) IsReasonableDate(t, now time.Time) bool {
	return t.After(now.AddDate(-10, 0, 0)) && t.Before(now.AddDate(1, 0, 0))
}

// IsReasonableDeadline checks that a deadline lies within ten years of now
func (v *Validator) IsReasonableDeadline(t, now time.Time) bool {
	return t.After(now.AddDate(-10, 0, 0)) && t.Before(now.AddDate(10, 0, 0))
}

func (v *Validator) titleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}

func (v *Validator) maxBackfillSeconds() int {
	if v.config != nil {
		return v.config.MaxBackfillSeconds()
	}
	return 24 * 60 * 60
}
