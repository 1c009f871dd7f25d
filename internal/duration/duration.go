// Package duration parses and formats the human duration strings used on the
// command line, in the config file and in the persisted *_formatted columns.
package duration

import (
	"fmt"
	"math"
	"strings"

	"focus-tracker/internal/errors"
)

// MaxSeconds is the longest duration Parse accepts, about 68 years
const MaxSeconds = math.MaxInt32

// Parse converts a duration string such as "1h30m", "45s" or "25" into
// seconds. A trailing run of digits without a unit is read as minutes.
func Parse(text string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, errors.NewInvalidDurationError(text, "", "empty duration")
	}

	total := 0
	num := 0
	digits := 0
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			if digits == 0 {
				start = i
			}
			d := int(ch - '0')
			if num > (MaxSeconds-d)/10 {
				return 0, errors.NewInvalidDurationError(text, s[start:digitsEnd(s, i)], "duration too large")
			}
			num = num*10 + d
			digits++
		case ch == 'h' || ch == 'm' || ch == 's':
			if digits == 0 {
				return 0, errors.NewInvalidDurationError(text, string(ch), "missing number before unit")
			}
			if num > (MaxSeconds-total)/unitSeconds(ch) {
				return 0, errors.NewInvalidDurationError(text, s[start:i+1], "duration too large")
			}
			total += num * unitSeconds(ch)
			num, digits = 0, 0
		default:
			return 0, errors.NewInvalidDurationError(text, string(ch), "unexpected character")
		}
	}
	if digits > 0 {
		if num > (MaxSeconds-total)/60 {
			return 0, errors.NewInvalidDurationError(text, s[start:], "duration too large")
		}
		total += num * 60
	}
	if total <= 0 {
		return 0, errors.NewInvalidDurationError(text, "", "duration must be > 0")
	}
	return total, nil
}

// digitsEnd returns the index just past the run of digits containing i
func digitsEnd(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// ParseDefault parses text, returning fallback when text is empty or invalid
func ParseDefault(text string, fallback int) int {
	if seconds, err := Parse(text); err == nil {
		return seconds
	}
	return fallback
}

func unitSeconds(unit byte) int {
	switch unit {
	case 'h':
		return 3600
	case 'm':
		return 60
	default:
		return 1
	}
}

// FormatClock renders seconds as HH:MM:SS when there are hours, else MM:SS.
// Negative input is clamped to zero.
func FormatClock(seconds int) string {
	h, m, s := split(seconds)
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatCompact renders seconds as HHhMMmSSs when there are hours, else MMmSSs.
// This is the form written to the ledgers and is accepted back by Parse.
func FormatCompact(seconds int) string {
	h, m, s := split(seconds)
	if h > 0 {
		return fmt.Sprintf("%02dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%02dm%02ds", m, s)
}

// FormatHuman renders a short, unpadded form such as "1h 5m" or "42s"
// for summaries where column alignment does not matter.
func FormatHuman(seconds int) string {
	h, m, s := split(seconds)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func split(seconds int) (int, int, int) {
	if seconds < 0 {
		seconds = 0
	}
	return seconds / 3600, (seconds % 3600) / 60, seconds % 60
}
