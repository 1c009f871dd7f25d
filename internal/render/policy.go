// Package render turns elapsed session time into the lines of the live timer display.
package render

import (
	"fmt"
	"strings"

	"focus-tracker/internal/duration"
)

// Mode is the visual style of the live clock
type Mode string

const (
	ModeDigital Mode = "digital"
	ModeDots    Mode = "dots"
	ModeBar     Mode = "bar"
)

// ParseMode accepts digital, dots or bar
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDigital, ModeDots, ModeBar:
		return m, nil
	default:
		return "", fmt.Errorf("unknown clock mode %q", s)
	}
}

const (
	defaultBarWidth    = 42
	defaultClockLength = 60 * 60
)

// Options configures a Policy
type Options struct {
	Mode        Mode
	BarWidth    int
	ClockLength int // bar target in seconds
	Countdown   bool

	// Second line tracking progress toward a goal estimate
	EstimateBar     bool
	EstimateSeconds int
	WorkedBefore    int // time worked toward the estimate before this session

	Milestones bool
	Color      bool
}

// Policy computes display lines. It holds no state between calls.
type Policy struct {
	opts   Options
	styles Styles
}

// NewPolicy creates a policy, filling in defaults for unset sizes
func NewPolicy(opts Options) *Policy {
	if opts.Mode == "" {
		opts.Mode = ModeDigital
	}
	if opts.BarWidth <= 0 {
		opts.BarWidth = defaultBarWidth
	}
	if opts.ClockLength <= 0 {
		opts.ClockLength = defaultClockLength
	}
	return &Policy{opts: opts, styles: NewStyles(opts.Color)}
}

// Key is the displayed quantity; the display only needs redrawing when it changes.
// Running dots mode changes once a minute, everything else once a second.
func (p *Policy) Key(elapsed int, paused bool) int {
	if p.opts.Mode == ModeDots && !paused {
		return elapsed / 60
	}
	return elapsed
}

// Lines renders the display for elapsed seconds
func (p *Policy) Lines(elapsed int, paused bool) []string {
	if elapsed < 0 {
		elapsed = 0
	}

	var line string
	switch {
	case p.opts.Mode == ModeBar:
		line = p.barLine(elapsed)
	case p.opts.Mode == ModeDots && !paused:
		line = dotsLine(elapsed)
	default:
		line = "  " + duration.FormatClock(elapsed)
	}

	if p.opts.Milestones && !paused {
		if msg, ok := Milestone(elapsed); ok {
			line += "  -  " + p.styles.Milestone.Render(msg)
		}
	}

	lines := []string{line}
	if p.opts.EstimateBar && p.opts.EstimateSeconds > 0 {
		lines = append(lines, p.estimateLine(elapsed))
	}
	return lines
}

func dotsLine(elapsed int) string {
	minutes := elapsed / 60
	if minutes == 0 {
		return "  "
	}
	return "  " + strings.Repeat(".", minutes) + fmt.Sprint(minutes)
}

func (p *Policy) barLine(elapsed int) string {
	target := p.opts.ClockLength

	var caption string
	switch {
	case elapsed >= target:
		caption = duration.FormatClock(elapsed) + " total"
	case p.opts.Countdown:
		caption = duration.FormatClock(target-elapsed) + " left"
	default:
		caption = duration.FormatClock(elapsed) + "  goal: " + duration.FormatClock(target)
	}

	return fmt.Sprintf("  %s  %s", p.bar(elapsed, target), p.styles.Caption.Render(caption))
}

func (p *Policy) estimateLine(elapsed int) string {
	worked := p.opts.WorkedBefore + elapsed
	caption := fmt.Sprintf("%s of %s estimate",
		duration.FormatClock(worked), duration.FormatClock(p.opts.EstimateSeconds))
	return fmt.Sprintf("  %s  %s", p.bar(worked, p.opts.EstimateSeconds), p.styles.Caption.Render(caption))
}

// bar draws [███░░░] NN% with progress capped at 100%
func (p *Policy) bar(value, target int) string {
	width := p.opts.BarWidth
	percentage := 100
	filled := width
	if value < target {
		percentage = value * 100 / target
		filled = value * width / target
	}

	cells := p.styles.Filled.Render(strings.Repeat("█", filled)) +
		p.styles.Empty.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %3d%%", cells, percentage)
}
