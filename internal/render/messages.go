package render

import (
	"fmt"
	"time"
)

var milestones = map[int]string{
	1 * 60:  "1 min, settling in.",
	5 * 60:  "5 min, friction fades.",
	10 * 60: "10 min, you're in.",
	15 * 60: "15 min, keep the streak.",
	20 * 60: "20 min, clarity compounds.",
	25 * 60: "25 min, classic pomodoro. Consider a short break soon.",
	30 * 60: "30 min, deep work zone.",
	45 * 60: "45 min, powerful block. Plan your next step.",
	60 * 60: "60 min, strong hour. Write a quick summary.",
}

// Milestone returns the encouragement shown at exactly elapsed seconds
func Milestone(elapsed int) (string, bool) {
	msg, ok := milestones[elapsed]
	return msg, ok
}

// Greeting returns the time-of-day line printed when a session starts
func Greeting(now time.Time, nickname string) string {
	var msg string
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		msg = "Good morning. Set your intention and start small."
	case hour >= 12 && hour < 17:
		msg = "Good afternoon. Keep momentum, one focused block at a time."
	case hour >= 17 && hour < 22:
		msg = "Good evening. Wrap up with clarity, avoid new rabbit holes."
	default:
		return "Late hours. Protect your energy; short, deliberate focus wins."
	}
	if nickname != "" {
		return fmt.Sprintf("%s, %s", nickname, msg)
	}
	return msg
}

// Header returns the lines printed before the live display
func Header(start time.Time, nickname, title string) []string {
	lines := []string{Greeting(start, nickname)}
	if title != "" {
		lines = append(lines, "Focusing on: "+title)
	}
	return append(lines,
		"Press Space to pause.",
		"Started at "+start.Format("15:04:05"),
		"",
	)
}
