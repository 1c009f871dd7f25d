package render

import (
	"fmt"
	"io"
	"strings"
)

const (
	clearLine = "\x1b[2K"
	cursorUp  = "\x1b[%dA"
)

// Screen redraws a block of lines in place on a terminal
type Screen struct {
	out   io.Writer
	drawn int
	last  []string
}

// NewScreen creates a screen writing to out
func NewScreen(out io.Writer) *Screen {
	return &Screen{out: out}
}

// Draw replaces the previously drawn block with lines.
// Returns false when the frame is identical to the last one and nothing was written.
func (s *Screen) Draw(lines []string) (bool, error) {
	if s.drawn > 0 && equalLines(s.last, lines) {
		return false, nil
	}

	var b strings.Builder
	if s.drawn > 1 {
		fmt.Fprintf(&b, cursorUp, s.drawn-1)
	}

	rows := len(lines)
	if s.drawn > rows {
		rows = s.drawn
	}
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("\r" + clearLine)
		if i < len(lines) {
			b.WriteString(lines[i])
		}
	}

	if _, err := io.WriteString(s.out, b.String()); err != nil {
		return false, err
	}
	s.drawn = rows
	s.last = append(s.last[:0], lines...)
	return true, nil
}

// Release moves below the drawn block so ordinary output can follow.
// The next Draw starts a fresh block.
func (s *Screen) Release() error {
	if s.drawn == 0 {
		return nil
	}
	s.drawn = 0
	s.last = s.last[:0]
	_, err := io.WriteString(s.out, "\n")
	return err
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
