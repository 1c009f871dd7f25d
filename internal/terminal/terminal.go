//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// Package terminal provides keyboard input for the live timer: single-key reads
// while running and line reads at the paused prompt, both with a poll timeout.
package terminal

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal reads from an input file, switching it between single-key and line mode.
// Non-terminal input (a pipe or file) is read as is and mode switches are no-ops.
type Terminal struct {
	fd     int
	tty    bool
	reader *bufio.Reader
	saved  *term.State
}

// New wraps in, typically os.Stdin
func New(in *os.File) *Terminal {
	fd := int(in.Fd())
	return &Terminal{
		fd:     fd,
		tty:    term.IsTerminal(fd),
		reader: bufio.NewReader(in),
	}
}

// IsTerminal reports whether the input is an interactive terminal
func (t *Terminal) IsTerminal() bool {
	return t.tty
}

// Enter switches to single-key mode: no line buffering and no echo.
// Signals such as Ctrl+C are still delivered.
func (t *Terminal) Enter() error {
	if !t.tty {
		return nil
	}
	if t.saved == nil {
		state, err := term.GetState(t.fd)
		if err != nil {
			return err
		}
		t.saved = state
	}

	termios, err := unix.IoctlGetTermios(t.fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	termios.Lflag &^= unix.ICANON | unix.ECHO
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(t.fd, ioctlWriteTermios, termios)
}

// Restore returns to the mode the terminal was in before the first Enter
func (t *Terminal) Restore() error {
	if t.saved == nil {
		return nil
	}
	return term.Restore(t.fd, t.saved)
}

// ReadKey returns the next byte, or ok=false if none arrives within timeout
func (t *Terminal) ReadKey(timeout time.Duration) (byte, bool, error) {
	ready, err := t.wait(timeout)
	if err != nil || !ready {
		return 0, false, err
	}
	b, err := t.reader.ReadByte()
	if err != nil {
		return 0, false, err
	}
	return b, true, nil
}

// ReadLine returns the next line without its terminator, or ok=false if none arrives within timeout
func (t *Terminal) ReadLine(timeout time.Duration) (string, bool, error) {
	ready, err := t.wait(timeout)
	if err != nil || !ready {
		return "", false, err
	}
	line, err := t.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

func (t *Terminal) wait(timeout time.Duration) (bool, error) {
	if t.reader.Buffered() > 0 {
		return true, nil
	}
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
