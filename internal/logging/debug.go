package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	output  io.Writer = os.Stderr
)

// SetVerbose forces debug output on regardless of FT_DEBUG
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// SetOutput redirects debug output, returning the previous writer
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

// DebugEnabled returns true if debug mode is enabled via FT_DEBUG or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("FT_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, args...)
	}
}
