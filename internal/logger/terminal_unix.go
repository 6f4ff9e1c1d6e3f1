//go:build !windows

package logger

import (
	"os"
)

// isTerminal reports whether the file descriptor is a character device,
// which is what stdout/stderr are when attached to a terminal.
func isTerminal(fd uintptr) bool {
	var f *os.File
	switch fd {
	case os.Stdout.Fd():
		f = os.Stdout
	case os.Stderr.Fd():
		f = os.Stderr
	default:
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
