// Package term wraps raw-mode terminal control and size queries, adapted
// from the teacher's tui/term.go and tui/screen.go's GetSize call.
package term

import (
	"os"

	"golang.org/x/term"
)

// DefaultCols and DefaultRows are the fallback size used when the
// terminal size cannot be determined (spec §6 has no explicit fallback
// value; 80x24 follows the teacher's own screen.go fallback).
const (
	DefaultCols = 80
	DefaultRows = 24
)

// State holds the terminal's prior mode, to be restored on disable.
type State struct {
	state *term.State
}

// EnableRaw puts f into raw mode and returns the prior state for
// restoration.
func EnableRaw(f *os.File) (*State, error) {
	prev, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return &State{state: prev}, nil
}

// DisableRaw restores f to the mode captured by s. A nil State (or one
// with a nil underlying state) is a no-op, so callers can defer
// DisableRaw unconditionally even if EnableRaw failed.
func DisableRaw(f *os.File, s *State) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(int(f.Fd()), s.state)
}

// Size returns f's terminal dimensions, falling back to DefaultCols x
// DefaultRows when the ioctl fails (e.g. f is not a real tty, as in
// tests).
func Size(f *os.File) (rows, cols int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return DefaultRows, DefaultCols
	}
	return h, w
}
