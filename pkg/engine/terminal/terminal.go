// Package terminal reports properties of the process's output terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if stdout is not a terminal.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsInteractive reports whether stdout is attached to a terminal.
// Colour output is only emitted when it is.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
