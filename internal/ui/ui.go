// Package ui provides terminal styling for check reports.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	// Check if it's a file that's a terminal
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// UseColor reports whether output to w should be coloured. Colour is only
// used on a terminal, and never when disabled by flag or NO_COLOR.
func UseColor(w io.Writer, disabled bool) bool {
	if disabled || DetectNoColor() {
		return false
	}
	return IsTTY(w)
}
