// Package output provides consistent CLI notice formatting for the messages
// that accompany a report, such as watch mode progress.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/nodebot-tools/setupcheck/internal/ui"
)

// ruleWidth is the width of the separator printed between watch reports.
const ruleWidth = 40

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles ui.Styles
}

// NewStyled creates a Writer that colours its notices when useColor is set.
func NewStyled(out io.Writer, useColor bool) *Writer {
	return &Writer{
		out:    out,
		styles: ui.GetStyles(!useColor),
	}
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.Status(icon, msg)
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", w.styles.OK.Render(msg))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", w.styles.Warning.Render(msg))
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", w.styles.Error.Render(msg))
}

// Rule prints a dimmed separator line with an optional title.
func (w *Writer) Rule(title string) {
	line := strings.Repeat("─", ruleWidth)
	if title != "" {
		line = "── " + title + " " + strings.Repeat("─", max(3, ruleWidth-len([]rune(title))-4))
	}
	_, _ = fmt.Fprintln(w.out, w.styles.Dim.Render(line))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
