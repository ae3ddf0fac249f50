// Package logging configures the diagnostic slog logger for setupcheck.
//
// Diagnostics always go to stderr. Stdout carries only the check report,
// so piping the report never mixes in log lines. By default only warnings
// and errors are logged; --debug lowers the level to debug.
package logging
