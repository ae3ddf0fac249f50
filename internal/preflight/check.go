package preflight

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nodebot-tools/setupcheck/internal/config"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusOK indicates the expectation is satisfied.
	StatusOK CheckStatus = iota
	// StatusWarn indicates a non-blocking concern with a sensible fallback.
	StatusWarn
	// StatusError indicates a blocking condition that must be fixed.
	StatusError
)

// LabelWidth is the column width the status label is padded to.
const LabelWidth = 6

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "WARN"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	// Name identifies the check in logs, e.g. "runtime" or "file:Dockerfile".
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
}

// IsError returns true if the result blocks the run.
func (r CheckResult) IsError() bool {
	return r.Status == StatusError
}

func ok(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

func warn(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: StatusWarn, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Summary counts the blocking and non-blocking results of a run.
type Summary struct {
	Errors   int
	Warnings int
}

// Summarize derives the Summary of a result set.
func Summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusError:
			s.Errors++
		case StatusWarn:
			s.Warnings++
		}
	}
	return s
}

// Passed reports whether the run has no errors. Warnings never fail a run.
func (s Summary) Passed() bool {
	return s.Errors == 0
}

// LabelStyler decorates an already padded status label, e.g. with colour.
type LabelStyler interface {
	StyleLabel(status CheckStatus, label string) string
}

type plainStyler struct{}

func (plainStyler) StyleLabel(_ CheckStatus, label string) string { return label }

// Checker performs preflight validation checks.
type Checker struct {
	cfg    *config.Config
	runner CommandRunner
	output io.Writer
	styler LabelStyler
	logger *slog.Logger
	getenv func(string) string
}

// Option configures a Checker.
type Option func(*Checker)

// WithConfig sets the requirements to check against.
func WithConfig(cfg *config.Config) Option {
	return func(c *Checker) {
		c.cfg = cfg
	}
}

// WithRunner replaces the external command runner.
func WithRunner(r CommandRunner) Option {
	return func(c *Checker) {
		c.runner = r
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// WithStyler sets how status labels are decorated.
func WithStyler(s LabelStyler) Option {
	return func(c *Checker) {
		c.styler = s
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// WithGetenv replaces environment lookups (used for $DB_PATH).
func WithGetenv(fn func(string) string) Option {
	return func(c *Checker) {
		c.getenv = fn
	}
}

// New creates a new Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{
		cfg:    config.NewConfig(),
		runner: ExecRunner,
		output: os.Stdout,
		styler: plainStyler{},
		logger: slog.Default(),
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAll runs all preflight checks against the project at root and returns
// the results in execution order.
func (c *Checker) RunAll(ctx context.Context, root string) []CheckResult {
	var results []CheckResult

	results = append(results, c.CheckRuntime(ctx))
	results = append(results, c.CheckPackageManager(ctx))
	results = append(results, c.CheckEnvFile(root))
	results = append(results, c.CheckPaths(root)...)
	results = append(results, c.CheckManifest(root)...)
	results = append(results, c.CheckEnvExample(root)...)

	if c.cfg.Database.Enabled {
		results = append(results, c.CheckDatabase(ctx, root)...)
	}

	for _, r := range results {
		c.logger.Debug("check finished",
			slog.String("check", r.Name),
			slog.String("status", r.Status.String()))
	}

	return results
}

// HasErrors returns true if any check produced an error.
func (c *Checker) HasErrors(results []CheckResult) bool {
	for _, r := range results {
		if r.IsError() {
			return true
		}
	}
	return false
}

// FormatLine renders one result as "<LABEL padded> <message>".
func (c *Checker) FormatLine(r CheckResult) string {
	label := fmt.Sprintf("%-*s", LabelWidth, r.Status.String())
	return c.styler.StyleLabel(r.Status, label) + " " + r.Message
}

// PrintResults prints one line per result, a blank line and the summary.
func (c *Checker) PrintResults(results []CheckResult) {
	for _, r := range results {
		_, _ = fmt.Fprintln(c.output, c.FormatLine(r))
	}

	s := Summarize(results)
	_, _ = fmt.Fprintln(c.output)
	_, _ = fmt.Fprintf(c.output, "Errores: %d  Advertencias: %d\n", s.Errors, s.Warnings)
}

// joinKeys renders a key list the way the report shows it.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}
