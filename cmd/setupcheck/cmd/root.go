// Package cmd provides the CLI commands for setupcheck.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nodebot-tools/setupcheck/internal/config"
	apperrors "github.com/nodebot-tools/setupcheck/internal/errors"
	"github.com/nodebot-tools/setupcheck/internal/logging"
	"github.com/nodebot-tools/setupcheck/internal/preflight"
	"github.com/nodebot-tools/setupcheck/internal/ui"
	"github.com/nodebot-tools/setupcheck/pkg/version"
)

// ErrChecksFailed is returned when at least one check reported an error.
// The report already says so, so it is never printed.
var ErrChecksFailed = errors.New("checks failed")

// commandRunner runs the external tool probes. Tests replace it.
var commandRunner preflight.CommandRunner = preflight.ExecRunner

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	root      string
	checkDB   bool
	noColor   bool
	debug     bool
	logFormat string
}

// NewRootCmd creates the root command for setupcheck CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "setupcheck",
		Short: "Pre-flight validation for the Node.js bot project",
		Long: `setupcheck verifies that a project is ready to run before anyone
starts or deploys it.

It checks, in order:
  - Node.js version (20 or newer) and npm presence
  - The local .env file
  - Required files and directories
  - package.json test script and dependencies
  - Keys declared in .env.example
  - The SQLite database and its tables (with --check-db)

Nothing is installed, created or modified. The exit code is 1 when any
check reports an error, 0 otherwise; warnings never fail the run.`,
		Example: `  # Check the project containing the working directory
  setupcheck

  # Check another project, including its database
  setupcheck --root ../bot --check-db

  # Re-run on every change
  setupcheck watch`,
		Version:       version.Version,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, flags)
		},
	}

	cmd.SetVersionTemplate("setupcheck version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.UsageError(err)
	})

	cmd.PersistentFlags().StringVar(&flags.root, "root", "", "Project root (default: nearest directory with package.json or .git)")
	cmd.PersistentFlags().BoolVar(&flags.checkDB, "check-db", false, "Also inspect the SQLite database")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable coloured status labels")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command. CLI errors are printed to stderr; a failed
// check run is reported by the returned error only.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, ErrChecksFailed) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), apperrors.FormatForCLI(err))
	}
	return err
}

// noArgs rejects positional arguments with a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return apperrors.UsageError(fmt.Errorf("unexpected argument %q for %q", args[0], cmd.CommandPath()))
	}
	return nil
}

// session is everything a command needs after flags are resolved.
type session struct {
	flags  *rootFlags
	root   string
	cfg    *config.Config
	logger *slog.Logger
}

// prepare resolves the project root, loads its configuration, applies the
// flags on top and sets up logging on stderr.
func (f *rootFlags) prepare(cmd *cobra.Command) (*session, error) {
	root, err := resolveRoot(f.root)
	if err != nil {
		return nil, err
	}

	cfg, err := f.loadConfig(root)
	if err != nil {
		return nil, err
	}

	logger := logging.Setup(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())
	logger.Debug("configuration loaded",
		slog.String("root", root),
		slog.String("config_file", config.ProjectConfigPath(root)),
		slog.Bool("check_db", cfg.Database.Enabled))

	return &session{flags: f, root: root, cfg: cfg, logger: logger}, nil
}

// loadConfig loads the project configuration and applies flag overrides.
func (f *rootFlags) loadConfig(root string) (*config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		var parseErr *config.ParseError
		if errors.As(err, &parseErr) {
			return nil, apperrors.New(apperrors.ErrCodeConfigParse, "cannot parse project configuration", err).
				WithDetail("path", parseErr.Path).
				WithSuggestion("Compare the file with 'setupcheck config example'")
		}
		return nil, apperrors.ConfigError("invalid project configuration", err)
	}

	if f.checkDB {
		cfg.Database.Enabled = true
	}
	if f.debug {
		cfg.Log.Level = "debug"
	}
	if f.logFormat != "" {
		format := strings.ToLower(f.logFormat)
		if format != "text" && format != "json" {
			return nil, apperrors.UsageError(fmt.Errorf("invalid --log-format %q: must be text or json", f.logFormat))
		}
		cfg.Log.Format = format
	}

	return cfg, nil
}

// resolveRoot returns the absolute project root. An explicit root must be an
// existing directory; otherwise the nearest project root above the working
// directory is used.
func resolveRoot(explicit string) (string, error) {
	if explicit == "" {
		root, err := config.FindProjectRoot(".")
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeRootNotFound, err)
		}
		return root, nil
	}

	root, err := filepath.Abs(explicit)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeRootNotFound, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", apperrors.IOError(apperrors.ErrCodeRootNotFound, "project root not found: "+explicit, err).
			WithSuggestion("Pass an existing directory to --root")
	}
	if !info.IsDir() {
		return "", apperrors.IOError(apperrors.ErrCodeRootNotDir, "project root is not a directory: "+explicit, nil).
			WithSuggestion("Pass the directory containing package.json to --root")
	}

	return root, nil
}

// newChecker builds a checker writing to the command's stdout.
func (s *session) newChecker(cmd *cobra.Command) *preflight.Checker {
	out := cmd.OutOrStdout()
	return preflight.New(
		preflight.WithConfig(s.cfg),
		preflight.WithRunner(commandRunner),
		preflight.WithOutput(out),
		preflight.WithStyler(ui.NewStatusStyler(!ui.UseColor(out, s.flags.noColor))),
		preflight.WithLogger(s.logger),
	)
}

// runCheck runs every check once and prints the report.
func runCheck(cmd *cobra.Command, flags *rootFlags) error {
	s, err := flags.prepare(cmd)
	if err != nil {
		return err
	}

	checker := s.newChecker(cmd)
	results := checker.RunAll(cmd.Context(), s.root)
	checker.PrintResults(results)

	if checker.HasErrors(results) {
		return ErrChecksFailed
	}
	return nil
}
