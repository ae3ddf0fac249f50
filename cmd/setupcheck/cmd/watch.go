package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nodebot-tools/setupcheck/internal/config"
	apperrors "github.com/nodebot-tools/setupcheck/internal/errors"
	"github.com/nodebot-tools/setupcheck/internal/output"
	"github.com/nodebot-tools/setupcheck/internal/preflight"
	"github.com/nodebot-tools/setupcheck/internal/ui"
	"github.com/nodebot-tools/setupcheck/internal/watcher"
)

// maxListedChanges caps how many changed paths a notice names.
const maxListedChanges = 3

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the checks whenever project files change",
		Long: `Run the checks, then watch the project and print a fresh report
after every burst of changes. Editing .setupcheck.yaml reloads the
configuration. .git and node_modules are never watched.

Reports go to stdout, notices to stderr. Stop with Ctrl+C; watch mode
always exits 0.`,
		Example: `  # Watch the current project
  setupcheck watch

  # Wait for a longer quiet period before re-running
  setupcheck watch --debounce 2s`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, flags, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-running (default from config, 500ms)")

	return cmd
}

func runWatch(cmd *cobra.Command, flags *rootFlags, debounce time.Duration) error {
	// Stop on Ctrl+C or SIGTERM as well as on cancellation of the command context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := flags.prepare(cmd)
	if err != nil {
		return err
	}
	if debounce > 0 {
		s.cfg.Watch.Debounce = debounce
	}

	notices := output.NewStyled(cmd.ErrOrStderr(), ui.UseColor(cmd.ErrOrStderr(), flags.noColor))
	report := func() {
		checker := s.newChecker(cmd)
		results := checker.RunAll(ctx, s.root)
		checker.PrintResults(results)

		summary := preflight.Summarize(results)
		if summary.Passed() {
			notices.Success("Listo para ejecutar")
		} else {
			notices.Error(fmt.Sprintf("%d error(es) por corregir", summary.Errors))
		}
	}

	report()

	w, err := watcher.NewHybridWatcher(watcher.Options{
		DebounceWindow: s.cfg.Watch.Debounce,
		IgnoreDirs:     s.cfg.Watch.Ignore,
		ConfigFiles:    []string{".setupcheck.yaml", ".setupcheck.yml"},
		Logger:         s.logger,
	})
	if err != nil {
		return apperrors.IOError(apperrors.ErrCodeWatchFailed, "cannot start file watcher", err)
	}
	defer func() { _ = w.Stop() }()

	startErr := make(chan error, 1)
	go func() { startErr <- w.Start(ctx, s.root) }()

	notices.Statusf("👀", "Vigilando cambios en %s (%s, Ctrl+C para salir)", s.root, w.WatcherType())

	watchErrors := w.Errors()
	for {
		select {
		case <-ctx.Done():
			notices.Status("", "Vigilancia detenida")
			return nil

		case err := <-startErr:
			if err == nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return apperrors.IOError(apperrors.ErrCodeWatchFailed, "cannot watch "+s.root, err)

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			s.logger.Warn("watcher error", slog.String("error", err.Error()))

		case batch, ok := <-w.Events():
			if !ok {
				return nil
			}
			if hasConfigChange(batch) {
				s.reloadConfig(notices)
			}
			notices.Newline()
			notices.Rule(time.Now().Format("15:04:05"))
			notices.Statusf("🔄", "Cambios: %s", describeChanges(batch))
			report()
		}
	}
}

// reloadConfig swaps in the project configuration from disk. An invalid file
// keeps the previous configuration.
func (s *session) reloadConfig(notices *output.Writer) {
	cfg, err := s.flags.loadConfig(s.root)
	if err != nil {
		s.logger.Warn("configuration reload failed", apperrors.FormatForLog(err)...)
		notices.Warningf("Configuracion invalida, se mantiene la anterior: %s", config.ProjectConfigPath(s.root))
		return
	}
	// Watch settings only take effect on the next start
	cfg.Watch = s.cfg.Watch
	s.cfg = cfg
}

func hasConfigChange(batch []watcher.FileEvent) bool {
	for _, e := range batch {
		if e.Operation == watcher.OpConfigChange {
			return true
		}
	}
	return false
}

// describeChanges names the first few changed paths of a batch.
func describeChanges(batch []watcher.FileEvent) string {
	names := make([]string, 0, maxListedChanges)
	for i, e := range batch {
		if i == maxListedChanges {
			break
		}
		names = append(names, filepath.FromSlash(e.Path))
	}

	desc := strings.Join(names, ", ")
	if extra := len(batch) - len(names); extra > 0 {
		desc += fmt.Sprintf(" y %d mas", extra)
	}
	return desc
}
