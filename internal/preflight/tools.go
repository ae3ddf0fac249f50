package preflight

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/nodebot-tools/setupcheck/internal/config"
)

// CommandRunner runs an external command and returns its standard output.
// A missing binary and a non-zero exit are both reported as an error.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// probe queries a tool for its version. The second return is false when the
// tool is absent, fails, times out or prints nothing.
func (c *Checker) probe(ctx context.Context, tool config.ToolConfig) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Tools.Timeout)
	defer cancel()

	out, err := c.runner(ctx, tool.Command, tool.Args...)
	if err != nil {
		c.logger.Debug("tool probe failed",
			slog.String("command", tool.Command),
			slog.String("error", err.Error()))
		return "", false
	}

	out = strings.TrimSpace(out)
	return out, out != ""
}

// CheckRuntime checks that the runtime is installed and new enough.
func (c *Checker) CheckRuntime(ctx context.Context) CheckResult {
	const name = "runtime"
	rt := c.cfg.Runtime

	out, found := c.probe(ctx, rt.ToolConfig)
	if !found {
		return fail(name, "%s no encontrado en PATH", rt.Name)
	}

	major, valid := ParseMajor(out)
	if !valid {
		return fail(name, "Version de %s no valida: %s", rt.Name, out)
	}

	if major < rt.MinMajor {
		return fail(name, "%s %d detectado, se requiere %d", rt.Name, major, rt.MinMajor)
	}

	return ok(name, "%s %s", rt.Name, out)
}

// CheckPackageManager checks that the package manager is installed.
// A missing package manager is only a warning: dependencies can be
// installed by other means.
func (c *Checker) CheckPackageManager(ctx context.Context) CheckResult {
	const name = "package_manager"
	pm := c.cfg.PackageManager

	out, found := c.probe(ctx, pm)
	if !found {
		return warn(name, "%s no encontrado, instala dependencias manualmente", pm.Name)
	}

	return ok(name, "%s %s", pm.Name, out)
}

// ParseMajor extracts the major version from a "v"-prefixed version string
// such as "v20.11.1". Shorthand forms "v20" and "v20.11" are accepted.
func ParseMajor(version string) (int, bool) {
	v := strings.TrimSpace(version)
	if !semver.IsValid(v) {
		return 0, false
	}

	major, err := strconv.Atoi(strings.TrimPrefix(semver.Major(v), "v"))
	if err != nil {
		return 0, false
	}
	return major, true
}
