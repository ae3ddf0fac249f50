package preflight

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodebot-tools/setupcheck/internal/config"
	"github.com/nodebot-tools/setupcheck/internal/logging"
)

// fakeTools answers version queries from a table keyed by command name.
// Commands missing from the table behave like a binary absent from PATH.
type fakeTools map[string]string

func (f fakeTools) run(_ context.Context, name string, args ...string) (string, error) {
	out, found := f[name]
	if !found {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if out == "<exit 1>" {
		return "", errors.New("exit status 1")
	}
	return out, nil
}

const validManifest = `{
  "name": "telegram-bot",
  "scripts": {"start": "node src/server.js", "test": "node --test"},
  "dependencies": {
    "express": "^4.19.2",
    "sqlite3": "^5.1.7",
    "node-telegram-bot-api": "^0.66.0"
  }
}`

// writeFiles creates each file (with parent dirs) below root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// completeProject lays out every default required file and directory.
func completeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":          validManifest,
		"src/server.js":         "const express = require(\"express\");\n",
		"src/public/index.html": "<!doctype html>\n",
		"src/public/style.css":  "body {}\n",
		"src/public/app.js":     "// client\n",
		"Dockerfile":            "FROM node:20-alpine\n",
		"docker-compose.yml":    "services: {}\n",
		"tests/server.test.js":  "\n",
		"scripts/validate.sh":   "\n",
	})
	return root
}

// newTestChecker builds a checker with fake tools and no logging.
func newTestChecker(tools fakeTools, opts ...Option) *Checker {
	base := []Option{
		WithConfig(config.NewConfig()),
		WithRunner(tools.run),
		WithLogger(logging.Discard()),
		WithGetenv(func(string) string { return "" }),
	}
	return New(append(base, opts...)...)
}

func healthyTools() fakeTools {
	return fakeTools{"node": "v20.11.1\n", "npm": "10.2.4\n"}
}

func countStatus(results []CheckResult, status CheckStatus) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func messages(results []CheckResult) string {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.Status.String() + " " + r.Message
	}
	return strings.Join(lines, "\n")
}
