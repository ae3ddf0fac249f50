package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTools replaces the external command runner for the duration of a test.
func fakeTools(t *testing.T, versions map[string]string) {
	t.Helper()
	previous := commandRunner
	commandRunner = func(_ context.Context, name string, _ ...string) (string, error) {
		if out, ok := versions[name]; ok {
			return out, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { commandRunner = previous })
}

func healthyTools(t *testing.T) {
	t.Helper()
	fakeTools(t, map[string]string{"node": "v20.11.1\n", "npm": "10.2.4\n"})
}

// writeProject creates files below root, creating parent directories.
func writeProject(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// completeProject returns a project that passes every default check.
func completeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeProject(t, root, map[string]string{
		"package.json": `{"scripts":{"test":"node --test"},` +
			`"dependencies":{"express":"^4","sqlite3":"^5","node-telegram-bot-api":"^0.66"}}`,
		"src/server.js":         "",
		"src/public/index.html": "",
		"src/public/style.css":  "",
		"src/public/app.js":     "",
		"Dockerfile":            "",
		"docker-compose.yml":    "",
		"tests/server.test.js":  "",
		"scripts/validate.sh":   "",
	})
	return root
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
