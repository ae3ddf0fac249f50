package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startWatcher runs a hybrid watcher on root until the test ends.
func startWatcher(t *testing.T, root string, opts Options) *HybridWatcher {
	t.Helper()
	opts.Logger = quietLogger()

	w, err := NewHybridWatcher(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx, root)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Stop()
	})

	// Give the initial directory walk time to finish
	time.Sleep(200 * time.Millisecond)
	return w
}

// waitBatch returns the next batch or nil after timeout.
func waitBatch(w *HybridWatcher, timeout time.Duration) []FileEvent {
	select {
	case batch := <-w.Events():
		return batch
	case <-time.After(timeout):
		return nil
	}
}

func TestNewHybridWatcher_InvalidOptions(t *testing.T) {
	_, err := NewHybridWatcher(Options{DebounceWindow: -1})

	assert.Error(t, err)
}

func TestHybridWatcher_Stop_Idempotent(t *testing.T) {
	w, err := NewHybridWatcher(Options{Logger: quietLogger()})
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestHybridWatcher_ReportsFileCreation(t *testing.T) {
	// Given: a running watcher
	root := t.TempDir()
	w := startWatcher(t, root, Options{DebounceWindow: 50 * time.Millisecond})

	// When: a file is created
	require.NoError(t, os.WriteFile(filepath.Join(root, "Dockerfile"), []byte("FROM node:20"), 0o644))

	// Then: a batch containing it arrives
	batch := waitBatch(w, 3*time.Second)
	require.NotEmpty(t, batch, "no batch from %s watcher", w.WatcherType())
	assert.Equal(t, "Dockerfile", batch[0].Path)
}

func TestHybridWatcher_ReportsConfigChange(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root, Options{
		DebounceWindow: 50 * time.Millisecond,
		ConfigFiles:    []string{".setupcheck.yaml"},
	})

	require.NoError(t, os.WriteFile(filepath.Join(root, ".setupcheck.yaml"), []byte("version: 1\n"), 0o644))

	batch := waitBatch(w, 3*time.Second)
	require.NotEmpty(t, batch)
	assert.Equal(t, OpConfigChange, batch[0].Operation)
}

func TestHybridWatcher_IgnoresNodeModules(t *testing.T) {
	// Given: a project with node_modules present before watching
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "express"), 0o755))
	w := startWatcher(t, root, Options{DebounceWindow: 50 * time.Millisecond})

	// When: a dependency is written
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "express", "index.js"), []byte("x"), 0o644))

	// Then: no batch is emitted
	assert.Nil(t, waitBatch(w, 500*time.Millisecond))
}

func TestHybridWatcher_WatchesNewDirectories(t *testing.T) {
	// Given: a running watcher
	root := t.TempDir()
	w := startWatcher(t, root, Options{DebounceWindow: 50 * time.Millisecond})

	// When: a directory is created, then a file inside it
	require.NoError(t, os.Mkdir(filepath.Join(root, "tests"), 0o755))
	require.NotEmpty(t, waitBatch(w, 3*time.Second))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "tests", "server.test.js"), []byte("x"), 0o644))

	// Then: the nested file is reported
	batch := waitBatch(w, 3*time.Second)
	require.NotEmpty(t, batch)
	assert.Equal(t, "tests/server.test.js", batch[0].Path)
}
