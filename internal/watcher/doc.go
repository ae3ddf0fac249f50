// Package watcher reports changes below a project directory as debounced
// batches, so a caller can re-run its checks once per burst of edits.
//
// fsnotify is used when available; when it cannot be initialised (some
// network mounts and container volumes) the watcher falls back to polling.
// Directories such as .git and node_modules are never watched.
//
// Usage:
//
//	w, err := watcher.NewHybridWatcher(watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	go func() { _ = w.Start(ctx, root) }()
//
//	for batch := range w.Events() {
//	    // re-run checks
//	}
package watcher
