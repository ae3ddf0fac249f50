package watcher

import (
	"path"
	"strings"
)

// ignorer decides which paths below the root are skipped.
type ignorer struct {
	dirs    map[string]bool
	configs map[string]bool
}

func newIgnorer(dirs, configFiles []string) *ignorer {
	ig := &ignorer{
		dirs:    make(map[string]bool, len(dirs)),
		configs: make(map[string]bool, len(configFiles)),
	}
	for _, d := range dirs {
		ig.dirs[strings.Trim(d, "/")] = true
	}
	for _, f := range configFiles {
		ig.configs[path.Clean(f)] = true
	}
	return ig
}

// ignored reports whether rel (slash separated, relative to the root) is
// inside an ignored directory or is one. The root itself is never ignored
// for watching but produces no events.
func (ig *ignorer) ignored(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if ig.dirs[part] {
			return true
		}
	}
	return false
}

// isConfig reports whether rel is one of the watched config files.
func (ig *ignorer) isConfig(rel string) bool {
	return ig.configs[rel]
}
