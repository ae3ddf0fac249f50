package preflight

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CheckEnvFile checks for the local environment file. Without it the
// application falls back to its defaults, so absence is only a warning.
func (c *Checker) CheckEnvFile(root string) CheckResult {
	const name = "env_file"
	file := c.cfg.Env.File

	if !exists(root, file) {
		return warn(name, "No existe %s, se usara la configuracion por defecto", file)
	}
	return ok(name, "Archivo %s presente", file)
}

// CheckEnvExample lists the keys declared in the example environment file.
// It returns no result at all when the file is missing, unreadable or
// declares no keys: the example file is optional guidance.
func (c *Checker) CheckEnvExample(root string) []CheckResult {
	file := c.cfg.Env.ExampleFile
	path := filepath.Join(root, filepath.FromSlash(file))

	keys, err := ReadEnvKeys(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Debug("example env file unreadable", "path", path, "error", err.Error())
		}
		return nil
	}
	if len(keys) == 0 {
		return nil
	}

	return []CheckResult{ok("env_example", "Variables en %s: %s", file, joinKeys(keys))}
}

// ReadEnvKeys opens path and returns the keys it declares, see ParseEnvKeys.
func ReadEnvKeys(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ParseEnvKeys(f)
}

// ParseEnvKeys returns, in file order, the keys of KEY=VALUE lines.
// Blank lines and lines starting with '#' are skipped; the key is the
// trimmed text before the first '='. Lines without '=' are ignored.
func ParseEnvKeys(r io.Reader) ([]string, error) {
	var keys []string

	// bufio.Reader has no line length limit; certificates often span one long value
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if key, found := envKey(line); found {
			keys = append(keys, key)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read env keys: %w", err)
		}
	}

	return keys, nil
}

// envKey returns the key declared by a single line, if any.
func envKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}

	key, _, found := strings.Cut(line, "=")
	if !found {
		return "", false
	}
	return strings.TrimSpace(key), true
}
