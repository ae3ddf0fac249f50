package preflight

import (
	"os"
	"path/filepath"
)

// CheckPaths checks every required file, then every required directory.
// A path counts as present whatever its type; a missing entry never stops
// the remaining checks.
func (c *Checker) CheckPaths(root string) []CheckResult {
	results := make([]CheckResult, 0, len(c.cfg.Paths.Files)+len(c.cfg.Paths.Dirs))

	for _, p := range c.cfg.Paths.Files {
		if exists(root, p) {
			results = append(results, ok("file:"+p, "Archivo presente: %s", p))
		} else {
			results = append(results, fail("file:"+p, "Archivo faltante: %s", p))
		}
	}

	for _, p := range c.cfg.Paths.Dirs {
		if exists(root, p) {
			results = append(results, ok("dir:"+p, "Directorio presente: %s", p))
		} else {
			results = append(results, fail("dir:"+p, "Directorio faltante: %s", p))
		}
	}

	return results
}

// exists reports whether rel exists below root.
func exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}
