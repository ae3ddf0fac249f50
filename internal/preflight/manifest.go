package preflight

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Manifest is the subset of package.json that is inspected. A section that
// is absent or not a JSON object is left nil.
type Manifest struct {
	Scripts      map[string]json.RawMessage
	Dependencies map[string]json.RawMessage
}

// ParseManifest decodes package.json content. It fails only when the data is
// not a JSON object.
func ParseManifest(data []byte) (*Manifest, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	if top == nil {
		return nil, errors.New("manifest is null")
	}

	return &Manifest{
		Scripts:      objectSection(top["scripts"]),
		Dependencies: objectSection(top["dependencies"]),
	}, nil
}

func objectSection(raw json.RawMessage) map[string]json.RawMessage {
	if raw == nil {
		return nil
	}
	var section map[string]json.RawMessage
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil
	}
	return section
}

// CheckManifest checks the package manifest. A missing or malformed manifest
// yields a single error and skips the remaining manifest checks; otherwise
// each required script and dependency is checked independently.
func (c *Checker) CheckManifest(root string) []CheckResult {
	const name = "manifest"
	file := c.cfg.Manifest.File

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file)))
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Debug("manifest unreadable", "file", file, "error", err.Error())
		}
		return []CheckResult{fail(name, "%s no encontrado", file)}
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		c.logger.Debug("manifest malformed", "file", file, "error", err.Error())
		return []CheckResult{fail(name, "%s tiene formato invalido", file)}
	}

	results := make([]CheckResult, 0, len(c.cfg.Manifest.Scripts)+len(c.cfg.Manifest.Dependencies))

	for _, script := range c.cfg.Manifest.Scripts {
		if _, found := manifest.Scripts[script]; found {
			results = append(results, ok("script:"+script, "Script %s definido", script))
		} else {
			results = append(results, fail("script:"+script, "Script %s no definido", script))
		}
	}

	for _, dep := range c.cfg.Manifest.Dependencies {
		if _, found := manifest.Dependencies[dep]; found {
			results = append(results, ok("dependency:"+dep, "Dependencia %s definida", dep))
		} else {
			results = append(results, fail("dependency:"+dep, "Dependencia %s faltante", dep))
		}
	}

	return results
}
