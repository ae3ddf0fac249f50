package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nodebot-tools/setupcheck/configs"
	"github.com/nodebot-tools/setupcheck/internal/config"
)

func TestConfigExample_PrintsTemplate(t *testing.T) {
	stdout, _, err := run(t, "config", "example")

	require.NoError(t, err)
	assert.Equal(t, configs.ProjectConfigTemplate, stdout)
}

func TestConfigShow_Defaults(t *testing.T) {
	// Given: a project without a config file
	root := t.TempDir()

	// When: showing the effective config
	stdout, _, err := run(t, "config", "show", "--root", root)

	// Then: the defaults are printed as YAML
	require.NoError(t, err)
	assert.Contains(t, stdout, "min_major: 20")
	assert.Contains(t, stdout, "timeout: 5s")

	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, config.NewConfig(), &shown)
}

func TestConfigShow_AppliesFileAndFlags(t *testing.T) {
	// Given: a project config and the --check-db flag
	root := t.TempDir()
	writeProject(t, root, map[string]string{".setupcheck.yml": "runtime:\n  min_major: 22\n"})

	// When: showing the effective config
	stdout, _, err := run(t, "config", "show", "--root", root, "--check-db")

	// Then: both overrides are visible
	require.NoError(t, err)
	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, 22, shown.Runtime.MinMajor)
	assert.True(t, shown.Database.Enabled)
}

func TestConfigPath(t *testing.T) {
	t.Run("with config file", func(t *testing.T) {
		root := t.TempDir()
		writeProject(t, root, map[string]string{".setupcheck.yaml": "version: 1\n"})

		stdout, _, err := run(t, "config", "path", "--root", root)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ".setupcheck.yaml"), strings.TrimSpace(stdout))
	})

	t.Run("without config file", func(t *testing.T) {
		stdout, _, err := run(t, "config", "path", "--root", t.TempDir())

		require.NoError(t, err)
		assert.Empty(t, stdout)
	})
}
