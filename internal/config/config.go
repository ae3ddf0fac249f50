package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete setupcheck configuration.
// Defaults reproduce the requirements of the bot project; a project file
// only needs to list what differs.
type Config struct {
	Version        int            `yaml:"version" json:"version"`
	Runtime        RuntimeConfig  `yaml:"runtime" json:"runtime"`
	PackageManager ToolConfig     `yaml:"package_manager" json:"package_manager"`
	Tools          ToolsConfig    `yaml:"tools" json:"tools"`
	Paths          PathsConfig    `yaml:"paths" json:"paths"`
	Env            EnvConfig      `yaml:"env" json:"env"`
	Manifest       ManifestConfig `yaml:"manifest" json:"manifest"`
	Database       DatabaseConfig `yaml:"database" json:"database"`
	Watch          WatchConfig    `yaml:"watch" json:"watch"`
	Log            LogConfig      `yaml:"log" json:"log"`
}

// ToolConfig describes an external command queried for its version.
type ToolConfig struct {
	// Name is the display name used in report messages.
	Name    string   `yaml:"name" json:"name"`
	Command string   `yaml:"command" json:"command"`
	Args    []string `yaml:"args" json:"args"`
}

// RuntimeConfig is the runtime tool plus the minimum accepted major version.
type RuntimeConfig struct {
	ToolConfig `yaml:",inline"`
	MinMajor   int `yaml:"min_major" json:"min_major"`
}

// ToolsConfig holds settings shared by all external tool invocations.
type ToolsConfig struct {
	// Timeout bounds each version query. A timed-out tool counts as missing.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// PathsConfig lists paths, relative to the project root, that must exist.
type PathsConfig struct {
	Files []string `yaml:"files" json:"files"`
	Dirs  []string `yaml:"dirs" json:"dirs"`
}

// EnvConfig names the environment files inspected.
type EnvConfig struct {
	File        string `yaml:"file" json:"file"`
	ExampleFile string `yaml:"example_file" json:"example_file"`
}

// ManifestConfig describes the package manifest expectations.
type ManifestConfig struct {
	File         string   `yaml:"file" json:"file"`
	Scripts      []string `yaml:"scripts" json:"scripts"`
	Dependencies []string `yaml:"dependencies" json:"dependencies"`
}

// DatabaseConfig configures the opt-in SQLite database inspection.
type DatabaseConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Path overrides $DB_PATH / $ADB_PATH / DefaultDatabasePath.
	Path   string   `yaml:"path" json:"path"`
	Tables []string `yaml:"tables" json:"tables"`
}

// WatchConfig configures the watch subcommand.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"`
	Ignore   []string      `yaml:"ignore" json:"ignore"`
}

// LogConfig configures diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// DefaultDatabasePath is where the bot server keeps its SQLite file.
const DefaultDatabasePath = "data/bot.db"

// Project config file names, in lookup order.
var projectConfigNames = []string{".setupcheck.yaml", ".setupcheck.yml"}

// NewConfig creates a new Config with the default requirements.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Runtime: RuntimeConfig{
			ToolConfig: ToolConfig{
				Name:    "Node.js",
				Command: "node",
				Args:    []string{"--version"},
			},
			MinMajor: 20,
		},
		PackageManager: ToolConfig{
			Name:    "npm",
			Command: "npm",
			Args:    []string{"--version"},
		},
		Tools: ToolsConfig{
			Timeout: 5 * time.Second,
		},
		Paths: PathsConfig{
			Files: []string{
				"package.json",
				"src/server.js",
				"src/public/index.html",
				"src/public/style.css",
				"src/public/app.js",
				"Dockerfile",
				"docker-compose.yml",
			},
			Dirs: []string{
				"src",
				"src/public",
				"tests",
				"scripts",
			},
		},
		Env: EnvConfig{
			File:        ".env",
			ExampleFile: ".env.example",
		},
		Manifest: ManifestConfig{
			File:         "package.json",
			Scripts:      []string{"test"},
			Dependencies: []string{"express", "sqlite3", "node-telegram-bot-api"},
		},
		Database: DatabaseConfig{
			Enabled: false,
			Tables:  []string{"users", "messages"},
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
			Ignore:   []string{".git", "node_modules"},
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// ParseError reports a project config file that is not valid YAML or does
// not match the configuration schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load loads configuration for the project rooted at dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. Project config (.setupcheck.yaml in project root)
//  3. Environment variables (SETUPCHECK_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none exists.
func ProjectConfigPath(dir string) string {
	for _, name := range projectConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// loadFromFile merges the project config file if there is one.
func (c *Config) loadFromFile(dir string) error {
	path := ProjectConfigPath(dir)
	if path == "" {
		// No config file is fine - use defaults
		return nil
	}
	return c.loadYAML(path)
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return &ParseError{Path: path, Err: err}
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
// Lists replace the defaults rather than extend them, so a project can drop
// a requirement it does not have.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	mergeTool(&c.Runtime.ToolConfig, other.Runtime.ToolConfig)
	if other.Runtime.MinMajor != 0 {
		c.Runtime.MinMajor = other.Runtime.MinMajor
	}
	mergeTool(&c.PackageManager, other.PackageManager)

	if other.Tools.Timeout != 0 {
		c.Tools.Timeout = other.Tools.Timeout
	}

	if other.Paths.Files != nil {
		c.Paths.Files = other.Paths.Files
	}
	if other.Paths.Dirs != nil {
		c.Paths.Dirs = other.Paths.Dirs
	}

	if other.Env.File != "" {
		c.Env.File = other.Env.File
	}
	if other.Env.ExampleFile != "" {
		c.Env.ExampleFile = other.Env.ExampleFile
	}

	if other.Manifest.File != "" {
		c.Manifest.File = other.Manifest.File
	}
	if other.Manifest.Scripts != nil {
		c.Manifest.Scripts = other.Manifest.Scripts
	}
	if other.Manifest.Dependencies != nil {
		c.Manifest.Dependencies = other.Manifest.Dependencies
	}

	// enabled is boolean - a file can only switch it on
	if other.Database.Enabled {
		c.Database.Enabled = true
	}
	if other.Database.Path != "" {
		c.Database.Path = other.Database.Path
	}
	if other.Database.Tables != nil {
		c.Database.Tables = other.Database.Tables
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.Ignore != nil {
		c.Watch.Ignore = other.Watch.Ignore
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

func mergeTool(dst *ToolConfig, src ToolConfig) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Command != "" {
		dst.Command = src.Command
	}
	if src.Args != nil {
		dst.Args = src.Args
	}
}

// applyEnvOverrides applies SETUPCHECK_* environment variable overrides.
// Unparseable values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SETUPCHECK_MIN_RUNTIME_MAJOR"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Runtime.MinMajor = n
		}
	}
	if v := os.Getenv("SETUPCHECK_TOOL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			c.Tools.Timeout = d
		}
	}
	if v := os.Getenv("SETUPCHECK_CHECK_DB"); v != "" {
		c.Database.Enabled = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("SETUPCHECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SETUPCHECK_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Runtime.Command) == "" {
		return fmt.Errorf("runtime.command must not be empty")
	}
	if c.Runtime.MinMajor < 1 {
		return fmt.Errorf("runtime.min_major must be at least 1, got %d", c.Runtime.MinMajor)
	}
	if strings.TrimSpace(c.PackageManager.Command) == "" {
		return fmt.Errorf("package_manager.command must not be empty")
	}
	if c.Tools.Timeout <= 0 {
		return fmt.Errorf("tools.timeout must be positive, got %s", c.Tools.Timeout)
	}
	if strings.TrimSpace(c.Manifest.File) == "" {
		return fmt.Errorf("manifest.file must not be empty")
	}
	for _, p := range append(append([]string{}, c.Paths.Files...), c.Paths.Dirs...) {
		if filepath.IsAbs(p) {
			return fmt.Errorf("paths must be relative to the project root, got %s", p)
		}
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Log.Level)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("log.format must be 'text' or 'json', got %s", c.Log.Format)
	}

	return nil
}

// FindProjectRoot finds the project root directory.
// It walks up from startDir looking for package.json, a .git directory or a
// .setupcheck.yaml/.yml file. If none is found, startDir itself is returned.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if fileExists(filepath.Join(currentDir, "package.json")) {
			return currentDir, nil
		}

		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}

		if ProjectConfigPath(currentDir) != "" {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, return original directory
			return absDir, nil
		}
		currentDir = parentDir
	}
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// dirExists checks if a directory exists.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
