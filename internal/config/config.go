// Package config loads user-overridable settings for parsing and storage.
// Settings live in a .cppbonsai.yaml file at the workspace root; a missing
// or unreadable file silently yields defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-workspace configuration file name.
const FileName = ".cppbonsai.yaml"

// Config holds user-overridable settings.
type Config struct {
	Parse ParseConfig `yaml:"parse"`
	Store StoreConfig `yaml:"store"`
}

// ParseConfig holds parsing settings.
type ParseConfig struct {
	// Workspace is the directory whose files count as project code.
	// Top-level constructs located outside it are excluded from the tree.
	// Default: the directory being parsed.
	Workspace string `yaml:"workspace"`

	// Extensions are the file extensions treated as C++ sources during
	// directory walks. These replace the built-in defaults when set.
	Extensions []string `yaml:"extensions"`

	// Jobs caps the number of files parsed concurrently.
	// Default: the number of CPUs.
	Jobs *int `yaml:"jobs"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Path is the SQLite database location.
	// Default: ~/.cache/cppbonsai/<workspace-name>.db.
	Path string `yaml:"path"`
}

var defaultExtensions = []string{".cpp", ".cc", ".cxx", ".h", ".hpp", ".hh"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration file from the given directory.
// Returns defaults if the file doesn't exist or doesn't parse.
func Load(dir string) *Config {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return cfg // file not found or unreadable — use defaults
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default() // invalid YAML — use defaults
	}
	return cfg
}

// EffectiveWorkspace returns the configured workspace, or dir if not set.
func (c *Config) EffectiveWorkspace(dir string) string {
	if c.Parse.Workspace != "" {
		if filepath.IsAbs(c.Parse.Workspace) {
			return c.Parse.Workspace
		}
		return filepath.Join(dir, c.Parse.Workspace)
	}
	return dir
}

// EffectiveExtensions returns the configured source extensions, or the
// built-in defaults if not set.
func (c *Config) EffectiveExtensions() []string {
	if len(c.Parse.Extensions) > 0 {
		return c.Parse.Extensions
	}
	return defaultExtensions
}

// EffectiveJobs returns the configured parallelism, or fallback if not set.
func (c *Config) EffectiveJobs(fallback int) int {
	if c.Parse.Jobs != nil && *c.Parse.Jobs > 0 {
		return *c.Parse.Jobs
	}
	return fallback
}
