// Package config holds the whole configuration surface of ffind: the
// search inputs, the traversal knobs consumed by the core, and the output
// options. Defaults may be overridden by an optional YAML file, which the
// command-line flags override in turn.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration settings. Fields tagged with
// a yaml name may be set from the config file; the rest are flag-only.
type Config struct {
	// Search inputs
	Pattern string   `yaml:"-"`
	Paths   []string `yaml:"-"`

	// Ignore handling
	Hidden           bool   `yaml:"hidden"`
	NoIgnore         bool   `yaml:"-"`
	NoIgnoreVCS      bool   `yaml:"no_ignore_vcs"`
	NoIgnoreLocal    bool   `yaml:"no_ignore_local"`
	NoGlobalIgnore   bool   `yaml:"no_global_ignore"`
	NoRequireGit     bool   `yaml:"no_require_git"`
	GlobalIgnorePath string `yaml:"global_ignore_path"`

	// Matching
	CaseSensitive bool `yaml:"-"`
	IgnoreCase    bool `yaml:"-"`
	FullPath      bool `yaml:"-"`

	// Traversal
	MaxDepth      int      `yaml:"-"`
	MinDepth      int      `yaml:"-"`
	ExactDepth    int      `yaml:"-"`
	Excludes      []string `yaml:"excludes"`
	Follow        bool     `yaml:"follow"`
	OneFileSystem bool     `yaml:"one_file_system"`

	// Filtering
	Types         []string `yaml:"-"`
	Sizes         []string `yaml:"-"`
	ChangedWithin string   `yaml:"-"`
	ChangedBefore string   `yaml:"-"`

	// Output
	AbsolutePath bool     `yaml:"absolute_path"`
	Print0       bool     `yaml:"-"`
	Format       string   `yaml:"-"`
	Quiet        bool     `yaml:"-"`
	Stats        bool     `yaml:"-"`
	Color        string   `yaml:"color"`
	Exec         []string `yaml:"-"`
	Threads      int      `yaml:"threads"`

	// Logging
	Verbose  bool   `yaml:"-"`
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with the stock settings: ignore files honored,
// hidden entries skipped, unbounded depth, automatic color.
func Default() *Config {
	return &Config{
		MaxDepth:   -1,
		MinDepth:   0,
		ExactDepth: -1,
		Color:      "auto",
		Threads:    runtime.NumCPU(),
		LogLevel:   "info",
	}
}

// DefaultPath returns the conventional config file location under the
// user's configuration directory, or "" when it cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ffind", "config.yaml")
}

// Load reads the YAML config file at path on top of the defaults. A
// missing file yields the defaults without error; a malformed file is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// UseColors resolves the color mode against the output terminal.
func (c *Config) UseColors() bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}
