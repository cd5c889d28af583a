// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for prodtrack.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.prodtrack/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/prodtrack/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete prodtrack configuration.
type Config struct {
	// WorkspaceDir is the root folder exports are written under.
	// Empty means no workspace is configured; exports refuse to run.
	WorkspaceDir string `toml:"workspace_dir"`

	// DatabasePath is the SQLite database location.
	// Default: ~/.prodtrack/prodtrack.db
	DatabasePath string `toml:"database_path"`

	// Export configures export behavior.
	Export ExportConfig `toml:"export"`
}

// ExportConfig contains export-related settings.
type ExportConfig struct {
	// OpenAfterExport opens the run folder in the OS file manager when done.
	OpenAfterExport bool `toml:"open_after_export"`

	// RecentLimit is how many entities the run snapshot lists.
	RecentLimit int `toml:"recent_limit"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in default configuration.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath: filepath.Join(configDir(), "prodtrack.db"),
		Export: ExportConfig{
			OpenAfterExport: false,
			RecentLimit:     20,
		},
	}
}

// configDir returns the prodtrack configuration directory (~/.prodtrack).
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prodtrack"
	}
	return filepath.Join(home, ".prodtrack")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(configDir(), "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the default location, applying defaults
// for missing fields and environment variable overrides on top.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the configuration from a specific file path. A missing file
// is not an error; defaults are returned.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run: defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
//
//	PRODTRACK_WORKSPACE  overrides workspace_dir
//	PRODTRACK_DB         overrides database_path
func (c *Config) applyEnv() {
	if v := os.Getenv("PRODTRACK_WORKSPACE"); v != "" {
		c.WorkspaceDir = v
	}
	if v := os.Getenv("PRODTRACK_DB"); v != "" {
		c.DatabasePath = v
	}
}

// validate checks invariants the rest of the application relies on.
func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return errors.New("config: database_path must not be empty")
	}
	if c.Export.RecentLimit < 0 {
		return errors.New("config: export.recent_limit must not be negative")
	}
	if c.Export.RecentLimit == 0 {
		c.Export.RecentLimit = DefaultConfig().Export.RecentLimit
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default location atomically.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the configuration to a specific file path atomically.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// WORKSPACE HELPERS
// =============================================================================

// HasWorkspace reports whether a workspace root is configured.
func (c *Config) HasWorkspace() bool {
	return c.WorkspaceDir != ""
}

// ExportRoot returns the directory export runs are written under.
func (c *Config) ExportRoot() string {
	return filepath.Join(c.WorkspaceDir, "exports", "runs")
}
