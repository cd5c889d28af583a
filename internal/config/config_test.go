// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.WorkspaceDir != "" {
		t.Errorf("WorkspaceDir = %q, want empty default", cfg.WorkspaceDir)
	}
	if cfg.Export.RecentLimit != 20 {
		t.Errorf("RecentLimit = %d, want 20", cfg.Export.RecentLimit)
	}
	if cfg.DatabasePath == "" {
		t.Error("DatabasePath should default to a non-empty path")
	}
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
workspace_dir = "/tmp/pm-workspace"
database_path = "/tmp/pm.db"

[export]
open_after_export = true
recent_limit = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.WorkspaceDir != "/tmp/pm-workspace" {
		t.Errorf("WorkspaceDir = %q", cfg.WorkspaceDir)
	}
	if cfg.DatabasePath != "/tmp/pm.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if !cfg.Export.OpenAfterExport {
		t.Error("OpenAfterExport should be true")
	}
	if cfg.Export.RecentLimit != 5 {
		t.Errorf("RecentLimit = %d, want 5", cfg.Export.RecentLimit)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("PRODTRACK_WORKSPACE", "/env/workspace")
	t.Setenv("PRODTRACK_DB", "/env/db.sqlite")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.WorkspaceDir != "/env/workspace" {
		t.Errorf("WorkspaceDir = %q, want env override", cfg.WorkspaceDir)
	}
	if cfg.DatabasePath != "/env/db.sqlite" {
		t.Errorf("DatabasePath = %q, want env override", cfg.DatabasePath)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.WorkspaceDir = "/saved/workspace"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.WorkspaceDir != "/saved/workspace" {
		t.Errorf("WorkspaceDir = %q after round trip", loaded.WorkspaceDir)
	}
}

func TestExportRoot(t *testing.T) {
	cfg := &Config{WorkspaceDir: "/ws"}
	want := filepath.Join("/ws", "exports", "runs")
	if got := cfg.ExportRoot(); got != want {
		t.Errorf("ExportRoot = %q, want %q", got, want)
	}
}
