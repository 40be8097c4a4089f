// File: config_test.go
// Title: Core Configuration Tests
// Description: Unit tests for loading, typed getters, defaults and
//              environment overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-18

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/substance/expression/foundation/core/error"
)

const tomlContent = `
[log]
level = "debug"

[engine]
data_symbol = "$table"
max_input_length = 512
detect_cycles = false
wait_timeout = "2s"

[builtins]
enabled = true
`

const yamlContent = `
log:
  level: info
  format: json
data:
  file: data.csv
builtins:
  enabled: false
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "mini.toml", tomlContent))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format() != FormatTOML {
		t.Errorf("Expected TOML format, got %s", cfg.Format())
	}
	if got := cfg.GetString("engine.data_symbol"); got != "$table" {
		t.Errorf("Expected $table, got %q", got)
	}
	if got := cfg.GetInt("engine.max_input_length"); got != 512 {
		t.Errorf("Expected 512, got %d", got)
	}
	if cfg.GetBool("engine.detect_cycles", true) {
		t.Error("Expected detect_cycles=false")
	}
	if got := cfg.GetDuration("engine.wait_timeout"); got != 2*time.Second {
		t.Errorf("Expected 2s, got %v", got)
	}
	// not present in the file, filled from defaults
	if got := cfg.GetString("log.format"); got != "text" {
		t.Errorf("Expected default text format, got %q", got)
	}
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "mini.yaml", yamlContent))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format() != FormatYAML {
		t.Errorf("Expected YAML format, got %s", cfg.Format())
	}
	if got := cfg.GetString("log.format"); got != "json" {
		t.Errorf("Expected json, got %q", got)
	}
	if cfg.GetBool("builtins.enabled", true) {
		t.Error("Expected builtins.enabled=false")
	}
	if got := cfg.GetString("engine.data_symbol"); got != "$data" {
		t.Errorf("Expected default $data, got %q", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(""); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT for empty path, got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "absent.toml")
	if _, err := Load(missing); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND for missing file, got %v", err)
	}

	broken := writeFile(t, "broken.toml", "[engine\nfoo = ")
	if _, err := Load(broken); !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
		t.Errorf("Expected CONFIG_ERROR for malformed file, got %v", err)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("MINI_ENGINE_DATA_SYMBOL", "$env")
	t.Setenv("MINI_ENGINE_DETECT_CYCLES", "false")
	t.Setenv("MINI_ENGINE_WAIT_TIMEOUT", "250ms")

	cfg := NewDefault()
	if got := cfg.GetString("engine.data_symbol"); got != "$env" {
		t.Errorf("Expected env override $env, got %q", got)
	}
	if cfg.GetBool("engine.detect_cycles") {
		t.Error("Expected env override to disable cycle detection")
	}
	if got := cfg.GetDuration("engine.wait_timeout"); got != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", got)
	}
}

func TestSetAndKeys(t *testing.T) {
	cfg, err := LoadFromString("[data]\nfile = \"a.csv\"\n", FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString failed: %v", err)
	}

	cfg.Set("data.sqlite_query", "SELECT 1")
	if !cfg.Has("data.sqlite_query") {
		t.Error("Expected key to exist after Set")
	}
	if cfg.Has("data.missing") {
		t.Error("Unexpected key data.missing")
	}

	found := false
	for _, k := range cfg.Keys() {
		if k == "data.file" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected data.file in keys, got %v", cfg.Keys())
	}
}

func TestGetStringSlice(t *testing.T) {
	cfg, err := LoadFromString("names = [\"sum\", \"mean\"]\n", FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString failed: %v", err)
	}
	got := cfg.GetStringSlice("names")
	if len(got) != 2 || got[0] != "sum" || got[1] != "mean" {
		t.Errorf("Expected [sum mean], got %v", got)
	}
	if got := cfg.GetStringSlice("absent", []string{"x"}); len(got) != 1 {
		t.Errorf("Expected default slice, got %v", got)
	}
}

func TestDiscoverIn(t *testing.T) {
	empty := t.TempDir()
	if got := discoverIn([]string{empty}); got != "" {
		t.Errorf("Expected no file, got %q", got)
	}

	path := writeFile(t, "mini.yaml", yamlContent)
	dir := filepath.Dir(path)
	if got := discoverIn([]string{empty, dir}); got != path {
		t.Errorf("Expected %q, got %q", path, got)
	}
}
