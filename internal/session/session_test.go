// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     session
// Description: Tests for configuration-driven session setup
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package session

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwconfig "github.com/substance/expression/foundation/core/config"
	mdwerror "github.com/substance/expression/foundation/core/error"
	mdwlog "github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/value"
)

func TestNew_LoadsDataAndBuiltins(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(dataPath, []byte("1,2\n3,4\n"), 0644); err != nil {
		t.Fatalf("Failed to write data: %v", err)
	}

	cfg, err := mdwconfig.LoadFromString(`
[engine]
data_symbol = "$table"
wait_timeout = "2s"

[data]
file = "`+filepath.ToSlash(dataPath)+`"
`, mdwconfig.FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString failed: %v", err)
	}

	s, err := New(context.Background(), Options{Config: cfg, LogOutput: io.Discard})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	if s.Engine.DataSymbol() != "$table" {
		t.Errorf("Expected data symbol $table, got %s", s.Engine.DataSymbol())
	}

	c := s.Engine.AddExpression("sum(A1:B2)")
	if err := s.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if !c.IsReady() || !value.Equal(c.Value(), 10.0) {
		t.Errorf("Expected ready 10, got %s %v (%v)", c.Status(), c.Value(), c.Err())
	}
}

func TestNew_BuiltinsDisabled(t *testing.T) {
	cfg := mdwconfig.NewDefault()
	cfg.Set("builtins.enabled", false)

	s, err := New(context.Background(), Options{Config: cfg, LogOutput: io.Discard})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	c := s.Engine.AddExpression("sum(1)")
	if !mdwerror.HasCode(c.Err(), mdwerror.CodeUnknownFunction) {
		t.Errorf("Expected UNKNOWN_FUNCTION without builtins, got %v", c.Err())
	}
}

func TestNew_BuiltinsExcluded(t *testing.T) {
	cfg := mdwconfig.NewDefault()
	cfg.Set("builtins.exclude", []string{"delay", "upper"})

	s, err := New(context.Background(), Options{Config: cfg, LogOutput: io.Discard})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	reg := s.Engine.Registry()
	if reg.Has("delay") || reg.Has("upper") {
		t.Error("Expected excluded builtins to be unregistered")
	}
	if !reg.Has("sum") {
		t.Error("Expected remaining builtins to be registered")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := mdwconfig.NewDefault()

	logger, err := NewLogger(cfg, &buf, true)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger.GetLevel() != mdwlog.LevelDebug {
		t.Errorf("Expected verbose logger at debug, got %s", logger.GetLevel())
	}
	logger.Debug("hello")
	if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "mini") {
		t.Errorf("Expected named debug entry in output, got %q", buf.String())
	}

	quiet, err := NewLogger(cfg, io.Discard, false)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if quiet.GetLevel() != mdwlog.LevelWarn {
		t.Errorf("Expected default level warn, got %s", quiet.GetLevel())
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
		code mdwerror.Code
	}{
		{"bad log level", "log.level", "loud", mdwerror.CodeConfigError},
		{"sqlite without query", "data.sqlite_dsn", ":memory:", mdwerror.CodeConfigError},
		{"missing data file", "data.file", "/nonexistent/data.csv", mdwerror.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mdwconfig.NewDefault()
			cfg.Set(tt.key, tt.val)
			_, err := New(context.Background(), Options{Config: cfg, LogOutput: io.Discard})
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Expected code %s, got %v", tt.code, err)
			}
		})
	}
}
