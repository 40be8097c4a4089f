// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     datasource
// Description: Tests for file and SQLite data loading
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package datasource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/value"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	want := value.Matrix{{1.0, 2.0}, {"x", true}}

	tests := []struct {
		name    string
		content string
	}{
		{"data.csv", "1, 2\nx,true\n"},
		{"data.json", `[[1, 2], ["x", true]]`},
		{"data.yaml", "- [1, 2]\n- [x, true]\n"},
		{"data.yml", "- [1, 2]\n- [\"x\", true]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(writeFile(t, tt.name, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !value.Equal(m, want) {
				t.Errorf("Expected %s, got %s", value.Format(want), value.Format(m))
			}
		})
	}
}

func TestDecodeCSV_RaggedAndEmpty(t *testing.T) {
	m, err := Decode(strings.NewReader("1,,3\n4\n"), FormatCSV)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(m) != 2 || len(m[0]) != 3 || m[0][1] != nil || len(m[1]) != 1 {
		t.Errorf("Unexpected matrix %s", value.Format(m))
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code mdwerror.Code
	}{
		{"unsupported extension", writeFile(t, "data.txt", "1"), mdwerror.CodeInvalidInput},
		{"missing file", filepath.Join(t.TempDir(), "missing.csv"), mdwerror.CodeNotFound},
		{"malformed json", writeFile(t, "bad.json", `[[1,`), mdwerror.CodeInvalidInput},
		{"not a list of rows", writeFile(t, "bad.yaml", "a: 1\n"), mdwerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Expected code %s, got %v", tt.code, err)
			}
		})
	}
}

func TestLoadSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data.db")
	src, err := OpenSQLite(SQLiteConfig{DSN: dsn})
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	_, err = src.DB().Exec(`
		CREATE TABLE sales (region TEXT, amount REAL, units INTEGER);
		INSERT INTO sales VALUES ('north', 10.5, 3), ('south', 4, 1);
	`)
	if err != nil {
		t.Fatalf("Failed to seed database: %v", err)
	}
	src.Close()

	m, err := LoadSQLite(context.Background(), dsn, "SELECT region, amount, units FROM sales ORDER BY region")
	if err != nil {
		t.Fatalf("LoadSQLite failed: %v", err)
	}
	want := value.Matrix{{"north", 10.5, 3.0}, {"south", 4.0, 1.0}}
	if !value.Equal(m, want) {
		t.Errorf("Expected %s, got %s", value.Format(want), value.Format(m))
	}

	_, err = LoadSQLite(context.Background(), dsn, "SELECT * FROM missing")
	if !mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
		t.Errorf("Expected DATABASE_ERROR, got %v", err)
	}
}
