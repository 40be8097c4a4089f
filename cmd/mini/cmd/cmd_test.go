package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		evalJSON, evalData, evalFile, parseTypes = false, "", "", false
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEvalCommand_JSON(t *testing.T) {
	t.Setenv("MINI_LOG_LEVEL", "error")
	out, err := run(t, "eval", "--json", "x = 4", "x * 2", "delay(3) + x")
	if err != nil {
		t.Fatalf("eval failed: %v\n%s", err, out)
	}

	var results []cellResult
	if err := jsoniter.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, want := range []float64{4, 8, 7} {
		if results[i].Status != "ready" || results[i].Value != want {
			t.Errorf("Result %d: expected ready %v, got %s %v", i, want, results[i].Status, results[i].Value)
		}
	}
}

func TestEvalCommand_File(t *testing.T) {
	t.Setenv("MINI_LOG_LEVEL", "error")
	path := filepath.Join(t.TempDir(), "cells.mini")
	if err := os.WriteFile(path, []byte("# inputs\nrate = 3\n\nrate * 5\n"), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}

	out, err := run(t, "eval", "--json", "--file", path, "rate + 1")
	if err != nil {
		t.Fatalf("eval failed: %v\n%s", err, out)
	}
	var results []cellResult
	if err := jsoniter.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, want := range []float64{3, 15, 4} {
		if results[i].Value != want {
			t.Errorf("Result %d: expected %v, got %v", i, want, results[i].Value)
		}
	}
}

func TestEvalCommand_JSONNonFinite(t *testing.T) {
	t.Setenv("MINI_LOG_LEVEL", "error")
	out, err := run(t, "eval", "--json", "2^2000", "[2^2000, 1]")
	if err != nil {
		t.Fatalf("eval failed: %v\n%s", err, out)
	}

	var results []cellResult
	if err := jsoniter.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if len(results) != 2 || results[0].Value != "+Inf" {
		t.Fatalf("Expected +Inf as text, got %v", results)
	}
	list, ok := results[1].Value.([]interface{})
	if !ok || len(list) != 2 || list[0] != "+Inf" || list[1] != 1.0 {
		t.Errorf("Expected [+Inf 1], got %v", results[1].Value)
	}
}

func TestEvalCommand_ReportsFailures(t *testing.T) {
	t.Setenv("MINI_LOG_LEVEL", "error")
	out, err := run(t, "eval", "--json", "1 +", "nope()")
	if err == nil {
		t.Fatal("Expected failure for invalid expressions")
	}
	if !strings.Contains(out, `"code": "SYNTAX"`) || !strings.Contains(out, `"code": "UNKNOWN_FUNCTION"`) {
		t.Errorf("Expected error codes in output, got %s", out)
	}
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "--types", "1 + foo(x)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if strings.TrimSpace(out) != "plus number call var" {
		t.Errorf("Unexpected type sequence %q", out)
	}

	out, err = run(t, "parse", "1 +")
	if err == nil || !strings.Contains(out, "^") {
		t.Errorf("Expected syntax error excerpt, got %q", out)
	}
}

func TestDepsCommand(t *testing.T) {
	out, err := run(t, "deps", "sum(A1:A2) + rate")
	if err != nil {
		t.Fatalf("deps failed: %v", err)
	}
	for _, want := range []string{"A1", "A2", "A1:A2", "rate"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in output %q", want, out)
		}
	}
}
