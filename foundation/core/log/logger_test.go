// File: logger_test.go
// Title: Core Logger Tests
// Description: Unit tests for level filtering, field inheritance and formats.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-18

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/substance/expression/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf}), buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WRN] visible") {
		t.Errorf("Expected warn entry, got %q", out)
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatText)
	child := parent.WithField("component", "formula-engine")

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(lines[0], "component=") {
		t.Errorf("Parent entry should not carry child fields: %q", lines[0])
	}
	if !strings.Contains(lines[1], "component=formula-engine") {
		t.Errorf("Child entry should carry its field: %q", lines[1])
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.WithName("engine").Debug("cell evaluated", Fields{"cell": "x", "status": "ready"})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v (%q)", err, buf.String())
	}

	expected := map[string]string{
		"level":   "debug",
		"message": "cell evaluated",
		"logger":  "engine",
		"cell":    "x",
		"status":  "ready",
	}
	for k, v := range expected {
		if decoded[k] != v {
			t.Errorf("Expected %s=%q, got %v", k, v, decoded[k])
		}
	}
}

func TestLogger_LogErrorUsesSeverity(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	low := mdwerror.New("bad operand").WithCode(mdwerror.CodeTypeMismatch)
	logger.LogError("evaluation failed", low)
	if buf.Len() != 0 {
		t.Errorf("Low severity errors should log at debug, got %q", buf.String())
	}

	high := mdwerror.New("cannot read").WithCode(mdwerror.CodeConfigError)
	logger.LogError("config failed", high)
	if !strings.Contains(buf.String(), "[ERR] config failed") {
		t.Errorf("Expected error entry, got %q", buf.String())
	}

	buf.Reset()
	logger.LogError("plain", errors.New("boom"))
	if !strings.Contains(buf.String(), `error="boom"`) {
		t.Errorf("Expected plain error to be logged, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"trc", LevelTrace, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
}
