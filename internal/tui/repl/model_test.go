// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     repl
// Description: Tests for REPL input handling and rendering
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/engine"
	"github.com/substance/expression/foundation/formula/value"
)

func newTestModel(t *testing.T) (*Model, *engine.Engine) {
	t.Helper()
	e, err := engine.New(engine.Options{Logger: log.Discard()})
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })

	m := NewModel(e)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, e
}

func enter(m *Model, line string) tea.Cmd {
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModel_AddsExpressions(t *testing.T) {
	m, e := newTestModel(t)
	enter(m, "x = 2")
	enter(m, "y = x * 3")

	y, ok := e.Cell("y")
	if !ok || !value.Equal(y.Value(), 6.0) {
		t.Fatalf("Expected y = 6, got %v", y)
	}

	out := m.renderCells()
	if !strings.Contains(out, "x * 3") || !strings.Contains(out, "6") {
		t.Errorf("Expected rendered cells to show y, got %q", out)
	}
	if m.input.Value() != "" {
		t.Errorf("Expected input to be cleared, got %q", m.input.Value())
	}
}

func TestModel_Commands(t *testing.T) {
	m, e := newTestModel(t)

	enter(m, ":set rate 4")
	if c, ok := e.Cell("rate"); !ok || !value.Equal(c.Value(), 4.0) {
		t.Errorf("Expected rate = 4 after :set")
	}

	enter(m, ":propagate missing")
	if !m.isError {
		t.Error("Expected error for unknown cell")
	}

	enter(m, ":propagate rate")
	if m.isError || m.message != "propagated rate" {
		t.Errorf("Expected propagate confirmation, got %q", m.message)
	}

	enter(m, ":bogus")
	if !m.isError {
		t.Error("Expected error for unknown command")
	}

	if cmd := enter(m, ":quit"); cmd == nil || !m.quit {
		t.Error("Expected :quit to stop the program")
	}
}

func TestModel_LoadsData(t *testing.T) {
	m, e := newTestModel(t)
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("5,6\n"), 0644); err != nil {
		t.Fatalf("Failed to write data: %v", err)
	}

	enter(m, "B1 * 2")
	enter(m, ":data "+path)
	if m.isError {
		t.Fatalf("Expected data to load, got %q", m.message)
	}

	cells := e.Cells()
	last := cells[len(cells)-1]
	for _, c := range cells {
		if c.Name() == "" {
			last = c
		}
	}
	if !value.Equal(last.Value(), 12.0) {
		t.Errorf("Expected B1 * 2 = 12, got %v", last.Value())
	}
}

func TestModel_SyntaxErrorShown(t *testing.T) {
	m, _ := newTestModel(t)
	enter(m, "1 +")
	if !m.isError || !strings.Contains(m.View(), "syntax error") {
		t.Errorf("Expected syntax error in view, got %q", m.message)
	}
}
