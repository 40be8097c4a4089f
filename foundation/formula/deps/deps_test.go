// File: deps_test.go
// Title: Dependency Extractor Tests
// Description: Unit tests for symbol extraction order, exclusions and
//              range expansion.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package deps

import (
	"reflect"
	"testing"

	"github.com/substance/expression/foundation/formula/parser"
)

func extractStrings(t *testing.T, source string) []string {
	t.Helper()
	expr := parser.Parse(source)
	if expr.HasError() {
		t.Fatalf("Parse(%q) failed: %v", source, expr.SyntaxError())
	}
	var out []string
	for _, s := range ExtractExpression(expr) {
		out = append(out, s.Kind.String()+":"+s.String())
	}
	return out
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"literal", "1 + 2", nil},
		{"variables in order", "y + x * y", []string{"var:y", "var:x"}},
		{"definition target excluded", "x = y + 1", []string{"var:y"}},
		{"self reference kept", "x = x + 1", []string{"var:x"}},
		{"callee not a dependency", "foo(a, b=c)", []string{"var:a", "var:c"}},
		{"function params excluded", "f = function(x, y)", nil},
		{"cell", "B3 * 2", []string{"cell:B3"}},
		{
			"range expands to cells plus range",
			"sum(A1:B2)",
			[]string{"cell:A1", "cell:B1", "cell:A2", "cell:B2", "range:A1:B2"},
		},
		{
			"reversed range enumerated normalised",
			"B2:A1",
			[]string{"cell:A1", "cell:B1", "cell:A2", "cell:B2", "range:B2:A1"},
		},
		{"pipe and composites", "[x, {k: A1}] | foo(y)", []string{"var:x", "cell:A1", "var:y"}},
		{"duplicate cells", "A1 + sum(A1:A2)", []string{"cell:A1", "cell:A2", "range:A1:A2"}},
		{"oversized range not enumerated", "sum(A1:ZZ999999)", []string{"range:A1:ZZ999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractStrings(t, tt.source)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestExtractLimit(t *testing.T) {
	expr := parser.Parse("A1:B3")
	if got := ExtractLimit(expr.Root(), 6); len(got) != 7 {
		t.Errorf("Expected 6 cells plus the range within the limit, got %d symbols", len(got))
	}
	if got := ExtractExpressionLimit(expr, 5); len(got) != 1 || got[0].Kind != Range {
		t.Errorf("Expected only the range symbol above the limit, got %v", got)
	}
}

func TestRangeWithin(t *testing.T) {
	tests := []struct {
		name                     string
		startRow, startCol       int
		endRow, endCol, maxCells int
		want                     bool
	}{
		{"exact area", 0, 0, 1, 2, 6, true},
		{"one cell over", 0, 0, 1, 2, 5, false},
		{"reversed corners", 1, 2, 0, 0, 6, true},
		{"tall column", 0, 0, 199999, 0, 0, false},
		{"huge corners", 0, 0, 1 << 60, 1 << 40, 1 << 62, false},
		{"default limit", 0, 0, 999, 99, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangeWithin(tt.startRow, tt.startCol, tt.endRow, tt.endCol, tt.maxCells); got != tt.want {
				t.Errorf("RangeWithin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractExpression_SyntaxError(t *testing.T) {
	if got := ExtractExpression(parser.Parse("1+")); got != nil {
		t.Errorf("Expected no dependencies for a failed parse, got %v", got)
	}
}

func TestNamesAndHasAddress(t *testing.T) {
	symbols := ExtractExpression(parser.Parse("a + B1 + b"))

	if names := Names(symbols); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", names)
	}
	if !HasAddress(symbols) {
		t.Error("Expected address dependency")
	}
	if HasAddress(ExtractExpression(parser.Parse("a + b"))) {
		t.Error("Unexpected address dependency")
	}
}
