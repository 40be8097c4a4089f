// File: error_test.go
// Title: Core Error Tests
// Description: Unit tests for the structured error type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-18

package error

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("something failed")

	if err.Error() != "something failed" {
		t.Errorf("Expected message 'something failed', got '%s'", err.Error())
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Expected code %s, got %s", CodeUnknown, err.Code())
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Expected medium severity, got %s", err.Severity())
	}
	if err.Timestamp().IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestWithCode_SetsSeverity(t *testing.T) {
	tests := []struct {
		code     Code
		severity Severity
	}{
		{CodeTypeMismatch, SeverityLow},
		{CodeCircularReference, SeverityMedium},
		{CodeConfigError, SeverityHigh},
		{CodeInternal, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.severity {
				t.Errorf("Expected severity %s, got %s", tt.severity, err.Severity())
			}
		})
	}
}

func TestWithSeverity_NotOverriddenByCode(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeTypeMismatch)
	if err.Severity() != SeverityCritical {
		t.Errorf("Expected explicit severity to survive, got %s", err.Severity())
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Fatal("Expected Wrap(nil) to return nil")
	}

	base := fmt.Errorf("disk full")
	wrapped := Wrap(base, "cannot load data")
	if wrapped.Error() != "cannot load data: disk full" {
		t.Errorf("Unexpected message: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("Expected errors.Is to find the cause")
	}

	inner := New("bad").WithCode(CodeOutOfBounds)
	outer := Wrap(inner, "cell B9")
	if outer.Code() != CodeOutOfBounds {
		t.Errorf("Expected inherited code, got %s", outer.Code())
	}
}

func TestHasCode(t *testing.T) {
	inner := New("bad").WithCode(CodeDivisionByZero)
	chained := fmt.Errorf("evaluating: %w", inner)

	if !HasCode(chained, CodeDivisionByZero) {
		t.Error("Expected HasCode to walk the chain")
	}
	if HasCode(chained, CodeTypeMismatch) {
		t.Error("Expected HasCode to be false for a different code")
	}
	if HasCode(nil, CodeDivisionByZero) {
		t.Error("Expected HasCode(nil) to be false")
	}
	if GetCode(chained) != CodeDivisionByZero {
		t.Errorf("Expected GetCode to find the code, got %s", GetCode(chained))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("Expected CodeUnknown for plain errors")
	}
}

func TestIs_MatchesOnCode(t *testing.T) {
	err := New("x").WithCode(CodeUnknownFunction)
	if !errors.Is(err, New("").WithCode(CodeUnknownFunction)) {
		t.Error("Expected errors.Is to match equal codes")
	}
	if errors.Is(err, New("")) {
		t.Error("Expected CodeUnknown targets not to match")
	}
}

func TestString_IncludesDetails(t *testing.T) {
	err := New("out of bounds").
		WithCode(CodeOutOfBounds).
		WithOperation("evaluator.cell").
		WithDetail("row", 9).
		WithDetail("col", 2)

	s := err.String()
	for _, want := range []string{"[OUT_OF_BOUNDS]", "evaluator.cell", "col=2", "row=9"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in %q", want, s)
		}
	}

	details := err.Details()
	details["row"] = 0
	if v, _ := err.Detail("row"); v != 9 {
		t.Error("Expected Details to return a copy")
	}
}

func TestIsEvaluationCode(t *testing.T) {
	if !IsEvaluationCode(CodeTypeMismatch) {
		t.Error("Expected TYPE_MISMATCH to be an evaluation code")
	}
	if IsEvaluationCode(CodeConfigError) {
		t.Error("Expected CONFIG_ERROR not to be an evaluation code")
	}
}
