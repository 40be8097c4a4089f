// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes used by the formula parser, evaluator
//              and engine, plus the generic codes shared by configuration and
//              data loading.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-10-18 v0.2.0: Formula evaluation codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL"
	CodeNotFound         Code = "NOT_FOUND"
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeTimeout          Code = "TIMEOUT"
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeDatabaseError    Code = "DATABASE_ERROR"

	// Formula language
	CodeSyntax            Code = "SYNTAX"
	CodeUndefinedSymbol   Code = "UNDEFINED_SYMBOL"
	CodeOutOfBounds       Code = "OUT_OF_BOUNDS"
	CodeInvalidRange      Code = "INVALID_RANGE"
	CodeUnknownFunction   Code = "UNKNOWN_FUNCTION"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeTypeMismatch      Code = "TYPE_MISMATCH"
	CodeDivisionByZero    Code = "DIVISION_BY_ZERO"
	CodeCircularReference Code = "CIRCULAR_REFERENCE"
	CodeFunctionFailed    Code = "FUNCTION_FAILED"
	CodeEngineClosed      Code = "ENGINE_CLOSED"
)

// IsEvaluationCode reports whether the code belongs to the evaluation
// error family (stored on cells rather than returned to callers).
func IsEvaluationCode(code Code) bool {
	switch code {
	case CodeUndefinedSymbol, CodeOutOfBounds, CodeInvalidRange,
		CodeUnknownFunction, CodeInvalidArgument, CodeTypeMismatch,
		CodeDivisionByZero, CodeCircularReference, CodeFunctionFailed:
		return true
	default:
		return false
	}
}

// GetSeverityFromCode maps a code to its default severity
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeSyntax, CodeInvalidInput, CodeValidationFailed,
		CodeUndefinedSymbol, CodeOutOfBounds, CodeInvalidRange,
		CodeInvalidArgument, CodeTypeMismatch, CodeDivisionByZero:
		return SeverityLow
	case CodeUnknownFunction, CodeCircularReference, CodeFunctionFailed,
		CodeNotFound, CodeTimeout:
		return SeverityMedium
	case CodeConfigError, CodeDatabaseError, CodeEngineClosed:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
