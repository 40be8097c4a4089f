// File: doc.go
// Title: Core Error Package Documentation
// Description: Package documentation for structured errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-18

/*
Package error provides a structured error type with codes, severities and
details.

Evaluation failures of formulas are stored on engine cells as *Error values
so that callers can inspect them:

	if mdwerror.HasCode(cell.Err(), mdwerror.CodeDivisionByZero) {
		...
	}

Errors are built fluently:

	err := mdwerror.New("cell address out of bounds").
		WithCode(mdwerror.CodeOutOfBounds).
		WithOperation("evaluator.cell").
		WithDetail("address", "C9")
*/
package error
