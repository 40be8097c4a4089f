// File: errors.go
// Title: Syntax Error
// Description: Positional syntax error produced by the parser and carried
//              as data inside an Expression.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package ast

import (
	"fmt"
	"strings"
)

// SyntaxError describes malformed source text
type SyntaxError struct {
	Message  string
	Position Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s",
		e.Position.Line, e.Position.Column, e.Message)
}

// Excerpt returns the offending source line with a caret under the error
// column.
func (e *SyntaxError) Excerpt(source string) string {
	lines := strings.Split(source, "\n")
	idx := e.Position.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	line := lines[idx]
	col := e.Position.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	return line + "\n" + strings.Repeat(" ", col) + "^"
}
