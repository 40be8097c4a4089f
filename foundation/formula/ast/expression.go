// File: expression.go
// Title: Parsed Expression Container
// Description: Immutable container for the outcome of parsing one source
//              string: a root node or a syntax error.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package ast

// Expression holds a parsed root node or a syntax error, never both
type Expression struct {
	source    string
	root      Node
	syntaxErr *SyntaxError
}

// NewExpression wraps a successfully parsed tree
func NewExpression(source string, root Node) *Expression {
	return &Expression{source: source, root: root}
}

// NewErrorExpression wraps a failed parse
func NewErrorExpression(source string, err *SyntaxError) *Expression {
	return &Expression{source: source, syntaxErr: err}
}

// Root returns the root node, nil when parsing failed
func (e *Expression) Root() Node {
	return e.root
}

// SyntaxError returns the parse failure, nil on success
func (e *Expression) SyntaxError() *SyntaxError {
	return e.syntaxErr
}

// HasError reports whether parsing failed
func (e *Expression) HasError() bool {
	return e.syntaxErr != nil
}

// Err returns the syntax error as an error value (nil on success)
func (e *Expression) Err() error {
	if e.syntaxErr == nil {
		return nil
	}
	return e.syntaxErr
}

// Source returns the text the expression was parsed from
func (e *Expression) Source() string {
	return e.source
}

// Name returns the definition name when the root is a definition
func (e *Expression) Name() string {
	if def, ok := e.root.(*DefinitionNode); ok {
		return def.Name
	}
	return ""
}

// IsDefinition reports whether the expression binds a name
func (e *Expression) IsDefinition() bool {
	_, ok := e.root.(*DefinitionNode)
	return ok
}

// String returns the canonical rendering of the tree, or the error
func (e *Expression) String() string {
	if e.syntaxErr != nil {
		return e.syntaxErr.Error()
	}
	if e.root == nil {
		return ""
	}
	return e.root.String()
}
