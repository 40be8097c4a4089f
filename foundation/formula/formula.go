// File: formula.go
// Title: Formula Package Entry Points
// Description: Convenience functions over the parser, dependency extraction
//              and engine packages.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package formula

import (
	"github.com/substance/expression/foundation/formula/ast"
	"github.com/substance/expression/foundation/formula/deps"
	"github.com/substance/expression/foundation/formula/engine"
	"github.com/substance/expression/foundation/formula/parser"
)

// Parse parses source into an expression. Syntax errors are carried by the
// returned expression.
func Parse(source string) *ast.Expression {
	return parser.Parse(source)
}

// Walk visits the nodes of expr depth-first, parents before children
func Walk(expr *ast.Expression, fn func(ast.Node)) {
	ast.Walk(expr, fn)
}

// Dependencies parses source and returns the symbols it reads
func Dependencies(source string) ([]deps.Symbol, error) {
	expr := parser.Parse(source)
	if err := expr.Err(); err != nil {
		return nil, err
	}
	return deps.ExtractExpression(expr), nil
}

// NewEngine creates a reactive engine
func NewEngine(opts engine.Options) (*engine.Engine, error) {
	return engine.New(opts)
}
