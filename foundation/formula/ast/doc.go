// File: doc.go
// Title: Formula AST Package Documentation
// Description: Package documentation for the formula syntax tree.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

/*
Package ast defines the typed syntax tree of the formula language.

Every node reports its kind through Type() and its source location through
Pos(). An Expression wraps the result of parsing one source string: it holds
either a root node or a *SyntaxError, never both.

Walk visits the nodes of an Expression in deterministic pre-order. Groups
(parenthesised sub-expressions) are transparent to Walk, and an Expression
that failed to parse yields exactly one ErrorNode:

	ast.Walk(expr, func(n ast.Node) {
		fmt.Println(n.Type())
	})

Inspect offers a pruned traversal over every node, groups included, and Dump
renders an indented tree for diagnostics.
*/
package ast
