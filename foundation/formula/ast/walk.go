// File: walk.go
// Title: AST Traversal
// Description: Pre-order traversal helpers: Walk (groups transparent, error
//              expressions yield one error node), Inspect (pruned, every
//              node) and Dump (indented tree rendering).
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package ast

import (
	"fmt"
	"strings"
)

// Children returns the direct children of a node in source order
func Children(node Node) []Node {
	switch n := node.(type) {
	case *ArrayNode:
		return n.Elements
	case *ObjectNode:
		children := make([]Node, len(n.Entries))
		for i, entry := range n.Entries {
			children[i] = entry.Value
		}
		return children
	case *DefinitionNode:
		return []Node{n.Value}
	case *FunctionNode:
		children := make([]Node, len(n.Params))
		for i, p := range n.Params {
			children[i] = p
		}
		return children
	case *CallNode:
		children := make([]Node, 0, len(n.Args)+len(n.NamedArgs))
		children = append(children, n.Args...)
		for _, arg := range n.NamedArgs {
			children = append(children, arg)
		}
		return children
	case *NamedArgumentNode:
		return []Node{n.Value}
	case *PipeNode:
		return []Node{n.Left, n.Right}
	case *GroupNode:
		return []Node{n.Expr}
	case *BinaryNode:
		return []Node{n.Left, n.Right}
	default:
		return nil
	}
}

// Walk visits every node of the expression in pre-order. Group nodes are
// skipped (their child is visited in their place). A failed parse produces a
// single ErrorNode visit.
func Walk(expr *Expression, visit func(Node)) {
	if expr == nil {
		return
	}
	if expr.syntaxErr != nil {
		visit(&ErrorNode{Err: expr.syntaxErr, Position: expr.syntaxErr.Position})
		return
	}
	WalkNode(expr.root, visit)
}

// WalkNode visits node and its descendants in pre-order, groups transparent
func WalkNode(node Node, visit func(Node)) {
	if node == nil {
		return
	}
	if node.Type() != TypeGroup {
		visit(node)
	}
	for _, child := range Children(node) {
		WalkNode(child, visit)
	}
}

// Inspect traverses every node including groups; returning false from fn
// skips the children of that node.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

// Types returns the Walk sequence of node types
func Types(expr *Expression) []NodeType {
	var types []NodeType
	Walk(expr, func(n Node) {
		types = append(types, n.Type())
	})
	return types
}

// Dump renders an indented tree, one node per line
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node, 0)
	return b.String()
}

func dump(b *strings.Builder, node Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s%s @%s\n", indent, node.Type(), label(node), node.Pos())
	for _, child := range Children(node) {
		dump(b, child, depth+1)
	}
}

func label(node Node) string {
	switch n := node.(type) {
	case *NumberNode, *BooleanNode, *StringNode, *CellNode, *RangeNode:
		return " " + n.String()
	case *VarNode:
		return " " + n.Name
	case *DefinitionNode:
		return " " + n.Name
	case *CallNode:
		return " " + n.Name
	case *NamedArgumentNode:
		return " " + n.Name
	case *ErrorNode:
		if n.Err != nil {
			return " " + n.Err.Message
		}
	}
	return ""
}
