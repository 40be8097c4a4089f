// File: nodes.go
// Title: Formula AST Node Definitions
// Description: Defines all node types of the formula language: literals,
//              symbol references, composites, calls, pipes, definitions and
//              binary operators, together with their canonical source
//              rendering.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18
//
// Change History:
// - 2025-10-18 v0.1.0: Initial node definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType is the tag of a node variant
type NodeType string

const (
	TypeNumber        NodeType = "number"
	TypeBoolean       NodeType = "boolean"
	TypeString        NodeType = "string"
	TypeVar           NodeType = "var"
	TypeCell          NodeType = "cell"
	TypeRange         NodeType = "range"
	TypeArray         NodeType = "array"
	TypeObject        NodeType = "object"
	TypeDefinition    NodeType = "definition"
	TypeFunction      NodeType = "function"
	TypeCall          NodeType = "call"
	TypeNamedArgument NodeType = "named-argument"
	TypePipe          NodeType = "pipe"
	TypeGroup         NodeType = "group"
	TypePlus          NodeType = "plus"
	TypeMinus         NodeType = "minus"
	TypeMult          NodeType = "mult"
	TypeDiv           NodeType = "div"
	TypePower         NodeType = "power"
	TypeError         NodeType = "error"
)

// IsBinary reports whether t is one of the arithmetic operator kinds
func (t NodeType) IsBinary() bool {
	switch t {
	case TypePlus, TypeMinus, TypeMult, TypeDiv, TypePower:
		return true
	default:
		return false
	}
}

// Symbol returns the source operator of a binary kind ("" otherwise)
func (t NodeType) Symbol() string {
	switch t {
	case TypePlus:
		return "+"
	case TypeMinus:
		return "-"
	case TypeMult:
		return "*"
	case TypeDiv:
		return "/"
	case TypePower:
		return "^"
	default:
		return ""
	}
}

// Node represents the base interface for all AST nodes
type Node interface {
	// Type returns the variant tag of the node
	Type() NodeType

	// Pos returns the source position of the node
	Pos() Position

	// String returns the canonical source form of the node
	String() string
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
	Offset int // Byte offset (0-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// NumberNode is a numeric literal; negative literals carry their sign
type NumberNode struct {
	Value    float64
	Raw      string
	Position Position
}

// BooleanNode is true or false
type BooleanNode struct {
	Value    bool
	Position Position
}

// StringNode is a quoted string literal with escapes resolved
type StringNode struct {
	Value    string
	Position Position
}

// VarNode references a variable by name
type VarNode struct {
	Name     string
	Position Position
}

// CellNode references one cell of the data matrix (zero-based)
type CellNode struct {
	Row      int
	Col      int
	Position Position
}

// RangeNode references an inclusive rectangle of the data matrix
type RangeNode struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
	Position Position
}

// ArrayNode is a bracketed list of expressions
type ArrayNode struct {
	Elements []Node
	Position Position
}

// ObjectEntry is one key/value pair of an object literal
type ObjectEntry struct {
	Key   string
	Value Node
}

// ObjectNode is a braced list of key/value pairs in source order
type ObjectNode struct {
	Entries  []ObjectEntry
	Position Position
}

// DefinitionNode binds the value of an expression to a name
type DefinitionNode struct {
	Name     string
	Value    Node
	Position Position
}

// FunctionNode is a parameter list literal: function(x, y)
type FunctionNode struct {
	Params   []*VarNode
	Position Position
}

// CallNode invokes a registered function
type CallNode struct {
	Name      string
	Args      []Node
	NamedArgs []*NamedArgumentNode
	Position  Position
}

// NamedArgumentNode is a name=value argument of a call
type NamedArgumentNode struct {
	Name     string
	Value    Node
	Position Position
}

// PipeNode feeds the value of Left as first argument into Right
type PipeNode struct {
	Left     Node
	Right    *CallNode
	Position Position
}

// GroupNode is a parenthesised expression
type GroupNode struct {
	Expr     Node
	Position Position
}

// BinaryNode is an arithmetic operation; Op is one of the binary kinds
type BinaryNode struct {
	Op       NodeType
	Left     Node
	Right    Node
	Position Position
}

// ErrorNode stands for an expression that failed to parse
type ErrorNode struct {
	Err      *SyntaxError
	Position Position
}

func (n *NumberNode) Type() NodeType        { return TypeNumber }
func (n *BooleanNode) Type() NodeType       { return TypeBoolean }
func (n *StringNode) Type() NodeType        { return TypeString }
func (n *VarNode) Type() NodeType           { return TypeVar }
func (n *CellNode) Type() NodeType          { return TypeCell }
func (n *RangeNode) Type() NodeType         { return TypeRange }
func (n *ArrayNode) Type() NodeType         { return TypeArray }
func (n *ObjectNode) Type() NodeType        { return TypeObject }
func (n *DefinitionNode) Type() NodeType    { return TypeDefinition }
func (n *FunctionNode) Type() NodeType      { return TypeFunction }
func (n *CallNode) Type() NodeType          { return TypeCall }
func (n *NamedArgumentNode) Type() NodeType { return TypeNamedArgument }
func (n *PipeNode) Type() NodeType          { return TypePipe }
func (n *GroupNode) Type() NodeType         { return TypeGroup }
func (n *BinaryNode) Type() NodeType        { return n.Op }
func (n *ErrorNode) Type() NodeType         { return TypeError }

func (n *NumberNode) Pos() Position        { return n.Position }
func (n *BooleanNode) Pos() Position       { return n.Position }
func (n *StringNode) Pos() Position        { return n.Position }
func (n *VarNode) Pos() Position           { return n.Position }
func (n *CellNode) Pos() Position          { return n.Position }
func (n *RangeNode) Pos() Position         { return n.Position }
func (n *ArrayNode) Pos() Position         { return n.Position }
func (n *ObjectNode) Pos() Position        { return n.Position }
func (n *DefinitionNode) Pos() Position    { return n.Position }
func (n *FunctionNode) Pos() Position      { return n.Position }
func (n *CallNode) Pos() Position          { return n.Position }
func (n *NamedArgumentNode) Pos() Position { return n.Position }
func (n *PipeNode) Pos() Position          { return n.Position }
func (n *GroupNode) Pos() Position         { return n.Position }
func (n *BinaryNode) Pos() Position        { return n.Position }
func (n *ErrorNode) Pos() Position         { return n.Position }

// String implementations

func (n *NumberNode) String() string {
	if n.Raw != "" {
		return n.Raw
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *BooleanNode) String() string {
	return strconv.FormatBool(n.Value)
}

func (n *StringNode) String() string {
	return strconv.Quote(n.Value)
}

func (n *VarNode) String() string {
	return n.Name
}

func (n *CellNode) String() string {
	return CellAddress(n.Row, n.Col)
}

func (n *RangeNode) String() string {
	return CellAddress(n.StartRow, n.StartCol) + ":" + CellAddress(n.EndRow, n.EndCol)
}

// IsReversed reports whether the end corner lies before the start corner
func (n *RangeNode) IsReversed() bool {
	return n.EndRow < n.StartRow || n.EndCol < n.StartCol
}

func (n *ArrayNode) String() string {
	return "[" + joinNodes(n.Elements) + "]"
}

func (n *ObjectNode) String() string {
	parts := make([]string, len(n.Entries))
	for i, entry := range n.Entries {
		key := entry.Key
		if !IsIdentifier(key) {
			key = strconv.Quote(key)
		}
		parts[i] = key + ": " + entry.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (n *DefinitionNode) String() string {
	return n.Name + " = " + n.Value.String()
}

func (n *FunctionNode) String() string {
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = p.Name
	}
	return "function(" + strings.Join(names, ", ") + ")"
}

func (n *CallNode) String() string {
	parts := make([]string, 0, len(n.Args)+len(n.NamedArgs))
	for _, arg := range n.Args {
		parts = append(parts, arg.String())
	}
	for _, arg := range n.NamedArgs {
		parts = append(parts, arg.String())
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (n *NamedArgumentNode) String() string {
	return n.Name + "=" + n.Value.String()
}

func (n *PipeNode) String() string {
	return n.Left.String() + " | " + n.Right.String()
}

func (n *GroupNode) String() string {
	return "(" + n.Expr.String() + ")"
}

func (n *BinaryNode) String() string {
	return n.Left.String() + " " + n.Op.Symbol() + " " + n.Right.String()
}

func (n *ErrorNode) String() string {
	if n.Err == nil {
		return "<error>"
	}
	return "<error: " + n.Err.Message + ">"
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = node.String()
	}
	return strings.Join(parts, ", ")
}
