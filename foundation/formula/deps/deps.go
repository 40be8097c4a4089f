// File: deps.go
// Title: Dependency Extractor
// Description: Static scan of a formula tree for the symbols it reads:
//              variable names, cell addresses and ranges. Ranges also
//              contribute every cell inside their inclusive bounds.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18
//
// Change History:
// - 2025-10-18 v0.1.0: Initial implementation

package deps

import (
	"github.com/substance/expression/foundation/formula/ast"
)

// Kind classifies a dependency
type Kind int

const (
	// Var is a named variable
	Var Kind = iota

	// Cell is one address of the data matrix
	Cell

	// Range is an inclusive rectangle of the data matrix
	Range
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Var:
		return "var"
	case Cell:
		return "cell"
	case Range:
		return "range"
	default:
		return "unknown"
	}
}

// Symbol is one dependency of an expression. Row/Col are zero-based; EndRow
// and EndCol are only meaningful for ranges.
type Symbol struct {
	Kind   Kind
	Name   string
	Row    int
	Col    int
	EndRow int
	EndCol int
}

// VarSymbol creates a variable dependency
func VarSymbol(name string) Symbol {
	return Symbol{Kind: Var, Name: name}
}

// CellSymbol creates a cell dependency
func CellSymbol(row, col int) Symbol {
	return Symbol{Kind: Cell, Row: row, Col: col, EndRow: row, EndCol: col}
}

// RangeSymbol creates a range dependency as written in the source
func RangeSymbol(startRow, startCol, endRow, endCol int) Symbol {
	return Symbol{Kind: Range, Row: startRow, Col: startCol, EndRow: endRow, EndCol: endCol}
}

// String renders the symbol as it would appear in source (x, B3, A1:C4)
func (s Symbol) String() string {
	switch s.Kind {
	case Var:
		return s.Name
	case Cell:
		return ast.CellAddress(s.Row, s.Col)
	case Range:
		return ast.CellAddress(s.Row, s.Col) + ":" + ast.CellAddress(s.EndRow, s.EndCol)
	default:
		return "?"
	}
}

// IsAddress reports whether the symbol refers to the data matrix
func (s Symbol) IsAddress() bool {
	return s.Kind == Cell || s.Kind == Range
}

// DefaultMaxRangeCells bounds the cells a range may cover
const DefaultMaxRangeCells = 100000

// Extract returns the distinct symbols read by node, in order of first
// occurrence. The target of a definition, the parameters of a function
// literal and callee names are not dependencies.
func Extract(node ast.Node) []Symbol {
	return ExtractLimit(node, DefaultMaxRangeCells)
}

// ExtractLimit is Extract with a custom range bound. Ranges covering more
// than maxCells cells contribute only the range symbol itself.
func ExtractLimit(node ast.Node, maxCells int) []Symbol {
	c := &collector{seen: make(map[Symbol]bool), maxCells: maxCells}

	ast.Inspect(node, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionNode:
			return false
		case *ast.VarNode:
			c.add(VarSymbol(n.Name))
		case *ast.CellNode:
			c.add(CellSymbol(n.Row, n.Col))
		case *ast.RangeNode:
			c.addRange(n)
		}
		return true
	})

	return c.symbols
}

// ExtractExpression extracts the dependencies of a parsed expression; a
// failed parse has none.
func ExtractExpression(expr *ast.Expression) []Symbol {
	if expr == nil || expr.Root() == nil {
		return nil
	}
	return Extract(expr.Root())
}

// ExtractExpressionLimit is ExtractExpression with a custom range bound
func ExtractExpressionLimit(expr *ast.Expression, maxCells int) []Symbol {
	if expr == nil || expr.Root() == nil {
		return nil
	}
	return ExtractLimit(expr.Root(), maxCells)
}

// RangeWithin reports whether the rectangle spanned by the two corners
// covers at most maxCells cells. Corners may be given in either order; a
// non-positive maxCells selects DefaultMaxRangeCells.
func RangeWithin(startRow, startCol, endRow, endCol, maxCells int) bool {
	if maxCells <= 0 {
		maxCells = DefaultMaxRangeCells
	}
	top, bottom := minMax(startRow, endRow)
	left, right := minMax(startCol, endCol)
	rows, cols := bottom-top+1, right-left+1
	return rows <= maxCells && cols <= maxCells/rows
}

// Names returns the variable names among symbols
func Names(symbols []Symbol) []string {
	var names []string
	for _, s := range symbols {
		if s.Kind == Var {
			names = append(names, s.Name)
		}
	}
	return names
}

// HasAddress reports whether any symbol refers to the data matrix
func HasAddress(symbols []Symbol) bool {
	for _, s := range symbols {
		if s.IsAddress() {
			return true
		}
	}
	return false
}

type collector struct {
	seen     map[Symbol]bool
	symbols  []Symbol
	maxCells int
}

func (c *collector) add(s Symbol) {
	if c.seen[s] {
		return
	}
	c.seen[s] = true
	c.symbols = append(c.symbols, s)
}

// addRange enumerates the cells of a range row by row; reversed corners are
// normalised for enumeration only. Oversized ranges are not enumerated.
func (c *collector) addRange(n *ast.RangeNode) {
	if !RangeWithin(n.StartRow, n.StartCol, n.EndRow, n.EndCol, c.maxCells) {
		c.add(RangeSymbol(n.StartRow, n.StartCol, n.EndRow, n.EndCol))
		return
	}
	top, bottom := minMax(n.StartRow, n.EndRow)
	left, right := minMax(n.StartCol, n.EndCol)

	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			c.add(CellSymbol(row, col))
		}
	}
	c.add(RangeSymbol(n.StartRow, n.StartCol, n.EndRow, n.EndCol))
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
