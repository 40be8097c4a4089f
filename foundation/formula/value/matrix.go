// File: matrix.go
// Title: Data Matrix
// Description: Row-major 2-D value grid backing cell and range lookups.
//              Row 0 / column 0 is address A1.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package value

// Matrix is a row-major grid; rows may differ in length
type Matrix [][]Value

// Rows returns the number of rows
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the length of the longest row
func (m Matrix) Cols() int {
	cols := 0
	for _, row := range m {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// At returns the value at zero-based row/col
func (m Matrix) At(row, col int) (Value, bool) {
	if row < 0 || row >= len(m) || col < 0 || col >= len(m[row]) {
		return nil, false
	}
	return m[row][col], true
}

// Slice returns a copy of the inclusive rectangle. It reports false when
// any addressed cell is outside the matrix.
func (m Matrix) Slice(startRow, startCol, endRow, endCol int) (Matrix, bool) {
	if startRow > endRow || startCol > endCol {
		return nil, false
	}
	if startRow < 0 || startCol < 0 || endRow >= len(m) {
		return nil, false
	}
	for r := startRow; r <= endRow; r++ {
		if endCol >= len(m[r]) {
			return nil, false
		}
	}
	out := make(Matrix, 0, endRow-startRow+1)
	for r := startRow; r <= endRow; r++ {
		row := make([]Value, endCol-startCol+1)
		copy(row, m[r][startCol:endCol+1])
		out = append(out, row)
	}
	return out, true
}
