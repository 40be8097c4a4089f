// File: address.go
// Title: Cell Address Conversion
// Description: Conversion between A1-style cell addresses and zero-based
//              row/column indexes. Columns use bijective base-26 letters
//              (A=0, Z=25, AA=26).
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package ast

import (
	"strconv"
)

// ColumnName converts a zero-based column index to letters
func ColumnName(col int) string {
	if col < 0 {
		return "?"
	}
	var buf []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}

// CellAddress renders zero-based indexes as an address such as B3
func CellAddress(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

// MaxColumnLetters is the longest column part of an address
const MaxColumnLetters = 7

// ParseCellAddress converts an address such as B3 into zero-based indexes.
// It reports false for anything that is not one to MaxColumnLetters
// uppercase letters followed by a positive row number.
func ParseCellAddress(address string) (row, col int, ok bool) {
	i := 0
	for i < len(address) && address[i] >= 'A' && address[i] <= 'Z' {
		if i == MaxColumnLetters {
			return 0, 0, false
		}
		col = col*26 + int(address[i]-'A') + 1
		i++
	}
	if i == 0 || i == len(address) {
		return 0, 0, false
	}

	digits := address[i:]
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return 0, 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return n - 1, col - 1, true
}

// IsIdentifier reports whether s can be written as a bare identifier
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
