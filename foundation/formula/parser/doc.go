// File: doc.go
// Title: Formula Parser Package Documentation
// Description: Package documentation for the formula lexer and parser.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

/*
Package parser turns formula source text into an ast.Expression.

The grammar lives in grammar.ebnf next to this file. Operator precedence from
loosest to tightest is pipe (|), additive (+ -), multiplicative (* /) and
power (^, right associative). Parenthesised groups override precedence.

Parse never returns a Go error. Malformed input produces an Expression whose
SyntaxError() carries a message and position:

	expr := parser.Parse("foo(x=7, 7)")
	if expr.HasError() {
		fmt.Println(expr.SyntaxError())
		fmt.Println(expr.SyntaxError().Excerpt(expr.Source()))
	}

Cell addresses are uppercase column letters followed by a 1-based row number
(A1, B3, AA10). Ranges join two addresses with a colon (A1:C4). The words
global, function, null, true and false are reserved.
*/
package parser
