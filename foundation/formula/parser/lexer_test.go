// File: lexer_test.go
// Title: Formula Lexer Unit Tests
// Description: Token classification and position tracking tests.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package parser

import (
	"testing"
)

func TestLexer_TokenTypes(t *testing.T) {
	input := `x = foo(A1:B2, 'a', 1.5e3, true) | bar() ^ {k: [null, global]}`
	expected := []TokenType{
		TokenIdentifier, TokenAssign, TokenIdentifier, TokenLeftParen,
		TokenCell, TokenColon, TokenCell, TokenComma,
		TokenString, TokenComma, TokenNumber, TokenComma, TokenBoolean, TokenRightParen,
		TokenPipe, TokenIdentifier, TokenLeftParen, TokenRightParen, TokenCaret,
		TokenLeftBrace, TokenIdentifier, TokenColon, TokenLeftBracket,
		TokenKeyword, TokenComma, TokenKeyword, TokenRightBracket, TokenRightBrace,
		TokenEOF,
	}

	tokens, err := TokenizeInput(input)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("Token %d: expected %s, got %s", i, expected[i], tok)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	tokens, err := TokenizeInput("a +\n  B12")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	tests := []struct {
		value  string
		line   int
		column int
		offset int
	}{
		{"a", 1, 1, 0},
		{"+", 1, 3, 2},
		{"B12", 2, 3, 6},
	}
	for i, tt := range tests {
		tok := tokens[i]
		if tok.Value != tt.value || tok.Line != tt.line || tok.Column != tt.column || tok.Position != tt.offset {
			t.Errorf("Token %d: expected %s at %d:%d (%d), got %s at %d:%d (%d)",
				i, tt.value, tt.line, tt.column, tt.offset, tok.Value, tok.Line, tok.Column, tok.Position)
		}
	}
}

func TestLexer_Classification(t *testing.T) {
	tests := []struct {
		word string
		want TokenType
	}{
		{"A1", TokenCell},
		{"AB12", TokenCell},
		{"AAAAAAAAAAAAAAA1", TokenIdentifier},
		{"A0", TokenIdentifier},
		{"a1", TokenIdentifier},
		{"SUM", TokenIdentifier},
		{"$data", TokenIdentifier},
		{"true", TokenBoolean},
		{"function", TokenKeyword},
		{"global", TokenKeyword},
	}

	for _, tt := range tests {
		if got := lookupIdent(tt.word); got != tt.want {
			t.Errorf("lookupIdent(%q) = %s, want %s", tt.word, got, tt.want)
		}
	}
}

func TestLexer_Illegal(t *testing.T) {
	inputs := map[string]string{
		"'abc":  "unterminated string literal",
		"1 # 2": "unexpected character '#'",
		"2.":    "malformed number '2.'",
	}

	for input, message := range inputs {
		_, err := TokenizeInput(input)
		if err == nil {
			t.Errorf("Expected lexer error for %q", input)
			continue
		}
		if err.Message != message {
			t.Errorf("Input %q: expected %q, got %q", input, message, err.Message)
		}
	}
}
