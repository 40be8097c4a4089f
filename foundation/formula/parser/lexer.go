// File: lexer.go
// Title: Formula Lexical Analyzer
// Description: Converts formula source text into tokens with byte offset,
//              line and column information. Classifies identifiers into
//              cell addresses, booleans, reserved words and plain names.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18
//
// Change History:
// - 2025-10-18 v0.1.0: Initial lexer for the formula grammar

package parser

import (
	"fmt"
	"strings"

	"github.com/substance/expression/foundation/formula/ast"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Identifiers and literals
	TokenIdentifier // x, total, $data
	TokenCell       // A1, AB12
	TokenNumber     // 1, 2.5, 1e3
	TokenString     // 'text', "text"
	TokenBoolean    // true, false
	TokenKeyword    // global, function, null

	// Operators
	TokenPlus   // +
	TokenMinus  // -
	TokenStar   // *
	TokenSlash  // /
	TokenCaret  // ^
	TokenPipe   // |
	TokenAssign // =

	// Delimiters
	TokenComma        // ,
	TokenColon        // :
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftBrace    // {
	TokenRightBrace   // }
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenIllegal:      "ILLEGAL",
	TokenIdentifier:   "IDENTIFIER",
	TokenCell:         "CELL",
	TokenNumber:       "NUMBER",
	TokenString:       "STRING",
	TokenBoolean:      "BOOLEAN",
	TokenKeyword:      "KEYWORD",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenStar:         "STAR",
	TokenSlash:        "SLASH",
	TokenCaret:        "CARET",
	TokenPipe:         "PIPE",
	TokenAssign:       "ASSIGN",
	TokenComma:        "COMMA",
	TokenColon:        "COLON",
	TokenLeftParen:    "LEFT_PAREN",
	TokenRightParen:   "RIGHT_PAREN",
	TokenLeftBracket:  "LEFT_BRACKET",
	TokenRightBracket: "RIGHT_BRACKET",
	TokenLeftBrace:    "LEFT_BRACE",
	TokenRightBrace:   "RIGHT_BRACE",
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// reserved words cannot name variables, definitions, arguments or functions
var reserved = map[string]bool{
	"global":   true,
	"function": true,
	"null":     true,
}

// IsReserved reports whether word is a reserved word of the language
func IsReserved(word string) bool {
	return reserved[word] || word == "true" || word == "false"
}

// Token represents a lexical token with position information
type Token struct {
	Type     TokenType // Token type
	Value    string    // Token text (decoded for strings, message for ILLEGAL)
	Position int       // Byte position in input
	Line     int       // Line number (1-based)
	Column   int       // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return fmt.Sprintf("ILLEGAL(%s)", t.Value)
	default:
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	}
}

// Pos converts the token location into an AST position
func (t Token) Pos() ast.Position {
	return ast.Position{Line: t.Line, Column: t.Column, Offset: t.Position}
}

// describe renders the token for error messages
func (t Token) describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return fmt.Sprintf("string %q", t.Value)
	default:
		return fmt.Sprintf("'%s'", t.Value)
	}
}

// Lexer performs lexical analysis of formula input
type Lexer struct {
	input    string // Input string
	position int    // Current position in input (points to current char)
	readPos  int    // Current reading position (after current char)
	ch       byte   // Current char under examination
	line     int    // Current line number (1-based)
	column   int    // Current column number (1-based)
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos, line, column := l.position, l.line, l.column
	single := func(tt TokenType) Token {
		tok := Token{Type: tt, Value: string(l.ch), Position: pos, Line: line, Column: column}
		l.readChar()
		return tok
	}

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Position: pos, Line: line, Column: column}
	case '+':
		return single(TokenPlus)
	case '-':
		return single(TokenMinus)
	case '*':
		return single(TokenStar)
	case '/':
		return single(TokenSlash)
	case '^':
		return single(TokenCaret)
	case '|':
		return single(TokenPipe)
	case '=':
		return single(TokenAssign)
	case ',':
		return single(TokenComma)
	case ':':
		return single(TokenColon)
	case '(':
		return single(TokenLeftParen)
	case ')':
		return single(TokenRightParen)
	case '[':
		return single(TokenLeftBracket)
	case ']':
		return single(TokenRightBracket)
	case '{':
		return single(TokenLeftBrace)
	case '}':
		return single(TokenRightBrace)
	case '"', '\'':
		value, ok := l.readString()
		if !ok {
			return Token{Type: TokenIllegal, Value: "unterminated string literal", Position: pos, Line: line, Column: column}
		}
		return Token{Type: TokenString, Value: value, Position: pos, Line: line, Column: column}
	}

	switch {
	case isDigit(l.ch):
		value, ok := l.readNumber()
		if !ok {
			return Token{Type: TokenIllegal, Value: fmt.Sprintf("malformed number '%s'", value), Position: pos, Line: line, Column: column}
		}
		return Token{Type: TokenNumber, Value: value, Position: pos, Line: line, Column: column}
	case isIdentStart(l.ch):
		ident := l.readIdentifier()
		return Token{Type: lookupIdent(ident), Value: ident, Position: pos, Line: line, Column: column}
	}

	tok := Token{Type: TokenIllegal, Value: fmt.Sprintf("unexpected character '%c'", l.ch), Position: pos, Line: line, Column: column}
	l.readChar()
	return tok
}

// Tokenize returns all tokens up to and including EOF. The first illegal
// token is returned as a syntax error.
func (l *Lexer) Tokenize() ([]Token, *ast.SyntaxError) {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenIllegal {
			return tokens, &ast.SyntaxError{Message: tok.Value, Position: tok.Pos()}
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.position = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads digits, an optional fraction and an optional exponent
func (l *Lexer) readNumber() (string, bool) {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		if !isDigit(l.ch) {
			return l.input[start:l.position], false
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return l.input[start:l.position], false
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if isIdentStart(l.ch) {
		for isIdentStart(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		return l.input[start:l.position], false
	}
	return l.input[start:l.position], true
}

// readString reads a quoted string and resolves escapes
func (l *Lexer) readString() (string, bool) {
	quote := l.ch
	var b strings.Builder
	l.readChar()

	for l.ch != quote {
		if l.ch == 0 && l.position >= len(l.input) {
			return b.String(), false
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 0:
				return b.String(), false
			default:
				b.WriteByte(l.ch)
			}
			l.readChar()
			continue
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // closing quote
	return b.String(), true
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func lookupIdent(ident string) TokenType {
	switch {
	case ident == "true" || ident == "false":
		return TokenBoolean
	case reserved[ident]:
		return TokenKeyword
	}
	if _, _, ok := ast.ParseCellAddress(ident); ok {
		return TokenCell
	}
	return TokenIdentifier
}

// TokenizeInput is a convenience wrapper around NewLexer(input).Tokenize()
func TokenizeInput(input string) ([]Token, *ast.SyntaxError) {
	return NewLexer(input).Tokenize()
}
