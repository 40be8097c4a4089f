// File: parser.go
// Title: Formula Recursive Descent Parser
// Description: Converts token streams into formula syntax trees following
//              grammar.ebnf. Parsing never fails with a Go error: malformed
//              input yields an Expression carrying a positional SyntaxError
//              and no partial tree.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18
//
// Change History:
// - 2025-10-18 v0.1.0: Initial parser implementation

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	mdwlog "github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/ast"
)

// DefaultMaxInputLength is the input limit applied when Options leave it unset
const DefaultMaxInputLength = 4096

// Parser implements recursive descent parsing for formulas. A Parser holds
// no per-parse state and may be shared between goroutines.
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
}

// New creates a new formula parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "formula-parser"),
		options: opts,
	}
}

// Parse parses source with default options
func Parse(source string) *ast.Expression {
	return New(Options{}).Parse(source)
}

// Parse parses a formula and returns an Expression holding either the tree
// or the syntax error.
func (p *Parser) Parse(source string) *ast.Expression {
	root, err := p.parse(source)
	if err != nil {
		p.logger.Debug("formula parsing failed", mdwlog.Fields{
			"source":   source,
			"error":    err.Message,
			"position": err.Position.String(),
		})
		return ast.NewErrorExpression(source, err)
	}

	p.logger.Trace("formula parsed", mdwlog.Fields{
		"source": source,
		"root":   root.Type(),
	})
	return ast.NewExpression(source, root)
}

func (p *Parser) parse(source string) (ast.Node, *ast.SyntaxError) {
	if len(source) > p.options.MaxInputLength {
		return nil, &ast.SyntaxError{
			Message:  fmt.Sprintf("input exceeds maximum length: %d > %d", len(source), p.options.MaxInputLength),
			Position: ast.Position{Line: 1, Column: 1},
		}
	}
	if strings.TrimSpace(source) == "" {
		return nil, &ast.SyntaxError{Message: "empty expression", Position: ast.Position{Line: 1, Column: 1}}
	}

	tokens, lexErr := NewLexer(source).Tokenize()
	if lexErr != nil {
		return nil, lexErr
	}

	s := &state{tokens: tokens}
	root, err := s.parseMain()
	if err != nil {
		var syntaxErr *ast.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, syntaxErr
		}
		return nil, &ast.SyntaxError{Message: err.Error(), Position: s.current().Pos()}
	}
	return root, nil
}

// state is the cursor over the token slice of one parse
type state struct {
	tokens []Token
	pos    int
}

func (s *state) current() Token {
	return s.tokens[s.pos]
}

func (s *state) peek() Token {
	if s.pos+1 < len(s.tokens) {
		return s.tokens[s.pos+1]
	}
	return s.tokens[len(s.tokens)-1]
}

func (s *state) advance() Token {
	tok := s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return tok
}

func (s *state) is(tt TokenType) bool {
	return s.current().Type == tt
}

func (s *state) expect(tt TokenType, what string) (Token, error) {
	if !s.is(tt) {
		return Token{}, s.errorf("expected %s, found %s", what, s.current().describe())
	}
	return s.advance(), nil
}

// errorf creates a syntax error at the current token
func (s *state) errorf(format string, args ...interface{}) error {
	return &ast.SyntaxError{Message: fmt.Sprintf(format, args...), Position: s.current().Pos()}
}

// parseMain parses a definition or a plain expression and requires EOF
func (s *state) parseMain() (ast.Node, error) {
	var root ast.Node
	var err error

	if s.is(TokenIdentifier) && s.peek().Type == TokenAssign {
		root, err = s.parseDefinition()
	} else {
		root, err = s.parseExpr()
	}
	if err != nil {
		return nil, err
	}

	if !s.is(TokenEOF) {
		return nil, s.errorf("unexpected %s after expression", s.current().describe())
	}
	return root, nil
}

func (s *state) parseDefinition() (ast.Node, error) {
	name := s.advance()
	s.advance() // '='

	value, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.DefinitionNode{Name: name.Value, Value: value, Position: name.Pos()}, nil
}

func (s *state) parseExpr() (ast.Node, error) {
	return s.parsePipe()
}

// parsePipe parses additive { "|" call }
func (s *state) parsePipe() (ast.Node, error) {
	left, err := s.parseAdditive()
	if err != nil {
		return nil, err
	}

	for s.is(TokenPipe) {
		pipeTok := s.advance()
		if !s.isCallStart() {
			return nil, s.errorf("right side of '|' must be a function call, found %s", s.current().describe())
		}
		call, err := s.parseCall()
		if err != nil {
			return nil, err
		}
		left = &ast.PipeNode{Left: left, Right: call, Position: pipeTok.Pos()}
	}
	return left, nil
}

func (s *state) parseAdditive() (ast.Node, error) {
	left, err := s.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for s.is(TokenPlus) || s.is(TokenMinus) {
		opTok := s.advance()
		right, err := s.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		op := ast.TypePlus
		if opTok.Type == TokenMinus {
			op = ast.TypeMinus
		}
		left = &ast.BinaryNode{Op: op, Left: left, Right: right, Position: opTok.Pos()}
	}
	return left, nil
}

func (s *state) parseMultiplicative() (ast.Node, error) {
	left, err := s.parsePower()
	if err != nil {
		return nil, err
	}

	for s.is(TokenStar) || s.is(TokenSlash) {
		opTok := s.advance()
		right, err := s.parsePower()
		if err != nil {
			return nil, err
		}
		op := ast.TypeMult
		if opTok.Type == TokenSlash {
			op = ast.TypeDiv
		}
		left = &ast.BinaryNode{Op: op, Left: left, Right: right, Position: opTok.Pos()}
	}
	return left, nil
}

// parsePower is right associative: 2^3^2 = 2^(3^2)
func (s *state) parsePower() (ast.Node, error) {
	base, err := s.parsePrimary()
	if err != nil {
		return nil, err
	}

	if !s.is(TokenCaret) {
		return base, nil
	}
	opTok := s.advance()
	exponent, err := s.parsePower()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryNode{Op: ast.TypePower, Left: base, Right: exponent, Position: opTok.Pos()}, nil
}

func (s *state) parsePrimary() (ast.Node, error) {
	tok := s.current()

	switch tok.Type {
	case TokenNumber:
		s.advance()
		return numberNode(tok, tok.Value)

	case TokenMinus:
		if s.peek().Type != TokenNumber {
			s.advance()
			return nil, s.errorf("expected number after '-', found %s", s.current().describe())
		}
		s.advance()
		num := s.advance()
		return numberNode(tok, "-"+num.Value)

	case TokenString:
		s.advance()
		return &ast.StringNode{Value: tok.Value, Position: tok.Pos()}, nil

	case TokenBoolean:
		s.advance()
		return &ast.BooleanNode{Value: tok.Value == "true", Position: tok.Pos()}, nil

	case TokenCell:
		if s.peek().Type == TokenLeftParen {
			return s.parseCallExpr()
		}
		return s.parseCellOrRange()

	case TokenIdentifier:
		if s.peek().Type == TokenLeftParen {
			return s.parseCallExpr()
		}
		s.advance()
		return &ast.VarNode{Name: tok.Value, Position: tok.Pos()}, nil

	case TokenKeyword:
		if tok.Value == "function" {
			return s.parseFunction()
		}
		return nil, s.errorf("reserved word '%s' cannot be used here", tok.Value)

	case TokenLeftBracket:
		return s.parseArray()

	case TokenLeftBrace:
		return s.parseObject()

	case TokenLeftParen:
		s.advance()
		inner, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(TokenRightParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.GroupNode{Expr: inner, Position: tok.Pos()}, nil

	case TokenEOF:
		return nil, s.errorf("unexpected end of input")
	}

	return nil, s.errorf("unexpected %s", tok.describe())
}

func numberNode(tok Token, raw string) (ast.Node, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ast.SyntaxError{Message: fmt.Sprintf("invalid number '%s'", raw), Position: tok.Pos()}
	}
	return &ast.NumberNode{Value: v, Raw: raw, Position: tok.Pos()}, nil
}

func (s *state) parseCellOrRange() (ast.Node, error) {
	start := s.advance()
	startRow, startCol, _ := ast.ParseCellAddress(start.Value)

	if !s.is(TokenColon) {
		return &ast.CellNode{Row: startRow, Col: startCol, Position: start.Pos()}, nil
	}
	s.advance() // ':'

	end, err := s.expect(TokenCell, "cell address after ':'")
	if err != nil {
		return nil, err
	}
	endRow, endCol, _ := ast.ParseCellAddress(end.Value)

	return &ast.RangeNode{
		StartRow: startRow,
		StartCol: startCol,
		EndRow:   endRow,
		EndCol:   endCol,
		Position: start.Pos(),
	}, nil
}

// parseCallExpr avoids a typed nil inside the ast.Node interface
func (s *state) parseCallExpr() (ast.Node, error) {
	call, err := s.parseCall()
	if err != nil {
		return nil, err
	}
	return call, nil
}

func (s *state) isCallStart() bool {
	return (s.is(TokenIdentifier) || s.is(TokenCell)) && s.peek().Type == TokenLeftParen
}

// parseCall parses name "(" args ")". Named arguments must follow all
// positional ones.
func (s *state) parseCall() (*ast.CallNode, error) {
	name := s.advance()
	s.advance() // '('

	call := &ast.CallNode{Name: name.Value, Position: name.Pos()}
	if s.is(TokenRightParen) {
		s.advance()
		return call, nil
	}

	for {
		if s.is(TokenIdentifier) && s.peek().Type == TokenAssign {
			argName := s.advance()
			s.advance() // '='
			value, err := s.parseExpr()
			if err != nil {
				return nil, err
			}
			call.NamedArgs = append(call.NamedArgs, &ast.NamedArgumentNode{
				Name:     argName.Value,
				Value:    value,
				Position: argName.Pos(),
			})
		} else {
			if len(call.NamedArgs) > 0 {
				return nil, s.errorf("positional argument after named argument in call to '%s'", name.Value)
			}
			arg, err := s.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}

		switch {
		case s.is(TokenComma):
			s.advance()
		case s.is(TokenRightParen):
			s.advance()
			return call, nil
		default:
			return nil, s.errorf("expected ',' or ')' in call to '%s', found %s", name.Value, s.current().describe())
		}
	}
}

// parseFunction parses function "(" [ ID { "," ID } ] ")"
func (s *state) parseFunction() (ast.Node, error) {
	kw := s.advance()
	if _, err := s.expect(TokenLeftParen, "'(' after 'function'"); err != nil {
		return nil, err
	}

	fn := &ast.FunctionNode{Position: kw.Pos()}
	if s.is(TokenRightParen) {
		s.advance()
		return fn, nil
	}

	for {
		param, err := s.expect(TokenIdentifier, "parameter name")
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, &ast.VarNode{Name: param.Value, Position: param.Pos()})

		if s.is(TokenComma) {
			s.advance()
			continue
		}
		if _, err := s.expect(TokenRightParen, "',' or ')' in parameter list"); err != nil {
			return nil, err
		}
		return fn, nil
	}
}

func (s *state) parseArray() (ast.Node, error) {
	open := s.advance()
	arr := &ast.ArrayNode{Position: open.Pos()}

	if s.is(TokenRightBracket) {
		s.advance()
		return arr, nil
	}

	for {
		elem, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, elem)

		if s.is(TokenComma) {
			s.advance()
			continue
		}
		if _, err := s.expect(TokenRightBracket, "',' or ']'"); err != nil {
			return nil, err
		}
		return arr, nil
	}
}

func (s *state) parseObject() (ast.Node, error) {
	open := s.advance()
	obj := &ast.ObjectNode{Position: open.Pos()}

	if s.is(TokenRightBrace) {
		s.advance()
		return obj, nil
	}

	for {
		keyTok := s.current()
		switch keyTok.Type {
		case TokenIdentifier, TokenCell, TokenString:
			s.advance()
		default:
			return nil, s.errorf("expected object key, found %s", keyTok.describe())
		}
		if _, err := s.expect(TokenColon, "':' after object key"); err != nil {
			return nil, err
		}
		value, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		obj.Entries = append(obj.Entries, ast.ObjectEntry{Key: keyTok.Value, Value: value})

		if s.is(TokenComma) {
			s.advance()
			continue
		}
		if _, err := s.expect(TokenRightBrace, "',' or '}'"); err != nil {
			return nil, err
		}
		return obj, nil
	}
}
