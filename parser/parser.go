// Package parser is a Pratt (precedence-climbing) parser for the formula
// grammar, structured exactly like the teacher's karl/parser: a table of
// prefix/infix parse functions keyed by token type, driven by a single
// parseExpression(precedence) loop. Narrowed to arithmetic + cell
// references, with no statements, no lambdas, no assignment.
package parser

import (
	"strconv"

	"gridsheet/ast"
	"gridsheet/lexer"
	"gridsheet/position"
	"gridsheet/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

const (
	_ int = iota
	LOWEST
	SUM
	PRODUCT
	UNARY
)

var precedences = map[token.TokenType]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []ParseError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errors: []ParseError{}}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.CELLREF, p.parseCellRef)
	p.registerPrefix(token.PLUS, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseBinaryExpression)
	p.registerInfix(token.MINUS, p.parseBinaryExpression)
	p.registerInfix(token.ASTERISK, p.parseBinaryExpression)
	p.registerInfix(token.SLASH, p.parseBinaryExpression)

	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) addError(tok token.Token, msg string) {
	p.errors = append(p.errors, ParseError{Message: msg, Token: tok})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(p.peekToken, "expected "+string(t)+", got "+string(p.peekToken.Type))
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseExpression parses a full formula expression and requires the input
// to be exhausted afterward — trailing tokens are a syntax error.
func (p *Parser) ParseExpression() ast.Expr {
	expr := p.parseExpression(LOWEST)
	if !p.peekTokenIs(token.EOF) {
		p.addError(p.peekToken, "unexpected trailing input starting at "+p.peekToken.Literal)
	}
	return expr
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken, "unexpected token "+describeToken(p.curToken))
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func describeToken(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of formula"
	}
	if tok.Type == token.ILLEGAL {
		return "illegal character " + strconv.QuoteRune(rune(tok.Literal[0]))
	}
	return string(tok.Type) + " " + strconv.Quote(tok.Literal)
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse "+strconv.Quote(p.curToken.Literal)+" as a number")
		return nil
	}
	return &ast.NumberLiteral{Value: value, Text: p.curToken.Literal}
}

func (p *Parser) parseCellRef() ast.Expr {
	pos := position.Parse(p.curToken.Literal)
	if !pos.IsValid() {
		p.addError(p.curToken, strconv.Quote(p.curToken.Literal)+" is not a valid cell reference")
		return nil
	}
	return &ast.CellRef{Pos: pos}
}

func (p *Parser) parseUnaryExpression() ast.Expr {
	op := p.curToken.Literal[0]
	p.nextToken()
	operand := p.parseExpression(UNARY)
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpr{Op: op, Operand: operand}
}

func (p *Parser) parseBinaryExpression(left ast.Expr) ast.Expr {
	op := p.curToken.Literal[0]
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}
}

func (p *Parser) parseGroupedExpression() ast.Expr {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}
