package parser

import (
	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/keywords"
	"github.com/navionguy/edubasic/token"
)

// sliceExpression collects the tokens of an embedded expression starting at
// curToken.  It stops at end of statement, at any of the stop token types,
// at an unmatched closing bracket or at an expression terminator keyword,
// only ever at nesting depth zero.  curToken is left on the token that
// stopped it.
func (p *Parser) sliceExpression(stops ...token.TokenType) []token.Token {
	start := p.pos
	depth := 0
	pending := "" // MID or REPLACE still waiting for its TO or WITH

scan:
	for !p.curTokenIs(token.EOF) {
		tok := p.curToken

		if depth == 0 {
			for _, s := range stops {
				if tok.Type == s {
					break scan
				}
			}

			if tok.Type == token.KEYWORD {
				switch {
				case (tok.Literal == "TO" && pending == "MID") || (tok.Literal == "WITH" && pending == "REPLACE"):
					pending = ""
				case keywords.IsExpressionTerminator(tok.Literal):
					break scan
				case tok.Literal == "MID" || tok.Literal == "REPLACE":
					pending = tok.Literal
				}
			}
		}

		switch tok.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if depth == 0 {
				break scan
			}
			depth--
		}
		p.nextToken()
	}

	return p.toks[start:p.pos:p.pos]
}

// parseEmbedded slices off an expression and parses it with a parser of
// its own, what names the statement for error messages
func (p *Parser) parseEmbedded(what string, stops ...token.TokenType) ast.Expression {
	toks := p.sliceExpression(stops...)

	if len(toks) == 0 {
		p.errorf("%s: expected expression, got %s", what, describe(p.curToken))
		return nil
	}

	sub := New(toks)
	exp := sub.parseWholeExpression()
	for _, e := range sub.errors {
		p.errorf("%s: %s", what, e)
	}
	return exp
}

// parseOptional parses an expression if anything is left before a stop
func (p *Parser) parseOptional(what string, stops ...token.TokenType) ast.Expression {
	if p.atStop(stops...) {
		return nil
	}
	return p.parseEmbedded(what, stops...)
}

// atStop is true at end of statement or on one of the stop tokens
func (p *Parser) atStop(stops ...token.TokenType) bool {
	if p.curTokenIs(token.EOF) {
		return true
	}
	for _, s := range stops {
		if p.curTokenIs(s) {
			return true
		}
	}
	return false
}

// parse a comma seperated series of expressions
func (p *Parser) parseCommaSeparatedExpressions(what string) []ast.Expression {
	var exp []ast.Expression

	for !p.curTokenIs(token.EOF) {
		e := p.parseEmbedded(what, token.COMMA)
		if e == nil {
			return nil
		}
		exp = append(exp, e)

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()

		// series can't end with a comma
		if p.curTokenIs(token.EOF) {
			p.errorf("%s: expected expression after ','", what)
			return nil
		}
	}

	return exp
}

// expect consumes curToken if it has type t
func (p *Parser) expect(what string, t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("%s: expected %s, got %s", what, t, describe(p.curToken))
	return false
}

// expectKeyword consumes curToken if it is the keyword kw
func (p *Parser) expectKeyword(what, kw string) bool {
	if p.curToken.Is(kw) {
		p.nextToken()
		return true
	}
	p.errorf("%s: expected %s, got %s", what, kw, describe(p.curToken))
	return false
}

// acceptKeyword consumes curToken when it is kw and reports whether it did
func (p *Parser) acceptKeyword(kw string) bool {
	if p.curToken.Is(kw) {
		p.nextToken()
		return true
	}
	return false
}

// parseName reads a bare identifier, labels and SUB names
func (p *Parser) parseName(what string) (string, bool) {
	if !p.curTokenIs(token.IDENT) {
		p.errorf("%s: expected name, got %s", what, describe(p.curToken))
		return "", false
	}
	name := p.curToken.Literal
	p.nextToken()
	return name, true
}

// parseVariable reads a variable identifier, rank suffix allowed
func (p *Parser) parseVariable(what string) *ast.Identifier {
	if !p.curTokenIs(token.IDENT) {
		p.errorf("%s: expected variable, got %s", what, describe(p.curToken))
		return nil
	}
	id := ast.NewIdentifier(p.curToken)
	p.nextToken()
	return id
}

// parseTarget reads something that can be assigned to, a variable,
// an array element or a structure member
func (p *Parser) parseTarget(what string, stops ...token.TokenType) ast.Expression {
	exp := p.parseEmbedded(what, stops...)
	if exp == nil {
		return nil
	}
	switch exp.(type) {
	case *ast.Identifier, *ast.AccessExpression:
		return exp
	}
	p.errorf("%s: cannot assign to %s", what, exp.String())
	return nil
}

// parsePoint reads a parenthesised (x, y) pair
func (p *Parser) parsePoint(what string) *ast.Point {
	if !p.expect(what, token.LPAREN) {
		return nil
	}
	pt := &ast.Point{}
	if pt.X = p.parseEmbedded(what, token.COMMA); pt.X == nil {
		return nil
	}
	if !p.expect(what, token.COMMA) {
		return nil
	}
	if pt.Y = p.parseEmbedded(what, token.COMMA); pt.Y == nil {
		return nil
	}
	if !p.expect(what, token.RPAREN) {
		return nil
	}
	return pt
}

// statementTokens collects whole tokens up to a keyword at depth zero,
// used to pull the inline statements out of IF c THEN a ELSE b
func (p *Parser) statementTokens(until string) []token.Token {
	start := p.pos
	depth := 0

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
		case token.KEYWORD:
			if depth == 0 && p.curToken.Literal == until {
				return p.toks[start:p.pos:p.pos]
			}
		}
		p.nextToken()
	}
	return p.toks[start:p.pos:p.pos]
}
