package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/keywords"
	"github.com/navionguy/edubasic/lexer"
	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/token"
)

const (
	_ int = iota
	// LOWEST defines the bottom of the priority stack
	LOWEST
	ORS      // OR NOR
	ANDS     // AND NAND
	XORS     // XOR XNOR IMP
	NOTS     // NOT x
	COMPARE  // = <> < > <= >=
	KEYWORD  // "abc" LEFT 2
	SUM      // +
	PRODUCT  // * / MOD
	POWER    // ^ **
	PREFIX   // -X or NOT X
	POSTFIX  // a[i] p.name
)

var precedences = map[token.TokenType]int{
	token.EQ:       COMPARE,
	token.NOT_EQ:   COMPARE,
	token.LT:       COMPARE,
	token.GT:       COMPARE,
	token.GTE:      COMPARE,
	token.LTE:      COMPARE,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.CARET:    POWER,
	token.POWER:    POWER,
	token.LBRACKET: POSTFIX,
	token.PERIOD:   POSTFIX,
}

// binary operators spelled as keywords
var keywordPrecedences = map[string]int{
	"OR":   ORS,
	"NOR":  ORS,
	"AND":  ANDS,
	"NAND": ANDS,
	"XOR":  XORS,
	"XNOR": XORS,
	"IMP":  XORS,
	"MOD":  PRODUCT,
}

// keyword operators that take an operand on each side
var binaryKeywords = []string{
	"LEFT", "RIGHT", "MID", "INSTR", "REPLACE", "STARTSWITH", "ENDSWITH",
}

// keyword functions that take a single operand
var unaryKeywords = map[string]bool{}

var constantKeywords = map[string]bool{}

func init() {
	for _, kw := range binaryKeywords {
		keywordPrecedences[kw] = KEYWORD
	}
	for _, kw := range keywords.ArrayOperators {
		keywordPrecedences[kw] = KEYWORD
	}

	lists := [][]string{keywords.MathFunctions, keywords.StringFunctions, keywords.ComplexFunctions, keywords.MiscFunctions}
	for _, l := range lists {
		for _, kw := range l {
			if _, binary := keywordPrecedences[kw]; !binary {
				unaryKeywords[kw] = true
			}
		}
	}

	for _, kw := range keywords.Constants {
		constantKeywords[kw] = true
	}
}

// Parser works through the tokens of a single statement or expression
type Parser struct {
	toks   []token.Token // always ends with an EOF token
	pos    int           // index of curToken
	errors []string

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// New create and return a Parser instance over toks
func New(toks []token.Token) *Parser {
	p := &Parser{
		toks:   terminate(toks),
		pos:    -2,
		errors: []string{},
	}

	// create map parsers for prefix elements
	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.REAL, p.parseRealLiteral)
	p.registerPrefix(token.COMPLEX, p.parseComplexLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.PLUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseStructureLiteral)
	p.registerPrefix(token.KEYWORD, p.parseKeywordPrefix)

	// and infix elements
	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.CARET, p.parseInfixExpression)
	p.registerInfix(token.POWER, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.GTE, p.parseInfixExpression)
	p.registerInfix(token.LTE, p.parseInfixExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.PERIOD, p.parseMemberExpression)
	p.registerInfix(token.KEYWORD, p.parseKeywordInfix)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// make sure the token list ends with EOF so the parser never runs off the end
func terminate(toks []token.Token) []token.Token {
	if len(toks) > 0 && toks[len(toks)-1].Type == token.EOF {
		return toks
	}
	eof := token.Token{Type: token.EOF}
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		eof.Line = last.Line
		eof.Column = last.Column + len(last.Literal)
	}
	return append(toks[:len(toks):len(toks)], eof)
}

// Errors returns list of errors seen while parsing
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.tokenAt(p.pos)
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) tokenAt(i int) token.Token {
	if i < 0 {
		return token.Token{}
	}
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// ParseExpression parses a complete expression from source text
func ParseExpression(src string) (ast.Expression, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}

	p := New(toks)
	exp := p.parseWholeExpression()
	if len(p.errors) > 0 {
		return nil, p.failure()
	}
	return exp, nil
}

// ParseProgram tokenizes the source and parses every statement in it.
// All of the bad lines are reported, not just the first.
func ParseProgram(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}

	prog := ast.NewProgram()
	var errs []error

	for _, line := range splitLines(toks) {
		for _, stmtToks := range splitStatements(line) {
			stmt, err := ParseStatement(stmtToks)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if err = prog.AddStatement(stmtToks[0].Line, stmt); err != nil {
				errs = append(errs, berrors.NewParseError(stmtToks[0].Line, "%s", err.Error()))
			}
		}
	}

	if len(errs) > 0 {
		logger.Warn(logger.AreaParser, "%d statement(s) failed to parse", len(errs))
		return nil, errors.Join(errs...)
	}
	logger.Debug(logger.AreaParser, "parsed %d statements", prog.Len())
	return prog, nil
}

// ParseLine parses one line of source, which may hold several statements
// separated by colons
func ParseLine(src string) ([]ast.Statement, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Statement
	for _, line := range splitLines(toks) {
		for _, stmtToks := range splitStatements(line) {
			stmt, err := ParseStatement(stmtToks)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// ParseStatement parses the tokens of a single statement, every token
// must be used
func ParseStatement(toks []token.Token) (ast.Statement, error) {
	p := New(toks)
	stmt := p.parseStatement()

	if len(p.errors) == 0 && !p.curTokenIs(token.EOF) {
		p.errorf("unexpected %s", describe(p.curToken))
	}
	if len(p.errors) > 0 {
		return nil, p.failure()
	}
	return stmt, nil
}

// failure folds the collected messages into one ParseError
func (p *Parser) failure() error {
	return &berrors.ParseError{Line: p.toks[0].Line, Msg: strings.Join(p.errors, "; ")}
}

// groups the token stream by source line, the EOF token is dropped
func splitLines(toks []token.Token) [][]token.Token {
	var lines [][]token.Token
	for i := 0; i < len(toks) && toks[i].Type != token.EOF; {
		j := i
		for j < len(toks) && toks[j].Type != token.EOF && toks[j].Line == toks[i].Line {
			j++
		}
		lines = append(lines, toks[i:j])
		i = j
	}
	return lines
}

// splits a line on colons that are not nested inside a bracket pair
func splitStatements(line []token.Token) [][]token.Token {
	var stmts [][]token.Token
	depth, start := 0, 0

	for i, tok := range line {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
		case token.COLON:
			if depth == 0 {
				if i > start {
					stmts = append(stmts, line[start:i])
				}
				start = i + 1
			}
		}
	}
	if start < len(line) {
		stmts = append(stmts, line[start:])
	}
	return stmts
}

// parseWholeExpression parses an expression that has to use every token
func (p *Parser) parseWholeExpression() ast.Expression {
	if p.curTokenIs(token.EOF) {
		p.errorf("expected an expression")
		return nil
	}

	exp := p.parseExpression(LOWEST)
	if exp != nil && !p.peekTokenIs(token.EOF) {
		p.errorf("unexpected %s after expression", describe(p.peekToken))
		return nil
	}
	return exp
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	for leftExp != nil && !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	if t.Type == token.EOF {
		p.errorf("missing operand")
		return
	}
	p.errorf("unexpected %s", describe(t))
}

func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewIdentifier(p.curToken)
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := p.curToken.Literal
	base := 10
	digits := lit

	if len(lit) > 2 && lit[0] == '&' {
		switch lit[1] {
		case 'h', 'H':
			base = 16
		case 'b', 'B':
			base = 2
		}
		digits = strings.ReplaceAll(lit[2:], "_", "")
	}

	value, err := strconv.ParseInt(digits, base, 64)
	if err == nil {
		return &ast.IntegerLiteral{Token: p.curToken, Value: value}
	}

	if base != 10 {
		// radix constants fill the word, &HFFFFFFFFFFFFFFFF is -1
		if u, uerr := strconv.ParseUint(digits, base, 64); uerr == nil {
			return &ast.IntegerLiteral{Token: p.curToken, Value: int64(u)}
		}
		p.errorf("could not parse %q as integer", lit)
		return nil
	}

	// too big for an integer, keep it as a real
	f, ferr := strconv.ParseFloat(digits, 64)
	if ferr != nil {
		p.errorf("could not parse %q as integer", lit)
		return nil
	}
	return &ast.RealLiteral{Token: p.curToken, Value: f}
}

func (p *Parser) parseRealLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf("could not parse %q as real", p.curToken.Literal)
		return nil
	}
	return &ast.RealLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseComplexLiteral() ast.Expression {
	value, err := strconv.ParseComplex(strings.ToLower(p.curToken.Literal), 128)
	if err != nil {
		p.errorf("could not parse %q as complex", p.curToken.Literal)
		return nil
	}
	return &ast.ComplexLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	exp := &ast.GroupedExpression{Token: p.curToken}

	p.nextToken()

	exp.Exp = p.parseExpression(LOWEST)
	if exp.Exp == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	al := &ast.ArrayLiteral{Token: p.curToken}
	al.Elements = p.parseExpressionList(token.RBRACKET)
	if al.Elements == nil {
		return nil
	}
	return al
}

func (p *Parser) parseStructureLiteral() ast.Expression {
	sl := &ast.StructureLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return sl
	}

	for {
		p.nextToken()
		switch p.curToken.Type {
		case token.IDENT, token.STRING, token.KEYWORD:
		default:
			p.errorf("expected member name, got %s", describe(p.curToken))
			return nil
		}
		key := p.curToken.Literal

		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()

		val := p.parseExpression(LOWEST)
		if val == nil {
			return nil
		}
		sl.Keys = append(sl.Keys, key)
		sl.Values = append(sl.Values, val)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return sl
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
		Category: ast.Arithmetic,
	}
	if precedences[p.curToken.Type] == COMPARE {
		expression.Category = ast.Comparison
	}

	precedence := p.curPrecedence()
	if precedence == POWER {
		// right associative, 2^2^3 is 2^(2^3)
		precedence--
	}
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// keywords in operand position are NOT, functions and constants
func (p *Parser) parseKeywordPrefix() ast.Expression {
	kw := p.curToken.Literal

	switch {
	case kw == "NOT":
		expression := &ast.PrefixExpression{Token: p.curToken, Operator: kw}
		p.nextToken()
		expression.Right = p.parseExpression(NOTS)
		if expression.Right == nil {
			return nil
		}
		return expression

	case constantKeywords[kw]:
		return &ast.FunctionExpression{Token: p.curToken, Name: kw}

	case unaryKeywords[kw]:
		fn := &ast.FunctionExpression{Token: p.curToken, Name: kw}
		if p.peekTokenIs(token.EOF) {
			p.errorf("%s: missing argument", kw)
			return nil
		}
		p.nextToken()
		fn.Arg = p.parseExpression(PREFIX)
		if fn.Arg == nil {
			return nil
		}
		return fn
	}

	p.errorf("unexpected %s", describe(p.curToken))
	return nil
}

// keywords in operator position, logical operators, MOD and the
// string and array operators
func (p *Parser) parseKeywordInfix(left ast.Expression) ast.Expression {
	kw := p.curToken.Literal
	precedence := p.curPrecedence()

	switch precedence {
	case ORS, ANDS, XORS, PRODUCT:
		expression := &ast.InfixExpression{Token: p.curToken, Operator: kw, Left: left, Category: ast.Logical}
		if precedence == PRODUCT {
			expression.Category = ast.Arithmetic
		}
		p.nextToken()
		expression.Right = p.parseExpression(precedence)
		if expression.Right == nil {
			return nil
		}
		return expression
	}

	expression := &ast.KeywordInfixExpression{Token: p.curToken, Operator: kw, Left: left}
	p.nextToken()
	expression.Right = p.parseExpression(KEYWORD)
	if expression.Right == nil {
		return nil
	}

	switch kw {
	case "MID":
		if !p.peekToken.Is("TO") {
			return expression
		}
		expression.ExtraOp = "TO"
	case "REPLACE":
		if !p.peekToken.Is("WITH") {
			p.errorf("REPLACE: expected WITH, got %s", describe(p.peekToken))
			return nil
		}
		expression.ExtraOp = "WITH"
	default:
		return expression
	}

	p.nextToken()
	p.nextToken()
	expression.Extra = p.parseExpression(KEYWORD)
	if expression.Extra == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.AccessExpression{Token: p.curToken, Base: left}
	exp.Indices = p.parseExpressionList(token.RBRACKET)
	if len(exp.Indices) == 0 {
		if len(p.errors) == 0 {
			p.errorf("missing index")
		}
		return nil
	}
	return exp
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	exp := &ast.AccessExpression{Token: p.curToken, Base: left}

	p.nextToken()
	switch p.curToken.Type {
	case token.IDENT, token.KEYWORD:
		exp.Member = p.curToken.Literal
		return exp
	}

	p.errorf("expected member name, got %s", describe(p.curToken))
	return nil
}

// parseExpressionList reads comma separated expressions up to end,
// an empty list comes back as a non-nil empty slice
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	list = append(list, exp)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		exp = p.parseExpression(LOWEST)
		if exp == nil {
			return nil
		}
		list = append(list, exp)
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errorf("expected %s, got %s", t, describe(p.peekToken))
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) peekPrecedence() int {
	return precedenceOf(p.peekToken)
}

func (p *Parser) curPrecedence() int {
	return precedenceOf(p.curToken)
}

func precedenceOf(tok token.Token) int {
	if tok.Type == token.KEYWORD {
		if p, ok := keywordPrecedences[tok.Literal]; ok {
			return p
		}
		return LOWEST
	}
	if p, ok := precedences[tok.Type]; ok {
		return p
	}
	return LOWEST
}

// describe names a token for an error message
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of line"
	case token.STRING:
		return fmt.Sprintf("%q", tok.Literal)
	}
	return tok.Literal
}
