package parser

import (
	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/keywords"
	"github.com/navionguy/edubasic/token"
)

type stmtParseFn func(*Parser) ast.Statement

// statementParsers maps the keyword that opens a statement to its parser
var statementParsers map[string]stmtParseFn

func init() {
	statementParsers = map[string]stmtParseFn{
		"LET":       (*Parser).parseLetStatement,
		"DIM":       (*Parser).parseDimStatement,
		"LOCAL":     (*Parser).parseLocalStatement,
		"SWAP":      (*Parser).parseSwapStatement,
		"IF":        (*Parser).parseIfStatement,
		"UNLESS":    (*Parser).parseIfStatement,
		"ELSEIF":    (*Parser).parseElseIfStatement,
		"ELSE":      (*Parser).parseElseStatement,
		"END":       (*Parser).parseEndStatement,
		"FOR":       (*Parser).parseForStatement,
		"NEXT":      (*Parser).parseNextStatement,
		"WHILE":     (*Parser).parseWhileStatement,
		"WEND":      (*Parser).parseWendStatement,
		"DO":        (*Parser).parseDoStatement,
		"LOOP":      (*Parser).parseLoopStatement,
		"UNTIL":     (*Parser).parseUntilStatement,
		"UEND":      (*Parser).parseUendStatement,
		"SELECT":    (*Parser).parseSelectStatement,
		"CASE":      (*Parser).parseCaseStatement,
		"GOTO":      (*Parser).parseGotoStatement,
		"GOSUB":     (*Parser).parseGosubStatement,
		"RETURN":    (*Parser).parseReturnStatement,
		"LABEL":     (*Parser).parseLabelStatement,
		"SUB":       (*Parser).parseSubStatement,
		"CALL":      (*Parser).parseCallStatement,
		"EXIT":      (*Parser).parseExitStatement,
		"CONTINUE":  (*Parser).parseContinueStatement,
		"TRY":       (*Parser).parseTryStatement,
		"CATCH":     (*Parser).parseCatchStatement,
		"FINALLY":   (*Parser).parseFinallyStatement,
		"THROW":     (*Parser).parseThrowStatement,
		"SLEEP":     (*Parser).parseSleepStatement,
		"TRON":      (*Parser).parseTronCommand,
		"TROFF":     (*Parser).parseTroffCommand,
		"REM":       (*Parser).parseRemStatement,
		"RANDOMIZE": (*Parser).parseRandomizeStatement,
		"PRINT":     (*Parser).parsePrintStatement,
		"INPUT":     (*Parser).parseInputStatement,
		"LOCATE":    (*Parser).parseLocateStatement,
		"COLOR":     (*Parser).parseColorStatement,
		"CLS":       (*Parser).parseClsStatement,
		"CONSOLE":   (*Parser).parseConsoleStatement,
		"HELP":      (*Parser).parseHelpStatement,
		"PSET":      (*Parser).parsePsetStatement,
		"LINE":      (*Parser).parseLineStatement,
		"RECTANGLE": (*Parser).parseRectangleStatement,
		"OVAL":      (*Parser).parseOvalStatement,
		"CIRCLE":    (*Parser).parseCircleStatement,
		"TRIANGLE":  (*Parser).parseTriangleStatement,
		"ARC":       (*Parser).parseArcStatement,
		"PAINT":     (*Parser).parsePaintStatement,
		"GET":       (*Parser).parseGetStatement,
		"PUT":       (*Parser).parsePutStatement,
		"TEMPO":     (*Parser).parseTempoStatement,
		"VOLUME":    (*Parser).parseVolumeStatement,
		"MUTE":      (*Parser).parseMuteStatement,
		"VOICE":     (*Parser).parseVoiceStatement,
		"PLAY":      (*Parser).parsePlayStatement,
		"OPEN":      (*Parser).parseOpenStatement,
		"CLOSE":     (*Parser).parseCloseStatement,
		"READFILE":  (*Parser).parseReadFileStatement,
		"WRITEFILE": (*Parser).parseWriteFileStatement,
		"SEEK":      (*Parser).parseSeekStatement,
		"LISTDIR":   (*Parser).parseListDirStatement,
		"MKDIR":     (*Parser).parseFileOpStatement,
		"RMDIR":     (*Parser).parseFileOpStatement,
		"DELETE":    (*Parser).parseFileOpStatement,
		"COPY":      (*Parser).parseFileOpStatement,
		"MOVE":      (*Parser).parseFileOpStatement,
		"PUSH":      (*Parser).parseArrayOpStatement,
		"POP":       (*Parser).parseArrayOpStatement,
		"SHIFT":     (*Parser).parseArrayOpStatement,
		"UNSHIFT":   (*Parser).parseArrayOpStatement,
	}
}

// parseStatement dispatches on the first token, anything that does not
// start with a statement keyword is an implied LET
func (p *Parser) parseStatement() ast.Statement {
	if p.curTokenIs(token.KEYWORD) {
		if fn, ok := statementParsers[p.curToken.Literal]; ok {
			return fn(p)
		}
		if keywords.IsStatementStart(p.curToken.Literal) {
			p.errorf("%s: not valid here", p.curToken.Literal)
			return nil
		}
	}

	if p.curTokenIs(token.IDENT) {
		return p.parseImpliedLetStatement()
	}

	p.errorf("unexpected %s at start of statement", describe(p.curToken))
	return nil
}

// parseInlineStatement parses a statement embedded in an IF
func (p *Parser) parseInlineStatement(toks []token.Token) ast.Statement {
	if len(toks) == 0 {
		p.errorf("IF: expected statement, got %s", describe(p.curToken))
		return nil
	}

	sub := New(toks)
	stmt := sub.parseStatement()
	if len(sub.errors) == 0 && !sub.curTokenIs(token.EOF) {
		sub.errorf("unexpected %s", describe(sub.curToken))
	}
	if len(sub.errors) > 0 {
		p.errors = append(p.errors, sub.errors...)
		return nil
	}
	return stmt
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}
	p.nextToken()
	return p.finishParseLetStatement(stmt)
}

func (p *Parser) parseImpliedLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken, Implied: true}
	return p.finishParseLetStatement(stmt)
}

func (p *Parser) finishParseLetStatement(stmt *ast.LetStatement) ast.Statement {
	if stmt.Target = p.parseTarget("LET", token.EQ); stmt.Target == nil {
		return nil
	}
	if !p.expect("LET", token.EQ) {
		return nil
	}
	if stmt.Value = p.parseEmbedded("LET"); stmt.Value == nil {
		return nil
	}
	return stmt
}

// DIM a%[10], grid#[,] [0 TO 3, 4]
func (p *Parser) parseDimStatement() ast.Statement {
	stmt := &ast.DimStatement{Token: p.curToken}
	p.nextToken()

	for {
		decl := &ast.DimDecl{}
		if decl.Name = p.parseVariable("DIM"); decl.Name == nil {
			return nil
		}
		if !p.expect("DIM", token.LBRACKET) {
			return nil
		}

		for {
			dr := &ast.DimRange{}
			if dr.End = p.parseEmbedded("DIM", token.COMMA); dr.End == nil {
				return nil
			}
			if p.acceptKeyword("TO") {
				dr.Start = dr.End
				if dr.End = p.parseEmbedded("DIM", token.COMMA); dr.End == nil {
					return nil
				}
			}
			decl.Dims = append(decl.Dims, dr)

			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expect("DIM", token.RBRACKET) {
			return nil
		}
		if decl.Name.Rank > 0 && decl.Name.Rank != len(decl.Dims) {
			p.errorf("DIM: %s declares %d dimensions, %d given", decl.Name.Name, decl.Name.Rank, len(decl.Dims))
			return nil
		}
		stmt.Decls = append(stmt.Decls, decl)

		if !p.curTokenIs(token.COMMA) {
			return stmt
		}
		p.nextToken()
	}
}

func (p *Parser) parseLocalStatement() ast.Statement {
	stmt := &ast.LocalStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Name = p.parseVariable("LOCAL"); stmt.Name == nil {
		return nil
	}
	if p.curTokenIs(token.EQ) {
		p.nextToken()
		if stmt.Value = p.parseEmbedded("LOCAL"); stmt.Value == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseSwapStatement() ast.Statement {
	stmt := &ast.SwapStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Left = p.parseTarget("SWAP", token.COMMA); stmt.Left == nil {
		return nil
	}
	if !p.expect("SWAP", token.COMMA) {
		return nil
	}
	if stmt.Right = p.parseTarget("SWAP"); stmt.Right == nil {
		return nil
	}
	return stmt
}

// IF c THEN opens a block, IF c THEN stmt [ELSE stmt] stands alone
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken, Negate: p.curToken.Is("UNLESS")}
	what := p.curToken.Literal
	p.nextToken()

	if stmt.Condition = p.parseEmbedded(what); stmt.Condition == nil {
		return nil
	}
	if !p.expectKeyword(what, "THEN") {
		return nil
	}
	if p.curTokenIs(token.EOF) {
		return stmt
	}

	if stmt.Then = p.parseInlineStatement(p.statementTokens("ELSE")); stmt.Then == nil {
		return nil
	}
	if p.acceptKeyword("ELSE") {
		if stmt.Else = p.parseInlineStatement(p.statementTokens("")); stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseElseIfStatement() ast.Statement {
	stmt := &ast.ElseIfStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Condition = p.parseEmbedded("ELSEIF"); stmt.Condition == nil {
		return nil
	}
	if !p.expectKeyword("ELSEIF", "THEN") {
		return nil
	}
	return stmt
}

func (p *Parser) parseElseStatement() ast.Statement {
	stmt := &ast.ElseStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

// END alone stops the program, END IF and friends close a block
func (p *Parser) parseEndStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()

	if p.curTokenIs(token.EOF) {
		return &ast.EndStatement{Token: tok}
	}

	for _, blk := range []string{"IF", "UNLESS", "SELECT", "SUB", "TRY"} {
		if p.curToken.Is(blk) {
			p.nextToken()
			return &ast.EndBlockStatement{Token: tok, Block: blk}
		}
	}

	p.errorf("END: unexpected %s", describe(p.curToken))
	return nil
}

// FOR var = start TO end [STEP step]
func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Var = p.parseVariable("FOR"); stmt.Var == nil {
		return nil
	}
	if !p.expect("FOR", token.EQ) {
		return nil
	}
	if stmt.Start = p.parseEmbedded("FOR"); stmt.Start == nil {
		return nil
	}
	if !p.expectKeyword("FOR", "TO") {
		return nil
	}
	if stmt.End = p.parseEmbedded("FOR"); stmt.End == nil {
		return nil
	}
	if p.acceptKeyword("STEP") {
		if stmt.Step = p.parseEmbedded("FOR"); stmt.Step == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseNextStatement() ast.Statement {
	stmt := &ast.NextStatement{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(token.IDENT) {
		stmt.Var = p.parseVariable("NEXT")
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Condition = p.parseEmbedded("WHILE"); stmt.Condition == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseWendStatement() ast.Statement {
	stmt := &ast.WendStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

// parseLoopTest reads the optional WHILE|UNTIL cond on DO and LOOP
func (p *Parser) parseLoopTest(what string) (ast.Expression, bool, bool) {
	until := false
	switch {
	case p.acceptKeyword("WHILE"):
	case p.acceptKeyword("UNTIL"):
		until = true
	default:
		return nil, false, true
	}

	cond := p.parseEmbedded(what)
	return cond, until, cond != nil
}

func (p *Parser) parseDoStatement() ast.Statement {
	stmt := &ast.DoStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Condition, stmt.Until, ok = p.parseLoopTest("DO"); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseLoopStatement() ast.Statement {
	stmt := &ast.LoopStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Condition, stmt.Until, ok = p.parseLoopTest("LOOP"); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseUntilStatement() ast.Statement {
	stmt := &ast.UntilStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Condition = p.parseEmbedded("UNTIL"); stmt.Condition == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseUendStatement() ast.Statement {
	stmt := &ast.UendStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

func (p *Parser) parseSelectStatement() ast.Statement {
	stmt := &ast.SelectCaseStatement{Token: p.curToken}
	p.nextToken()

	if !p.expectKeyword("SELECT", "CASE") {
		return nil
	}
	if stmt.Test = p.parseEmbedded("SELECT CASE"); stmt.Test == nil {
		return nil
	}
	return stmt
}

var relationalOps = map[token.TokenType]bool{
	token.EQ: true, token.NOT_EQ: true, token.LT: true,
	token.GT: true, token.LTE: true, token.GTE: true,
}

// CASE 1, 3 TO 5, IS > 10 or CASE ELSE
func (p *Parser) parseCaseStatement() ast.Statement {
	stmt := &ast.CaseStatement{Token: p.curToken}
	p.nextToken()

	if p.acceptKeyword("ELSE") {
		stmt.Else = true
		return stmt
	}

	for {
		sel := &ast.CaseSelector{Kind: ast.SelectValue}

		if p.acceptKeyword("IS") {
			if !relationalOps[p.curToken.Type] {
				p.errorf("CASE: expected relational operator after IS, got %s", describe(p.curToken))
				return nil
			}
			sel.Kind = ast.SelectRelational
			sel.Op = p.curToken.Literal
			p.nextToken()
		}

		if sel.Value = p.parseEmbedded("CASE", token.COMMA); sel.Value == nil {
			return nil
		}

		if sel.Kind == ast.SelectValue && p.acceptKeyword("TO") {
			sel.Kind = ast.SelectRange
			if sel.High = p.parseEmbedded("CASE", token.COMMA); sel.High == nil {
				return nil
			}
		}
		stmt.Selectors = append(stmt.Selectors, sel)

		if !p.curTokenIs(token.COMMA) {
			return stmt
		}
		p.nextToken()
	}
}

func (p *Parser) parseGotoStatement() ast.Statement {
	stmt := &ast.GotoStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Label, ok = p.parseName("GOTO"); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseGosubStatement() ast.Statement {
	stmt := &ast.GosubStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Label, ok = p.parseName("GOSUB"); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

func (p *Parser) parseLabelStatement() ast.Statement {
	stmt := &ast.LabelStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Name, ok = p.parseName("LABEL"); !ok {
		return nil
	}
	return stmt
}

// SUB name [(][BYREF] param, ...[)]
func (p *Parser) parseSubStatement() ast.Statement {
	stmt := &ast.SubStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Name, ok = p.parseName("SUB"); !ok {
		return nil
	}

	parens := p.curTokenIs(token.LPAREN)
	if parens {
		p.nextToken()
	}

	for p.curTokenIs(token.IDENT) || p.curToken.Is("BYREF") {
		param := &ast.SubParam{ByRef: p.acceptKeyword("BYREF")}
		if param.Name = p.parseVariable("SUB"); param.Name == nil {
			return nil
		}
		stmt.Params = append(stmt.Params, param)

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if parens && !p.expect("SUB", token.RPAREN) {
		return nil
	}
	return stmt
}

// CALL name [args] or CALL name(args)
func (p *Parser) parseCallStatement() ast.Statement {
	stmt := &ast.CallStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Name, ok = p.parseName("CALL"); !ok {
		return nil
	}

	if p.curTokenIs(token.LPAREN) && p.wrapsRest() {
		p.nextToken()
		if !p.curTokenIs(token.RPAREN) {
			if stmt.Args = p.parseCommaSeparatedExpressions("CALL"); stmt.Args == nil {
				return nil
			}
		}
		if !p.expect("CALL", token.RPAREN) {
			return nil
		}
		return stmt
	}

	if !p.curTokenIs(token.EOF) {
		if stmt.Args = p.parseCommaSeparatedExpressions("CALL"); stmt.Args == nil {
			return nil
		}
	}
	return stmt
}

// wrapsRest is true when the paren at curToken closes on the last token
func (p *Parser) wrapsRest() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return p.toks[i+1].Type == token.EOF
			}
		}
	}
	return false
}

var loopTargets = []string{"FOR", "WHILE", "DO", "UNTIL", "SUB"}

func (p *Parser) parseLoopTarget(what string, allowSub bool) (string, bool) {
	for _, t := range loopTargets {
		if p.curToken.Is(t) && (allowSub || t != "SUB") {
			p.nextToken()
			return t, true
		}
	}
	p.errorf("%s: expected FOR, WHILE, DO or UNTIL, got %s", what, describe(p.curToken))
	return "", false
}

func (p *Parser) parseExitStatement() ast.Statement {
	stmt := &ast.ExitStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Target, ok = p.parseLoopTarget("EXIT", true); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{Token: p.curToken}
	p.nextToken()

	var ok bool
	if stmt.Target, ok = p.parseLoopTarget("CONTINUE", false); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.TryStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

func (p *Parser) parseCatchStatement() ast.Statement {
	stmt := &ast.CatchStatement{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(token.IDENT) {
		stmt.Var = p.parseVariable("CATCH")
	}
	return stmt
}

func (p *Parser) parseFinallyStatement() ast.Statement {
	stmt := &ast.FinallyStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Value = p.parseEmbedded("THROW"); stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseSleepStatement() ast.Statement {
	stmt := &ast.SleepStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Duration = p.parseEmbedded("SLEEP"); stmt.Duration == nil {
		return nil
	}
	return stmt
}

// Trace On, no parameters so nothing much to do
func (p *Parser) parseTronCommand() ast.Statement {
	stmt := &ast.TronCommand{Token: p.curToken}
	p.nextToken()
	return stmt
}

// Trace Off, no parameters so nothing much to do
func (p *Parser) parseTroffCommand() ast.Statement {
	stmt := &ast.TroffCommand{Token: p.curToken}
	p.nextToken()
	return stmt
}

func (p *Parser) parseRemStatement() ast.Statement {
	stmt := &ast.RemStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

func (p *Parser) parseRandomizeStatement() ast.Statement {
	stmt := &ast.RandomizeStatement{Token: p.curToken}
	p.nextToken()

	if !p.curTokenIs(token.EOF) {
		if stmt.Seed = p.parseEmbedded("RANDOMIZE"); stmt.Seed == nil {
			return nil
		}
	}
	return stmt
}
