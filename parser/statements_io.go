package parser

import (
	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/token"
)

// PRINT a; b, c;
func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.EOF) {
		item := ast.PrintItem{}

		if !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.COMMA) {
			if item.Exp = p.parseEmbedded("PRINT", token.SEMICOLON, token.COMMA); item.Exp == nil {
				return nil
			}
		}

		switch {
		case p.curTokenIs(token.SEMICOLON), p.curTokenIs(token.COMMA):
			item.Sep = p.curToken.Literal
			p.nextToken()
		case !p.curTokenIs(token.EOF):
			p.errorf("PRINT: unexpected %s", describe(p.curToken))
			return nil
		}
		stmt.Items = append(stmt.Items, item)
	}
	return stmt
}

// INPUT ["prompt";] var
func (p *Parser) parseInputStatement() ast.Statement {
	stmt := &ast.InputStatement{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(token.STRING) && (p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.COMMA)) {
		stmt.Prompt = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
		p.nextToken()
		p.nextToken()
	}

	if stmt.Var = p.parseTarget("INPUT"); stmt.Var == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseLocateStatement() ast.Statement {
	stmt := &ast.LocateStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Row = p.parseEmbedded("LOCATE", token.COMMA); stmt.Row == nil {
		return nil
	}
	if !p.expect("LOCATE", token.COMMA) {
		return nil
	}
	if stmt.Col = p.parseEmbedded("LOCATE"); stmt.Col == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseColorStatement() ast.Statement {
	stmt := &ast.ColorStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Fg = p.parseEmbedded("COLOR", token.COMMA); stmt.Fg == nil {
		return nil
	}
	if p.curTokenIs(token.COMMA) {
		p.nextToken()
		if stmt.Bg = p.parseEmbedded("COLOR"); stmt.Bg == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseClsStatement() ast.Statement {
	stmt := &ast.ClsStatement{Token: p.curToken}
	p.nextToken()
	return stmt
}

func (p *Parser) parseConsoleStatement() ast.Statement {
	stmt := &ast.ConsoleStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Value = p.parseEmbedded("CONSOLE"); stmt.Value == nil {
		return nil
	}
	return stmt
}

// HELP takes any single word, usually a keyword
func (p *Parser) parseHelpStatement() ast.Statement {
	stmt := &ast.HelpStatement{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(token.KEYWORD) || p.curTokenIs(token.IDENT) {
		stmt.Topic = p.curToken.Literal
		p.nextToken()
	}
	return stmt
}

// parseWith reads an optional WITH color clause
func (p *Parser) parseWith(what string) (ast.Expression, bool) {
	if !p.acceptKeyword("WITH") {
		return nil, true
	}
	c := p.parseEmbedded(what)
	return c, c != nil
}

func (p *Parser) parsePsetStatement() ast.Statement {
	stmt := &ast.PsetStatement{Token: p.curToken}
	p.nextToken()

	if stmt.At = p.parsePoint("PSET"); stmt.At == nil {
		return nil
	}
	var ok bool
	if stmt.Color, ok = p.parseWith("PSET"); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseLineStatement() ast.Statement {
	stmt := &ast.LineStatement{Token: p.curToken}
	p.nextToken()

	if !p.expectKeyword("LINE", "FROM") {
		return nil
	}
	if stmt.From = p.parsePoint("LINE"); stmt.From == nil {
		return nil
	}
	if !p.expectKeyword("LINE", "TO") {
		return nil
	}
	if stmt.To = p.parsePoint("LINE"); stmt.To == nil {
		return nil
	}
	var ok bool
	if stmt.Color, ok = p.parseWith("LINE"); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseRectangleStatement() ast.Statement {
	stmt := &ast.RectangleStatement{Token: p.curToken}
	p.nextToken()

	if !p.expectKeyword("RECTANGLE", "FROM") {
		return nil
	}
	if stmt.From = p.parsePoint("RECTANGLE"); stmt.From == nil {
		return nil
	}
	if !p.expectKeyword("RECTANGLE", "TO") {
		return nil
	}
	if stmt.To = p.parsePoint("RECTANGLE"); stmt.To == nil {
		return nil
	}
	var ok bool
	if stmt.Color, ok = p.parseWith("RECTANGLE"); !ok {
		return nil
	}
	stmt.Filled = p.acceptKeyword("FILLED")
	return stmt
}

func (p *Parser) parseOvalStatement() ast.Statement {
	stmt := &ast.OvalStatement{Token: p.curToken}
	p.nextToken()

	if !p.expectKeyword("OVAL", "AT") {
		return nil
	}
	if stmt.Center = p.parsePoint("OVAL"); stmt.Center == nil {
		return nil
	}
	if !p.expectKeyword("OVAL", "RADII") {
		return nil
	}
	if stmt.Radii = p.parsePoint("OVAL"); stmt.Radii == nil {
		return nil
	}
	var ok bool
	if stmt.Color, ok = p.parseWith("OVAL"); !ok {
		return nil
	}
	stmt.Filled = p.acceptKeyword("FILLED")
	return stmt
}

func (p *Parser) parseCircleStatement() ast.Statement {
	stmt := &ast.CircleStatement{Token: p.curToken}
	p.nextToken()

	if !p.expectKeyword("CIRCLE", "AT") {
		return nil
	}
	if stmt.Center = p.parsePoint("CIRCLE"); stmt.Center == nil {
		return nil
	}
	if !p.expectKeyword("CIRCLE", "RADIUS") {
		return nil
	}
	if stmt.Radius = p.parseEmbedded("CIRCLE"); stmt.Radius == nil {
		return nil
	}
	var ok bool
	if stmt.Color, ok = p.parseWith("CIRCLE"); !ok {
		return nil
	}
	stmt.Filled = p.acceptKeyword("FILLED")
	return stmt
}

func (p *Parser) parseTriangleStatement() ast.Statement {
	stmt := &ast.TriangleStatement{Token: p.curToken}
	p.nextToken()

	if stmt.P1 = p.parsePoint("TRIANGLE"); stmt.P1 == nil {
		return nil
	}
	if !p.expectKeyword("TRIANGLE", "TO") {
		return nil
	}
	if stmt.P2 = p.parsePoint("TRIANGLE"); stmt.P2 == nil {
		return nil
	}
	if !p.expectKeyword("TRIANGLE", "TO") {
		return nil
	}
	if stmt.P3 = p.parsePoint("TRIANGLE"); stmt.P3 == nil {
		return nil
	}
	var ok bool
	if stmt.Color, ok = p.parseWith("TRIANGLE"); !ok {
		return nil
	}
	stmt.Filled = p.acceptKeyword("FILLED")
	return stmt
}

func (p *Parser) parseArcStatement() ast.Statement {
	stmt := &ast.ArcStatement{Token: p.curToken}
	p.nextToken()

	if !p.expectKeyword("ARC", "AT") {
		return nil
	}
	if stmt.Center = p.parsePoint("ARC"); stmt.Center == nil {
		return nil
	}
	if !p.expectKeyword("ARC", "RADIUS") {
		return nil
	}
	if stmt.Radius = p.parseEmbedded("ARC"); stmt.Radius == nil {
		return nil
	}
	if !p.expectKeyword("ARC", "ANGLES") {
		return nil
	}
	if stmt.Start = p.parseEmbedded("ARC"); stmt.Start == nil {
		return nil
	}
	if !p.expectKeyword("ARC", "TO") {
		return nil
	}
	if stmt.End = p.parseEmbedded("ARC"); stmt.End == nil {
		return nil
	}
	var ok bool
	if stmt.Color, ok = p.parseWith("ARC"); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parsePaintStatement() ast.Statement {
	stmt := &ast.PaintStatement{Token: p.curToken}
	p.nextToken()

	if stmt.At = p.parsePoint("PAINT"); stmt.At == nil {
		return nil
	}
	if !p.expectKeyword("PAINT", "WITH") {
		return nil
	}
	if stmt.Color = p.parseEmbedded("PAINT"); stmt.Color == nil {
		return nil
	}
	if p.acceptKeyword("BORDER") {
		if stmt.Border = p.parseEmbedded("PAINT"); stmt.Border == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseGetStatement() ast.Statement {
	stmt := &ast.GetStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Array = p.parseVariable("GET"); stmt.Array == nil {
		return nil
	}
	if !p.expectKeyword("GET", "FROM") {
		return nil
	}
	if stmt.From = p.parsePoint("GET"); stmt.From == nil {
		return nil
	}
	if !p.expectKeyword("GET", "TO") {
		return nil
	}
	if stmt.To = p.parsePoint("GET"); stmt.To == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parsePutStatement() ast.Statement {
	stmt := &ast.PutStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Array = p.parseVariable("PUT"); stmt.Array == nil {
		return nil
	}
	if !p.expectKeyword("PUT", "AT") {
		return nil
	}
	if stmt.At = p.parsePoint("PUT"); stmt.At == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseTempoStatement() ast.Statement {
	stmt := &ast.TempoStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Value = p.parseEmbedded("TEMPO"); stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseVolumeStatement() ast.Statement {
	stmt := &ast.VolumeStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Value = p.parseEmbedded("VOLUME"); stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseMuteStatement() ast.Statement {
	stmt := &ast.MuteStatement{Token: p.curToken}
	p.nextToken()

	switch {
	case p.acceptKeyword("ON"):
		stmt.On = true
	case p.acceptKeyword("OFF"):
	default:
		p.errorf("MUTE: expected ON or OFF, got %s", describe(p.curToken))
		return nil
	}
	return stmt
}

func (p *Parser) parseVoiceStatement() ast.Statement {
	stmt := &ast.VoiceStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Index = p.parseEmbedded("VOICE"); stmt.Index == nil {
		return nil
	}
	if p.acceptKeyword("INSTRUMENT") {
		if stmt.Instrument = p.parseEmbedded("VOICE"); stmt.Instrument == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parsePlayStatement() ast.Statement {
	stmt := &ast.PlayStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Voice = p.parseEmbedded("PLAY", token.COMMA); stmt.Voice == nil {
		return nil
	}
	if !p.expect("PLAY", token.COMMA) {
		return nil
	}
	if stmt.Music = p.parseEmbedded("PLAY"); stmt.Music == nil {
		return nil
	}
	return stmt
}

var openModes = []string{"READWRITE", "READ", "WRITE", "APPEND"}

// OPEN path FOR mode AS handle
func (p *Parser) parseOpenStatement() ast.Statement {
	stmt := &ast.OpenStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Path = p.parseEmbedded("OPEN"); stmt.Path == nil {
		return nil
	}
	if !p.expectKeyword("OPEN", "FOR") {
		return nil
	}
	for _, m := range openModes {
		if p.acceptKeyword(m) {
			stmt.Mode = m
			break
		}
	}
	if len(stmt.Mode) == 0 {
		p.errorf("OPEN: expected READ, WRITE, APPEND or READWRITE, got %s", describe(p.curToken))
		return nil
	}
	if !p.expectKeyword("OPEN", "AS") {
		return nil
	}
	if stmt.Handle = p.parseVariable("OPEN"); stmt.Handle == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseCloseStatement() ast.Statement {
	stmt := &ast.CloseStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Handle = p.parseEmbedded("CLOSE"); stmt.Handle == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReadFileStatement() ast.Statement {
	stmt := &ast.ReadFileStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Var = p.parseTarget("READFILE"); stmt.Var == nil {
		return nil
	}
	if !p.expectKeyword("READFILE", "FROM") {
		return nil
	}
	if stmt.Handle = p.parseEmbedded("READFILE"); stmt.Handle == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseWriteFileStatement() ast.Statement {
	stmt := &ast.WriteFileStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Value = p.parseEmbedded("WRITEFILE"); stmt.Value == nil {
		return nil
	}
	if !p.expectKeyword("WRITEFILE", "TO") {
		return nil
	}
	if stmt.Handle = p.parseEmbedded("WRITEFILE"); stmt.Handle == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseSeekStatement() ast.Statement {
	stmt := &ast.SeekStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Handle = p.parseEmbedded("SEEK", token.COMMA); stmt.Handle == nil {
		return nil
	}
	if !p.expect("SEEK", token.COMMA) {
		return nil
	}
	if stmt.Position = p.parseEmbedded("SEEK"); stmt.Position == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseListDirStatement() ast.Statement {
	stmt := &ast.ListDirStatement{Token: p.curToken}
	p.nextToken()

	if stmt.Array = p.parseVariable("LISTDIR"); stmt.Array == nil {
		return nil
	}
	if !p.expectKeyword("LISTDIR", "FROM") {
		return nil
	}
	if stmt.Path = p.parseEmbedded("LISTDIR"); stmt.Path == nil {
		return nil
	}
	return stmt
}

// MKDIR, RMDIR and DELETE take a path, COPY and MOVE take two
func (p *Parser) parseFileOpStatement() ast.Statement {
	stmt := &ast.FileOpStatement{Token: p.curToken, Op: p.curToken.Literal}
	p.nextToken()

	if stmt.Path = p.parseEmbedded(stmt.Op); stmt.Path == nil {
		return nil
	}
	if stmt.Op != "COPY" && stmt.Op != "MOVE" {
		return stmt
	}
	if !p.expectKeyword(stmt.Op, "TO") {
		return nil
	}
	if stmt.Dest = p.parseEmbedded(stmt.Op); stmt.Dest == nil {
		return nil
	}
	return stmt
}

// PUSH arr[], v / UNSHIFT arr[], v / POP arr[][, var] / SHIFT arr[][, var]
func (p *Parser) parseArrayOpStatement() ast.Statement {
	stmt := &ast.ArrayOpStatement{Token: p.curToken, Op: p.curToken.Literal}
	p.nextToken()

	if stmt.Array = p.parseVariable(stmt.Op); stmt.Array == nil {
		return nil
	}

	takes := stmt.Op == "PUSH" || stmt.Op == "UNSHIFT"
	if !p.curTokenIs(token.COMMA) {
		if takes {
			p.errorf("%s: expected ',', got %s", stmt.Op, describe(p.curToken))
			return nil
		}
		return stmt
	}
	p.nextToken()

	if takes {
		stmt.Value = p.parseEmbedded(stmt.Op)
	} else {
		stmt.Value = p.parseTarget(stmt.Op)
	}
	if stmt.Value == nil {
		return nil
	}
	return stmt
}
