package lexer

import (
	"fmt"
	"strings"

	"github.com/navionguy/edubasic/keywords"
	"github.com/navionguy/edubasic/token"
)

// LexError reports a character sequence the lexer could not make sense of
type LexError struct {
	Line   int
	Column int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// cursor is everything needed to back the lexer up after a speculative scan
type cursor struct {
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // line number of ch
	lineStart    int  // offset of the first character on the line
}

//Lexer a lexical analyzer instance
type Lexer struct {
	input string
	cursor
	skipLine bool // REM seen, ignore the rest of the line
}

//New create a new lexer object
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.line = 1
	l.readChar()
	return l
}

// Tokenize turns the whole source into a token stream ending with EOF
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var toks []token.Token

	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

//NextToken scans for the next token
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	line, col := l.line, l.column()
	tok := token.Token{Line: line, Column: col}

	switch l.ch {
	case 0:
		tok.Type, tok.Literal = token.EOF, ""
		return tok, nil
	case '+', '-', '/', '^', '=', ',', ';', ':', '|', '(', ')', '[', ']', '{', '}':
		tok.Type, tok.Literal = token.TokenType(string(l.ch)), string(l.ch)
	case '*':
		tok.Type, tok.Literal = token.ASTERISK, "*"
		if l.peekChar() == '*' {
			l.readChar()
			tok.Type, tok.Literal = token.POWER, "**"
		}
	case '<':
		tok.Type, tok.Literal = token.LT, "<"
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok.Type, tok.Literal = token.LTE, "<="
		case '>':
			l.readChar()
			tok.Type, tok.Literal = token.NOT_EQ, "<>"
		}
	case '>':
		tok.Type, tok.Literal = token.GT, ">"
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = token.GTE, ">="
		}
	case '.':
		if isDigit(l.peekChar()) {
			tok.Type, tok.Literal = l.readNumber()
			return tok, nil
		}
		tok.Type, tok.Literal = token.PERIOD, "."
		if l.peekChar() == '.' && l.peekAt(2) == '.' {
			l.readChar()
			l.readChar()
			tok.Type, tok.Literal = token.ELLIPSIS, "..."
		}
	case '"':
		str, err := l.readString()
		if err != nil {
			return tok, err
		}
		tok.Type, tok.Literal = token.STRING, str
	case '&':
		lit, err := l.readRadixConstant()
		if err != nil {
			return tok, err
		}
		tok.Type, tok.Literal = token.INT, lit
		return tok, nil
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.IDENT
			if up := strings.ToUpper(tok.Literal); keywords.IsKeyword(up) {
				tok.Type, tok.Literal = token.KEYWORD, up
				l.skipLine = up == "REM"
			}
			return tok, nil
		}
		if isDigit(l.ch) {
			tok.Type, tok.Literal = l.readNumber()
			return tok, nil
		}
		return tok, l.errorf(line, col, "unexpected character %q", l.ch)
	}

	l.readChar()
	return tok, nil
}

func (l *Lexer) errorf(line, col int, format string, args ...interface{}) error {
	return &LexError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) column() int {
	return l.position - l.lineStart + 1
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPosition
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

//peekChar - take a look at, but don't consume the next character
func (l *Lexer) peekChar() byte {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) byte {
	pos := l.position + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

func (l *Lexer) save() cursor {
	return l.cursor
}

func (l *Lexer) restore(c cursor) {
	l.cursor = c
}

// identifiers may carry one type sigil followed by a comma only
// rank suffix, anything else in brackets belongs to the parser
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	if token.IsSigil(l.ch) {
		l.readChar()
	}

	if l.ch == '[' {
		mark := l.save()
		l.readChar()
		for l.ch == ',' {
			l.readChar()
		}
		if l.ch == ']' {
			l.readChar()
		} else {
			l.restore(mark)
		}
	}

	return l.input[position:l.position]
}

// reads a double quoted string, the returned literal has escapes resolved
func (l *Lexer) readString() (string, error) {
	line, col := l.line, l.column()
	var out strings.Builder

	for {
		l.readChar()
		switch l.ch {
		case 0, '\n':
			return "", l.errorf(line, col, "unterminated string")
		case '"':
			return out.String(), nil
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			case 0, '\n':
				return "", l.errorf(line, col, "unterminated string")
			default:
				// \\ and \" land here too
				out.WriteByte(l.ch)
			}
		default:
			out.WriteByte(l.ch)
		}
	}
}

// reads &H and &B constants, the literal keeps its prefix
func (l *Lexer) readRadixConstant() (string, error) {
	line, col := l.line, l.column()
	position := l.position

	l.readChar()
	var valid func(byte) bool
	switch l.ch {
	case 'h', 'H':
		valid = isHexDigit
	case 'b', 'B':
		valid = func(ch byte) bool { return ch == '0' || ch == '1' || ch == '_' }
	default:
		return "", l.errorf(line, col, "unexpected character '&'")
	}
	l.readChar()

	start := l.position
	for valid(l.ch) {
		l.readChar()
	}
	if l.position == start {
		return "", l.errorf(line, col, "missing digits in %s", l.input[position:l.position])
	}

	return l.input[position:l.position], nil
}

// reads an integer, real or complex value
func (l *Lexer) readNumber() (token.TokenType, string) {
	position := l.position
	tt := l.readReal()

	// complex suffix scan, either Ni or N+Mi / N-Mi
	if isImaginaryUnit(l.ch) && !isLetter(l.peekChar()) && !isDigit(l.peekChar()) {
		l.readChar()
		return token.COMPLEX, l.input[position:l.position]
	}

	if l.ch == '+' || l.ch == '-' {
		mark := l.save()
		l.readChar()
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			l.readReal()
			if isImaginaryUnit(l.ch) && !isLetter(l.peekChar()) && !isDigit(l.peekChar()) {
				l.readChar()
				return token.COMPLEX, l.input[position:l.position]
			}
		}
		l.restore(mark)
	}

	return tt, l.input[position:l.position]
}

// consumes digits, an optional fraction and an optional exponent
func (l *Lexer) readReal() token.TokenType {
	var tt token.TokenType = token.INT

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && l.peekChar() != '.' {
		tt = token.REAL
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			tt = token.REAL
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return tt
}

func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.skipLine = false
			l.readChar()
		case l.ch == '\'' || (l.skipLine && l.ch != 0):
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func isImaginaryUnit(ch byte) bool {
	return ch == 'i' || ch == 'I'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
