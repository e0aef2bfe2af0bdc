package lexer

import (
	"errors"
	"testing"

	"github.com/navionguy/edubasic/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {

	input := `LET five% = 5
	ten# = 10.5 ' a comment
	IF five% <= ten# THEN PRINT "Hello there!"
	m%[,] = [1, 2] : x = a#[i, j]
	p.name$ = {age: 3} | ... <> >= ** ^`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.KEYWORD, "LET"},
		{token.IDENT, "five%"},
		{token.EQ, "="},
		{token.INT, "5"},
		{token.IDENT, "ten#"},
		{token.EQ, "="},
		{token.REAL, "10.5"},
		{token.KEYWORD, "IF"},
		{token.IDENT, "five%"},
		{token.LTE, "<="},
		{token.IDENT, "ten#"},
		{token.KEYWORD, "THEN"},
		{token.KEYWORD, "PRINT"},
		{token.STRING, "Hello there!"},
		{token.IDENT, "m%[,]"},
		{token.EQ, "="},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.RBRACKET, "]"},
		{token.COLON, ":"},
		{token.IDENT, "x"},
		{token.EQ, "="},
		{token.IDENT, "a#"},
		{token.LBRACKET, "["},
		{token.IDENT, "i"},
		{token.COMMA, ","},
		{token.IDENT, "j"},
		{token.RBRACKET, "]"},
		{token.IDENT, "p"},
		{token.PERIOD, "."},
		{token.IDENT, "name$"},
		{token.EQ, "="},
		{token.LBRACE, "{"},
		{token.IDENT, "age"},
		{token.COLON, ":"},
		{token.INT, "3"},
		{token.RBRACE, "}"},
		{token.PIPE, "|"},
		{token.ELLIPSIS, "..."},
		{token.NOT_EQ, "<>"},
		{token.GTE, ">="},
		{token.POWER, "**"},
		{token.CARET, "^"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		require.NoError(t, err)

		assert.Equalf(t, tt.expectedType, tok.Type, "tests[%d] - wrong token type, literal %q", i, tok.Literal)
		assert.Equalf(t, tt.expectedLiteral, tok.Literal, "tests[%d] - wrong literal", i)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		inp string
		typ token.TokenType
		lit string
	}{
		{inp: "42", typ: token.INT, lit: "42"},
		{inp: ".5", typ: token.REAL, lit: ".5"},
		{inp: "5.", typ: token.REAL, lit: "5."},
		{inp: "1.5E-3", typ: token.REAL, lit: "1.5E-3"},
		{inp: "2e10", typ: token.REAL, lit: "2e10"},
		{inp: "&HFF", typ: token.INT, lit: "&HFF"},
		{inp: "&b1010_0101", typ: token.INT, lit: "&b1010_0101"},
		{inp: "4i", typ: token.COMPLEX, lit: "4i"},
		{inp: "3+4i", typ: token.COMPLEX, lit: "3+4i"},
		{inp: "10.5-2.5i", typ: token.COMPLEX, lit: "10.5-2.5i"},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.inp)
		require.NoError(t, err, tt.inp)
		require.Len(t, toks, 2, tt.inp)
		assert.Equal(t, tt.typ, toks[0].Type, tt.inp)
		assert.Equal(t, tt.lit, toks[0].Literal, tt.inp)
	}
}

func TestComplexRollback(t *testing.T) {
	tests := []struct {
		inp  string
		lits []string
	}{
		{inp: "3+4", lits: []string{"3", "+", "4", ""}},
		{inp: "2-x", lits: []string{"2", "-", "x", ""}},
		{inp: "1+2if", lits: []string{"1", "+", "2", "IF", ""}},
		{inp: "5 E", lits: []string{"5", "E", ""}},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.inp)
		require.NoError(t, err, tt.inp)

		var lits []string
		for _, tok := range toks {
			lits = append(lits, tok.Literal)
		}
		assert.Equal(t, tt.lits, lits, tt.inp)
	}
}

func TestRankSuffix(t *testing.T) {
	tests := []struct {
		inp  string
		lits []string
	}{
		{inp: "a%[]", lits: []string{"a%[]", ""}},
		{inp: "grid#[,,]", lits: []string{"grid#[,,]", ""}},
		{inp: "a#[i,j]", lits: []string{"a#", "[", "i", ",", "j", "]", ""}},
		{inp: "a[1]", lits: []string{"a", "[", "1", "]", ""}},
		{inp: "a[,1]", lits: []string{"a", "[", ",", "1", "]", ""}},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.inp)
		require.NoError(t, err, tt.inp)

		var lits []string
		for _, tok := range toks {
			lits = append(lits, tok.Literal)
		}
		assert.Equal(t, tt.lits, lits, tt.inp)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{inp: `"plain"`, exp: "plain"},
		{inp: `"tab\there"`, exp: "tab\there"},
		{inp: `"quote \"me\""`, exp: `quote "me"`},
		{inp: `"back\\slash"`, exp: `back\slash`},
		{inp: `"keep \q"`, exp: "keep q"},
		{inp: `"new\nline"`, exp: "new\nline"},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.inp)
		require.NoError(t, err, tt.inp)
		assert.Equal(t, token.TokenType(token.STRING), toks[0].Type)
		assert.Equal(t, tt.exp, toks[0].Literal)
	}
}

func TestKeywordCase(t *testing.T) {
	toks, err := Tokenize("print Count% for")
	require.NoError(t, err)

	assert.Equal(t, "PRINT", toks[0].Literal)
	assert.Equal(t, token.TokenType(token.KEYWORD), toks[0].Type)
	assert.Equal(t, "Count%", toks[1].Literal, "identifiers keep their case")
	assert.Equal(t, "FOR", toks[2].Literal)
}

func TestRemSkipsLine(t *testing.T) {
	toks, err := Tokenize("REM 50% off & more\nPRINT 1")
	require.NoError(t, err)

	lits := []string{}
	for _, tok := range toks {
		lits = append(lits, tok.Literal)
	}
	assert.Equal(t, []string{"REM", "PRINT", "1", ""}, lits)
}

func TestPositions(t *testing.T) {
	toks, err := Tokenize("x = 1\n  PRINT x")
	require.NoError(t, err)

	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Column)
	assert.Equal(t, 5, toks[2].Column)
	assert.Equal(t, 2, toks[3].Line)
	assert.Equal(t, 3, toks[3].Column)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		inp  string
		line int
		col  int
	}{
		{inp: `x = "open`, line: 1, col: 5},
		{inp: "x = \"broken\nline\"", line: 1, col: 5},
		{inp: "x = 1\ny = @", line: 2, col: 5},
		{inp: "&Q1", line: 1, col: 1},
		{inp: "&H", line: 1, col: 1},
	}

	for _, tt := range tests {
		_, err := Tokenize(tt.inp)
		require.Error(t, err, tt.inp)

		var le *LexError
		require.True(t, errors.As(err, &le), "expected a LexError for %s", tt.inp)
		assert.Equal(t, tt.line, le.Line, tt.inp)
		assert.Equal(t, tt.col, le.Column, tt.inp)
	}
}
