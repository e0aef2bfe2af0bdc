package token

import "fmt"

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT   = "IDENT"   // x, name$, m%[,]
	KEYWORD = "KEYWORD" // PRINT, SIN, TO, ...
	INT     = "INT"     // 42, &HFF, &B1010
	REAL    = "REAL"    // 1.5, .5, 2E10
	COMPLEX = "COMPLEX" // 4i, 3+4i
	STRING  = "STRING"  // "A string literal"

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	CARET    = "^"
	POWER    = "**"

	EQ     = "="
	NOT_EQ = "<>"
	LT     = "<"
	GT     = ">"
	LTE    = "<="
	GTE    = ">="

	// Delimiters
	PERIOD    = "."
	ELLIPSIS  = "..."
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	PIPE      = "|"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"
)

// Type sigils that may trail an identifier
const (
	SIGIL_INT     = '%'
	SIGIL_REAL    = '#'
	SIGIL_STRING  = '$'
	SIGIL_COMPLEX = '&'
)

// Token is a single lexeme along with where it was found
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1 based source line
	Column  int // 1 based column of the first character
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Literal, t.Line, t.Column)
}

// Is reports whether the token is the keyword kw
// keywords are always stored upper case
func (t Token) Is(kw string) bool {
	return t.Type == KEYWORD && t.Literal == kw
}

// IsSigil reports whether ch is one of the type sigils
func IsSigil(ch byte) bool {
	switch ch {
	case SIGIL_INT, SIGIL_REAL, SIGIL_STRING, SIGIL_COMPLEX:
		return true
	}
	return false
}
