// Package keywords holds the EduBASIC keyword taxonomy.
//
// The lists are grouped by category and folded into lookup tables once at
// start up.  The lexer uses All to tell keywords from identifiers and the
// parser uses StatementStart and ExpressionTerminator to decide where a
// statement begins and where an embedded expression stops.
package keywords

import "strings"

var ControlFlow = []string{
	"IF", "ELSEIF", "ELSE", "END", "UNLESS",
	"FOR", "NEXT", "WHILE", "WEND", "DO", "LOOP", "UNTIL", "UEND",
	"SELECT", "CASE", "GOTO", "GOSUB", "RETURN", "LABEL",
	"SUB", "CALL", "EXIT", "CONTINUE",
	"TRY", "CATCH", "FINALLY", "THROW", "SLEEP",
}

var IO = []string{
	"PRINT", "INPUT", "LOCATE", "COLOR", "CLS", "CONSOLE", "HELP",
}

var Graphics = []string{
	"PSET", "LINE", "RECTANGLE", "OVAL", "CIRCLE", "TRIANGLE", "ARC",
	"PAINT", "GET", "PUT",
}

var Audio = []string{
	"TEMPO", "VOLUME", "MUTE", "VOICE", "PLAY",
}

var FileIO = []string{
	"OPEN", "CLOSE", "READFILE", "WRITEFILE", "SEEK", "LISTDIR",
	"MKDIR", "RMDIR", "COPY", "MOVE", "DELETE",
}

var Array = []string{
	"PUSH", "POP", "SHIFT", "UNSHIFT",
}

var MiscStatements = []string{
	"LET", "DIM", "LOCAL", "SWAP", "REM", "RANDOMIZE", "TRON", "TROFF",
}

// Modifiers only appear inside another statement's grammar
var Modifiers = []string{
	"THEN", "TO", "STEP", "WITH", "AS", "FROM", "AT", "IS", "BYREF",
	"RADIUS", "RADII", "ANGLES", "FILLED", "BORDER", "INSTRUMENT",
	"READ", "WRITE", "APPEND", "READWRITE", "ON", "OFF",
}

var LogicalOperators = []string{
	"AND", "OR", "XOR", "NOT", "NAND", "NOR", "XNOR", "IMP",
}

var MathFunctions = []string{
	"ABS", "SGN", "SIN", "COS", "TAN", "ASIN", "ACOS", "ATAN",
	"SINH", "COSH", "TANH", "SQRT", "SQR", "EXP", "LOG", "LOG10", "LOG2",
	"INT", "FLOOR", "CEIL", "ROUND", "TRUNC", "MOD",
}

var StringFunctions = []string{
	"LEN", "UCASE", "LCASE", "PROPER", "LTRIM", "RTRIM", "TRIM", "REVERSE",
	"ASC", "CHR", "STR", "VAL", "HEX", "BIN",
	"UCASE$", "LCASE$", "CHR$", "STR$", "HEX$", "BIN$",
	"LEFT", "RIGHT", "MID", "INSTR", "REPLACE", "STARTSWITH", "ENDSWITH",
}

var ArrayOperators = []string{
	"FIND", "INDEXOF", "INCLUDES", "JOIN", "SPLIT",
}

var ComplexFunctions = []string{
	"REAL", "IMAG", "CONJ", "CABS", "CARG",
}

var MiscFunctions = []string{
	"EOF",
}

var Constants = []string{
	"PI", "TRUE", "FALSE", "RND", "TIMER",
}

// ExpressionTerminators end an embedded expression when they appear at the
// outermost nesting level.
var ExpressionTerminators = []string{
	"THEN", "ELSE", "TO", "STEP", "WITH", "AS", "FROM", "AT", "FOR",
	"RADIUS", "RADII", "ANGLES", "FILLED", "BORDER", "INSTRUMENT",
}

type table map[string]string

var (
	all         = table{}
	stmtStart   = table{}
	terminators = table{}
)

func init() {
	categories := []struct {
		name  string
		words []string
		stmt  bool
	}{
		{"control-flow", ControlFlow, true},
		{"io", IO, true},
		{"graphics", Graphics, true},
		{"audio", Audio, true},
		{"file-io", FileIO, true},
		{"array", Array, true},
		{"statement", MiscStatements, true},
		{"modifier", Modifiers, false},
		{"logical-operator", LogicalOperators, false},
		{"math-function", MathFunctions, false},
		{"string-function", StringFunctions, false},
		{"array-operator", ArrayOperators, false},
		{"complex-function", ComplexFunctions, false},
		{"function", MiscFunctions, false},
		{"constant", Constants, false},
	}

	for _, c := range categories {
		for _, w := range c.words {
			if _, seen := all[w]; !seen {
				all[w] = c.name
			}
			if c.stmt {
				stmtStart[w] = c.name
			}
		}
	}

	for _, w := range ExpressionTerminators {
		terminators[w] = all[w]
	}
}

// IsKeyword reports whether word, in any case, is an EduBASIC keyword
func IsKeyword(word string) bool {
	_, ok := all[strings.ToUpper(word)]
	return ok
}

// IsStatementStart reports whether word can begin a statement
func IsStatementStart(word string) bool {
	_, ok := stmtStart[strings.ToUpper(word)]
	return ok
}

// IsExpressionTerminator reports whether word ends an embedded expression
func IsExpressionTerminator(word string) bool {
	_, ok := terminators[strings.ToUpper(word)]
	return ok
}

// Category returns the category a keyword was declared in, "" if the
// word is not a keyword
func Category(word string) string {
	return all[strings.ToUpper(word)]
}

// All returns every keyword, in no particular order
func All() []string {
	words := make([]string, 0, len(all))
	for w := range all {
		words = append(words, w)
	}
	return words
}
