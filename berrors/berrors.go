package berrors

import (
	"errors"
	"fmt"
)

const (
	NextWithoutFor = iota + 1
	Syntax
	ReturnWoGosub
	IllegalFuncCallErr
	Overflow
	UndefinedLabel
	SubscriptRange
	DivByZero
	TypeMismatch
	UndefinedSub // 10
	WhileWoWend
	WendWoWhile
	LoopWoDo
	UendWoUntil
	CaseWoSelect
	InputFormat
	DeviceIOError
	FileNotFound
	BadFileNum
	PathNotFound // 20
	ComplexCompare
	UnknownColor
)

// TextForError returns the error text based on error number
func TextForError(err int) string {
	switch err {
	case BadFileNum:
		return "Bad file number"
	case CaseWoSelect:
		return "CASE without SELECT CASE"
	case ComplexCompare:
		return "Cannot compare complex numbers"
	case DeviceIOError:
		return "Device I/O error"
	case DivByZero:
		return "Division by zero"
	case FileNotFound:
		return "File not found"
	case IllegalFuncCallErr:
		return "Illegal function call"
	case InputFormat:
		return "INPUT: invalid value"
	case LoopWoDo:
		return "LOOP without DO"
	case NextWithoutFor:
		return "NEXT without FOR"
	case Overflow:
		return "Overflow"
	case PathNotFound:
		return "Path not found"
	case ReturnWoGosub:
		return "RETURN without GOSUB"
	case SubscriptRange:
		return "Array index out of bounds"
	case Syntax:
		return "Syntax error"
	case TypeMismatch:
		return "Type mismatch"
	case UendWoUntil:
		return "UEND without UNTIL"
	case UndefinedLabel:
		return "Label not found"
	case UndefinedSub:
		return "SUB not found"
	case UnknownColor:
		return "Unknown color name"
	case WendWoWhile:
		return "WEND without WHILE"
	case WhileWoWend:
		return "WHILE: missing WEND"
	}

	return "Unprintable error"
}

// Fatal messages that tooling matches on, keep them verbatim
const (
	MissingEndIf     = "IF: missing END IF"
	MissingEndUnless = "UNLESS: missing END UNLESS"
	MissingNext      = "FOR: missing NEXT"
	MissingWend      = "WHILE: missing WEND"
	MissingLoop      = "DO: missing LOOP"
	MissingUend      = "UNTIL: missing UEND"
	MissingEndSelect = "SELECT CASE: missing END SELECT"
	MissingEndSub    = "SUB: missing END SUB"
	MissingEndTry    = "TRY: missing END TRY"

	ElseWoIf        = "ELSE without IF"
	ElseIfWoIf      = "ELSEIF without IF"
	EndIfWoIf       = "END IF without IF"
	EndSelectWoCase = "END SELECT without SELECT CASE"
	EndSubWoSub     = "END SUB without SUB"
	CatchWoTry      = "CATCH without TRY"
	FinallyWoTry    = "FINALLY without TRY"
	EndTryWoTry     = "END TRY without TRY"

	DimNegative      = "DIM: Array dimension cannot be negative"
	ComplexToReal    = "Cannot assign complex number to REAL variable"
	ComplexToInteger = "Cannot assign complex number to INTEGER variable"

	InputInvalidInteger = "INPUT: invalid integer"
	InputInvalidReal    = "INPUT: invalid real"
	InputInvalidComplex = "INPUT: invalid complex"

	UnknownRelOp = "CASE: unknown relational operator"
)

// ErrInputPending is returned when INPUT finds nothing buffered.  It does
// not halt the program, the host queues input and steps again.
var ErrInputPending = errors.New("INPUT: no input available")

// RuntimeError is a fatal error raised while a program is executing
type RuntimeError struct {
	Msg    string
	Line   int  // source line, zero when not known
	Thrown bool // raised by a THROW statement
}

func (e *RuntimeError) Error() string {
	return e.Msg
}

// New creates a RuntimeError with the exact message given
func New(msg string) *RuntimeError {
	return &RuntimeError{Msg: msg}
}

// Newf formats a RuntimeError message
func Newf(format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// Std builds a RuntimeError from one of the numbered errors
func Std(code int) *RuntimeError {
	return New(TextForError(code))
}

// ParseError reports a malformed statement or expression
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// NewParseError formats a ParseError for the given source line
func NewParseError(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Line returns the source line an error was raised on, zero if unknown
func Line(err error) int {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Line
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
