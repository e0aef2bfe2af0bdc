package berrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextForError(t *testing.T) {
	tests := []struct {
		inp int
		exp string
	}{
		{inp: DivByZero, exp: "Division by zero"},
		{inp: FileNotFound, exp: "File not found"},
		{inp: NextWithoutFor, exp: "NEXT without FOR"},
		{inp: LoopWoDo, exp: "LOOP without DO"},
		{inp: UendWoUntil, exp: "UEND without UNTIL"},
		{inp: WendWoWhile, exp: "WEND without WHILE"},
		{inp: WhileWoWend, exp: "WHILE: missing WEND"},
		{inp: Overflow, exp: "Overflow"},
		{inp: ReturnWoGosub, exp: "RETURN without GOSUB"},
		{inp: Syntax, exp: "Syntax error"},
		{inp: TypeMismatch, exp: "Type mismatch"},
		{inp: SubscriptRange, exp: "Array index out of bounds"},
		{inp: PathNotFound, exp: "Path not found"},
		{inp: 100, exp: "Unprintable error"},
	}

	for _, tt := range tests {
		rc := TextForError(tt.inp)

		assert.EqualValuesf(t, tt.exp, rc, "TextForError(%d) got %s, wanted %s", tt.inp, rc, tt.exp)
	}
}

func TestRuntimeError(t *testing.T) {
	err := Newf("POP: %s is empty", "x%")
	assert.Equal(t, "POP: x% is empty", err.Error())

	err.Line = 12
	wrapped := fmt.Errorf("step: %w", err)
	assert.Equal(t, 12, Line(wrapped))

	var re *RuntimeError
	assert.True(t, errors.As(wrapped, &re))
	assert.Equal(t, TextForError(DivByZero), Std(DivByZero).Msg)
}

func TestParseError(t *testing.T) {
	err := NewParseError(3, "FOR: expected %s", "TO")
	assert.Equal(t, "line 3: FOR: expected TO", err.Error())
	assert.Equal(t, 3, Line(err))

	bare := &ParseError{Msg: "unexpected token"}
	assert.Equal(t, "unexpected token", bare.Error())
	assert.Equal(t, 0, Line(errors.New("plain")))
}
