package evaluator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/object"
)

func Test_IfStatement(t *testing.T) {
	src := `x%% = %d
IF x%% = 1 THEN
  r$ = "one"
ELSEIF x%% = 2 THEN
  r$ = "two"
ELSEIF x%% = 3 THEN
  r$ = "three"
ELSE
  r$ = "many"
END IF
done%% = 1`

	tests := []struct {
		x   int
		exp string
	}{
		{x: 1, exp: "one"},
		{x: 2, exp: "two"},
		{x: 3, exp: "three"},
		{x: 9, exp: "many"},
	}

	for _, tt := range tests {
		rt, err := run(t, fmt.Sprintf(src, tt.x), object.Devices{})
		require.NoError(t, err)
		assert.Equal(t, &object.String{Value: tt.exp}, variable(rt, "R$"), "x=%d", tt.x)
		assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "DONE%"))
	}
}

func Test_NestedIf(t *testing.T) {
	rt, err := run(t, `a% = 1
b% = 0
IF a% THEN
  IF b% THEN
    r% = 1
  ELSE
    r% = 2
  END IF
ELSE
  r% = 3
END IF`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 2}, variable(rt, "R%"))
}

func Test_InlineIf(t *testing.T) {
	rt, err := run(t, `x% = 5
IF x% > 3 THEN big% = 1 ELSE big% = 2
IF x% < 3 THEN small% = 1 ELSE small% = 2
UNLESS x% = 5 THEN never% = 1`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "BIG%"))
	assert.Equal(t, &object.Integer{Value: 2}, variable(rt, "SMALL%"))
	assert.Nil(t, variable(rt, "NEVER%"))
}

func Test_UnlessBlock(t *testing.T) {
	rt, err := run(t, `UNLESS 0 THEN
  a% = 1
END UNLESS
UNLESS 1 THEN
  b% = 1
ELSE
  b% = 2
END UNLESS`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "A%"))
	assert.Equal(t, &object.Integer{Value: 2}, variable(rt, "B%"))
}

func Test_ConditionMustBeNumeric(t *testing.T) {
	_, err := run(t, `IF "yes" THEN
END IF`, object.Devices{})
	assert.EqualError(t, err, "Type mismatch")
}

func Test_ForLoops(t *testing.T) {
	tests := []struct {
		src string
		exp int64
	}{
		{src: "FOR i = 5 TO 1 STEP 1\nn% = n% + 1\nNEXT i", exp: 0},
		{src: "FOR i = 5 TO 1\nn% = n% + 1\nNEXT", exp: 0},
		{src: "FOR i = 5 TO 1 STEP -1\nn% = n% + 1\nNEXT i", exp: 5},
		{src: "FOR i = 1 TO 10 STEP 3\nn% = n% + 1\nNEXT", exp: 4},
		{src: "FOR i# = 0 TO 1 STEP 0.25\nn% = n% + 1\nNEXT", exp: 5},
		{src: "FOR i = 1 TO 3\nFOR j = 1 TO 4\nn% = n% + 1\nNEXT j\nNEXT i", exp: 12},
		{src: "FOR i = 1 TO 3\nFOR j = 1 TO i\nn% = n% + 1\nNEXT\nNEXT", exp: 6},
	}

	for _, tt := range tests {
		rt, err := run(t, tt.src, object.Devices{})
		require.NoError(t, err, tt.src)
		n := variable(rt, "N%")
		if tt.exp == 0 {
			assert.Nil(t, n, tt.src)
			continue
		}
		assert.Equal(t, &object.Integer{Value: tt.exp}, n, tt.src)
	}
}

func Test_ExitForScoping(t *testing.T) {
	rt, err := run(t, `FOR i% = 1 TO 3
  FOR j% = 1 TO 5
    inner% = inner% + 1
    IF j% = 2 THEN EXIT FOR
  NEXT j%
  outer% = outer% + 1
NEXT i%`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 3}, variable(rt, "OUTER%"))
	assert.Equal(t, &object.Integer{Value: 6}, variable(rt, "INNER%"))
	assert.Empty(t, rt.frames)
}

func Test_ContinueFor(t *testing.T) {
	rt, err := run(t, `FOR i% = 1 TO 5
  IF i% MOD 2 = 0 THEN CONTINUE FOR
  odd% = odd% + i%
NEXT i%`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 9}, variable(rt, "ODD%"))
}

func Test_WhileDoUntil(t *testing.T) {
	tests := []struct {
		src string
		v   string
		exp int64
	}{
		{src: "WHILE i% < 5\ni% = i% + 1\nWEND", v: "I%", exp: 5},
		{src: "DO WHILE i% < 4\ni% = i% + 1\nLOOP", v: "I%", exp: 4},
		{src: "DO UNTIL i% = 3\ni% = i% + 1\nLOOP", v: "I%", exp: 3},
		{src: "DO\ni% = i% + 1\nLOOP UNTIL i% >= 3", v: "I%", exp: 3},
		{src: "DO\ni% = i% + 1\nLOOP WHILE i% < 7", v: "I%", exp: 7},
		{src: "i% = 10\nDO\ni% = i% + 1\nLOOP UNTIL 1", v: "I%", exp: 11},
		{src: "UNTIL k% = 4\nk% = k% + 1\nUEND\ni% = k%", v: "I%", exp: 4},
		{src: "WHILE 1\ni% = i% + 1\nIF i% = 3 THEN EXIT WHILE\nWEND", v: "I%", exp: 3},
		{src: "DO\ni% = i% + 1\nIF i% = 6 THEN EXIT DO\nLOOP", v: "I%", exp: 6},
		{src: "UNTIL 0\ni% = i% + 1\nIF i% = 2 THEN EXIT UNTIL\nUEND", v: "I%", exp: 2},
		{src: "WHILE n% < 6\nn% = n% + 1\nIF n% MOD 2 THEN CONTINUE WHILE\ni% = i% + 1\nWEND", v: "I%", exp: 3},
		{src: "WHILE 0\ni% = 1\nWEND\ni% = i% + 2", v: "I%", exp: 2},
	}

	for _, tt := range tests {
		rt, err := run(t, tt.src, object.Devices{})
		require.NoError(t, err, tt.src)
		assert.Equal(t, &object.Integer{Value: tt.exp}, variable(rt, tt.v), tt.src)
		assert.Empty(t, rt.frames, tt.src)
	}
}

func Test_GotoBackIntoLoopLeavesNoStaleFrames(t *testing.T) {
	rt, err := run(t, `LABEL top
WHILE 1
  n% = n% + 1
  IF n% < 4 THEN GOTO top
  EXIT WHILE
WEND`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 4}, variable(rt, "N%"))
	assert.Empty(t, rt.frames)
}

func Test_SelectCase(t *testing.T) {
	rt, err := run(t, `SELECT CASE 2
CASE 1
  r% = 1
CASE 2, 3
  r% = r% + 10
CASE ELSE
  r% = r% + 100
END SELECT
after% = 1`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 10}, variable(rt, "R%"))
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "AFTER%"))
	assert.Empty(t, rt.frames)
}

func Test_SelectCaseSelectors(t *testing.T) {
	src := `SELECT CASE %s
CASE 1
  r$ = "one"
CASE 2 TO 5
  r$ = "few"
CASE IS >= 100
  r$ = "lots"
CASE ELSE
  r$ = "other"
END SELECT`

	tests := []struct {
		test string
		exp  string
	}{
		{test: "1", exp: "one"},
		{test: "2", exp: "few"},
		{test: "5", exp: "few"},
		{test: "3.5", exp: "few"},
		{test: "250", exp: "lots"},
		{test: "42", exp: "other"},
	}

	for _, tt := range tests {
		rt, err := run(t, fmt.Sprintf(src, tt.test), object.Devices{})
		require.NoError(t, err, tt.test)
		assert.Equal(t, &object.String{Value: tt.exp}, variable(rt, "R$"), tt.test)
	}

	// comparing a string test with a number is a type error
	_, err := run(t, fmt.Sprintf(src, `"x"`), object.Devices{})
	assert.EqualError(t, err, "Type mismatch")
}

func Test_SelectCaseNoMatch(t *testing.T) {
	rt, err := run(t, `SELECT CASE 9
CASE 1
  r% = 1
END SELECT
r% = r% + 5`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 5}, variable(rt, "R%"))
}

func Test_GosubReturn(t *testing.T) {
	rt, err := run(t, `GOSUB work
GOSUB work
done% = count%
END
LABEL work
count% = count% + 1
RETURN`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 2}, variable(rt, "DONE%"))
}

func Test_SubCall(t *testing.T) {
	rt, err := run(t, `n% = 1
CALL bump(n%, 5)
CALL bump(n%, 10)
total% = n%
END
SUB bump (BYREF v%, by%)
  v% = v% + by%
  LOCAL tmp% = 3
END SUB`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 16}, variable(rt, "TOTAL%"))
	assert.Nil(t, variable(rt, "BY%"))
	assert.Nil(t, variable(rt, "TMP%"))
	assert.Equal(t, 0, rt.Env().ScopeDepth())
}

func Test_SubByValue(t *testing.T) {
	rt, err := run(t, `n% = 1
CALL change n%
SUB change (v%)
  v% = 99
  g% = 7
END SUB
after% = n%`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "AFTER%"))
	assert.Equal(t, &object.Integer{Value: 7}, variable(rt, "G%"), "globals are visible inside a SUB")
}

func Test_ExitSub(t *testing.T) {
	rt, err := run(t, `CALL early
r% = r% + 1
END
SUB early
  FOR i = 1 TO 10
    r% = r% + 10
    EXIT SUB
  NEXT
  r% = 1000
END SUB`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 11}, variable(rt, "R%"))
	assert.Empty(t, rt.frames)
}

func Test_SubArguments(t *testing.T) {
	_, err := run(t, "CALL f 1, 2\nSUB f (a)\nEND SUB", object.Devices{})
	assert.EqualError(t, err, "CALL f: expected 1 arguments, got 2")

	_, err = run(t, "CALL f 1\nSUB f (BYREF a)\nEND SUB", object.Devices{})
	assert.EqualError(t, err, "CALL f: BYREF a needs a variable")

	_, err = run(t, `CALL f "x"
SUB f (a%)
END SUB`, object.Devices{})
	assert.EqualError(t, err, "Type mismatch")
}

func Test_TryCatchFinally(t *testing.T) {
	rt, err := run(t, `TRY
  THROW "boom"
  x% = 1
CATCH e$
  msg$ = e$
FINALLY
  f% = 1
END TRY
after% = 1`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.String{Value: "boom"}, variable(rt, "MSG$"))
	assert.Nil(t, variable(rt, "X%"))
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "F%"))
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "AFTER%"))
	assert.Empty(t, rt.frames)
}

func Test_TryRuntimeError(t *testing.T) {
	rt, err := run(t, `TRY
  y% = 1 / 0
CATCH e$
END TRY`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.String{Value: "Division by zero"}, variable(rt, "E$"))
}

func Test_TryWithoutError(t *testing.T) {
	rt, err := run(t, `TRY
  a% = 1
CATCH e$
  b% = 1
FINALLY
  c% = 1
END TRY`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "A%"))
	assert.Nil(t, variable(rt, "B%"))
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "C%"))
}

func Test_TryFinallyRethrows(t *testing.T) {
	rt, err := run(t, `TRY
  THROW "again"
FINALLY
  f% = 1
END TRY
never% = 1`, object.Devices{})
	assert.EqualError(t, err, "again")
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "F%"))
	assert.Nil(t, variable(rt, "NEVER%"))
}

func Test_TryNested(t *testing.T) {
	rt, err := run(t, `TRY
  TRY
    THROW "inner"
  CATCH e$
    THROW e$ + " rethrown"
  END TRY
CATCH outer$
END TRY`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.String{Value: "inner rethrown"}, variable(rt, "OUTER$"))
	assert.Empty(t, rt.frames)
}

func Test_TryAcrossSub(t *testing.T) {
	rt, err := run(t, `TRY
  CALL fail
CATCH e$
END TRY
END
SUB fail
  LOCAL x% = 1
  THROW "from sub"
END SUB`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.String{Value: "from sub"}, variable(rt, "E$"))
	assert.Equal(t, 0, rt.Env().ScopeDepth())
}

func Test_EndInsideTry(t *testing.T) {
	rt, err := run(t, `TRY
  END
FINALLY
  f% = 1
END TRY`, object.Devices{})
	require.NoError(t, err)
	assert.Nil(t, variable(rt, "F%"))
}

func Test_ThrownErrorIsMarked(t *testing.T) {
	_, err := run(t, `THROW 42`, object.Devices{})
	require.Error(t, err)

	re, ok := err.(*berrors.RuntimeError)
	require.True(t, ok)
	assert.True(t, re.Thrown)
	assert.Equal(t, "42", re.Msg)
	assert.Equal(t, 1, re.Line)
}

func Test_ControlFlowErrors(t *testing.T) {
	tests := []struct {
		src string
		exp string
	}{
		{src: "IF 0 THEN\nx = 1", exp: berrors.MissingEndIf},
		{src: "UNLESS 1 THEN\nx = 1", exp: berrors.MissingEndUnless},
		{src: "FOR i = 1 TO 2\nx = 1", exp: berrors.MissingNext},
		{src: "WHILE 1\nx = 1", exp: berrors.MissingWend},
		{src: "DO\nx = 1", exp: berrors.MissingLoop},
		{src: "UNTIL 0\nx = 1", exp: berrors.MissingUend},
		{src: "SELECT CASE 1\nCASE 1", exp: berrors.MissingEndSelect},
		{src: "SUB s\nx = 1", exp: berrors.MissingEndSub},
		{src: "TRY\nx = 1", exp: berrors.MissingEndTry},
		{src: "WEND", exp: "WEND without WHILE"},
		{src: "LOOP", exp: "LOOP without DO"},
		{src: "UEND", exp: "UEND without UNTIL"},
		{src: "NEXT", exp: "NEXT without FOR"},
		{src: "RETURN", exp: "RETURN without GOSUB"},
		{src: "CASE 1", exp: "CASE without SELECT CASE"},
		{src: "ELSE", exp: berrors.ElseWoIf},
		{src: "ELSEIF 1 THEN", exp: berrors.ElseIfWoIf},
		{src: "END IF", exp: berrors.EndIfWoIf},
		{src: "END SELECT", exp: berrors.EndSelectWoCase},
		{src: "END SUB", exp: berrors.EndSubWoSub},
		{src: "CATCH", exp: berrors.CatchWoTry},
		{src: "FINALLY", exp: berrors.FinallyWoTry},
		{src: "END TRY", exp: berrors.EndTryWoTry},
		{src: "GOTO nowhere", exp: "Label not found: nowhere"},
		{src: "GOSUB nowhere", exp: "Label not found: nowhere"},
		{src: "CALL nothing", exp: "SUB not found: nothing"},
		{src: "EXIT FOR", exp: "EXIT FOR outside of FOR"},
		{src: "CONTINUE WHILE", exp: "CONTINUE WHILE outside of WHILE"},
		{src: "FOR i = 1 TO 2\nNEXT j", exp: "NEXT without FOR"},
	}

	for _, tt := range tests {
		_, err := run(t, tt.src, object.Devices{})
		assert.EqualError(t, err, tt.exp, tt.src)
	}
}

func Test_LoopInsideSubCannotSeeCallerFrames(t *testing.T) {
	_, err := run(t, `FOR i = 1 TO 2
  CALL s
NEXT
END
SUB s
  NEXT
END SUB`, object.Devices{})
	assert.EqualError(t, err, "NEXT without FOR")
}

func Test_ClosersMatchTheirBlock(t *testing.T) {
	rt, err := run(t, `WHILE 0
NEXT
WEND
c% = 1
IF 0 THEN
  WEND
END IF
d% = 1`, object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "C%"))
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "D%"))

	tests := []struct {
		src string
		exp string
	}{
		{src: "WHILE 1\nNEXT\nWEND", exp: "NEXT without FOR"},
		{src: "WHILE 1\nEND IF\nWEND", exp: berrors.EndIfWoIf},
		{src: "SELECT CASE 1\nCASE 1\nLOOP\nEND SELECT", exp: "LOOP without DO"},
		{src: "FOR i = 1 TO 2\nWEND", exp: berrors.MissingNext},
		{src: "SUB s\nNEXT\nEND SUB\nCALL s", exp: "NEXT without FOR"},
	}

	for _, tt := range tests {
		_, err := run(t, tt.src, object.Devices{})
		assert.EqualError(t, err, tt.exp, tt.src)
	}
}
