package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/mocks"
	"github.com/navionguy/edubasic/object"
	"github.com/navionguy/edubasic/parser"
)

// build parses src into a runtime, failing the test on a parse error
func build(t *testing.T, src string, dev object.Devices, opts ...Option) *Runtime {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	require.NoError(t, err, src)
	return New(prog, dev, append([]Option{WithStepLimit(100000)}, opts...)...)
}

// run parses and runs src to the end
func run(t *testing.T, src string, dev object.Devices, input ...string) (*Runtime, error) {
	t.Helper()
	rt := build(t, src, dev)
	rt.QueueInput(input...)
	return rt, rt.Run(context.Background())
}

func variable(rt *Runtime, name string) object.Object {
	return rt.Env().Get(name)
}

func evalString(t *testing.T, src string) (object.Object, error) {
	t.Helper()
	exp, err := parser.ParseExpression(src)
	require.NoError(t, err, src)
	return Eval(exp, object.NewEnvironment(object.Devices{}))
}

func Test_EvalExpressions(t *testing.T) {
	tests := []struct {
		inp string
		exp object.Object
	}{
		{inp: "2 + 3 * 4", exp: &object.Integer{Value: 14}},
		{inp: "2 ^ 2 ^ 3", exp: &object.Real{Value: 256}},
		{inp: "0 OR 1 AND 1", exp: &object.Integer{Value: 1}},
		{inp: "5 = 5", exp: &object.Integer{Value: -1}},
		{inp: "5 = 3", exp: &object.Integer{Value: 0}},
		{inp: "NOT 5", exp: &object.Integer{Value: -6}},
		{inp: "NOT 0", exp: &object.Integer{Value: -1}},
		{inp: "-10 MOD 3", exp: &object.Integer{Value: -1}},
		{inp: "10 MOD 3 * 2", exp: &object.Integer{Value: 2}},
		{inp: "6 / 3", exp: &object.Integer{Value: 2}},
		{inp: "7 / 2", exp: &object.Real{Value: 3.5}},
		{inp: "1 + 0.5", exp: &object.Real{Value: 1.5}},
		{inp: "-2 ^ 2", exp: &object.Real{Value: 4}},
		{inp: "2 ^ -1", exp: &object.Real{Value: 0.5}},
		{inp: "3+4i", exp: &object.Complex{Value: complex(3, 4)}},
		{inp: "10.5-2.5i", exp: &object.Complex{Value: complex(10.5, -2.5)}},
		{inp: `"ab" + "cd"`, exp: &object.String{Value: "abcd"}},
		{inp: `"abc" < "abd"`, exp: &object.Integer{Value: -1}},
		{inp: "12 AND 10", exp: &object.Integer{Value: 8}},
		{inp: "12 XOR 10", exp: &object.Integer{Value: 6}},
		{inp: "1 = 1 OR 2 > 3", exp: &object.Integer{Value: -1}},
		{inp: "1.5 = 1.5", exp: &object.Integer{Value: -1}},
		{inp: "9223372036854775807 + 1", exp: &object.Real{Value: 9223372036854775808}},
		{inp: "SIN 0 + 1", exp: &object.Real{Value: 1}},
		{inp: `"hello" LEFT 2`, exp: &object.String{Value: "he"}},
		{inp: "[10, 20, 30] INDEXOF 20", exp: &object.Integer{Value: 2}},
	}

	for _, tt := range tests {
		res, err := evalString(t, tt.inp)
		require.NoError(t, err, tt.inp)
		assert.Equal(t, tt.exp, res, tt.inp)
	}
}

func Test_EvalIsDeterministic(t *testing.T) {
	exp, err := parser.ParseExpression(`(2 + 3) * 4 ^ 2 - LEN "abc"`)
	require.NoError(t, err)

	env := object.NewEnvironment(object.Devices{})
	first, err := Eval(exp, env)
	require.NoError(t, err)
	second, err := Eval(exp, env)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func Test_EvalErrors(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{inp: "1 / 0", exp: "Division by zero"},
		{inp: "1 MOD 0", exp: "Division by zero"},
		{inp: `1 + "a"`, exp: "Type mismatch"},
		{inp: `"a" - "b"`, exp: "Type mismatch"},
		{inp: `NOT "a"`, exp: "Type mismatch"},
		{inp: "3+4i < 1", exp: "Cannot compare complex numbers"},
	}

	for _, tt := range tests {
		_, err := evalString(t, tt.inp)
		assert.EqualError(t, err, tt.exp, tt.inp)
	}
}

func Test_UnsetVariables(t *testing.T) {
	env := object.NewEnvironment(object.Devices{})
	tests := []struct {
		inp string
		exp object.Object
	}{
		{inp: "n%", exp: &object.Integer{Value: 0}},
		{inp: "r#", exp: &object.Real{Value: 0}},
		{inp: "s$", exp: &object.String{Value: ""}},
		{inp: "c&", exp: &object.Complex{Value: 0}},
	}
	for _, tt := range tests {
		exp, err := parser.ParseExpression(tt.inp)
		require.NoError(t, err)
		res, err := Eval(exp, env)
		require.NoError(t, err)
		assert.Equal(t, tt.exp, res, tt.inp)
	}
}

func Test_ForCountScenario(t *testing.T) {
	rt, err := run(t, "FOR i%=1 TO 3 : count%=count%+1 : NEXT i%", object.Devices{})
	require.NoError(t, err)

	assert.Equal(t, &object.Integer{Value: 3}, variable(rt, "COUNT%"))
	assert.Equal(t, &object.Integer{Value: 4}, variable(rt, "I%"))
	assert.Equal(t, rt.Program().Len(), rt.Env().PC())
	assert.True(t, rt.Ended())
}

func Test_AssignmentCoercion(t *testing.T) {
	tests := []struct {
		inp string
		err string
	}{
		{inp: "x# = 3+4i", err: berrors.ComplexToReal},
		{inp: "x% = 3+4i", err: berrors.ComplexToInteger},
		{inp: `x% = "7"`, err: "Type mismatch"},
		{inp: "x$ = 7", err: "Type mismatch"},
		{inp: "a%[] = 5", err: "Type mismatch"},
	}

	for _, tt := range tests {
		_, err := run(t, tt.inp, object.Devices{})
		assert.EqualError(t, err, tt.err, tt.inp)
	}

	rt, err := run(t, "x% = 7.9\ny% = -7.9\nz# = 2", object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 7}, variable(rt, "X%"))
	assert.Equal(t, &object.Integer{Value: -7}, variable(rt, "Y%"))
	assert.Equal(t, &object.Real{Value: 2}, variable(rt, "Z#"))
}

func Test_ArrayLiteralToComplexArray(t *testing.T) {
	rt, err := run(t, "c&[] = [1, 2.5]", object.Devices{})
	require.NoError(t, err)

	arr, ok := variable(rt, "C&").(*object.Array)
	require.True(t, ok)
	assert.Equal(t, ast.ComplexVar, arr.ElemType)
	assert.Equal(t, []object.Object{
		&object.Complex{Value: complex(1, 0)},
		&object.Complex{Value: complex(2.5, 0)},
	}, arr.Elements)
}

func Test_DimStatement(t *testing.T) {
	rt, err := run(t, "DIM m%[,] [3, 4]\nDIM r#[0 TO 2]\nDIM f%[2.7]", object.Devices{})
	require.NoError(t, err)

	m := variable(rt, "M%").(*object.Array)
	assert.Equal(t, []object.Dimension{
		{Lower: 1, Length: 3, Stride: 4},
		{Lower: 1, Length: 4, Stride: 1},
	}, m.Dims)
	assert.Len(t, m.Elements, 12)

	r := variable(rt, "R#").(*object.Array)
	assert.Equal(t, []object.Dimension{{Lower: 0, Length: 3, Stride: 1}}, r.Dims)
	assert.Equal(t, &object.Real{Value: 0}, r.Elements[0])

	f := variable(rt, "F%").(*object.Array)
	assert.Equal(t, 2, f.Dims[0].Length)
}

func Test_DimErrors(t *testing.T) {
	_, err := run(t, "DIM m%[,] [2, 2]\nm%[3, 1] = 5", object.Devices{})
	assert.EqualError(t, err, "Array index out of bounds")
	assert.Equal(t, 2, berrors.Line(err))

	_, err = run(t, "n% = -1\nDIM a%[n%]", object.Devices{})
	assert.EqualError(t, err, berrors.DimNegative)

	rt, err := run(t, "DIM m%[,] [2, 2]\nm%[2, 1] = 5\nv% = m%[2, 1]", object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 5}, variable(rt, "V%"))
}

func Test_Structures(t *testing.T) {
	rt, err := run(t, `p.name = "Ada"
p.age = 36
n = p.name
a = p["AGE"]
missing = p.height
q = {x: 1, y: 2}
q.x = 5`, object.Devices{})
	require.NoError(t, err)

	assert.Equal(t, &object.String{Value: "Ada"}, variable(rt, "N"))
	assert.Equal(t, &object.Integer{Value: 36}, variable(rt, "A"))
	assert.Equal(t, &object.Integer{Value: 0}, variable(rt, "MISSING"))
	assert.Equal(t, `{x: 5, y: 2}`, variable(rt, "Q").Inspect())
}

func Test_ArraysCopyOnAssign(t *testing.T) {
	rt, err := run(t, "a[] = [1, 2]\nb[] = a[]\nb[1] = 9", object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]", variable(rt, "A").Inspect())
	assert.Equal(t, "[9, 2]", variable(rt, "B").Inspect())
}

func Test_ExecuteStep(t *testing.T) {
	rt := build(t, "x% = 1\ny% = 2", object.Devices{})

	res, err := rt.ExecuteStep()
	require.NoError(t, err)
	assert.Equal(t, Continue, res)
	assert.Equal(t, 1, rt.Env().PC())

	res, err = rt.ExecuteStep()
	require.NoError(t, err)
	assert.Equal(t, Continue, res)

	res, err = rt.ExecuteStep()
	require.NoError(t, err)
	assert.Equal(t, End, res)
	assert.Equal(t, "End", res.String())

	res, _ = rt.ExecuteStep()
	assert.Equal(t, End, res)
}

func Test_EndStatement(t *testing.T) {
	rt, err := run(t, "x% = 1\nEND\nx% = 2", object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "X%"))
}

func Test_RuntimeErrorCarriesLine(t *testing.T) {
	rt, err := run(t, "x% = 1\n\ny% = x% / 0", object.Devices{})
	require.Error(t, err)

	var re *berrors.RuntimeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 3, re.Line)
	assert.True(t, rt.Ended())
}

func Test_StepLimitAndCancel(t *testing.T) {
	rt := New(mustParse(t, "LABEL top\nGOTO top"), object.Devices{}, WithStepLimit(50))
	err := rt.Run(context.Background())
	assert.EqualError(t, err, "step limit of 50 reached")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rt = New(mustParse(t, "LABEL top\nGOTO top"), object.Devices{})
	assert.ErrorIs(t, rt.Run(ctx), context.Canceled)
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	require.NoError(t, err)
	return prog
}

func Test_Reset(t *testing.T) {
	rt, err := run(t, "x% = 1\nFOR i = 1 TO 2\nNEXT", object.Devices{})
	require.NoError(t, err)
	require.NotEmpty(t, rt.Variables())

	rt.Reset()
	assert.Empty(t, rt.Variables())
	assert.Equal(t, 0, rt.Env().PC())
	assert.False(t, rt.Ended())

	require.NoError(t, rt.Run(context.Background()))
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "X%"))
}

func Test_SleepHint(t *testing.T) {
	rt := build(t, "SLEEP 250\nSLEEP -5", object.Devices{})

	_, err := rt.ExecuteStep()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, rt.SleepHint())
	assert.Equal(t, time.Duration(0), rt.SleepHint())

	_, err = rt.ExecuteStep()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), rt.SleepHint())
}

func Test_Randomize(t *testing.T) {
	a, err := run(t, "RANDOMIZE 7\nx# = RND\ny# = RND", object.Devices{})
	require.NoError(t, err)
	b, err := run(t, "RANDOMIZE 7\nx# = RND\ny# = RND", object.Devices{})
	require.NoError(t, err)

	assert.Equal(t, variable(a, "X#"), variable(b, "X#"))
	assert.NotEqual(t, variable(a, "X#"), variable(a, "Y#"))

	seeded := New(mustParse(t, "x# = RND"), object.Devices{}, WithSeed(7))
	require.NoError(t, seeded.Run(context.Background()))
	assert.Equal(t, variable(a, "X#"), variable(seeded, "X#"))
}

func Test_Trace(t *testing.T) {
	con := &mocks.MockConsole{}
	_, err := run(t, "TRON\nx = 1\nTROFF\ny = 2", object.Devices{Console: con})
	require.NoError(t, err)
	assert.Equal(t, []string{"[2] x = 1", "[3] TROFF"}, con.Lines)
}

func Test_SwapStatement(t *testing.T) {
	rt, err := run(t, "a% = 1\nb% = 2\nSWAP a%, b%", object.Devices{})
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 2}, variable(rt, "A%"))
	assert.Equal(t, &object.Integer{Value: 1}, variable(rt, "B%"))

	_, err = run(t, `a% = 1
s$ = "x"
SWAP a%, s$`, object.Devices{})
	assert.EqualError(t, err, "Type mismatch")
}
