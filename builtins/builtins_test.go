package builtins

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/keywords"
	"github.com/navionguy/edubasic/object"
)

func i(v int64) object.Object      { return &object.Integer{Value: v} }
func r(v float64) object.Object    { return &object.Real{Value: v} }
func s(v string) object.Object     { return &object.String{Value: v} }
func c(v complex128) object.Object { return &object.Complex{Value: v} }

func list(items ...object.Object) *object.Array {
	return object.NewList(ast.Dynamic, items)
}

func TestEveryFunctionKeywordIsImplemented(t *testing.T) {
	lists := [][]string{
		keywords.MathFunctions, keywords.StringFunctions, keywords.ArrayOperators,
		keywords.ComplexFunctions, keywords.MiscFunctions, keywords.Constants,
	}
	for _, l := range lists {
		for _, kw := range l {
			if kw == "MOD" {
				continue
			}
			_, ok := Builtins[kw]
			assert.True(t, ok, kw)
		}
	}
}

func TestBuiltins(t *testing.T) {
	env := object.NewEnvironment(object.Devices{})

	tests := []struct {
		fn   string
		args []object.Object
		exp  object.Object
		err  string
	}{
		{fn: "PI", exp: r(math.Pi)},
		{fn: "TRUE", exp: i(-1)},
		{fn: "FALSE", exp: i(0)},
		{fn: "PI", args: []object.Object{i(1)}, err: "Syntax error"},
		{fn: "ABS", args: []object.Object{i(-3)}, exp: i(3)},
		{fn: "ABS", args: []object.Object{r(-2.5)}, exp: r(2.5)},
		{fn: "ABS", args: []object.Object{c(complex(3, 4))}, exp: r(5)},
		{fn: "ABS", args: []object.Object{s("x")}, err: "Type mismatch"},
		{fn: "ABS", err: "Syntax error"},
		{fn: "SGN", args: []object.Object{r(-0.5)}, exp: i(-1)},
		{fn: "SGN", args: []object.Object{i(0)}, exp: i(0)},
		{fn: "SGN", args: []object.Object{i(7)}, exp: i(1)},
		{fn: "SIN", args: []object.Object{i(0)}, exp: r(0)},
		{fn: "COS", args: []object.Object{i(0)}, exp: r(1)},
		{fn: "EXP", args: []object.Object{i(0)}, exp: r(1)},
		{fn: "SQR", args: []object.Object{i(16)}, exp: r(4)},
		{fn: "SQRT", args: []object.Object{i(-4)}, exp: c(complex(0, 2))},
		{fn: "ASIN", args: []object.Object{i(0)}, exp: r(0)},
		{fn: "LOG", args: []object.Object{i(1)}, exp: r(0)},
		{fn: "LOG10", args: []object.Object{i(1000)}, exp: r(3)},
		{fn: "LOG2", args: []object.Object{i(8)}, exp: r(3)},
		{fn: "LOG", args: []object.Object{i(0)}, err: "Illegal function call"},
		{fn: "INT", args: []object.Object{r(-2.5)}, exp: i(-3)},
		{fn: "FLOOR", args: []object.Object{r(2.5)}, exp: i(2)},
		{fn: "CEIL", args: []object.Object{r(2.1)}, exp: i(3)},
		{fn: "ROUND", args: []object.Object{r(2.5)}, exp: i(3)},
		{fn: "TRUNC", args: []object.Object{r(-2.7)}, exp: i(-2)},
		{fn: "INT", args: []object.Object{i(4)}, exp: i(4)},
		{fn: "INT", args: []object.Object{r(1e300)}, err: "Overflow"},
		{fn: "REAL", args: []object.Object{c(complex(3, 4))}, exp: r(3)},
		{fn: "IMAG", args: []object.Object{c(complex(3, 4))}, exp: r(4)},
		{fn: "CONJ", args: []object.Object{c(complex(3, 4))}, exp: c(complex(3, -4))},
		{fn: "CABS", args: []object.Object{c(complex(3, 4))}, exp: r(5)},
		{fn: "CARG", args: []object.Object{i(1)}, exp: r(0)},
		{fn: "REAL", args: []object.Object{s("a")}, err: "Type mismatch"},
		{fn: "LEN", args: []object.Object{s("héllo")}, exp: i(5)},
		{fn: "LEN", args: []object.Object{list(i(1), i(2))}, exp: i(2)},
		{fn: "UCASE", args: []object.Object{s("straße")}, exp: s("STRASSE")},
		{fn: "LCASE$", args: []object.Object{s("ABC")}, exp: s("abc")},
		{fn: "PROPER", args: []object.Object{s("hello world")}, exp: s("Hello World")},
		{fn: "LTRIM", args: []object.Object{s("  a ")}, exp: s("a ")},
		{fn: "RTRIM", args: []object.Object{s("  a ")}, exp: s("  a")},
		{fn: "TRIM", args: []object.Object{s("  a ")}, exp: s("a")},
		{fn: "REVERSE", args: []object.Object{s("abc")}, exp: s("cba")},
		{fn: "ASC", args: []object.Object{s("A")}, exp: i(65)},
		{fn: "ASC", args: []object.Object{s("")}, err: "Illegal function call"},
		{fn: "CHR$", args: []object.Object{i(66)}, exp: s("B")},
		{fn: "CHR", args: []object.Object{i(-1)}, err: "Illegal function call"},
		{fn: "STR$", args: []object.Object{r(1.5)}, exp: s("1.5")},
		{fn: "STR", args: []object.Object{s("1")}, err: "Type mismatch"},
		{fn: "VAL", args: []object.Object{s(" 42 ")}, exp: i(42)},
		{fn: "VAL", args: []object.Object{s("2.5")}, exp: r(2.5)},
		{fn: "VAL", args: []object.Object{s("3+4i")}, exp: c(complex(3, 4))},
		{fn: "VAL", args: []object.Object{s("abc")}, exp: i(0)},
		{fn: "HEX$", args: []object.Object{i(255)}, exp: s("FF")},
		{fn: "BIN", args: []object.Object{i(5)}, exp: s("101")},
		{fn: "LEFT", args: []object.Object{s("abc"), i(2)}, exp: s("ab")},
		{fn: "LEFT", args: []object.Object{s("abc"), i(9)}, exp: s("abc")},
		{fn: "LEFT", args: []object.Object{s("abc"), i(-1)}, err: "Illegal function call"},
		{fn: "RIGHT", args: []object.Object{s("Hello"), i(3)}, exp: s("llo")},
		{fn: "MID", args: []object.Object{s("Hello"), i(2), i(4)}, exp: s("ell")},
		{fn: "MID", args: []object.Object{s("Hello"), i(2)}, exp: s("ello")},
		{fn: "MID", args: []object.Object{s("Hello"), i(4), i(2)}, exp: s("")},
		{fn: "MID", args: []object.Object{s("Hello"), i(4), i(99)}, exp: s("lo")},
		{fn: "INSTR", args: []object.Object{s("Hello"), s("l")}, exp: i(3)},
		{fn: "INSTR", args: []object.Object{s("Hello"), s("z")}, exp: i(0)},
		{fn: "REPLACE", args: []object.Object{s("a.a"), s("."), s("!")}, exp: s("a!a")},
		{fn: "REPLACE", args: []object.Object{s("a.a"), s("."), i(1)}, err: "Type mismatch"},
		{fn: "STARTSWITH", args: []object.Object{s("Hello"), s("He")}, exp: i(-1)},
		{fn: "ENDSWITH", args: []object.Object{s("Hello"), s("He")}, exp: i(0)},
		{fn: "FIND", args: []object.Object{list(s("apple"), s("banana")), s("nan")}, exp: s("banana")},
		{fn: "FIND", args: []object.Object{list(i(1), i(2)), r(2)}, exp: i(2)},
		{fn: "FIND", args: []object.Object{list(i(1)), i(5)}, exp: i(0)},
		{fn: "INDEXOF", args: []object.Object{list(i(4), i(5)), i(5)}, exp: i(2)},
		{fn: "INDEXOF", args: []object.Object{list(i(4), i(5)), i(6)}, exp: i(0)},
		{fn: "INCLUDES", args: []object.Object{list(i(4), i(5)), i(4)}, exp: i(-1)},
		{fn: "INCLUDES", args: []object.Object{s("team"), s("i")}, exp: i(0)},
		{fn: "JOIN", args: []object.Object{list(i(1), s("b")), s("-")}, exp: s("1-b")},
		{fn: "FIND", args: []object.Object{s("abc"), s("b")}, err: "Type mismatch"},
	}

	for _, tt := range tests {
		res, err := Call(tt.fn, env, tt.args...)
		if len(tt.err) > 0 {
			require.Error(t, err, tt.fn)
			assert.Equal(t, tt.err, err.Error(), tt.fn)
			continue
		}
		require.NoError(t, err, tt.fn)
		if f, ok := tt.exp.(*object.Real); ok {
			got, isReal := res.(*object.Real)
			require.True(t, isReal, "%s gave %T", tt.fn, res)
			assert.InDelta(t, f.Value, got.Value, 1e-9, tt.fn)
			continue
		}
		if cv, ok := tt.exp.(*object.Complex); ok {
			got, isCmplx := res.(*object.Complex)
			require.True(t, isCmplx, "%s gave %T", tt.fn, res)
			assert.InDelta(t, real(cv.Value), real(got.Value), 1e-9, tt.fn)
			assert.InDelta(t, imag(cv.Value), imag(got.Value), 1e-9, tt.fn)
			continue
		}
		assert.Equal(t, tt.exp, res, tt.fn)
	}
}

func TestSplit(t *testing.T) {
	res, err := Call("SPLIT", nil, s("a,b,c"), s(","))
	require.NoError(t, err)

	arr := res.(*object.Array)
	assert.Equal(t, ast.StringVar, arr.ElemType)
	assert.Equal(t, `["a", "b", "c"]`, arr.Inspect())

	res, err = Call("SPLIT", nil, s(""), s(","))
	require.NoError(t, err)
	assert.Equal(t, 0, res.(*object.Array).Len())
}

func TestRandomAndTimer(t *testing.T) {
	env := object.NewEnvironment(object.Devices{})
	env.Randomize(7)

	v, err := Call("RND", env)
	require.NoError(t, err)
	f := v.(*object.Real).Value
	assert.True(t, f >= 0 && f < 1)

	v, err = Call("TIMER", env)
	require.NoError(t, err)
	assert.True(t, v.(*object.Real).Value >= 0)
}

func TestUnknownFunction(t *testing.T) {
	_, err := Call("FROB", nil)
	assert.EqualError(t, err, "FROB: unknown function")
}

func TestEOFWithoutFileSystem(t *testing.T) {
	env := object.NewEnvironment(object.Devices{})
	_, err := Call("EOF", env, i(1))
	assert.EqualError(t, err, "Device I/O error")
}
