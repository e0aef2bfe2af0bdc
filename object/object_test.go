package object

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navionguy/edubasic/ast"
)

func TestInspect(t *testing.T) {
	st := NewStructure()
	st.Set("name", &String{Value: "Ada"})
	st.Set("Age", &Integer{Value: 36})

	tests := []struct {
		obj Object
		exp string
		tp  ObjectType
	}{
		{obj: &Integer{Value: 5}, exp: "5", tp: "INTEGER"},
		{obj: &Integer{Value: -6}, exp: "-6", tp: "INTEGER"},
		{obj: &Real{Value: 2.5}, exp: "2.5", tp: "REAL"},
		{obj: &Real{Value: 256}, exp: "256", tp: "REAL"},
		{obj: &Complex{Value: complex(3, 4)}, exp: "3+4i", tp: "COMPLEX"},
		{obj: &Complex{Value: complex(10.5, -2.5)}, exp: "10.5-2.5i", tp: "COMPLEX"},
		{obj: &Complex{Value: complex(0, 2)}, exp: "2i", tp: "COMPLEX"},
		{obj: &Complex{Value: complex(5, 0)}, exp: "5+0i", tp: "COMPLEX"},
		{obj: &String{Value: "Hello"}, exp: "Hello", tp: "STRING"},
		{obj: NewList(ast.Dynamic, []Object{&Integer{Value: 1}, &String{Value: "a"}}), exp: `[1, "a"]`, tp: "ARRAY"},
		{obj: st, exp: `{name: "Ada", Age: 36}`, tp: "STRUCTURE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, tt.obj.Inspect())
		assert.Equal(t, tt.tp, tt.obj.Type())
	}
}

func TestStructure(t *testing.T) {
	st := NewStructure()
	st.Set("Name", &String{Value: "a"})
	st.Set("NAME", &String{Value: "b"})
	st.Set("x", &Integer{Value: 1})

	v, ok := st.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "b", v.Inspect())
	assert.Equal(t, []string{"Name", "x"}, st.Keys())

	_, ok = st.Get("missing")
	assert.False(t, ok)
}

func TestZeroValue(t *testing.T) {
	tests := []struct {
		vt  ast.VarType
		exp Object
	}{
		{vt: ast.Dynamic, exp: &Integer{}},
		{vt: ast.IntegerVar, exp: &Integer{}},
		{vt: ast.RealVar, exp: &Real{}},
		{vt: ast.StringVar, exp: &String{}},
		{vt: ast.ComplexVar, exp: &Complex{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, ZeroValue(tt.vt), tt.vt.String())
	}
}

func TestConversions(t *testing.T) {
	f, ok := ToFloat(&Integer{Value: 3})
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	i, ok := ToInt(&Real{Value: -2.7})
	assert.True(t, ok)
	assert.Equal(t, int64(-2), i)

	c, ok := ToComplex(&Real{Value: 1.5})
	assert.True(t, ok)
	assert.Equal(t, complex(1.5, 0), c)

	_, ok = ToFloat(&String{Value: "1"})
	assert.False(t, ok)
	_, ok = ToFloat(&Complex{})
	assert.False(t, ok)

	assert.True(t, IsNumeric(&Complex{}))
	assert.False(t, IsNumeric(&String{}))

	assert.Equal(t, int64(-1), Bool(true).Value)
	assert.Equal(t, int64(0), Bool(false).Value)
}
