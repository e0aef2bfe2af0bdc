// Package object how the interpretor holds objects during execution
package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/navionguy/edubasic/ast"
)

// ObjectType can always be displayed as a string
type ObjectType string

// Object is any value a program can hold
type Object interface {
	Type() ObjectType
	Inspect() string
}

const (
	INTEGER_OBJ   = "INTEGER"
	REAL_OBJ      = "REAL"
	COMPLEX_OBJ   = "COMPLEX"
	STRING_OBJ    = "STRING"
	ARRAY_OBJ     = "ARRAY"
	STRUCTURE_OBJ = "STRUCTURE"
)

// Booleans follow the BASIC convention
var (
	TRUE  = &Integer{Value: -1}
	FALSE = &Integer{Value: 0}
)

// Bool converts a Go bool into -1 or 0
func Bool(b bool) *Integer {
	if b {
		return &Integer{Value: -1}
	}
	return &Integer{Value: 0}
}

// Integer values
type Integer struct {
	Value int64
}

// Type returns my type
func (i *Integer) Type() ObjectType { return INTEGER_OBJ }

// Inspect returns value as a string
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Real values, double precision
type Real struct {
	Value float64
}

func (r *Real) Type() ObjectType { return REAL_OBJ }
func (r *Real) Inspect() string  { return FormatReal(r.Value) }

// FormatReal prints a float the way PRINT shows it, shortest form that
// reads back the same
func FormatReal(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Complex values
type Complex struct {
	Value complex128
}

func (c *Complex) Type() ObjectType { return COMPLEX_OBJ }
func (c *Complex) Inspect() string {
	re, im := real(c.Value), imag(c.Value)
	if re == 0 && im != 0 {
		return FormatReal(im) + "i"
	}
	sign := "+"
	if im < 0 || (im == 0 && strings.HasPrefix(FormatReal(im), "-")) {
		sign = "-"
		im = -im
	}
	return FormatReal(re) + sign + FormatReal(im) + "i"
}

// String values
type String struct {
	Value string
}

// Type returns my type
func (s *String) Type() ObjectType { return STRING_OBJ }

// Inspect returns value as a string
func (s *String) Inspect() string { return s.Value }

// Structure is an ordered set of named members.  Lookups ignore case,
// the name keeps the case it was first stored with.
type Structure struct {
	keys   []string
	fields map[string]Object
}

// NewStructure returns an empty structure
func NewStructure() *Structure {
	return &Structure{fields: map[string]Object{}}
}

func (s *Structure) Type() ObjectType { return STRUCTURE_OBJ }
func (s *Structure) Inspect() string {
	var out bytes.Buffer

	out.WriteString("{")
	for i, k := range s.keys {
		if i > 0 {
			out.WriteString(", ")
		}
		v := s.fields[strings.ToUpper(k)]
		if str, ok := v.(*String); ok {
			out.WriteString(fmt.Sprintf("%s: %q", k, str.Value))
			continue
		}
		out.WriteString(k + ": " + v.Inspect())
	}
	out.WriteString("}")

	return out.String()
}

// Get a member, false if there is no such member
func (s *Structure) Get(name string) (Object, bool) {
	v, ok := s.fields[strings.ToUpper(name)]
	return v, ok
}

// Set a member, adding it to the end if it is new
func (s *Structure) Set(name string, val Object) {
	key := strings.ToUpper(name)
	if _, ok := s.fields[key]; !ok {
		s.keys = append(s.keys, name)
	}
	s.fields[key] = val
}

// Keys returns the member names in the order they were added
func (s *Structure) Keys() []string {
	return append([]string(nil), s.keys...)
}

// ZeroValue is what an unassigned variable of the type reads as
func ZeroValue(vt ast.VarType) Object {
	switch vt {
	case ast.RealVar:
		return &Real{Value: 0}
	case ast.StringVar:
		return &String{Value: ""}
	case ast.ComplexVar:
		return &Complex{Value: 0}
	}
	return &Integer{Value: 0}
}

// IsNumeric is true for Integer, Real and Complex
func IsNumeric(obj Object) bool {
	switch obj.(type) {
	case *Integer, *Real, *Complex:
		return true
	}
	return false
}

// ToFloat converts an Integer or Real to float64
func ToFloat(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case *Integer:
		return float64(v.Value), true
	case *Real:
		return v.Value, true
	}
	return 0, false
}

// ToInt converts an Integer or Real to int64, reals truncate toward zero
func ToInt(obj Object) (int64, bool) {
	switch v := obj.(type) {
	case *Integer:
		return v.Value, true
	case *Real:
		return int64(v.Value), true
	}
	return 0, false
}

// ToComplex converts any numeric value to complex128
func ToComplex(obj Object) (complex128, bool) {
	switch v := obj.(type) {
	case *Integer:
		return complex(float64(v.Value), 0), true
	case *Real:
		return complex(v.Value, 0), true
	case *Complex:
		return v.Value, true
	}
	return 0, false
}

// Equal compares two values the way = does, numbers by value across types
func Equal(a, b Object) bool {
	if IsNumeric(a) && IsNumeric(b) {
		ca, _ := ToComplex(a)
		cb, _ := ToComplex(b)
		return ca == cb
	}
	sa, ok := a.(*String)
	if !ok {
		return false
	}
	sb, ok := b.(*String)
	return ok && sa.Value == sb.Value
}
