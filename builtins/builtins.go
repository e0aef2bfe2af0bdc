// Package builtins implements the keyword functions, binary keyword
// operators and constants
package builtins

import (
	"math"
	"math/cmplx"

	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/object"
)

// Builtin is a keyword function.  Unary functions get one argument,
// constants none and keyword operators two or three.
type Builtin struct {
	Fn func(env *object.Environment, args ...object.Object) (object.Object, error)
}

// Builtins maps the upper case keyword to its implementation
var Builtins = map[string]*Builtin{
	// constants
	"PI":    {Fn: constant(func(*object.Environment) object.Object { return &object.Real{Value: math.Pi} })},
	"TRUE":  {Fn: constant(func(*object.Environment) object.Object { return object.Bool(true) })},
	"FALSE": {Fn: constant(func(*object.Environment) object.Object { return object.Bool(false) })},
	"RND": {Fn: constant(func(env *object.Environment) object.Object {
		return &object.Real{Value: env.Random()}
	})},
	"TIMER": {Fn: constant(func(env *object.Environment) object.Object {
		return &object.Real{Value: env.Timer()}
	})},

	// math
	"ABS":   {Fn: unary(absFn)},
	"SGN":   {Fn: unary(sgnFn)},
	"SIN":   {Fn: unary(trig(math.Sin, cmplx.Sin))},
	"COS":   {Fn: unary(trig(math.Cos, cmplx.Cos))},
	"TAN":   {Fn: unary(trig(math.Tan, cmplx.Tan))},
	"ASIN":  {Fn: unary(domain(math.Asin, cmplx.Asin, -1, 1))},
	"ACOS":  {Fn: unary(domain(math.Acos, cmplx.Acos, -1, 1))},
	"ATAN":  {Fn: unary(trig(math.Atan, cmplx.Atan))},
	"SINH":  {Fn: unary(trig(math.Sinh, cmplx.Sinh))},
	"COSH":  {Fn: unary(trig(math.Cosh, cmplx.Cosh))},
	"TANH":  {Fn: unary(trig(math.Tanh, cmplx.Tanh))},
	"EXP":   {Fn: unary(trig(math.Exp, cmplx.Exp))},
	"SQRT":  {Fn: unary(sqrtFn)},
	"SQR":   {Fn: unary(sqrtFn)},
	"LOG":   {Fn: unary(logFn(math.Log, cmplx.Log))},
	"LOG10": {Fn: unary(logFn(math.Log10, cmplx.Log10))},
	"LOG2": {Fn: unary(logFn(math.Log2, func(c complex128) complex128 {
		return cmplx.Log(c) / complex(math.Ln2, 0)
	}))},
	"INT":   {Fn: unary(rounder(math.Floor))},
	"FLOOR": {Fn: unary(rounder(math.Floor))},
	"CEIL":  {Fn: unary(rounder(math.Ceil))},
	"ROUND": {Fn: unary(rounder(math.Round))},
	"TRUNC": {Fn: unary(rounder(math.Trunc))},

	// complex
	"REAL": {Fn: unary(complexPart(func(c complex128) object.Object { return &object.Real{Value: real(c)} }))},
	"IMAG": {Fn: unary(complexPart(func(c complex128) object.Object { return &object.Real{Value: imag(c)} }))},
	"CONJ": {Fn: unary(complexPart(func(c complex128) object.Object { return &object.Complex{Value: cmplx.Conj(c)} }))},
	"CABS": {Fn: unary(complexPart(func(c complex128) object.Object { return &object.Real{Value: cmplx.Abs(c)} }))},
	"CARG": {Fn: unary(complexPart(func(c complex128) object.Object { return &object.Real{Value: cmplx.Phase(c)} }))},

	// strings
	"LEN":     {Fn: unary(lenFn)},
	"UCASE":   {Fn: unary(stringFn(upper))},
	"UCASE$":  {Fn: unary(stringFn(upper))},
	"LCASE":   {Fn: unary(stringFn(lower))},
	"LCASE$":  {Fn: unary(stringFn(lower))},
	"PROPER":  {Fn: unary(stringFn(proper))},
	"LTRIM":   {Fn: unary(stringFn(ltrim))},
	"RTRIM":   {Fn: unary(stringFn(rtrim))},
	"TRIM":    {Fn: unary(stringFn(trim))},
	"REVERSE": {Fn: unary(reverseFn)},
	"ASC":     {Fn: unary(ascFn)},
	"CHR":     {Fn: unary(chrFn)},
	"CHR$":    {Fn: unary(chrFn)},
	"STR":     {Fn: unary(strFn)},
	"STR$":    {Fn: unary(strFn)},
	"VAL":     {Fn: unary(valFn)},
	"HEX":     {Fn: unary(radixFn(16))},
	"HEX$":    {Fn: unary(radixFn(16))},
	"BIN":     {Fn: unary(radixFn(2))},
	"BIN$":    {Fn: unary(radixFn(2))},

	// binary string operators
	"LEFT":       {Fn: binary(leftFn)},
	"RIGHT":      {Fn: binary(rightFn)},
	"MID":        {Fn: midFn},
	"INSTR":      {Fn: binary(instrFn)},
	"REPLACE":    {Fn: replaceFn},
	"STARTSWITH": {Fn: binary(startsWithFn)},
	"ENDSWITH":   {Fn: binary(endsWithFn)},

	// array operators
	"FIND":     {Fn: binary(findFn)},
	"INDEXOF":  {Fn: binary(indexOfFn)},
	"INCLUDES": {Fn: binary(includesFn)},
	"JOIN":     {Fn: binary(joinFn)},
	"SPLIT":    {Fn: binary(splitFn)},

	// files
	"EOF": {Fn: eofFn},
}

// Call looks up and runs a keyword function
func Call(name string, env *object.Environment, args ...object.Object) (object.Object, error) {
	fn, ok := Builtins[name]
	if !ok {
		return nil, berrors.Newf("%s: unknown function", name)
	}
	return fn.Fn(env, args...)
}

func constant(fn func(*object.Environment) object.Object) func(*object.Environment, ...object.Object) (object.Object, error) {
	return func(env *object.Environment, args ...object.Object) (object.Object, error) {
		if len(args) != 0 {
			return nil, berrors.Std(berrors.Syntax)
		}
		return fn(env), nil
	}
}

func unary(fn func(object.Object) (object.Object, error)) func(*object.Environment, ...object.Object) (object.Object, error) {
	return func(env *object.Environment, args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, berrors.Std(berrors.Syntax)
		}
		return fn(args[0])
	}
}

func binary(fn func(l, r object.Object) (object.Object, error)) func(*object.Environment, ...object.Object) (object.Object, error) {
	return func(env *object.Environment, args ...object.Object) (object.Object, error) {
		if len(args) != 2 {
			return nil, berrors.Std(berrors.Syntax)
		}
		return fn(args[0], args[1])
	}
}

func typeMismatch() error {
	return berrors.Std(berrors.TypeMismatch)
}

func illegalCall() error {
	return berrors.Std(berrors.IllegalFuncCallErr)
}

func absFn(arg object.Object) (object.Object, error) {
	switch v := arg.(type) {
	case *object.Integer:
		if v.Value < 0 {
			return &object.Integer{Value: -v.Value}, nil
		}
		return v, nil
	case *object.Real:
		return &object.Real{Value: math.Abs(v.Value)}, nil
	case *object.Complex:
		return &object.Real{Value: cmplx.Abs(v.Value)}, nil
	}
	return nil, typeMismatch()
}

func sgnFn(arg object.Object) (object.Object, error) {
	f, ok := object.ToFloat(arg)
	if !ok {
		return nil, typeMismatch()
	}
	switch {
	case f > 0:
		return &object.Integer{Value: 1}, nil
	case f < 0:
		return &object.Integer{Value: -1}, nil
	}
	return &object.Integer{Value: 0}, nil
}

// trig applies a real function to reals and integers, the complex form to
// complex numbers
func trig(rf func(float64) float64, cf func(complex128) complex128) func(object.Object) (object.Object, error) {
	return func(arg object.Object) (object.Object, error) {
		if c, ok := arg.(*object.Complex); ok {
			return &object.Complex{Value: cf(c.Value)}, nil
		}
		f, ok := object.ToFloat(arg)
		if !ok {
			return nil, typeMismatch()
		}
		return &object.Real{Value: rf(f)}, nil
	}
}

// domain is trig for functions only defined on [lo, hi] for reals, outside
// of it the complex form answers
func domain(rf func(float64) float64, cf func(complex128) complex128, lo, hi float64) func(object.Object) (object.Object, error) {
	inner := trig(rf, cf)
	return func(arg object.Object) (object.Object, error) {
		if f, ok := object.ToFloat(arg); ok && (f < lo || f > hi) {
			return &object.Complex{Value: cf(complex(f, 0))}, nil
		}
		return inner(arg)
	}
}

func sqrtFn(arg object.Object) (object.Object, error) {
	return domain(math.Sqrt, cmplx.Sqrt, 0, math.Inf(1))(arg)
}

func logFn(rf func(float64) float64, cf func(complex128) complex128) func(object.Object) (object.Object, error) {
	return func(arg object.Object) (object.Object, error) {
		if f, ok := object.ToFloat(arg); ok && f <= 0 {
			return nil, illegalCall()
		}
		if c, ok := arg.(*object.Complex); ok && c.Value == 0 {
			return nil, illegalCall()
		}
		return trig(rf, cf)(arg)
	}
}

// rounder returns an Integer, reals outside the int64 range overflow
func rounder(fn func(float64) float64) func(object.Object) (object.Object, error) {
	return func(arg object.Object) (object.Object, error) {
		switch v := arg.(type) {
		case *object.Integer:
			return v, nil
		case *object.Real:
			r := fn(v.Value)
			if math.IsNaN(r) || r >= math.MaxInt64 || r < math.MinInt64 {
				return nil, berrors.Std(berrors.Overflow)
			}
			return &object.Integer{Value: int64(r)}, nil
		}
		return nil, typeMismatch()
	}
}

func complexPart(fn func(complex128) object.Object) func(object.Object) (object.Object, error) {
	return func(arg object.Object) (object.Object, error) {
		c, ok := object.ToComplex(arg)
		if !ok {
			return nil, typeMismatch()
		}
		return fn(c), nil
	}
}

// EOF h% is true once a READ handle has nothing left
func eofFn(env *object.Environment, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, berrors.Std(berrors.Syntax)
	}
	h, ok := object.ToInt(args[0])
	if !ok {
		return nil, typeMismatch()
	}
	fs := env.FileSystem()
	if fs == nil {
		return nil, berrors.Std(berrors.DeviceIOError)
	}
	eof, err := fs.EOF(int(h))
	if err != nil {
		return nil, err
	}
	return object.Bool(eof), nil
}

func syntaxError() error {
	return berrors.Std(berrors.Syntax)
}
