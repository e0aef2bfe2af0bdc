package object

import (
	"math"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
)

// Coerce converts val so it can be stored in a destination of type vt.
// Arrays coerce every element to vt.
func Coerce(val Object, vt ast.VarType) (Object, error) {
	if arr, ok := val.(*Array); ok {
		return coerceArray(arr, vt)
	}

	switch vt {
	case ast.Dynamic:
		return val, nil

	case ast.IntegerVar:
		switch v := val.(type) {
		case *Integer:
			return v, nil
		case *Real:
			if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
				return nil, berrors.Std(berrors.Overflow)
			}
			return &Integer{Value: int64(math.Trunc(v.Value))}, nil
		case *Complex:
			return nil, berrors.New(berrors.ComplexToInteger)
		}

	case ast.RealVar:
		switch v := val.(type) {
		case *Integer:
			return &Real{Value: float64(v.Value)}, nil
		case *Real:
			return v, nil
		case *Complex:
			return nil, berrors.New(berrors.ComplexToReal)
		}

	case ast.ComplexVar:
		if c, ok := ToComplex(val); ok {
			return &Complex{Value: c}, nil
		}

	case ast.StringVar:
		if s, ok := val.(*String); ok {
			return s, nil
		}
	}

	return nil, berrors.Std(berrors.TypeMismatch)
}

func coerceArray(arr *Array, vt ast.VarType) (Object, error) {
	if vt == ast.Dynamic {
		return arr, nil
	}

	out := arr.Copy()
	out.ElemType = vt
	for i, el := range out.Elements {
		c, err := Coerce(el, vt)
		if err != nil {
			return nil, err
		}
		out.Elements[i] = c
	}
	return out, nil
}
