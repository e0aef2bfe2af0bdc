package builtins

import (
	"strings"

	"github.com/navionguy/edubasic/object"
)

// arr FIND x returns the first element equal to x.  For string arrays the
// first element containing x matches.  Nothing found gives the zero value.
func findFn(l, r object.Object) (object.Object, error) {
	arr, ok := l.(*object.Array)
	if !ok {
		return nil, typeMismatch()
	}

	sub, isStr := r.(*object.String)
	for _, el := range arr.Elements {
		if object.Equal(el, r) {
			return el, nil
		}
		if s, ok := el.(*object.String); ok && isStr && strings.Contains(s.Value, sub.Value) {
			return el, nil
		}
	}
	return object.ZeroValue(arr.ElemType), nil
}

// arr INDEXOF x is the index of the first equal element, counted from the
// array's lower bound, one less than the lower bound when missing
func indexOfFn(l, r object.Object) (object.Object, error) {
	arr, ok := l.(*object.Array)
	if !ok {
		return nil, typeMismatch()
	}
	lower := 1
	if len(arr.Dims) == 1 {
		lower = arr.Dims[0].Lower
	}
	for i, el := range arr.Elements {
		if object.Equal(el, r) {
			return &object.Integer{Value: int64(lower + i)}, nil
		}
	}
	return &object.Integer{Value: int64(lower - 1)}, nil
}

// arr INCLUDES x, strings also accept a substring test
func includesFn(l, r object.Object) (object.Object, error) {
	switch v := l.(type) {
	case *object.Array:
		for _, el := range v.Elements {
			if object.Equal(el, r) {
				return object.TRUE, nil
			}
		}
		return object.FALSE, nil
	case *object.String:
		sub, ok := r.(*object.String)
		if !ok {
			return nil, typeMismatch()
		}
		return object.Bool(strings.Contains(v.Value, sub.Value)), nil
	}
	return nil, typeMismatch()
}

// arr JOIN ", " glues the elements into a string
func joinFn(l, r object.Object) (object.Object, error) {
	arr, ok := l.(*object.Array)
	if !ok {
		return nil, typeMismatch()
	}
	sep, ok := r.(*object.String)
	if !ok {
		return nil, typeMismatch()
	}
	parts := make([]string, len(arr.Elements))
	for i, el := range arr.Elements {
		parts[i] = el.Inspect()
	}
	return &object.String{Value: strings.Join(parts, sep.Value)}, nil
}
