package object

import (
	"bytes"
	"fmt"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
)

// Dimension describes one axis of an array
type Dimension struct {
	Lower  int // index of the first element
	Length int // number of elements along the axis
	Stride int // elements skipped to move one step along the axis
}

// Array is a row-major, flat backed, n-dimensional array
type Array struct {
	ElemType ast.VarType
	Dims     []Dimension
	Elements []Object
}

// NewArray allocates an array with every element set to the zero value of
// elemType.  Only Lower and Length of dims are used, strides are computed.
func NewArray(elemType ast.VarType, dims []Dimension) (*Array, error) {
	arr := &Array{ElemType: elemType, Dims: make([]Dimension, len(dims))}

	size := 1
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i].Length < 0 {
			return nil, berrors.New(berrors.DimNegative)
		}
		arr.Dims[i] = Dimension{Lower: dims[i].Lower, Length: dims[i].Length, Stride: size}
		size *= dims[i].Length
	}

	arr.Elements = make([]Object, size)
	for i := range arr.Elements {
		arr.Elements[i] = ZeroValue(elemType)
	}

	return arr, nil
}

// NewList builds a one dimensional array, lower bound 1, over items
func NewList(elemType ast.VarType, items []Object) *Array {
	arr := &Array{ElemType: elemType, Elements: items}
	arr.reshape()
	return arr
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	var out bytes.Buffer

	out.WriteString("[")
	for i, el := range a.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		if s, ok := el.(*String); ok {
			out.WriteString(fmt.Sprintf("%q", s.Value))
			continue
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")

	return out.String()
}

// Len is the total number of elements
func (a *Array) Len() int { return len(a.Elements) }

// Offset maps indices to a position in Elements
func (a *Array) Offset(indices []int) (int, error) {
	if len(indices) != len(a.Dims) {
		return 0, berrors.Std(berrors.SubscriptRange)
	}

	off := 0
	for i, idx := range indices {
		d := a.Dims[i]
		pos := idx - d.Lower
		if pos < 0 || pos >= d.Length {
			return 0, berrors.Std(berrors.SubscriptRange)
		}
		off += pos * d.Stride
	}
	return off, nil
}

// Get the element at indices
func (a *Array) Get(indices []int) (Object, error) {
	off, err := a.Offset(indices)
	if err != nil {
		return nil, err
	}
	return a.Elements[off], nil
}

// Set the element at indices, the value must already be coerced
func (a *Array) Set(indices []int, val Object) error {
	off, err := a.Offset(indices)
	if err != nil {
		return err
	}
	a.Elements[off] = val
	return nil
}

// Push appends to the end, a multi-dimensional array is flattened first
func (a *Array) Push(val Object) {
	a.Elements = append(a.Elements, val)
	a.reshape()
}

// Unshift inserts at the front
func (a *Array) Unshift(val Object) {
	a.Elements = append([]Object{val}, a.Elements...)
	a.reshape()
}

// Pop removes the last element, false when empty
func (a *Array) Pop() (Object, bool) {
	if len(a.Elements) == 0 {
		return nil, false
	}
	last := a.Elements[len(a.Elements)-1]
	a.Elements = a.Elements[:len(a.Elements)-1]
	a.reshape()
	return last, true
}

// Shift removes the first element, false when empty
func (a *Array) Shift() (Object, bool) {
	if len(a.Elements) == 0 {
		return nil, false
	}
	first := a.Elements[0]
	a.Elements = a.Elements[1:]
	a.reshape()
	return first, true
}

// Copy returns an array with its own backing storage
func (a *Array) Copy() *Array {
	cp := &Array{ElemType: a.ElemType}
	cp.Dims = append([]Dimension(nil), a.Dims...)
	cp.Elements = append([]Object(nil), a.Elements...)
	return cp
}

// a one dimensional view keeps the original lower bound
func (a *Array) reshape() {
	lower := 1
	if len(a.Dims) > 0 {
		lower = a.Dims[0].Lower
	}
	a.Dims = []Dimension{{Lower: lower, Length: len(a.Elements), Stride: 1}}
}
