package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
)

func TestNewArrayStrides(t *testing.T) {
	arr, err := NewArray(ast.IntegerVar, []Dimension{{Lower: 1, Length: 3}, {Lower: 1, Length: 4}})
	require.NoError(t, err)

	assert.Equal(t, []Dimension{{Lower: 1, Length: 3, Stride: 4}, {Lower: 1, Length: 4, Stride: 1}}, arr.Dims)
	assert.Equal(t, 12, arr.Len())
	assert.Equal(t, &Integer{}, arr.Elements[11])

	arr3, err := NewArray(ast.RealVar, []Dimension{{Lower: 0, Length: 2}, {Lower: 0, Length: 3}, {Lower: 0, Length: 5}})
	require.NoError(t, err)
	assert.Equal(t, 15, arr3.Dims[0].Stride)
	assert.Equal(t, 5, arr3.Dims[1].Stride)
	assert.Equal(t, 1, arr3.Dims[2].Stride)
	assert.Equal(t, &Real{}, arr3.Elements[0])
}

func TestNewArrayNegative(t *testing.T) {
	_, err := NewArray(ast.IntegerVar, []Dimension{{Lower: 1, Length: -1}})
	require.Error(t, err)
	assert.Equal(t, "DIM: Array dimension cannot be negative", err.Error())
}

func TestArrayOffset(t *testing.T) {
	arr, _ := NewArray(ast.IntegerVar, []Dimension{{Lower: 1, Length: 2}, {Lower: 1, Length: 2}})

	tests := []struct {
		idx []int
		off int
		err bool
	}{
		{idx: []int{1, 1}, off: 0},
		{idx: []int{1, 2}, off: 1},
		{idx: []int{2, 1}, off: 2},
		{idx: []int{2, 2}, off: 3},
		{idx: []int{3, 1}, err: true},
		{idx: []int{0, 1}, err: true},
		{idx: []int{1}, err: true},
	}

	for _, tt := range tests {
		off, err := arr.Offset(tt.idx)
		if tt.err {
			require.Error(t, err, "%v", tt.idx)
			assert.Equal(t, berrors.TextForError(berrors.SubscriptRange), err.Error())
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.off, off, "%v", tt.idx)
	}
}

func TestArrayGetSet(t *testing.T) {
	arr, _ := NewArray(ast.StringVar, []Dimension{{Lower: 0, Length: 3}})

	require.NoError(t, arr.Set([]int{2}, &String{Value: "z"}))
	v, err := arr.Get([]int{2})
	require.NoError(t, err)
	assert.Equal(t, "z", v.Inspect())

	assert.Error(t, arr.Set([]int{3}, &String{}))
	_, err = arr.Get([]int{-1})
	assert.Error(t, err)
}

func TestArrayPushPop(t *testing.T) {
	arr := NewList(ast.IntegerVar, nil)
	assert.Equal(t, []Dimension{{Lower: 1, Length: 0, Stride: 1}}, arr.Dims)

	_, ok := arr.Pop()
	assert.False(t, ok)
	_, ok = arr.Shift()
	assert.False(t, ok)

	arr.Push(&Integer{Value: 2})
	arr.Push(&Integer{Value: 3})
	arr.Unshift(&Integer{Value: 1})
	assert.Equal(t, "[1, 2, 3]", arr.Inspect())
	assert.Equal(t, 3, arr.Dims[0].Length)

	v, ok := arr.Pop()
	assert.True(t, ok)
	assert.Equal(t, "3", v.Inspect())

	v, ok = arr.Shift()
	assert.True(t, ok)
	assert.Equal(t, "1", v.Inspect())
	assert.Equal(t, "[2]", arr.Inspect())

	cp := arr.Copy()
	cp.Elements[0] = &Integer{Value: 9}
	assert.Equal(t, "[2]", arr.Inspect())
}
