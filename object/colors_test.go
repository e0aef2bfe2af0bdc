package object

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorValue(t *testing.T) {
	tests := []struct {
		val Object
		exp uint32
		err string
	}{
		{val: &Integer{Value: 0xFF0000FF}, exp: 0xFF0000FF},
		{val: &Real{Value: 255}, exp: 0x000000FF},
		{val: &String{Value: "red"}, exp: 0xFF0000FF},
		{val: &String{Value: "RED"}, exp: 0xFF0000FF},
		{val: &String{Value: "gray"}, exp: 0x808080FF},
		{val: &String{Value: "Grey"}, exp: 0x808080FF},
		{val: &String{Value: "aqua"}, exp: 0x00FFFFFF},
		{val: &String{Value: "cyan"}, exp: 0x00FFFFFF},
		{val: &String{Value: "blurple"}, err: "Unknown color name: blurple"},
		{val: &Complex{}, err: "Type mismatch"},
	}

	for _, tt := range tests {
		c, err := ColorValue(tt.val)
		if len(tt.err) > 0 {
			require.Error(t, err)
			assert.Equal(t, tt.err, err.Error())
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.exp, c, tt.val.Inspect())
	}
}

func TestPackUnpack(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, uint32(0x01020304), Pack(c))
	assert.Equal(t, c, Unpack(0x01020304))
}
