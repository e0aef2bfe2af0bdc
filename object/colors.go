package object

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/navionguy/edubasic/berrors"
)

// default screen colors, 0xRRGGBBAA
const (
	White uint32 = 0xFFFFFFFF
	Black uint32 = 0x000000FF
)

// ColorValue resolves a color operand, either a packed 0xRRGGBBAA integer
// or a CSS color name
func ColorValue(obj Object) (uint32, error) {
	switch v := obj.(type) {
	case *Integer:
		return uint32(v.Value), nil
	case *Real:
		return uint32(int64(v.Value)), nil
	case *String:
		return ColorByName(v.Value)
	}
	return 0, berrors.Std(berrors.TypeMismatch)
}

// ColorByName looks up a CSS color name, ignoring case
func ColorByName(name string) (uint32, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, berrors.Newf("%s: %s", berrors.TextForError(berrors.UnknownColor), name)
	}
	return Pack(c), nil
}

// Pack folds a color into 0xRRGGBBAA
func Pack(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Unpack splits 0xRRGGBBAA back out
func Unpack(rgba uint32) color.RGBA {
	return color.RGBA{R: uint8(rgba >> 24), G: uint8(rgba >> 16), B: uint8(rgba >> 8), A: uint8(rgba)}
}
