package mocks

import (
	"fmt"
	"image"
)

// MockGraphics records every call as a line of text
type MockGraphics struct {
	Calls  []string
	Text   string      // everything printed, NewLine adds "\n"
	Buffer *image.RGBA // returned by GetBuffer, may be nil
}

// NewMockGraphics creates a mock with a w x h pixel buffer
func NewMockGraphics(w, h int) *MockGraphics {
	mg := &MockGraphics{}
	if w > 0 && h > 0 {
		mg.Buffer = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return mg
}

func (mg *MockGraphics) record(format string, args ...interface{}) {
	mg.Calls = append(mg.Calls, fmt.Sprintf(format, args...))
}

func (mg *MockGraphics) Clear() {
	mg.record("Clear")
}

func (mg *MockGraphics) SetForegroundColor(rgba uint32) {
	mg.record("Fg %08X", rgba)
}

func (mg *MockGraphics) SetBackgroundColor(rgba uint32) {
	mg.record("Bg %08X", rgba)
}

func (mg *MockGraphics) SetCursorPosition(row, col int) {
	mg.record("Cursor %d,%d", row, col)
}

func (mg *MockGraphics) DrawPixel(x, y int, rgba uint32) {
	mg.record("Pixel %d,%d %08X", x, y, rgba)
}

func (mg *MockGraphics) DrawLine(x1, y1, x2, y2 int, rgba uint32) {
	mg.record("Line %d,%d %d,%d %08X", x1, y1, x2, y2, rgba)
}

func (mg *MockGraphics) DrawRectangle(x1, y1, x2, y2 int, rgba uint32, filled bool) {
	mg.record("Rectangle %d,%d %d,%d %08X %t", x1, y1, x2, y2, rgba, filled)
}

func (mg *MockGraphics) DrawOval(cx, cy, rx, ry int, rgba uint32, filled bool) {
	mg.record("Oval %d,%d %d,%d %08X %t", cx, cy, rx, ry, rgba, filled)
}

func (mg *MockGraphics) DrawCircle(cx, cy, r int, rgba uint32, filled bool) {
	mg.record("Circle %d,%d %d %08X %t", cx, cy, r, rgba, filled)
}

func (mg *MockGraphics) DrawTriangle(x1, y1, x2, y2, x3, y3 int, rgba uint32, filled bool) {
	mg.record("Triangle %d,%d %d,%d %d,%d %08X %t", x1, y1, x2, y2, x3, y3, rgba, filled)
}

func (mg *MockGraphics) DrawArc(cx, cy, r int, start, end float64, rgba uint32) {
	mg.record("Arc %d,%d %d %g %g %08X", cx, cy, r, start, end, rgba)
}

func (mg *MockGraphics) PrintText(text string) {
	mg.Text += text
}

func (mg *MockGraphics) NewLine() {
	mg.Text += "\n"
}

func (mg *MockGraphics) GetBuffer() *image.RGBA {
	return mg.Buffer
}
