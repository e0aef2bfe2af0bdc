// Package terminal is a device set for hosts without a real screen.  Text
// goes to an io.Writer, drawing lands on an in memory canvas and audio and
// console messages are written out as text lines.
package terminal

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/navionguy/edubasic/object"
)

// Terminal holds the output streams and the canvas
type Terminal struct {
	mutex   sync.Mutex
	out     io.Writer
	console io.Writer
	canvas  *image.RGBA

	// ANSI turns on cursor and color escape sequences in the text stream
	ANSI bool

	fg, bg   uint32
	row, col int
}

// New creates a Terminal writing text to out and console lines to console,
// either writer may be nil
func New(out, console io.Writer, width, height int) *Terminal {
	t := &Terminal{
		out:     out,
		console: console,
		fg:      object.White,
		bg:      object.Black,
		row:     1,
		col:     1,
	}
	if width > 0 && height > 0 {
		t.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
		t.fill(t.bg)
	}
	return t
}

// Devices bundles the terminal as every device except the file system
func (t *Terminal) Devices(fs object.FileSystem) object.Devices {
	return object.Devices{Graphics: t, Audio: t, FileSystem: fs, Console: t}
}

func (t *Terminal) write(s string) {
	if t.out != nil {
		io.WriteString(t.out, s)
	}
}

func (t *Terminal) log(format string, args ...interface{}) {
	if t.console != nil {
		fmt.Fprintf(t.console, format+"\n", args...)
	}
}

// Clear wipes the canvas to the background color and homes the cursor
func (t *Terminal) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.fill(t.bg)
	t.row, t.col = 1, 1
	if t.ANSI {
		t.write("\x1b[2J\x1b[H")
	}
}

func (t *Terminal) SetForegroundColor(rgba uint32) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.fg = rgba
	if t.ANSI {
		c := object.Unpack(rgba)
		t.write(fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B))
	}
}

func (t *Terminal) SetBackgroundColor(rgba uint32) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.bg = rgba
	if t.ANSI {
		c := object.Unpack(rgba)
		t.write(fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B))
	}
}

// SetCursorPosition moves the cursor, the upper left position is 1,1
func (t *Terminal) SetCursorPosition(row, col int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.row, t.col = row, col
	if t.ANSI {
		t.write(fmt.Sprintf("\x1b[%d;%dH", row, col))
	}
}

// Cursor reports where the next character goes
func (t *Terminal) Cursor() (int, int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.row, t.col
}

func (t *Terminal) PrintText(text string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.write(text)
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		t.row += strings.Count(text, "\n")
		t.col = len(text) - i
		return
	}
	t.col += len(text)
}

func (t *Terminal) NewLine() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.write("\n")
	t.row++
	t.col = 1
}

// GetBuffer hands out the canvas, row 0 is the top
func (t *Terminal) GetBuffer() *image.RGBA {
	return t.canvas
}

// WritePNG encodes the canvas
func (t *Terminal) WritePNG(w io.Writer) error {
	if t.canvas == nil {
		return fmt.Errorf("terminal has no canvas")
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return png.Encode(w, t.canvas)
}

// PrintOutput is the developer console
func (t *Terminal) PrintOutput(msg string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.log("%s", msg)
}
