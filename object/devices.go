package object

import (
	"image"

	"github.com/navionguy/edubasic/fileio"
)

// Graphics draws to the screen.  Coordinates are BASIC coordinates, y=0 is
// the bottom row.  Colors are packed 0xRRGGBBAA.
type Graphics interface {
	// Clear wipes the screen to the background color
	Clear()
	SetForegroundColor(rgba uint32)
	SetBackgroundColor(rgba uint32)
	// SetCursorPosition moves the text cursor, 1 based
	SetCursorPosition(row, col int)

	DrawPixel(x, y int, rgba uint32)
	DrawLine(x1, y1, x2, y2 int, rgba uint32)
	DrawRectangle(x1, y1, x2, y2 int, rgba uint32, filled bool)
	DrawOval(cx, cy, rx, ry int, rgba uint32, filled bool)
	DrawCircle(cx, cy, r int, rgba uint32, filled bool)
	DrawTriangle(x1, y1, x2, y2, x3, y3 int, rgba uint32, filled bool)
	// DrawArc angles are in degrees, counter clockwise from the positive x axis
	DrawArc(cx, cy, r int, start, end float64, rgba uint32)

	// PrintText writes at the cursor without a line break
	PrintText(text string)
	NewLine()

	// GetBuffer exposes the pixels for GET, PUT and PAINT, nil when the
	// device has no pixel buffer.  Row 0 of the buffer is the top row.
	GetBuffer() *image.RGBA
}

// Audio plays music macro language sequences on numbered voices
type Audio interface {
	SetTempo(bpm float64)
	SetVolume(level float64)
	SetMuted(muted bool)
	SetVoice(index int)
	SetVoiceInstrument(index, program int)
	SetVoiceInstrumentByName(index int, name string) error
	PlaySequence(index int, mml string)
}

// FileSystem is where the file statements read and write
type FileSystem interface {
	Open(path string, mode fileio.AccessMode) (int, error)
	Close(handle int) error
	// ReadLine returns the next line, io.EOF when there are no more
	ReadLine(handle int) (string, error)
	Write(handle int, data string) error
	Seek(handle int, pos int64) error
	EOF(handle int) (bool, error)

	// List names the entries of a directory, directories end with "/"
	List(path string) ([]string, error)
	Mkdir(path string) error
	Rmdir(path string) error
	Copy(src, dst string) error
	Move(src, dst string) error
	Delete(path string) error
}

// Console is the developer console beside the screen
type Console interface {
	PrintOutput(msg string)
}

// Devices groups the collaborators a program runs against, any may be nil
type Devices struct {
	Graphics   Graphics
	Audio      Audio
	FileSystem FileSystem
	Console    Console
}
