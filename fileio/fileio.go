// Package fileio holds the types shared by the file system backends and the
// file statements
package fileio

import "strings"

// AccessMode for an open file
type AccessMode int

const (
	Read      AccessMode = iota // read lines from the start
	Write                       // truncate then write
	Append                      // position to end of file for writing
	ReadWrite                   // read and write, position at the start
)

func (am AccessMode) String() string {
	return []string{"READ", "WRITE", "APPEND", "READWRITE"}[am]
}

// CanRead reports if READFILE is allowed
func (am AccessMode) CanRead() bool { return am == Read || am == ReadWrite }

// CanWrite reports if WRITEFILE is allowed
func (am AccessMode) CanWrite() bool { return am != Read }

// ParseAccessMode maps the OPEN keyword to a mode
func ParseAccessMode(s string) (AccessMode, bool) {
	switch strings.ToUpper(s) {
	case "READ":
		return Read, true
	case "WRITE":
		return Write, true
	case "APPEND":
		return Append, true
	case "READWRITE":
		return ReadWrite, true
	}
	return Read, false
}

// OpenFile is the state kept for a file handle.  Content is held in memory
// and flushed back to the backing store on close.
type OpenFile struct {
	Path    string
	Mode    AccessMode
	Content []byte
	Pos     int
	Dirty   bool
}

// ReadLine returns the next line without its terminator, ok is false at
// end of file
func (f *OpenFile) ReadLine() (string, bool) {
	if f.Pos >= len(f.Content) {
		return "", false
	}
	rest := f.Content[f.Pos:]
	n := strings.IndexByte(string(rest), '\n')
	if n < 0 {
		f.Pos = len(f.Content)
		return strings.TrimSuffix(string(rest), "\r"), true
	}
	f.Pos += n + 1
	return strings.TrimSuffix(string(rest[:n]), "\r"), true
}

// Write puts data at the current position, growing the file as needed
func (f *OpenFile) Write(data string) {
	if f.Mode == Append {
		f.Pos = len(f.Content)
	}
	end := f.Pos + len(data)
	if end > len(f.Content) {
		grown := make([]byte, end)
		copy(grown, f.Content)
		f.Content = grown
	}
	copy(f.Content[f.Pos:], data)
	f.Pos = end
	f.Dirty = true
}

// Seek moves to an absolute byte position, clamped to the file
func (f *OpenFile) Seek(pos int64) {
	switch {
	case pos < 0:
		f.Pos = 0
	case pos > int64(len(f.Content)):
		f.Pos = len(f.Content)
	default:
		f.Pos = int(pos)
	}
}

// EOF is true when nothing is left to read
func (f *OpenFile) EOF() bool { return f.Pos >= len(f.Content) }
