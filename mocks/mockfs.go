package mocks

import (
	"errors"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/navionguy/edubasic/fileio"
)

// MockFS is an in memory FileSystem.  Directories are implied by the
// paths of the files plus any made with Mkdir.
type MockFS struct {
	Files   map[string]string
	Dirs    map[string]bool
	handles map[int]*fileio.OpenFile
	next    int
}

// NewMockFS starts with the given files
func NewMockFS(files map[string]string) *MockFS {
	mf := &MockFS{Files: map[string]string{}, Dirs: map[string]bool{"/": true}, handles: map[int]*fileio.OpenFile{}}
	for k, v := range files {
		mf.Files[clean(k)] = v
	}
	return mf
}

func clean(p string) string {
	return path.Clean("/" + p)
}

func (mf *MockFS) Open(p string, mode fileio.AccessMode) (int, error) {
	p = clean(p)
	content, ok := mf.Files[p]
	if !ok && mode == fileio.Read {
		return 0, errors.New("File not found")
	}
	if mode == fileio.Write {
		content = ""
	}

	mf.next++
	mf.handles[mf.next] = &fileio.OpenFile{Path: p, Mode: mode, Content: []byte(content)}
	if mode == fileio.Write || !ok {
		mf.Files[p] = content
	}
	return mf.next, nil
}

func (mf *MockFS) file(h int) (*fileio.OpenFile, error) {
	f, ok := mf.handles[h]
	if !ok {
		return nil, errors.New("Bad file number")
	}
	return f, nil
}

func (mf *MockFS) Close(h int) error {
	f, err := mf.file(h)
	if err != nil {
		return err
	}
	if f.Dirty {
		mf.Files[f.Path] = string(f.Content)
	}
	delete(mf.handles, h)
	return nil
}

func (mf *MockFS) ReadLine(h int) (string, error) {
	f, err := mf.file(h)
	if err != nil {
		return "", err
	}
	line, ok := f.ReadLine()
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (mf *MockFS) Write(h int, data string) error {
	f, err := mf.file(h)
	if err != nil {
		return err
	}
	f.Write(data)
	return nil
}

func (mf *MockFS) Seek(h int, pos int64) error {
	f, err := mf.file(h)
	if err != nil {
		return err
	}
	f.Seek(pos)
	return nil
}

func (mf *MockFS) EOF(h int) (bool, error) {
	f, err := mf.file(h)
	if err != nil {
		return false, err
	}
	return f.EOF(), nil
}

func (mf *MockFS) List(p string) ([]string, error) {
	dir := clean(p)
	seen := map[string]bool{}
	for name := range mf.Files {
		if path.Dir(name) == dir {
			seen[path.Base(name)] = true
		}
	}
	for name := range mf.Dirs {
		if name != "/" && path.Dir(name) == dir {
			seen[path.Base(name)+"/"] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (mf *MockFS) Mkdir(p string) error {
	mf.Dirs[clean(p)] = true
	return nil
}

func (mf *MockFS) Rmdir(p string) error {
	p = clean(p)
	if !mf.Dirs[p] {
		return errors.New("Path not found")
	}
	for name := range mf.Files {
		if strings.HasPrefix(name, p+"/") {
			return errors.New("Path/File access error")
		}
	}
	delete(mf.Dirs, p)
	return nil
}

func (mf *MockFS) Copy(src, dst string) error {
	content, ok := mf.Files[clean(src)]
	if !ok {
		return errors.New("File not found")
	}
	mf.Files[clean(dst)] = content
	return nil
}

func (mf *MockFS) Move(src, dst string) error {
	if err := mf.Copy(src, dst); err != nil {
		return err
	}
	delete(mf.Files, clean(src))
	return nil
}

func (mf *MockFS) Delete(p string) error {
	if _, ok := mf.Files[clean(p)]; !ok {
		return errors.New("File not found")
	}
	delete(mf.Files, clean(p))
	return nil
}
