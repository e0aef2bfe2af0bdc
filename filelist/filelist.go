// Package filelist builds the directory listings the program server hands
// out, directories first and then files, each group by name
package filelist

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is a single directory entry
type Entry struct {
	Name   string `json:"name"`
	Subdir bool   `json:"isdir"`
}

// FileList holds the array of entries
type FileList struct {
	Files []Entry
}

type fileSorter struct {
	list *FileList
}

// NewFileList builds a new, empty, list
func NewFileList() *FileList {
	return &FileList{}
}

// FromDir lists a local directory.  Dot files are hidden and, when exts
// are given, only files with one of those extensions are kept.
func FromDir(dir string, exts ...string) (*FileList, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fl := NewFileList()
	for _, de := range ents {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		if !de.IsDir() && !matchExt(de.Name(), exts) {
			continue
		}
		fl.Add(de.Name(), de.IsDir())
	}
	fl.Sort()
	return fl, nil
}

func matchExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// FromNames takes a listing where directory names end in "/"
func FromNames(names []string) *FileList {
	fl := NewFileList()
	for _, n := range names {
		fl.Add(strings.TrimSuffix(n, "/"), strings.HasSuffix(n, "/"))
	}
	fl.Sort()
	return fl
}

// Add appends an entry
func (fl *FileList) Add(name string, dir bool) {
	fl.Files = append(fl.Files, Entry{Name: name, Subdir: dir})
}

// Sort puts directories first
func (fl *FileList) Sort() {
	sort.Sort(&fileSorter{list: fl})
}

// JSON returns the file list formatted in HTML compatable JSON
func (fl *FileList) JSON() []byte {
	if len(fl.Files) == 0 {
		return []byte("[]")
	}
	res, _ := json.Marshal(fl.Files)
	return res
}

// Build takes the json form and builds a full FileList and sorts it
func (fl *FileList) Build(rdr io.Reader) error {
	fl.Files = fl.Files[:0]

	jsn, err := io.ReadAll(rdr)
	if err != nil {
		return err
	}

	if !json.Valid(jsn) {
		return errors.New("NotDir")
	}

	if err = json.Unmarshal(jsn, &fl.Files); err != nil {
		return err
	}
	fl.Sort()

	return nil
}

// Len is a part of the sort.Interface
// returns the number file entries
func (fs *fileSorter) Len() int {
	return len(fs.list.Files)
}

// Swap is part of sort.Interface
// change two elements
func (fs *fileSorter) Swap(i, j int) {
	fs.list.Files[i], fs.list.Files[j] = fs.list.Files[j], fs.list.Files[i]
}

// Less is part of sort.Interface
func (fs *fileSorter) Less(i, j int) bool {
	a, b := fs.list.Files[i], fs.list.Files[j]
	if a.Subdir != b.Subdir {
		return a.Subdir
	}
	return strings.Compare(a.Name, b.Name) == -1
}
