package filelist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = []string{
	"short.bas",
	"test.bas",
	"alongername.bas",
	"subdir/",
	"aamenu.bas",
	"asubdir/",
}

const sortedFiles = `[{"name":"asubdir","isdir":true},{"name":"subdir","isdir":true},{"name":"aamenu.bas","isdir":false},{"name":"alongername.bas","isdir":false},{"name":"short.bas","isdir":false},{"name":"test.bas","isdir":false}]`

const buildFiles = `[{"name":"test.bas","isdir":false},{"name":"alongername.bas","isdir":true}]`

func Test_BuildErrors(t *testing.T) {
	fl := NewFileList()

	assert.Error(t, fl.Build(bytes.NewReader(nil)), "empty input is not a listing")
	assert.Error(t, fl.Build(strings.NewReader(`{"entry":}`)))
	assert.Error(t, fl.Build(strings.NewReader(`{"name":"x"}`)), "an object is not a list")
}

func Test_FilesJSON(t *testing.T) {
	fl := NewFileList()
	assert.Equal(t, "[]", string(fl.JSON()))

	fl = FromNames(testNames)
	assert.Equal(t, sortedFiles, string(fl.JSON()))

	require.NoError(t, fl.Build(strings.NewReader(buildFiles)))
	require.Len(t, fl.Files, 2)
	assert.Equal(t, Entry{Name: "alongername.bas", Subdir: true}, fl.Files[0])
}

func Test_FileSort(t *testing.T) {
	sorted := []string{"asubdir", "subdir", "aamenu.bas", "alongername.bas", "short.bas", "test.bas"}
	fl := NewFileList()
	for _, n := range testNames {
		fl.Add(strings.TrimSuffix(n, "/"), strings.HasSuffix(n, "/"))
	}
	fs := &fileSorter{list: fl}
	assert.Equal(t, len(testNames), fs.Len())

	fl.Sort()
	assert.True(t, fl.Files[0].Subdir, "Subdirectory didn't float to the start of the list.")

	for i, name := range sorted {
		assert.Equal(t, name, fl.Files[i].Name)
	}
}

func Test_FromDir(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"game.bas", "NOTES.BAS", "readme.txt", ".hidden.bas"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lessons"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	fl, err := FromDir(dir, ".bas")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "lessons", Subdir: true},
		{Name: "NOTES.BAS"},
		{Name: "game.bas"},
	}, fl.Files)

	fl, err = FromDir(dir)
	require.NoError(t, err)
	assert.Len(t, fl.Files, 4)

	_, err = FromDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
