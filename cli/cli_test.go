package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navionguy/edubasic/mocks"
)

func runSource(t *testing.T, src, input string, opts Options) (string, string, error) {
	t.Helper()
	var out, con bytes.Buffer
	r := New(strings.NewReader(input), &out, &con, opts)
	err := r.Run(context.Background(), src)
	return out.String(), con.String(), err
}

func Test_RunPrints(t *testing.T) {
	out, con, err := runSource(t, `PRINT "hi"; 2 * 3`, "", Options{})

	require.NoError(t, err)
	assert.Equal(t, "hi6\n", out)
	assert.Contains(t, con, "Ok")
}

func Test_RunReadsInput(t *testing.T) {
	src := `INPUT "Name"; n$
INPUT a%
PRINT n$; a% + 1`
	out, _, err := runSource(t, src, "Ada\n41\n", Options{})

	require.NoError(t, err)
	assert.Contains(t, out, "Ada42")
}

func Test_RunOutOfInput(t *testing.T) {
	_, con, err := runSource(t, `INPUT a%`, "", Options{})

	require.Error(t, err)
	assert.Contains(t, con, "INPUT: end of input")
}

func Test_RunErrors(t *testing.T) {
	tests := []struct {
		src string
		exp string
	}{
		{src: "PRINT 1\nTHROW 42", exp: "42 in line 2"},
		{src: "NEXT i%", exp: "NEXT without FOR in line 1"},
		{src: "PRINT (", exp: "Syntax error: "},
	}

	for _, tt := range tests {
		_, con, err := runSource(t, tt.src, "", Options{})
		assert.Error(t, err, tt.src)
		assert.Contains(t, con, tt.exp, tt.src)
		assert.NotContains(t, con, "Ok", tt.src)
	}
}

func Test_StepLimit(t *testing.T) {
	_, con, err := runSource(t, "LABEL top\nGOTO top", "", Options{StepLimit: 50})

	require.EqualError(t, err, "step limit of 50 reached")
	assert.Contains(t, con, "step limit")
}

func Test_RunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.bas")
	require.NoError(t, os.WriteFile(path, []byte(`CONSOLE "from file"`), 0o644))

	var out, con bytes.Buffer
	r := New(strings.NewReader(""), &out, &con, Options{})
	require.NoError(t, r.RunFile(context.Background(), path))
	assert.Contains(t, con.String(), "from file")

	err := r.RunFile(context.Background(), filepath.Join(dir, "missing.bas"))
	assert.Error(t, err)
}

func Test_SaveScreen(t *testing.T) {
	shot := filepath.Join(t.TempDir(), "screen.png")
	opts := Options{Width: 16, Height: 12, Screen: shot}
	_, _, err := runSource(t, `CIRCLE AT (8, 6) RADIUS 4 WITH "yellow"`, "", opts)
	require.NoError(t, err)

	f, err := os.Open(shot)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
}

func Test_UsesFileSystem(t *testing.T) {
	fs := mocks.NewMockFS(nil)
	src := `OPEN "notes.txt" FOR WRITE AS h%
WRITEFILE "remember" TO h%
CLOSE h%`
	_, _, err := runSource(t, src, "", Options{Files: fs})

	require.NoError(t, err)
	assert.Equal(t, "remember\n", fs.Files["/notes.txt"])
}
