package fileserv

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/vfs"
)

func programDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.bas"), []byte(`PRINT "hello"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret.bas"), []byte(`PRINT "no"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "games"), 0o755))
	return dir
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	return rr
}

func postRun(t *testing.T, s *Server, req RunRequest) RunResult {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var res RunResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	return res
}

func Test_ListPrograms(t *testing.T) {
	s := New(programDir(t))

	rr := get(t, s, "/programs")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"name":"games","isdir":true},{"name":"hello.bas","isdir":false}]`, rr.Body.String())

	s = New(filepath.Join(t.TempDir(), "missing"))
	rr = get(t, s, "/programs")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func Test_GetProgram(t *testing.T) {
	s := New(programDir(t))

	tests := []struct {
		url  string
		code int
		body string
	}{
		{url: "/programs/hello.bas", code: http.StatusOK, body: `PRINT "hello"`},
		{url: "/programs/.secret.bas", code: http.StatusForbidden},
		{url: "/programs/nothere.bas", code: http.StatusNotFound},
		{url: "/programs/games", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		rr := get(t, s, tt.url)
		assert.Equal(t, tt.code, rr.Code, tt.url)
		if len(tt.body) > 0 {
			assert.Equal(t, tt.body, rr.Body.String(), tt.url)
		}
	}
}

func Test_ContainsDotFile(t *testing.T) {
	tests := []struct {
		name string
		exp  bool
	}{
		{name: "prog.bas", exp: false},
		{name: ".hidden", exp: true},
		{name: "dir/.git/config", exp: true},
		{name: "a/b.c/d", exp: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, containsDotFile(tt.name), tt.name)
	}
}

func Test_RunProgram(t *testing.T) {
	s := New(t.TempDir())

	res := postRun(t, s, RunRequest{Source: "PRINT 1 + 1\nCONSOLE \"dbg\""})
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "2\n", res.Output)
	assert.Equal(t, "dbg\n", res.Console)
	assert.Empty(t, res.Error)

	res = postRun(t, s, RunRequest{Source: "INPUT a$\nINPUT b%\nPRINT a$; b% * 2", Input: []string{"x", "21"}})
	assert.Empty(t, res.Error)
	assert.Contains(t, res.Output, "x42")

	res = postRun(t, s, RunRequest{Source: "INPUT a$"})
	assert.Equal(t, "INPUT: no input available", res.Error)
}

func Test_RunErrors(t *testing.T) {
	s := New(t.TempDir(), WithStepLimit(20))

	tests := []struct {
		src  string
		err  string
		line int
	}{
		{src: "PRINT 1\nTHROW 42", err: "42", line: 2},
		{src: "LABEL top\nGOTO top", err: "step limit of 20 reached"},
		{src: "GOTO nowhere", err: "Label not found: nowhere", line: 1},
	}

	for _, tt := range tests {
		res := postRun(t, s, RunRequest{Source: tt.src})
		assert.Equal(t, tt.err, res.Error, tt.src)
		assert.Equal(t, tt.line, res.Line, tt.src)
	}

	res := postRun(t, s, RunRequest{Source: "PRINT ("})
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, 1, res.Line)
}

func Test_RunTimeout(t *testing.T) {
	s := New(t.TempDir(), WithStepLimit(0), WithTimeout(50*time.Millisecond))

	res := postRun(t, s, RunRequest{Source: "LABEL top\nGOTO top"})
	assert.Equal(t, "context deadline exceeded", res.Error)
}

func Test_BadRunRequest(t *testing.T) {
	s := New(t.TempDir())

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/run", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = get(t, s, "/run")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func Test_Volumes(t *testing.T) {
	store, err := vfs.Open(filepath.Join(t.TempDir(), "files.db"))
	require.NoError(t, err)
	defer store.Close()

	s := New(t.TempDir(), WithStore(store))
	res := postRun(t, s, RunRequest{Volume: "class", Source: `MKDIR "work"
OPEN "notes.txt" FOR WRITE AS h%
WRITEFILE "hi" TO h%
CLOSE h%`})
	require.Empty(t, res.Error)

	rr := get(t, s, "/files/class")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"name":"work","isdir":true},{"name":"notes.txt","isdir":false}]`, rr.Body.String())

	rr = get(t, s, "/files/class?dir=/work")
	assert.Equal(t, "[]", rr.Body.String())

	rr = get(t, s, "/files/class?dir=/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	data, err := store.Volume("class").ReadFile("/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))

	rr = get(t, New(t.TempDir()), "/files/class")
	assert.Equal(t, http.StatusNotFound, rr.Code, "no store configured")
}

func Test_StreamProgram(t *testing.T) {
	srv := httptest.NewServer(New(t.TempDir()))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsMessage{Type: msgRun, Source: "PRINT \"hi\"\nINPUT n%\nPRINT n% * 2"}))

	var output strings.Builder
	var end wsMessage
	for end.Type != msgEnd {
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg))
		switch msg.Type {
		case msgStart:
			assert.NotEmpty(t, msg.ID)
		case msgOutput:
			output.WriteString(msg.Text)
		case msgInput:
			require.NoError(t, conn.WriteJSON(wsMessage{Type: msgInput, Text: "21"}))
		case msgEnd:
			end = msg
		}
	}

	assert.Empty(t, end.Error)
	assert.Contains(t, output.String(), "hi\n")
	assert.Contains(t, output.String(), "42\n")
}

func Test_StreamNeedsRun(t *testing.T) {
	srv := httptest.NewServer(New(t.TempDir()))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsMessage{Type: msgInput, Text: "x"}))

	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, msgEnd, msg.Type)
	assert.Equal(t, "expected a run message", msg.Error)

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

type closedConn struct{}

func (closedConn) WriteJSON(v interface{}) error {
	return errors.New("use of closed network connection")
}

func Test_SendLogsClosedClient(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	lvl := logger.GetLevel()
	logger.SetLevel(logger.DEBUG)
	defer func() {
		logger.SetLevel(lvl)
		logger.SetOutput(os.Stderr)
	}()

	err := send(closedConn{}, wsMessage{Type: msgEnd})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "websocket write end: use of closed network connection")

	w := &wsWriter{conn: closedConn{}, kind: msgOutput}
	n, err := w.Write([]byte("hi"))
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "websocket write output")
}
