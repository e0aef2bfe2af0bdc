// Package fileserv is the HTTP host.  It hands out the program sources in a
// directory, lists the files kept in the sqlite volumes and runs submitted
// programs without a screen.
package fileserv

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/navionguy/edubasic/filelist"
	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/vfs"
)

// programExt is the extension of files listed under /programs
const programExt = ".bas"

// Server routes the requests
type Server struct {
	dir       string
	store     *vfs.Store
	stepLimit int
	timeout   time.Duration

	router   *mux.Router
	upgrader websocket.Upgrader
}

// Option adjusts a Server
type Option func(*Server)

// WithStepLimit caps the statements one run may execute
func WithStepLimit(n int) Option {
	return func(s *Server) { s.stepLimit = n }
}

// WithTimeout caps the wall clock time of one run
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithStore gives programs access to the sqlite volumes
func WithStore(store *vfs.Store) Option {
	return func(s *Server) { s.store = store }
}

// New builds a Server handing out programs found in dir
func New(dir string, opts ...Option) *Server {
	s := &Server{
		dir:       dir,
		stepLimit: 1000000,
		timeout:   30 * time.Second,
		router:    mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.HandleFunc("/programs", s.listPrograms).Methods(http.MethodGet).Name("programs")
	s.router.HandleFunc("/programs/{file}", s.getProgram).Methods(http.MethodGet).Name("program")
	s.router.HandleFunc("/files/{volume}", s.listVolume).Methods(http.MethodGet).Name("volume")
	s.router.HandleFunc("/run", s.runProgram).Methods(http.MethodPost).Name("run")
	s.router.HandleFunc("/ws", s.streamProgram).Name("ws")
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger.Debug(logger.AreaServer, "%s %s", r.Method, r.URL.Path)
	s.router.ServeHTTP(w, r)
}

func (s *Server) listPrograms(w http.ResponseWriter, r *http.Request) {
	fl, err := filelist.FromDir(s.dir, programExt)
	if err != nil {
		logger.Error(logger.AreaServer, "listing %s: %s", s.dir, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(fl.JSON())
}

// getProgram sends one source file, dot files are never served
func (s *Server) getProgram(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["file"]
	if containsDotFile(name) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	hfile, err := http.Dir(s.dir).Open(path.Clean("/" + name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer hfile.Close()

	st, err := hfile.Stat()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if st.IsDir() {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeContent(w, r, st.Name(), st.ModTime(), hfile)
}

func (s *Server) listVolume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	dir := r.URL.Query().Get("dir")
	if len(dir) == 0 {
		dir = "/"
	}

	names, err := s.store.Volume(mux.Vars(r)["volume"]).List(dir)
	if errors.Is(err, vfs.ErrPathNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error(logger.AreaServer, "listing volume: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(filelist.FromNames(names).JSON())
}

// containsDotFile reports whether name contains a path element starting
// with a period
func containsDotFile(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
