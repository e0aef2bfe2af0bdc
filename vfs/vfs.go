// Package vfs keeps program files in a sqlite database.  A Store holds any
// number of volumes, each volume is an independent directory tree that a
// running program sees through the FileSystem device.
package vfs

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/fileio"
	"github.com/navionguy/edubasic/logger"
)

// errors handed back to the file statements
var (
	ErrNotFound     = errors.New(berrors.TextForError(berrors.FileNotFound))
	ErrPathNotFound = errors.New(berrors.TextForError(berrors.PathNotFound))
	ErrBadHandle    = errors.New(berrors.TextForError(berrors.BadFileNum))
	ErrAccess       = errors.New("Path/File access error")
	ErrBadMode      = errors.New("Bad file mode")
)

// Store wraps the database connection
type Store struct {
	db *sql.DB
}

// Open connects to the database at dbPath, creating the tables it needs
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info(logger.AreaFileSystem, "database %s ready", dbPath)
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS files (
			id TEXT NOT NULL UNIQUE,
			volume TEXT NOT NULL,
			path TEXT NOT NULL,
			content BLOB,
			is_dir INTEGER DEFAULT 0,
			mod_time INTEGER NOT NULL,
			PRIMARY KEY (volume, path)
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Close shuts the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Volume returns the file system for one volume
func (s *Store) Volume(name string) *FS {
	return &FS{store: s, volume: name, handles: make(map[int]*fileio.OpenFile)}
}

// Volumes lists every volume holding at least one entry
func (s *Store) Volumes() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT volume FROM files ORDER BY volume`)
	if err != nil {
		return nil, fmt.Errorf("vfs: %w", err)
	}
	defer rows.Close()

	var vols []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("vfs: %w", err)
		}
		vols = append(vols, v)
	}
	return vols, rows.Err()
}

// FS is a single volume, it satisfies object.FileSystem
type FS struct {
	store  *Store
	volume string

	mutex   sync.Mutex
	handles map[int]*fileio.OpenFile
	next    int
}

// entry is one row of the files table
type entry struct {
	content []byte
	isDir   bool
}

func clean(p string) string {
	return path.Clean("/" + strings.TrimSpace(p))
}

func (fs *FS) lookup(p string) (*entry, error) {
	if p == "/" {
		return &entry{isDir: true}, nil
	}

	e := &entry{}
	err := fs.store.db.QueryRow(
		`SELECT content, is_dir FROM files WHERE volume = ? AND path = ?`,
		fs.volume, p).Scan(&e.content, &e.isDir)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("vfs: %w", err)
	}
	return e, nil
}

// parentExists checks the directory p would live in
func (fs *FS) parentExists(p string) error {
	e, err := fs.lookup(path.Dir(p))
	if err != nil {
		return err
	}
	if e == nil || !e.isDir {
		return ErrPathNotFound
	}
	return nil
}

func (fs *FS) put(p string, content []byte, isDir bool) error {
	_, err := fs.store.db.Exec(
		`INSERT INTO files (id, volume, path, content, is_dir, mod_time) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (volume, path) DO UPDATE SET content = excluded.content, mod_time = excluded.mod_time`,
		uuid.NewString(), fs.volume, p, content, isDir, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("vfs: %w", err)
	}
	return nil
}

// WriteFile stores a whole file, creating it if needed
func (fs *FS) WriteFile(p string, content []byte) error {
	p = clean(p)
	if err := fs.parentExists(p); err != nil {
		return err
	}
	return fs.put(p, content, false)
}

// ReadFile returns a whole file
func (fs *FS) ReadFile(p string) ([]byte, error) {
	e, err := fs.lookup(clean(p))
	if err != nil {
		return nil, err
	}
	if e == nil || e.isDir {
		return nil, ErrNotFound
	}
	return e.content, nil
}

// Open hands back a handle for the file at p
func (fs *FS) Open(p string, mode fileio.AccessMode) (int, error) {
	p = clean(p)
	e, err := fs.lookup(p)
	if err != nil {
		return 0, err
	}

	switch {
	case e != nil && e.isDir:
		return 0, ErrAccess
	case e == nil && mode == fileio.Read:
		return 0, ErrNotFound
	case e == nil:
		if err := fs.parentExists(p); err != nil {
			return 0, err
		}
		if err := fs.put(p, nil, false); err != nil {
			return 0, err
		}
		e = &entry{}
	}

	f := &fileio.OpenFile{Path: p, Mode: mode, Content: e.content}
	if mode == fileio.Write {
		f.Content = nil
		f.Dirty = true
	}

	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	fs.next++
	fs.handles[fs.next] = f
	logger.Debug(logger.AreaFileSystem, "%s: opened %s for %s as #%d", fs.volume, p, mode, fs.next)
	return fs.next, nil
}

func (fs *FS) file(h int) (*fileio.OpenFile, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	f, ok := fs.handles[h]
	if !ok {
		return nil, ErrBadHandle
	}
	return f, nil
}

// Close flushes a written file back to the database
func (fs *FS) Close(h int) error {
	f, err := fs.file(h)
	if err != nil {
		return err
	}

	fs.mutex.Lock()
	delete(fs.handles, h)
	fs.mutex.Unlock()

	if !f.Dirty {
		return nil
	}
	return fs.put(f.Path, f.Content, false)
}

// CloseAll flushes and drops every open handle
func (fs *FS) CloseAll() error {
	fs.mutex.Lock()
	var open []int
	for h := range fs.handles {
		open = append(open, h)
	}
	fs.mutex.Unlock()

	var first error
	for _, h := range open {
		if err := fs.Close(h); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (fs *FS) ReadLine(h int) (string, error) {
	f, err := fs.file(h)
	if err != nil {
		return "", err
	}
	if !f.Mode.CanRead() {
		return "", ErrBadMode
	}
	line, ok := f.ReadLine()
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (fs *FS) Write(h int, data string) error {
	f, err := fs.file(h)
	if err != nil {
		return err
	}
	if !f.Mode.CanWrite() {
		return ErrBadMode
	}
	f.Write(data)
	return nil
}

func (fs *FS) Seek(h int, pos int64) error {
	f, err := fs.file(h)
	if err != nil {
		return err
	}
	f.Seek(pos)
	return nil
}

func (fs *FS) EOF(h int) (bool, error) {
	f, err := fs.file(h)
	if err != nil {
		return false, err
	}
	return f.EOF(), nil
}

// List names the entries directly inside dir, directories end with "/"
func (fs *FS) List(dir string) ([]string, error) {
	dir = clean(dir)
	e, err := fs.lookup(dir)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.isDir {
		return nil, ErrPathNotFound
	}

	prefix := strings.TrimSuffix(dir, "/") + "/"
	rows, err := fs.store.db.Query(
		`SELECT path, is_dir FROM files WHERE volume = ? AND substr(path, 1, ?) = ?`,
		fs.volume, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("vfs: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var p string
		var isDir bool
		if err := rows.Scan(&p, &isDir); err != nil {
			return nil, fmt.Errorf("vfs: %w", err)
		}
		if path.Dir(p) != dir {
			continue
		}
		name := path.Base(p)
		if isDir {
			name += "/"
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vfs: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

func (fs *FS) Mkdir(p string) error {
	p = clean(p)
	e, err := fs.lookup(p)
	if err != nil {
		return err
	}
	if e != nil {
		return ErrAccess
	}
	if err := fs.parentExists(p); err != nil {
		return err
	}
	return fs.put(p, nil, true)
}

func (fs *FS) Rmdir(p string) error {
	p = clean(p)
	if p == "/" {
		return ErrAccess
	}
	e, err := fs.lookup(p)
	if err != nil {
		return err
	}
	if e == nil || !e.isDir {
		return ErrPathNotFound
	}

	var children int
	err = fs.store.db.QueryRow(
		`SELECT COUNT(*) FROM files WHERE volume = ? AND substr(path, 1, ?) = ?`,
		fs.volume, len(p)+1, p+"/").Scan(&children)
	if err != nil {
		return fmt.Errorf("vfs: %w", err)
	}
	if children > 0 {
		return ErrAccess
	}
	return fs.remove(p)
}

func (fs *FS) remove(p string) error {
	if _, err := fs.store.db.Exec(`DELETE FROM files WHERE volume = ? AND path = ?`, fs.volume, p); err != nil {
		return fmt.Errorf("vfs: %w", err)
	}
	return nil
}

func (fs *FS) Copy(src, dst string) error {
	content, err := fs.ReadFile(src)
	if err != nil {
		return err
	}
	return fs.WriteFile(dst, content)
}

func (fs *FS) Move(src, dst string) error {
	if err := fs.Copy(src, dst); err != nil {
		return err
	}
	if clean(src) == clean(dst) {
		return nil
	}
	return fs.remove(clean(src))
}

func (fs *FS) Delete(p string) error {
	p = clean(p)
	e, err := fs.lookup(p)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrNotFound
	}
	if e.isDir {
		return ErrAccess
	}
	return fs.remove(p)
}
