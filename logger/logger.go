// Package logger is a small leveled logger where every message is tagged
// with the area of the interpreter it came from.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// LogLevel orders messages by severity
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var logLevelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l LogLevel) String() string {
	if name, ok := logLevelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// LogArea names the part of the system doing the logging
type LogArea string

const (
	AreaRuntime    LogArea = "runtime"
	AreaParser     LogArea = "parser"
	AreaFileSystem LogArea = "filesystem"
	AreaServer     LogArea = "server"
	AreaCLI        LogArea = "cli"
	AreaConfig     LogArea = "config"
)

var (
	level    int32 = int32(WARN)
	mutex    sync.Mutex
	out      = log.New(os.Stderr, "", log.LstdFlags)
	disabled = map[LogArea]bool{}
)

// ParseLevel turns a level name into a LogLevel, unknown names mean INFO
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	}
	return INFO
}

// SetLevel sets the lowest level that gets written
func SetLevel(l LogLevel) {
	atomic.StoreInt32(&level, int32(l))
}

// GetLevel returns the current level
func GetLevel() LogLevel {
	return LogLevel(atomic.LoadInt32(&level))
}

// SetOutput redirects the log, tests point it at a buffer
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	out.SetOutput(w)
}

// EnableArea switches logging for a single area on or off
func EnableArea(area LogArea, on bool) {
	mutex.Lock()
	defer mutex.Unlock()
	disabled[area] = !on
}

func write(l LogLevel, area LogArea, format string, args ...interface{}) {
	if l < GetLevel() {
		return
	}

	mutex.Lock()
	defer mutex.Unlock()

	if disabled[area] {
		return
	}
	out.Printf("[%s] [%s] %s", l, area, fmt.Sprintf(format, args...))
}

// Debug logs detail only wanted while chasing a problem
func Debug(area LogArea, format string, args ...interface{}) {
	write(DEBUG, area, format, args...)
}

// Info logs normal operation
func Info(area LogArea, format string, args ...interface{}) {
	write(INFO, area, format, args...)
}

// Warn logs something unexpected that was recovered from
func Warn(area LogArea, format string, args ...interface{}) {
	write(WARN, area, format, args...)
}

// Error logs a failure
func Error(area LogArea, format string, args ...interface{}) {
	write(ERROR, area, format, args...)
}
