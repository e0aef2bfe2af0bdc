package object

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/navionguy/edubasic/settings"
)

// Environment holds my variables, the program counter and the devices a
// program runs against
type Environment struct {
	store    map[string]*variable   // global variables
	scopes   []map[string]*variable // locals of each active SUB call, innermost last
	settings map[string]Object      // environment settings
	devices  Devices

	// The following hold "state" information controlled by statements
	pc      int        // index of the statement to execute next
	rnd     *rand.Rand // random number generator
	rndVal  float64    // most recent generated value
	started time.Time  // TIMER counts from here
	input   []string   // lines waiting for INPUT
}

type variable struct {
	value Object // the variable object
}

// NewEnvironment creates a fresh environment around the devices
func NewEnvironment(dev Devices) *Environment {
	env := &Environment{devices: dev}
	env.Clear()
	env.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	env.started = time.Now()
	return env
}

// Clear throws away variables, scopes and settings, devices are kept
func (e *Environment) Clear() {
	e.store = make(map[string]*variable)
	e.scopes = nil
	e.settings = map[string]Object{
		settings.Foreground: &Integer{Value: int64(White)},
		settings.Background: &Integer{Value: int64(Black)},
		settings.Tracing:    FALSE,
	}
	e.pc = 0
	e.input = nil
}

// Get attempts to retrieve a variable, the innermost scope wins.  nil when
// the variable has never been assigned.
func (e *Environment) Get(name string) Object {
	if v := e.lookup(name); v != nil {
		return v.value
	}
	return nil
}

// Set stores a value, updating a local if one is visible
func (e *Environment) Set(name string, val Object) {
	if v := e.lookup(name); v != nil {
		v.value = val
		return
	}
	e.store[strings.ToUpper(name)] = &variable{value: val}
}

// Local declares a variable in the innermost SUB scope.  Outside of a SUB
// it is an ordinary assignment.
func (e *Environment) Local(name string, val Object) {
	if len(e.scopes) == 0 {
		e.Set(name, val)
		return
	}
	e.scopes[len(e.scopes)-1][strings.ToUpper(name)] = &variable{value: val}
}

func (e *Environment) lookup(name string) *variable {
	name = strings.ToUpper(name)
	if n := len(e.scopes); n > 0 {
		if v, ok := e.scopes[n-1][name]; ok {
			return v
		}
	}
	return e.store[name]
}

// PushScope opens a new local scope for a SUB call
func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, make(map[string]*variable))
}

// PopScope closes the innermost local scope
func (e *Environment) PopScope() {
	if len(e.scopes) > 0 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// ScopeDepth is the number of active SUB scopes
func (e *Environment) ScopeDepth() int { return len(e.scopes) }

// Variables returns a copy of the global variables, keyed by upper case name
func (e *Environment) Variables() map[string]Object {
	vars := make(map[string]Object, len(e.store))
	for k, v := range e.store {
		vars[k] = v.value
	}
	return vars
}

// VariableNames lists the global variable names in order
func (e *Environment) VariableNames() []string {
	names := make([]string, 0, len(e.store))
	for k := range e.store {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// GetSetting returns a runtime setting, nil if unknown
func (e *Environment) GetSetting(name string) Object {
	return e.settings[name]
}

// SaveSetting changes a runtime setting
func (e *Environment) SaveSetting(name string, obj Object) {
	e.settings[name] = obj
}

// SetTrace turns line tracing on or off
func (e *Environment) SetTrace(on bool) {
	e.settings[settings.Tracing] = Bool(on)
}

// GetTrace reports if tracing is on
func (e *Environment) GetTrace() bool {
	v, ok := e.settings[settings.Tracing].(*Integer)
	return ok && v.Value != 0
}

// Foreground color in use for drawing
func (e *Environment) Foreground() uint32 {
	return e.colorSetting(settings.Foreground, White)
}

// Background color in use
func (e *Environment) Background() uint32 {
	return e.colorSetting(settings.Background, Black)
}

func (e *Environment) colorSetting(key string, def uint32) uint32 {
	if v, ok := e.settings[key].(*Integer); ok {
		return uint32(v.Value)
	}
	return def
}

// PC is the index of the next statement to execute
func (e *Environment) PC() int { return e.pc }

// SetPC moves the program counter
func (e *Environment) SetPC(pc int) { e.pc = pc }

// Random returns the next value in [0, 1)
func (e *Environment) Random() float64 {
	e.rndVal = e.rnd.Float64()
	return e.rndVal
}

// Randomize reseeds the generator
func (e *Environment) Randomize(seed int64) {
	e.rnd = rand.New(rand.NewSource(seed))
}

// Timer is the seconds elapsed since the environment was created
func (e *Environment) Timer() float64 {
	return time.Since(e.started).Seconds()
}

// QueueInput buffers lines for INPUT to consume
func (e *Environment) QueueInput(lines ...string) {
	e.input = append(e.input, lines...)
}

// NextInput takes the oldest buffered line, false when none is waiting
func (e *Environment) NextInput() (string, bool) {
	if len(e.input) == 0 {
		return "", false
	}
	line := e.input[0]
	e.input = e.input[1:]
	return line, true
}

// PendingInput is the number of buffered input lines
func (e *Environment) PendingInput() int { return len(e.input) }

// Graphics device, may be nil
func (e *Environment) Graphics() Graphics { return e.devices.Graphics }

// Audio device, may be nil
func (e *Environment) Audio() Audio { return e.devices.Audio }

// FileSystem device, may be nil
func (e *Environment) FileSystem() FileSystem { return e.devices.FileSystem }

// Console device, may be nil
func (e *Environment) Console() Console { return e.devices.Console }
