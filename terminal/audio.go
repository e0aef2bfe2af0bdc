package terminal

import (
	"fmt"
	"strings"
)

// General MIDI programs that can be picked by name
var instruments = map[string]int{
	"piano":        0,
	"harpsichord":  6,
	"glockenspiel": 9,
	"xylophone":    13,
	"organ":        19,
	"guitar":       24,
	"bass":         32,
	"violin":       40,
	"cello":        42,
	"strings":      48,
	"choir":        52,
	"trumpet":      56,
	"trombone":     57,
	"tuba":         58,
	"horn":         60,
	"sax":          65,
	"oboe":         68,
	"clarinet":     71,
	"flute":        73,
	"whistle":      78,
	"square":       80,
	"sawtooth":     81,
	"pad":          88,
	"banjo":        105,
	"drums":        118,
}

// InstrumentByName returns the program number for an instrument name
func InstrumentByName(name string) (int, bool) {
	p, ok := instruments[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// the terminal has no synthesiser, audio settings are logged to the console

func (t *Terminal) SetTempo(bpm float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.log("[audio] tempo %g", bpm)
}

func (t *Terminal) SetVolume(level float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.log("[audio] volume %g", level)
}

func (t *Terminal) SetMuted(muted bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.log("[audio] muted %t", muted)
}

func (t *Terminal) SetVoice(index int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.log("[audio] voice %d", index)
}

func (t *Terminal) SetVoiceInstrument(index, program int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.log("[audio] voice %d instrument %d", index, program)
}

func (t *Terminal) SetVoiceInstrumentByName(index int, name string) error {
	p, ok := InstrumentByName(name)
	if !ok {
		return fmt.Errorf("VOICE: unknown instrument %s", name)
	}
	t.SetVoiceInstrument(index, p)
	return nil
}

func (t *Terminal) PlaySequence(index int, mml string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.log("[audio] voice %d plays %s", index, mml)
}
