package mocks

import (
	"fmt"
	"strings"
)

// MockAudio records every call as a line of text
type MockAudio struct {
	Calls []string
}

func (ma *MockAudio) record(format string, args ...interface{}) {
	ma.Calls = append(ma.Calls, fmt.Sprintf(format, args...))
}

func (ma *MockAudio) SetTempo(bpm float64)    { ma.record("Tempo %g", bpm) }
func (ma *MockAudio) SetVolume(level float64) { ma.record("Volume %g", level) }
func (ma *MockAudio) SetMuted(muted bool)     { ma.record("Muted %t", muted) }
func (ma *MockAudio) SetVoice(index int)      { ma.record("Voice %d", index) }

func (ma *MockAudio) SetVoiceInstrument(index, program int) {
	ma.record("Instrument %d %d", index, program)
}

// SetVoiceInstrumentByName rejects names starting with "bad"
func (ma *MockAudio) SetVoiceInstrumentByName(index int, name string) error {
	if strings.HasPrefix(strings.ToLower(name), "bad") {
		return fmt.Errorf("VOICE: unknown instrument %s", name)
	}
	ma.record("Instrument %d %s", index, name)
	return nil
}

func (ma *MockAudio) PlaySequence(index int, mml string) {
	ma.record("Play %d %s", index, mml)
}
