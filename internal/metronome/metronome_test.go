package metronome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsowell/lk201bridge/internal/keys"
	"github.com/tsowell/lk201bridge/internal/lk201"
	"github.com/tsowell/lk201bridge/internal/metronome"
)

type fakeSink struct{ written []byte }

func (f *fakeSink) WriteByte(b byte) int {
	f.written = append(f.written, b)
	return 1
}

type fakeBeeper struct{ clicks int }

func (f *fakeBeeper) SoundKeyclick() { f.clicks++ }

func TestNoCandidateClearsState(t *testing.T) {
	tables := lk201.NewTables()
	keysDown := keys.NewSet()
	var resend bool
	m := metronome.New(tables, keysDown, &resend)
	sink := &fakeSink{}

	m.Tick(0, sink, &fakeBeeper{})
	assert.Empty(t, sink.written)
}

func TestMetronomeEmittedAfterTimeoutThenRepeatsMetronome(t *testing.T) {
	tables := lk201.NewTables() // main array: timeout 500, interval 33 (buffer 0)
	keysDown := keys.NewSet()
	var resend bool
	entry, ok := keysDown.Push(lk201.KeycodeFromHID(0x04), 0)
	if !assert.True(t, ok) {
		return
	}
	_ = entry

	m := metronome.New(tables, keysDown, &resend)
	sink := &fakeSink{}
	beeper := &fakeBeeper{}

	// Before timeout: nothing emitted.
	m.Tick(100, sink, beeper)
	assert.Empty(t, sink.written)

	// Timeout elapsed: first metronome event emits METRONOME.
	m.Tick(600, sink, beeper)
	assert.Equal(t, []byte{lk201.Metronome}, sink.written)
	assert.Equal(t, 1, beeper.clicks)

	// Next interval tick with no resend pending re-emits METRONOME.
	sink.written = nil
	m.Tick(700, sink, beeper)
	assert.Equal(t, []byte{lk201.Metronome}, sink.written)
}

func TestResendEmitsKeycodeInsteadOfMetronome(t *testing.T) {
	tables := lk201.NewTables()
	keysDown := keys.NewSet()
	var resend bool
	code := lk201.KeycodeFromHID(0x04)
	keysDown.Push(code, 0)

	m := metronome.New(tables, keysDown, &resend)
	sink := &fakeSink{}
	beeper := &fakeBeeper{}

	m.Tick(600, sink, beeper) // begin repeating, emits METRONOME
	resend = true
	sink.written = nil

	m.Tick(634, sink, beeper)
	assert.Equal(t, []byte{code}, sink.written)
}

func TestInhibitedKeyIsNotACandidate(t *testing.T) {
	tables := lk201.NewTables()
	keysDown := keys.NewSet()
	var resend bool
	code := lk201.KeycodeFromHID(0x04)
	entry, _ := keysDown.Push(code, 0)
	entry.InhibitAutoRepeat = true

	m := metronome.New(tables, keysDown, &resend)
	sink := &fakeSink{}

	m.Tick(600, sink, &fakeBeeper{})
	assert.Empty(t, sink.written)
}

func TestAutoRepeatDisableSuppressesEmissionButAdvancesState(t *testing.T) {
	tables := lk201.NewTables()
	keysDown := keys.NewSet()
	var resend bool
	code := lk201.KeycodeFromHID(0x04)
	keysDown.Push(code, 0)

	m := metronome.New(tables, keysDown, &resend)
	m.AutoRepeatDisable()
	sink := &fakeSink{}

	m.Tick(600, sink, &fakeBeeper{})
	assert.Empty(t, sink.written)

	// Re-enabled with a resend pending, the next interval tick sends the
	// keycode: the disabled tick still started the repeat.
	m.AutoRepeatEnable()
	resend = true
	m.Tick(634, sink, &fakeBeeper{})
	assert.Equal(t, []byte{code}, sink.written)
}
