package statuslight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsowell/lk201bridge/internal/statuslight"
)

type fakeStrip struct {
	last statuslight.RGB
	sets int
}

func (f *fakeStrip) SetAll(c statuslight.RGB) {
	f.last = c
	f.sets++
}

func TestNewIsOff(t *testing.T) {
	s := statuslight.New(&fakeStrip{})
	assert.Equal(t, statuslight.Off, s.State())
}

func TestSetPushesColorToStrip(t *testing.T) {
	strip := &fakeStrip{}
	s := statuslight.New(strip)

	s.Set(statuslight.Active)
	assert.Equal(t, statuslight.Active, s.State())
	assert.Equal(t, statuslight.RGB{R: 0x00, G: 0x04, B: 0x00}, strip.last)
	assert.Equal(t, 1, strip.sets)
}

func TestDistinctStatesHaveDistinctColors(t *testing.T) {
	strip := &fakeStrip{}
	s := statuslight.New(strip)

	seen := map[statuslight.RGB]bool{}
	for _, state := range []statuslight.State{statuslight.Off, statuslight.Scanning, statuslight.Paired, statuslight.Active} {
		s.Set(state)
		seen[strip.last] = true
	}
	assert.Len(t, seen, 4)
}

func TestNilStripIsSafe(t *testing.T) {
	s := statuslight.New(nil)
	assert.NotPanics(t, func() { s.Set(statuslight.Paired) })
}
