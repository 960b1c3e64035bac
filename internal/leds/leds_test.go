package leds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsowell/lk201bridge/internal/leds"
)

type fakeDriver struct {
	state [leds.NumIndicators]bool
}

func (f *fakeDriver) Set(which leds.Indicator, on bool) { f.state[which] = on }

func TestSetAndGet(t *testing.T) {
	d := &fakeDriver{}
	ind := leds.New(d)

	ind.Set(leds.Lock, true)
	assert.True(t, ind.Get(leds.Lock))
	assert.True(t, d.state[leds.Lock])
	assert.False(t, ind.Get(leds.Compose))
}

func TestSetFromMask(t *testing.T) {
	d := &fakeDriver{}
	ind := leds.New(d)

	// Bits for Wait (0) and Lock (2).
	ind.SetFromMask(0x05, true)

	assert.True(t, ind.Get(leds.Wait))
	assert.False(t, ind.Get(leds.Compose))
	assert.True(t, ind.Get(leds.Lock))
	assert.False(t, ind.Get(leds.HoldScreen))
}
