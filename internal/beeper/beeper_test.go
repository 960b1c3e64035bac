package beeper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsowell/lk201bridge/internal/beeper"
)

type fakePWM struct{ duty float64 }

func (f *fakePWM) SetDutyCycle(frac float64) { f.duty = frac }

func TestDisabledVolumeIsSilent(t *testing.T) {
	pwm := &fakePWM{}
	b := beeper.New(pwm)

	b.SoundKeyclick()
	assert.Zero(t, pwm.duty)

	b.SoundBell()
	assert.Zero(t, pwm.duty)
}

func TestSoundKeyclickSetsDutyCycle(t *testing.T) {
	pwm := &fakePWM{}
	b := beeper.New(pwm)
	b.SetKeyclickVolume(0)

	b.SoundKeyclick()
	assert.InDelta(t, 0.5, pwm.duty, 0.0001, "volume 0 is loudest: full half-period duty")
}

func TestSofterVolumeReducesDutyCycle(t *testing.T) {
	pwm := &fakePWM{}
	b := beeper.New(pwm)
	b.SetKeyclickVolume(7)

	b.SoundKeyclick()
	assert.InDelta(t, 0.5*(8-7)/8, pwm.duty, 0.0001)
}

func TestDisablingVolumeAfterEnabling(t *testing.T) {
	pwm := &fakePWM{}
	b := beeper.New(pwm)
	b.SetBellVolume(2)
	b.SetBellVolume(-1)

	b.SoundBell()
	assert.Zero(t, pwm.duty)
}
