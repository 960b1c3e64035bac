// Package beeper drives the keyboard's single PWM-style beeper for
// keyclicks and the bell, at one of two fixed durations and a
// volume-derived duty cycle. A pulse is mutually exclusive with any
// pulse already in flight: starting a new one restarts the shared
// off-timer rather than stacking.
package beeper

import (
	"sync"
	"time"
)

// keyclickDurationMS and bellDurationMS are the fixed pulse durations
// for a keyclick and for the bell, respectively.
const (
	keyclickDurationMS = 2
	bellDurationMS     = 125
)

// PWM is the duty-cycle sink the beeper drives. DutyCycle is expressed
// as a fraction of the full period in [0,1]; 0 is silent.
type PWM interface {
	SetDutyCycle(frac float64)
}

// Beeper holds the two independently-settable volumes and the
// pending off-timer.
type Beeper struct {
	mu sync.Mutex
	pwm PWM

	keyclickVolume int
	bellVolume     int

	offTimer *time.Timer
}

// New returns a Beeper with both channels disabled; internal/bridge
// sets both to the power-on default volume when it wires the beeper in.
func New(pwm PWM) *Beeper {
	return &Beeper{pwm: pwm, keyclickVolume: -1, bellVolume: -1}
}

// SetKeyclickVolume sets the keyclick channel's volume (0 loudest, 7
// softest, negative disables).
func (b *Beeper) SetKeyclickVolume(volume int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keyclickVolume = volume
}

// SetBellVolume sets the bell channel's volume.
func (b *Beeper) SetBellVolume(volume int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bellVolume = volume
}

// SoundKeyclick pulses the beeper at the keyclick volume for 2ms, or
// does nothing if the keyclick channel is disabled.
func (b *Beeper) SoundKeyclick() {
	b.mu.Lock()
	volume := b.keyclickVolume
	b.mu.Unlock()
	if volume < 0 {
		return
	}
	b.pulse(volume, keyclickDurationMS*time.Millisecond)
}

// SoundBell pulses the beeper at the bell volume for 125ms, or does
// nothing if the bell channel is disabled.
func (b *Beeper) SoundBell() {
	b.mu.Lock()
	volume := b.bellVolume
	b.mu.Unlock()
	if volume < 0 {
		return
	}
	b.pulse(volume, bellDurationMS*time.Millisecond)
}

// pulse turns the beeper on at volume's duty cycle, restarting the
// shared off-timer so a new pulse always re-arms the full duration.
func (b *Beeper) pulse(volume int, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pwm.SetDutyCycle(dutyCycle(volume))

	if b.offTimer != nil {
		b.offTimer.Stop()
	}
	b.offTimer = time.AfterFunc(d, b.off)
}

func (b *Beeper) off() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pwm.SetDutyCycle(0)
}

// dutyCycle maps a volume (0 loudest, 7 softest) to a duty cycle
// fraction of the full period: (8-volume)/8, halved since the pulse
// is only ever on for half the period at full volume.
func dutyCycle(volume int) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 7 {
		volume = 7
	}
	return (0.5 * float64(8-volume)) / 8
}
