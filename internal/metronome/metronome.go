// Package metronome implements the 1ms auto-repeat driver: on every
// tick it picks the newest down key whose division is in
// ModeAutoRepeat and not auto-repeat-inhibited, and emits either its
// keycode or the METRONOME filler byte according to the repeat
// buffer's timeout/interval.
package metronome

import (
	"github.com/tsowell/lk201bridge/internal/keys"
	"github.com/tsowell/lk201bridge/internal/lk201"
)

// Sink is where the metronome writes LK201 wire bytes.
type Sink interface {
	WriteByte(b byte) (written int)
}

// Beeper is triggered whenever a byte is actually accepted onto the
// wire, same as internal/keyboard's collaborator.
type Beeper interface {
	SoundKeyclick()
}

// Metronome holds the auto-repeat driver's state across ticks.
type Metronome struct {
	tables   *lk201.Tables
	keysDown *keys.Set

	autoRepeatEnabled bool
	repeatingKeycode  uint8
	repeatingNextMS   int64
	resendPending     *bool
}

// New returns a Metronome sharing tables and keysDown with the rest of
// the bridge, and resend, the flag set by internal/keyboard whenever
// it emits a byte outside of a metronome tick.
func New(tables *lk201.Tables, keysDown *keys.Set, resend *bool) *Metronome {
	return &Metronome{tables: tables, keysDown: keysDown, autoRepeatEnabled: true, resendPending: resend}
}

// AutoRepeatEnable re-enables auto-repeat emission (the
// ENABLE_AUTO_REPEAT host command).
func (m *Metronome) AutoRepeatEnable() { m.autoRepeatEnabled = true }

// AutoRepeatDisable suppresses auto-repeat emission without otherwise
// disturbing the repeat state machine (the DISABLE_AUTO_REPEAT host
// command).
func (m *Metronome) AutoRepeatDisable() { m.autoRepeatEnabled = false }

// Tick runs one 1ms metronome event: find the auto-repeat candidate
// and, if its timing calls for it, emit a byte.
func (m *Metronome) Tick(nowMS int64, sink Sink, beeper Beeper) {
	repeating, division := m.candidate()

	if repeating == nil {
		m.repeatingKeycode = 0
		if m.resendPending != nil {
			*m.resendPending = false
		}
		return
	}

	if m.repeatingKeycode != repeating.Keycode {
		buf := m.tables.RepeatBuffer(m.tables.DivisionBuffer(division))
		if nowMS-repeating.PressedAtMS > int64(buf.TimeoutMS) {
			if repeating.Repeating && m.repeatingKeycode != 0 {
				m.emit(repeating.Keycode, sink, beeper)
			} else {
				m.emit(lk201.Metronome, sink, beeper)
			}
			m.repeatingKeycode = repeating.Keycode
			m.repeatingNextMS = nowMS + int64(buf.IntervalMS)
			if m.resendPending != nil {
				*m.resendPending = false
			}
			repeating.Repeating = true
		}
		return
	}

	if nowMS >= m.repeatingNextMS {
		buf := m.tables.RepeatBuffer(m.tables.DivisionBuffer(division))
		m.repeatingNextMS = nowMS + int64(buf.IntervalMS)
		if m.resendPending != nil && *m.resendPending {
			*m.resendPending = false
			m.emit(repeating.Keycode, sink, beeper)
		} else {
			m.emit(lk201.Metronome, sink, beeper)
		}
	}
}

// candidate returns the most recently pressed key eligible for
// auto-repeat, and the division it belongs to.
func (m *Metronome) candidate() (*keys.Down, lk201.Division) {
	var found *keys.Down
	var foundDiv lk201.Division

	m.keysDown.ForEach(func(d *keys.Down) bool {
		div, ok := lk201.DivisionFromKeycode(d.Keycode)
		if !ok || d.InhibitAutoRepeat {
			return true
		}
		if m.tables.DivisionMode(div) == lk201.ModeAutoRepeat {
			found = d
			foundDiv = div
			return false
		}
		return true
	})
	return found, foundDiv
}

func (m *Metronome) emit(b uint8, sink Sink, beeper Beeper) {
	if !m.autoRepeatEnabled {
		return
	}
	sent := sink.WriteByte(b)
	if sent > 0 && beeper != nil {
		beeper.SoundKeyclick()
	}
}
