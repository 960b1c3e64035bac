// Package keyboard translates 8-byte HID boot-protocol keyboard
// reports into LK201 keycode edges, maintaining the keys-currently-
// down set and emitting down/up codes per each key's division mode.
package keyboard

import (
	"github.com/tsowell/lk201bridge/internal/keys"
	"github.com/tsowell/lk201bridge/internal/lk201"
)

// ReportSize is the fixed HID boot-protocol keyboard report length.
const ReportSize = 8

// firstKeySlot is the index of the first of the six simultaneous
// HID usage code slots in a report.
const firstKeySlot = 2

// modifier bit positions within report byte 0.
const (
	bitLCtrl  = 0
	bitLShift = 1
	bitRCtrl  = 4
	bitRShift = 5
)

// Sink is where the translator writes LK201 wire bytes. It mirrors
// the shared flow-controlled UART (internal/serial.Port) used
// throughout the bridge; kept as a narrow interface here so the
// translator can be tested against a fake.
type Sink interface {
	WriteByte(b byte) (written int)
}

// Beeper is the local-only keyclick collaborator, triggered only
// when a byte was actually accepted onto the wire.
type Beeper interface {
	SoundKeyclick()
}

// Translator holds the per-translator state: the cached last report
// and the keys-currently-down set.
type Translator struct {
	tables     *lk201.Tables
	keysDown   *keys.Set
	lastReport [ReportSize]byte

	// resendPending is set whenever this translator emits a byte, so
	// the metronome knows to resend the repeating keycode instead of
	// METRONOME on its next tick.
	resendPending *bool
}

// New returns a Translator sharing tables and keysDown with the rest
// of the bridge, and resend, the shared "another code was just
// emitted" flag consulted by the metronome.
func New(tables *lk201.Tables, keysDown *keys.Set, resend *bool) *Translator {
	return &Translator{tables: tables, keysDown: keysDown, resendPending: resend}
}

// LastReport returns a copy of the most recently processed HID
// report.
func (t *Translator) LastReport() [ReportSize]byte {
	return t.lastReport
}

// HandleReport processes one 8-byte HID report, writing LK201
// keycodes to sink and triggering keyclicks via beeper. nowMS is the
// press timestamp recorded for any newly-down keys.
func (t *Translator) HandleReport(report [ReportSize]byte, nowMS int64, sink Sink, beeper Beeper) {
	var queuedUps []uint8

	thisMods, lastMods := report[0], t.lastReport[0]

	// Modifiers are processed before key slots, so a Shift+letter
	// press within the same report produces Shift-down then
	// letter-down.
	for _, m := range [...]struct {
		bit  uint8
		code uint8
	}{
		{bitLCtrl, lk201.Ctrl},
		{bitLShift, lk201.Shift},
		{bitRCtrl, lk201.Ctrl},
		{bitRShift, lk201.Shift},
	} {
		mask := uint8(1) << m.bit
		if thisMods&mask != 0 && lastMods&mask == 0 {
			t.keyDown(m.code, nowMS, sink, beeper)
		}
		if lastMods&mask != 0 && thisMods&mask == 0 {
			t.keyUp(m.code, &queuedUps)
		}
	}

	for i := firstKeySlot; i < ReportSize; i++ {
		if report[i] != 0x00 && !inReport(report[i], t.lastReport[:]) {
			code := lk201.KeycodeFromHID(report[i])
			t.keyDown(code, nowMS, sink, beeper)
		}
		if t.lastReport[i] != 0x00 && !inReport(t.lastReport[i], report[:]) {
			code := lk201.KeycodeFromHID(t.lastReport[i])
			t.keyUp(code, &queuedUps)
		}
	}

	t.lastReport = report

	t.sendQueuedUps(queuedUps, sink)
}

func inReport(keycode uint8, report []byte) bool {
	for _, k := range report[firstKeySlot:] {
		if k == keycode {
			return true
		}
	}
	return false
}

func (t *Translator) keyDown(keycode uint8, nowMS int64, sink Sink, beeper Beeper) {
	if keycode == 0x00 {
		return
	}
	entry, ok := t.keysDown.Push(keycode, nowMS)
	if !ok {
		// Capacity exhausted or duplicate; nothing to transmit.
		return
	}
	sent := sink.WriteByte(keycode)
	entry.Sent = sent > 0
	if sent > 0 && beeper != nil {
		_, ctrlDown := t.keysDown.Find(lk201.Ctrl)
		if !ctrlDown || t.tables.Volumes.ClickOnCtrl {
			beeper.SoundKeyclick()
		}
	}
	t.setResend()
}

func (t *Translator) keyUp(keycode uint8, queuedUps *[]uint8) {
	if keycode == 0x00 {
		return
	}
	t.keysDown.Remove(keycode)

	mode, ok := t.tables.ModeFromKeycode(keycode)
	if !ok {
		return
	}
	if mode == lk201.ModeDownUp {
		*queuedUps = append(*queuedUps, keycode)
	}
}

// sendQueuedUps handles end-of-report emission: if no DOWN_UP keys
// remain down, send ALL_UPS once; otherwise replay each queued
// up-code in reverse (LIFO) order.
func (t *Translator) sendQueuedUps(queuedUps []uint8, sink Sink) {
	if len(queuedUps) == 0 {
		return
	}

	otherDownUp := false
	t.keysDown.ForEach(func(d *keys.Down) bool {
		mode, ok := t.tables.ModeFromKeycode(d.Keycode)
		if ok && mode == lk201.ModeDownUp {
			otherDownUp = true
			return false
		}
		return true
	})

	if !otherDownUp {
		sink.WriteByte(lk201.AllUps)
		t.setResend()
		return
	}

	for i := len(queuedUps) - 1; i >= 0; i-- {
		sink.WriteByte(queuedUps[i])
		t.setResend()
	}
}

func (t *Translator) setResend() {
	if t.resendPending != nil {
		*t.resendPending = true
	}
}
