package hostcmd

import (
	"github.com/tsowell/lk201bridge/internal/beeper"
	"github.com/tsowell/lk201bridge/internal/keys"
	"github.com/tsowell/lk201bridge/internal/leds"
	"github.com/tsowell/lk201bridge/internal/lk201"
)

// Peripheral command bytes.
const (
	cmdResumeTransmission         = 0x8B
	cmdInhibitTransmission        = 0x89
	cmdLightLEDs                  = 0x13
	cmdTurnOffLEDs                = 0x11
	cmdDisableKeyclick            = 0x99
	cmdEnableKeyclickSetVolume    = 0x1B
	cmdDisableCtrlKeyclick        = 0xB9
	cmdEnableCtrlKeyclick         = 0xBB
	cmdSoundKeyclick              = 0x9F
	cmdDisableBell                = 0xA1
	cmdEnableBellSetVolume        = 0x23
	cmdSoundBell                  = 0xA7
	cmdTemporaryAutoRepeatInhibit = 0xC1
	cmdEnableAutoRepeat           = 0xE3
	cmdDisableAutoRepeat          = 0xE1
	cmdAllAutoRepeatToDownOnly    = 0xD9
	cmdRequestKeyboardID          = 0xAB
	cmdJumpToPowerUp              = 0xFD
	cmdJumpToTestMode             = 0xCB
	cmdReinstateDefaults          = 0xD3
	cmdTestModeJumpToPowerUp      = 0x80
)

// Sink is where the interpreter writes LK201 wire bytes and replies.
type Sink interface {
	WriteByte(b byte) (written int)
	Write(buf []byte) (n int)
}

// Port is the flow-control surface the interpreter drives for
// INHIBIT_TRANSMISSION/RESUME_TRANSMISSION.
type Port interface {
	Sink
	Lock()
	Unlock(outputError byte)
	Overflow() bool
	Flush()
}

// AutoRepeatControl is the metronome surface the interpreter drives.
type AutoRepeatControl interface {
	AutoRepeatEnable()
	AutoRepeatDisable()
}

// Interpreter parses assembled frames and mutates the shared LK201
// tables, keys-down set, and peripherals accordingly.
type Interpreter struct {
	tables    *lk201.Tables
	keysDown  *keys.Set
	port      Port
	leds      *leds.Indicators
	beeper    *beeper.Beeper
	metronome AutoRepeatControl
	resend    *bool
	testMode  bool
}

// New returns an Interpreter wired to the bridge's shared collaborators.
func New(tables *lk201.Tables, keysDown *keys.Set, port Port, ind *leds.Indicators, bp *beeper.Beeper, mr AutoRepeatControl, resend *bool) *Interpreter {
	return &Interpreter{tables: tables, keysDown: keysDown, port: port, leds: ind, beeper: bp, metronome: mr, resend: resend}
}

// PowerOnResult writes the four-byte power-on transmission:
// KBID_FIRMWARE, KBID_HARDWARE, ERROR, KEYCODE.
func (in *Interpreter) PowerOnResult() {
	in.port.Write([]byte{lk201.KBIDFirmware, lk201.KBIDHardware, 0x00, 0x00})
}

// TestMode reports whether the interpreter is currently in test mode.
func (in *Interpreter) TestMode() bool {
	return in.testMode
}

// Handle interprets one complete frame.
func (in *Interpreter) Handle(frame []byte) {
	if len(frame) == 0 {
		return
	}

	if in.testMode {
		if frame[0] == cmdTestModeJumpToPowerUp {
			in.testMode = false
			in.resetDefaults()
			in.PowerOnResult()
		}
		return
	}

	first := frame[0]
	if first&0x01 != 0 {
		in.handlePeripheral(frame)
	} else {
		in.handleTransmissionMode(frame)
	}
}

func (in *Interpreter) handlePeripheral(frame []byte) {
	first := frame[0]
	switch first {
	case cmdResumeTransmission:
		in.leds.Set(leds.Lock, false)
		in.port.Unlock(lk201.OutputError)
		in.resendKeysDown()
	case cmdInhibitTransmission:
		in.leds.Set(leds.Lock, true)
		in.port.WriteByte(lk201.KBDLockedAck)
		in.port.Flush()
		in.port.Lock()
	case cmdLightLEDs:
		if len(frame) != 2 {
			in.port.WriteByte(lk201.InputError)
			return
		}
		in.leds.SetFromMask(frame[1], true)
	case cmdTurnOffLEDs:
		if len(frame) != 2 {
			in.port.WriteByte(lk201.InputError)
			return
		}
		in.leds.SetFromMask(frame[1], false)
	case cmdDisableKeyclick:
		in.tables.Volumes.Keyclick = lk201.DisabledVolume
		in.beeper.SetKeyclickVolume(lk201.DisabledVolume)
	case cmdEnableKeyclickSetVolume:
		if len(frame) != 2 {
			in.port.WriteByte(lk201.InputError)
			return
		}
		v := int(frame[1] & 0x07)
		in.tables.Volumes.Keyclick = v
		in.beeper.SetKeyclickVolume(v)
	case cmdDisableCtrlKeyclick:
		in.tables.Volumes.ClickOnCtrl = false
	case cmdEnableCtrlKeyclick:
		in.tables.Volumes.ClickOnCtrl = true
	case cmdSoundKeyclick:
		in.beeper.SoundKeyclick()
	case cmdDisableBell:
		in.tables.Volumes.Bell = lk201.DisabledVolume
		in.beeper.SetBellVolume(lk201.DisabledVolume)
	case cmdEnableBellSetVolume:
		if len(frame) != 2 {
			in.port.WriteByte(lk201.InputError)
			return
		}
		v := int(frame[1] & 0x07)
		in.tables.Volumes.Bell = v
		in.beeper.SetBellVolume(v)
	case cmdSoundBell:
		in.beeper.SoundBell()
	case cmdTemporaryAutoRepeatInhibit:
		in.inhibitNewestAutoRepeat()
	case cmdEnableAutoRepeat:
		in.metronome.AutoRepeatEnable()
	case cmdDisableAutoRepeat:
		in.metronome.AutoRepeatDisable()
	case cmdAllAutoRepeatToDownOnly:
		in.tables.AllAutoRepeatToDownOnly()
	case cmdRequestKeyboardID:
		in.port.Write([]byte{lk201.KBIDFirmware, lk201.KBIDHardware})
	case cmdJumpToPowerUp:
		in.resetDefaults()
		in.PowerOnResult()
	case cmdJumpToTestMode:
		in.testMode = true
		in.port.WriteByte(lk201.TestModeAck)
	case cmdReinstateDefaults:
		in.resetDefaults()
	default:
		in.port.WriteByte(lk201.InputError)
	}
}

// resetDefaults restores the tables to their defaults and sets the
// beeper's channel volumes to match.
func (in *Interpreter) resetDefaults() {
	in.tables.ResetDefaults()
	in.beeper.SetKeyclickVolume(in.tables.Volumes.Keyclick)
	in.beeper.SetBellVolume(in.tables.Volumes.Bell)
}

// inhibitNewestAutoRepeat marks the current newest AUTO_REPEAT
// keys-down entry as inhibited (TEMPORARY_AUTO_REPEAT_INHIBIT).
func (in *Interpreter) inhibitNewestAutoRepeat() {
	in.keysDown.ForEach(func(d *keys.Down) bool {
		div, ok := lk201.DivisionFromKeycode(d.Keycode)
		if !ok {
			return true
		}
		if in.tables.DivisionMode(div) == lk201.ModeAutoRepeat {
			d.InhibitAutoRepeat = true
			return false
		}
		return true
	})
}

// resendKeysDown re-emits every keys_down entry with sent=false in
// reverse (newest-first) order, marking them sent, and signals resend
// (the RESUME_TRANSMISSION effect).
func (in *Interpreter) resendKeysDown() {
	var pending []*keys.Down
	in.keysDown.ForEach(func(d *keys.Down) bool {
		if !d.Sent {
			pending = append(pending, d)
		}
		return true
	})
	for _, d := range pending {
		sent := in.port.WriteByte(d.Keycode)
		d.Sent = sent > 0
	}
	if in.resend != nil {
		*in.resend = true
	}
}

// handleTransmissionMode decodes a 000DDDD-MM-0 division/mode update
// or, when D==15, a repeat-buffer timing update.
func (in *Interpreter) handleTransmissionMode(frame []byte) {
	first := frame[0]
	d := (first >> 3) & 0x0F
	mode := lk201.Mode((first >> 1) & 0x03)

	if d == 15 {
		if len(frame) != 3 {
			in.port.WriteByte(lk201.InputError)
			return
		}
		idx := int((first >> 1) & 0x03)
		timeoutMS := int(frame[1]&0x7F) * 5
		divisor := int(frame[2] & 0x7F)
		if divisor == 0 {
			in.port.WriteByte(lk201.InputError)
			return
		}
		intervalMS := 1000 / divisor
		in.tables.SetRepeatBuffer(idx, lk201.RepeatBuffer{TimeoutMS: timeoutMS, IntervalMS: intervalMS})
		in.port.WriteByte(lk201.ModeChangeAck)
		in.setResend()
		return
	}

	if d == 0 {
		in.port.WriteByte(lk201.InputError)
		return
	}

	division := lk201.Division(d - 1)
	buffer := 0
	if mode == lk201.ModeAutoRepeat && len(frame) >= 2 {
		buffer = int(frame[1] & 0x7F)
	}
	in.tables.SetDivisionMode(division, mode, buffer)
	in.port.WriteByte(lk201.ModeChangeAck)
	in.setResend()
}

func (in *Interpreter) setResend() {
	if in.resend != nil {
		*in.resend = true
	}
}
