package lk201

// DivisionFromKeycode classifies an LK201 keycode into one of the 14
// divisions by range. Returns ok=false for keycodes outside
// 0x56-0xFF or inside an unassigned gap (e.g. 0xB3-0xBB, the
// reserved/special-code band).
func DivisionFromKeycode(keycode uint8) (Division, bool) {
	switch {
	case keycode >= 0x56 && keycode <= 0x62:
		return DivisionFunctionKeys1, true
	case keycode >= 0x63 && keycode <= 0x6E:
		return DivisionFunctionKeys2, true
	case keycode >= 0x6F && keycode <= 0x7A:
		return DivisionFunctionKeys3, true
	case keycode >= 0x7B && keycode <= 0x7D:
		return DivisionFunctionKeys4, true
	case keycode >= 0x7E && keycode <= 0x87:
		return DivisionFunctionKeys5, true
	case keycode >= 0x88 && keycode <= 0x90:
		return DivisionSixEditingKeys, true
	case keycode >= 0x91 && keycode <= 0xA5:
		return DivisionKeypad, true
	case keycode >= 0xA6 && keycode <= 0xA8:
		return DivisionHorizontalCursors, true
	case keycode >= 0xA9 && keycode <= 0xAC:
		return DivisionVerticalCursors, true
	case keycode >= 0xAD && keycode <= 0xAF:
		return DivisionShiftAndCtrl, true
	case keycode >= 0xB0 && keycode <= 0xB2:
		return DivisionLockAndCompose, true
	case keycode == 0xBC:
		return DivisionDelete, true
	case keycode >= 0xBD && keycode <= 0xBE:
		return DivisionReturnAndTab, true
	case keycode >= 0xBF && keycode <= 0xFF:
		return DivisionMainArray, true
	default:
		return 0, false
	}
}

// hidToLK201 is the 256-entry HID usage code to LK201 keycode
// translation table. Entries left at zero are unassigned HID usage
// codes; KeycodeFromHID reports them as 0x00, which the keyboard
// translator discards.
var hidToLK201 = [NumKeys]uint8{
	0x04: 0xC2, // A
	0x05: 0xC0, // B
	0x06: 0xC1, // C
	0x07: 0xD9, // D
	0x08: 0xC3, // E
	0x09: 0xC4, // F
	0x0A: 0xC5, // G
	0x0B: 0xC6, // H
	0x0C: 0xC7, // I
	0x0D: 0xC8, // J
	0x0E: 0xC9, // K
	0x0F: 0xCA, // L
	0x10: 0xCB, // M
	0x11: 0xCC, // N
	0x12: 0xCD, // O
	0x13: 0xCE, // P
	0x14: 0xCF, // Q
	0x15: 0xD0, // R
	0x16: 0xD1, // S
	0x17: 0xD2, // T
	0x18: 0xD3, // U
	0x19: 0xD4, // V
	0x1A: 0xD5, // W
	0x1B: 0xD6, // X
	0x1C: 0xD7, // Y
	0x1D: 0xD8, // Z
	0x1E: 0xBF, // 1
	0x1F: 0xDA, // 2
	0x20: 0xDB, // 3
	0x21: 0xDC, // 4
	0x22: 0xDD, // 5
	0x23: 0xDE, // 6
	0x24: 0xDF, // 7
	0x25: 0xE0, // 8
	0x26: 0xE1, // 9
	0x27: 0xE2, // 0
	0x28: 0xBD, // Enter (return+tab)
	0x29: 0xF0, // Escape
	0x2A: 0xBC, // Backspace -> Delete division
	0x2B: 0xBE, // Tab (return+tab)
	0x2C: 0xEF, // Space
	0x2D: 0xE3, // Minus
	0x2E: 0xE4, // Equal
	0x2F: 0xE5, // LeftBrace
	0x30: 0xE6, // RightBrace
	0x31: 0xE7, // Backslash
	0x32: 0xE8, // NonUSHash
	0x33: 0xE9, // Semicolon
	0x34: 0xEA, // Apostrophe
	0x35: 0xEB, // Grave
	0x36: 0xEC, // Comma
	0x37: 0xED, // Period
	0x38: 0xEE, // Slash
	0x39: 0xB0, // CapsLock -> Lock
	0x3A: 0x56, // F1
	0x3B: 0x57, // F2
	0x3C: 0x58, // F3
	0x3D: 0x59, // F4
	0x3E: 0x5A, // F5
	0x3F: 0x5B, // F6
	0x40: 0x5C, // F7
	0x41: 0x5D, // F8
	0x42: 0x5E, // F9
	0x43: 0x5F, // F10
	0x44: 0x60, // F11
	0x45: 0x61, // F12
	0x46: 0x8D, // PrintScreen
	0x47: 0x8E, // ScrollLock
	0x48: 0x8F, // Pause
	0x49: 0x88, // Insert
	0x4A: 0x89, // Home
	0x4B: 0x8A, // PageUp
	0x4D: 0x8B, // End
	0x4E: 0x8C, // PageDown
	0x4F: 0xA7, // Right
	0x50: 0xA6, // Left
	0x51: 0xAA, // Down
	0x52: 0xA9, // Up
	0x53: 0x91, // NumLock
	0x54: 0x92, // KpSlash
	0x55: 0x93, // KpAsterisk
	0x56: 0x94, // KpMinus
	0x57: 0x95, // KpPlus
	0x58: 0x96, // KpEnter
	0x59: 0x97, // Kp1
	0x5A: 0x98, // Kp2
	0x5B: 0x99, // Kp3
	0x5C: 0x9A, // Kp4
	0x5D: 0x9B, // Kp5
	0x5E: 0x9C, // Kp6
	0x5F: 0x9D, // Kp7
	0x60: 0x9E, // Kp8
	0x61: 0x9F, // Kp9
	0x62: 0xA0, // Kp0
	0x63: 0xA1, // KpDot
	0x64: 0xA2, // NonUSBackslash
	0x65: 0xA3, // Application
	0x66: 0x7C, // Power
	0x67: 0xA4, // KpEqual
	0x68: 0x63, // F13
	0x69: 0x64, // F14
	0x6A: 0x65, // F15
	0x6B: 0x66, // F16
	0x6C: 0x67, // F17
	0x6D: 0x68, // F18
	0x6E: 0x69, // F19
	0x6F: 0x6A, // F20
	0x70: 0x6B, // F21
	0x71: 0x6C, // F22
	0x72: 0x6D, // F23
	0x73: 0x6E, // F24
	0x74: 0x6F, // Execute
	0x75: 0x70, // Help
	0x76: 0x71, // Menu
	0x77: 0x72, // Select
	0x78: 0x73, // Stop
	0x79: 0x74, // Again
	0x7A: 0x75, // Undo
	0x7B: 0x76, // Cut
	0x7C: 0x77, // Copy
	0x7D: 0x78, // Paste
	0x7E: 0x90, // Find
	0x7F: 0x79, // Mute
	0x80: 0x7A, // VolumeUp
	0x81: 0x7B, // VolumeDown
	0xE8: 0x7D, // MediaPlayPause
	0xE9: 0x7E, // MediaStop
	0xEB: 0x7F, // MediaNext
	0xEC: 0x80, // MediaPrevious
}

// KeycodeFromHID maps an 8-bit HID usage code to its LK201 keycode,
// or 0x00 if the usage is unassigned.
func KeycodeFromHID(hid uint8) uint8 {
	return hidToLK201[hid]
}
