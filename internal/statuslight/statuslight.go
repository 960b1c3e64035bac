// Package statuslight drives the bridge's own BLE-connection-status
// indicator: amber while scanning/advertising, blue while paired but
// not yet receiving reports, green once HID reports are flowing,
// black when the radio is off.
package statuslight

// State is one of the bridge's connection-status colors.
type State int

const (
	Off State = iota
	Scanning
	Paired
	Active
)

// RGB is a single pixel's 8-bit-per-channel color, matching
// led_rgb's r/g/b layout.
type RGB struct {
	R, G, B uint8
}

var colors = map[State]RGB{
	Off:      {0x00, 0x00, 0x00},
	Scanning: {0x03, 0x01, 0x00},
	Paired:   {0x00, 0x00, 0x04},
	Active:   {0x00, 0x04, 0x00},
}

// Strip is the addressable-LED sink the StatusLight drives.
type Strip interface {
	SetAll(c RGB)
}

// StatusLight tracks and drives the bridge's current connection-status
// color.
type StatusLight struct {
	strip   Strip
	current State
}

// New returns a StatusLight driving strip, initially Off.
func New(strip Strip) *StatusLight {
	return &StatusLight{strip: strip}
}

// Set transitions to state, pushing its color to the strip.
func (s *StatusLight) Set(state State) {
	s.current = state
	if s.strip != nil {
		s.strip.SetAll(colors[state])
	}
}

// State returns the current status.
func (s *StatusLight) State() State {
	return s.current
}
