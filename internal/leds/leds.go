// Package leds drives the keyboard's four status indicators: Wait,
// Compose, Lock, and Hold Screen.
package leds

// Indicator identifies one of the four LK201 status LEDs.
type Indicator int

const (
	Wait Indicator = iota
	Compose
	Lock
	HoldScreen

	NumIndicators = 4
)

// Driver is the GPIO-level sink the Indicators value drives.
type Driver interface {
	Set(which Indicator, on bool)
}

// Indicators tracks and drives the four LED outputs.
type Indicators struct {
	driver Driver
	state  [NumIndicators]bool
}

// New returns an Indicators value driving driver, all indicators off.
func New(driver Driver) *Indicators {
	return &Indicators{driver: driver}
}

// Set turns indicator on or off.
func (i *Indicators) Set(which Indicator, on bool) {
	i.state[which] = on
	if i.driver != nil {
		i.driver.Set(which, on)
	}
}

// Get reports an indicator's last commanded state.
func (i *Indicators) Get(which Indicator) bool {
	return i.state[which]
}

// SetFromMask applies the LK201 LED command byte's low 4 bits in
// bit-per-indicator order, matching the wire command's layout.
func (i *Indicators) SetFromMask(mask uint8, on bool) {
	for which := Indicator(0); which < NumIndicators; which++ {
		if mask&(1<<uint(which)) != 0 {
			i.Set(which, on)
		}
	}
}
