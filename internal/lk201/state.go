package lk201

// RepeatBuffer holds the auto-repeat timing for one of the four
// selectable buffers.
type RepeatBuffer struct {
	// TimeoutMS is the delay after press before auto-repeat begins.
	TimeoutMS int
	// IntervalMS is the time between repeat events once started.
	IntervalMS int
}

// division holds the mutable per-division mode and repeat-buffer
// selection. Buffer is meaningful only when Mode == ModeAutoRepeat.
type division struct {
	Mode   Mode
	Buffer int
}

var defaultRepeatBuffers = [NumRepeatBuffers]RepeatBuffer{
	{TimeoutMS: 500, IntervalMS: 33},
	{TimeoutMS: 300, IntervalMS: 33},
	{TimeoutMS: 500, IntervalMS: 25},
	{TimeoutMS: 300, IntervalMS: 25},
}

var defaultDivisions = [NumDivisions]division{
	DivisionMainArray:         {Mode: ModeAutoRepeat, Buffer: 0},
	DivisionKeypad:            {Mode: ModeAutoRepeat, Buffer: 0},
	DivisionDelete:            {Mode: ModeAutoRepeat, Buffer: 1},
	DivisionReturnAndTab:      {Mode: ModeDownOnly},
	DivisionLockAndCompose:    {Mode: ModeDownOnly},
	DivisionShiftAndCtrl:      {Mode: ModeDownUp},
	DivisionHorizontalCursors: {Mode: ModeAutoRepeat, Buffer: 1},
	DivisionVerticalCursors:   {Mode: ModeAutoRepeat, Buffer: 1},
	DivisionSixEditingKeys:    {Mode: ModeDownUp},
	DivisionFunctionKeys1:     {Mode: ModeDownUp},
	DivisionFunctionKeys2:     {Mode: ModeDownUp},
	DivisionFunctionKeys3:     {Mode: ModeDownUp},
	DivisionFunctionKeys4:     {Mode: ModeDownUp},
	DivisionFunctionKeys5:     {Mode: ModeDownUp},
}

// DisabledVolume marks a beeper channel as silent.
const DisabledVolume = -1

// DefaultVolume is the keyclick/bell volume after power-on.
const DefaultVolume = 2

// Volumes holds the two beeper channel volumes, each DisabledVolume
// or 0 (loudest) through 7 (softest).
type Volumes struct {
	Keyclick    int
	Bell        int
	ClickOnCtrl bool
}

// Tables is the full set of mutable LK201 configuration state: the
// 14 divisions, the 4 repeat buffers, and the beeper volumes. It is
// reinitialized to defaults at boot and on REINSTATE_DEFAULTS /
// JUMP_TO_POWER_UP.
type Tables struct {
	divisions     [NumDivisions]division
	repeatBuffers [NumRepeatBuffers]RepeatBuffer
	Volumes       Volumes
}

// NewTables returns a Tables value initialized to documented defaults.
func NewTables() *Tables {
	t := &Tables{}
	t.ResetDefaults()
	return t
}

// ResetDefaults restores all divisions, repeat buffers and volumes to
// their documented defaults.
func (t *Tables) ResetDefaults() {
	t.divisions = defaultDivisions
	t.repeatBuffers = defaultRepeatBuffers
	t.Volumes = Volumes{Keyclick: DefaultVolume, Bell: DefaultVolume, ClickOnCtrl: true}
}

// DivisionMode returns the current mode of division d.
func (t *Tables) DivisionMode(d Division) Mode {
	return t.divisions[d].Mode
}

// DivisionBuffer returns the repeat buffer index currently assigned
// to division d (meaningful only in ModeAutoRepeat).
func (t *Tables) DivisionBuffer(d Division) int {
	return t.divisions[d].Buffer
}

// SetDivisionMode sets division d's mode, and when switching into
// ModeAutoRepeat, its repeat buffer index.
func (t *Tables) SetDivisionMode(d Division, mode Mode, buffer int) {
	t.divisions[d].Mode = mode
	if mode == ModeAutoRepeat {
		t.divisions[d].Buffer = buffer
	}
}

// ModeFromKeycode returns the mode of the division owning keycode,
// or ModeDownOnly/false if the keycode isn't classified.
func (t *Tables) ModeFromKeycode(keycode uint8) (Mode, bool) {
	d, ok := DivisionFromKeycode(keycode)
	if !ok {
		return ModeDownOnly, false
	}
	return t.DivisionMode(d), true
}

// RepeatBufferFromKeycode returns the repeat timing buffer in effect
// for keycode, assuming its division is in ModeAutoRepeat.
func (t *Tables) RepeatBufferFromKeycode(keycode uint8) RepeatBuffer {
	d, ok := DivisionFromKeycode(keycode)
	if !ok {
		return RepeatBuffer{}
	}
	return t.repeatBuffers[t.divisions[d].Buffer]
}

// RepeatBuffer returns buffer index idx (0-3).
func (t *Tables) RepeatBuffer(idx int) RepeatBuffer {
	return t.repeatBuffers[idx]
}

// SetRepeatBuffer overwrites the timing of repeat buffer idx.
func (t *Tables) SetRepeatBuffer(idx int, buf RepeatBuffer) {
	t.repeatBuffers[idx] = buf
}

// AllAutoRepeatToDownOnly switches every division currently in
// ModeAutoRepeat to ModeDownOnly (the 0xD9 host command).
func (t *Tables) AllAutoRepeatToDownOnly() {
	for i := range t.divisions {
		if t.divisions[i].Mode == ModeAutoRepeat {
			t.divisions[i].Mode = ModeDownOnly
		}
	}
}
