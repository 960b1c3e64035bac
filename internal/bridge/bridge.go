// Package bridge wires the LK201 tables, keys-down set, keyboard
// translator, metronome, host-command interpreter, and connection
// status light behind a single serialized event loop: three producers
// (HID reports, host bytes, metronome ticks) feed one consumer
// goroutine that owns all core state under a single mutex.
package bridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tsowell/lk201bridge/internal/beeper"
	"github.com/tsowell/lk201bridge/internal/hostcmd"
	"github.com/tsowell/lk201bridge/internal/keyboard"
	"github.com/tsowell/lk201bridge/internal/keys"
	"github.com/tsowell/lk201bridge/internal/leds"
	"github.com/tsowell/lk201bridge/internal/lk201"
	applog "github.com/tsowell/lk201bridge/internal/log"
	"github.com/tsowell/lk201bridge/internal/metronome"
	"github.com/tsowell/lk201bridge/internal/serial"
	"github.com/tsowell/lk201bridge/internal/statuslight"
)

// QueueCapacity is the minimum bounded event queue size.
const QueueCapacity = 32

// eventKind tags the three event sources multiplexed onto the loop.
type eventKind int

const (
	eventHIDReport eventKind = iota
	eventHostByte
	eventMetronomeTick
)

type event struct {
	kind   eventKind
	report [keyboard.ReportSize]byte
	b      byte
	nowMS  int64
}

// Bridge owns every piece of mutable core state and the single
// coarse-grained mutex guarding it, and serializes all three event
// sources onto one goroutine.
type Bridge struct {
	logger *slog.Logger
	raw    applog.RawLogger

	mu sync.Mutex

	tables     *lk201.Tables
	keysDown   *keys.Set
	port       *serial.Port
	translator *keyboard.Translator
	metro      *metronome.Metronome
	interp     *hostcmd.Interpreter
	assembler  hostcmd.Assembler
	indicators *leds.Indicators
	beep       *beeper.Beeper
	status     *statuslight.StatusLight

	resend bool

	events chan event
}

// New assembles a Bridge around uart, ready to run. strip drives the
// bridge's own connection-status indicator; nil is safe and leaves
// status tracking inert.
func New(uart serial.UART, indicators *leds.Indicators, bp *beeper.Beeper, strip statuslight.Strip, logger *slog.Logger, raw applog.RawLogger) *Bridge {
	tables := lk201.NewTables()
	keysDown := keys.NewSet()
	port := serial.New(uart)
	bp.SetKeyclickVolume(tables.Volumes.Keyclick)
	bp.SetBellVolume(tables.Volumes.Bell)

	br := &Bridge{
		logger:     logger,
		raw:        raw,
		tables:     tables,
		keysDown:   keysDown,
		port:       port,
		indicators: indicators,
		beep:       bp,
		status:     statuslight.New(strip),
		events:     make(chan event, QueueCapacity),
	}

	br.translator = keyboard.New(tables, keysDown, &br.resend)
	br.metro = metronome.New(tables, keysDown, &br.resend)
	br.interp = hostcmd.New(tables, keysDown, &rawPort{port, raw}, indicators, bp, br.metro, &br.resend)

	return br
}

// rawPort wraps serial.Port so every byte written to the host is also
// mirrored to the raw wire-byte dumper.
type rawPort struct {
	*serial.Port
	raw applog.RawLogger
}

func (p *rawPort) WriteByte(b byte) int {
	n := p.Port.WriteByte(b)
	if n > 0 && p.raw != nil {
		p.raw.Log(false, []byte{b})
	}
	return n
}

func (p *rawPort) Write(buf []byte) int {
	n := p.Port.Write(buf)
	if n > 0 && p.raw != nil {
		p.raw.Log(false, buf[:n])
	}
	return n
}

// PowerOn emits the four-byte power-on transmission, matching the
// boot-time sequence run before entering the receive loop.
func (b *Bridge) PowerOn() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.interp.PowerOnResult()
}

// SetConnectionState updates the bridge's connection-status color,
// called by the external BLE collaborator on scanning/paired/active
// transitions.
func (b *Bridge) SetConnectionState(state statuslight.State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.Set(state)
}

// ConnectionState returns the bridge's current connection-status
// color.
func (b *Bridge) ConnectionState() statuslight.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status.State()
}

// SubmitHIDReport enqueues one HID boot-protocol report (producer:
// the BLE stack). Non-blocking; drops the event on a full queue.
func (b *Bridge) SubmitHIDReport(report [keyboard.ReportSize]byte, now time.Time) {
	b.enqueue(event{kind: eventHIDReport, report: report, nowMS: now.UnixMilli()})
}

// SubmitHostByte enqueues one byte received from the host UART
// (producer: the UART receive interrupt).
func (b *Bridge) SubmitHostByte(c byte) {
	b.enqueue(event{kind: eventHostByte, b: c})
}

// Tick enqueues one metronome event (producer: a 1ms timer).
func (b *Bridge) Tick(now time.Time) {
	b.enqueue(event{kind: eventMetronomeTick, nowMS: now.UnixMilli()})
}

func (b *Bridge) enqueue(e event) {
	select {
	case b.events <- e:
	default:
		if b.logger != nil {
			b.logger.Log(context.Background(), applog.LevelTrace, "event queue full, dropping event", "kind", e.kind)
		}
	}
}

// Run drains the event queue until ctx is canceled, dispatching every
// event under the Bridge's single mutex.
func (b *Bridge) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-b.events:
			b.dispatch(e)
		}
	}
}

func (b *Bridge) dispatch(e event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch e.kind {
	case eventHIDReport:
		if b.status.State() != statuslight.Active {
			b.status.Set(statuslight.Active)
		}
		b.translator.HandleReport(e.report, e.nowMS, &rawPort{b.port, b.raw}, b.beep)
	case eventHostByte:
		if b.raw != nil {
			b.raw.Log(true, []byte{e.b})
		}
		if frame, complete := b.assembler.Feed(e.b); complete {
			b.interp.Handle(frame)
		}
	case eventMetronomeTick:
		b.metro.Tick(e.nowMS, &rawPort{b.port, b.raw}, b.beep)
	}
}
