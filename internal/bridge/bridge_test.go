package bridge_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tsowell/lk201bridge/internal/beeper"
	"github.com/tsowell/lk201bridge/internal/bridge"
	"github.com/tsowell/lk201bridge/internal/keyboard"
	"github.com/tsowell/lk201bridge/internal/leds"
	"github.com/tsowell/lk201bridge/internal/lk201"
	applog "github.com/tsowell/lk201bridge/internal/log"
	"github.com/tsowell/lk201bridge/internal/statuslight"
)

type fakeUART struct {
	mu      sync.Mutex
	written []byte
}

func (f *fakeUART) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakeUART) bytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]byte, len(f.written))
	copy(out, f.written)
	return out
}

type fakePWM struct{}

func (fakePWM) SetDutyCycle(float64) {}

type recordingRaw struct {
	mu    sync.Mutex
	calls []struct {
		in   bool
		data []byte
	}
}

func (r *recordingRaw) Log(in bool, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	r.calls = append(r.calls, struct {
		in   bool
		data []byte
	}{in, cp})
}

func (r *recordingRaw) snapshot() []struct {
	in   bool
	data []byte
} {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]struct {
		in   bool
		data []byte
	}, len(r.calls))
	copy(out, r.calls)
	return out
}

func newBridge(uart *fakeUART, raw applog.RawLogger) *bridge.Bridge {
	ind := leds.New(nil)
	bp := beeper.New(fakePWM{})
	return bridge.New(uart, ind, bp, nil, nil, raw)
}

func runUntilQuiescent(t *testing.T, b *bridge.Bridge) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)
	return cancel
}

func TestPowerOnWritesIDBytes(t *testing.T) {
	uart := &fakeUART{}
	b := newBridge(uart, nil)
	b.PowerOn()

	assert.Equal(t, []byte{lk201.KBIDFirmware, lk201.KBIDHardware, 0x00, 0x00}, uart.bytes())
}

func TestSubmitHIDReportEmitsKeycodeAndMirrorsRawLog(t *testing.T) {
	uart := &fakeUART{}
	raw := &recordingRaw{}
	b := newBridge(uart, raw)
	cancel := runUntilQuiescent(t, b)
	defer cancel()

	var report [keyboard.ReportSize]byte
	report[2] = 0x04 // HID usage for 'A'
	b.SubmitHIDReport(report, time.UnixMilli(0))

	assert.Eventually(t, func() bool {
		return len(uart.bytes()) > 0
	}, time.Second, time.Millisecond)

	assert.Equal(t, []byte{lk201.KeycodeFromHID(0x04)}, uart.bytes())

	calls := raw.snapshot()
	assert.NotEmpty(t, calls)
	assert.False(t, calls[0].in, "keyboard-to-host bytes mirror with in=false")
}

func TestSubmitHostByteAssemblesFrameAndDispatchesToInterpreter(t *testing.T) {
	uart := &fakeUART{}
	raw := &recordingRaw{}
	b := newBridge(uart, raw)
	cancel := runUntilQuiescent(t, b)
	defer cancel()

	// REQUEST_KEYBOARD_ID (0xAB) is a single-byte peripheral command.
	b.SubmitHostByte(0xAB)

	assert.Eventually(t, func() bool {
		return len(uart.bytes()) >= 2
	}, time.Second, time.Millisecond)

	assert.Equal(t, []byte{lk201.KBIDFirmware, lk201.KBIDHardware}, uart.bytes())

	calls := raw.snapshot()
	if assert.NotEmpty(t, calls) {
		assert.True(t, calls[0].in)
		assert.Equal(t, []byte{0xAB}, calls[0].data)
	}
}

func TestTickWithNoKeysDownEmitsNothing(t *testing.T) {
	uart := &fakeUART{}
	b := newBridge(uart, nil)
	cancel := runUntilQuiescent(t, b)
	defer cancel()

	b.Tick(time.UnixMilli(1000))

	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, uart.bytes())
}

func TestSetConnectionStateUpdatesStatus(t *testing.T) {
	uart := &fakeUART{}
	b := newBridge(uart, nil)

	assert.Equal(t, statuslight.Off, b.ConnectionState())

	b.SetConnectionState(statuslight.Scanning)
	assert.Equal(t, statuslight.Scanning, b.ConnectionState())

	b.SetConnectionState(statuslight.Paired)
	assert.Equal(t, statuslight.Paired, b.ConnectionState())
}

func TestHIDReportTransitionsStatusToActive(t *testing.T) {
	uart := &fakeUART{}
	b := newBridge(uart, nil)
	b.SetConnectionState(statuslight.Paired)
	cancel := runUntilQuiescent(t, b)
	defer cancel()

	var report [keyboard.ReportSize]byte
	report[2] = 0x04 // HID usage for 'A'
	b.SubmitHIDReport(report, time.UnixMilli(0))

	assert.Eventually(t, func() bool {
		return b.ConnectionState() == statuslight.Active
	}, time.Second, time.Millisecond)
}

func TestEventQueueDropsWhenFull(t *testing.T) {
	uart := &fakeUART{}
	b := newBridge(uart, nil)
	// Run is never started: the channel fills and further submissions
	// must not block the caller.
	for i := 0; i < bridge.QueueCapacity+8; i++ {
		b.SubmitHostByte(0xAB)
	}
}
