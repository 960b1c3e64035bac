package serial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsowell/lk201bridge/internal/serial"
)

type fakeUART struct {
	written []byte
	flushed bool
}

func (f *fakeUART) Write(p []byte) (int, error) {
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakeUART) Flush() { f.flushed = true }

func TestUnlockedWritesPassThrough(t *testing.T) {
	uart := &fakeUART{}
	port := serial.New(uart)

	n := port.WriteByte(0x42)
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{0x42}, uart.written)
	assert.False(t, port.Locked())
}

func TestLockedBufferingAndOverflow(t *testing.T) {
	uart := &fakeUART{}
	port := serial.New(uart)

	port.Lock()
	assert.True(t, port.Locked())
	assert.False(t, port.Overflow())

	for i := 0; i < serial.BufferSize; i++ {
		n := port.WriteByte(byte(i))
		assert.Equal(t, 1, n, "byte %d must fit in the 4-byte buffer", i)
	}
	assert.Empty(t, uart.written, "no byte reaches the UART while locked")

	n := port.WriteByte(0xFF)
	assert.Equal(t, 0, n, "a 5th byte while locked must be dropped")
	assert.True(t, port.Overflow())
}

func TestUnlockFlushesBufferedBytesAndAppendsOutputErrorOnOverflow(t *testing.T) {
	uart := &fakeUART{}
	port := serial.New(uart)

	port.Lock()
	port.WriteByte(0x01)
	port.WriteByte(0x02)
	port.WriteByte(0x03)
	port.WriteByte(0x04)
	port.WriteByte(0x05) // overflow

	port.Unlock(0xEE)

	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0xEE}, uart.written)
	assert.False(t, port.Locked())
	assert.False(t, port.Overflow(), "overflow clears once flushed")
}

func TestLockClearsPriorOverflow(t *testing.T) {
	uart := &fakeUART{}
	port := serial.New(uart)

	port.Lock()
	for i := 0; i < serial.BufferSize+1; i++ {
		port.WriteByte(byte(i))
	}
	assert.True(t, port.Overflow())

	port.Unlock(0xEE)
	port.Lock()
	assert.False(t, port.Overflow(), "lock() clears overflow")
}

func TestFlushDelegatesToUART(t *testing.T) {
	uart := &fakeUART{}
	port := serial.New(uart)

	port.Flush()
	assert.True(t, uart.flushed)
}
