// Package serialio implements internal/serial.UART against a real
// POSIX tty device, configured 8-N-1 at the LK201's conventional 4800
// baud.
package serialio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Port is a real UART device opened in raw mode.
type Port struct {
	f *os.File
}

// Open opens path (e.g. "/dev/ttyUSB0") and configures it for raw
// 8-N-1 operation at baud.
func Open(path string, baud int) (*Port, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("serialio: open %s: %w", path, err)
	}

	if err := configure(int(f.Fd()), baud); err != nil {
		f.Close()
		return nil, fmt.Errorf("serialio: configure %s: %w", path, err)
	}

	return &Port{f: f}, nil
}

// Write implements internal/serial.UART, blocking until all of p is
// written to the device.
func (p *Port) Write(b []byte) (int, error) {
	return p.f.Write(b)
}

// Read reads up to len(b) bytes from the device, blocking for at
// least one byte.
func (p *Port) Read(b []byte) (int, error) {
	return p.f.Read(b)
}

// Flush blocks until all queued output has been transmitted
// (tcdrain: TCSBRK with a non-zero argument).
func (p *Port) Flush() {
	_ = unix.IoctlSetInt(int(p.f.Fd()), unix.TCSBRK, 1)
}

// Close releases the underlying file descriptor.
func (p *Port) Close() error {
	return p.f.Close()
}

func configure(fd, baud int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}

	rate, ok := baudConstant(baud)
	if !ok {
		return fmt.Errorf("unsupported baud rate %d", baud)
	}

	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	t.Ispeed = rate
	t.Ospeed = rate

	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}

func baudConstant(baud int) (uint32, bool) {
	switch baud {
	case 1200:
		return unix.B1200, true
	case 2400:
		return unix.B2400, true
	case 4800:
		return unix.B4800, true
	case 9600:
		return unix.B9600, true
	case 19200:
		return unix.B19200, true
	case 38400:
		return unix.B38400, true
	default:
		return 0, false
	}
}
