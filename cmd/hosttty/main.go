// Command hosttty is an interactive debug harness standing in for the
// vintage host terminal: it puts the local tty into raw mode, sends
// every keystroke to the bridge's serial device as a host command
// byte, and prints every byte received back from the bridge as a hex
// dump annotated with any recognized LK201 special byte.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tsowell/lk201bridge/internal/lk201"
	"github.com/tsowell/lk201bridge/internal/serialio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <device> [baud]\n", os.Args[0])
		os.Exit(2)
	}
	device := os.Args[1]
	baud := 4800
	if len(os.Args) > 2 {
		fmt.Sscanf(os.Args[2], "%d", &baud)
	}

	port, err := serialio.Open(device, baud)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hosttty: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hosttty: failed to enter raw mode: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore(fd, oldState)

	errCh := make(chan error, 2)
	go copyStdinToPort(port, errCh)
	go copyPortToStdout(port, errCh)

	<-errCh
}

func copyStdinToPort(port *serialio.Port, errCh chan<- error) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n > 0 {
			if buf[0] == 0x03 { // Ctrl-C exits the harness.
				errCh <- nil
				return
			}
			_, _ = port.Write(buf[:n])
		}
	}
}

func copyPortToStdout(port *serialio.Port, errCh chan<- error) {
	buf := make([]byte, 1)
	for {
		n, err := port.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n > 0 {
			fmt.Fprintf(os.Stdout, "\r\n[0x%02X %s]\r\n", buf[0], specialName(buf[0]))
		}
	}
}

func specialName(b byte) string {
	switch b {
	case lk201.AllUps:
		return "ALL_UPS"
	case lk201.Metronome:
		return "METRONOME"
	case lk201.OutputError:
		return "OUTPUT_ERROR"
	case lk201.InputError:
		return "INPUT_ERROR"
	case lk201.KBDLockedAck:
		return "KBD_LOCKED_ACK"
	case lk201.TestModeAck:
		return "TEST_MODE_ACK"
	case lk201.PrefixToKeysDown:
		return "PREFIX_TO_KEYS_DOWN"
	case lk201.ModeChangeAck:
		return "MODE_CHANGE_ACK"
	default:
		return "key"
	}
}
