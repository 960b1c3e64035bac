package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsowell/lk201bridge/internal/beeper"
	"github.com/tsowell/lk201bridge/internal/bridge"
	"github.com/tsowell/lk201bridge/internal/leds"
	applog "github.com/tsowell/lk201bridge/internal/log"
	"github.com/tsowell/lk201bridge/internal/serialio"
	"github.com/tsowell/lk201bridge/internal/statuslight"
)

// Run is called by Kong when the run command is executed (the
// default command; the bridge runs until interrupted).
func (r *RunCommand) Run(cli *CLI, logger *slog.Logger, rawLogger applog.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.start(ctx, cli, logger, rawLogger)
}

func (r *RunCommand) start(ctx context.Context, cli *CLI, logger *slog.Logger, rawLogger applog.RawLogger) error {
	logger.Info("opening serial device", "device", cli.Serial.Device, "baud", cli.Serial.Baud)

	port, err := serialio.Open(cli.Serial.Device, cli.Serial.Baud)
	if err != nil {
		return fmt.Errorf("failed to open serial device: %w", err)
	}
	defer port.Close()

	indicators := leds.New(noopLEDDriver{})
	bp := beeper.New(noopPWM{})

	br := bridge.New(port, indicators, bp, noopStrip{}, logger, rawLogger)
	br.PowerOn()

	go runMetronome(ctx, br)
	go readHostBytes(ctx, port, br, logger)

	logger.Info("bridge running")
	br.Run(ctx)
	logger.Info("bridge shut down")
	return nil
}

// runMetronome drives the bridge's 1ms auto-repeat tick.
func runMetronome(ctx context.Context, br *bridge.Bridge) {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			br.Tick(now)
		}
	}
}

// readHostBytes reads bytes as they arrive from the host UART and
// hands each one to the bridge for frame assembly.
func readHostBytes(ctx context.Context, port *serialio.Port, br *bridge.Bridge, logger *slog.Logger) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := port.Read(buf)
		if err != nil {
			logger.Error("serial read failed", "error", err)
			return
		}
		if n > 0 {
			br.SubmitHostByte(buf[0])
		}
	}
}

// noopLEDDriver, noopPWM, and noopStrip are placeholders until
// board-specific GPIO/PWM/addressable-LED backends are wired in; the
// bridge's core protocol logic does not depend on them actually
// driving hardware.
type noopLEDDriver struct{}

func (noopLEDDriver) Set(which leds.Indicator, on bool) {}

type noopPWM struct{}

func (noopPWM) SetDutyCycle(frac float64) {}

type noopStrip struct{}

func (noopStrip) SetAll(c statuslight.RGB) {}
