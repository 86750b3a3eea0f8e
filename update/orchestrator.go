package update

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-ntnfw/device"
	"github.com/moffa90/go-ntnfw/mdfu"
	"github.com/moffa90/go-ntnfw/unlock"
)

// Timing and channel constants of one update attempt.
const (
	// ResetSettleDelay is how long to wait after the reset write before
	// treating the device as having left this channel.
	ResetSettleDelay = 1 * time.Second

	// PortReleaseDelay is how long to wait after closing the connection for
	// the operating system to fully release the serial port before another
	// process opens it. This delay is the only synchronization between the
	// two port holders.
	PortReleaseDelay = 500 * time.Millisecond

	// TransferBaudRate is the fixed baud rate handed to the transfer tool.
	TransferBaudRate = 115200
)

// Attempt is one operator-requested firmware update.
type Attempt struct {
	// Image is the firmware image file path (required)
	Image string

	// Port is the serial channel, e.g. "/dev/ttyUSB0"
	Port string

	// DeviceID is the Modbus address of the dongle (1..247)
	DeviceID byte

	// Retry skips the unlock sequence on the assumption the device is
	// already in bootloader mode from a prior aborted run
	Retry bool
}

// Device is the controller surface the orchestrator needs during unlock.
// Satisfied by *device.Controller.
type Device interface {
	unlock.Writer
	Close()
}

// Dialer establishes the register session for a fresh attempt.
type Dialer func(ctx context.Context) (Device, error)

// TransferRunner invokes the external image-transfer tool and returns its
// exit status. Satisfied by *mdfu.Runner.
type TransferRunner interface {
	Run(ctx context.Context, port string, baud int, image string) (int, error)
}

// Orchestrator drives one update attempt through its state machine.
type Orchestrator struct {
	attempt Attempt
	config  Config
}

// New creates an Orchestrator for the given attempt. Without options it
// dials real hardware via the device package and invokes the transfer tool
// via the mdfu package.
func New(attempt Attempt, opts ...Option) *Orchestrator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &Orchestrator{attempt: attempt, config: cfg}
	if o.config.Dial == nil {
		o.config.Dial = o.dialController
	}
	if o.config.Transfer == nil {
		o.config.Transfer = mdfu.NewRunner(mdfu.WithLogger(cfg.Logger))
	}
	return o
}

// Run executes the attempt and blocks until it terminates in success (nil)
// or failure. The attempt fails with *UsageError before any device
// interaction when the image path is empty; see the package documentation
// for the remaining error taxonomy.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.attempt.Image == "" {
		return &UsageError{Reason: "missing firmware image file path"}
	}

	if o.attempt.Retry {
		o.logInfo("retry mode: skipping unlock, device should already be in bootloader mode")
		o.sleep(o.config.ReleaseSettle)
		o.report(PhaseChannelReleased)
	} else {
		if err := o.unlockDevice(ctx); err != nil {
			return err
		}
	}

	o.report(PhaseInvokingTransfer)
	code, err := o.config.Transfer.Run(ctx, o.attempt.Port, o.config.BaudRate, o.attempt.Image)
	if err != nil {
		return fmt.Errorf("invoke transfer tool: %w", err)
	}
	if code != 0 {
		return &TransferError{ExitCode: code}
	}

	o.report(PhaseComplete)
	o.logInfo("firmware update complete", "image", o.attempt.Image)
	return nil
}

// unlockDevice runs the fresh-attempt path up to the released channel:
// connect, unlock sequence, reset settle, close, port-release settle.
func (o *Orchestrator) unlockDevice(ctx context.Context) error {
	o.report(PhaseConnecting)
	dev, err := o.config.Dial(ctx)
	if err != nil {
		return fmt.Errorf("connect device %d on %s: %w", o.attempt.DeviceID, o.attempt.Port, err)
	}

	o.report(PhaseAuthenticating)
	seq := unlock.New(dev,
		unlock.WithLogger(o.config.Logger),
		unlock.WithStepCallback(func(step unlock.Step, confirmed bool) {
			if step.Policy == unlock.Gating && confirmed {
				o.report(PhaseTransitioningMode)
			}
		}),
	)
	if err := seq.Run(ctx); err != nil {
		// No rollback is possible over this protocol; the device stays in
		// whatever state the failed write produced. Still release the port.
		dev.Close()
		return err
	}

	o.report(PhaseAwaitingReset)
	o.sleep(o.config.ResetSettle)

	dev.Close()
	o.sleep(o.config.ReleaseSettle)
	o.report(PhaseChannelReleased)
	return nil
}

// dialController is the default Dialer: one RTU session to the attempt's
// port and device address.
func (o *Orchestrator) dialController(ctx context.Context) (Device, error) {
	ctrl, err := device.Open(o.attempt.Port, o.attempt.DeviceID,
		device.WithBaudRate(o.config.BaudRate),
		device.WithLogger(o.config.Logger),
	)
	if err != nil {
		return nil, err
	}
	return ctrl, nil
}

func (o *Orchestrator) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// report calls the progress callback if configured.
func (o *Orchestrator) report(phase string) {
	if o.config.Progress != nil {
		o.config.Progress(Progress{Phase: phase, Retry: o.attempt.Retry})
	}
}

// logInfo logs an info message if a logger is configured.
func (o *Orchestrator) logInfo(msg string, keysAndValues ...interface{}) {
	if o.config.Logger != nil {
		o.config.Logger.Info(msg, keysAndValues...)
	}
}
