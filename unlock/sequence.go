package unlock

import (
	"context"
	"fmt"

	"github.com/moffa90/go-ntnfw/device"
)

// Writer is the register-write surface of the device controller used by the
// sequencer. Satisfied by *device.Controller.
type Writer interface {
	SetRegister(ctx context.Context, addr, value uint16) bool
	SetRegisters(ctx context.Context, addr uint16, values []uint16) bool
}

// Policy states how a step's write outcome is treated.
type Policy int

const (
	// Gating steps must confirm; a failed gating step aborts the whole
	// sequence before any later step is issued.
	Gating Policy = iota

	// BestEffort steps are issued and their outcome logged, but they never
	// abort the sequence. Once the device is authenticated it is about to
	// reset and drop off this channel, so confirmations past that point
	// cannot be relied on.
	BestEffort
)

// Step is one write in the unlock sequence.
type Step struct {
	// Name identifies the step in logs and errors
	Name string

	// Register is the target register address
	Register uint16

	// Values is the write payload; one value issues a single-register
	// write, more than one a block write
	Values []uint16

	// Policy is Gating or BestEffort
	Policy Policy
}

// Steps returns the unlock sequence in its required execution order:
// password-clear, engineering-mode, bootloader-mode, reset. Skipping or
// reordering steps leaves the device un-flashable or in an unintended mode.
func Steps() []Step {
	return []Step{
		{
			Name:     "clear password",
			Register: device.RegPassword,
			Values:   []uint16{0, 0, 0, 0},
			Policy:   Gating,
		},
		{
			Name:     "enable engineering mode",
			Register: device.RegEngineeringMode,
			Values:   []uint16{device.ModeSentinel},
			Policy:   BestEffort,
		},
		{
			Name:     "enable bootloader mode",
			Register: device.RegBootloaderMode,
			Values:   []uint16{device.ModeSentinel},
			Policy:   BestEffort,
		},
		{
			Name:     "reset mcu",
			Register: device.RegReset,
			Values:   []uint16{device.ModeSentinel},
			Policy:   BestEffort,
		},
	}
}

// Sequencer runs the unlock sequence against one device controller.
type Sequencer struct {
	dev    Writer
	config Config
}

// New creates a Sequencer for the given device controller.
func New(dev Writer, opts ...Option) *Sequencer {
	if dev == nil {
		panic("dev cannot be nil")
	}

	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Sequencer{dev: dev, config: cfg}
}

// Run executes the unlock steps strictly in order. It returns an
// *AuthenticationError when a gating step is not confirmed, in which case no
// later step has been issued and the device is left in whatever state the
// failed write produced. Best-effort outcomes are logged only.
//
// The caller owns the post-sequence settling: after Run returns nil the
// device resets itself, and the channel must be closed and released before
// anything else opens it.
func (s *Sequencer) Run(ctx context.Context) error {
	for _, step := range Steps() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		confirmed := s.write(ctx, step)
		s.reportStep(step, confirmed)

		if step.Policy == Gating && !confirmed {
			return &AuthenticationError{Step: step.Name}
		}
		s.logInfo("unlock step issued", "step", step.Name, "confirmed", confirmed)
	}
	return nil
}

// write dispatches a step to the matching controller operation.
func (s *Sequencer) write(ctx context.Context, step Step) bool {
	if len(step.Values) == 1 {
		return s.dev.SetRegister(ctx, step.Register, step.Values[0])
	}
	return s.dev.SetRegisters(ctx, step.Register, step.Values)
}

func (s *Sequencer) reportStep(step Step, confirmed bool) {
	if s.config.OnStep != nil {
		s.config.OnStep(step, confirmed)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Sequencer) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}
