package device

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/grid-x/modbus"
)

// RegisterBus is the subset of the Modbus client used by the controller.
// The client returned by modbus.NewClient satisfies it; tests substitute a
// simulated bus.
type RegisterBus interface {
	// ReadInputRegisters reads quantity contiguous input registers starting
	// at address and returns their big-endian byte representation.
	ReadInputRegisters(ctx context.Context, address, quantity uint16) ([]byte, error)

	// WriteSingleRegister writes one holding register.
	WriteSingleRegister(ctx context.Context, address, value uint16) ([]byte, error)

	// WriteMultipleRegisters writes a contiguous block of holding registers
	// from their big-endian byte representation.
	WriteMultipleRegisters(ctx context.Context, address, quantity uint16, value []byte) ([]byte, error)
}

// Controller is one exclusive register session with a single device address.
// Create it with Open (real hardware) or NewController (existing bus).
type Controller struct {
	bus    RegisterBus
	closer io.Closer
	config Config
}

// Open establishes an RTU session to the device with Modbus ID slaveID on
// the given serial port. This is the one fatal failure point of the
// controller: an error here means the attempt cannot proceed.
//
// Example:
//
//	ctrl, err := device.Open("/dev/ttyUSB0", 1,
//	    device.WithBaudRate(115200),
//	    device.WithLogger(myLogger),
//	)
func Open(port string, slaveID byte, opts ...Option) (*Controller, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	handler := modbus.NewRTUClientHandler(port)
	handler.BaudRate = cfg.BaudRate
	handler.DataBits = cfg.DataBits
	handler.Parity = cfg.Parity
	handler.StopBits = cfg.StopBits
	handler.SlaveID = slaveID
	handler.Timeout = cfg.Timeout

	if err := handler.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("open %s (slave %d): %w", port, slaveID, err)
	}

	c := &Controller{
		bus:    modbus.NewClient(handler),
		closer: handler,
		config: cfg,
	}
	c.logInfo("dongle connection established", "port", port, "slave_id", slaveID)
	return c, nil
}

// NewController wraps an existing register bus. If the bus also implements
// io.Closer, Close releases it.
func NewController(bus RegisterBus, opts ...Option) *Controller {
	if bus == nil {
		panic("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller{bus: bus, config: cfg}
	if closer, ok := bus.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// ReadRegister reads a single input register. The second return value is
// false when the transport fails or, unless WithZeroAsValid is set, when the
// returned value is exactly zero — the dongle protocol uses zero to mean "no
// data", so a genuine zero reading is indistinguishable from absence in the
// default mode. This is a known protocol limitation, not a transport fault.
func (c *Controller) ReadRegister(ctx context.Context, addr uint16) (uint16, bool) {
	values, ok := c.ReadRegisters(ctx, addr, 1)
	if !ok {
		return 0, false
	}
	return values[0], true
}

// ReadRegisters reads count contiguous input registers starting at addr.
// Returns not-ok when the transport fails or, unless WithZeroAsValid is set,
// when every returned value is zero.
func (c *Controller) ReadRegisters(ctx context.Context, addr, count uint16) ([]uint16, bool) {
	raw, err := c.bus.ReadInputRegisters(ctx, addr, count)
	if err != nil {
		c.logInfo("register read failed", "addr", hex16(addr), "count", count, "err", err.Error())
		return nil, false
	}
	if len(raw) < int(count)*2 {
		c.logInfo("register read short response", "addr", hex16(addr), "count", count, "bytes", len(raw))
		return nil, false
	}

	values := make([]uint16, count)
	allZero := true
	for i := range values {
		values[i] = binary.BigEndian.Uint16(raw[2*i:])
		if values[i] != 0 {
			allZero = false
		}
	}

	if allZero && !c.config.ZeroAsValid {
		c.logInfo("register read returned no data", "addr", hex16(addr), "count", count)
		return nil, false
	}
	c.logInfo("registers read", "addr", hex16(addr), "count", count)
	return values, true
}

// SetRegister writes a single holding register. Returns true only when the
// write was confirmed by the device; any transport fault is logged and
// reported as false.
func (c *Controller) SetRegister(ctx context.Context, addr, value uint16) bool {
	if _, err := c.bus.WriteSingleRegister(ctx, addr, value); err != nil {
		c.logInfo("register write failed", "addr", hex16(addr), "value", hex16(value), "err", err.Error())
		return false
	}
	c.logInfo("register written", "addr", hex16(addr), "value", hex16(value))
	return true
}

// SetRegisters writes a contiguous block of holding registers. An empty or
// nil values slice is a deliberate no-op: nothing touches the bus and the
// write reports false rather than silently succeeding.
func (c *Controller) SetRegisters(ctx context.Context, addr uint16, values []uint16) bool {
	if len(values) == 0 {
		c.logInfo("register write skipped: no values", "addr", hex16(addr))
		return false
	}

	buf := make([]byte, 2*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint16(buf[2*i:], v)
	}

	if _, err := c.bus.WriteMultipleRegisters(ctx, addr, uint16(len(values)), buf); err != nil {
		c.logInfo("register block write failed", "addr", hex16(addr), "count", len(values), "err", err.Error())
		return false
	}
	c.logInfo("register block written", "addr", hex16(addr), "count", len(values))
	return true
}

// Close releases the serial channel. It is idempotent and never fails:
// closing problems are logged and swallowed so the caller can always treat
// the channel as released afterwards.
func (c *Controller) Close() {
	if c.closer == nil {
		return
	}
	if err := c.closer.Close(); err != nil {
		c.logError("close connection", "err", err.Error())
	} else {
		c.logInfo("dongle connection closed")
	}
	c.closer = nil
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}

// logInfo logs an info message if a logger is configured.
func (c *Controller) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Controller) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
