package update

import "time"

// Config holds the orchestrator configuration.
type Config struct {
	// BaudRate for both the register session and the transfer tool
	BaudRate int

	// ResetSettle is the wait after the reset write
	ResetSettle time.Duration

	// ReleaseSettle is the wait after closing the connection
	ReleaseSettle time.Duration

	// Dial establishes the register session (optional; defaults to real
	// hardware via the device package)
	Dial Dialer

	// Transfer invokes the image-transfer tool (optional; defaults to the
	// mdfu runner)
	Transfer TransferRunner

	// Logger is used for logging the attempt (optional)
	Logger Logger

	// Progress is called on every phase change (optional)
	Progress ProgressCallback
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		BaudRate:      TransferBaudRate,
		ResetSettle:   ResetSettleDelay,
		ReleaseSettle: PortReleaseDelay,
	}
}

// Option is a functional option for configuring the Orchestrator.
type Option func(*Config)

// WithLogger sets a logger for the attempt.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithProgressCallback sets a callback invoked on every phase change.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.Progress = callback
	}
}

// WithDialer replaces how the register session is established. Used by
// tests and by callers with their own transport.
func WithDialer(dial Dialer) Option {
	return func(c *Config) {
		c.Dial = dial
	}
}

// WithTransferRunner replaces the transfer-tool invoker.
func WithTransferRunner(runner TransferRunner) Option {
	return func(c *Config) {
		c.Transfer = runner
	}
}

// WithResetSettleDelay overrides the wait after the reset write.
func WithResetSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.ResetSettle = d
		}
	}
}

// WithPortReleaseDelay overrides the wait for the OS to release the port.
func WithPortReleaseDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.ReleaseSettle = d
		}
	}
}

// WithBaudRate overrides the serial baud rate.
func WithBaudRate(baud int) Option {
	return func(c *Config) {
		if baud > 0 {
			c.BaudRate = baud
		}
	}
}
