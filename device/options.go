package device

import "time"

// Config holds the controller configuration.
type Config struct {
	// BaudRate of the serial channel
	BaudRate int

	// DataBits per character
	DataBits int

	// Parity is "N", "E" or "O"
	Parity string

	// StopBits per character
	StopBits int

	// Timeout is the response timeout for every register operation
	Timeout time.Duration

	// Logger is used for logging operations (optional)
	Logger Logger

	// ZeroAsValid disables the legacy zero-means-no-data read convention
	ZeroAsValid bool
}

// defaultConfig returns the default configuration: 115200 8N1 with a one
// second response timeout, matching the dongle's fixed transfer settings.
func defaultConfig() Config {
	return Config{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   "N",
		StopBits: 1,
		Timeout:  time.Second,
	}
}

// Option is a functional option for configuring the Controller.
type Option func(*Config)

// WithBaudRate sets the serial baud rate.
func WithBaudRate(baud int) Option {
	return func(c *Config) {
		if baud > 0 {
			c.BaudRate = baud
		}
	}
}

// WithTimeout sets the response timeout for register operations.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithFraming sets the serial frame parameters.
//
// Example:
//
//	ctrl, err := device.Open(port, id, device.WithFraming(8, "N", 1))
func WithFraming(dataBits int, parity string, stopBits int) Option {
	return func(c *Config) {
		c.DataBits = dataBits
		c.Parity = parity
		c.StopBits = stopBits
	}
}

// WithLogger sets a logger for controller operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithZeroAsValid makes reads treat an all-zero response as a genuine
// reading instead of "no data". With this option only transport faults
// report not-ok. The default preserves the deployed device convention.
func WithZeroAsValid() Option {
	return func(c *Config) {
		c.ZeroAsValid = true
	}
}

// Logger is an optional logging interface. This allows integration with any
// logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
