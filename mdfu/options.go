package mdfu

import "context"

// Config holds the runner configuration.
type Config struct {
	// Resolve locates the transfer tool (optional; defaults to Resolve)
	Resolve func(ctx context.Context) Invocation

	// Verbosity is passed to the tool's -v flag
	Verbosity string

	// Logger receives the tool's output lines and runner messages (optional)
	Logger Logger
}

// defaultConfig returns the default configuration: the standard resolver
// chain and maximal diagnostic verbosity.
func defaultConfig() Config {
	return Config{
		Resolve:   Resolve,
		Verbosity: "debug",
	}
}

// Option is a functional option for configuring the Runner.
type Option func(*Config)

// WithLogger sets a logger for the runner and the relayed tool output.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithResolver replaces the executable resolution strategy.
func WithResolver(resolve func(ctx context.Context) Invocation) Option {
	return func(c *Config) {
		if resolve != nil {
			c.Resolve = resolve
		}
	}
}

// WithVerbosity sets the tool's -v level.
func WithVerbosity(level string) Option {
	return func(c *Config) {
		if level != "" {
			c.Verbosity = level
		}
	}
}

// Logger is an optional logging interface, satisfied by the same adapters
// as device.Logger.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
}
