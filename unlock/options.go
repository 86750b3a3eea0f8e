package unlock

// Config holds the sequencer configuration.
type Config struct {
	// Logger is used for logging step outcomes (optional)
	Logger Logger

	// OnStep is called after every issued step with its confirmation
	// result (optional)
	OnStep StepCallback
}

// Option is a functional option for configuring the Sequencer.
type Option func(*Config)

// WithLogger sets a logger for sequencer operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithStepCallback sets a callback invoked after each step is issued.
// Implementations should return quickly; the sequence blocks on them.
func WithStepCallback(callback StepCallback) Option {
	return func(c *Config) {
		c.OnStep = callback
	}
}

// StepCallback receives each executed step and whether its write was
// confirmed by the device.
type StepCallback func(step Step, confirmed bool)

// Logger is an optional logging interface, satisfied by the same adapters
// as device.Logger.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
}
