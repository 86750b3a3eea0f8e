package update

// Phase names reported through ProgressCallback, in fresh-attempt order.
// Retry attempts start at PhaseChannelReleased.
const (
	PhaseConnecting        = "connecting"
	PhaseAuthenticating    = "authenticating"
	PhaseTransitioningMode = "transitioning_mode"
	PhaseAwaitingReset     = "awaiting_reset"
	PhaseChannelReleased   = "channel_released"
	PhaseInvokingTransfer  = "invoking_transfer"
	PhaseComplete          = "complete"
)

// Progress describes the state the attempt has reached.
type Progress struct {
	// Phase is one of the Phase constants
	Phase string

	// Retry reports whether this is a retry attempt
	Retry bool
}

// ProgressCallback is called as the attempt moves between phases.
// Implementations should return quickly; the attempt blocks on them.
type ProgressCallback func(Progress)

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
