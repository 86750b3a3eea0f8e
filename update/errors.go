package update

import "fmt"

// UsageError indicates invalid operator input, detected before any device
// interaction.
type UsageError struct {
	// Reason describes what was wrong with the input
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// TransferError indicates the external transfer process exited non-zero.
type TransferError struct {
	// ExitCode is the transfer process's exit status
	ExitCode int
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("firmware transfer failed: transfer tool exited with status %d", e.ExitCode)
}
