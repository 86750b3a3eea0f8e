package unlock

import "fmt"

// AuthenticationError indicates that a gating unlock step was not confirmed
// by the device. The dongle protocol has no distinct wrong-password signal,
// only reachable/unreachable, so this covers both.
type AuthenticationError struct {
	// Step is the name of the step that failed
	Step string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %q not confirmed by device", e.Step)
}
