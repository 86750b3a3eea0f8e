// Package update orchestrates one firmware update attempt end to end.
//
// # Overview
//
// An Orchestrator coordinates three collaborators: the device controller
// (package device), the unlock sequencer (package unlock) and the external
// transfer tool (package mdfu). A fresh attempt walks the full path:
//
//	connecting → authenticating → transitioning_mode → awaiting_reset
//	→ channel_released → invoking_transfer → complete
//
// A retry attempt assumes the device is already bootloader-resident from a
// prior run and skips straight to the channel_released phase after a short
// settle delay, issuing zero register operations.
//
// # Channel Hand-off
//
// The serial port is handed from this process to the spawned transfer tool
// with no arbiter: the controller is closed and the orchestrator then waits
// PortReleaseDelay for the operating system to release the port. The delays
// are isolated behind named constants and options so they can be tuned or
// replaced with a real handshake without touching Run.
//
// # Failure Semantics
//
// Every failure terminates the attempt; there are no automatic retries at
// any layer. Retry is the operator re-running the whole attempt with the
// retry flag. Fatal faults are surfaced as errors from Run: *UsageError
// (missing image, before any device interaction), a wrapped connection
// error, *unlock.AuthenticationError, and *TransferError carrying the
// transfer tool's exit code.
package update
