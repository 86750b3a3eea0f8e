// Package unlock executes the fixed register-write sequence that moves the
// NTN dongle from normal operation into bootloader mode: clear the password
// block, enable engineering mode, enable bootloader mode, trigger a reset.
// Step order is a hard device contract; only the password-clear step gates
// the sequence, the remaining writes are best-effort because the device is
// about to reset and vanish from the channel.
package unlock
