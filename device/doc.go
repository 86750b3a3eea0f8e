// Package device implements the Modbus register controller for the NTN
// dongle MCU.
//
// # Overview
//
// A Controller owns exactly one RTU session to one device address on one
// serial port. It exposes typed register reads and writes with uniform
// failure handling: every operation below the connection boundary soft-fails
// to a sentinel (false / not-ok) and is logged, so no transport fault ever
// crosses this layer as an error. The single exception is Open, which
// returns an error when the session cannot be established.
//
// # Basic Usage
//
//	ctrl, err := device.Open("/dev/ttyUSB0", 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctrl.Close()
//
//	if ok := ctrl.SetRegister(ctx, device.RegEngineeringMode, device.ModeSentinel); !ok {
//	    // write not confirmed
//	}
//
// # Read Semantics
//
// The dongle protocol treats an all-zero response as "no data". By default
// reads preserve that convention and report not-ok for all-zero values,
// which conflates a genuine zero reading with absence. Use WithZeroAsValid
// to distinguish the two, in which case only transport faults report
// not-ok. See the ReadRegister documentation.
//
// # Channel Exclusivity
//
// The serial port is a strictly exclusive resource. At most one open
// Controller may exist per port, and the port must be fully released with
// Close before any other process (notably the firmware transfer tool) opens
// it. Close is idempotent and never fails; closing problems are logged only.
package device
