package device

// Register map of the NTN dongle MCU. Addresses are protocol constants; the
// device does not advertise them.
const (
	// RegPassword is the base address of the password block
	// (PasswordWords registers, write-multiple)
	RegPassword uint16 = 0x0000

	// RegEngineeringMode enables engineering mode when written with
	// ModeSentinel (write-single)
	RegEngineeringMode uint16 = 0xFFD0

	// RegBootloaderMode enables bootloader mode when written with
	// ModeSentinel (write-single). Requires engineering mode.
	RegBootloaderMode uint16 = 0xD000

	// RegReset triggers an MCU reset when written with ModeSentinel
	// (write-single). After the reset the device leaves this channel.
	RegReset uint16 = 0xFD00
)

// PasswordWords is the length of the password block in registers.
const PasswordWords = 4

// ModeSentinel is the magic value that triggers a mode transition when
// written to one of the mode registers.
const ModeSentinel uint16 = 0xAA55
