package core

import "errors"

var (
	// ErrInvalidBaudRate indicates a zero baud rate or one whose divider does
	// not fit the UART clock divider register.
	ErrInvalidBaudRate = errors.New("invalid baud rate")

	// ErrInvalidClock indicates a zero prescale or an effective clock of zero.
	ErrInvalidClock = errors.New("invalid clock parameters")

	// ErrPeripheralBusy indicates a readiness wait exhausted its poll budget.
	ErrPeripheralBusy = errors.New("peripheral busy")

	// ErrBootloader is returned once control was handed to the bootloader.
	// Only simulated bootloaders return from Enter.
	ErrBootloader = errors.New("bootloader entered")

	// ErrMissingPeripheral indicates a required collaborator was nil.
	ErrMissingPeripheral = errors.New("missing peripheral")
)
