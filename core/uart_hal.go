package core

// UARTDevice is the physical UART the bridge forwards to.
type UARTDevice interface {
	// Start enables the transmitter and receiver
	Start()

	// Stop disables the UART; the clock divider may only change while stopped
	Stop()

	// SetClockDivider programs the UART clock source divider
	SetClockDivider(divider uint16)

	// RxPending returns the number of received bytes waiting in the RX buffer
	RxPending() uint16

	// GetByte pops one byte from the RX buffer
	GetByte() byte

	// WriteBurst queues all bytes for transmission
	WriteBurst(data []byte)
}
