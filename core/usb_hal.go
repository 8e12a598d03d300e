package core

import "usbuart/cdc"

// USBDevice is the abstract USB CDC device the bridge loop polls.
// Platform-specific implementations own enumeration, endpoint arming and
// packetization; the bridge only sees status flags and whole packets.
type USBDevice interface {
	// IsConfigurationChanged reports (and clears) a pending configuration event
	IsConfigurationChanged() bool

	// GetConfiguration reports whether the host has configured the device
	GetConfiguration() bool

	// CDCInit arms the CDC data endpoints for a new session
	CDCInit()

	// DataIsReady reports whether the bulk OUT endpoint holds host data
	DataIsReady() bool

	// ReadAll copies the received packet into buf, re-arms the OUT endpoint
	// and returns the byte count
	ReadAll(buf []byte) int

	// IsInReady reports whether the bulk IN endpoint can accept a packet
	IsInReady() bool

	// Send queues one bulk IN packet; an empty slice sends a zero-length packet
	Send(buf []byte)

	// IsLineChanged returns and clears the cdc.LineCodingChanged /
	// cdc.LineControlChanged flags
	IsLineChanged() uint8

	// RequestedBaud returns the baud rate of the last SET_LINE_CODING
	RequestedBaud() uint32

	// SupportsLineStatus reports whether IsLineChanged and RequestedBaud
	// carry real host requests on this platform
	SupportsLineStatus() bool
}

// LineReporter is implemented by USB devices that expose the full line
// coding and control line state for display.
type LineReporter interface {
	LineCoding() cdc.LineCoding
	LineControl() uint8
}
