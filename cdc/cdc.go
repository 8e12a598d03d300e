// Package cdc holds the USB CDC-ACM transport constants and wire types shared
// by the bridge firmware and its host tools.
package cdc

// MaxPacketSize is the maximum packet size of the bulk IN and OUT endpoints.
// It sizes the transfer buffer and decides when a zero-length packet is due.
const MaxPacketSize = 64

// Line state change flags reported by the USB device.
const (
	LineCodingChanged  = 0x01 // SET_LINE_CODING received
	LineControlChanged = 0x02 // SET_CONTROL_LINE_STATE received
)

// Control line state bits (SET_CONTROL_LINE_STATE wValue).
const (
	ControlDTR = 1 << 0 // Data Terminal Ready
	ControlRTS = 1 << 1 // Request To Send
)

// Class requests handled by the ACM control interface.
const (
	RequestSetLineCoding       = 0x20
	RequestGetLineCoding       = 0x21
	RequestSetControlLineState = 0x22
	RequestSendBreak           = 0x23
)

// NeedsZLP reports whether a bulk IN packet of n bytes must be followed by a
// zero-length packet. Only a packet of exactly MaxPacketSize qualifies.
func NeedsZLP(n int) bool {
	return n == MaxPacketSize
}
