//go:build rp2040

package main

import (
	"machine"
)

// hwUART adapts a PL011 UART to core.UARTDevice. The divider is applied
// against the bridge's effective clock and converted to a baud rate for
// the TinyGo driver, which programs the PL011 fractional divider itself.
// The PL011 keeps running while stopped; Stop gates the data path so
// nothing moves until Start has applied the new divider.
type hwUART struct {
	bus       *machine.UART
	effective uint32
	divider   uint16
	running   bool
}

// newHWUART configures the pins and the PL011 at baud, stopped.
func newHWUART(bus *machine.UART, tx, rx machine.Pin, effective, baud uint32) (*hwUART, error) {
	if err := bus.Configure(machine.UARTConfig{BaudRate: baud, TX: tx, RX: rx}); err != nil {
		return nil, err
	}
	div := effective / baud
	if div == 0 {
		div = 1
	}
	return &hwUART{bus: bus, effective: effective, divider: uint16(div)}, nil
}

func (u *hwUART) baud() uint32 {
	return u.effective / uint32(u.divider)
}

func (u *hwUART) Start() {
	u.bus.SetBaudRate(u.baud())
	u.running = true
}

func (u *hwUART) Stop() {
	u.running = false
}

func (u *hwUART) SetClockDivider(div uint16) {
	if div == 0 {
		div = 1
	}
	u.divider = div
}

func (u *hwUART) RxPending() uint16 {
	if !u.running {
		return 0
	}
	n := u.bus.Buffered()
	if n > 0xFFFF {
		n = 0xFFFF
	}
	return uint16(n)
}

func (u *hwUART) GetByte() byte {
	b, _ := u.bus.ReadByte()
	return b
}

func (u *hwUART) WriteBurst(p []byte) {
	if !u.running {
		return
	}
	u.bus.Write(p)
}
