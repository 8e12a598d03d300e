//go:build rp2040

package main

import (
	"machine"
)

// usbCDC adapts TinyGo's USB CDC serial to core.USBDevice.
// TinyGo enumerates and answers class requests itself, so the session is
// reported configured once and line coding changes are not visible.
type usbCDC struct {
	announced bool
}

// InitUSB configures machine.Serial, which is USB CDC on RP2040
func InitUSB() *usbCDC {
	machine.Serial.Configure(machine.UARTConfig{})
	return &usbCDC{}
}

func (u *usbCDC) IsConfigurationChanged() bool {
	if u.announced {
		return false
	}
	u.announced = true
	return true
}

func (u *usbCDC) GetConfiguration() bool { return true }

func (u *usbCDC) CDCInit() {}

func (u *usbCDC) DataIsReady() bool {
	return machine.Serial.Buffered() > 0
}

// ReadAll drains up to len(buf) bytes already received
func (u *usbCDC) ReadAll(buf []byte) int {
	n := 0
	for n < len(buf) && machine.Serial.Buffered() > 0 {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			break
		}
		buf[n] = b
		n++
	}
	return n
}

// IsInReady is always true; machine.Serial queues writes internally
func (u *usbCDC) IsInReady() bool { return true }

// Send writes a packet. The stack terminates full packets itself, so a
// zero-length send is a no-op.
func (u *usbCDC) Send(buf []byte) {
	if len(buf) == 0 {
		return
	}
	machine.Serial.Write(buf)
}

func (u *usbCDC) IsLineChanged() uint8 { return 0 }

func (u *usbCDC) RequestedBaud() uint32 { return 0 }

func (u *usbCDC) SupportsLineStatus() bool { return false }
