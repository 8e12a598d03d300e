//go:build rp2040

package main

import (
	"machine"
)

// bootButton is an active-low update trigger with the internal pull-up.
type bootButton struct {
	pin machine.Pin
}

func newBootButton(pin machine.Pin) *bootButton {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &bootButton{pin: pin}
}

func (b *bootButton) PollTrigger() bool {
	return !b.pin.Get()
}

// Enter reboots into the ROM USB mass storage bootloader; it does not return.
func (b *bootButton) Enter() {
	machine.EnterBootloader()
}
