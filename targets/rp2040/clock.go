//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"usbuart/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// GetHardwareTime reads the low 32 bits of the 1MHz hardware timer
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// UpdateSystemTime feeds the core tick clock used for event timestamps
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
