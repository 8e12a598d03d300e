//go:build rp2040

package pio

// PIO delay timer for the UART sampling window. The program itself lives
// in program.go; SetPeriod pushes a new period that the state machine picks
// up at the start of its next pass.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

const delayPIOOrigin = 0 // Jump targets are absolute

// DelayTimer implements core.DelayTimer on one PIO state machine.
type DelayTimer struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pin    machine.Pin
	tickHz uint32
	period uint32
	offset uint8
	loaded bool
}

// NewDelayTimer creates a timer on PIO pioNum (0 or 1), state machine
// smNum, counting at tickHz and strobing pin.
func NewDelayTimer(pioNum, smNum uint8, pin machine.Pin, tickHz uint32) *DelayTimer {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &DelayTimer{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		pin:    pin,
		tickHz: tickHz,
	}
}

// Init loads the program and configures the state machine, left disabled.
func (t *DelayTimer) Init() error {
	t.sm.TryClaim()

	program := delayProgram()
	offset, err := t.pio.AddProgram(program, delayPIOOrigin)
	if err != nil {
		return err
	}
	t.offset = offset

	t.pin.Configure(machine.PinConfig{Mode: t.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(t.pin, 1)
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+delayWrapAddr, offset)

	// Divide the system clock down to the tick rate, 8-bit fraction
	sys := machine.CPUFrequency()
	div := sys / t.tickHz
	frac := (sys % t.tickHz) * 256 / t.tickHz
	cfg.SetClkDivIntFrac(uint16(div), uint8(frac))

	t.sm.Init(offset, cfg)
	t.sm.SetPindirsConsecutive(t.pin, 1, true)
	t.sm.SetPinsConsecutive(t.pin, 1, false)
	t.loaded = true
	return nil
}

// SetPeriod queues a new period; it takes effect on the next pass.
func (t *DelayTimer) SetPeriod(period uint32) {
	t.period = period
	if !t.loaded {
		return
	}
	for t.sm.IsTxFIFOFull() {
	}
	t.sm.TxPut(period)
}

// Start restarts the countdown with the current period.
func (t *DelayTimer) Start() {
	if !t.loaded {
		return
	}
	t.sm.ClearFIFOs()
	t.sm.Restart()
	t.sm.TxPut(t.period)
	t.sm.SetEnabled(true)
}

// Stop halts the state machine and drives the strobe low.
func (t *DelayTimer) Stop() {
	if !t.loaded {
		return
	}
	t.sm.SetEnabled(false)
	t.sm.SetPinsConsecutive(t.pin, 1, false)
}
