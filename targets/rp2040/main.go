//go:build rp2040

package main

import (
	"errors"
	"machine"
	"time"

	"usbuart/cdc"
	"usbuart/core"
	"usbuart/targets/pio"
)

// Board wiring
const (
	bootPin  = machine.GP15 // Active-low update button
	delayPin = machine.GP2  // Delay timer strobe
	lcdE     = machine.GP10
	lcdRS    = machine.GP11

	// Set to false on boards without the status LCD
	lineStatusLCD = true
)

var lcdData = []machine.Pin{machine.GP6, machine.GP7, machine.GP8, machine.GP9}

var (
	// Debug counters
	stepErrors uint32
	panics     uint32
)

// boardConfig runs the bridge off a 48MHz reference divided by 4, which
// keeps 300 baud within the 16-bit divider and 921600 under 0.2% error.
func boardConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.BusClockHz = 48000000
	cfg.Prescale = 4
	cfg.DefaultBaud = 115200
	return cfg
}

func main() {
	// Clear any watchdog state left by a previous reset
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})

	cfg := boardConfig()

	// UART and delay timer come up before USB
	uart, err := newHWUART(machine.UART0, machine.UART0_TX_PIN, machine.UART0_RX_PIN,
		cfg.BusClockHz/cfg.Prescale, cfg.DefaultBaud)
	if err != nil {
		fault()
	}
	timer := pio.NewDelayTimer(0, 0, delayPin, cfg.BusClockHz)
	if err := timer.Init(); err != nil {
		fault()
	}

	usb := InitUSB()
	bridge, err := core.NewBridge(cfg, usb, uart, timer, newBootButton(bootPin))
	if err != nil {
		fault()
	}
	if err := bridge.Start(); err != nil {
		fault()
	}

	if lineStatusLCD {
		if lcd, err := newLineLCD(lcdData, lcdE, lcdRS); err == nil {
			lcd.ShowLine(0, core.LineCodingText(cdc.LineCoding{DTERate: cfg.DefaultBaud, DataBits: 8}))
			bridge.SetLineDisplay(lcd)
		}
	}

	for {
		// Recover from panics in the loop to keep the bridge alive
		func() {
			defer func() {
				if r := recover(); r != nil {
					panics++
				}
			}()

			UpdateSystemTime()
			if err := bridge.Step(); err != nil {
				if errors.Is(err, core.ErrBootloader) {
					// EnterBootloader returned; fall back to a watchdog reset
					reset()
				}
				stepErrors++
			}
		}()
	}
}

// reset reboots through the watchdog
func reset() {
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1})
	machine.Watchdog.Start()
	for {
		time.Sleep(1 * time.Millisecond)
	}
}

// fault blinks the LED forever on a bring-up failure
func fault() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
