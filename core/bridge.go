package core

import (
	"context"
	"errors"
	"fmt"

	"usbuart/cdc"
)

// Bridge shuttles bytes between a USB CDC device and a UART.
// It is driven from a single thread of control: call Step (or Run) from the
// firmware main loop and nowhere else.
type Bridge struct {
	cfg     Config
	usb     USBDevice
	uart    UARTDevice
	timer   DelayTimer
	boot    Bootloader
	display LineDisplay

	// Staging buffer, owned by the current iteration only
	buf cdc.TransferBuffer

	divider Divider
	stats   Stats
	events  EventRing
}

// NewBridge creates a bridge over the given peripherals.
// boot may be nil when the board has no update trigger.
func NewBridge(cfg Config, usb USBDevice, uart UARTDevice, timer DelayTimer, boot Bootloader) (*Bridge, error) {
	switch {
	case usb == nil:
		return nil, fmt.Errorf("%w: usb", ErrMissingPeripheral)
	case uart == nil:
		return nil, fmt.Errorf("%w: uart", ErrMissingPeripheral)
	case timer == nil:
		return nil, fmt.Errorf("%w: delay timer", ErrMissingPeripheral)
	}
	return &Bridge{
		cfg:   cfg,
		usb:   usb,
		uart:  uart,
		timer: timer,
		boot:  boot,
	}, nil
}

// SetLineDisplay attaches a display for line settings readout.
func (b *Bridge) SetLineDisplay(d LineDisplay) {
	b.display = d
}

// Start brings up the UART and delay timer at the configured default baud.
func (b *Bridge) Start() error {
	_, err := b.ApplyBaudRate(b.cfg.DefaultBaud)
	return err
}

// ApplyBaudRate computes the divider for baud and commits it.
// Invalid rates are rejected before any peripheral is touched. Otherwise
// the UART stays stopped until both the timer period and the divider are
// in place.
func (b *Bridge) ApplyBaudRate(baud uint32) (Divider, error) {
	div, err := ComputeDivider(b.cfg.BusClockHz, b.cfg.Prescale, baud)
	if err != nil {
		return Divider{}, err
	}

	b.uart.Stop()
	b.timer.Stop()
	b.timer.SetPeriod(div.TimerPeriod)
	b.timer.Start()
	b.uart.SetClockDivider(div.Value)
	b.uart.Start()

	b.divider = div
	b.stats.BaudChanges++
	b.events.Record(EvtBaudChange, baud, uint32(div.Value))
	if IsDebugEnabled() {
		DebugPrintln("[BRIDGE] baud=" + utoa(baud) + " divider=" + utoa(uint32(div.Value)) +
			" period=" + utoa(div.TimerPeriod))
	}
	return div, nil
}

// Step runs one iteration of the bridge loop.
func (b *Bridge) Step() error {
	b.stats.Iterations++

	if b.boot != nil && b.boot.PollTrigger() {
		b.events.Record(EvtBootloader, 0, 0)
		DebugPrintln("[BRIDGE] entering bootloader")
		b.boot.Enter()
		return ErrBootloader
	}

	// Host can send a double SET_INTERFACE; only a fresh configuration
	// event initializes the session.
	if b.usb.IsConfigurationChanged() && b.usb.GetConfiguration() {
		b.usb.CDCInit()
		b.stats.Sessions++
		b.events.Record(EvtSession, b.stats.Sessions, 0)
	}
	if !b.usb.GetConfiguration() {
		return nil
	}

	if err := b.hostToUART(); err != nil {
		return err
	}
	if err := b.uartToHost(); err != nil {
		return err
	}
	return b.serviceLineState()
}

// Run calls Step until ctx is done or the bootloader takes over.
// Iteration errors are counted and logged, never fatal.
// ctx is checked between iterations only. With ReadyPolls 0 a readiness
// wait on a stalled host never returns, so cancellation takes effect only
// once the endpoint frees up; set ReadyPolls for a bounded wait.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := b.Step(); err != nil {
			if errors.Is(err, ErrBootloader) {
				return err
			}
			b.stats.Errors++
			DebugPrintln("[BRIDGE] " + err.Error())
		}
	}
}

// hostToUART forwards one received OUT packet to the UART transmitter.
func (b *Bridge) hostToUART() error {
	if !b.usb.DataIsReady() {
		return nil
	}

	b.buf.Reset()
	b.buf.Commit(b.usb.ReadAll(b.buf.Space()))
	n := b.buf.Len()
	if n == 0 {
		return nil
	}

	if err := b.waitInReady(); err != nil {
		b.stats.Dropped += uint32(n)
		return fmt.Errorf("host to uart, %d bytes dropped: %w", n, err)
	}
	b.uart.WriteBurst(b.buf.Bytes())
	b.stats.HostToUART += uint64(n)
	b.events.Record(EvtHostRx, uint32(n), 0)
	return nil
}

// uartToHost sends up to one packet of pending UART data, terminated by a
// zero-length packet when it fills the endpoint exactly.
func (b *Bridge) uartToHost() error {
	count := int(b.uart.RxPending())
	if count > cdc.MaxPacketSize {
		count = cdc.MaxPacketSize
	}
	if !b.usb.IsInReady() || count == 0 {
		return nil
	}

	b.buf.Reset()
	for i := 0; i < count; i++ {
		b.buf.Append(b.uart.GetByte())
	}
	b.usb.Send(b.buf.Bytes())
	b.stats.UARTToHost += uint64(count)
	b.stats.Packets++
	b.events.Record(EvtPacket, uint32(count), 0)

	if !cdc.NeedsZLP(count) {
		return nil
	}
	if err := b.waitInReady(); err != nil {
		return fmt.Errorf("zero-length packet: %w", err)
	}
	b.usb.Send(nil)
	b.stats.ZLPs++
	b.events.Record(EvtZLP, 0, 0)
	return nil
}

// serviceLineState applies host line coding changes on platforms that
// report them.
func (b *Bridge) serviceLineState() error {
	if !b.usb.SupportsLineStatus() {
		return nil
	}
	state := b.usb.IsLineChanged()

	var err error
	if state&cdc.LineCodingChanged != 0 {
		if _, err = b.ApplyBaudRate(b.usb.RequestedBaud()); err != nil {
			err = fmt.Errorf("line coding: %w", err)
		}
		b.showLineCoding()
	}
	if state&cdc.LineControlChanged != 0 {
		b.showLineControl()
	}
	return err
}

func (b *Bridge) showLineCoding() {
	if b.display == nil {
		return
	}
	if r, ok := b.usb.(LineReporter); ok {
		b.display.ShowLine(0, LineCodingText(r.LineCoding()))
		return
	}
	b.display.ShowLine(0, "BR:"+utoa(b.usb.RequestedBaud()))
}

func (b *Bridge) showLineControl() {
	if b.display == nil {
		return
	}
	if r, ok := b.usb.(LineReporter); ok {
		b.display.ShowLine(1, LineControlText(r.LineControl()))
	}
}

// waitInReady spins until the bulk IN endpoint is ready, giving up after
// cfg.ReadyPolls failed polls when that is nonzero.
func (b *Bridge) waitInReady() error {
	var failed uint32
	for !b.usb.IsInReady() {
		failed++
		if b.cfg.ReadyPolls != 0 && failed >= b.cfg.ReadyPolls {
			b.stats.Stalls++
			b.events.Record(EvtStall, failed, 0)
			return ErrPeripheralBusy
		}
	}
	return nil
}

// Divider returns the divider last committed by ApplyBaudRate.
func (b *Bridge) Divider() Divider {
	return b.divider
}

// Stats returns a snapshot of the bridge counters.
func (b *Bridge) Stats() Stats {
	return b.stats
}

// Events returns the event ring.
func (b *Bridge) Events() *EventRing {
	return &b.events
}
