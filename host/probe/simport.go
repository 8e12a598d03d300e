package probe

import (
	"usbuart/cdc"
	"usbuart/core"
	"usbuart/host/serial"
	"usbuart/sim"
)

var _ serial.Port = (*SimPort)(nil)

// stepsPerRead bounds how many bridge iterations one Read may run while
// waiting for data.
const stepsPerRead = 8

// SimPort is a serial port backed by the bridge loop running on simulated
// peripherals with the UART looped back, so a loopback probe passes without
// hardware.
type SimPort struct {
	Bridge *core.Bridge
	USB    *sim.USB
	UART   *sim.UART

	pending []byte
}

// NewSimPort starts a bridge at cfg.DefaultBaud and attaches the host.
func NewSimPort(cfg core.Config) (*SimPort, error) {
	usb := sim.NewUSB(nil)
	uart := sim.NewUART(nil)
	uart.Loopback = true

	b, err := core.NewBridge(cfg, usb, uart, sim.NewTimer(nil), nil)
	if err != nil {
		return nil, err
	}
	if err := b.Start(); err != nil {
		return nil, err
	}
	usb.Attach()

	return &SimPort{Bridge: b, USB: usb, UART: uart}, nil
}

// SetLineCoding sends SET_LINE_CODING to the simulated device.
func (p *SimPort) SetLineCoding(lc cdc.LineCoding) {
	var payload [cdc.LineCodingSize]byte
	lc.MarshalTo(payload[:])
	p.USB.Control(cdc.RequestSetLineCoding, 0, payload[:])
}

func (p *SimPort) Write(b []byte) (int, error) {
	p.USB.HostWrite(b)
	return len(b), nil
}

// Read steps the bridge until the device sends data or the step budget runs
// out, in which case it returns 0 bytes like a serial read timeout.
func (p *SimPort) Read(b []byte) (int, error) {
	for i := 0; i < stepsPerRead && len(p.pending) == 0; i++ {
		if err := p.Bridge.Step(); err != nil {
			return 0, err
		}
		p.pending = append(p.pending, p.USB.Received()...)
		p.USB.ClearPackets()
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *SimPort) Flush() error {
	p.pending = nil
	return nil
}

func (p *SimPort) Close() error {
	p.USB.Detach()
	return nil
}
