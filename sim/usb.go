package sim

import "usbuart/cdc"

// USB is a CDC-ACM device as seen by a scripted host.
//
// The host side is driven with Attach, Detach, HostWrite, SetLineCoding and
// SetControlLineState; what the device sent back is read with Packets and
// Received.
type USB struct {
	// LineStatus is reported by SupportsLineStatus.
	LineStatus bool

	// HoldIn keeps the IN endpoint busy until cleared.
	HoldIn bool

	// BusyAfterSend makes IsInReady report not ready for this many polls
	// after every Send.
	BusyAfterSend int

	trace         *Trace
	attached      bool
	configChanged bool
	out           [][]byte
	in            [][]byte
	busyPolls     int
	inPolls       int
	inits         int
	lineChanged   uint8
	lineCoding    cdc.LineCoding
	control       uint8
	breaks        int
}

// NewUSB creates a detached device with line status support and the default
// line coding.
func NewUSB(trace *Trace) *USB {
	return &USB{
		LineStatus: true,
		trace:      trace,
		lineCoding: cdc.DefaultLineCoding,
	}
}

// Attach simulates the host selecting a configuration.
func (u *USB) Attach() {
	u.attached = true
	u.configChanged = true
}

// Reconfigure simulates a repeated SET_CONFIGURATION while attached.
func (u *USB) Reconfigure() {
	u.configChanged = true
}

// Detach simulates the host tearing the session down. Queued host data is lost.
func (u *USB) Detach() {
	u.attached = false
	u.configChanged = true
	u.out = nil
}

// HostWrite queues data on the bulk OUT endpoint, split into packets of at
// most cdc.MaxPacketSize bytes. An empty write queues one zero-length packet.
func (u *USB) HostWrite(data []byte) {
	if len(data) == 0 {
		u.out = append(u.out, nil)
		return
	}
	for len(data) > 0 {
		n := len(data)
		if n > cdc.MaxPacketSize {
			n = cdc.MaxPacketSize
		}
		p := make([]byte, n)
		copy(p, data[:n])
		u.out = append(u.out, p)
		data = data[n:]
	}
}

// SetLineCoding delivers a SET_LINE_CODING payload. Returns false when the
// payload is malformed.
func (u *USB) SetLineCoding(payload []byte) bool {
	if !cdc.ParseLineCoding(payload, &u.lineCoding) {
		return false
	}
	u.lineChanged |= cdc.LineCodingChanged
	return true
}

// SetControlLineState delivers a SET_CONTROL_LINE_STATE request.
func (u *USB) SetControlLineState(value uint16) {
	u.control = uint8(value & (cdc.ControlDTR | cdc.ControlRTS))
	u.lineChanged |= cdc.LineControlChanged
}

// Control delivers a CDC class request on the control endpoint and returns
// the data stage for IN requests. ok is false when the device would stall.
func (u *USB) Control(request uint8, value uint16, data []byte) (reply []byte, ok bool) {
	switch request {
	case cdc.RequestSetLineCoding:
		return nil, u.SetLineCoding(data)
	case cdc.RequestGetLineCoding:
		reply = make([]byte, cdc.LineCodingSize)
		u.lineCoding.MarshalTo(reply)
		return reply, true
	case cdc.RequestSetControlLineState:
		u.SetControlLineState(value)
		return nil, true
	case cdc.RequestSendBreak:
		u.breaks++
		return nil, true
	}
	return nil, false
}

// Breaks returns how many SEND_BREAK requests arrived.
func (u *USB) Breaks() int {
	return u.breaks
}

// BusyFor makes the next n IsInReady polls report not ready.
func (u *USB) BusyFor(n int) {
	u.busyPolls = n
}

func (u *USB) IsConfigurationChanged() bool {
	changed := u.configChanged
	u.configChanged = false
	return changed
}

func (u *USB) GetConfiguration() bool {
	return u.attached
}

func (u *USB) CDCInit() {
	u.trace.Add("usb.cdcinit")
	u.inits++
}

func (u *USB) DataIsReady() bool {
	return len(u.out) > 0
}

func (u *USB) ReadAll(buf []byte) int {
	if len(u.out) == 0 {
		return 0
	}
	p := u.out[0]
	u.out = u.out[1:]
	return copy(buf, p)
}

func (u *USB) IsInReady() bool {
	u.inPolls++
	if u.HoldIn {
		return false
	}
	if u.busyPolls > 0 {
		u.busyPolls--
		return false
	}
	return true
}

func (u *USB) Send(buf []byte) {
	u.trace.Add("usb.send")
	p := make([]byte, len(buf))
	copy(p, buf)
	u.in = append(u.in, p)
	u.busyPolls = u.BusyAfterSend
}

func (u *USB) IsLineChanged() uint8 {
	changed := u.lineChanged
	u.lineChanged = 0
	return changed
}

func (u *USB) RequestedBaud() uint32 {
	return u.lineCoding.DTERate
}

func (u *USB) SupportsLineStatus() bool {
	return u.LineStatus
}

func (u *USB) LineCoding() cdc.LineCoding {
	return u.lineCoding
}

func (u *USB) LineControl() uint8 {
	return u.control
}

// Packets returns every IN packet in order, zero-length packets included.
func (u *USB) Packets() [][]byte {
	return u.in
}

// Received returns the concatenated IN data.
func (u *USB) Received() []byte {
	var out []byte
	for _, p := range u.in {
		out = append(out, p...)
	}
	return out
}

// ClearPackets forgets the IN packets seen so far.
func (u *USB) ClearPackets() {
	u.in = nil
}

// Inits returns how many CDC sessions the device initialized.
func (u *USB) Inits() int {
	return u.inits
}

// InPolls returns how many times IsInReady was called.
func (u *USB) InPolls() int {
	return u.inPolls
}
