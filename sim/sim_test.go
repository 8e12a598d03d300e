package sim

import (
	"bytes"
	"testing"

	"usbuart/cdc"
)

func TestFifoWrap(t *testing.T) {
	f := NewFifo(8)
	if n := f.Write([]byte("abcdefghij")); n != 7 {
		t.Fatalf("Expected 7 bytes written to an 8-slot fifo, got %d", n)
	}
	if f.Free() != 0 {
		t.Errorf("Expected full fifo, free=%d", f.Free())
	}

	var out [4]byte
	f.Read(out[:])
	f.Write([]byte("xyz"))
	if f.Available() != 6 {
		t.Fatalf("Expected 6 available, got %d", f.Available())
	}

	var rest []byte
	for f.Available() > 0 {
		rest = append(rest, f.Pop())
	}
	if string(rest) != "efgxyz" {
		t.Errorf("Expected efgxyz, got %q", rest)
	}
	if f.Pop() != 0 {
		t.Error("Pop on empty fifo should return 0")
	}
}

func TestUSBHostWriteSplitsPackets(t *testing.T) {
	u := NewUSB(nil)
	u.HostWrite(bytes.Repeat([]byte{0xAA}, 2*cdc.MaxPacketSize+1))

	var sizes []int
	var buf [cdc.MaxPacketSize]byte
	for u.DataIsReady() {
		sizes = append(sizes, u.ReadAll(buf[:]))
	}
	if len(sizes) != 3 || sizes[0] != 64 || sizes[1] != 64 || sizes[2] != 1 {
		t.Errorf("Expected packets [64 64 1], got %v", sizes)
	}
}

func TestUSBConfigurationEvents(t *testing.T) {
	u := NewUSB(nil)
	if u.IsConfigurationChanged() || u.GetConfiguration() {
		t.Fatal("New device should be unconfigured with no pending event")
	}

	u.Attach()
	if !u.IsConfigurationChanged() {
		t.Error("Attach should raise a configuration event")
	}
	if u.IsConfigurationChanged() {
		t.Error("Configuration event should clear after being read")
	}
	if !u.GetConfiguration() {
		t.Error("Attached device should be configured")
	}

	u.Detach()
	if !u.IsConfigurationChanged() || u.GetConfiguration() {
		t.Error("Detach should raise an event and unconfigure")
	}
}

func TestUSBLineCoding(t *testing.T) {
	u := NewUSB(nil)
	if u.SetLineCoding([]byte{1, 2, 3}) {
		t.Error("Short payload accepted")
	}

	lc := cdc.LineCoding{DTERate: 9600, DataBits: 8}
	var payload [cdc.LineCodingSize]byte
	lc.MarshalTo(payload[:])
	if !u.SetLineCoding(payload[:]) {
		t.Fatal("Valid payload rejected")
	}
	u.SetControlLineState(cdc.ControlDTR | 0x80)

	state := u.IsLineChanged()
	if state != cdc.LineCodingChanged|cdc.LineControlChanged {
		t.Errorf("Expected both change flags, got 0x%02x", state)
	}
	if u.IsLineChanged() != 0 {
		t.Error("Change flags should clear after being read")
	}
	if u.RequestedBaud() != 9600 {
		t.Errorf("Expected 9600, got %d", u.RequestedBaud())
	}
	if u.LineControl() != cdc.ControlDTR {
		t.Errorf("Expected DTR only, got 0x%02x", u.LineControl())
	}
}

func TestUARTLoopback(t *testing.T) {
	u := NewUART(nil)
	u.Loopback = true
	u.WriteBurst([]byte("ping"))

	if u.RxPending() != 4 {
		t.Fatalf("Expected 4 pending, got %d", u.RxPending())
	}
	var got []byte
	for u.RxPending() > 0 {
		got = append(got, u.GetByte())
	}
	if string(got) != "ping" || string(u.Transmitted()) != "ping" {
		t.Errorf("Loopback mismatch: rx=%q tx=%q", got, u.Transmitted())
	}
}

func TestUSBControlRequests(t *testing.T) {
	u := NewUSB(nil)

	lc := cdc.LineCoding{DTERate: 57600, CharFormat: cdc.StopBits2, ParityType: cdc.ParityEven, DataBits: 7}
	var payload [cdc.LineCodingSize]byte
	lc.MarshalTo(payload[:])
	if _, ok := u.Control(cdc.RequestSetLineCoding, 0, payload[:]); !ok {
		t.Fatal("SET_LINE_CODING stalled")
	}
	if _, ok := u.Control(cdc.RequestSetLineCoding, 0, payload[:3]); ok {
		t.Error("Short SET_LINE_CODING accepted")
	}

	reply, ok := u.Control(cdc.RequestGetLineCoding, 0, nil)
	if !ok || !bytes.Equal(reply, payload[:]) {
		t.Errorf("GET_LINE_CODING returned %v, want %v", reply, payload)
	}

	if _, ok := u.Control(cdc.RequestSetControlLineState, cdc.ControlDTR|cdc.ControlRTS, nil); !ok {
		t.Error("SET_CONTROL_LINE_STATE stalled")
	}
	if u.LineControl() != cdc.ControlDTR|cdc.ControlRTS {
		t.Errorf("Expected DTR and RTS, got 0x%02x", u.LineControl())
	}
	if u.IsLineChanged() != cdc.LineCodingChanged|cdc.LineControlChanged {
		t.Error("Expected both change flags")
	}

	if _, ok := u.Control(cdc.RequestSendBreak, 0xFFFF, nil); !ok || u.Breaks() != 1 {
		t.Errorf("SEND_BREAK not counted, breaks=%d", u.Breaks())
	}
	if _, ok := u.Control(0x7F, 0, nil); ok {
		t.Error("Unknown request should stall")
	}
}
