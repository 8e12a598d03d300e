package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event type codes
const (
	EvtSession    = 1 // CDC session initialized
	EvtHostRx     = 2 // Host packet forwarded to UART (v1=bytes)
	EvtPacket     = 3 // UART data sent to host (v1=bytes)
	EvtZLP        = 4 // Zero-length packet sent
	EvtBaudChange = 5 // Divider committed (v1=baud, v2=divider)
	EvtStall      = 6 // Readiness wait ran out of polls (v1=polls)
	EvtBootloader = 7 // Bootloader trigger seen
)

// EventRingSize is the number of events kept for post-mortem
const EventRingSize = 32

// Event captures one bridge event
type Event struct {
	EventType uint8
	Clock     uint32 // System ticks at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// EventRing is a fixed-size, overwrite-oldest event log.
// Recording never blocks and never allocates.
type EventRing struct {
	events [EventRingSize]Event
	head   uint8 // Next write position
	count  uint8
}

// Record captures an event stamped with the current system time
func (r *EventRing) Record(eventType uint8, value1, value2 uint32) {
	r.events[r.head] = Event{
		EventType: eventType,
		Clock:     GetTime(),
		Value1:    value1,
		Value2:    value2,
	}
	r.head = (r.head + 1) % EventRingSize
	if r.count < EventRingSize {
		r.count++
	}
}

// Events returns the recorded events from oldest to newest
func (r *EventRing) Events() []Event {
	out := make([]Event, 0, r.count)
	start := (r.head + EventRingSize - r.count) % EventRingSize
	for i := uint8(0); i < r.count; i++ {
		out = append(out, r.events[(start+i)%EventRingSize])
	}
	return out
}

// Clear drops all events
func (r *EventRing) Clear() {
	*r = EventRing{}
}

// Dump writes the ring to w, oldest first
func (r *EventRing) Dump(w DebugWriter) {
	if w == nil {
		return
	}
	w("[EVENTS] === Event Ring Dump ===")
	for _, evt := range r.Events() {
		w("[EVENTS] " + EventName(evt.EventType) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	w("[EVENTS] === End Dump ===")
}

// EventName returns the dump label for an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtSession:
		return "SESSION"
	case EvtHostRx:
		return "HOST_RX"
	case EvtPacket:
		return "PACKET"
	case EvtZLP:
		return "ZLP"
	case EvtBaudChange:
		return "BAUD"
	case EvtStall:
		return "STALL!"
	case EvtBootloader:
		return "BOOTLOADER"
	default:
		return "UNKNOWN"
	}
}
