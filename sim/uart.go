package sim

// UARTFifoSize matches a typical software RX buffer.
const UARTFifoSize = 512

// UART is a UART whose transmitter and receiver are byte FIFOs.
// With Loopback set, transmitted bytes appear on the receiver as if TX were
// jumpered to RX.
type UART struct {
	Loopback bool

	trace   *Trace
	rx      *Fifo
	tx      []byte
	running bool
	divider uint16
	bursts  int
}

// NewUART creates a stopped UART that records into trace (may be nil).
func NewUART(trace *Trace) *UART {
	return &UART{
		trace: trace,
		rx:    NewFifo(UARTFifoSize),
	}
}

func (u *UART) Start() {
	u.trace.Add("uart.start")
	u.running = true
}

func (u *UART) Stop() {
	u.trace.Add("uart.stop")
	u.running = false
}

func (u *UART) SetClockDivider(divider uint16) {
	u.trace.Add("uart.divider")
	u.divider = divider
}

// RxPending saturates at the width of the hardware count register.
func (u *UART) RxPending() uint16 {
	n := u.rx.Available()
	if n > 0xFFFF {
		n = 0xFFFF
	}
	return uint16(n)
}

func (u *UART) GetByte() byte {
	return u.rx.Pop()
}

func (u *UART) WriteBurst(data []byte) {
	u.bursts++
	u.tx = append(u.tx, data...)
	if u.Loopback {
		u.rx.Write(data)
	}
}

// Inject places bytes on the receiver, as if they arrived on the wire.
// Returns how many fit.
func (u *UART) Inject(data []byte) int {
	return u.rx.Write(data)
}

// Transmitted returns every byte written so far.
func (u *UART) Transmitted() []byte {
	return u.tx
}

// Bursts returns the number of WriteBurst calls.
func (u *UART) Bursts() int {
	return u.bursts
}

// Running reports whether the UART is started.
func (u *UART) Running() bool {
	return u.running
}

// Divider returns the committed clock divider.
func (u *UART) Divider() uint16 {
	return u.divider
}
