package core

// Config holds the bridge parameters that differ between boards.
type Config struct {
	// BusClockHz is the clock feeding the UART clock divider.
	BusClockHz uint32 `json:"bus_clock_hz"`

	// Prescale divides the bus clock before the divider search.
	Prescale uint32 `json:"prescale"`

	// DefaultBaud is applied by Start before the host sets a line coding.
	DefaultBaud uint32 `json:"default_baud"`

	// ReadyPolls bounds each wait for the bulk IN endpoint to become ready.
	// Zero waits forever.
	ReadyPolls uint32 `json:"ready_polls"`
}

// Default clock parameters.
const (
	DefaultBusClockHz = 24000000
	DefaultPrescale   = 8
	DefaultBaud       = 115200
)

// DefaultConfig returns the defaults for a 24 MHz bus clock.
func DefaultConfig() Config {
	return Config{
		BusClockHz:  DefaultBusClockHz,
		Prescale:    DefaultPrescale,
		DefaultBaud: DefaultBaud,
	}
}
