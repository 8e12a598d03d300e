package serial

import (
	"io"

	"usbuart/cdc"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory loopback (for testing the probe)
type Port interface {
	io.ReadWriteCloser

	// Flush discards data buffered in either direction
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Line is sent to the bridge as SET_LINE_CODING when the port opens
	Line cdc.LineCoding

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns a 115200 8N1 configuration for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Line:        cdc.DefaultLineCoding,
		ReadTimeout: 100, // 100ms read timeout
	}
}
