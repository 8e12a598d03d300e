//go:build !wasm

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"

	"usbuart/cdc"
)

// NativePort wraps the tarm/serial implementation
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	serialConfig, err := nativeConfig(cfg)
	if err != nil {
		return nil, err
	}

	port, err := serial.OpenPort(serialConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port: port,
		cfg:  cfg,
	}, nil
}

// nativeConfig translates the CDC line coding into tarm/serial settings
func nativeConfig(cfg *Config) (*serial.Config, error) {
	sc := &serial.Config{
		Name:        cfg.Device,
		Baud:        int(cfg.Line.DTERate),
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
		Size:        cfg.Line.DataBits,
	}

	switch cfg.Line.ParityType {
	case cdc.ParityNone:
		sc.Parity = serial.ParityNone
	case cdc.ParityOdd:
		sc.Parity = serial.ParityOdd
	case cdc.ParityEven:
		sc.Parity = serial.ParityEven
	case cdc.ParityMark:
		sc.Parity = serial.ParityMark
	case cdc.ParitySpace:
		sc.Parity = serial.ParitySpace
	default:
		return nil, fmt.Errorf("unsupported parity type %d", cfg.Line.ParityType)
	}

	switch cfg.Line.CharFormat {
	case cdc.StopBits1:
		sc.StopBits = serial.Stop1
	case cdc.StopBits1_5:
		sc.StopBits = serial.Stop1Half
	case cdc.StopBits2:
		sc.StopBits = serial.Stop2
	default:
		return nil, fmt.Errorf("unsupported stop bits %d", cfg.Line.CharFormat)
	}

	if sc.Baud == 0 {
		return nil, fmt.Errorf("baud rate cannot be zero")
	}
	return sc, nil
}

// Read reads data from the serial port
func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes data to the serial port
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush discards unread input and unsent output
func (p *NativePort) Flush() error {
	return p.port.Flush()
}
