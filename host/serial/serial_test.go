//go:build !wasm

package serial

import (
	"testing"

	"github.com/tarm/serial"

	"usbuart/cdc"
)

func TestNativeConfigDefault(t *testing.T) {
	sc, err := nativeConfig(DefaultConfig("/dev/ttyACM0"))
	if err != nil {
		t.Fatalf("nativeConfig failed: %v", err)
	}
	if sc.Name != "/dev/ttyACM0" || sc.Baud != 115200 || sc.Size != 8 {
		t.Errorf("Unexpected config %+v", sc)
	}
	if sc.Parity != serial.ParityNone || sc.StopBits != serial.Stop1 {
		t.Errorf("Expected 8N1, got parity %c stop %d", sc.Parity, sc.StopBits)
	}
}

func TestNativeConfigLineCoding(t *testing.T) {
	cfg := DefaultConfig("COM3")
	cfg.Line = cdc.LineCoding{DTERate: 9600, CharFormat: cdc.StopBits2, ParityType: cdc.ParityEven, DataBits: 7}

	sc, err := nativeConfig(cfg)
	if err != nil {
		t.Fatalf("nativeConfig failed: %v", err)
	}
	if sc.Baud != 9600 || sc.Size != 7 || sc.Parity != serial.ParityEven || sc.StopBits != serial.Stop2 {
		t.Errorf("Unexpected config %+v", sc)
	}
}

func TestNativeConfigRejects(t *testing.T) {
	tests := []cdc.LineCoding{
		{DTERate: 0, DataBits: 8},
		{DTERate: 9600, ParityType: 7, DataBits: 8},
		{DTERate: 9600, CharFormat: 3, DataBits: 8},
	}
	for _, lc := range tests {
		cfg := DefaultConfig("COM3")
		cfg.Line = lc
		if _, err := nativeConfig(cfg); err == nil {
			t.Errorf("Expected an error for %+v", lc)
		}
	}
}

func TestOpenNilConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Expected an error for a nil config")
	}
}
