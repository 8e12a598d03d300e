package config

import (
	"errors"
	"testing"

	"usbuart/core"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *cfg != core.DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", *cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"bus_clock_hz": 48000000,
		"prescale": 16,
		"default_baud": 9600,
		"ready_polls": 100000
	}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BusClockHz != 48000000 || cfg.Prescale != 16 || cfg.DefaultBaud != 9600 || cfg.ReadyPolls != 100000 {
		t.Errorf("Overrides not applied: %+v", *cfg)
	}
}

func TestLoadConfigRejectsUnreachableBaud(t *testing.T) {
	_, err := LoadConfig([]byte(`{"default_baud": 1}`))
	if !errors.Is(err, core.ErrInvalidBaudRate) {
		t.Errorf("Expected ErrInvalidBaudRate, got %v", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	if _, err := LoadConfig([]byte(`{"prescale": "eight"}`)); err == nil {
		t.Error("Expected an error for a string prescale")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}
