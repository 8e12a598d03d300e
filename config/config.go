// Package config loads bridge configuration from JSON.
package config

import (
	"encoding/json"
	"fmt"

	"usbuart/core"
)

// LoadConfig parses a JSON configuration and returns a bridge Config
func LoadConfig(jsonData []byte) (*core.Config, error) {
	var config core.Config

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *core.Config) {
	if config.BusClockHz == 0 {
		config.BusClockHz = core.DefaultBusClockHz
	}
	if config.Prescale == 0 {
		config.Prescale = core.DefaultPrescale
	}
	if config.DefaultBaud == 0 {
		config.DefaultBaud = core.DefaultBaud
	}
	// ReadyPolls of zero is meaningful (wait forever) and stays as given
}

// Validate checks that the default baud rate is reachable with the clock
// parameters.
func Validate(config *core.Config) error {
	if _, err := core.ComputeDivider(config.BusClockHz, config.Prescale, config.DefaultBaud); err != nil {
		return fmt.Errorf("default baud %d: %w", config.DefaultBaud, err)
	}
	return nil
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() *core.Config {
	config := core.DefaultConfig()
	return &config
}
