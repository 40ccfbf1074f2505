// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the on-disk YAML configuration for the ignu-fw
// binary: slot geometry, per-channel UART baud rates, and simulation mode.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Channel describes one ground-link UART channel's baud rate, programmed
// into the PL's BRAM-mapped UART-config block (there is no PS-side serial
// device for this link; the PL owns the physical UART).
type Channel struct {
	Num  int `yaml:"num"`
	Baud int `yaml:"baud"`
}

// Config is the top-level on-disk configuration.
type Config struct {
	// Sim, when true, backs every BRAM region and UART channel with an
	// in-memory simulated device instead of mapping real hardware.
	Sim bool `yaml:"sim"`

	RingDepth int `yaml:"ring_depth"`
	SlotBytes int `yaml:"slot_bytes"`

	Channels []Channel `yaml:"channels"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the baseline configuration, overridden by whatever the
// loaded file or CLI flags specify.
func Default() Config {
	return Config{
		RingDepth: 128,
		SlotBytes: 1528,
		LogLevel:  "info",
		Channels: []Channel{
			{Num: 1, Baud: 115200},
		},
	}
}

// Load reads and parses a YAML configuration file at path, starting from
// Default() so an unset field in the file keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
