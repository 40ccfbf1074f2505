// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pus implements the CCSDS/PUS service dispatch table, the 1 Hz
// telemetry scheduler, and the command-service state they share (§4.G
// dispatch half, §4.H, §4.I).
package pus

import "go.uber.org/atomic"

// State is the command-service mode: Idle or Run.
type State int32

const (
	Idle State = iota
	Run
)

func (s State) String() string {
	if s == Run {
		return "run"
	}
	return "idle"
}

// CommandState is the module-scoped atomic mode switch (§4.I). It is
// mutated only by the test_start/test_stop handlers, which run single-
// threaded on the IGNU RX dispatch path, and read by the telemetry
// scheduler on its own goroutine.
type CommandState struct {
	v atomic.Int32
}

// Get returns the current state.
func (c *CommandState) Get() State {
	return State(c.v.Load())
}

// Start transitions to Run.
func (c *CommandState) Start() {
	c.v.Store(int32(Run))
}

// Stop transitions to Idle.
func (c *CommandState) Stop() {
	c.v.Store(int32(Idle))
}
