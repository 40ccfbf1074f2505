// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pus

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"go.ignu.dev/firmware/conn/sensor"
)

// Period is the telemetry scheduler's tick interval (§4.H).
const Period = time.Second

// Scheduler fires send_test_data once per Period while the command state is
// Run, aligned to a monotonic wake-deadline rather than a sleep-from-now so
// consecutive periods don't drift (§4.H, §5 "IGNU TX" task).
type Scheduler struct {
	Clock    clock.Clock
	State    *CommandState
	Snapshot *sensor.Snapshot
	// Emit is called with a packed TestData record once per tick while Run.
	Emit func(payload []byte)
}

// Run blocks, ticking every Period until ctx is cancelled. Each tick's
// deadline is computed from the previous deadline, not from time.Now() at
// wake time, so a late wakeup never compounds into growing drift.
func (s *Scheduler) Run(ctx context.Context) error {
	clk := s.Clock
	if clk == nil {
		clk = clock.New()
	}
	deadline := clk.Now().Add(Period)
	for {
		timer := clk.Timer(deadline.Sub(clk.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if s.State.Get() == Run && s.Emit != nil {
			s.Emit(BuildTestData(s.Snapshot).Pack())
		}
		deadline = deadline.Add(Period)
	}
}
