// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pus

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"go.ignu.dev/firmware/conn/sensor"
)

func TestSchedulerEmitsOnlyWhileRun(t *testing.T) {
	mock := clock.NewMock()
	var snap sensor.Snapshot
	state := &CommandState{}
	emitted := make(chan []byte, 8)

	sched := &Scheduler{
		Clock:    mock,
		State:    state,
		Snapshot: &snap,
		Emit:     func(payload []byte) { emitted <- payload },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	// Idle: advancing two full periods must not emit anything.
	mock.Add(Period)
	mock.Add(Period)
	select {
	case <-emitted:
		t.Fatal("emitted while idle")
	case <-time.After(50 * time.Millisecond):
	}

	state.Start()
	mock.Add(Period)
	select {
	case payload := <-emitted:
		require.Len(t, payload, TestDataLen)
	case <-time.After(time.Second):
		t.Fatal("expected an emit after Run")
	}
}
