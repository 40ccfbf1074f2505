// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandStateDefaultsToIdle(t *testing.T) {
	var c CommandState
	require.Equal(t, Idle, c.Get())
}

func TestCommandStateStartStop(t *testing.T) {
	var c CommandState
	c.Start()
	require.Equal(t, Run, c.Get())
	c.Stop()
	require.Equal(t, Idle, c.Get())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "run", Run.String())
}
