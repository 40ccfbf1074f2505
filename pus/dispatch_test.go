// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.ignu.dev/firmware/conn/ccsds"
	"go.ignu.dev/firmware/conn/sensor"
)

func newDispatcher() *Dispatcher {
	return &Dispatcher{
		State:    &CommandState{},
		Snapshot: &sensor.Snapshot{},
	}
}

func TestDispatchTestStartStop(t *testing.T) {
	d := newDispatcher()
	resp := d.Handle(ccsds.TC{Service: SvcTest, Subtype: SubTestStart})
	require.Equal(t, []byte{ccsds.AckValid, 0, 0, 0}, resp.Payload)
	require.Equal(t, Run, d.State.Get())

	resp = d.Handle(ccsds.TC{Service: SvcTest, Subtype: SubTestStop})
	require.Equal(t, []byte{ccsds.AckValid, 0, 0, 0}, resp.Payload)
	require.Equal(t, Idle, d.State.Get())
}

func TestDispatchReqTestDataRange(t *testing.T) {
	d := newDispatcher()
	d.Snapshot.SetGPS(sensor.GpsRecord{Tow: 42})
	for _, sub := range []uint8{10, 55, 127} {
		resp := d.Handle(ccsds.TC{Service: SvcTest, Subtype: sub})
		require.Equal(t, uint8(SvcTest), resp.Service)
		require.Equal(t, sub, resp.Subtype)
		require.Len(t, resp.Payload, TestDataLen)
	}
}

func TestDispatchSaveTpvawRejectsWrongLength(t *testing.T) {
	d := newDispatcher()
	resp := d.Handle(ccsds.TC{Service: SvcTest, Subtype: SubTestSendTpvaw, Data: []byte{1, 2, 3}})
	require.Equal(t, []byte{ccsds.AckInvalid, 0, 0, 0}, resp.Payload)
}

func TestDispatchSaveTpvawAccepts(t *testing.T) {
	d := newDispatcher()
	resp := d.Handle(ccsds.TC{Service: SvcTest, Subtype: SubTestSendTpvaw, Data: make([]byte, TpvawLen)})
	require.Equal(t, []byte{ccsds.AckValid, 0, 0, 0}, resp.Payload)
}

func TestDispatchHKReq(t *testing.T) {
	d := newDispatcher()
	d.ReadTemp = func() int16 { return 2550 }
	resp := d.Handle(ccsds.TC{Service: SvcHK, Subtype: SubHKReq})
	require.Equal(t, uint8(SvcHK), resp.Service)
	require.Len(t, resp.Payload, 6)
}

func TestDispatchPing(t *testing.T) {
	d := newDispatcher()
	resp := d.Handle(ccsds.TC{Service: SvcDiagnose, Subtype: SubDiagPing})
	require.Equal(t, uint8(SvcDiagnose), resp.Service)
	require.Equal(t, []byte{ccsds.AckValid, 0, 0, 0}, resp.Payload)
}

func TestDispatchUnknownServiceIsInvalidAck(t *testing.T) {
	d := newDispatcher()
	resp := d.Handle(ccsds.TC{Service: 99, Subtype: 1})
	require.Equal(t, uint8(99), resp.Service)
	require.Equal(t, []byte{ccsds.AckInvalid, 0, 0, 0}, resp.Payload)
}
