// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package egress

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"go.ignu.dev/firmware/conn/ring"
	"go.ignu.dev/firmware/host/bram"
)

type spyCtrl struct {
	writes map[int]uint32
}

func (s *spyCtrl) PutUint32At(off int, v uint32) {
	if s.writes == nil {
		s.writes = map[int]uint32{}
	}
	s.writes[off] = v
}

func TestTickSendsQueuedFrame(t *testing.T) {
	src := ring.New(4, 64)
	src.Enqueue([]byte("hello"))
	region := bram.NewSimRegion(64)

	ctrl := &spyCtrl{}
	mux := &Mux{
		Channels: []Channel{{Num: 1, Src: src, Region: region, EnableCmd: 0x1}},
		Ctrl:     ctrl,
		CtrlOff:  0x20,
	}
	res, err := mux.Tick()
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)
	require.Equal(t, 0, res.Busy)

	b := region.Bytes()
	n := binary.LittleEndian.Uint32(b[0:4])
	require.Equal(t, uint32(5), n)
	require.Equal(t, "hello", string(b[4:4+n]))
	require.Equal(t, uint32(0x1), ctrl.writes[0x20])
}

func TestTickSkipsBusyChannel(t *testing.T) {
	src := ring.New(4, 64)
	src.Enqueue([]byte("hello"))
	region := bram.NewSimRegion(64)
	region.Bytes()[txBusyOffset] = 1

	ctrl := &spyCtrl{}
	mux := &Mux{
		Channels: []Channel{{Num: 1, Src: src, Region: region, EnableCmd: 0x1}},
		Ctrl:     ctrl,
	}
	res, err := mux.Tick()
	require.NoError(t, err)
	require.Equal(t, 0, res.Sent)
	require.Equal(t, 1, res.Busy)
	require.Empty(t, ctrl.writes)

	// frame is still queued, untouched
	got, ok := src.Dequeue()
	require.True(t, ok)
	require.Equal(t, []byte("hello"), got)
}

func TestTickEmptyRingIsNoop(t *testing.T) {
	src := ring.New(4, 64)
	region := bram.NewSimRegion(64)
	mux := &Mux{Channels: []Channel{{Num: 1, Src: src, Region: region}}, Ctrl: &spyCtrl{}}
	res, err := mux.Tick()
	require.NoError(t, err)
	require.Equal(t, 0, res.Sent)
	require.Equal(t, 0, res.Busy)
}

func TestTickVisitsMultipleChannelsIndependently(t *testing.T) {
	src1 := ring.New(4, 64)
	src1.Enqueue([]byte("a"))
	region1 := bram.NewSimRegion(64)
	region1.Bytes()[txBusyOffset] = 1 // busy, skipped

	src2 := ring.New(4, 64)
	src2.Enqueue([]byte("b"))
	region2 := bram.NewSimRegion(64)

	ctrl := &spyCtrl{}
	mux := &Mux{
		Channels: []Channel{
			{Num: 1, Src: src1, Region: region1, EnableCmd: 0x1},
			{Num: 2, Src: src2, Region: region2, EnableCmd: 0x2},
		},
		Ctrl: ctrl,
	}
	res, err := mux.Tick()
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)
	require.Equal(t, 1, res.Busy)

	// channel 1's frame remains queued
	got, ok := src1.Dequeue()
	require.True(t, ok)
	require.Equal(t, []byte("a"), got)
}
