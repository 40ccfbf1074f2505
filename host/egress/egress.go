// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package egress multiplexes outbound frames onto PL UART TX BRAM regions
// (component J): for each channel, while the PL's tx-busy sentinel is clear,
// dequeue one frame from that channel's TX ring, write its bytes into the
// channel's TX region, and issue a TX_ENABLE command word.
package egress

import (
	"encoding/binary"
	"fmt"

	"go.ignu.dev/firmware/conn/ring"
	"go.ignu.dev/firmware/host/bram"
)

// ControlWriter issues PL control-register writes. host/bram.Region backs
// this in both the real and simulated builds; it is narrowed to an
// interface here so tests can swap in a spy.
type ControlWriter interface {
	PutUint32At(off int, v uint32)
}

// Channel is one UART TX channel: a source ring of outbound frames, the PL
// region backing its TX BRAM slot, and the PL command value that enables
// transmission on it (CMD_RS422_CHnn_TX_ENABLE in the original ICD).
type Channel struct {
	Num       int
	Src       *ring.Ring
	Region    *bram.Region
	EnableCmd uint32
}

// txBusyOffset is the byte offset of the tx-busy sentinel within a TX
// region's trailing control word, mirroring the RX control word's busy byte
// (host/bram.readControlWord).
const txBusyOffset = 2

// Mux drives the per-tick egress pass over a fixed set of channels, writing
// TX_ENABLE words to a shared PL control register.
type Mux struct {
	Channels []Channel
	Ctrl     ControlWriter
	CtrlOff  int
}

// Result reports what one Tick did.
type Result struct {
	Sent int
	Busy int
}

// Tick runs one egress pass: for each channel, if not busy and a frame is
// queued, write it to the channel's TX region and enable transmission.
// Channels are visited in order; a busy or empty channel is skipped without
// blocking the others (§4.J, §5 "UART TX" task).
func (m *Mux) Tick() (Result, error) {
	var res Result
	for i := range m.Channels {
		ch := &m.Channels[i]
		b := ch.Region.Bytes()
		if len(b) < txBusyOffset+1 {
			return res, fmt.Errorf("egress: channel %d region too small", ch.Num)
		}
		if b[txBusyOffset] != 0 {
			res.Busy++
			continue
		}
		frame, ok := ch.Src.Dequeue()
		if !ok {
			continue
		}
		if len(b) < 4+len(frame) {
			return res, fmt.Errorf("egress: channel %d frame %d bytes exceeds region", ch.Num, len(frame))
		}
		binary.LittleEndian.PutUint32(b[0:4], uint32(len(frame)))
		copy(b[4:], frame)
		m.Ctrl.PutUint32At(m.CtrlOff, ch.EnableCmd)
		res.Sent++
	}
	return res, nil
}
