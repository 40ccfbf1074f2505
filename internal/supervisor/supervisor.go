// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package supervisor wires the data-plane task table (§5) together: one
// goroutine per row, supervised by golang.org/x/sync/errgroup so the first
// fatal error cancels the rest through a shared context. The interactive
// debug shell, LwIP echo server, GPIO/PHY reset sequencing, and the one-shot
// SIU are external collaborators and are not tasks this package runs.
package supervisor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go.ignu.dev/firmware/conn/ccsds"
	"go.ignu.dev/firmware/conn/csp"
	"go.ignu.dev/firmware/conn/kiss"
	"go.ignu.dev/firmware/conn/ring"
	"go.ignu.dev/firmware/conn/sensor"
	"go.ignu.dev/firmware/host/bram"
	"go.ignu.dev/firmware/host/egress"
	"go.ignu.dev/firmware/pus"
)

// Periods match §5's task table exactly.
const (
	UARTDrainPeriod = 5 * time.Millisecond
	UARTTxPeriod    = 5 * time.Millisecond
	GPSDrainPeriod  = time.Millisecond
	IMUDrainPeriod  = time.Millisecond
	IGNURXPeriod    = 10 * time.Millisecond
)

// Supervisor holds every region, ring, and protocol-layer object the task
// table drives. Build one with New or construct it directly in tests.
type Supervisor struct {
	Log *zap.Logger

	GPSRegion *bram.Region
	IMURegion *bram.Region
	CmdRegion *bram.Region // UART RX slot carrying the command channel
	SlotBytes int

	Snapshot *sensor.Snapshot
	CmdRing  *ring.Ring // raw byte records drained from the command UART slot

	Dispatcher *pus.Dispatcher
	Scheduler  *pus.Scheduler

	Egress *egress.Mux // channel 1 carries both TC responses and telemetry

	gpsCursor bram.Cursor
	imuCursor bram.Cursor
	cmdCursor bram.Cursor
	kissDec   kiss.Decoder
}

// New wires s.Scheduler.Emit to the supervisor's own response path, so the
// caller only has to fill in Scheduler's Clock/State/Snapshot before
// constructing it. Called once, after every other field is set.
func New(s *Supervisor) *Supervisor {
	s.Scheduler.Emit = func(payload []byte) {
		s.sendTM(pus.SvcTest, pus.SubTestDataMin, payload)
	}
	return s
}

// Run starts every task as a goroutine and blocks until ctx is cancelled or
// one task returns a fatal error.
func (s *Supervisor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.loop(ctx, GPSDrainPeriod, s.drainGPS) })
	g.Go(func() error { return s.loop(ctx, IMUDrainPeriod, s.drainIMU) })
	g.Go(func() error { return s.loop(ctx, UARTDrainPeriod, s.drainUART) })
	g.Go(func() error { return s.loop(ctx, IGNURXPeriod, s.processCommands) })
	g.Go(func() error { return s.loop(ctx, UARTTxPeriod, s.txTick) })
	g.Go(func() error { return s.Scheduler.Run(ctx) })

	return g.Wait()
}

// loop runs fn once per period until ctx is cancelled, the way every
// non-OPU, non-SCU row in §5's task table suspends only at its periodic
// delay.
func (s *Supervisor) loop(ctx context.Context, period time.Duration, fn func() error) error {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := fn(); err != nil {
				return err
			}
		}
	}
}

func (s *Supervisor) drainGPS() error {
	scratch := ring.New(8, s.SlotBytes)
	s.gpsCursor.DrainSensor(s.GPSRegion, s.SlotBytes, scratch)
	for {
		frame, ok := scratch.Dequeue()
		if !ok {
			return nil
		}
		if len(frame) < sensor.GpsFrameLen {
			continue
		}
		var buf [sensor.GpsFrameLen]byte
		copy(buf[:], frame)
		if rec, ok := sensor.ParseGPS(buf); ok {
			s.Snapshot.SetGPS(rec)
		}
	}
}

func (s *Supervisor) drainIMU() error {
	scratch := ring.New(8, s.SlotBytes)
	s.imuCursor.DrainSensor(s.IMURegion, s.SlotBytes, scratch)
	for {
		frame, ok := scratch.Dequeue()
		if !ok {
			return nil
		}
		if len(frame) < sensor.ImuFrameLen {
			continue
		}
		var buf [sensor.ImuFrameLen]byte
		copy(buf[:], frame)
		if rec, ok := sensor.ParseIMU(buf); ok {
			s.Snapshot.SetIMU(rec)
		}
	}
}

func (s *Supervisor) drainUART() error {
	s.cmdCursor.DrainUART(s.CmdRegion, s.CmdRing)
	return nil
}

// processCommands feeds every byte drained from the command UART slot
// through the KISS decoder, and on each complete frame runs it through CSP,
// CCSDS dispatch, and the response path back out to KISS/egress (§2's
// inbound telecommand data-flow diagram).
func (s *Supervisor) processCommands() error {
	for {
		chunk, ok := s.CmdRing.Dequeue()
		if !ok {
			return nil
		}
		for _, b := range chunk {
			frame, ok := s.kissDec.Feed(b)
			if !ok {
				continue
			}
			s.handleFrame(frame)
		}
	}
}

func (s *Supervisor) handleFrame(frame []byte) {
	pkt, err := csp.Receive(frame)
	if err != nil {
		if s.Log != nil {
			s.Log.Debug("supervisor: csp reject", zap.Error(err))
		}
		return
	}
	if pkt.Header.Dport != csp.CmdRxPort {
		return
	}
	tc, err := ccsds.DecodeTC(pkt.Payload)
	if err != nil {
		if s.Log != nil {
			s.Log.Debug("supervisor: ccsds reject", zap.Error(err))
		}
		return
	}
	resp := s.Dispatcher.Handle(tc)
	s.sendTM(resp.Service, resp.Subtype, resp.Payload)
}

// sendTM wraps a (service, subtype, payload) response through CCSDS, CSP,
// and KISS, then queues it on the egress channel 1 TX ring (§4.F
// csp_send: "hand the resulting buffer to (E)... and (J) for TX on channel
// 1").
func (s *Supervisor) sendTM(service, subtype uint8, payload []byte) {
	tm := ccsds.EncodeTM(service, subtype, payload)
	wire := csp.Send(csp.PdhsAddr, csp.AsyncTxPort, tm)
	framed := kiss.Encode(wire)
	if s.Egress == nil || len(s.Egress.Channels) == 0 {
		return
	}
	if s.Egress.Channels[0].Src.Enqueue(framed) == ring.DroppedOldest {
		if s.Log != nil {
			s.Log.Warn("supervisor: tx ring overflow, dropped oldest")
		}
	}
}

func (s *Supervisor) txTick() error {
	_, err := s.Egress.Tick()
	return err
}
