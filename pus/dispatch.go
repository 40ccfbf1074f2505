// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pus

import (
	"go.uber.org/zap"

	"go.ignu.dev/firmware/conn/ccsds"
	"go.ignu.dev/firmware/conn/sensor"
)

// PUS service and subtype identifiers, fixed by the ICD.
const (
	SvcTest     = 1
	SvcHK       = 5
	SvcFunction = 8
	SvcDiagnose = 20

	SubTestStart    = 1
	SubTestStop     = 2
	SubTestSetParam = 4
	SubTestSendTpvaw = 5
	SubTestDataMin   = 10
	SubTestDataMax   = 127

	SubHKReq = 1

	SubFuncExec = 1

	SubDiagPing = 1
)

// Response is a dispatch outcome: the (service, subtype) pair to emit it
// under, and its payload. Callers pass this straight to
// ccsds.EncodeTM(Service, Subtype, Payload).
type Response struct {
	Service uint8
	Subtype uint8
	Payload []byte
}

// Dispatcher holds the mutable state the (service,subtype) table acts on:
// command mode (§4.I), the sensor snapshot it reads for test-data requests,
// the last accepted Tpvaw, and a temperature reader for housekeeping.
type Dispatcher struct {
	State    *CommandState
	Snapshot *sensor.Snapshot
	ReadTemp func() int16 // centi-degrees C, from the XADC register (§6)
	Log      *zap.Logger

	lastTpvaw Tpvaw
	testParam []byte
}

// Handle dispatches one decoded TC per the service table (§4.G): test
// start/stop, set_test_param, save_tpvaw, req_test_data, hk_req,
// func_exec, and ping all produce an immediate Response; anything else
// falls through to Ack(INVALID) at the requested (service, subtype).
func (d *Dispatcher) Handle(tc ccsds.TC) Response {
	switch tc.Service {
	case SvcTest:
		switch tc.Subtype {
		case SubTestStart:
			d.State.Start()
			return ack(tc, ccsds.AckValid)
		case SubTestStop:
			d.State.Stop()
			return ack(tc, ccsds.AckValid)
		case SubTestSetParam:
			d.testParam = append([]byte(nil), tc.Data...)
			return ack(tc, ccsds.AckValid)
		case SubTestSendTpvaw:
			if len(tc.Data) != TpvawLen {
				return ack(tc, ccsds.AckInvalid)
			}
			var buf [TpvawLen]byte
			copy(buf[:], tc.Data)
			d.lastTpvaw = DecodeTpvaw(buf)
			return ack(tc, ccsds.AckValid)
		default:
			if tc.Subtype >= SubTestDataMin && tc.Subtype <= SubTestDataMax {
				td := BuildTestData(d.Snapshot)
				return Response{Service: SvcTest, Subtype: tc.Subtype, Payload: td.Pack()}
			}
			return ack(tc, ccsds.AckInvalid)
		}
	case SvcHK:
		if tc.Subtype == SubHKReq {
			ps := PayloadStatus{
				PayloadStatus:  uint8(d.State.Get()),
				BoardTempCenti: d.readTemp(),
			}
			return Response{Service: SvcHK, Subtype: SubHKReq, Payload: ps.Pack()}
		}
		return ack(tc, ccsds.AckInvalid)
	case SvcFunction:
		if tc.Subtype == SubFuncExec {
			return ack(tc, ccsds.AckValid)
		}
		return ack(tc, ccsds.AckInvalid)
	case SvcDiagnose:
		if tc.Subtype == SubDiagPing {
			return ack(tc, ccsds.AckValid)
		}
		return ack(tc, ccsds.AckInvalid)
	default:
		if d.Log != nil {
			d.Log.Warn("pus: unknown service", zap.Uint8("service", tc.Service), zap.Uint8("subtype", tc.Subtype))
		}
		return ack(tc, ccsds.AckInvalid)
	}
}

func (d *Dispatcher) readTemp() int16 {
	if d.ReadTemp == nil {
		return 0
	}
	return d.ReadTemp()
}

func ack(tc ccsds.TC, code byte) Response {
	return Response{Service: tc.Service, Subtype: tc.Subtype, Payload: ccsds.AckPayload(code)}
}
