// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensor

import (
	"encoding/binary"
	"math"
)

const (
	// GpsFrameLen is the fixed GPS frame size in bytes.
	GpsFrameLen = 91
)

var gpsSync = [2]byte{0x24, 0x40}

// GpsRecord is one decoded GPS/navigation sample. Field offsets are
// little-endian, some unaligned, matching the on-wire frame from the PL.
type GpsRecord struct {
	Tow        uint32
	Wnc        uint16
	Mode       uint8
	Error      uint8
	Lat        float64
	Lon        float64
	Height     float64
	Undulation float32
	Vn, Ve, Vu float32
	Gog        float32
	RxClkBias  float64
	RxClkDrift float32
	NSv        uint8
	HAcc, VAcc uint16
}

// ParseGPS decodes a 91-byte GPS frame. Every multi-byte field is copied
// byte-by-byte into the destination via encoding/binary rather than a
// pointer cast, because the source buffer is not guaranteed to be
// naturally aligned and the target platform faults on a misaligned load
// (§4.C, §9 "Unaligned reads"). It returns false if the sync word at
// offset 0-1 doesn't match 0x24 0x40.
func ParseGPS(buf [GpsFrameLen]byte) (GpsRecord, bool) {
	if buf[0] != gpsSync[0] || buf[1] != gpsSync[1] {
		return GpsRecord{}, false
	}
	le := binary.LittleEndian
	return GpsRecord{
		Tow:        le.Uint32(buf[2:6]),
		Wnc:        le.Uint16(buf[6:8]),
		Mode:       buf[8],
		Error:      buf[9],
		Lat:        math.Float64frombits(le.Uint64(buf[10:18])),
		Lon:        math.Float64frombits(le.Uint64(buf[18:26])),
		Height:     math.Float64frombits(le.Uint64(buf[26:34])),
		Undulation: math.Float32frombits(le.Uint32(buf[34:38])),
		Vn:         math.Float32frombits(le.Uint32(buf[38:42])),
		Ve:         math.Float32frombits(le.Uint32(buf[42:46])),
		Vu:         math.Float32frombits(le.Uint32(buf[46:50])),
		Gog:        math.Float32frombits(le.Uint32(buf[50:54])),
		RxClkBias:  math.Float64frombits(le.Uint64(buf[54:62])),
		RxClkDrift: math.Float32frombits(le.Uint32(buf[62:66])),
		NSv:        buf[68],
		HAcc:       le.Uint16(buf[84:86]),
		VAcc:       le.Uint16(buf[86:88]),
	}, true
}
