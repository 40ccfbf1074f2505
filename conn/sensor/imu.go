// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensor decodes IMU and GPS frames drained from BRAM and holds the
// last-known-good snapshot of each, read by the telemetry producer.
package sensor

const (
	// ImuFrameLen is the fixed IMU frame size in bytes.
	ImuFrameLen = 42
	imuSync     = 0xA5
	imuScale    = 524288.0 // 2^19
)

// ImuRecord is one decoded IMU sample.
type ImuRecord struct {
	GyroX, GyroY, GyroZ   float32 // deg/s
	AccelX, AccelY, AccelZ float32 // g
	Counter               uint8
}

// raw24 assembles a 24-bit big-endian two's-complement field at buf[o:o+3]
// into a sign-extended int32, never via a pointer cast (§4.C, §9 "Unaligned
// reads"): the platform faults on misaligned multi-byte loads, so every
// field is built byte-by-byte.
func raw24(buf []byte, o int) int32 {
	v := int32(buf[o])<<16 | int32(buf[o+1])<<8 | int32(buf[o+2])
	if v&0x800000 != 0 {
		v |= ^int32(0xFFFFFF)
	}
	return v
}

// ParseIMU decodes a 42-byte IMU frame. It returns false if the sync byte
// (offset 0, must be 0xA5) doesn't match; this is a frame rejection
// (§7 kind 2), never a panic.
func ParseIMU(buf [ImuFrameLen]byte) (ImuRecord, bool) {
	if buf[0] != imuSync {
		return ImuRecord{}, false
	}
	return ImuRecord{
		GyroX:   float32(raw24(buf[:], 1)) / imuScale,
		GyroY:   float32(raw24(buf[:], 4)) / imuScale,
		GyroZ:   float32(raw24(buf[:], 7)) / imuScale,
		AccelX:  float32(raw24(buf[:], 11)) / imuScale,
		AccelY:  float32(raw24(buf[:], 14)) / imuScale,
		AccelZ:  float32(raw24(buf[:], 17)) / imuScale,
		Counter: buf[35],
	}, true
}
