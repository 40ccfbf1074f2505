// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pus

import (
	"encoding/binary"
	"math"

	"go.ignu.dev/firmware/conn/sensor"
)

// TestDataLen is the packed size of a TestData record, fixed by the
// external ICD.
const TestDataLen = 100

// TestData is the navigation/housekeeping bundle emitted at 1 Hz while in
// Run state (§4.H), or on demand via req_test_data.
type TestData struct {
	GpsWeek  uint32
	GpsTime  uint32
	Lat, Lon float64
	Alt      float32
	VelN     float32
	VelE     float32
	VelU     float32
	Mode     uint8
	Error    uint8
	NrSV     uint8
	MeanGyro [3]float32
	MeanAcc  [3]float32
	Roll     float32
	Pitch    float32
	Yaw      float32
}

// BuildTestData assembles a TestData record from the current sensor
// snapshot. Roll/pitch/yaw are left zero: attitude fusion is out of scope
// for this firmware, and a zero-filled attitude matches how an unfused
// system reports it.
func BuildTestData(snap *sensor.Snapshot) TestData {
	imu, gps := snap.Get()
	return TestData{
		GpsWeek:  uint32(gps.Wnc),
		GpsTime:  gps.Tow,
		Lat:      gps.Lat,
		Lon:      gps.Lon,
		Alt:      float32(gps.Height),
		VelN:     gps.Vn,
		VelE:     gps.Ve,
		VelU:     gps.Vu,
		Mode:     gps.Mode,
		Error:    gps.Error,
		NrSV:     gps.NSv,
		MeanGyro: [3]float32{imu.GyroX, imu.GyroY, imu.GyroZ},
		MeanAcc:  [3]float32{imu.AccelX, imu.AccelY, imu.AccelZ},
	}
}

// Pack serializes a TestData record into its 100-byte little-endian wire
// layout: gpsWeek(u32) gpsTime(u32) lat(f64) lon(f64) alt(f32) velN(f32)
// velE(f32) velU(f32) mode(u8) error(u8) nrSV(u8) _align(u8)
// meanGyroXYZ(3×f32) meanAccXYZ(3×f32) roll(f32) pitch(f32) yaw(f32)
// reserved(5×u32).
func (t TestData) Pack() []byte {
	b := make([]byte, TestDataLen)
	le := binary.LittleEndian
	le.PutUint32(b[0:4], t.GpsWeek)
	le.PutUint32(b[4:8], t.GpsTime)
	le.PutUint64(b[8:16], math.Float64bits(t.Lat))
	le.PutUint64(b[16:24], math.Float64bits(t.Lon))
	le.PutUint32(b[24:28], math.Float32bits(t.Alt))
	le.PutUint32(b[28:32], math.Float32bits(t.VelN))
	le.PutUint32(b[32:36], math.Float32bits(t.VelE))
	le.PutUint32(b[36:40], math.Float32bits(t.VelU))
	b[40] = t.Mode
	b[41] = t.Error
	b[42] = t.NrSV
	// b[43] is the alignment pad byte.
	for i, v := range t.MeanGyro {
		le.PutUint32(b[44+4*i:48+4*i], math.Float32bits(v))
	}
	for i, v := range t.MeanAcc {
		le.PutUint32(b[56+4*i:60+4*i], math.Float32bits(v))
	}
	le.PutUint32(b[68:72], math.Float32bits(t.Roll))
	le.PutUint32(b[72:76], math.Float32bits(t.Pitch))
	le.PutUint32(b[76:80], math.Float32bits(t.Yaw))
	// b[80:100] (5 reserved u32 words) stays zero.
	return b
}

// TpvawLen is the packed size of a Tpvaw record.
const TpvawLen = 108

// Tpvaw is the time/position/velocity/attitude/worst-case-error bundle
// accepted by save_tpvaw ((1,5)): two f64 timestamps, 6×f64
// position/velocity, 4×i32 status, 4×f32 quaternion, 3×i32 reserved.
type Tpvaw struct {
	TimeOfWeek float64
	TimeTag    float64
	Position   [3]float64
	Velocity   [3]float64
	Status     [4]int32
	Quaternion [4]float32
	Reserved   [3]int32
}

// DecodeTpvaw parses a 108-byte little-endian Tpvaw record. Sensor fusion
// is out of scope here, so the decoded value is stored but never fed into
// a navigation solution; no handler reads it back or sends it out.
func DecodeTpvaw(buf [TpvawLen]byte) Tpvaw {
	le := binary.LittleEndian
	var t Tpvaw
	t.TimeOfWeek = math.Float64frombits(le.Uint64(buf[0:8]))
	t.TimeTag = math.Float64frombits(le.Uint64(buf[8:16]))
	for i := 0; i < 3; i++ {
		t.Position[i] = math.Float64frombits(le.Uint64(buf[16+8*i : 24+8*i]))
	}
	for i := 0; i < 3; i++ {
		t.Velocity[i] = math.Float64frombits(le.Uint64(buf[40+8*i : 48+8*i]))
	}
	for i := 0; i < 4; i++ {
		t.Status[i] = int32(le.Uint32(buf[64+4*i : 68+4*i]))
	}
	for i := 0; i < 4; i++ {
		t.Quaternion[i] = math.Float32frombits(le.Uint32(buf[80+4*i : 84+4*i]))
	}
	for i := 0; i < 3; i++ {
		t.Reserved[i] = int32(le.Uint32(buf[96+4*i : 100+4*i]))
	}
	return t
}

// PayloadStatus is the 6-byte housekeeping payload emitted by hk_req
// ((5,1)).
type PayloadStatus struct {
	PayloadStatus  uint8
	BoardTempCenti int16 // centi-degrees C, sourced from the XADC register (§6)
	ImuStatus      uint8
	GpsStatus      uint8
	GpsTrackStatus uint8
}

// Pack serializes a PayloadStatus into its 6-byte little-endian layout.
func (p PayloadStatus) Pack() []byte {
	b := make([]byte, 6)
	b[0] = p.PayloadStatus
	binary.LittleEndian.PutUint16(b[1:3], uint16(p.BoardTempCenti))
	b[3] = p.ImuStatus
	b[4] = p.GpsStatus
	b[5] = p.GpsTrackStatus
	return b
}
