// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensor

import "sync"

// Snapshot holds the most recent IMU and GPS records. There are two writer
// paths (the IMU drain task and the GPS drain task, each owning one field)
// and multiple reader paths (the telemetry scheduler); a reader must never
// observe a torn mix of an old and new record (§4.D).
//
// A short critical section is enough here: both records fit comfortably in
// an L1 cache line's neighborhood and the write rate (500 Hz IMU, 1 Hz GPS)
// is far below what a mutex's uncontended fast path costs.
type Snapshot struct {
	mu  sync.RWMutex
	imu ImuRecord
	gps GpsRecord
}

// SetIMU replaces the stored IMU record.
func (s *Snapshot) SetIMU(r ImuRecord) {
	s.mu.Lock()
	s.imu = r
	s.mu.Unlock()
}

// SetGPS replaces the stored GPS record.
func (s *Snapshot) SetGPS(r GpsRecord) {
	s.mu.Lock()
	s.gps = r
	s.mu.Unlock()
}

// Get returns the last-known-good IMU and GPS records as a whole,
// consistent pair of values.
func (s *Snapshot) Get() (ImuRecord, GpsRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imu, s.gps
}
