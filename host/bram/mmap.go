// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bram maps the PL's BRAM regions into the PS process's address
// space and drains newly-written frames out of them (component A).
//
// Map a physical address range via /dev/mem, round to 4Kb pages, and hand
// back a byte-addressable view, using golang.org/x/sys/unix for the
// mmap/munmap calls. A separate in-memory backend (region_sim.go) serves
// tests and simulation mode, since there is no PL fabric to mmap against
// off-target.
package bram

import "encoding/binary"

// Region is a byte-addressable view of a physical memory window, either a
// real /dev/mem mapping (region_linux.go) or an in-memory stand-in used by
// the simulated backend and tests (region_sim.go).
type Region struct {
	bytes []byte
	close func() error
}

// Bytes returns the raw backing slice.
func (r *Region) Bytes() []byte { return r.bytes }

// Len returns the size of the mapped window in bytes.
func (r *Region) Len() int { return len(r.bytes) }

// Close unmaps the region. It is a no-op for the simulated backend.
func (r *Region) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Uint32At reads a little-endian uint32 at byte offset off.
func (r *Region) Uint32At(off int) uint32 {
	return binary.LittleEndian.Uint32(r.bytes[off : off+4])
}

// PutUint32At writes a little-endian uint32 at byte offset off.
func (r *Region) PutUint32At(off int, v uint32) {
	binary.LittleEndian.PutUint32(r.bytes[off:off+4], v)
}
