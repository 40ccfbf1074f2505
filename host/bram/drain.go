// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bram

import (
	"encoding/binary"

	"go.ignu.dev/firmware/conn/ring"
)

// DefaultRingDepth is the PL's per-slot rollover depth (MAX_IDX in the
// original source): write_index and write_addr both roll over modulo this
// value's relevant width, and the index diff is taken modulo 256.
const DefaultRingDepth = 128

// DefaultSlotBytes is the usable per-frame capacity of a BRAM slot.
const DefaultSlotBytes = 1528

// ipudpHeaderLen is the combined size of the IP+UDP-style header the PL
// prepends to each sensor-slot frame (20-byte IP header + 8-byte UDP
// header).
const ipudpHeaderLen = 28

// Cursor tracks the PS-side read position within one PL slot (§3
// SlotCursor, §4.A).
type Cursor struct {
	lastIndex uint8
	lastAddr  uint32
}

// DrainResult reports what one drain cycle did.
type DrainResult struct {
	Drained    int
	Desynced   bool
	Overflowed int // frames dropped by the destination ring (drop-oldest)
}

// readControlWord extracts (writeAddr, writeIndex, busy) from the control
// word at the end of a region: byte 0 = write-addr, byte 1 = write-idx,
// byte 3 = busy sentinel (0xFF means a write is in progress).
func readControlWord(region *Region) (writeAddr uint32, writeIndex uint8, busy bool) {
	b := region.Bytes()
	ctrl := b[len(b)-4:]
	return uint32(ctrl[0]), ctrl[1], ctrl[3] == 0xFF
}

// DrainSensor drains newly-written sensor frames (IMU/GPS/command) from one
// PL RX slot region into dst. The region holds DefaultRingDepth frames of
// slotBytes each, followed by a 4-byte control word.
//
// If the index and address rollcounts disagree, the slot is declared
// desynchronised: this cycle drains nothing and the cursor is resynced to
// the PL's current position, forfeiting the frames in flight rather than
// chasing a producer that outran the reader (§4.A).
func (c *Cursor) DrainSensor(region *Region, slotBytes int, dst *ring.Ring) DrainResult {
	writeAddr, writeIndex, _ := readControlWord(region)
	indexDiff := int(writeIndex - c.lastIndex) // uint8 subtraction already wraps mod 256
	addrDiff := int(uint32(writeAddr-c.lastAddr) % DefaultRingDepth)

	if indexDiff != addrDiff {
		c.lastIndex = writeIndex
		c.lastAddr = writeAddr
		return DrainResult{Desynced: true}
	}

	res := DrainResult{}
	b := region.Bytes()
	ringBytes := DefaultRingDepth * slotBytes
	for i := 0; i < addrDiff; i++ {
		off := int((uint64(c.lastAddr)+uint64(i)) * uint64(slotBytes) % uint64(ringBytes))
		frame := b[off : off+slotBytes]
		if len(frame) < ipudpHeaderLen+2 {
			continue
		}
		totalLen := binary.BigEndian.Uint16(frame[2:4])
		payloadLen := int(totalLen) - ipudpHeaderLen
		if payloadLen < 0 {
			continue
		}
		if payloadLen > slotBytes-ipudpHeaderLen {
			payloadLen = slotBytes - ipudpHeaderLen
		}
		if dst.Enqueue(frame[ipudpHeaderLen:ipudpHeaderLen+payloadLen]) == ring.DroppedOldest {
			res.Overflowed++
		}
		res.Drained++
	}
	c.lastIndex = writeIndex
	c.lastAddr = writeAddr
	return res
}

// uartRecordLen is the size of one UART-slot record: a 4-byte little-endian
// length prefix followed by up to DefaultSlotBytes-4 bytes of payload.
const uartRecordLen = DefaultSlotBytes

// DrainUART drains newly-written UART RX records from one PL UART slot
// region into dst. Each record is {length:u32 LE, bytes}, one record per
// DefaultSlotBytes-sized step. A PL-side write-in-progress sentinel must be
// observed clear before draining; if set, the whole cycle is skipped.
func (c *Cursor) DrainUART(region *Region, dst *ring.Ring) DrainResult {
	writeAddr, writeIndex, busy := readControlWord(region)
	if busy {
		return DrainResult{}
	}
	indexDiff := int(writeIndex - c.lastIndex)
	addrDiff := int(uint32(writeAddr-c.lastAddr) % DefaultRingDepth)

	if indexDiff != addrDiff {
		c.lastIndex = writeIndex
		c.lastAddr = writeAddr
		return DrainResult{Desynced: true}
	}

	res := DrainResult{}
	b := region.Bytes()
	ringBytes := DefaultRingDepth * uartRecordLen
	for i := 0; i < addrDiff; i++ {
		off := int((uint64(c.lastAddr)+uint64(i)) * uint64(uartRecordLen) % uint64(ringBytes))
		rec := b[off : off+uartRecordLen]
		length := binary.LittleEndian.Uint32(rec[0:4])
		if int(length) > uartRecordLen-4 {
			length = uint32(uartRecordLen - 4)
		}
		if dst.Enqueue(rec[4:4+length]) == ring.DroppedOldest {
			res.Overflowed++
		}
		res.Drained++
	}
	c.lastIndex = writeIndex
	c.lastAddr = writeAddr
	return res
}
