// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ring implements the bounded single-producer/single-consumer byte
// frame queue that sits between the BRAM drain and every downstream
// consumer (KISS decoder, sensor parser, egress mux).
//
// A Ring owns a pre-allocated arena of N slots of SlotBytes capacity each.
// There is no dynamic allocation on the hot path: Enqueue copies into a
// slot already sized for the worst case, Dequeue returns a view into that
// same arena valid until the next Enqueue reuses the slot.
//
// A Ring must never be shared by two producers or two consumers; the
// fields below are not safe for that case and Ring does not attempt to
// detect it.
package ring

import "fmt"

// Outcome reports what Enqueue did.
type Outcome int

const (
	// Enqueued means the frame was written without disturbing any other slot.
	Enqueued Outcome = iota
	// DroppedOldest means the ring was full: the oldest queued frame was
	// discarded to make room, per the drop-oldest overflow policy.
	DroppedOldest
)

func (o Outcome) String() string {
	if o == DroppedOldest {
		return "dropped-oldest"
	}
	return "enqueued"
}

// Ring is a bounded SPSC queue of variable-length byte frames backed by a
// fixed arena. Every field-write is bounds checked against SlotBytes;
// overlong writes are truncated rather than rejected, matching the PL's own
// fixed-size slot framing.
type Ring struct {
	arena     [][]byte
	lens      []int
	slotBytes int
	front     int
	rear      int
	count     int
}

// New allocates a ring of n slots, each able to hold up to slotBytes of
// payload. slotBytes must be the usable payload capacity (already excluding
// any length-prefix or control-word overhead the caller's frame format
// adds).
func New(n, slotBytes int) *Ring {
	if n <= 0 || slotBytes <= 0 {
		panic(fmt.Sprintf("ring: invalid geometry n=%d slotBytes=%d", n, slotBytes))
	}
	arena := make([][]byte, n)
	for i := range arena {
		arena[i] = make([]byte, slotBytes)
	}
	return &Ring{arena: arena, lens: make([]int, n), slotBytes: slotBytes}
}

// Len returns the number of queued frames.
func (r *Ring) Len() int { return r.count }

// Cap returns the number of slots in the ring.
func (r *Ring) Cap() int { return len(r.arena) }

// Enqueue copies b into the ring, truncating to SlotBytes if necessary.
// When the ring is already full, the frame at front is discarded first
// (drop-oldest) and Outcome reports DroppedOldest.
func (r *Ring) Enqueue(b []byte) Outcome {
	outcome := Enqueued
	if r.count == len(r.arena) {
		r.front = (r.front + 1) % len(r.arena)
		r.count--
		outcome = DroppedOldest
	}
	n := copy(r.arena[r.rear], b)
	r.lens[r.rear] = n
	r.rear = (r.rear + 1) % len(r.arena)
	r.count++
	return outcome
}

// Dequeue removes and returns the oldest frame. The returned slice aliases
// the ring's arena and is only valid until the slot is reused by a
// subsequent Enqueue; callers that must retain the bytes need to copy them.
func (r *Ring) Dequeue() ([]byte, bool) {
	if r.count == 0 {
		return nil, false
	}
	b := r.arena[r.front][:r.lens[r.front]]
	r.front = (r.front + 1) % len(r.arena)
	r.count--
	return b, true
}
