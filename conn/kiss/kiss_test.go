// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package kiss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func feedAll(d *Decoder, bytes []byte) [][]byte {
	var frames [][]byte
	for _, b := range bytes {
		if f, ok := d.Feed(b); ok {
			cp := append([]byte(nil), f...)
			frames = append(frames, cp)
		}
	}
	return frames
}

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		{0xC0},
		{0xDB},
		{0xC0, 0xDB, 0xC0},
		{},
		{1, 2, 3, 4, 5},
	}
	for _, payload := range cases {
		encoded := Encode(payload)
		d := NewDecoder()
		frames := feedAll(d, encoded)
		if len(payload) == 0 {
			// An empty payload produces idx==1 (just the command byte),
			// which the decoder correctly treats as "nothing to emit".
			require.Empty(t, frames)
			continue
		}
		require.Len(t, frames, 1)
		require.Equal(t, payload, frames[0])
	}
}

func TestEscapeSequenceS4(t *testing.T) {
	// escaped FEND and FESC inside the payload: C0 00 DB DC DB DD C0 -> [C0, DB]
	d := NewDecoder()
	frames := feedAll(d, []byte{0xC0, 0x00, 0xDB, 0xDC, 0xDB, 0xDD, 0xC0})
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0xC0, 0xDB}, frames[0])
}

func TestNonZeroCommandByteDropped(t *testing.T) {
	// Open question 4: production firmware enforces cmd == 0x00.
	d := NewDecoder()
	frames := feedAll(d, []byte{0xC0, 0x01, 0xAA, 0xBB, 0xC0})
	require.Empty(t, frames)
}

func TestBufferOverflowResyncs(t *testing.T) {
	d := NewDecoder()
	d.Feed(fend)
	for i := 0; i < MaxFrame+10; i++ {
		d.Feed(0x41)
	}
	require.Equal(t, 1, d.Drops())
	// Decoder is back in WaitFend; a fresh frame still decodes correctly.
	frames := feedAll(d, []byte{0xC0, 0x00, 0x01, 0x02, 0xC0})
	require.Len(t, frames, 1)
	require.Equal(t, []byte{0x01, 0x02}, frames[0])
}
