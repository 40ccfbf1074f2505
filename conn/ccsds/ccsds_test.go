// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ccsds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeTMLengthField(t *testing.T) {
	for _, n := range []int{0, 4, 100} {
		tm := EncodeTM(20, 1, make([]byte, n))
		pktLen := uint16(tm[4])<<8 | uint16(tm[5])
		require.Equal(t, uint16(TmSecHeaderSize+n+CrcSize-1), pktLen)
		require.Len(t, tm, PriHeaderSize+TmSecHeaderSize+n+CrcSize)
	}
}

func TestEncodeTMCrcVerifies(t *testing.T) {
	tm := EncodeTM(5, 1, []byte{1, 2, 3, 4, 5, 6})
	body := tm[:len(tm)-CrcSize]
	want := uint16(tm[len(tm)-2])<<8 | uint16(tm[len(tm)-1])
	require.Equal(t, want, Crc16(body))
}

func TestDecodeTC(t *testing.T) {
	pkt := []byte{0x08, 0x50, 0xC0, 0x00, 0x00, 0x03, 1, 1, 0x00, 0x06}
	tc, err := DecodeTC(pkt)
	require.NoError(t, err)
	require.Equal(t, uint8(1), tc.Service)
	require.Equal(t, uint8(1), tc.Subtype)
	require.Empty(t, tc.Data)
}

func TestDecodeTCTooShort(t *testing.T) {
	_, err := DecodeTC(make([]byte, 9))
	require.ErrorIs(t, err, ErrTooShort)
}

func TestAckPayload(t *testing.T) {
	require.Equal(t, []byte{0xFF, 0, 0, 0}, AckPayload(AckValid))
	require.Equal(t, []byte{0x00, 0, 0, 0}, AckPayload(AckInvalid))
}
