// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package csp implements the CubeSat Space Protocol routing layer: a 4-byte
// big-endian header plus a trailing CRC-32C, carried one packet per KISS
// frame.
package csp

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// MyAddr and PdhsAddr are the CSP node addresses for this system, fixed by
// the ICD.
const (
	MyAddr   = 6
	PdhsAddr = 19

	CmdRxPort   = 10
	AsyncTxPort = 11

	HeaderSize = 4
	CrcSize    = 4
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ErrShort is returned when a buffer is too small to hold a header and CRC.
var ErrShort = errors.New("csp: packet shorter than header+crc")

// ErrCRC is returned when the trailing CRC-32C does not match.
var ErrCRC = errors.New("csp: crc mismatch")

// ErrWrongDest is returned when the header's destination isn't MyAddr.
var ErrWrongDest = errors.New("csp: not addressed to this node")

// Header is the decoded 32-bit CSP routing header.
type Header struct {
	Prio  uint8
	Dest  uint8
	Src   uint8
	Dport uint8
	Sport uint8
	Flags uint8
}

func encodeHeader(h Header) uint32 {
	return uint32(h.Prio&0x03)<<30 |
		uint32(h.Dest&0x1F)<<25 |
		uint32(h.Src&0x1F)<<20 |
		uint32(h.Dport&0x3F)<<14 |
		uint32(h.Sport&0x3F)<<8 |
		uint32(h.Flags)
}

func decodeHeader(w uint32) Header {
	return Header{
		Prio:  uint8(w >> 30 & 0x03),
		Dest:  uint8(w >> 25 & 0x1F),
		Src:   uint8(w >> 20 & 0x1F),
		Dport: uint8(w >> 14 & 0x3F),
		Sport: uint8(w >> 8 & 0x3F),
		Flags: uint8(w),
	}
}

// Crc32C computes CRC-32C (Castagnoli) over b, matching poly 0x82F63B78
// reflected, init 0xFFFFFFFF, xorout 0xFFFFFFFF.
func Crc32C(b []byte) uint32 {
	return crc32.Checksum(b, castagnoli)
}

// Packet is a decoded CSP packet: header plus routed payload (the CCSDS
// frame it carries).
type Packet struct {
	Header  Header
	Payload []byte
}

// Receive validates and decodes a raw CSP packet (header + payload + CRC).
// It rejects packets shorter than HeaderSize+CrcSize, with a CRC mismatch,
// or not addressed to MyAddr (§4.F, §7 kind 2).
func Receive(pkt []byte) (Packet, error) {
	if len(pkt) < HeaderSize+CrcSize {
		return Packet{}, ErrShort
	}
	body := pkt[:len(pkt)-CrcSize]
	wantCRC := binary.BigEndian.Uint32(pkt[len(pkt)-CrcSize:])
	if Crc32C(body) != wantCRC {
		return Packet{}, ErrCRC
	}
	h := decodeHeader(binary.BigEndian.Uint32(body[:HeaderSize]))
	if h.Dest != MyAddr {
		return Packet{}, ErrWrongDest
	}
	return Packet{Header: h, Payload: body[HeaderSize:]}, nil
}

// Send builds a CSP packet addressed to dest/dport from this node
// (src=MyAddr, sport=CmdRxPort, prio=2, flags=0), appending the CRC-32C
// trailer over header+data (§4.F).
func Send(dest, dport uint8, data []byte) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(data)+CrcSize)
	binary.BigEndian.PutUint32(out, encodeHeader(Header{
		Prio:  2,
		Dest:  dest,
		Src:   MyAddr,
		Dport: dport,
		Sport: CmdRxPort,
	}))
	out = append(out, data...)
	var crc [CrcSize]byte
	binary.BigEndian.PutUint32(crc[:], Crc32C(out))
	return append(out, crc[:]...)
}
