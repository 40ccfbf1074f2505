// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ccsds implements the CCSDS/PUS telecommand and telemetry packet
// codec: primary header, TC/TM secondary headers, and the CRC-16/CCITT-FALSE
// trailer. It has no knowledge of service dispatch; see package pus for
// that.
package ccsds

import (
	"encoding/binary"
	"errors"
)

const (
	// Apid is the IGNU application process ID (Table 5 of the ICD).
	Apid = 0x550

	PriHeaderSize = 6
	TcSecHeaderSize = 4
	TmSecHeaderSize = 12
	CrcSize         = 2

	// MinTcLen is the minimum length of an inbound TC: primary header,
	// secondary header, and no user data.
	MinTcLen = PriHeaderSize + TcSecHeaderSize
)

// ErrTooShort is returned when a packet is too small to contain a primary
// header and a minimal secondary header.
var ErrTooShort = errors.New("ccsds: packet shorter than minimum TC length")

// ErrCRC reports a trailing CRC-16 mismatch. DecodeTC does not check the
// CRC-16, so no function in this package currently returns it.
var ErrCRC = errors.New("ccsds: crc mismatch")

var crc16Table = buildCRC16Table()

func buildCRC16Table() [256]uint16 {
	var t [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

// Crc16 computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) over b,
// table-driven the same way hash/crc32 precomputes its Castagnoli table.
func Crc16(b []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, c := range b {
		crc = crc<<8 ^ crc16Table[byte(crc>>8)^c]
	}
	return crc
}

// TC is a decoded telecommand: primary header fields plus service/subtype
// and user data (secondary header's Source field is carried too, though
// nothing in this system currently consumes it beyond logging).
type TC struct {
	Apid    uint16
	Service uint8
	Subtype uint8
	Source  uint16
	Data    []byte
}

// DecodeTC parses an inbound CCSDS TC packet (primary header + 4-byte TC
// secondary header + user data). It does not validate a trailing CRC-16;
// callers are expected to have already had csp.Receive validate the outer
// CSP CRC, which is the layer the source firmware trusts for integrity
// on the command path (§4.G only requires len>=10).
func DecodeTC(pkt []byte) (TC, error) {
	if len(pkt) < MinTcLen {
		return TC{}, ErrTooShort
	}
	apid := uint16(pkt[0]&0x07)<<8 | uint16(pkt[1])
	sec := pkt[PriHeaderSize:]
	return TC{
		Apid:    apid,
		Service: sec[0],
		Subtype: sec[1],
		Source:  binary.BigEndian.Uint16(sec[2:4]),
		Data:    pkt[PriHeaderSize+TcSecHeaderSize:],
	}, nil
}

// EncodeTM builds a full TM packet: 6-byte primary header (packet-id
// 0x0800|Apid, seq-ctrl 0xC000 unsegmented, length = secHdr+data+crc-1),
// 12-byte secondary header (service, subtype, source APID big-endian, 6
// zero time bytes, flags=0, spare=0), user data, then CRC-16 over
// everything preceding it (§4.G "TM emit").
func EncodeTM(service, subtype uint8, data []byte) []byte {
	total := TmSecHeaderSize + len(data) + CrcSize
	out := make([]byte, 0, PriHeaderSize+total)

	packetID := uint16(0x0800) | uint16(Apid&0x07FF)
	var pri [PriHeaderSize]byte
	binary.BigEndian.PutUint16(pri[0:2], packetID)
	binary.BigEndian.PutUint16(pri[2:4], 0xC000)
	pktLen := uint16(TmSecHeaderSize + len(data) + CrcSize - 1)
	binary.BigEndian.PutUint16(pri[4:6], pktLen)
	out = append(out, pri[:]...)

	var sec [TmSecHeaderSize]byte
	sec[0] = service
	sec[1] = subtype
	binary.BigEndian.PutUint16(sec[2:4], uint16(Apid))
	// sec[4:10] time is left zero; sec[10] flags=0; sec[11] spare=0.
	out = append(out, sec[:]...)

	out = append(out, data...)

	var crc [CrcSize]byte
	binary.BigEndian.PutUint16(crc[:], Crc16(out))
	return append(out, crc[:]...)
}

// AckValid and AckInvalid are the two values ever placed in an Ack payload
// byte 0 (the remaining 3 bytes are always zero).
const (
	AckValid   = 0xFF
	AckInvalid = 0x00
)

// AckPayload builds the 4-byte acknowledgement payload [ack, 0, 0, 0].
func AckPayload(ack byte) []byte {
	return []byte{ack, 0, 0, 0}
}
