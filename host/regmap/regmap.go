// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package regmap holds the bit-exact PL BRAM/control register map. These
// addresses must be preserved exactly; they are a hardware contract, not an
// implementation choice.
package regmap

const (
	// PLCmd, LVDSTxCmd and UARTTxCmd are PL control registers.
	PLCmd     = 0x40000000
	LVDSTxCmd = 0x40000010
	UARTTxCmd = 0x40000020

	// RXSlotBase is the base address of per-slot RX regions; slot numbers
	// are 1-based, RXSlotStride bytes apart.
	RXSlotBase   = 0x40040000
	RXSlotStride = 0x20000

	// TXSlotBase is the base address of per-UART-channel TX regions;
	// channel numbers are 1-based, TXSlotStride bytes apart.
	TXSlotBase   = 0x40016000
	TXSlotStride = 0x2000

	// UARTConfigBase is the base of the UART baud-rate configuration
	// block; channel numbers are 1-based, UARTConfigStride bytes apart.
	// The first byte of each channel's block is the baud-rate enum.
	UARTConfigBase   = 0x40000460
	UARTConfigStride = 0x20

	// XADCTemp is the XADC temperature register: a 12-bit raw value in
	// bits [15:4].
	XADCTemp = 0x43C00200
)

// RXSlotAddr returns the physical base address of RX slot n (1-based).
func RXSlotAddr(n int) uint64 {
	return RXSlotBase + uint64(n-1)*RXSlotStride
}

// TXSlotAddr returns the physical base address of UART TX channel ch
// (1-based).
func TXSlotAddr(ch int) uint64 {
	return TXSlotBase + uint64(ch-1)*TXSlotStride
}

// UARTConfigAddr returns the physical base address of UART channel ch's
// (1-based) baud-rate configuration block.
func UARTConfigAddr(ch int) uint64 {
	return UARTConfigBase + uint64(ch-1)*UARTConfigStride
}

// XADCTempC converts a 12-bit raw XADC reading (already shifted out of bits
// [15:4]) to degrees Celsius: T = raw * 503.975/4096 - 273.15.
func XADCTempC(raw uint16) float64 {
	return float64(raw)*503.975/4096 - 273.15
}

// baudEnum maps a bits-per-second rate to the single-byte enum the PL's
// UART-config block expects at the first byte of each channel's block.
var baudEnum = map[int]byte{
	1200:   1,
	2400:   2,
	4800:   3,
	9600:   4,
	14400:  5,
	19200:  6,
	38400:  7,
	57600:  8,
	115200: 9,
	230400: 10,
	460800: 11,
	921600: 12,
}

// BaudEnum returns the PL's UART-config baud-rate enum byte for baud, and
// false if baud isn't one of the rates the PL recognizes.
func BaudEnum(baud int) (byte, bool) {
	v, ok := baudEnum[baud]
	return v, ok
}
