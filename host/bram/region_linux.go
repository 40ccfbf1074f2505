// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package bram

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

var (
	devMemMu  sync.Mutex
	devMem    *os.File
	devMemErr error
)

func openDevMem() (*os.File, error) {
	devMemMu.Lock()
	defer devMemMu.Unlock()
	if devMem == nil && devMemErr == nil {
		devMem, devMemErr = os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	}
	return devMem, devMemErr
}

// Map maps size bytes of physical memory starting at base into the
// process's address space via /dev/mem, rounding to the containing 4Kb
// pages.
func Map(base uint64, size int) (*Region, error) {
	f, err := openDevMem()
	if err != nil {
		return nil, fmt.Errorf("bram: open /dev/mem: %w", err)
	}
	offset := int(base & 0xFFF)
	mapped, err := unix.Mmap(
		int(f.Fd()),
		int64(base&^0xFFF),
		(size+offset+0xFFF)&^0xFFF,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		return nil, fmt.Errorf("bram: mmap at 0x%x: %w", base, err)
	}
	return &Region{
		bytes: mapped[offset : offset+size],
		close: func() error { return unix.Munmap(mapped) },
	}, nil
}
