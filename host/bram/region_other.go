// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package bram

import "errors"

// Map is unavailable off Linux; the PL fabric only exists on the target
// SoC. Use NewSimRegion for tests and simulation-mode builds.
func Map(base uint64, size int) (*Region, error) {
	return nil, errors.New("bram: /dev/mem mapping is only supported on linux")
}
