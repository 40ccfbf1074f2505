// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bram

// NewSimRegion returns an in-memory Region of the given size, standing in
// for a PL-mapped window. Used by tests and by --sim runs where there is no
// real PL fabric to map.
func NewSimRegion(size int) *Region {
	return &Region{bytes: make([]byte, size)}
}
