// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func frame(n byte) []byte {
	return []byte{n, n, n, n, n, n, n, n, n, n}
}

func TestFIFO(t *testing.T) {
	r := New(4, 16)
	for i := byte(1); i <= 3; i++ {
		require.Equal(t, Enqueued, r.Enqueue(frame(i)))
	}
	for i := byte(1); i <= 3; i++ {
		got, ok := r.Dequeue()
		require.True(t, ok)
		require.Equal(t, frame(i), got)
	}
	_, ok := r.Dequeue()
	require.False(t, ok)
}

func TestDropOldestOnOverflow(t *testing.T) {
	const n = 4
	r := New(n, 16)
	for i := byte(1); i <= n+3; i++ {
		outcome := r.Enqueue(frame(i))
		if i <= n {
			require.Equal(t, Enqueued, outcome)
		} else {
			require.Equal(t, DroppedOldest, outcome)
		}
	}
	require.Equal(t, n, r.Len())
	for i := byte(n + 3 - n + 1); i <= n+3; i++ {
		got, ok := r.Dequeue()
		require.True(t, ok)
		require.Equal(t, frame(i), got)
	}
}

func TestTruncationOnOverlongWrite(t *testing.T) {
	r := New(2, 4)
	r.Enqueue([]byte{1, 2, 3, 4, 5, 6})
	got, ok := r.Dequeue()
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3, 4}, got)
}

func TestEmptyDequeue(t *testing.T) {
	r := New(2, 4)
	_, ok := r.Dequeue()
	require.False(t, ok)
}
