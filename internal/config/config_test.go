// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ignu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sim: true
ring_depth: 64
channels:
  - num: 1
    baud: 57600
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Sim)
	require.Equal(t, 64, cfg.RingDepth)
	require.Equal(t, 1528, cfg.SlotBytes) // unset in file, keeps default
	require.Len(t, cfg.Channels, 1)
	require.Equal(t, 57600, cfg.Channels[0].Baud)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/ignu.yaml")
	require.Error(t, err)
}
