// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, "Perfect Scale", o.Title)
	assert.Equal(t, 640, o.Width)
	assert.Equal(t, 480, o.Height)
	assert.True(t, o.Decorated)
	assert.True(t, o.Resizable)
	assert.True(t, o.VSync)
	assert.NoError(t, o.Validate())
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "perfectscale.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeSettings(t, `
title = "Scaled"
width = 1024
vsync = false
`)
	o := DefaultOptions()
	require.NoError(t, o.Load(path))

	assert.Equal(t, "Scaled", o.Title)
	assert.Equal(t, 1024, o.Width)
	assert.False(t, o.VSync)
	// fields absent from the file keep their defaults
	assert.Equal(t, 480, o.Height)
	assert.True(t, o.Decorated)
}

func TestLoadMissingFile(t *testing.T) {
	o := DefaultOptions()
	err := o.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBadTOML(t *testing.T) {
	path := writeSettings(t, `width = "wide"`)
	o := DefaultOptions()
	assert.Error(t, o.Load(path))
}

func TestValidate(t *testing.T) {
	o := DefaultOptions()
	o.Width = 0
	assert.Error(t, o.Validate())

	o = DefaultOptions()
	o.Height = -1
	assert.Error(t, o.Validate())
}
