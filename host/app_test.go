// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package host

import (
	"image"
	"runtime"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectscale/perfectscale/gpu"
)

func init() {
	runtime.LockOSThread()
}

func TestAppClearLoop(t *testing.T) {
	t.Skip("Need software GPU on CI")
	require.NoError(t, gpu.Init())
	defer gpu.Terminate()

	opts := DefaultOptions()
	opts.Width = 320
	opts.Height = 240
	a, err := NewApp(opts)
	require.NoError(t, err)

	// device and queue exist and the surface is configured at the
	// window's physical size before the first frame
	require.NotNil(t, a.GPU.Device)
	require.NotNil(t, a.GPU.Queue)
	assert.Equal(t, a.Window.Size(), a.Surface.Size())
	assert.Positive(t, a.Surface.Config.Width)
	assert.Positive(t, a.Surface.Config.Height)

	frames := 0
	a.Update = func() { frames++ }

	// three passes of the Run cycle: each flush requests a redraw and
	// each redraw submits and presents one clear frame
	for range 3 {
		glfw.PollEvents()
		a.post(EventsFlushed{Window: a.state.Window})
		a.drain()
	}
	assert.Equal(t, 3, frames)
	assert.Equal(t, Running, a.state.Phase)

	// a resize reconfigures the surface before the next acquire
	a.post(Resized{Window: a.state.Window, Size: image.Pt(256, 128)})
	a.post(RedrawRequested{Window: a.state.Window})
	a.drain()
	assert.Equal(t, image.Pt(256, 128), a.Surface.Size())
	assert.Equal(t, 4, frames)

	// a close request ends the loop; teardown is clean
	a.post(CloseRequested{Window: a.state.Window})
	a.drain()
	assert.Equal(t, Exiting, a.state.Phase)
	assert.True(t, a.Window.ShouldClose())
	a.release()
}
