// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package host

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var lastWindowID atomic.Int64

// Window wraps the native window handle: identity for event routing
// plus physical pixel size. It is the surface provider; the WebGPU
// surface borrows its lifetime, so the window must outlive any
// surface created from it (see [App]).
type Window struct {
	// Glw is the underlying glfw window.
	Glw *glfw.Window

	// ID is the process-unique identity used to route loop events.
	ID WindowID
}

// NewWindow creates the native window per opts: no client graphics
// API (WebGPU binds its own surface), initially hidden; [App.Run]
// shows it once the loop starts. Must be called on the main thread
// after [gpu.Init].
func NewWindow(opts *Options) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.Decorated, boolHint(opts.Decorated))
	glfw.WindowHint(glfw.Visible, glfw.False)

	glw, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("host: create window failed: %w", err)
	}
	return &Window{Glw: glw, ID: WindowID(lastWindowID.Add(1))}, nil
}

// Size returns the physical (framebuffer) size in pixels, which on
// high-DPI displays differs from the logical window size by the scale
// factor.
func (w *Window) Size() image.Point {
	wd, ht := w.Glw.GetFramebufferSize()
	return image.Pt(wd, ht)
}

// Show makes the window visible.
func (w *Window) Show() {
	w.Glw.Show()
}

// ShouldClose reports whether the window has been flagged to close.
func (w *Window) ShouldClose() bool {
	return w.Glw.ShouldClose()
}

// Destroy releases the native window. Everything bound to the window
// (surface, device) must already be released.
func (w *Window) Destroy() {
	w.Glw.Destroy()
	w.Glw = nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
