// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform
// builds. Other platforms need to provide their own surface source.

// Init initializes the window system for display use, using glfw.
// Must be called before any other gpu or host call.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	return glfw.Init()
}

// Terminate shuts the window system down; call as the last thing
// before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

var theInstance *wgpu.Instance

// Instance returns the process-wide WebGPU instance, creating it on
// first use. Single-threaded like everything else here: first call
// happens at startup on the main thread.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// CreateWindowSurface returns a WebGPU surface bound to the given
// window. The window must outlive the surface; the [host.App]
// aggregate enforces this by owning both and releasing the surface
// first.
func CreateWindowSurface(w *glfw.Window) *wgpu.Surface {
	return Instance().CreateSurface(wgpuglfw.GetSurfaceDescriptor(w))
}
