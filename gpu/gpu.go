// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu manages the WebGPU device, the presentable surface bound
// to a native window, and the per-frame clear pass that is submitted to
// the device queue.
package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoAdapter is returned by [NewGPU] when no GPU adapter compatible
// with the target surface exists on this system.
var ErrNoAdapter = errors.New("gpu: no compatible adapter found")

// GPU holds the logical WebGPU device, its command queue, and the
// adapter they were negotiated from. Exactly one GPU exists per
// process; it is created once at startup, before the event loop runs,
// and is immutable afterwards.
type GPU struct {
	// Instance is the WebGPU instance the adapter was enumerated from.
	Instance *wgpu.Instance

	// Adapter represents the physical (or software) GPU in use.
	// Surface capability queries are keyed by (Adapter, Surface).
	Adapter *wgpu.Adapter

	// Device is the logical device, created with default features
	// and limits.
	Device *wgpu.Device

	// Queue is the command queue of Device. All per-frame command
	// buffers are submitted here.
	Queue *wgpu.Queue
}

// NewGPU negotiates an adapter compatible with the given surface and
// creates a logical device and queue from it. This is the one blocking
// startup step of the process: adapter and device negotiation is
// asynchronous in the backend, and NewGPU waits for it to resolve.
// It does not recur and there is no retry; no adapter state changes
// between attempts without external intervention, so both failure
// modes are fatal:
//
//   - no usable adapter: [ErrNoAdapter]
//   - device request rejected by the platform or driver: wrapped error
func NewGPU(instance *wgpu.Instance, surface *wgpu.Surface) (*GPU, error) {
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	if adapter == nil {
		return nil, ErrNoAdapter
	}

	info := adapter.GetInfo()
	slog.Info("gpu: adapter selected",
		"name", info.Name,
		"backend", info.BackendType,
		"type", info.AdapterType)

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "perfectscale device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: wgpu.DefaultLimits()},
	})
	if err != nil {
		adapter.Release()
		return nil, fmt.Errorf("gpu: device request failed: %w", err)
	}

	return &GPU{
		Instance: instance,
		Adapter:  adapter,
		Device:   device,
		Queue:    device.GetQueue(),
	}, nil
}

// Release frees the device and adapter, in that order. The instance is
// shared and is not released here. Call after all surfaces bound to
// this GPU have been released.
func (gp *GPU) Release() {
	if gp.Device != nil {
		gp.Device.Release()
		gp.Device = nil
		gp.Queue = nil
	}
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
}
