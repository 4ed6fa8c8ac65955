// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultClearColor is cornflower blue (100, 149, 237),
// gamma-corrected so the displayed color matches the intended
// perceptual value on non-linear displays.
var DefaultClearColor = ClearColorFromRGB8(100, 149, 237)

// ClearColorFromRGB8 converts an 8-bit RGB color to the linear clear
// color for a render pass, raising each normalized channel to the 2.2
// power. Alpha is always 1.
func ClearColorFromRGB8(r, g, b uint8) wgpu.Color {
	return wgpu.Color{
		R: math.Pow(float64(r)/255, 2.2),
		G: math.Pow(float64(g)/255, 2.2),
		B: math.Pow(float64(b)/255, 2.2),
		A: 1,
	}
}

// Render builds and submits the per-frame command sequence: one render
// pass over the acquired frame's view containing a single clear
// operation. There are no draw calls at this stage; pipelines and
// passes beyond the clear are extension points.
type Render struct {
	// ClearColor is written to every pixel of the frame.
	ClearColor wgpu.Color
}

// NewRender returns a Render clearing to [DefaultClearColor].
func NewRender() *Render {
	return &Render{ClearColor: DefaultClearColor}
}

// ClearRenderPass returns a render pass descriptor that clears the
// given view to ClearColor and stores the result. No depth/stencil
// attachment.
func (rd *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		Label: "clear pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: rd.ClearColor,
		}},
	}
}

// RenderFrame acquires the next frame from sf, records one command
// buffer holding the clear pass, submits it to the queue, and
// presents. Submission does not wait for GPU completion; the next
// frame's acquire places no ordering dependency on it.
//
// The returned error is the classified surface error from acquisition
// (or a [SurfaceOther] wrap of an encoding failure); the caller
// classifies with [KindOf] and decides whether to reconfigure, skip
// the frame, or terminate.
func (rd *Render) RenderFrame(gp *GPU, sf *Surface) error {
	tex, err := sf.AcquireNextTexture()
	if err != nil {
		return err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		sf.Discard()
		return ClassifySurfaceError(err)
	}
	defer view.Release()

	encoder, err := gp.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "render encoder",
	})
	if err != nil {
		sf.Discard()
		return ClassifySurfaceError(err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(rd.ClearRenderPass(view))
	pass.End()
	pass.Release() // must happen before Finish

	cmd, err := encoder.Finish(nil)
	if err != nil {
		sf.Discard()
		return ClassifySurfaceError(err)
	}
	gp.Queue.Submit(cmd)
	cmd.Release()

	sf.Present()
	return nil
}
