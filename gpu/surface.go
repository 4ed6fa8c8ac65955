// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// Surface manages the presentable surface bound to a window: its
// configuration (format, size, present mode, alpha mode), frame
// acquisition, and presentation. The native window backing the
// surface must outlive it; [host.App] owns both and releases the
// surface first.
//
// Surface is single-threaded: it is owned by the event loop driver
// and has no concurrent mutator.
type Surface struct {
	// GPU is the context this surface presents through.
	GPU *GPU

	// Surface is the underlying WebGPU surface.
	Surface *wgpu.Surface

	// Config is the active surface configuration. Width and Height
	// track the window's physical pixel size; the whole struct is
	// mutated in place by [Surface.SetSize] and reapplied to the
	// surface. Always has Width > 0 and Height > 0 when applied.
	Config wgpu.SurfaceConfiguration

	// current is the texture acquired for the frame in flight.
	// At most one frame is outstanding at a time; nil between frames.
	current *wgpu.Texture
}

// NewSurface configures the given WebGPU surface for presentation at
// the given physical size and binds the configuration immediately.
// Format, present mode, and alpha mode are selected from the
// capabilities the adapter reports for this surface: the first sRGB
// format (else the first reported), the backend-preferred present
// mode (subject to vsync, see [SelectPresentMode]), and the first
// reported alpha mode.
func NewSurface(gp *GPU, surface *wgpu.Surface, size image.Point, vsync bool) *Surface {
	caps := surface.GetCapabilities(gp.Adapter)
	s := &Surface{
		GPU:     gp,
		Surface: surface,
		Config: wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      SelectFormat(caps.Formats),
			Width:       uint32(size.X),
			Height:      uint32(size.Y),
			PresentMode: SelectPresentMode(caps.PresentModes, vsync),
			AlphaMode:   caps.AlphaModes[0],
		},
	}
	slog.Debug("gpu: surface configured",
		"format", s.Config.Format,
		"present", s.Config.PresentMode,
		"width", s.Config.Width,
		"height", s.Config.Height)
	s.configure()
	return s
}

// Size returns the configured size in physical pixels.
func (s *Surface) Size() image.Point {
	return image.Pt(int(s.Config.Width), int(s.Config.Height))
}

// SetSize updates the stored configuration to the given physical size
// and reapplies it to the surface, synchronously: the new size is in
// effect before the next frame is acquired. A size with either
// dimension zero is ignored entirely; minimized windows report
// transient zero sizes that would otherwise configure a degenerate
// surface.
func (s *Surface) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	s.Config.Width = uint32(size.X)
	s.Config.Height = uint32(size.Y)
	s.configure()
}

// configure reapplies Config to the surface. No-op until the surface
// and device handles exist, which makes configuration logic testable
// without a GPU.
func (s *Surface) configure() {
	if s.Surface == nil || s.GPU == nil || s.GPU.Device == nil {
		return
	}
	s.Surface.Configure(s.GPU.Adapter, s.GPU.Device, &s.Config)
}

// AcquireNextTexture acquires the next back-buffer texture for
// rendering. The returned texture is valid for exactly one
// render+present cycle and must not be retained across frames; it is
// consumed by [Surface.Present] or [Surface.Discard]. Failures are
// returned as a classified [*SurfaceError]; the surface never retries
// internally, the caller decides based on the kind.
func (s *Surface) AcquireNextTexture() (*wgpu.Texture, error) {
	if s.current != nil {
		return nil, &SurfaceError{Kind: SurfaceOther,
			Err: errPreviousFrameOutstanding}
	}
	tex, err := s.Surface.GetCurrentTexture()
	if err != nil {
		return nil, ClassifySurfaceError(err)
	}
	s.current = tex
	return tex, nil
}

// Present hands the acquired frame to the platform compositor and
// releases it. Presentation is fire-and-forget: there is no failure
// path. No-op when no frame is outstanding.
func (s *Surface) Present() {
	if s.current == nil {
		return
	}
	s.Surface.Present()
	s.current.Release()
	s.current = nil
}

// Discard releases the acquired frame without presenting it, so that
// the next acquire can proceed after a failed render.
func (s *Surface) Discard() {
	if s.current == nil {
		return
	}
	s.current.Release()
	s.current = nil
}

// Release drops any outstanding frame and releases the underlying
// WebGPU surface. Call before releasing the GPU and destroying the
// window.
func (s *Surface) Release() {
	s.Discard()
	if s.Surface != nil {
		s.Surface.Release()
		s.Surface = nil
	}
}
