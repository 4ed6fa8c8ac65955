// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/cogentcore/webgpu/wgpu"

// IsSRGBFormat reports whether f is one of the gamma-correct surface
// formats. Only the 8-bit sRGB formats appear in surface capability
// lists on the supported backends.
func IsSRGBFormat(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// SelectFormat returns the surface format to configure from the
// adapter's reported capability list: the first sRGB format in list
// order, falling back to the first reported format when none is sRGB.
// An empty list falls back to BGRA8UnormSrgb, the most widely
// supported surface format.
func SelectFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if IsSRGBFormat(f) {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return wgpu.TextureFormatBGRA8UnormSrgb
}

// SelectPresentMode returns the present mode to configure. With vsync
// the backend-preferred mode (first in the reported list) is kept;
// without it Immediate is preferred when the surface reports it.
func SelectPresentMode(modes []wgpu.PresentMode, vsync bool) wgpu.PresentMode {
	if len(modes) == 0 {
		return wgpu.PresentModeFifo
	}
	if !vsync {
		for _, m := range modes {
			if m == wgpu.PresentModeImmediate {
				return m
			}
		}
	}
	return modes[0]
}
