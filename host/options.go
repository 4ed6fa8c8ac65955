// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Options are the externally supplied window and presentation
// parameters. They configure the host; they carry no rendering
// semantics.
type Options struct {
	// Title is the window title.
	Title string `toml:"title"`

	// Width and Height are the initial window size in logical
	// (screen-coordinate) pixels; the surface is configured at the
	// corresponding physical size.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Decorated includes the platform title bar and borders.
	Decorated bool `toml:"decorated"`

	// Resizable allows the user to resize the window.
	Resizable bool `toml:"resizable"`

	// VSync keeps the backend-preferred present mode; when false the
	// surface prefers immediate presentation if the backend offers it.
	VSync bool `toml:"vsync"`
}

// DefaultOptions returns the built-in defaults: 640x480, decorated,
// resizable, vsynced.
func DefaultOptions() *Options {
	return &Options{
		Title:     "Perfect Scale",
		Width:     640,
		Height:    480,
		Decorated: true,
		Resizable: true,
		VSync:     true,
	}
}

// Load merges the TOML settings file at path over o. Fields absent
// from the file keep their current values.
func (o *Options) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("host: settings file: %w", err)
	}
	if err := toml.Unmarshal(data, o); err != nil {
		return fmt.Errorf("host: settings file %q: %w", path, err)
	}
	return nil
}

// Validate rejects window sizes a surface could never be configured
// with.
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("host: window size %dx%d is not positive", o.Width, o.Height)
	}
	return nil
}
