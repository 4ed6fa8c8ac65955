// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host owns the native window and drives the event loop: it
// translates window-system events into lifecycle calls on the gpu
// package and owns the application's exit decision.
//
// The loop itself is an explicit state machine with a pure transition
// function, [Step], testable without a window or a GPU backend. The
// [App] aggregate binds the machine to glfw and executes its effects.
package host

import (
	"image"

	"github.com/perfectscale/perfectscale/gpu"
)

// WindowID is the stable identity of a window, used to route loop
// events. Events carrying another window's identity are ignored.
type WindowID int64

// Key identifies a keyboard key in loop events. Only keys the loop
// distinguishes are mapped; everything else is KeyUnknown.
type Key int32

const (
	KeyUnknown Key = iota
	KeyEscape
)

// Phase is the coarse lifecycle state of the event loop.
type Phase int32

const (
	// Running means the loop is polling events and rendering.
	Running Phase = iota

	// Exiting means a close was decided; no further frame work or
	// redraw requests are issued and the process unwinds.
	Exiting
)

func (p Phase) String() string {
	if p == Exiting {
		return "exiting"
	}
	return "running"
}

// State is the driver state threaded through [Step].
type State struct {
	// Phase is Running or Exiting.
	Phase Phase

	// Window is the identity of the owned window.
	Window WindowID

	// Size is the last non-zero physical size observed, used to
	// reconfigure the surface after it is lost.
	Size image.Point
}

// Event is one window-system or frame event consumed by [Step].
// Every event targets a window identity.
type Event interface {
	Target() WindowID
}

// CloseRequested is the window system asking the window to close.
type CloseRequested struct{ Window WindowID }

// KeyDown is a key press (not release, not repeat).
type KeyDown struct {
	Window WindowID
	Key    Key
}

// Resized carries the window's new physical size in pixels.
type Resized struct {
	Window WindowID
	Size   image.Point
}

// ScaleFactorChanged reports a display scale change along with the
// resulting physical size.
type ScaleFactorChanged struct {
	Window WindowID
	Size   image.Point
}

// RedrawRequested is the per-frame tick: the window should render.
type RedrawRequested struct{ Window WindowID }

// EventsFlushed signals that a poll pass delivered all pending events.
// The driver answers it with a redraw request, which is what makes
// rendering continuous rather than invalidation-driven.
type EventsFlushed struct{ Window WindowID }

// RenderFailed reports the classified outcome of a failed render so
// the machine can decide between reconfiguring, skipping the frame,
// and terminating.
type RenderFailed struct {
	Window WindowID
	Kind   gpu.SurfaceErrorKind
}

func (e CloseRequested) Target() WindowID     { return e.Window }
func (e KeyDown) Target() WindowID            { return e.Window }
func (e Resized) Target() WindowID            { return e.Window }
func (e ScaleFactorChanged) Target() WindowID { return e.Window }
func (e RedrawRequested) Target() WindowID    { return e.Window }
func (e EventsFlushed) Target() WindowID      { return e.Window }
func (e RenderFailed) Target() WindowID       { return e.Window }

// Effect is an action the driver must perform as a result of a
// transition. Effects are data; [App.apply] executes them.
type Effect interface{ isEffect() }

// DoResize reconfigures the surface to the given physical size.
// The surface itself rejects zero-area sizes.
type DoResize struct{ Size image.Point }

// DoRender runs the update hook and renders one frame.
type DoRender struct{}

// DoRedraw requests a redraw for the owned window.
type DoRedraw struct{}

// DoQuit flags the window to close so the poll loop terminates.
type DoQuit struct{}

func (DoResize) isEffect() {}
func (DoRender) isEffect() {}
func (DoRedraw) isEffect() {}
func (DoQuit) isEffect()   {}

// Step is the pure transition function of the event loop driver:
// (state, event) -> (state, effects). It mutates nothing and performs
// no I/O.
//
// Rules:
//   - In Exiting, nothing happens: no transition, no effects.
//   - Events not targeting the owned window are ignored.
//   - Close request or Escape press: transition to Exiting, quit.
//   - Resize or scale change: resize effect; the last non-zero size
//     is remembered for lost-surface recovery.
//   - Redraw tick: render. All events flushed: request a redraw.
//   - Render failed Lost: exactly one resize to the current size,
//     still Running. OutOfMemory: Exiting. Anything else: no state
//     change, the frame was skipped.
func Step(s State, e Event) (State, []Effect) {
	if s.Phase == Exiting {
		return s, nil
	}
	if e.Target() != s.Window {
		return s, nil
	}
	switch ev := e.(type) {
	case CloseRequested:
		s.Phase = Exiting
		return s, []Effect{DoQuit{}}
	case KeyDown:
		if ev.Key == KeyEscape {
			s.Phase = Exiting
			return s, []Effect{DoQuit{}}
		}
		return s, nil
	case Resized:
		return stepResize(s, ev.Size)
	case ScaleFactorChanged:
		return stepResize(s, ev.Size)
	case RedrawRequested:
		return s, []Effect{DoRender{}}
	case EventsFlushed:
		return s, []Effect{DoRedraw{}}
	case RenderFailed:
		switch ev.Kind {
		case gpu.SurfaceLost:
			return s, []Effect{DoResize{Size: s.Size}}
		case gpu.SurfaceOutOfMemory:
			s.Phase = Exiting
			return s, []Effect{DoQuit{}}
		}
		// transient: frame skipped, the driver already logged it
		return s, nil
	}
	return s, nil
}

func stepResize(s State, size image.Point) (State, []Effect) {
	if size.X > 0 && size.Y > 0 {
		s.Size = size
	}
	return s, []Effect{DoResize{Size: size}}
}
