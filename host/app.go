// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package host

import (
	"image"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/perfectscale/perfectscale/gpu"
)

// App is the owning aggregate of the rendering host: the window, the
// GPU context, the surface bound to both, and the frame renderer.
// The surface logically borrows the window's lifetime; holding both
// here, and releasing in reverse dependency order (surface, device,
// window), makes that ownership rule structural instead of
// documented.
//
// App is single-threaded: one thread owns the loop, the context, and
// the surface. It must be the main OS thread.
type App struct {
	Window  *Window
	GPU     *gpu.GPU
	Surface *gpu.Surface
	Render  *gpu.Render

	// Update runs before each rendered frame. Extension point for
	// per-frame logic; nil means no-op.
	Update func()

	// Input may consume a window event before it reaches the state
	// machine; return true to consume. nil declines everything.
	Input func(ev Event) bool

	state State
	queue []Event
}

// NewApp creates the window, negotiates the GPU context against its
// surface, and configures the surface at the window's current
// physical size. Startup failures tear down whatever was created and
// propagate; no partial app state is left running.
func NewApp(opts *Options) (*App, error) {
	w, err := NewWindow(opts)
	if err != nil {
		return nil, err
	}
	sp := gpu.CreateWindowSurface(w.Glw)
	gp, err := gpu.NewGPU(gpu.Instance(), sp)
	if err != nil {
		sp.Release()
		w.Destroy()
		return nil, err
	}
	size := w.Size()
	a := &App{
		Window:  w,
		GPU:     gp,
		Surface: gpu.NewSurface(gp, sp, size, opts.VSync),
		Render:  gpu.NewRender(),
		state:   State{Phase: Running, Window: w.ID, Size: size},
	}
	a.installCallbacks()
	return a, nil
}

// installCallbacks translates glfw callbacks into loop events. The
// callbacks fire from glfw.PollEvents on the loop thread, so plain
// appends to the queue are safe.
func (a *App) installCallbacks() {
	glw := a.Window.Glw
	id := a.Window.ID

	glw.SetCloseCallback(func(*glfw.Window) {
		a.post(CloseRequested{Window: id})
	})
	glw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		a.post(KeyDown{Window: id, Key: glfwKey(key)})
	})
	glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.post(Resized{Window: id, Size: image.Pt(width, height)})
	})
	glw.SetContentScaleCallback(func(*glfw.Window, float32, float32) {
		a.post(ScaleFactorChanged{Window: id, Size: a.Window.Size()})
	})
}

// glfwKey maps a glfw key to the loop's key identity.
func glfwKey(k glfw.Key) Key {
	if k == glfw.KeyEscape {
		return KeyEscape
	}
	return KeyUnknown
}

func (a *App) post(ev Event) {
	a.queue = append(a.queue, ev)
}

// Run shows the window and drives the continuous poll cycle until the
// machine reaches Exiting, then tears everything down. No voluntary
// sleep between iterations; pacing comes from the surface's present
// mode. Must run on the main thread.
func (a *App) Run() error {
	a.Window.Show()
	slog.Info("host: event loop started",
		"window", int64(a.Window.ID),
		"width", a.state.Size.X,
		"height", a.state.Size.Y)

	for a.state.Phase == Running && !a.Window.ShouldClose() {
		glfw.PollEvents()
		a.post(EventsFlushed{Window: a.state.Window})
		a.drain()
	}

	slog.Info("host: event loop exited")
	a.release()
	return nil
}

// drain dispatches queued events in order. Effects may append more
// events (a requested redraw renders within the same pass, and resize
// reconfiguration therefore always happens before the acquire that
// observes it).
func (a *App) drain() {
	for len(a.queue) > 0 {
		ev := a.queue[0]
		a.queue = a.queue[1:]
		a.dispatch(ev)
	}
}

func (a *App) dispatch(ev Event) {
	if isWindowEvent(ev) && a.Input != nil && a.Input(ev) {
		return
	}
	var effects []Effect
	a.state, effects = Step(a.state, ev)
	for _, ef := range effects {
		a.apply(ef)
	}
}

// isWindowEvent reports whether ev comes from the window system and
// is therefore subject to the input pre-filter. Synthesized events
// (redraw, flush, render outcome) are not filterable.
func isWindowEvent(ev Event) bool {
	switch ev.(type) {
	case CloseRequested, KeyDown, Resized, ScaleFactorChanged:
		return true
	}
	return false
}

func (a *App) apply(ef Effect) {
	switch ef := ef.(type) {
	case DoResize:
		a.Surface.SetSize(ef.Size)
	case DoRender:
		if a.Update != nil {
			a.Update()
		}
		if err := a.Render.RenderFrame(a.GPU, a.Surface); err != nil {
			a.renderFailed(err)
		}
	case DoRedraw:
		a.post(RedrawRequested{Window: a.state.Window})
	case DoQuit:
		a.Window.Glw.SetShouldClose(true)
	}
}

// renderFailed logs the classified failure and feeds it back into the
// machine, which decides between reconfigure, skip, and terminate.
func (a *App) renderFailed(err error) {
	kind := gpu.KindOf(err)
	switch kind {
	case gpu.SurfaceLost:
		slog.Warn("host: surface lost, reconfiguring", "err", err)
	case gpu.SurfaceOutOfMemory:
		slog.Error("host: surface out of memory, exiting", "err", err)
	default:
		slog.Warn("host: frame skipped", "kind", kind.String(), "err", err)
	}
	a.dispatch(RenderFailed{Window: a.state.Window, Kind: kind})
}

// release tears down in dependency order: surface, then device, then
// the window backing them.
func (a *App) release() {
	a.Surface.Release()
	a.GPU.Release()
	a.Window.Destroy()
}
