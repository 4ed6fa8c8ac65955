// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perfectscale/perfectscale/gpu"
)

const win WindowID = 1

func running() State {
	return State{Phase: Running, Window: win, Size: image.Pt(640, 480)}
}

func TestStepCloseRequested(t *testing.T) {
	s, effects := Step(running(), CloseRequested{Window: win})
	assert.Equal(t, Exiting, s.Phase)
	assert.Equal(t, []Effect{DoQuit{}}, effects)
}

func TestStepEscape(t *testing.T) {
	s, effects := Step(running(), KeyDown{Window: win, Key: KeyEscape})
	assert.Equal(t, Exiting, s.Phase)
	assert.Equal(t, []Effect{DoQuit{}}, effects)
}

func TestStepOtherKeyIgnored(t *testing.T) {
	s, effects := Step(running(), KeyDown{Window: win, Key: KeyUnknown})
	assert.Equal(t, Running, s.Phase)
	assert.Empty(t, effects)
}

func TestStepResize(t *testing.T) {
	s, effects := Step(running(), Resized{Window: win, Size: image.Pt(800, 600)})
	assert.Equal(t, Running, s.Phase)
	assert.Equal(t, image.Pt(800, 600), s.Size)
	assert.Equal(t, []Effect{DoResize{Size: image.Pt(800, 600)}}, effects)
}

func TestStepResizeZeroKeepsLastSize(t *testing.T) {
	// the resize effect is still emitted (the surface rejects it);
	// the remembered size for lost-surface recovery stays non-zero
	s, effects := Step(running(), Resized{Window: win, Size: image.Pt(0, 300)})
	assert.Equal(t, image.Pt(640, 480), s.Size)
	assert.Equal(t, []Effect{DoResize{Size: image.Pt(0, 300)}}, effects)
}

func TestStepScaleFactorChanged(t *testing.T) {
	s, effects := Step(running(), ScaleFactorChanged{Window: win, Size: image.Pt(1280, 960)})
	assert.Equal(t, image.Pt(1280, 960), s.Size)
	assert.Equal(t, []Effect{DoResize{Size: image.Pt(1280, 960)}}, effects)
}

func TestStepRedrawRenders(t *testing.T) {
	_, effects := Step(running(), RedrawRequested{Window: win})
	assert.Equal(t, []Effect{DoRender{}}, effects)
}

func TestStepFlushRequestsRedraw(t *testing.T) {
	_, effects := Step(running(), EventsFlushed{Window: win})
	assert.Equal(t, []Effect{DoRedraw{}}, effects)
}

func TestStepRenderFailed(t *testing.T) {
	tests := []struct {
		name        string
		kind        gpu.SurfaceErrorKind
		wantPhase   Phase
		wantEffects []Effect
	}{
		{"lost reconfigures with current size", gpu.SurfaceLost,
			Running, []Effect{DoResize{Size: image.Pt(640, 480)}}},
		{"out of memory exits", gpu.SurfaceOutOfMemory,
			Exiting, []Effect{DoQuit{}}},
		{"outdated skips frame", gpu.SurfaceOutdated, Running, nil},
		{"timeout skips frame", gpu.SurfaceTimeout, Running, nil},
		{"unclassified skips frame", gpu.SurfaceOther, Running, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, effects := Step(running(), RenderFailed{Window: win, Kind: tt.kind})
			assert.Equal(t, tt.wantPhase, s.Phase)
			assert.Equal(t, tt.wantEffects, effects)
		})
	}
}

func TestStepIgnoresOtherWindows(t *testing.T) {
	events := []Event{
		CloseRequested{Window: 99},
		KeyDown{Window: 99, Key: KeyEscape},
		Resized{Window: 99, Size: image.Pt(800, 600)},
		RedrawRequested{Window: 99},
	}
	for _, ev := range events {
		s, effects := Step(running(), ev)
		assert.Equal(t, running(), s)
		assert.Empty(t, effects)
	}
}

func TestStepExitingIsTerminal(t *testing.T) {
	exiting := running()
	exiting.Phase = Exiting
	events := []Event{
		CloseRequested{Window: win},
		Resized{Window: win, Size: image.Pt(800, 600)},
		RedrawRequested{Window: win},
		EventsFlushed{Window: win},
		RenderFailed{Window: win, Kind: gpu.SurfaceLost},
	}
	for _, ev := range events {
		s, effects := Step(exiting, ev)
		assert.Equal(t, Exiting, s.Phase)
		assert.Empty(t, effects, "no frame work in Exiting for %T", ev)
	}
}

// run feeds events through Step in order and collects all effects.
func run(s State, events ...Event) (State, []Effect) {
	var all []Effect
	for _, ev := range events {
		var effects []Effect
		s, effects = Step(s, ev)
		all = append(all, effects...)
	}
	return s, all
}

func TestScenarioResizeSequence(t *testing.T) {
	// a zero-height resize followed by a real one: the real size is
	// remembered and both effects pass through to the surface, which
	// drops the degenerate one
	s, effects := run(running(),
		Resized{Window: win, Size: image.Pt(0, 300)},
		Resized{Window: win, Size: image.Pt(800, 600)},
	)
	assert.Equal(t, image.Pt(800, 600), s.Size)
	assert.Equal(t, []Effect{
		DoResize{Size: image.Pt(0, 300)},
		DoResize{Size: image.Pt(800, 600)},
	}, effects)
}

func TestScenarioContinuousRendering(t *testing.T) {
	// each poll pass flushes, requests a redraw, and renders
	s, effects := run(running(),
		EventsFlushed{Window: win},
		RedrawRequested{Window: win},
		EventsFlushed{Window: win},
		RedrawRequested{Window: win},
	)
	assert.Equal(t, Running, s.Phase)
	assert.Equal(t, []Effect{DoRedraw{}, DoRender{}, DoRedraw{}, DoRender{}}, effects)
}

func TestScenarioEscapeStopsRedraw(t *testing.T) {
	// Escape handled in the same pass: the queued redraw request that
	// follows produces no further frame work
	s, effects := run(running(),
		KeyDown{Window: win, Key: KeyEscape},
		RedrawRequested{Window: win},
		EventsFlushed{Window: win},
	)
	assert.Equal(t, Exiting, s.Phase)
	assert.Equal(t, []Effect{DoQuit{}}, effects)
}

func TestScenarioLostThenRecovered(t *testing.T) {
	// lost surface reconfigures once with the last known size and
	// rendering resumes on the next tick
	s, effects := run(running(),
		RedrawRequested{Window: win},
		RenderFailed{Window: win, Kind: gpu.SurfaceLost},
		EventsFlushed{Window: win},
		RedrawRequested{Window: win},
	)
	assert.Equal(t, Running, s.Phase)
	assert.Equal(t, []Effect{
		DoRender{},
		DoResize{Size: image.Pt(640, 480)},
		DoRedraw{},
		DoRender{},
	}, effects)
}
