// Copyright (c) 2026, The Perfect Scale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"strings"
)

// SurfaceErrorKind classifies a failure to acquire the next
// presentable frame from the surface. The event loop driver decides
// what to do based on the kind; the surface itself never retries.
type SurfaceErrorKind int32

const (
	// SurfaceOther is the forward-compatible catch-all: the frame is
	// skipped and the loop continues.
	SurfaceOther SurfaceErrorKind = iota

	// SurfaceLost means the surface was invalidated, for example by a
	// display mode change. Recoverable by reconfiguring with the
	// current size and retrying on the next tick.
	SurfaceLost

	// SurfaceOutdated means the configuration no longer matches the
	// window. Transient: the frame is skipped, a resize event with the
	// new size is normally already queued.
	SurfaceOutdated

	// SurfaceTimeout means the backend did not deliver a back-buffer
	// in time. Transient: the frame is skipped.
	SurfaceTimeout

	// SurfaceOutOfMemory means the backend cannot allocate the frame.
	// Unrecoverable: the driver terminates the loop gracefully.
	SurfaceOutOfMemory
)

func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceLost:
		return "lost"
	case SurfaceOutdated:
		return "outdated"
	case SurfaceTimeout:
		return "timeout"
	case SurfaceOutOfMemory:
		return "out of memory"
	}
	return "other"
}

// errPreviousFrameOutstanding reports an acquire issued while the
// prior frame was neither presented nor discarded.
var errPreviousFrameOutstanding = errors.New("previous frame not yet presented")

// SurfaceError is a classified surface acquisition failure. It wraps
// the underlying backend error and works with errors.Is and errors.As.
type SurfaceError struct {
	Kind SurfaceErrorKind
	Err  error
}

func (e *SurfaceError) Error() string {
	if e.Err == nil {
		return "gpu: surface " + e.Kind.String()
	}
	return "gpu: surface " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// ClassifySurfaceError wraps err in a [SurfaceError] with the kind
// derived from the backend's status text. The WebGPU binding reports
// acquisition status as error text rather than typed values, so the
// match is on normalized message content; anything unrecognized is
// [SurfaceOther]. An err that already is a SurfaceError is returned
// as is.
func ClassifySurfaceError(err error) *SurfaceError {
	var se *SurfaceError
	if errors.As(err, &se) {
		return se
	}
	msg := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(err.Error()))

	kind := SurfaceOther
	switch {
	case strings.Contains(msg, "outofmemory"):
		kind = SurfaceOutOfMemory
	case strings.Contains(msg, "outdated"):
		kind = SurfaceOutdated
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timedout"):
		kind = SurfaceTimeout
	case strings.Contains(msg, "lost"):
		kind = SurfaceLost
	}
	return &SurfaceError{Kind: kind, Err: err}
}

// KindOf returns the classification of err, or [SurfaceOther] when err
// carries no classification.
func KindOf(err error) SurfaceErrorKind {
	var se *SurfaceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return SurfaceOther
}
