// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import "errors"

// Connection-fatal.
var ErrConnectionLost = errors.New("screen: display connection lost")

// Programming errors. They never change the state of the window they were
// reported for.
var (
	ErrDestroyed       = errors.New("screen: window destroyed")
	ErrSurfaceAcquired = errors.New("screen: surface already acquired")
	ErrNoActiveSurface = errors.New("screen: no active surface to apply")
	ErrWrongSurface    = errors.New("screen: operation does not match the window's surface type")
	ErrUnsupported     = errors.New("screen: not supported by this display")
)

// ResourceError reports that a native resource could not be obtained. The
// window it was reported for stays usable.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return "screen: " + e.Op + ": " + e.Err.Error()
}

func (e *ResourceError) Unwrap() error { return e.Err }

func resourceErr(op string, err error) error {
	return &ResourceError{Op: op, Err: err}
}
