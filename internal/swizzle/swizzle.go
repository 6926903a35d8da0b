// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package swizzle provides functions for converting between RGBA pixel
// formats.
package swizzle

import "image"

// BGRA converts a pixel buffer between Go's RGBA and other systems' BGRA byte
// orders.
//
// It panics if the input slice length is not a multiple of 4.
func BGRA(p []byte) {
	if len(p)%4 != 0 {
		panic("input slice length is not a multiple of 4")
	}
	for i := 0; i < len(p); i += 4 {
		p[i+0], p[i+2] = p[i+2], p[i+0]
	}
}

// CopyBGRA copies the part of src that fits into a BGRA destination of the
// given stride, width and height, converting from RGBA on the way. The top
// left pixel of src.Rect lands at the start of dst.
func CopyBGRA(dst []byte, stride, width, height int, src *image.RGBA) {
	r := src.Rect
	w := min(width, r.Dx())
	h := min(height, r.Dy())
	if w <= 0 || h <= 0 {
		return
	}
	for y := 0; y < h; y++ {
		d := dst[y*stride : y*stride+4*w]
		o := src.PixOffset(r.Min.X, r.Min.Y+y)
		s := src.Pix[o : o+4*w]
		copy(d, s)
		BGRA(d)
	}
}
