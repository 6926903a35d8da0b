// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/swa-go/swa/internal/swizzle"
	"github.com/swa-go/swa/screen"
)

// painter renders the animation into an RGBA canvas and copies it to
// buffer surfaces.
type painter struct {
	canvas *image.RGBA
	tile   *image.RGBA
}

func newPainter() *painter {
	tile := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
			if (x/2+y/2)%2 == 0 {
				c = color.RGBA{0x20, 0x20, 0x20, 0xff}
			}
			tile.SetRGBA(x, y, c)
		}
	}
	return &painter{tile: tile}
}

func background(frame int) color.RGBA {
	return color.RGBA{uint8(frame), 0x40, uint8(255 - frame%256), 0xff}
}

// square returns where the checkered square is drawn on a width x height
// canvas: it bounces horizontally, centered vertically.
func square(width, height, frame int) image.Rectangle {
	size := max(min(width, height)/2, 1)
	x := 0
	if span := width - size; span > 0 {
		x = frame * 4 % (2 * span)
		if x > span {
			x = 2*span - x
		}
	}
	y := (height - size) / 2
	return image.Rect(x, y, x+size, y+size)
}

func (p *painter) paint(img screen.Image, frame int) error {
	width, height := int(img.Width), int(img.Height)
	if p.canvas == nil || p.canvas.Rect.Dx() != width || p.canvas.Rect.Dy() != height {
		p.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	draw.Draw(p.canvas, p.canvas.Bounds(), &image.Uniform{background(frame)}, image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(p.canvas, square(width, height, frame), p.tile, p.tile.Bounds(), draw.Over, nil)

	switch img.Format {
	case screen.FormatBGRA8:
		swizzle.CopyBGRA(img.Pix, img.Stride, width, height, p.canvas)
	case screen.FormatRGBA8:
		for y := 0; y < height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+4*width], p.canvas.Pix[y*p.canvas.Stride:])
		}
	default:
		return fmt.Errorf("unsupported pixel format %v", img.Format)
	}
	return nil
}
