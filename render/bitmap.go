// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// BitmapKind tags where a bitmap's pixels live.
type BitmapKind uint8

const (
	// BitmapRaster is CPU-owned pixel data, fully decoded at creation.
	BitmapRaster BitmapKind = iota
	// BitmapTexture is backed by a GPU texture. The texture contents may
	// be streamed into in place (video frames); the handle never changes.
	BitmapTexture
)

// DynamicBitmap is an opaque handle to an image resource owned by the
// backend that created it. It is immutable after creation and compared
// by identity.
type DynamicBitmap struct {
	id     uuid.UUID
	kind   BitmapKind
	width  int
	height int

	// pixels holds linear RGBA, 4 floats per pixel, for raster bitmaps.
	pixels []float32

	// tex backs texture bitmaps.
	tex *wgpu.Texture
}

// ID returns the bitmap's unique identifier.
func (b *DynamicBitmap) ID() uuid.UUID { return b.id }

// Kind returns where the bitmap's pixels live.
func (b *DynamicBitmap) Kind() BitmapKind { return b.kind }

// Size returns the bitmap dimensions in pixels.
func (b *DynamicBitmap) Size() (width, height int) { return b.width, b.height }

// Texture returns the backing texture for BitmapTexture bitmaps, nil
// otherwise.
func (b *DynamicBitmap) Texture() *wgpu.Texture { return b.tex }

// pixelAt returns the linear color at (x, y) for raster bitmaps.
// Coordinates must be in range.
func (b *DynamicBitmap) pixelAt(x, y int) (r, g, bl, a float32) {
	i := (y*b.width + x) * 4
	return b.pixels[i], b.pixels[i+1], b.pixels[i+2], b.pixels[i+3]
}
