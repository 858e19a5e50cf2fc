// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gostim/gostim/scene"
)

// ColorSpace tags the encoding of pixel data handed to the backend.
type ColorSpace uint8

const (
	// ColorSpaceSRGB marks sRGB-encoded components; the backend decodes
	// them to linear space on ingestion.
	ColorSpaceSRGB ColorSpace = iota
	// ColorSpaceLinear marks components that are already linear.
	ColorSpaceLinear
)

// Backend converts recorded scenes into pixels in an intermediate texture
// and owns the bitmap and font resources referenced from brushes.
//
// A backend is selected at window construction and injected; the
// presentation loop only ever talks to this interface.
//
// Thread safety: a Backend is confined to the thread presenting the window
// that owns it, or must be guarded externally.
type Backend interface {
	// CreateScene creates an empty scene for a target of the given size.
	CreateScene(width, height uint32) *scene.Scene

	// RenderToTexture rasterizes the scene's recorded commands into dst,
	// which must already exist with matching dimensions. The scene is
	// consumed: it cannot be rendered twice.
	RenderToTexture(device *wgpu.Device, queue *wgpu.Queue, dst *wgpu.Texture, width, height uint32, sc *scene.Scene) error

	// CreateBitmapFromPath decodes an image file into a bitmap.
	// Decode failures return a *gostim.DecodeError.
	CreateBitmapFromPath(path string) (*DynamicBitmap, error)

	// CreateBitmapU8 wraps decoded 8-bit RGBA pixels.
	CreateBitmapU8(img *image.NRGBA, cs ColorSpace) (*DynamicBitmap, error)

	// CreateBitmapF32 wraps a float32 RGBA pixel buffer of len 4*w*h.
	CreateBitmapF32(width, height int, data []float32, cs ColorSpace) (*DynamicBitmap, error)

	// CreateBitmapFromTexture wraps an existing GPU texture whose contents
	// may be streamed into in place. The handle and metadata never change.
	CreateBitmapFromTexture(tex *wgpu.Texture, width, height int, cs ColorSpace) (*DynamicBitmap, error)

	// LoadFontFace parses font data (TTF/OTF; index selects a face within
	// a collection) into a face usable with scene glyph runs.
	LoadFontFace(data []byte, index int) (*FontFace, error)
}
