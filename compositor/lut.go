// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor implements the fixed second GPU pass that turns the
// linear intermediate scene texture into display code values. A 3-layer
// lookup-table texture holds one transfer function per channel; by default
// it encodes sRGB, or it is filled from a calibration image.
package compositor

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/gostim/gostim"
)

// LUT texture geometry: a 65536-entry 1D table per channel, reshaped to
// 256x256 for texture-fetch efficiency, one array layer per channel.
const (
	lutWidth   = 256
	lutHeight  = 256
	lutEntries = lutWidth * lutHeight
)

// Options selects the compositor's transfer function.
type Options struct {
	// EncodeGamma enables the LUT lookup. When false the pass copies
	// linear values through untouched.
	EncodeGamma bool
	// LUT, when non-nil, supplies a custom calibration table as an image
	// of exactly 256x256 pixels: red, green, and blue channels each hold
	// their channel's table in row-major order. Nil uses the standard
	// sRGB encode table.
	LUT image.Image
}

// DefaultOptions enables sRGB encoding, the right choice for a standard
// uncalibrated display.
func DefaultOptions() Options {
	return Options{EncodeGamma: true}
}

// BuildTable produces the planar LUT texture payload: 3 layers of
// 256x256 8-bit values, red layer first. A nil image yields the sRGB
// encode table. Any image not exactly 256x256 fails validation before
// any GPU work.
func BuildTable(img image.Image) ([]byte, error) {
	if img == nil {
		return srgbTable(), nil
	}
	b := img.Bounds()
	if b.Dx() != lutWidth || b.Dy() != lutHeight {
		return nil, &gostim.ParameterError{
			Op:  "gamma lut",
			Msg: fmt.Sprintf("lut image is %dx%d, must be exactly %dx%d", b.Dx(), b.Dy(), lutWidth, lutHeight),
		}
	}

	data := make([]byte, 3*lutEntries)
	for i := 0; i < lutEntries; i++ {
		x := b.Min.X + i%lutWidth
		y := b.Min.Y + i/lutWidth
		r, g, bl, _ := img.At(x, y).RGBA()
		data[i] = byte(r >> 8)
		data[lutEntries+i] = byte(g >> 8)
		data[2*lutEntries+i] = byte(bl >> 8)
	}
	return data, nil
}

// srgbTable builds the default table from the sRGB inverse EOTF.
func srgbTable() []byte {
	data := make([]byte, 3*lutEntries)
	for i := 0; i < lutEntries; i++ {
		v := gostim.LinearToSRGB(float32(i) / lutEntries)
		y := byte(math32.Round(v * 255))
		data[i] = y
		data[lutEntries+i] = y
		data[2*lutEntries+i] = y
	}
	return data
}
