// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"
)

// float16Bits converts a float32 to IEEE 754 half-precision bits with
// round-to-nearest-even. Values beyond half range become infinity.
func float16Bits(f float32) uint16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int32(b>>23&0xff) - 127 + 15
	mant := b & 0x7fffff

	switch {
	case exp >= 0x1f:
		if int32(b>>23&0xff) == 0xff && mant != 0 {
			return sign | 0x7e00 // NaN
		}
		return sign | 0x7c00 // Inf or overflow
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		// Subnormal half.
		mant |= 0x800000
		shift := uint32(14 - exp)
		half := uint16(mant >> shift)
		if mant>>(shift-1)&1 != 0 {
			half++
		}
		return sign | half
	default:
		half := sign | uint16(exp)<<10 | uint16(mant>>13)
		// Round to nearest even.
		if mant&0x1fff > 0x1000 || (mant&0x1fff == 0x1000 && half&1 != 0) {
			half++
		}
		return half
	}
}

// encodeRGBA16Float packs a linear float32 RGBA buffer (4 floats per pixel)
// into little-endian RGBA16Float texel bytes, 8 bytes per pixel.
func encodeRGBA16Float(data []float32) []byte {
	out := make([]byte, len(data)*2)
	for i, v := range data {
		binary.LittleEndian.PutUint16(out[i*2:], float16Bits(v))
	}
	return out
}
