// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "testing"

func TestFloat16Bits(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want uint16
	}{
		{"zero", 0, 0x0000},
		{"one", 1, 0x3c00},
		{"half", 0.5, 0x3800},
		{"negative one", -1, 0xbc00},
		{"two", 2, 0x4000},
		{"max half", 65504, 0x7bff},
		{"overflow to inf", 1e10, 0x7c00},
		{"small subnormal", 5.9604645e-8, 0x0001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := float16Bits(tt.in); got != tt.want {
				t.Errorf("float16Bits(%v) = %#04x, want %#04x", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeRGBA16Float(t *testing.T) {
	out := encodeRGBA16Float([]float32{1, 0, 0.5, 1})
	if len(out) != 8 {
		t.Fatalf("len = %d, want 8", len(out))
	}
	// Little-endian 0x3c00 for the first component.
	if out[0] != 0x00 || out[1] != 0x3c {
		t.Errorf("first texel bytes = %#02x %#02x, want 00 3c", out[0], out[1])
	}
}
