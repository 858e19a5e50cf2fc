// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gostim/gostim"
)

func TestBuildTableDefault(t *testing.T) {
	table, err := BuildTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 3*lutEntries {
		t.Fatalf("table len = %d, want %d", len(table), 3*lutEntries)
	}

	// sRGB encode: 0 maps to 0, the top entry maps to 255.
	if table[0] != 0 {
		t.Errorf("table[0] = %d, want 0", table[0])
	}
	if table[lutEntries-1] != 255 {
		t.Errorf("last red entry = %d, want 255", table[lutEntries-1])
	}

	// Monotone non-decreasing per channel.
	for c := 0; c < 3; c++ {
		layer := table[c*lutEntries : (c+1)*lutEntries]
		for i := 1; i < len(layer); i++ {
			if layer[i] < layer[i-1] {
				t.Fatalf("channel %d not monotone at %d: %d < %d", c, i, layer[i], layer[i-1])
			}
		}
	}

	// All three channels share the sRGB table.
	for i := 0; i < lutEntries; i++ {
		if table[i] != table[lutEntries+i] || table[i] != table[2*lutEntries+i] {
			t.Fatalf("channels differ at entry %d", i)
		}
	}

	// Linear 0.5 encodes to sRGB ~0.735.
	mid := table[lutEntries/2]
	if mid < 186 || mid > 190 {
		t.Errorf("entry for linear 0.5 = %d, want about 188", mid)
	}
}

func TestBuildTableCustomImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	// Distinct per-channel values at the first pixel.
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	table, err := BuildTable(img)
	if err != nil {
		t.Fatal(err)
	}
	if table[0] != 10 || table[lutEntries] != 20 || table[2*lutEntries] != 30 {
		t.Errorf("first entries = (%d, %d, %d), want (10, 20, 30)",
			table[0], table[lutEntries], table[2*lutEntries])
	}
}

func TestBuildTableRejectsWrongSize(t *testing.T) {
	sizes := []image.Rectangle{
		image.Rect(0, 0, 128, 128),
		image.Rect(0, 0, 256, 255),
		image.Rect(0, 0, 512, 256),
		image.Rect(0, 0, 1, 1),
	}
	for _, r := range sizes {
		_, err := BuildTable(image.NewNRGBA(r))
		var perr *gostim.ParameterError
		if !errors.As(err, &perr) {
			t.Errorf("BuildTable(%v) error = %v, want *ParameterError", r, err)
		}
	}
}

func TestBuildTableNonZeroOrigin(t *testing.T) {
	// A 256x256 image whose bounds do not start at (0, 0) is still valid.
	img := image.NewNRGBA(image.Rect(10, 10, 266, 266))
	if _, err := BuildTable(img); err != nil {
		t.Errorf("BuildTable with offset bounds failed: %v", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.EncodeGamma {
		t.Error("default options do not encode gamma")
	}
	if opts.LUT != nil {
		t.Error("default options carry a custom LUT")
	}
}
