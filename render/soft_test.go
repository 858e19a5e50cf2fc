// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/scene"
)

func pixel(buf []float32, w, x, y int) (r, g, b, a float32) {
	i := (y*w + x) * 4
	return buf[i], buf[i+1], buf[i+2], buf[i+3]
}

func near(a, b float32) bool { return math32.Abs(a-b) < 0.02 }

func TestRenderBackground(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(4, 4)
	sc.SetBackground(gostim.LinRGBA{R: 0.2, G: 0.4, B: 0.6, A: 1})

	buf, err := b.RenderToBuffer(sc, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	r, g, bl, a := pixel(buf, 4, 2, 2)
	if !near(r, 0.2) || !near(g, 0.4) || !near(bl, 0.6) || !near(a, 1) {
		t.Errorf("background pixel = (%v, %v, %v, %v)", r, g, bl, a)
	}
}

func TestRenderSolidFill(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(16, 16)
	sc.SetBackground(gostim.Black)
	sc.FillShape(&scene.Rectangle{X: 4, Y: 4, Width: 8, Height: 8}, scene.SolidBrush{Color: gostim.Red}, nil)

	buf, err := b.RenderToBuffer(sc, 16, 16)
	if err != nil {
		t.Fatal(err)
	}

	r, _, _, _ := pixel(buf, 16, 8, 8)
	if !near(r, 1) {
		t.Errorf("inside pixel red = %v, want 1", r)
	}
	r, _, _, _ = pixel(buf, 16, 1, 1)
	if !near(r, 0) {
		t.Errorf("outside pixel red = %v, want 0", r)
	}
}

func TestRenderDrawOrder(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(8, 8)
	sc.SetBackground(gostim.Black)
	full := &scene.Rectangle{X: 0, Y: 0, Width: 8, Height: 8}
	sc.FillShape(full, scene.SolidBrush{Color: gostim.Red}, nil)
	sc.FillShape(full, scene.SolidBrush{Color: gostim.Green}, nil)

	buf, err := b.RenderToBuffer(sc, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	r, g, _, _ := pixel(buf, 8, 4, 4)
	if !near(r, 0) || !near(g, 1) {
		t.Errorf("later draw did not cover earlier: (r, g) = (%v, %v)", r, g)
	}
}

func TestRenderTranslucentOver(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(8, 8)
	sc.SetBackground(gostim.Black)
	full := &scene.Rectangle{X: 0, Y: 0, Width: 8, Height: 8}
	sc.FillShape(full, scene.SolidBrush{Color: gostim.White.WithAlpha(0.5)}, nil)

	buf, err := b.RenderToBuffer(sc, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	// Blending happens in linear space: 50% white over black is 0.5.
	r, _, _, _ := pixel(buf, 8, 4, 4)
	if !near(r, 0.5) {
		t.Errorf("50%% white over black = %v, want 0.5", r)
	}
}

func TestRenderTransform(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(16, 16)
	sc.SetBackground(gostim.Black)
	tr := geometry.Translate(8, 8)
	sc.FillShape(&scene.Rectangle{X: -2, Y: -2, Width: 4, Height: 4},
		scene.SolidBrush{Color: gostim.White}, &scene.DrawOptions{Transform: &tr})

	buf, err := b.RenderToBuffer(sc, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := pixel(buf, 16, 8, 8)
	if !near(r, 1) {
		t.Errorf("translated rect missing at (8, 8): %v", r)
	}
	r, _, _, _ = pixel(buf, 16, 1, 8)
	if !near(r, 0) {
		t.Errorf("untranslated position covered: %v", r)
	}
}

func TestRenderStrokeLine(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(16, 16)
	sc.SetBackground(gostim.Black)
	style := scene.StrokeStyle{Width: 4}
	sc.StrokeShape(&scene.Line{X1: 0, Y1: 8, X2: 16, Y2: 8}, scene.SolidBrush{Color: gostim.White}, style, nil)

	buf, err := b.RenderToBuffer(sc, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := pixel(buf, 16, 8, 8)
	if !near(r, 1) {
		t.Errorf("stroke center = %v, want 1", r)
	}
	r, _, _, _ = pixel(buf, 16, 8, 1)
	if !near(r, 0) {
		t.Errorf("far from stroke = %v, want 0", r)
	}
}

func TestRenderGradient(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(16, 4)
	sc.SetBackground(gostim.Black)
	grad := scene.NewGradientBrush(scene.GradientLinear, scene.ExtendPad,
		scene.Point{X: 0, Y: 0}, scene.Point{X: 16, Y: 0},
		[]scene.GradientStop{
			{Offset: 0, Color: gostim.Black},
			{Offset: 1, Color: gostim.White},
		})
	sc.FillShape(&scene.Rectangle{X: 0, Y: 0, Width: 16, Height: 4}, grad, nil)

	buf, err := b.RenderToBuffer(sc, 16, 4)
	if err != nil {
		t.Fatal(err)
	}
	left, _, _, _ := pixel(buf, 16, 1, 2)
	right, _, _, _ := pixel(buf, 16, 14, 2)
	if left >= right {
		t.Errorf("gradient not increasing: left %v, right %v", left, right)
	}
	if right < 0.8 {
		t.Errorf("gradient right end = %v, want near 1", right)
	}
}

func TestRenderImageBrush(t *testing.T) {
	b := NewSoftBackend()
	// 2x1 bitmap: black, white.
	bmp, err := b.CreateBitmapF32(2, 1, []float32{
		0, 0, 0, 1,
		1, 1, 1, 1,
	}, ColorSpaceLinear)
	if err != nil {
		t.Fatal(err)
	}

	sc := b.CreateScene(8, 4)
	sc.SetBackground(gostim.Black)
	sc.FillShape(&scene.Rectangle{X: 0, Y: 0, Width: 8, Height: 4}, &scene.ImageBrush{
		Image:     bmp,
		Fit:       scene.FitExact,
		FitWidth:  8,
		FitHeight: 4,
		Sampling:  scene.SamplingNearest,
	}, nil)

	buf, err := b.RenderToBuffer(sc, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	left, _, _, _ := pixel(buf, 8, 1, 2)
	right, _, _, _ := pixel(buf, 8, 6, 2)
	if !near(left, 0) || !near(right, 1) {
		t.Errorf("image brush halves = (%v, %v), want (0, 1)", left, right)
	}
}

func TestRenderLayerAlpha(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(8, 8)
	sc.SetBackground(gostim.Black)
	full := &scene.Rectangle{X: 0, Y: 0, Width: 8, Height: 8}

	sc.StartLayer(scene.BlendSourceOver, 0.5, nil, geometry.Identity(), geometry.Identity())
	sc.FillShape(full, scene.SolidBrush{Color: gostim.White}, nil)
	sc.EndLayer()

	buf, err := b.RenderToBuffer(sc, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := pixel(buf, 8, 4, 4)
	if !near(r, 0.5) {
		t.Errorf("layer with alpha 0.5 over black = %v, want 0.5", r)
	}
}

func TestRenderLayerClip(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(16, 16)
	sc.SetBackground(gostim.Black)
	full := &scene.Rectangle{X: 0, Y: 0, Width: 16, Height: 16}
	clip := &scene.Rectangle{X: 0, Y: 0, Width: 8, Height: 16}

	sc.StartLayer(scene.BlendSourceOver, 1, clip, geometry.Identity(), geometry.Identity())
	sc.FillShape(full, scene.SolidBrush{Color: gostim.White}, nil)
	sc.EndLayer()

	buf, err := b.RenderToBuffer(sc, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	in, _, _, _ := pixel(buf, 16, 4, 8)
	out, _, _, _ := pixel(buf, 16, 12, 8)
	if !near(in, 1) || !near(out, 0) {
		t.Errorf("clip halves = (%v, %v), want (1, 0)", in, out)
	}
}

func TestRenderForeignBitmap(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(4, 4)
	sc.FillShape(&scene.Rectangle{X: 0, Y: 0, Width: 4, Height: 4}, &scene.ImageBrush{
		Image: fakeBitmap{},
	}, nil)

	_, err := b.RenderToBuffer(sc, 4, 4)
	var rerr *gostim.ResourceError
	if !errors.As(err, &rerr) {
		t.Errorf("foreign bitmap error = %v, want *ResourceError", err)
	}
}

type fakeBitmap struct{}

func (fakeBitmap) Size() (int, int) { return 1, 1 }

func TestSceneSingleUse(t *testing.T) {
	b := NewSoftBackend()
	sc := b.CreateScene(4, 4)
	if _, err := b.RenderToBuffer(sc, 4, 4); err != nil {
		t.Fatal(err)
	}
	_, err := b.RenderToBuffer(sc, 4, 4)
	var perr *gostim.ParameterError
	if !errors.As(err, &perr) {
		t.Errorf("second render error = %v, want *ParameterError", err)
	}
}

func TestCreateBitmapF32Validation(t *testing.T) {
	b := NewSoftBackend()
	_, err := b.CreateBitmapF32(2, 2, []float32{1, 2, 3}, ColorSpaceLinear)
	var perr *gostim.ParameterError
	if !errors.As(err, &perr) {
		t.Errorf("short buffer error = %v, want *ParameterError", err)
	}
}

func TestCreateBitmapFromPathMissing(t *testing.T) {
	b := NewSoftBackend()
	_, err := b.CreateBitmapFromPath("testdata/does-not-exist.png")
	var derr *gostim.DecodeError
	if !errors.As(err, &derr) {
		t.Errorf("missing file error = %v, want *DecodeError", err)
	}
}

func TestBitmapIdentity(t *testing.T) {
	b := NewSoftBackend()
	data := []float32{0, 0, 0, 1}
	b1, _ := b.CreateBitmapF32(1, 1, data, ColorSpaceLinear)
	b2, _ := b.CreateBitmapF32(1, 1, data, ColorSpaceLinear)
	if b1.ID() == b2.ID() {
		t.Error("distinct bitmaps share an id")
	}
	if w, h := b1.Size(); w != 1 || h != 1 {
		t.Errorf("Size() = (%d, %d), want (1, 1)", w, h)
	}
}
