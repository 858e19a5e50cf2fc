// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/scene"
)

// shaderFunc returns the straight-alpha linear color of a brush at a
// scene-space pixel center.
type shaderFunc func(x, y float32) (r, g, b, a float32)

func makeShader(brush scene.Brush) (shaderFunc, error) {
	switch br := brush.(type) {
	case scene.SolidBrush:
		c := br.Color
		return func(x, y float32) (float32, float32, float32, float32) {
			return c.R, c.G, c.B, c.A
		}, nil
	case *scene.SolidBrush:
		c := br.Color
		return func(x, y float32) (float32, float32, float32, float32) {
			return c.R, c.G, c.B, c.A
		}, nil
	case scene.GradientBrush:
		return gradientShader(&br), nil
	case *scene.GradientBrush:
		return gradientShader(br), nil
	case scene.ImageBrush:
		return imageShader(&br)
	case *scene.ImageBrush:
		return imageShader(br)
	default:
		return nil, &gostim.ParameterError{Op: "render", Msg: fmt.Sprintf("unknown brush type %T", brush)}
	}
}

func gradientShader(g *scene.GradientBrush) shaderFunc {
	stops := g.Stops
	if len(stops) == 0 {
		return func(x, y float32) (float32, float32, float32, float32) { return 0, 0, 0, 0 }
	}
	return func(x, y float32) (float32, float32, float32, float32) {
		var t float32
		switch g.Kind {
		case scene.GradientLinear:
			dx, dy := g.End.X-g.Start.X, g.End.Y-g.Start.Y
			l2 := dx*dx + dy*dy
			if l2 == 0 {
				t = 0
			} else {
				t = ((x-g.Start.X)*dx + (y-g.Start.Y)*dy) / l2
			}
		case scene.GradientRadial:
			radius := math32.Hypot(g.End.X-g.Start.X, g.End.Y-g.Start.Y)
			if radius == 0 {
				t = 0
			} else {
				t = math32.Hypot(x-g.Start.X, y-g.Start.Y) / radius
			}
		case scene.GradientSweep:
			t = math32.Atan2(y-g.Start.Y, x-g.Start.X)/(2*math32.Pi) + 0.5
		}
		t = applyExtend(t, g.Extend)
		c := rampColor(stops, t)
		return c.R, c.G, c.B, c.A
	}
}

// applyExtend maps an unbounded ramp position into [0, 1] per the extend
// policy.
func applyExtend(t float32, e scene.Extend) float32 {
	switch e {
	case scene.ExtendRepeat:
		t = t - math32.Floor(t)
	case scene.ExtendReflect:
		t = math32.Abs(t)
		t = math32.Mod(t, 2)
		if t > 1 {
			t = 2 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

// rampColor interpolates the sorted stop list at position t.
func rampColor(stops []scene.GradientStop, t float32) gostim.LinRGBA {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span == 0 {
				return b.Color
			}
			f := (t - a.Offset) / span
			return gostim.LinRGBA{
				R: a.Color.R + f*(b.Color.R-a.Color.R),
				G: a.Color.G + f*(b.Color.G-a.Color.G),
				B: a.Color.B + f*(b.Color.B-a.Color.B),
				A: a.Color.A + f*(b.Color.A-a.Color.A),
			}
		}
	}
	return last.Color
}

func imageShader(br *scene.ImageBrush) (shaderFunc, error) {
	bmp, ok := br.Image.(*DynamicBitmap)
	if !ok {
		return nil, errForeignBitmap(br.Image)
	}
	if bmp.Kind() == BitmapTexture {
		return nil, &gostim.ResourceError{
			Resource: "brush bitmap",
			Err:      fmt.Errorf("software rasterizer cannot sample a GPU-texture bitmap"),
		}
	}
	w, h := bmp.Size()
	if w == 0 || h == 0 {
		return nil, &gostim.ParameterError{Op: "render", Msg: "empty bitmap in image brush"}
	}

	// Scene pixels per bitmap pixel.
	scaleX, scaleY := float32(1), float32(1)
	if br.Fit == scene.FitExact {
		if br.FitWidth > 0 {
			scaleX = br.FitWidth / float32(w)
		}
		if br.FitHeight > 0 {
			scaleY = br.FitHeight / float32(h)
		}
	}

	return func(x, y float32) (float32, float32, float32, float32) {
		if br.Transform != nil {
			x, y = br.Transform.Apply(x, y)
		}
		// Bitmap-space coordinates.
		bx := (x - br.Start.X) / scaleX
		by := (y - br.Start.Y) / scaleY

		var r, g, b, a float32
		if br.Sampling == scene.SamplingLinear {
			r, g, b, a = sampleLinear(bmp, bx-0.5, by-0.5, br.EdgeX, br.EdgeY)
		} else {
			r, g, b, a = sampleNearest(bmp, bx, by, br.EdgeX, br.EdgeY)
		}
		if br.Alpha != nil {
			a = clamp01(*br.Alpha)
		}
		return r, g, b, a
	}, nil
}

func sampleNearest(bmp *DynamicBitmap, x, y float32, ex, ey scene.Extend) (float32, float32, float32, float32) {
	w, h := bmp.Size()
	ix := wrapCoord(int(math32.Floor(x)), w, ex)
	iy := wrapCoord(int(math32.Floor(y)), h, ey)
	return bmp.pixelAt(ix, iy)
}

func sampleLinear(bmp *DynamicBitmap, x, y float32, ex, ey scene.Extend) (float32, float32, float32, float32) {
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0

	var acc [4]float32
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			wgt := (1 - math32.Abs(float32(dx)-fx)) * (1 - math32.Abs(float32(dy)-fy))
			if wgt == 0 {
				continue
			}
			r, g, b, a := sampleNearest(bmp, x0+float32(dx), y0+float32(dy), ex, ey)
			acc[0] += r * wgt
			acc[1] += g * wgt
			acc[2] += b * wgt
			acc[3] += a * wgt
		}
	}
	return acc[0], acc[1], acc[2], acc[3]
}

// wrapCoord maps an out-of-range coordinate into [0, n) per the extend
// policy.
func wrapCoord(i, n int, e scene.Extend) int {
	switch e {
	case scene.ExtendRepeat:
		i %= n
		if i < 0 {
			i += n
		}
	case scene.ExtendReflect:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
	default:
		if i < 0 {
			i = 0
		} else if i >= n {
			i = n - 1
		}
	}
	return i
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// blendPixel composites a premultiplied source pixel over a premultiplied
// destination pixel.
func blendPixel(mode scene.BlendMode, s, d [4]float32) [4]float32 {
	sa, da := s[3], d[3]
	var out [4]float32
	switch mode {
	case scene.BlendClear:
		return out
	case scene.BlendCopy:
		return s
	case scene.BlendSourceIn:
		return scale(s, da)
	case scene.BlendSourceOut:
		return scale(s, 1-da)
	case scene.BlendSourceAtop:
		return add(scale(s, da), scale(d, 1-sa))
	case scene.BlendDestOver:
		return add(d, scale(s, 1-da))
	case scene.BlendDestIn:
		return scale(d, sa)
	case scene.BlendDestOut:
		return scale(d, 1-sa)
	case scene.BlendDestAtop:
		return add(scale(d, sa), scale(s, 1-da))
	case scene.BlendXor:
		return add(scale(s, 1-da), scale(d, 1-sa))
	case scene.BlendPlus:
		out = add(s, d)
		for i := range out {
			out[i] = clamp01(out[i])
		}
		return out
	case scene.BlendMultiply, scene.BlendScreen, scene.BlendOverlay, scene.BlendDarken, scene.BlendLighten:
		return separableBlend(mode, s, d)
	default: // BlendSourceOver
		return add(s, scale(d, 1-sa))
	}
}

// separableBlend applies a per-channel mixing function, then source-over
// composites the result.
func separableBlend(mode scene.BlendMode, s, d [4]float32) [4]float32 {
	sa, da := s[3], d[3]
	// Unpremultiply for the channel mix.
	var sc, dc [3]float32
	for i := 0; i < 3; i++ {
		if sa > 0 {
			sc[i] = s[i] / sa
		}
		if da > 0 {
			dc[i] = d[i] / da
		}
	}
	var m [3]float32
	for i := 0; i < 3; i++ {
		cs, cb := sc[i], dc[i]
		switch mode {
		case scene.BlendMultiply:
			m[i] = cs * cb
		case scene.BlendScreen:
			m[i] = cs + cb - cs*cb
		case scene.BlendOverlay:
			if cb <= 0.5 {
				m[i] = 2 * cs * cb
			} else {
				m[i] = 1 - 2*(1-cs)*(1-cb)
			}
		case scene.BlendDarken:
			m[i] = math32.Min(cs, cb)
		case scene.BlendLighten:
			m[i] = math32.Max(cs, cb)
		}
	}
	var out [4]float32
	outA := sa + da*(1-sa)
	for i := 0; i < 3; i++ {
		// Mix toward the blended color where both layers are present.
		c := (1-da)*sc[i] + da*m[i]
		out[i] = c*sa + dc[i]*da*(1-sa)
	}
	out[3] = outA
	return out
}

func scale(p [4]float32, f float32) [4]float32 {
	return [4]float32{p[0] * f, p[1] * f, p[2] * f, p[3] * f}
}

func add(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}
