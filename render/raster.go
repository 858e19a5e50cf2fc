// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/scene"
)

// subRows is the number of vertical subsamples per pixel row used by the
// scanline filler.
const subRows = 4

// raster accumulates one frame into a premultiplied linear RGBA buffer.
type raster struct {
	w, h int
	// buf is the base target, premultiplied linear RGBA.
	buf []float32
	// layers holds open compositing layers, innermost last.
	layers []layerFrame

	// cov is a per-row coverage scratch buffer.
	cov []float32
}

type layerFrame struct {
	buf []float32
	op  scene.PushLayerOp
}

func newRaster(w, h int, bg gostim.LinRGBA) *raster {
	buf := make([]float32, 4*w*h)
	for i := 0; i < len(buf); i += 4 {
		buf[i] = bg.R * bg.A
		buf[i+1] = bg.G * bg.A
		buf[i+2] = bg.B * bg.A
		buf[i+3] = bg.A
	}
	return &raster{w: w, h: h, buf: buf, cov: make([]float32, w)}
}

// target returns the buffer draws currently land in.
func (r *raster) target() []float32 {
	if n := len(r.layers); n > 0 {
		return r.layers[n-1].buf
	}
	return r.buf
}

func (r *raster) replay(ops []scene.Op) error {
	for _, op := range ops {
		var err error
		switch o := op.(type) {
		case scene.FillOp:
			err = r.fillShape(o.Shape, o.Transform, o.Brush, 1, o.Blend)
		case scene.StrokeOp:
			err = r.strokeShape(o.Shape, o.Transform, o.Brush, o.Style, o.Blend)
		case scene.GlyphsOp:
			err = r.drawGlyphs(o)
		case scene.PushLayerOp:
			r.layers = append(r.layers, layerFrame{buf: make([]float32, 4*r.w*r.h), op: o})
		case scene.PopLayerOp:
			err = r.popLayer()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *raster) fillShape(shape scene.Shape, tr geometry.Transform2D, brush scene.Brush, alpha float32, blend scene.BlendMode) error {
	shader, err := makeShader(brush)
	if err != nil {
		return err
	}
	contours := transformedContours(shape.ToPath(), tr)
	r.fillContours(r.target(), contours, shader, alpha, blend)
	return nil
}

func (r *raster) strokeShape(shape scene.Shape, tr geometry.Transform2D, brush scene.Brush, style scene.StrokeStyle, blend scene.BlendMode) error {
	shader, err := makeShader(brush)
	if err != nil {
		return err
	}
	contours := transformedContours(shape.ToPath(), tr)
	expanded := strokeToFill(contours, style, pathClosed(shape))
	r.fillContours(r.target(), expanded, shader, 1, blend)
	return nil
}

func (r *raster) drawGlyphs(o scene.GlyphsOp) error {
	shader, err := makeShader(o.Brush)
	if err != nil {
		return err
	}
	alpha := o.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	for _, g := range o.Run.Glyphs {
		gp := o.Font.GlyphPath(g.GID, o.Size)
		if gp == nil {
			continue
		}
		placed := gp.Transform(func(x, y float32) (float32, float32) {
			return o.Transform.Apply(x+o.X+g.X, y+o.Y+g.Y)
		})
		r.fillContours(r.target(), placed.Flatten(0.25), shader, alpha, o.Blend)
	}
	return nil
}

// popLayer composites the innermost layer onto the buffer below it,
// applying the layer's blend mode, alpha, and clip shape.
func (r *raster) popLayer() error {
	n := len(r.layers)
	if n == 0 {
		return &gostim.ParameterError{Op: "render", Msg: "layer pop without matching push"}
	}
	top := r.layers[n-1]
	r.layers = r.layers[:n-1]
	dst := r.target()

	alpha := top.op.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}

	var clip []float32
	if top.op.Clip != nil {
		clip = r.coverageMask(top.op.Clip, top.op.ClipTransform)
	}

	for i := 0; i < len(dst); i += 4 {
		a := alpha
		if clip != nil {
			a *= clip[i/4]
			if a == 0 {
				continue
			}
		}
		src := [4]float32{top.buf[i] * a, top.buf[i+1] * a, top.buf[i+2] * a, top.buf[i+3] * a}
		d := [4]float32{dst[i], dst[i+1], dst[i+2], dst[i+3]}
		out := blendPixel(top.op.Blend, src, d)
		dst[i], dst[i+1], dst[i+2], dst[i+3] = out[0], out[1], out[2], out[3]
	}
	return nil
}

// coverageMask rasterizes a shape into a per-pixel coverage buffer.
func (r *raster) coverageMask(shape scene.Shape, tr geometry.Transform2D) []float32 {
	mask := make([]float32, r.w*r.h)
	contours := transformedContours(shape.ToPath(), tr)
	r.scanFill(contours, func(x, y int, cov float32) {
		mask[y*r.w+x] = math32.Min(mask[y*r.w+x]+cov, 1)
	})
	return mask
}

// unpremultiplied converts the base buffer to straight-alpha RGBA.
func (r *raster) unpremultiplied() []float32 {
	out := make([]float32, len(r.buf))
	for i := 0; i < len(r.buf); i += 4 {
		a := r.buf[i+3]
		if a > 0 {
			out[i] = r.buf[i] / a
			out[i+1] = r.buf[i+1] / a
			out[i+2] = r.buf[i+2] / a
		}
		out[i+3] = a
	}
	return out
}

// fillContours rasterizes closed contours into dst using the shader for
// color, scaling alpha by alphaScale.
func (r *raster) fillContours(dst []float32, contours [][]scene.Point, shader shaderFunc, alphaScale float32, blend scene.BlendMode) {
	r.scanFill(contours, func(x, y int, cov float32) {
		cr, cg, cb, ca := shader(float32(x)+0.5, float32(y)+0.5)
		a := ca * cov * alphaScale
		if a <= 0 {
			return
		}
		i := (y*r.w + x) * 4
		src := [4]float32{cr * a, cg * a, cb * a, a}
		d := [4]float32{dst[i], dst[i+1], dst[i+2], dst[i+3]}
		out := blendPixel(blend, src, d)
		dst[i], dst[i+1], dst[i+2], dst[i+3] = out[0], out[1], out[2], out[3]
	})
}

type edge struct {
	x0, y0, x1, y1 float32
	dir            int // +1 down, -1 up
}

type crossing struct {
	x   float32
	dir int
}

// scanFill computes nonzero-winding coverage of the contours and invokes
// emit once per covered pixel with coverage in (0, 1].
func (r *raster) scanFill(contours [][]scene.Point, emit func(x, y int, cov float32)) {
	var edges []edge
	minY, maxY := float32(r.h), float32(0)
	for _, c := range contours {
		for i := 0; i+1 < len(c); i++ {
			p, q := c[i], c[i+1]
			if p.Y == q.Y {
				continue
			}
			e := edge{x0: p.X, y0: p.Y, x1: q.X, y1: q.Y, dir: 1}
			if p.Y > q.Y {
				e = edge{x0: q.X, y0: q.Y, x1: p.X, y1: p.Y, dir: -1}
			}
			edges = append(edges, e)
			minY = math32.Min(minY, e.y0)
			maxY = math32.Max(maxY, e.y1)
		}
	}
	if len(edges) == 0 {
		return
	}

	y0 := int(math32.Max(0, math32.Floor(minY)))
	y1 := int(math32.Min(float32(r.h), math32.Ceil(maxY)))

	var crossings []crossing
	for y := y0; y < y1; y++ {
		for i := range r.cov {
			r.cov[i] = 0
		}
		touched := false
		for s := 0; s < subRows; s++ {
			sy := float32(y) + (float32(s)+0.5)/subRows
			crossings = crossings[:0]
			for _, e := range edges {
				if sy < e.y0 || sy >= e.y1 {
					continue
				}
				t := (sy - e.y0) / (e.y1 - e.y0)
				crossings = append(crossings, crossing{x: e.x0 + t*(e.x1-e.x0), dir: e.dir})
			}
			if len(crossings) == 0 {
				continue
			}
			sort.Slice(crossings, func(i, j int) bool { return crossings[i].x < crossings[j].x })

			winding := 0
			var spanStart float32
			for _, c := range crossings {
				if winding == 0 {
					spanStart = c.x
				}
				winding += c.dir
				if winding == 0 {
					r.addSpan(spanStart, c.x)
					touched = true
				}
			}
		}
		if !touched {
			continue
		}
		for x := 0; x < r.w; x++ {
			if cov := r.cov[x]; cov > 0 {
				emit(x, y, math32.Min(cov, 1))
			}
		}
	}
}

// addSpan accumulates one subrow's horizontal span [x0, x1) into the
// coverage row, with fractional coverage at the ends.
func (r *raster) addSpan(x0, x1 float32) {
	const w = 1.0 / subRows
	x0 = math32.Max(x0, 0)
	x1 = math32.Min(x1, float32(r.w))
	if x0 >= x1 {
		return
	}
	ix0 := int(math32.Floor(x0))
	ix1 := int(math32.Ceil(x1)) - 1
	if ix0 == ix1 {
		r.cov[ix0] += (x1 - x0) * w
		return
	}
	r.cov[ix0] += (float32(ix0+1) - x0) * w
	for x := ix0 + 1; x < ix1; x++ {
		r.cov[x] += w
	}
	r.cov[ix1] += (x1 - float32(ix1)) * w
}

// transformedContours flattens a path and maps it through a transform.
func transformedContours(p *scene.Path, tr geometry.Transform2D) [][]scene.Point {
	if !tr.IsIdentity() {
		p = p.Transform(tr.Apply)
	}
	return p.Flatten(0.25)
}

// pathClosed reports whether a shape's outline is a closed loop, which
// decides whether stroke caps apply.
func pathClosed(s scene.Shape) bool {
	_, open := s.(*scene.Line)
	return !open
}

// strokeToFill expands stroked contours into closed fill contours:
// a quad per segment, a disc at every joint, and caps per style. Overlaps
// are harmless under the nonzero winding rule.
func strokeToFill(contours [][]scene.Point, style scene.StrokeStyle, closed bool) [][]scene.Point {
	hw := style.Width / 2
	if hw <= 0 {
		hw = 0.5
	}
	var out [][]scene.Point
	for _, c := range contours {
		for _, segs := range applyDashes(c, style.Dashes, style.DashOffset) {
			out = append(out, expandPolyline(segs, hw, style, closed && len(style.Dashes) == 0)...)
		}
	}
	return out
}

// applyDashes splits a polyline into drawn pieces per the dash pattern.
// An empty pattern returns the polyline unchanged.
func applyDashes(pts []scene.Point, dashes []float32, offset float32) [][]scene.Point {
	if len(dashes) == 0 || len(pts) < 2 {
		return [][]scene.Point{pts}
	}
	var total float32
	for _, d := range dashes {
		total += d
	}
	if total <= 0 {
		return [][]scene.Point{pts}
	}

	pos := math32.Mod(offset, total)
	if pos < 0 {
		pos += total
	}
	di := 0
	for pos >= dashes[di] {
		pos -= dashes[di]
		di = (di + 1) % len(dashes)
	}
	on := di%2 == 0
	remain := dashes[di] - pos

	var pieces [][]scene.Point
	var cur []scene.Point
	if on {
		cur = append(cur, pts[0])
	}

	for i := 0; i+1 < len(pts); i++ {
		p, q := pts[i], pts[i+1]
		segLen := math32.Hypot(q.X-p.X, q.Y-p.Y)
		done := float32(0)
		for segLen-done > remain {
			done += remain
			t := done / segLen
			mid := scene.Point{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)}
			if on {
				cur = append(cur, mid)
				pieces = append(pieces, cur)
				cur = nil
			} else {
				cur = []scene.Point{mid}
			}
			on = !on
			di = (di + 1) % len(dashes)
			remain = dashes[di]
		}
		remain -= segLen - done
		if on {
			cur = append(cur, q)
		}
	}
	if len(cur) >= 2 {
		pieces = append(pieces, cur)
	}
	return pieces
}

// expandPolyline converts an open polyline into closed contours covering
// its stroked area.
func expandPolyline(pts []scene.Point, hw float32, style scene.StrokeStyle, closed bool) [][]scene.Point {
	var out [][]scene.Point
	for i := 0; i+1 < len(pts); i++ {
		p, q := pts[i], pts[i+1]
		dx, dy := q.X-p.X, q.Y-p.Y
		l := math32.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		ux, uy := dx/l, dy/l
		nx, ny := -uy*hw, ux*hw

		p0, q0 := p, q
		if !closed && style.Cap == scene.CapSquare {
			if i == 0 {
				p0 = scene.Point{X: p.X - ux*hw, Y: p.Y - uy*hw}
			}
			if i == len(pts)-2 {
				q0 = scene.Point{X: q.X + ux*hw, Y: q.Y + uy*hw}
			}
		}
		out = append(out, []scene.Point{
			{X: p0.X + nx, Y: p0.Y + ny},
			{X: q0.X + nx, Y: q0.Y + ny},
			{X: q0.X - nx, Y: q0.Y - ny},
			{X: p0.X - nx, Y: p0.Y - ny},
			{X: p0.X + nx, Y: p0.Y + ny},
		})
	}

	// Discs at interior joints keep corners solid regardless of join style;
	// miter geometry is approximated by them.
	for i := 1; i+1 < len(pts); i++ {
		out = append(out, disc(pts[i], hw))
	}
	if closed && len(pts) >= 2 {
		out = append(out, disc(pts[0], hw))
	}
	if !closed && style.Cap == scene.CapRound && len(pts) >= 2 {
		out = append(out, disc(pts[0], hw), disc(pts[len(pts)-1], hw))
	}
	return out
}

// disc returns a closed 16-gon approximating a circle.
func disc(c scene.Point, r float32) []scene.Point {
	const n = 16
	pts := make([]scene.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math32.Pi * float32(i) / n
		pts = append(pts, scene.Point{X: c.X + r*math32.Cos(a), Y: c.Y + r*math32.Sin(a)})
	}
	return pts
}

// errForeignBitmap is returned when a brush references a bitmap this
// backend did not create.
func errForeignBitmap(b scene.Bitmap) error {
	return &gostim.ResourceError{
		Resource: "brush bitmap",
		Err:      fmt.Errorf("bitmap %T does not belong to this backend", b),
	}
}
