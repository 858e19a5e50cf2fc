// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/scene"
)

// FontFace is a parsed font face usable with scene glyph runs.
// The face converts glyph outlines from font units to pixel-space paths,
// so the rasterizer treats glyphs as ordinary filled paths.
type FontFace struct {
	face *font.Face
	upem float32
}

// parseFontFace parses TTF/OTF data. For TTC collections, index selects
// the face; plain fonts require index 0.
func parseFontFace(data []byte, index int) (*FontFace, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		// Not a collection; try a single face.
		face, ferr := font.ParseTTF(bytes.NewReader(data))
		if ferr != nil {
			return nil, &gostim.DecodeError{What: "font face", Err: ferr}
		}
		faces = []*font.Face{face}
	}
	if index < 0 || index >= len(faces) {
		return nil, &gostim.DecodeError{
			What: "font face",
			Err:  fmt.Errorf("face index %d out of range, collection has %d", index, len(faces)),
		}
	}
	face := faces[index]
	return &FontFace{face: face, upem: float32(face.Upem())}, nil
}

// GlyphForRune returns the glyph index for a rune, or false if the face
// has no glyph for it.
func (f *FontFace) GlyphForRune(r rune) (uint32, bool) {
	gid, ok := f.face.NominalGlyph(r)
	return uint32(gid), ok
}

// GlyphPath returns the glyph outline scaled to sizePx, y-down with the
// origin on the baseline. Glyphs without an outline return nil.
func (f *FontFace) GlyphPath(gid uint32, sizePx float32) *scene.Path {
	data := f.face.GlyphData(font.GID(gid))
	outline, ok := data.(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return nil
	}

	// Font units are y-up; scene space is y-down.
	s := sizePx / f.upem
	sx := func(v float32) float32 { return v * s }
	sy := func(v float32) float32 { return -v * s }

	p := scene.NewPath()
	open := false
	for _, seg := range outline.Segments {
		a := seg.Args
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(sx(a[0].X), sy(a[0].Y))
			open = true
		case ot.SegmentOpLineTo:
			p.LineTo(sx(a[0].X), sy(a[0].Y))
		case ot.SegmentOpQuadTo:
			p.QuadTo(sx(a[0].X), sy(a[0].Y), sx(a[1].X), sy(a[1].Y))
		case ot.SegmentOpCubeTo:
			p.CubicTo(sx(a[0].X), sy(a[0].Y), sx(a[1].X), sy(a[1].Y), sx(a[2].X), sy(a[2].Y))
		}
	}
	if open {
		p.Close()
	}
	return p
}

// GlyphAdvance returns the horizontal advance of a glyph at sizePx.
func (f *FontFace) GlyphAdvance(gid uint32, sizePx float32) float32 {
	return f.face.HorizontalAdvance(font.GID(gid)) * sizePx / f.upem
}

var _ scene.Font = (*FontFace)(nil)
