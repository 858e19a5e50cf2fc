package scene

// Glyph is one positioned glyph in a run. X and Y are offsets in pixels
// relative to the run's draw position; GID is the glyph index in the font.
type Glyph struct {
	GID  uint32
	X, Y float32
}

// GlyphRun is an ordered sequence of positioned glyphs from one font face.
type GlyphRun struct {
	Glyphs []Glyph
}

// Font is an opaque handle to a loaded font face. It exposes just enough
// for a renderer to materialize glyphs; the backend that loaded the face
// owns everything else.
type Font interface {
	// GlyphPath returns the outline of the glyph scaled to the given pixel
	// size, in a y-down coordinate system with the origin on the baseline.
	// A nil path means the glyph has no outline (e.g. a space).
	GlyphPath(gid uint32, sizePx float32) *Path

	// GlyphAdvance returns the horizontal advance of the glyph at the given
	// pixel size.
	GlyphAdvance(gid uint32, sizePx float32) float32
}
