package stimuli

import (
	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/render"
	"github.com/gostim/gostim/scene"
	"github.com/gostim/gostim/window"
)

// Text is a single-line text stimulus. Glyphs are laid out by horizontal
// advance only; runes the face cannot map are dropped. The line is
// centered horizontally on the position, with the baseline at it.
//
// Parameter: "opacity".
type Text struct {
	base

	face  *render.FontFace
	text  string
	x, y  geometry.Size
	size  geometry.Size
	color gostim.LinRGBA
}

// NewText creates a text stimulus. size is the font size (ascent scale),
// evaluated like any other physical length.
func NewText(face *render.FontFace, text string, x, y, size geometry.Size, color gostim.LinRGBA) (*Text, error) {
	if face == nil {
		return nil, &gostim.ParameterError{Op: "NewText", Msg: "font face is nil"}
	}
	if size == nil {
		return nil, &gostim.ParameterError{Op: "NewText", Msg: "font size is nil"}
	}
	return &Text{
		base:  newBase(map[string]float64{"opacity": 1}),
		face:  face,
		text:  text,
		x:     x,
		y:     y,
		size:  size,
		color: color,
	}, nil
}

// SetText replaces the displayed string.
func (s *Text) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// layout maps the string to a glyph run and returns its advance width.
func (s *Text) layout(text string, sizePx float32) (scene.GlyphRun, float32) {
	var run scene.GlyphRun
	pen := float32(0)
	for _, r := range text {
		gid, ok := s.face.GlyphForRune(r)
		if !ok {
			continue
		}
		run.Glyphs = append(run.Glyphs, scene.Glyph{GID: gid, X: pen})
		pen += s.face.GlyphAdvance(gid, sizePx)
	}
	return run, pen
}

func (s *Text) Draw(sc *scene.Scene, state *window.WindowState) {
	vp := state.Viewport()
	scr := state.PhysicalScreen()
	tf, params := s.snapshot()
	s.mu.Lock()
	text := s.text
	s.mu.Unlock()

	sizePx := s.size.Eval(vp, scr)
	if sizePx <= 0 || text == "" {
		return
	}
	cx := s.x.Eval(vp, scr)
	cy := s.y.Eval(vp, scr)

	run, advance := s.layout(text, sizePx)
	if len(run.Glyphs) == 0 {
		return
	}

	// Glyph outlines are y-down; flip them into the y-up local frame
	// before the usual local-to-scene mapping.
	world := sceneFromLocal(vp).Mul(tf).Mul(geometry.Scale(1, -1))
	opts := &scene.DrawOptions{Transform: &world}
	opacity := clampUnit(float32(params["opacity"]))

	sc.DrawGlyphs(cx-advance/2, -cy, run, s.face, sizePx,
		scene.SolidBrush{Color: s.color}, opacity, opts)
}

// Contains tests against the line's bounding box: advance wide, one font
// size tall above the baseline.
func (s *Text) Contains(x, y float32, win *window.Window) bool {
	width, height := win.Size()
	vp := geometry.Viewport{Width: float32(width), Height: float32(height)}
	scr := win.PhysicalScreen()
	tf, _ := s.snapshot()
	s.mu.Lock()
	text := s.text
	s.mu.Unlock()

	sizePx := s.size.Eval(vp, scr)
	if sizePx <= 0 || text == "" {
		return false
	}
	cx := s.x.Eval(vp, scr)
	cy := s.y.Eval(vp, scr)
	_, advance := s.layout(text, sizePx)

	lx, ly := tf.Invert().Apply(x, y)
	return scene.NewRectangle(cx, cy+sizePx/2, advance, sizePx).Contains(lx, ly)
}

var (
	_ window.Stimulus = (*Pattern)(nil)
	_ window.Stimulus = (*Image)(nil)
	_ window.Stimulus = (*Text)(nil)
)
