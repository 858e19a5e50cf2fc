// Package scene records the draw commands for one presented frame.
// A Scene is backend-agnostic: recording performs no rasterization and no
// GPU calls; a renderer backend materializes the command list when the
// scene is handed to it, exactly once.
package scene

import (
	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
)

// Op is one recorded draw operation. Concrete types: FillOp, StrokeOp,
// GlyphsOp, PushLayerOp, PopLayerOp.
type Op interface {
	isOp()
}

// FillOp fills a shape with a brush.
type FillOp struct {
	Shape     Shape
	Brush     Brush
	Transform geometry.Transform2D
	Blend     BlendMode
}

func (FillOp) isOp() {}

// StrokeOp strokes a shape's outline with a brush.
type StrokeOp struct {
	Shape     Shape
	Brush     Brush
	Style     StrokeStyle
	Transform geometry.Transform2D
	Blend     BlendMode
}

func (StrokeOp) isOp() {}

// GlyphsOp fills a glyph run with a brush. X, Y position the run's origin
// on the baseline.
type GlyphsOp struct {
	X, Y      float32
	Run       GlyphRun
	Font      Font
	Size      float32
	Brush     Brush
	Alpha     float32
	Transform geometry.Transform2D
	Blend     BlendMode
}

func (GlyphsOp) isOp() {}

// PushLayerOp begins a compositing layer. Draws until the matching
// PopLayerOp render into the layer, which is then composited with the
// given blend mode and alpha, clipped to Clip.
type PushLayerOp struct {
	Blend          BlendMode
	Alpha          float32
	Clip           Shape
	ClipTransform  geometry.Transform2D
	LayerTransform geometry.Transform2D
}

func (PushLayerOp) isOp() {}

// PopLayerOp ends the innermost open layer.
type PopLayerOp struct{}

func (PopLayerOp) isOp() {}

// DrawOptions carries the optional arguments of a draw operation.
// A nil *DrawOptions means identity transform and source-over blending.
type DrawOptions struct {
	// Transform, when non-nil, positions the shape in scene space.
	Transform *geometry.Transform2D
	Blend     BlendMode
}

func (o *DrawOptions) transform() geometry.Transform2D {
	if o == nil || o.Transform == nil {
		return geometry.Identity()
	}
	return *o.Transform
}

func (o *DrawOptions) blend() BlendMode {
	if o == nil {
		return BlendSourceOver
	}
	return o.Blend
}

// Scene accumulates draw commands for one frame. It is single-use: created
// fresh per presented sub-frame, consumed exactly once by a renderer
// backend, then discarded.
//
// Scene is not safe for concurrent use.
type Scene struct {
	width, height uint32
	background    gostim.LinRGBA
	ops           []Op
	layerDepth    int
	consumed      bool
}

// New creates an empty scene for a target of the given pixel size.
func New(width, height uint32) *Scene {
	return &Scene{width: width, height: height, background: gostim.Gray}
}

// Width returns the target width in pixels.
func (s *Scene) Width() uint32 { return s.width }

// Height returns the target height in pixels.
func (s *Scene) Height() uint32 { return s.height }

// Background returns the background color the target is cleared to.
func (s *Scene) Background() gostim.LinRGBA { return s.background }

// SetBackground sets the background color the target is cleared to before
// the recorded operations are replayed.
func (s *Scene) SetBackground(c gostim.LinRGBA) { s.background = c }

// FillShape records a fill of shape with brush. Filling a Line draws
// nothing; the operation is dropped with a warning.
func (s *Scene) FillShape(shape Shape, brush Brush, opts *DrawOptions) {
	if shape == nil || brush == nil {
		return
	}
	if _, ok := shape.(*Line); ok {
		gostim.Logger().Warn("scene: fill on a line records nothing, use StrokeShape")
		return
	}
	s.ops = append(s.ops, FillOp{
		Shape:     shape,
		Brush:     brush,
		Transform: opts.transform(),
		Blend:     opts.blend(),
	})
}

// StrokeShape records a stroke of shape's outline with brush.
func (s *Scene) StrokeShape(shape Shape, brush Brush, style StrokeStyle, opts *DrawOptions) {
	if shape == nil || brush == nil {
		return
	}
	if style.Width <= 0 {
		style = DefaultStrokeStyle()
	}
	s.ops = append(s.ops, StrokeOp{
		Shape:     shape,
		Brush:     brush,
		Style:     style,
		Transform: opts.transform(),
		Blend:     opts.blend(),
	})
}

// DrawGlyphs records a glyph run at (x, y) with the baseline at y.
// Alpha in [0, 1] scales the brush; pass 1 for opaque.
func (s *Scene) DrawGlyphs(x, y float32, run GlyphRun, font Font, size float32, brush Brush, alpha float32, opts *DrawOptions) {
	if len(run.Glyphs) == 0 || font == nil || brush == nil {
		return
	}
	s.ops = append(s.ops, GlyphsOp{
		X: x, Y: y,
		Run:       run,
		Font:      font,
		Size:      size,
		Brush:     brush,
		Alpha:     alpha,
		Transform: opts.transform(),
		Blend:     opts.blend(),
	})
}

// StartLayer records the beginning of a compositing layer. Every
// StartLayer must be matched by an EndLayer before the scene is consumed.
func (s *Scene) StartLayer(blend BlendMode, alpha float32, clip Shape, clipTransform, layerTransform geometry.Transform2D) {
	s.ops = append(s.ops, PushLayerOp{
		Blend:          blend,
		Alpha:          alpha,
		Clip:           clip,
		ClipTransform:  clipTransform,
		LayerTransform: layerTransform,
	})
	s.layerDepth++
}

// EndLayer records the end of the innermost open layer.
func (s *Scene) EndLayer() {
	s.ops = append(s.ops, PopLayerOp{})
	s.layerDepth--
}

// OpCount returns the number of recorded operations.
func (s *Scene) OpCount() int { return len(s.ops) }

// Consume validates the recording and hands over the operation list.
// It fails if layer push/pop do not balance or if the scene was already
// consumed; draw order in the returned slice is recording order.
func (s *Scene) Consume() ([]Op, error) {
	if s.consumed {
		return nil, &gostim.ParameterError{Op: "scene", Msg: "scene already consumed; scenes are single-use"}
	}
	if s.layerDepth != 0 {
		return nil, &gostim.ParameterError{Op: "scene", Msg: "unbalanced layer push/pop"}
	}
	s.consumed = true
	return s.ops, nil
}
