package stimuli

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/render"
	"github.com/gostim/gostim/scene"
	"github.com/gostim/gostim/window"
)

// PatternKind selects the fill of a Pattern stimulus.
type PatternKind uint8

const (
	// PatternUniform fills with the first color only.
	PatternUniform PatternKind = iota
	// PatternStripes alternates vertical bars of the two colors.
	PatternStripes
	// PatternCheckerboard tiles the two colors in a checker layout.
	PatternCheckerboard
	// PatternSinusoidal blends the two colors along a horizontal sine.
	PatternSinusoidal
)

const (
	deg2rad = math32.Pi / 180

	// sineSamples is the resolution of one sinusoidal cycle.
	sineSamples = 256
)

// Pattern is a rectangular stimulus filled with a periodic pattern.
// Position and extent are Sizes, evaluated against the window at draw
// time; the rectangle is centered on the position.
//
// Parameters: "phase" (degrees of pattern shift), "cycle_length"
// (pattern period in pixels), "rotation" (degrees, counterclockwise,
// around the center) and "opacity".
type Pattern struct {
	base

	kind                PatternKind
	x, y, width, height geometry.Size
	first, second       gostim.LinRGBA

	strokeColor gostim.LinRGBA
	strokeWidth geometry.Size

	bmMu   sync.Mutex
	bitmap scene.Bitmap
}

// NewPattern creates a pattern stimulus centered at (x, y). The second
// color is unused by PatternUniform.
func NewPattern(kind PatternKind, x, y, width, height geometry.Size, first, second gostim.LinRGBA) *Pattern {
	return &Pattern{
		base: newBase(map[string]float64{
			"phase":        0,
			"cycle_length": 100,
			"rotation":     0,
			"opacity":      1,
		}),
		kind:   kind,
		x:      x,
		y:      y,
		width:  width,
		height: height,
		first:  first,
		second: second,
	}
}

// SetStroke adds an outline of the given color and width. A nil width
// removes the stroke.
func (p *Pattern) SetStroke(color gostim.LinRGBA, width geometry.Size) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.strokeColor, p.strokeWidth = color, width
}

func (p *Pattern) Draw(sc *scene.Scene, state *window.WindowState) {
	vp := state.Viewport()
	scr := state.PhysicalScreen()
	tf, params := p.snapshot()

	cx := p.x.Eval(vp, scr)
	cy := p.y.Eval(vp, scr)
	w := p.width.Eval(vp, scr)
	h := p.height.Eval(vp, scr)
	if w <= 0 || h <= 0 {
		return
	}

	rot := geometry.RotateAround(float32(params["rotation"])*deg2rad, cx, cy)
	world := sceneFromLocal(vp).Mul(tf).Mul(rot)
	shape := scene.NewRectangle(cx, cy, w, h)
	opts := &scene.DrawOptions{Transform: &world}

	brush, err := p.brush(state, params, world, cx, cy)
	if err != nil {
		gostim.Logger().Warn("pattern brush unavailable", "err", err)
		return
	}
	sc.FillShape(shape, brush, opts)

	p.mu.Lock()
	strokeColor, strokeWidth := p.strokeColor, p.strokeWidth
	p.mu.Unlock()
	if strokeWidth != nil {
		style := scene.DefaultStrokeStyle()
		style.Width = strokeWidth.Eval(vp, scr)
		sc.StrokeShape(shape, scene.SolidBrush{Color: strokeColor}, style, opts)
	}
}

// brush builds the fill for the current parameters. Periodic kinds tile
// a small bitmap through an image brush anchored to the stimulus.
func (p *Pattern) brush(state *window.WindowState, params map[string]float64, world geometry.Transform2D, cx, cy float32) (scene.Brush, error) {
	opacity := clampUnit(float32(params["opacity"]))
	if p.kind == PatternUniform {
		return scene.SolidBrush{Color: p.first.WithAlpha(p.first.A * opacity)}, nil
	}

	bmp, err := p.patternBitmap(state)
	if err != nil {
		return nil, err
	}

	cycle := float32(params["cycle_length"])
	if cycle <= 0 {
		cycle = 1
	}
	phasePx := float32(params["phase"]) / 360 * cycle

	// Brush space is the stimulus's local frame with y pointing down,
	// so bitmap rows land in screen order.
	brushTF := geometry.Scale(1, -1).Mul(world.Invert())

	br := &scene.ImageBrush{
		Image:     bmp,
		Start:     scene.Point{X: cx + phasePx - cycle/2, Y: -cy - cycle/2},
		Fit:       scene.FitExact,
		FitWidth:  cycle,
		EdgeX:     scene.ExtendRepeat,
		EdgeY:     scene.ExtendRepeat,
		Transform: &brushTF,
	}
	if p.kind == PatternCheckerboard {
		br.FitHeight = cycle
	}
	if p.kind == PatternSinusoidal {
		br.Sampling = scene.SamplingLinear
	}
	if opacity < 1 {
		a := opacity
		br.Alpha = &a
	}
	return br, nil
}

// patternBitmap lazily builds the one-cycle tile for this kind out of
// the two colors. The tile only depends on construction-time state, so
// it is built once and reused across frames.
func (p *Pattern) patternBitmap(state *window.WindowState) (scene.Bitmap, error) {
	p.bmMu.Lock()
	defer p.bmMu.Unlock()
	if p.bitmap != nil {
		return p.bitmap, nil
	}

	var w, h int
	var data []float32
	switch p.kind {
	case PatternStripes:
		w, h = 2, 1
		data = appendColor(appendColor(nil, p.first), p.second)
	case PatternCheckerboard:
		w, h = 2, 2
		data = appendColor(appendColor(nil, p.first), p.second)
		data = appendColor(appendColor(data, p.second), p.first)
	case PatternSinusoidal:
		w, h = sineSamples, 1
		data = make([]float32, 0, 4*sineSamples)
		for i := 0; i < sineSamples; i++ {
			t := 0.5 + 0.5*math32.Sin(2*math32.Pi*float32(i)/sineSamples)
			data = appendColor(data, mixColor(p.first, p.second, t))
		}
	default:
		return nil, &gostim.ParameterError{Op: "Pattern", Msg: "unknown pattern kind"}
	}

	bmp, err := state.Backend().CreateBitmapF32(w, h, data, render.ColorSpaceLinear)
	if err != nil {
		return nil, err
	}
	p.bitmap = bmp
	return bmp, nil
}

// Contains tests the rectangle in the window's center-origin space,
// undoing the stimulus transform and rotation first.
func (p *Pattern) Contains(x, y float32, win *window.Window) bool {
	width, height := win.Size()
	vp := geometry.Viewport{Width: float32(width), Height: float32(height)}
	scr := win.PhysicalScreen()
	tf, params := p.snapshot()

	cx := p.x.Eval(vp, scr)
	cy := p.y.Eval(vp, scr)
	w := p.width.Eval(vp, scr)
	h := p.height.Eval(vp, scr)

	rot := geometry.RotateAround(float32(params["rotation"])*deg2rad, cx, cy)
	lx, ly := tf.Mul(rot).Invert().Apply(x, y)
	return scene.NewRectangle(cx, cy, w, h).Contains(lx, ly)
}

func appendColor(data []float32, c gostim.LinRGBA) []float32 {
	return append(data, c.R, c.G, c.B, c.A)
}

func mixColor(a, b gostim.LinRGBA, t float32) gostim.LinRGBA {
	return gostim.LinRGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sceneFromLocal maps center-origin y-up coordinates to top-left y-down
// scene pixels.
func sceneFromLocal(vp geometry.Viewport) geometry.Transform2D {
	return geometry.Translate(vp.Width/2, vp.Height/2).Mul(geometry.Scale(1, -1))
}
