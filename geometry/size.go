package geometry

// Size is a device-independent length. Concrete values carry a unit
// (Pixels, Millimeters, Degrees, ...) and composite values combine other
// sizes arithmetically. A Size stays symbolic until Eval converts it to
// pixels against a viewport and a physical calibration, so stimulus
// parameters never bake in raw pixel values.
type Size interface {
	// Eval converts the size to pixels for the given viewport and screen.
	Eval(vp Viewport, screen PhysicalScreen) float32
}

// Pixels is a length in device pixels.
type Pixels float32

func (p Pixels) Eval(Viewport, PhysicalScreen) float32 { return float32(p) }

// Millimeters is a physical length on the screen surface.
type Millimeters float32

func (m Millimeters) Eval(_ Viewport, s PhysicalScreen) float32 {
	return float32(m) * s.PixelDensity
}

// Centimeters is a physical length on the screen surface.
type Centimeters float32

func (c Centimeters) Eval(_ Viewport, s PhysicalScreen) float32 {
	return float32(c) * 10 * s.PixelDensity
}

// Degrees is a length expressed as degrees of visual angle.
type Degrees float32

func (d Degrees) Eval(_ Viewport, s PhysicalScreen) float32 {
	return s.DegreesToPixels(float32(d))
}

// ScreenWidth is a fraction of the viewport width (1.0 spans the window).
type ScreenWidth float32

func (w ScreenWidth) Eval(vp Viewport, _ PhysicalScreen) float32 {
	return float32(w) * vp.Width
}

// ScreenHeight is a fraction of the viewport height.
type ScreenHeight float32

func (h ScreenHeight) Eval(vp Viewport, _ PhysicalScreen) float32 {
	return float32(h) * vp.Height
}

// Add is the sum of two sizes.
type Add struct{ A, B Size }

func (a Add) Eval(vp Viewport, s PhysicalScreen) float32 {
	return a.A.Eval(vp, s) + a.B.Eval(vp, s)
}

// Sub is the difference of two sizes.
type Sub struct{ A, B Size }

func (d Sub) Eval(vp Viewport, s PhysicalScreen) float32 {
	return d.A.Eval(vp, s) - d.B.Eval(vp, s)
}

// Mul scales a size by a constant factor.
type Mul struct {
	S Size
	F float32
}

func (m Mul) Eval(vp Viewport, s PhysicalScreen) float32 {
	return m.S.Eval(vp, s) * m.F
}

// Div divides a size by a constant factor.
type Div struct {
	S Size
	F float32
}

func (d Div) Eval(vp Viewport, s PhysicalScreen) float32 {
	return d.S.Eval(vp, s) / d.F
}
