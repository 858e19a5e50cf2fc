package stimuli

import (
	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/render"
	"github.com/gostim/gostim/scene"
	"github.com/gostim/gostim/window"
)

// Image is a bitmap stimulus. The bitmap is decoded once at
// construction; position and extent are Sizes evaluated at draw time,
// with the bitmap anchored on its center.
//
// Parameters: "opacity" and "rotation" (degrees, counterclockwise).
type Image struct {
	base

	bitmap              scene.Bitmap
	x, y, width, height geometry.Size
}

// NewImage wraps an already-created bitmap. Passing nil width or height
// falls back to the bitmap's native pixel extent.
func NewImage(bitmap scene.Bitmap, x, y, width, height geometry.Size) (*Image, error) {
	if bitmap == nil {
		return nil, &gostim.ParameterError{Op: "NewImage", Msg: "bitmap is nil"}
	}
	bw, bh := bitmap.Size()
	if width == nil {
		width = geometry.Pixels(bw)
	}
	if height == nil {
		height = geometry.Pixels(bh)
	}
	return &Image{
		base: newBase(map[string]float64{
			"opacity":  1,
			"rotation": 0,
		}),
		bitmap: bitmap,
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}, nil
}

// NewImageFromPath decodes an image file through the backend and wraps
// it as a stimulus.
func NewImageFromPath(backend render.Backend, path string, x, y, width, height geometry.Size) (*Image, error) {
	bmp, err := backend.CreateBitmapFromPath(path)
	if err != nil {
		return nil, err
	}
	return NewImage(bmp, x, y, width, height)
}

func (s *Image) Draw(sc *scene.Scene, state *window.WindowState) {
	vp := state.Viewport()
	scr := state.PhysicalScreen()
	tf, params := s.snapshot()

	cx := s.x.Eval(vp, scr)
	cy := s.y.Eval(vp, scr)
	w := s.width.Eval(vp, scr)
	h := s.height.Eval(vp, scr)
	if w <= 0 || h <= 0 {
		return
	}

	rot := geometry.RotateAround(float32(params["rotation"])*deg2rad, cx, cy)
	world := sceneFromLocal(vp).Mul(tf).Mul(rot)
	brushTF := geometry.Scale(1, -1).Mul(world.Invert())

	br := &scene.ImageBrush{
		Image:     s.bitmap,
		Start:     scene.Point{X: cx - w/2, Y: -cy - h/2},
		Fit:       scene.FitExact,
		FitWidth:  w,
		FitHeight: h,
		Sampling:  scene.SamplingLinear,
		EdgeX:     scene.ExtendPad,
		EdgeY:     scene.ExtendPad,
		Transform: &brushTF,
	}
	if opacity := clampUnit(float32(params["opacity"])); opacity < 1 {
		a := opacity
		br.Alpha = &a
	}

	opts := &scene.DrawOptions{Transform: &world}
	sc.FillShape(scene.NewRectangle(cx, cy, w, h), br, opts)
}

// Contains tests the image rectangle in center-origin space under the
// inverse stimulus transform.
func (s *Image) Contains(x, y float32, win *window.Window) bool {
	width, height := win.Size()
	vp := geometry.Viewport{Width: float32(width), Height: float32(height)}
	scr := win.PhysicalScreen()
	tf, params := s.snapshot()

	cx := s.x.Eval(vp, scr)
	cy := s.y.Eval(vp, scr)
	w := s.width.Eval(vp, scr)
	h := s.height.Eval(vp, scr)

	rot := geometry.RotateAround(float32(params["rotation"])*deg2rad, cx, cy)
	lx, ly := tf.Mul(rot).Invert().Apply(x, y)
	return scene.NewRectangle(cx, cy, w, h).Contains(lx, ly)
}
