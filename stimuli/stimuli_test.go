package stimuli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/render"
	"github.com/gostim/gostim/window"
)

var testScreen = geometry.NewPhysicalScreen(200, 100, 570)

// renderStimulus draws one stimulus into a 200x200 offscreen state and
// returns the raster.
func renderStimulus(t *testing.T, s window.Stimulus) []float32 {
	t.Helper()
	backend := render.NewSoftBackend()
	state := window.OffscreenState(backend, 200, 200, testScreen)
	sc := backend.CreateScene(200, 200)
	s.Draw(sc, state)
	buf, err := backend.RenderToBuffer(sc, 200, 200)
	require.NoError(t, err)
	return buf
}

func pixel(buf []float32, x, y int) (r, g, b, a float32) {
	i := 4 * (y*200 + x)
	return buf[i], buf[i+1], buf[i+2], buf[i+3]
}

func assertPixel(t *testing.T, buf []float32, x, y int, wr, wg, wb float32) {
	t.Helper()
	r, g, b, _ := pixel(buf, x, y)
	assert.InDelta(t, wr, r, 0.02, "red at (%d,%d)", x, y)
	assert.InDelta(t, wg, g, 0.02, "green at (%d,%d)", x, y)
	assert.InDelta(t, wb, b, 0.02, "blue at (%d,%d)", x, y)
}

func TestPatternUniform(t *testing.T) {
	p := NewPattern(PatternUniform, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100), gostim.Red, gostim.LinRGBA{})
	buf := renderStimulus(t, p)

	assertPixel(t, buf, 100, 100, 1, 0, 0)
	assertPixel(t, buf, 10, 10, 0.5, 0.5, 0.5) // background
}

func TestPatternUniformOpacity(t *testing.T) {
	p := NewPattern(PatternUniform, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100), gostim.Red, gostim.LinRGBA{})
	require.NoError(t, p.SetParam("opacity", 0.5))
	buf := renderStimulus(t, p)

	// Half red over mid gray.
	assertPixel(t, buf, 100, 100, 0.75, 0.25, 0.25)
}

func TestPatternStripes(t *testing.T) {
	p := NewPattern(PatternStripes, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(200), geometry.Pixels(200), gostim.White, gostim.Black)
	require.NoError(t, p.SetParam("cycle_length", 100))
	buf := renderStimulus(t, p)

	assertPixel(t, buf, 80, 100, 1, 1, 1)
	assertPixel(t, buf, 120, 100, 0, 0, 0)
}

func TestPatternStripesPhase(t *testing.T) {
	p := NewPattern(PatternStripes, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(200), geometry.Pixels(200), gostim.White, gostim.Black)
	require.NoError(t, p.SetParam("cycle_length", 100))
	require.NoError(t, p.SetParam("phase", 180))
	buf := renderStimulus(t, p)

	// Half a cycle of shift swaps the bars.
	assertPixel(t, buf, 80, 100, 0, 0, 0)
	assertPixel(t, buf, 120, 100, 1, 1, 1)
}

func TestPatternCheckerboard(t *testing.T) {
	p := NewPattern(PatternCheckerboard, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(200), geometry.Pixels(200), gostim.White, gostim.Black)
	require.NoError(t, p.SetParam("cycle_length", 200))
	buf := renderStimulus(t, p)

	assertPixel(t, buf, 60, 60, 1, 1, 1)
	assertPixel(t, buf, 140, 60, 0, 0, 0)
	assertPixel(t, buf, 60, 140, 0, 0, 0)
	assertPixel(t, buf, 140, 140, 1, 1, 1)
}

func TestPatternSinusoidal(t *testing.T) {
	p := NewPattern(PatternSinusoidal, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(200), geometry.Pixels(200), gostim.Black, gostim.White)
	require.NoError(t, p.SetParam("cycle_length", 100))
	buf := renderStimulus(t, p)

	// Quarter cycle past the left edge of a cycle sits at the peak.
	assertPixel(t, buf, 75, 100, 1, 1, 1)
	r1, _, _, _ := pixel(buf, 50, 100)
	assert.InDelta(t, 0.5, r1, 0.03)
}

func TestPatternInvisibleByToggle(t *testing.T) {
	p := NewPattern(PatternUniform, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100), gostim.Red, gostim.LinRGBA{})
	assert.True(t, p.Visible())
	p.SetVisible(false)
	assert.False(t, p.Visible())
}

func TestPatternContains(t *testing.T) {
	w, err := window.New(window.Config{
		Backend:       render.NewSoftBackend(),
		RefreshRateHz: 60,
		Screen:        testScreen,
	})
	require.NoError(t, err)
	require.NoError(t, w.HandleResize(800, 600, time.Now()))

	p := NewPattern(PatternUniform, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100), gostim.Red, gostim.LinRGBA{})

	assert.True(t, p.Contains(0, 0, w))
	assert.True(t, p.Contains(49, 49, w))
	assert.False(t, p.Contains(1000, 1000, w))

	p.SetTransform(geometry.Translate(200, 0))
	assert.True(t, p.Contains(200, 0, w))
	assert.False(t, p.Contains(0, 0, w))

	p.SetTransform(geometry.Identity())
	require.NoError(t, p.SetParam("rotation", 45))
	// The rotated square's corner reaches further out on the axis.
	assert.True(t, p.Contains(65, 0, w))
}

func TestParamNames(t *testing.T) {
	p := NewPattern(PatternUniform, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100), gostim.Red, gostim.LinRGBA{})

	v, ok := p.Param("opacity")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	err := p.SetParam("no_such_param", 1)
	var perr *gostim.ParameterError
	require.ErrorAs(t, err, &perr)

	_, ok = p.Param("no_such_param")
	assert.False(t, ok)
}

func TestAnimationDrivesParam(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPattern(PatternStripes, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100), gostim.White, gostim.Black)
	p.AddAnimation(window.Animation{
		Param: "phase", From: 0, To: 360,
		Start: start, Duration: time.Second, Repeat: window.RepeatLoop,
	})
	p.AddAnimation(window.Animation{
		Param: "does_not_exist", From: 0, To: 1,
		Start: start, Duration: time.Second,
	})

	p.UpdateAnimations(start.Add(500 * time.Millisecond))
	v, ok := p.Param("phase")
	require.True(t, ok)
	assert.InDelta(t, 180.0, v, 1e-9)
	require.Len(t, p.Animations(), 2)
}

func TestAddTransformComposes(t *testing.T) {
	p := NewPattern(PatternUniform, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100), gostim.Red, gostim.LinRGBA{})
	p.SetTransform(geometry.Translate(10, 0))
	p.AddTransform(geometry.Scale(2, 2))

	x, y := p.Transform().Apply(1, 1)
	assert.InDelta(t, 12.0, x, 1e-5)
	assert.InDelta(t, 2.0, y, 1e-5)
}

func TestImageDraw(t *testing.T) {
	backend := render.NewSoftBackend()
	// One column, two rows: red on top, blue below.
	bmp, err := backend.CreateBitmapF32(1, 2, []float32{
		1, 0, 0, 1,
		0, 0, 1, 1,
	}, render.ColorSpaceLinear)
	require.NoError(t, err)

	img, err := NewImage(bmp, geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(100), geometry.Pixels(100))
	require.NoError(t, err)

	state := window.OffscreenState(backend, 200, 200, testScreen)
	sc := backend.CreateScene(200, 200)
	img.Draw(sc, state)
	buf, err := backend.RenderToBuffer(sc, 200, 200)
	require.NoError(t, err)

	assertPixel(t, buf, 100, 70, 1, 0, 0)
	assertPixel(t, buf, 100, 130, 0, 0, 1)
	assertPixel(t, buf, 10, 10, 0.5, 0.5, 0.5)
}

func TestImageNativeSize(t *testing.T) {
	backend := render.NewSoftBackend()
	bmp, err := backend.CreateBitmapF32(4, 2, make([]float32, 4*4*2), render.ColorSpaceLinear)
	require.NoError(t, err)

	img, err := NewImage(bmp, geometry.Pixels(0), geometry.Pixels(0), nil, nil)
	require.NoError(t, err)
	vp := geometry.Viewport{Width: 200, Height: 200}
	assert.Equal(t, float32(4), img.width.Eval(vp, testScreen))
	assert.Equal(t, float32(2), img.height.Eval(vp, testScreen))
}

func TestImageNilBitmap(t *testing.T) {
	_, err := NewImage(nil, geometry.Pixels(0), geometry.Pixels(0), nil, nil)
	var perr *gostim.ParameterError
	require.ErrorAs(t, err, &perr)
}

func TestNewTextValidation(t *testing.T) {
	var perr *gostim.ParameterError
	_, err := NewText(nil, "hi", geometry.Pixels(0), geometry.Pixels(0), geometry.Pixels(24), gostim.White)
	require.ErrorAs(t, err, &perr)
}
