package geometry

import (
	"testing"

	"github.com/chewxy/math32"
)

var (
	testViewport = Viewport{Width: 800, Height: 600}
	// 800 px over 400 mm, observer at 570 mm.
	testScreen = NewPhysicalScreen(800, 400, 570)
)

func TestSizeEval(t *testing.T) {
	tests := []struct {
		name string
		size Size
		want float32
	}{
		{"pixels", Pixels(42), 42},
		{"millimeters", Millimeters(10), 20},
		{"centimeters", Centimeters(1), 20},
		{"screen width fraction", ScreenWidth(0.5), 400},
		{"screen height fraction", ScreenHeight(1), 600},
		{"add", Add{Pixels(10), Millimeters(5)}, 20},
		{"sub", Sub{ScreenWidth(1), Pixels(100)}, 700},
		{"mul", Mul{Pixels(15), 2}, 30},
		{"div", Div{ScreenHeight(1), 3}, 200},
		{"nested", Add{Mul{Pixels(10), 3}, Div{Pixels(10), 2}}, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.size.Eval(testViewport, testScreen)
			if math32.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegreesEval(t *testing.T) {
	// One degree at 570 mm subtends tan(0.5°)*2*570 mm on the screen.
	wantMM := math32.Tan(0.5*math32.Pi/180) * 2 * 570
	want := wantMM * testScreen.PixelDensity

	got := Degrees(1).Eval(testViewport, testScreen)
	if math32.Abs(got-want) > 1e-3 {
		t.Errorf("Degrees(1).Eval() = %v, want %v", got, want)
	}

	// Small angles are close to linear: 2 degrees is about twice 1 degree.
	got2 := Degrees(2).Eval(testViewport, testScreen)
	if math32.Abs(got2-2*got) > 0.05 {
		t.Errorf("Degrees(2).Eval() = %v, want about %v", got2, 2*got)
	}
}

func TestNewPhysicalScreen(t *testing.T) {
	s := NewPhysicalScreen(1920, 600, 500)
	if math32.Abs(s.PixelDensity-3.2) > 1e-6 {
		t.Errorf("PixelDensity = %v, want 3.2", s.PixelDensity)
	}
	if s.ViewingDistance != 500 {
		t.Errorf("ViewingDistance = %v, want 500", s.ViewingDistance)
	}
}
