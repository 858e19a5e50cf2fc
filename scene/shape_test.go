package scene

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestRectangleContains(t *testing.T) {
	r := NewRectangle(0, 0, 100, 100)
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"center", 0, 0, true},
		{"corner", -50, -50, true},
		{"just inside", 49, 49, true},
		{"outside", 1000, 1000, false},
		{"just outside", 51, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCircleContains(t *testing.T) {
	c := &Circle{CX: 10, CY: 10, Radius: 5}
	if !c.Contains(10, 10) {
		t.Error("center not contained")
	}
	if !c.Contains(14, 10) {
		t.Error("interior point not contained")
	}
	if c.Contains(16, 10) {
		t.Error("exterior point contained")
	}
}

func TestEllipseContains(t *testing.T) {
	// A wide flat ellipse rotated 90 degrees becomes tall and narrow.
	e := &Ellipse{CX: 0, CY: 0, RadiusX: 10, RadiusY: 2, Rotation: math32.Pi / 2}
	if !e.Contains(0, 8) {
		t.Error("(0, 8) not contained after rotation")
	}
	if e.Contains(8, 0) {
		t.Error("(8, 0) contained after rotation")
	}
}

func TestPolygonContains(t *testing.T) {
	tri := &Polygon{Points: []Point{{0, 0}, {10, 0}, {5, 10}}}
	if !tri.Contains(5, 3) {
		t.Error("interior point not contained")
	}
	if tri.Contains(0, 10) {
		t.Error("exterior point contained")
	}
}

func TestShapeBounds(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  Rect
	}{
		{"rectangle", NewRectangle(0, 0, 100, 50), Rect{-50, -25, 50, 25}},
		{"circle", &Circle{CX: 5, CY: 5, Radius: 5}, Rect{0, 0, 10, 10}},
		{"line", &Line{X1: 10, Y1: 20, X2: 0, Y2: 5}, Rect{0, 5, 10, 20}},
		{"rounded rect corners swapped", &RoundedRectangle{AX: 10, AY: 10, BX: 0, BY: 0, Radius: 2}, Rect{0, 0, 10, 10}},
		{"polygon", &Polygon{Points: []Point{{1, 2}, {3, -1}, {-2, 0}}}, Rect{-2, -1, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.shape.Bounds()
			if got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPathFlatten(t *testing.T) {
	contours := NewPath().Rectangle(0, 0, 10, 10).Flatten(0.25)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	// Closed rectangle: 4 corners plus the return to start.
	if len(contours[0]) != 5 {
		t.Errorf("rectangle contour has %d points, want 5", len(contours[0]))
	}
}

func TestCircleFlattenStaysOnRadius(t *testing.T) {
	contours := NewPath().Circle(0, 0, 100).Flatten(0.1)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	for _, pt := range contours[0] {
		r := math32.Hypot(pt.X, pt.Y)
		if math32.Abs(r-100) > 0.5 {
			t.Fatalf("flattened point (%v, %v) at radius %v, want about 100", pt.X, pt.Y, r)
		}
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath().MoveTo(1, 2).LineTo(3, 4)
	moved := p.Transform(func(x, y float32) (float32, float32) { return x + 10, y + 20 })

	got := moved.Flatten(0.25)
	want := [][]Point{{{11, 22}, {13, 24}}}
	if len(got) != 1 || got[0][0] != want[0][0] || got[0][1] != want[0][1] {
		t.Errorf("transformed contours = %v, want %v", got, want)
	}

	// Original is untouched.
	orig := p.Flatten(0.25)
	if orig[0][0] != (Point{1, 2}) {
		t.Error("Transform mutated the original path")
	}
}
