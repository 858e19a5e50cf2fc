package scene

import "github.com/chewxy/math32"

// Shape is the interface for geometric shapes that can be converted to paths.
// All shapes must be able to provide a path representation and their bounds.
type Shape interface {
	// ToPath converts the shape to a Path for recording.
	ToPath() *Path

	// Bounds returns the bounding rectangle of the shape.
	Bounds() Rect
}

// Rectangle is an axis-aligned rectangle given by its top-left corner
// and dimensions.
type Rectangle struct {
	X, Y          float32
	Width, Height float32
}

// NewRectangle creates a rectangle centered at (cx, cy).
func NewRectangle(cx, cy, width, height float32) *Rectangle {
	return &Rectangle{X: cx - width/2, Y: cy - height/2, Width: width, Height: height}
}

func (r *Rectangle) ToPath() *Path {
	return NewPath().Rectangle(r.X, r.Y, r.Width, r.Height)
}

func (r *Rectangle) Bounds() Rect {
	return Rect{MinX: r.X, MinY: r.Y, MaxX: r.X + r.Width, MaxY: r.Y + r.Height}
}

// Contains returns true if the point (px, py) is inside the rectangle.
func (r *Rectangle) Contains(px, py float32) bool {
	return px >= r.X && px <= r.X+r.Width &&
		py >= r.Y && py <= r.Y+r.Height
}

// Circle is a circle given by its center and radius.
type Circle struct {
	CX, CY float32
	Radius float32
}

func (c *Circle) ToPath() *Path {
	return NewPath().Circle(c.CX, c.CY, c.Radius)
}

func (c *Circle) Bounds() Rect {
	return Rect{
		MinX: c.CX - c.Radius, MinY: c.CY - c.Radius,
		MaxX: c.CX + c.Radius, MaxY: c.CY + c.Radius,
	}
}

// Contains returns true if the point (px, py) is inside the circle.
func (c *Circle) Contains(px, py float32) bool {
	dx, dy := px-c.CX, py-c.CY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Ellipse is an ellipse given by its center, per-axis radii, and a rotation
// in radians around the center.
type Ellipse struct {
	CX, CY   float32
	RadiusX  float32
	RadiusY  float32
	Rotation float32
}

func (e *Ellipse) ToPath() *Path {
	p := NewPath().Ellipse(0, 0, e.RadiusX, e.RadiusY)
	if e.Rotation == 0 {
		return p.Transform(func(x, y float32) (float32, float32) {
			return x + e.CX, y + e.CY
		})
	}
	cos := math32.Cos(e.Rotation)
	sin := math32.Sin(e.Rotation)
	return p.Transform(func(x, y float32) (float32, float32) {
		return cos*x - sin*y + e.CX, sin*x + cos*y + e.CY
	})
}

func (e *Ellipse) Bounds() Rect {
	return e.ToPath().Bounds()
}

// Contains returns true if the point (px, py) is inside the ellipse.
func (e *Ellipse) Contains(px, py float32) bool {
	// Undo rotation, then test against the axis-aligned form.
	dx, dy := px-e.CX, py-e.CY
	cos := math32.Cos(-e.Rotation)
	sin := math32.Sin(-e.Rotation)
	lx := cos*dx - sin*dy
	ly := sin*dx + cos*dy
	if e.RadiusX == 0 || e.RadiusY == 0 {
		return false
	}
	nx, ny := lx/e.RadiusX, ly/e.RadiusY
	return nx*nx+ny*ny <= 1
}

// RoundedRectangle is a rectangle with rounded corners, given by two
// opposite corner points and a corner radius.
type RoundedRectangle struct {
	AX, AY float32
	BX, BY float32
	Radius float32
}

func (r *RoundedRectangle) rect() (x, y, w, h float32) {
	x = math32.Min(r.AX, r.BX)
	y = math32.Min(r.AY, r.BY)
	w = math32.Abs(r.BX - r.AX)
	h = math32.Abs(r.BY - r.AY)
	return
}

func (r *RoundedRectangle) ToPath() *Path {
	x, y, w, h := r.rect()
	return NewPath().RoundedRectangle(x, y, w, h, r.Radius)
}

func (r *RoundedRectangle) Bounds() Rect {
	x, y, w, h := r.rect()
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Line is a straight segment between two points. It only makes sense as a
// stroke; filling a line draws nothing.
type Line struct {
	X1, Y1 float32
	X2, Y2 float32
}

func (l *Line) ToPath() *Path {
	return NewPath().MoveTo(l.X1, l.Y1).LineTo(l.X2, l.Y2)
}

func (l *Line) Bounds() Rect {
	return Rect{
		MinX: math32.Min(l.X1, l.X2), MinY: math32.Min(l.Y1, l.Y2),
		MaxX: math32.Max(l.X1, l.X2), MaxY: math32.Max(l.Y1, l.Y2),
	}
}

// Polygon is a closed polygon through the given points.
type Polygon struct {
	Points []Point
}

func (p *Polygon) ToPath() *Path {
	return NewPath().Polygon(p.Points)
}

func (p *Polygon) Bounds() Rect {
	b := EmptyRect()
	for _, pt := range p.Points {
		b.MinX = math32.Min(b.MinX, pt.X)
		b.MinY = math32.Min(b.MinY, pt.Y)
		b.MaxX = math32.Max(b.MaxX, pt.X)
		b.MaxY = math32.Max(b.MaxY, pt.Y)
	}
	return b
}

// Contains returns true if the point is inside the polygon (even-odd rule).
func (p *Polygon) Contains(px, py float32) bool {
	inside := false
	n := len(p.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > py) != (b.Y > py) &&
			px < (b.X-a.X)*(py-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// PathShape wraps an arbitrary Path as a Shape.
type PathShape struct {
	Path *Path
}

func (s *PathShape) ToPath() *Path { return s.Path }

func (s *PathShape) Bounds() Rect { return s.Path.Bounds() }
