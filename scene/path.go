package scene

import "github.com/chewxy/math32"

// Point is a 2D point in pixel space.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// EmptyRect returns a rectangle that unions as the empty set.
func EmptyRect() Rect {
	return Rect{
		MinX: math32.Inf(1), MinY: math32.Inf(1),
		MaxX: math32.Inf(-1), MaxY: math32.Inf(-1),
	}
}

// IsEmpty returns true if the rectangle contains no area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: math32.Min(r.MinX, other.MinX),
		MinY: math32.Min(r.MinY, other.MinY),
		MaxX: math32.Max(r.MaxX, other.MaxX),
		MaxY: math32.Max(r.MaxY, other.MaxY),
	}
}

// Width returns the rectangle's width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle's height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Verb is a path segment command.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// Path is a sequence of move/line/curve segments describing an outline.
// Build it with the chainable methods, then hand it to a renderer, which
// flattens curves to line segments at its chosen tolerance.
type Path struct {
	verbs  []Verb
	points []Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// IsEmpty returns true if the path has no segments.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, Point{x, y})
	return p
}

// LineTo adds a line segment to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, Point{x, y})
	return p
}

// QuadTo adds a quadratic Bezier with control point (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, Point{cx, cy}, Point{x, y})
	return p
}

// CubicTo adds a cubic Bezier with control points (c1x, c1y), (c2x, c2y)
// ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.verbs = append(p.verbs, VerbClose)
	return p
}

// Rectangle adds a closed rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float32) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// kappa is the control-point factor approximating a quarter circle with
// a cubic Bezier.
const kappa = 0.5522848

// Circle adds a closed circle subpath built from four cubics.
func (p *Path) Circle(cx, cy, r float32) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// Ellipse adds a closed axis-aligned ellipse subpath.
func (p *Path) Ellipse(cx, cy, rx, ry float32) *Path {
	kx, ky := rx*kappa, ry*kappa
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	return p.Close()
}

// RoundedRectangle adds a closed rectangle subpath with rounded corners.
// The radius is clamped to half the smaller side.
func (p *Path) RoundedRectangle(x, y, w, h, radius float32) *Path {
	r := math32.Min(radius, math32.Min(w, h)/2)
	if r <= 0 {
		return p.Rectangle(x, y, w, h)
	}
	k := r * kappa
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	return p.Close()
}

// Polygon adds a closed subpath through the given points.
func (p *Path) Polygon(points []Point) *Path {
	if len(points) == 0 {
		return p
	}
	p.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	return p.Close()
}

// Bounds returns the bounding box of the path's control points.
// Curves are bounded by their control polygons, so this is conservative.
func (p *Path) Bounds() Rect {
	if len(p.points) == 0 {
		return EmptyRect()
	}
	b := EmptyRect()
	for _, pt := range p.points {
		b.MinX = math32.Min(b.MinX, pt.X)
		b.MinY = math32.Min(b.MinY, pt.Y)
		b.MaxX = math32.Max(b.MaxX, pt.X)
		b.MaxY = math32.Max(b.MaxY, pt.Y)
	}
	return b
}

// Transform returns a copy of the path with every point mapped through fn.
func (p *Path) Transform(fn func(x, y float32) (float32, float32)) *Path {
	out := &Path{
		verbs:  append([]Verb(nil), p.verbs...),
		points: make([]Point, len(p.points)),
	}
	for i, pt := range p.points {
		x, y := fn(pt.X, pt.Y)
		out.points[i] = Point{x, y}
	}
	return out
}

// Flatten converts the path to closed polyline contours, subdividing curves
// so the error stays within tolerance.
func (p *Path) Flatten(tolerance float32) [][]Point {
	if tolerance <= 0 {
		tolerance = 0.25
	}
	var contours [][]Point
	var cur []Point
	var start, last Point

	flush := func() {
		if len(cur) >= 2 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	pi := 0
	for _, v := range p.verbs {
		switch v {
		case VerbMoveTo:
			flush()
			start = p.points[pi]
			last = start
			cur = append(cur, start)
			pi++
		case VerbLineTo:
			last = p.points[pi]
			cur = append(cur, last)
			pi++
		case VerbQuadTo:
			c, end := p.points[pi], p.points[pi+1]
			cur = appendQuad(cur, last, c, end, tolerance)
			last = end
			pi += 2
		case VerbCubicTo:
			c1, c2, end := p.points[pi], p.points[pi+1], p.points[pi+2]
			cur = appendCubic(cur, last, c1, c2, end, tolerance)
			last = end
			pi += 3
		case VerbClose:
			if len(cur) > 0 && last != start {
				cur = append(cur, start)
				last = start
			}
		}
	}
	flush()
	return contours
}

func appendQuad(dst []Point, p0, c, p1 Point, tol float32) []Point {
	n := quadSteps(p0, c, p1, tol)
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		mt := 1 - t
		x := mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X
		y := mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y
		dst = append(dst, Point{x, y})
	}
	return dst
}

func appendCubic(dst []Point, p0, c1, c2, p1 Point, tol float32) []Point {
	n := cubicSteps(p0, c1, c2, p1, tol)
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		x := a*p0.X + b*c1.X + c*c2.X + d*p1.X
		y := a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y
		dst = append(dst, Point{x, y})
	}
	return dst
}

// quadSteps picks a subdivision count from the control point's deviation
// from the chord.
func quadSteps(p0, c, p1 Point, tol float32) int {
	dx := p0.X - 2*c.X + p1.X
	dy := p0.Y - 2*c.Y + p1.Y
	dev := math32.Hypot(dx, dy)
	n := int(math32.Ceil(math32.Sqrt(dev / (4 * tol))))
	return clampSteps(n)
}

func cubicSteps(p0, c1, c2, p1 Point, tol float32) int {
	d1 := math32.Hypot(p0.X-2*c1.X+c2.X, p0.Y-2*c1.Y+c2.Y)
	d2 := math32.Hypot(c1.X-2*c2.X+p1.X, c1.Y-2*c2.Y+p1.Y)
	dev := math32.Max(d1, d2)
	n := int(math32.Ceil(math32.Sqrt(3 * dev / (4 * tol))))
	return clampSteps(n)
}

func clampSteps(n int) int {
	if n < 1 {
		return 1
	}
	if n > 64 {
		return 64
	}
	return n
}
