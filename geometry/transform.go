package geometry

import "github.com/chewxy/math32"

// Transform2D represents a 2D affine transformation.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Transform2D struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Transform2D {
	return Transform2D{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation transform.
func Translate(x, y float32) Transform2D {
	return Transform2D{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling transform.
func Scale(x, y float32) Transform2D {
	return Transform2D{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation transform (angle in radians).
func Rotate(angle float32) Transform2D {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	return Transform2D{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotateAround creates a rotation around the point (x, y).
func RotateAround(angle, x, y float32) Transform2D {
	return Translate(x, y).Mul(Rotate(angle)).Mul(Translate(-x, -y))
}

// Shear creates a shear transform.
func Shear(x, y float32) Transform2D {
	return Transform2D{
		A: 1, B: x, C: 0,
		D: y, E: 1, F: 0,
	}
}

// Mul multiplies two transforms (t * other), so other is applied first.
func (t Transform2D) Mul(other Transform2D) Transform2D {
	return Transform2D{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply applies the transformation to a point.
func (t Transform2D) Apply(x, y float32) (float32, float32) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// ApplyVector applies the transformation to a vector (no translation).
func (t Transform2D) ApplyVector(x, y float32) (float32, float32) {
	return t.A*x + t.B*y, t.D*x + t.E*y
}

// Invert returns the inverse transform.
// Returns the identity transform if the transform is not invertible.
func (t Transform2D) Invert() Transform2D {
	det := t.A*t.E - t.B*t.D
	if math32.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Transform2D{
		A: t.E * invDet,
		B: -t.B * invDet,
		C: (t.B*t.F - t.C*t.E) * invDet,
		D: -t.D * invDet,
		E: t.A * invDet,
		F: (t.C*t.D - t.A*t.F) * invDet,
	}
}

// IsIdentity returns true if the transform is the identity transform.
func (t Transform2D) IsIdentity() bool {
	return t.A == 1 && t.B == 0 && t.C == 0 &&
		t.D == 0 && t.E == 1 && t.F == 0
}
