// Package geometry provides device-independent length units and 2D affine
// transforms for positioning visual stimuli. Lengths are expressed as Size
// values (pixels, millimeters, degrees of visual angle, viewport fractions)
// and evaluated to pixels only at draw time, against the current window
// viewport and its physical calibration.
package geometry

import "github.com/chewxy/math32"

// PhysicalScreen describes the physical calibration of a display:
// how many pixels cover one millimeter of screen, and how far the
// observer sits from it. Both are needed to convert degrees of visual
// angle to pixels.
type PhysicalScreen struct {
	// PixelDensity is in pixels per millimeter.
	PixelDensity float32
	// ViewingDistance is in millimeters.
	ViewingDistance float32
}

// NewPhysicalScreen derives the calibration from a screen's pixel width,
// its physical width in millimeters, and the observer's viewing distance
// in millimeters.
func NewPhysicalScreen(widthPx, widthMM, viewingDistanceMM float32) PhysicalScreen {
	return PhysicalScreen{
		PixelDensity:    widthPx / widthMM,
		ViewingDistance: viewingDistanceMM,
	}
}

// DegreesToPixels converts a visual angle in degrees to pixels on this
// screen, assuming the angle is centered on the line of sight.
func (s PhysicalScreen) DegreesToPixels(deg float32) float32 {
	half := deg / 2 * math32.Pi / 180
	return math32.Tan(half) * 2 * s.ViewingDistance * s.PixelDensity
}

// Viewport is the pixel size of the drawable area a Size is evaluated
// against.
type Viewport struct {
	Width, Height float32
}
