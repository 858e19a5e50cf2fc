package scene

import (
	"sort"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
)

// Bitmap is the capability an image brush needs from a bitmap handle.
// The concrete type is owned by the renderer backend that created it;
// a backend rejects bitmaps it did not create.
type Bitmap interface {
	// Size returns the bitmap dimensions in pixels.
	Size() (width, height int)
}

// Extend controls what a gradient or image brush produces outside its
// defined region.
type Extend uint8

const (
	// ExtendPad repeats the edge value.
	ExtendPad Extend = iota
	// ExtendRepeat tiles the region.
	ExtendRepeat
	// ExtendReflect tiles the region, mirroring every other tile.
	ExtendReflect
)

// GradientKind selects the gradient geometry.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientSweep
)

// GradientStop is a color at a position along the gradient, with
// Offset in [0, 1].
type GradientStop struct {
	Offset float32
	Color  gostim.LinRGBA
}

// Sampling selects how an image brush samples between pixels.
type Sampling uint8

const (
	SamplingNearest Sampling = iota
	SamplingLinear
)

// FitMode controls how an image brush maps bitmap pixels to scene pixels.
type FitMode uint8

const (
	// FitOriginal draws the bitmap at its native pixel size.
	FitOriginal FitMode = iota
	// FitExact scales the bitmap to an exact pixel size.
	FitExact
)

// Brush is a paint source for fills and strokes. Exactly one of the
// concrete brush types is used per draw operation.
type Brush interface {
	isBrush()
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color gostim.LinRGBA
}

func (SolidBrush) isBrush() {}

// GradientBrush paints a color ramp. Linear gradients run from Start to
// End; radial gradients are centered on Start with End on the outer rim;
// sweep gradients rotate around Start.
type GradientBrush struct {
	Kind   GradientKind
	Extend Extend
	Start  Point
	End    Point
	Stops  []GradientStop
}

func (GradientBrush) isBrush() {}

// NewGradientBrush creates a gradient with its stops sorted by offset.
func NewGradientBrush(kind GradientKind, extend Extend, start, end Point, stops []GradientStop) *GradientBrush {
	sorted := append([]GradientStop(nil), stops...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return &GradientBrush{Kind: kind, Extend: extend, Start: start, End: end, Stops: sorted}
}

// ImageBrush paints pixels sampled from a bitmap.
type ImageBrush struct {
	Image Bitmap
	// Start is the scene position of the bitmap's top-left corner.
	Start Point
	Fit   FitMode
	// FitWidth and FitHeight give the target size when Fit is FitExact.
	FitWidth, FitHeight float32
	Sampling            Sampling
	// EdgeX and EdgeY control sampling outside the bitmap, per axis.
	EdgeX, EdgeY Extend
	// Transform, when non-nil, maps scene space to brush space.
	Transform *geometry.Transform2D
	// Alpha, when non-nil, overrides the sampled alpha.
	Alpha *float32
}

func (ImageBrush) isBrush() {}
