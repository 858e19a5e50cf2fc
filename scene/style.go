package scene

// LineCap is the shape drawn at the ends of open stroked segments.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape drawn where stroked segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// StrokeStyle describes how a shape outline is stroked.
type StrokeStyle struct {
	Width      float32
	Cap        LineCap
	Join       LineJoin
	MiterLimit float32
	// Dashes alternates drawn and skipped lengths. Empty means solid.
	Dashes     []float32
	DashOffset float32
}

// DefaultStrokeStyle returns a 1px solid stroke with miter joins.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{Width: 1, MiterLimit: 4}
}

// BlendMode selects how a draw operation composites over what is already
// in the scene. The default for all operations is SourceOver.
type BlendMode uint8

const (
	BlendSourceOver BlendMode = iota
	BlendSourceIn
	BlendSourceOut
	BlendSourceAtop
	BlendDestOver
	BlendDestIn
	BlendDestOut
	BlendDestAtop
	BlendClear
	BlendCopy
	BlendXor
	BlendPlus
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
)
