package gostim

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/mazznoer/csscolorparser"
)

// LinRGBA represents a color in linear RGB space with an alpha component.
// Each component is in the range [0, 1]. All color arithmetic in gostim
// happens in linear space; conversion to and from the sRGB-encoded values
// used by image files and CSS strings goes through SRGBToLinear and
// LinearToSRGB.
type LinRGBA struct {
	R, G, B, A float32
}

// LinRGB creates an opaque linear color from RGB components.
func LinRGB(r, g, b float32) LinRGBA {
	return LinRGBA{R: r, G: g, B: b, A: 1.0}
}

// WithAlpha returns the color with its alpha replaced.
func (c LinRGBA) WithAlpha(a float32) LinRGBA {
	c.A = a
	return c
}

// Color converts LinRGBA to the standard color.Color interface,
// encoding the components to 8-bit sRGB.
func (c LinRGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(math32.Round(LinearToSRGB(c.R) * 255))),
		G: uint8(clamp255(math32.Round(LinearToSRGB(c.G) * 255))),
		B: uint8(clamp255(math32.Round(LinearToSRGB(c.B) * 255))),
		A: uint8(clamp255(math32.Round(c.A * 255))),
	}
}

// FromColor converts a standard color.Color to LinRGBA, decoding
// the sRGB-encoded components to linear space.
func FromColor(c color.Color) LinRGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return LinRGBA{}
	}
	// RGBA returns alpha-premultiplied values; unpremultiply before decoding.
	af := float32(a) / 65535
	return LinRGBA{
		R: SRGBToLinear(float32(r) / float32(a)),
		G: SRGBToLinear(float32(g) / float32(a)),
		B: SRGBToLinear(float32(b) / float32(a)),
		A: af,
	}
}

// SRGBToLinear decodes a single sRGB-encoded component to linear space.
func SRGBToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes a single linear component to sRGB.
func LinearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

// ParseColor converts any supported color notation to LinRGBA.
//
// Accepted values:
//   - LinRGBA: returned unchanged
//   - [3]float32: linear RGB components, alpha 1
//   - [4]float32: linear RGBA components
//   - string: any CSS color ("red", "#ff0000", "rgb(255 0 0)", "hsl(0,100%,50%)");
//     CSS components are sRGB-encoded and are decoded to linear space
//   - color.Color: decoded from sRGB to linear space
//
// A *ParameterError is returned for unsupported types or unparseable strings.
func ParseColor(v any) (LinRGBA, error) {
	switch c := v.(type) {
	case LinRGBA:
		return c, nil
	case [3]float32:
		return LinRGBA{R: c[0], G: c[1], B: c[2], A: 1}, nil
	case [4]float32:
		return LinRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
	case string:
		parsed, err := csscolorparser.Parse(c)
		if err != nil {
			return LinRGBA{}, &ParameterError{Op: "parse color", Msg: err.Error()}
		}
		return LinRGBA{
			R: SRGBToLinear(float32(parsed.R)),
			G: SRGBToLinear(float32(parsed.G)),
			B: SRGBToLinear(float32(parsed.B)),
			A: float32(parsed.A),
		}, nil
	case color.Color:
		return FromColor(c), nil
	default:
		return LinRGBA{}, &ParameterError{Op: "parse color", Msg: "unsupported color value"}
	}
}

// MustParseColor is like ParseColor but panics on error.
// Intended for package-level color constants.
func MustParseColor(v any) LinRGBA {
	c, err := ParseColor(v)
	if err != nil {
		panic(err)
	}
	return c
}

// Common colors in linear space. Gray is the mid-gray default window
// background (0.5 linear, not 0.5 sRGB).
var (
	Black       = LinRGBA{0, 0, 0, 1}
	White       = LinRGBA{1, 1, 1, 1}
	Gray        = LinRGBA{0.5, 0.5, 0.5, 1}
	Red         = LinRGBA{1, 0, 0, 1}
	Green       = LinRGBA{0, 1, 0, 1}
	Blue        = LinRGBA{0, 0, 1, 1}
	Transparent = LinRGBA{0, 0, 0, 0}
)

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
